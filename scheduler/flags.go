// This file is part of c64core.
//
// c64core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// c64core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with c64core.  If not, see <https://www.gnu.org/licenses/>.

package scheduler

// Flags is the run-loop control-flag bitmask, polled once at the end of
// every cycle. Any bit set causes the worker to suspend the next time the
// CPU reaches an instruction boundary.
type Flags uint32

const (
	FlagStop Flags = 1 << iota
	FlagCPUJammed
	FlagInspect
	FlagBreakpoint
	FlagWatchpoint
	FlagAutoSnapshot
	FlagUserSnapshot
)

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	names := []struct {
		bit  Flags
		name string
	}{
		{FlagStop, "STOP"},
		{FlagCPUJammed, "CPU_JAMMED"},
		{FlagInspect, "INSPECT"},
		{FlagBreakpoint, "BREAKPOINT"},
		{FlagWatchpoint, "WATCHPOINT"},
		{FlagAutoSnapshot, "AUTO_SNAPSHOT"},
		{FlagUserSnapshot, "USER_SNAPSHOT"},
	}
	s := ""
	for _, n := range names {
		if f&n.bit == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += n.name
	}
	return s
}

// suspending is the subset of flags that asks the worker to stop at the
// next instruction boundary, as opposed to CPUJammed which is purely
// informational (the CPU has already stopped itself).
const suspending = FlagStop | FlagInspect | FlagBreakpoint | FlagWatchpoint | FlagAutoSnapshot | FlagUserSnapshot
