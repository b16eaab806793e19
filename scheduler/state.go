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

// Package scheduler drives the C64's per-cycle component interleaving, the
// run-loop's state machine, and the worker-side ends of the message queue
// and audio ring buffer the rest of the emulator talks to it through.
package scheduler

// RunState is the emulation thread's top-level state.
type RunState int

const (
	EmulatorStart RunState = iota
	Initialising
	Paused
	Stepping
	Rewinding
	Running
	Ending
)

func (s RunState) String() string {
	switch s {
	case EmulatorStart:
		return "EmulatorStart"
	case Initialising:
		return "Initialising"
	case Paused:
		return "Paused"
	case Stepping:
		return "Stepping"
	case Rewinding:
		return "Rewinding"
	case Running:
		return "Running"
	case Ending:
		return "Ending"
	}
	return ""
}

// SubState refines Paused and Rewinding with extra detail. Normal pairs
// with any RunState.
type SubState int

const (
	Normal SubState = iota
	RewindingBackwards
	RewindingForwards
	PausedAtStart
	PausedAtEnd
)

func (s SubState) String() string {
	switch s {
	case RewindingBackwards:
		return "Backwards"
	case RewindingForwards:
		return "Forwards"
	case PausedAtStart:
		return "Paused at start"
	case PausedAtEnd:
		return "Paused at end"
	}
	return ""
}

// StateIntegrity reports whether a (RunState, SubState) pairing is one the
// scheduler ever produces: Normal pairs with anything, the rewind
// sub-states only with Rewinding, the paused sub-states only with Paused.
func StateIntegrity(state RunState, sub SubState) bool {
	if sub == Normal {
		return true
	}
	switch state {
	case Rewinding:
		return sub == RewindingBackwards || sub == RewindingForwards
	case Paused:
		return sub == PausedAtStart || sub == PausedAtEnd
	}
	return false
}
