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

package c64core

import "github.com/retrosys/c64core/scheduler"

// Cycle runs one C64 master-clock cycle: VIC before CIAs before CPU before
// the drive, always, matching the fixed ordering real hardware's bus
// arbitration depends on (VIC may steal the CPU's cycle via BA before the
// CPU ever gets to see it; the CIAs' IRQ/NMI outputs must be settled
// before the CPU's own interrupt detection runs for this cycle).
func (c *C64) Cycle() (frameDone bool) {
	c.VIC.Cycle()
	c.CPU.RDY = c.VIC.BA

	c.todAccum++
	todTick := false
	if c.todAccum >= c.todPeriod {
		c.todAccum -= c.todPeriod
		todTick = true
	}
	c.CIA1.Tick(todTick)
	c.CIA2.Tick(todTick)

	c.CPU.IRQ = c.CIA1.IRQ() || c.VIC.IRQ
	c.CPU.NMI = c.CIA2.IRQ() || c.Keyboard.Restore

	c.CPU.ExecuteOneCycle()
	c.Mem.Cycle++
	c.c64Clock += c.c64CyclePeriod

	for c.Drive.NextClock <= c.c64Clock {
		c.Drive.Tick()
		c.Drive.NextClock += c.driveCyclePeriod
	}

	frameDone = c.VIC.RasterLine == 0 && c.VIC.RasterCycle == 1
	return frameDone
}

// CPUAtBoundary implements scheduler.Machine.
func (c *C64) CPUAtBoundary() bool { return c.CPU.AtInstructionBoundary() }

// CPUJammed implements scheduler.Machine.
func (c *C64) CPUJammed() bool { return c.CPU.Killed }

// FrameEnd implements scheduler.Machine. The core has no display sink of
// its own (host-side rendering is out of scope); a host wanting a
// per-frame hook should instead drain scheduler.Worker's message queue,
// which is pushed MsgFrame once per call to this method's caller.
func (c *C64) FrameEnd() {}

var _ scheduler.Machine = (*C64)(nil)

// NewWorker wraps this machine in a scheduler.Worker, ready to Run. When
// the configuration requests it, the worker starts with wall-clock frame
// pacing already disengaged (WarpOnStart), rather than waiting for a host
// to ask for warp explicitly.
func (c *C64) NewWorker(framesPerSecond, queueCapacity, audioCapacity int) (*scheduler.Worker, error) {
	w, err := scheduler.NewWorker(c, framesPerSecond, queueCapacity, audioCapacity)
	if err != nil {
		return nil, err
	}
	if c.Config.WarpOnStart {
		w.EngageWarp()
	}
	return w, nil
}
