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

import (
	"sync/atomic"

	"github.com/retrosys/c64core/internal/curated"
	"github.com/retrosys/c64core/internal/limiter"
	"github.com/retrosys/c64core/internal/logger"
)

// Machine is the set of operations the scheduler needs from whatever
// aggregates the C64's chips; the top-level C64 type implements this by
// stepping VIC, CIA1, CIA2, the CPU and the drive catchup in that fixed
// order inside Cycle.
type Machine interface {
	// Cycle advances the machine by one C64 clock cycle (VIC, then both
	// CIAs, then the CPU, then whatever drive catchup is due) and reports
	// whether this cycle was the last of a frame.
	Cycle() (frameDone bool)

	// CPUAtBoundary reports whether the C64 CPU is between instructions;
	// the scheduler only suspends here.
	CPUAtBoundary() bool

	// CPUJammed reports whether the C64 CPU has halted on an illegal
	// opcode.
	CPUJammed() bool

	// FrameEnd runs the frame-end hook, once after the cycle that ends a
	// frame.
	FrameEnd()
}

// VolumeRamper lets the scheduler fade audio output out/in across a warp
// mode transition, so engaging/disengaging warp doesn't produce a pop.
type VolumeRamper interface {
	SetVolume(level float64)
}

// Worker is the single cooperative task that owns all mutable emulation
// state and runs the C64's cycle-by-cycle schedule. Everything else (GUI,
// audio, file I/O) talks to it only through Queue, Audio and the
// Suspend/Resume pair.
type Worker struct {
	Machine Machine
	Queue   *Queue
	Audio   *AudioRing
	Volume  VolumeRamper

	state RunState
	sub   SubState
	flags Flags

	warp    bool
	limiter *limiter.FpsLimiter

	suspendDepth int32
}

// NewWorker creates a worker around machine, with a message queue and
// audio ring of the given capacities and frame pacing at framesPerSecond
// (ignored while warp mode is engaged).
func NewWorker(machine Machine, framesPerSecond, queueCapacity, audioCapacity int) (*Worker, error) {
	lim, err := limiter.NewFPSLimiter(framesPerSecond)
	if err != nil {
		return nil, curated.Errorf("scheduler: creating frame limiter: %v", err)
	}
	return &Worker{
		Machine: machine,
		Queue:   NewQueue(queueCapacity),
		Audio:   NewAudioRing(audioCapacity),
		state:   EmulatorStart,
		limiter: lim,
	}, nil
}

// State returns the worker's current run state and sub-state.
func (w *Worker) State() (RunState, SubState) { return w.state, w.sub }

// Flags returns the currently set run-loop control flags.
func (w *Worker) Flags() Flags { return w.flags }

// SetFlag raises one or more run-loop control flags; the worker observes
// it at the next instruction boundary.
func (w *Worker) SetFlag(f Flags) { w.flags |= f }

// ClearFlag lowers one or more run-loop control flags.
func (w *Worker) ClearFlag(f Flags) { w.flags &^= f }

// Suspend asks the worker to stop at the next instruction boundary. Calls
// nest: the worker only resumes once every Suspend has a matching Resume.
func (w *Worker) Suspend() {
	atomic.AddInt32(&w.suspendDepth, 1)
	w.flags |= FlagStop
}

// Resume reverses one Suspend call. Once the nesting count returns to zero
// the STOP flag is lowered and a paused worker moves back to Running.
func (w *Worker) Resume() {
	if atomic.AddInt32(&w.suspendDepth, -1) > 0 {
		return
	}
	w.flags &^= FlagStop
	if w.state == Paused {
		w.state = Running
		w.sub = Normal
	}
}

// EngageWarp disengages wall-clock frame pacing and ramps audio volume
// down, avoiding a pop at the transition.
func (w *Worker) EngageWarp() {
	if w.warp {
		return
	}
	if w.Volume != nil {
		w.Volume.SetVolume(0)
	}
	w.warp = true
}

// DisengageWarp re-engages wall-clock frame pacing and ramps audio volume
// back up.
func (w *Worker) DisengageWarp() {
	if !w.warp {
		return
	}
	w.warp = false
	if w.Volume != nil {
		w.Volume.SetVolume(1)
	}
}

// Run drives the machine one cycle at a time until it reaches Ending, or
// until a control flag or an explicit Stepping/Paused transition returns
// control to the caller. Call Run again to resume from where it left off.
func (w *Worker) Run() error {
	if w.state == EmulatorStart || w.state == Initialising {
		w.state = Running
	}

	for {
		switch w.state {
		case Running, Stepping:
			frameDone := w.Machine.Cycle()
			if w.Machine.CPUJammed() {
				w.flags |= FlagCPUJammed
			}
			if frameDone {
				w.Machine.FrameEnd()
				w.Queue.Push(Message{Kind: MsgFrame})
				if !w.warp {
					w.limiter.Wait()
				}
			}

			if !w.Machine.CPUAtBoundary() {
				continue
			}

			if w.flags&FlagCPUJammed != 0 {
				logger.Logf(logger.Allow, "scheduler", "CPU jammed, suspending")
				w.Queue.Push(Message{Kind: MsgBreakpointHit, Detail: "cpu jammed"})
				w.state = Paused
				continue
			}

			if w.state == Stepping {
				w.state = Paused
				w.sub = Normal
				return nil
			}

			if w.flags&suspending != 0 {
				w.onSuspendingFlags()
				return nil
			}
		case Paused, Rewinding:
			return nil
		case Ending:
			return nil
		default:
			return curated.Errorf("scheduler: unsupported run state %v in Run", w.state)
		}
	}
}

// onSuspendingFlags transitions to Paused and reports which flag(s) fired,
// then clears the one-shot flags (CPU_JAMMED is left set until the caller
// explicitly acknowledges it).
func (w *Worker) onSuspendingFlags() {
	if w.flags&FlagBreakpoint != 0 {
		w.Queue.Push(Message{Kind: MsgBreakpointHit})
	}
	if w.flags&(FlagAutoSnapshot|FlagUserSnapshot) != 0 {
		w.Queue.Push(Message{Kind: MsgSnapshotReady})
	}
	w.state = Paused
	w.sub = Normal
	w.flags &^= suspending
}

// Step runs exactly one C64 instruction and returns to Paused.
func (w *Worker) Step() error {
	if w.state == Paused {
		w.state = Stepping
	}
	return w.Run()
}

// RunForFrameCount runs until numFrames frame-end hooks have fired or the
// machine reaches Ending, whichever comes first.
func (w *Worker) RunForFrameCount(numFrames int) error {
	if w.state == EmulatorStart || w.state == Initialising {
		w.state = Running
	}
	seen := 0
	for seen < numFrames && w.state != Ending {
		frameDone := w.Machine.Cycle()
		if w.Machine.CPUJammed() {
			w.flags |= FlagCPUJammed
		}
		if frameDone {
			w.Machine.FrameEnd()
			w.Queue.Push(Message{Kind: MsgFrame})
			seen++
			if !w.warp {
				w.limiter.Wait()
			}
		}
	}
	return nil
}

// Stop requests an orderly shutdown: the worker finishes its current
// instruction, emits MsgPowerOff, and transitions to Ending.
func (w *Worker) Stop() {
	w.flags |= FlagStop
	w.state = Ending
	w.Queue.Push(Message{Kind: MsgPowerOff})
}
