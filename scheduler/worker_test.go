package scheduler_test

import (
	"testing"

	"github.com/retrosys/c64core/scheduler"
)

// fakeMachine is a minimal scheduler.Machine: frameDone fires every
// cyclesPerFrame cycles, boundary fires every instrLen cycles, jammed is
// settable by the test.
type fakeMachine struct {
	cycles         int
	cyclesPerFrame int
	instrLen       int
	frameEnds      int
	jammed         bool
	jamAfterCycles int
}

func (m *fakeMachine) Cycle() bool {
	m.cycles++
	return m.cyclesPerFrame != 0 && m.cycles%m.cyclesPerFrame == 0
}

func (m *fakeMachine) CPUAtBoundary() bool {
	return m.instrLen != 0 && m.cycles%m.instrLen == 0
}

func (m *fakeMachine) CPUJammed() bool {
	if m.jamAfterCycles != 0 && m.cycles >= m.jamAfterCycles {
		return true
	}
	return m.jammed
}

func (m *fakeMachine) FrameEnd() { m.frameEnds++ }

func TestRunForFrameCountStopsAfterRequestedFrames(t *testing.T) {
	m := &fakeMachine{cyclesPerFrame: 10, instrLen: 2}
	w, err := scheduler.NewWorker(m, 1000000, 8, 64)
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}
	if err := w.RunForFrameCount(3); err != nil {
		t.Fatalf("RunForFrameCount: %v", err)
	}
	if m.frameEnds != 3 {
		t.Fatalf("expected 3 frame-end hooks, got %d", m.frameEnds)
	}
}

func TestSuspendStopsWorkerAtNextBoundary(t *testing.T) {
	m := &fakeMachine{cyclesPerFrame: 0, instrLen: 4}
	w, err := scheduler.NewWorker(m, 1000000, 8, 64)
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}
	w.Suspend()
	if err := w.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	state, _ := w.State()
	if state != scheduler.Paused {
		t.Fatalf("expected Paused after Suspend, got %v", state)
	}
	if m.cycles == 0 || m.cycles%4 != 0 {
		t.Fatalf("expected worker to stop exactly on an instruction boundary, stopped at cycle %d", m.cycles)
	}
}

func TestResumeRequiresMatchingSuspendCount(t *testing.T) {
	m := &fakeMachine{instrLen: 1, jamAfterCycles: 2}
	w, err := scheduler.NewWorker(m, 1000000, 8, 64)
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}
	w.Suspend()
	w.Suspend()
	w.Resume()
	if err := w.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	state, _ := w.State()
	if state != scheduler.Paused {
		t.Fatalf("expected still Paused after only one of two Resumes, got %v", state)
	}
	w.Resume()
	if err := w.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestCPUJamSuspendsAndSetsFlag(t *testing.T) {
	m := &fakeMachine{instrLen: 1, jammed: true}
	w, err := scheduler.NewWorker(m, 1000000, 8, 64)
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}
	if err := w.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	state, _ := w.State()
	if state != scheduler.Paused {
		t.Fatalf("expected Paused after CPU jam, got %v", state)
	}
	if w.Flags()&scheduler.FlagCPUJammed == 0 {
		t.Fatalf("expected CPU_JAMMED flag set")
	}
}

func TestStateIntegrityRejectsMismatchedSubState(t *testing.T) {
	if scheduler.StateIntegrity(scheduler.Running, scheduler.PausedAtStart) {
		t.Fatalf("PausedAtStart should not be valid alongside Running")
	}
	if !scheduler.StateIntegrity(scheduler.Paused, scheduler.PausedAtEnd) {
		t.Fatalf("PausedAtEnd should be valid alongside Paused")
	}
	if !scheduler.StateIntegrity(scheduler.Running, scheduler.Normal) {
		t.Fatalf("Normal sub-state should be valid alongside any state")
	}
}

func TestAudioRingReadAfterWrite(t *testing.T) {
	r := scheduler.NewAudioRing(4)
	r.Write([]float32{1, 2, 3})
	out := make([]float32, 3)
	n := r.Read(out)
	if n != 3 {
		t.Fatalf("expected 3 samples read, got %d", n)
	}
	if out[0] != 1 || out[1] != 2 || out[2] != 3 {
		t.Fatalf("unexpected samples: %v", out)
	}
}

func TestAudioRingDropsWhenFull(t *testing.T) {
	r := scheduler.NewAudioRing(2)
	written := r.Write([]float32{1, 2, 3, 4})
	if written != 2 {
		t.Fatalf("expected only 2 samples to fit before the reader catches up, wrote %d", written)
	}
}

func TestMessageQueueDrainPreservesOrder(t *testing.T) {
	q := scheduler.NewQueue(4)
	q.Push(scheduler.Message{Kind: scheduler.MsgPowerOn})
	q.Push(scheduler.Message{Kind: scheduler.MsgFrame})
	q.Push(scheduler.Message{Kind: scheduler.MsgDriveLED})
	msgs := q.Drain()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 drained messages, got %d", len(msgs))
	}
	if msgs[0].Kind != scheduler.MsgPowerOn || msgs[1].Kind != scheduler.MsgFrame || msgs[2].Kind != scheduler.MsgDriveLED {
		t.Fatalf("messages out of FIFO order: %v", msgs)
	}
}
