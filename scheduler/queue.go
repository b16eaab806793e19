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

	"github.com/retrosys/c64core/internal/logger"
)

// MessageKind identifies a lifecycle event emitted by the worker.
type MessageKind int

const (
	MsgPowerOn MessageKind = iota
	MsgPowerOff
	MsgDriveLED
	MsgSnapshotReady
	MsgBreakpointHit
	MsgFrame
)

// Message is one entry on the worker-to-UI event queue.
type Message struct {
	Kind   MessageKind
	Detail string
}

// Queue is a single-producer/single-consumer FIFO of lifecycle messages,
// backed by a buffered channel: the worker is the only producer, the UI the
// only consumer, so a plain buffered chan already gives the required FIFO
// ordering without extra locking.
type Queue struct {
	ch chan Message
}

// NewQueue creates a queue holding up to capacity undelivered messages.
func NewQueue(capacity int) *Queue {
	return &Queue{ch: make(chan Message, capacity)}
}

// Push enqueues a message without blocking. If the queue is full the
// message is dropped and logged rather than stalling the worker.
func (q *Queue) Push(m Message) bool {
	select {
	case q.ch <- m:
		return true
	default:
		logger.Logf(logger.Allow, "scheduler", "message queue full, dropping message kind %d", m.Kind)
		return false
	}
}

// Pop removes and returns the oldest undelivered message, if any.
func (q *Queue) Pop() (Message, bool) {
	select {
	case m := <-q.ch:
		return m, true
	default:
		return Message{}, false
	}
}

// Drain removes and returns every message currently queued, in order.
func (q *Queue) Drain() []Message {
	var out []Message
	for {
		m, ok := q.Pop()
		if !ok {
			break
		}
		out = append(out, m)
	}
	return out
}

// AudioRing is a lock-free single-producer/single-consumer ring buffer of
// audio samples, written by the worker inside the SID sink and drained by
// an audio callback running on another thread. The read/write cursors are
// plain monotonically increasing counters modulo the buffer length, updated
// with atomic load/store; this mirrors the fixed-size-array-plus-atomic-
// cursor shape the CIA/VIC delay pipelines already use elsewhere in this
// core, applied here to a sample buffer instead of a bit pipeline.
type AudioRing struct {
	buf      []float32
	writeCur uint64
	readCur  uint64
}

// NewAudioRing allocates a ring holding up to capacity samples.
func NewAudioRing(capacity int) *AudioRing {
	return &AudioRing{buf: make([]float32, capacity)}
}

// Write appends as many of samples as fit before the reader catches up,
// returning the number actually written.
func (r *AudioRing) Write(samples []float32) int {
	n := uint64(len(r.buf))
	written := 0
	for _, s := range samples {
		w := atomic.LoadUint64(&r.writeCur)
		rd := atomic.LoadUint64(&r.readCur)
		if w-rd >= n {
			break
		}
		r.buf[w%n] = s
		atomic.StoreUint64(&r.writeCur, w+1)
		written++
	}
	return written
}

// Read fills out with the oldest available samples, returning the number
// actually read.
func (r *AudioRing) Read(out []float32) int {
	n := uint64(len(r.buf))
	read := 0
	for i := range out {
		rd := atomic.LoadUint64(&r.readCur)
		w := atomic.LoadUint64(&r.writeCur)
		if rd >= w {
			break
		}
		out[i] = r.buf[rd%n]
		atomic.StoreUint64(&r.readCur, rd+1)
		read++
	}
	return read
}

// Available reports how many unread samples are currently buffered.
func (r *AudioRing) Available() int {
	return int(atomic.LoadUint64(&r.writeCur) - atomic.LoadUint64(&r.readCur))
}
