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

//go:build termios

package main

import (
	"os"
	"sync/atomic"
	"syscall"

	"github.com/pkg/term/termios"
)

// termiosStepper is the alternate raw-terminal backend, selected with the
// termios build tag, mirroring the teacher's choice between its plainterm
// (x/term) and easyterm (pkg/term/termios) debugger front ends: it saves
// the current termios attributes, switches to cbreak mode for unbuffered
// single-key reads, and restores the saved attributes on Close.
type termiosStepper struct {
	fd     uintptr
	saved  syscall.Termios
	stopCh chan struct{}
	doneCh chan struct{}
	paused atomic.Bool
}

func newRawStepper() (rawStepper, error) {
	fd := os.Stdin.Fd()

	var saved syscall.Termios
	if err := termios.Tcgetattr(fd, &saved); err != nil {
		// not a real terminal; run free-running rather than failing outright
		return &termiosStepper{fd: ^uintptr(0)}, nil
	}

	var cbreak syscall.Termios
	termios.Cfmakecbreak(&cbreak)
	if err := termios.Tcsetattr(fd, termios.TCIFLUSH, &cbreak); err != nil {
		return nil, err
	}

	s := &termiosStepper{fd: fd, saved: saved, stopCh: make(chan struct{}), doneCh: make(chan struct{})}
	go s.readLoop()
	return s, nil
}

func (s *termiosStepper) readLoop() {
	defer close(s.doneCh)
	buf := make([]byte, 1)
	for {
		select {
		case <-s.stopCh:
			return
		default:
		}
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			s.paused.Store(!s.paused.Load())
		}
		if err != nil {
			return
		}
	}
}

func (s *termiosStepper) Paused() bool {
	if s.fd == ^uintptr(0) {
		return false
	}
	return s.paused.Load()
}

func (s *termiosStepper) Close() {
	if s.fd == ^uintptr(0) {
		return
	}
	close(s.stopCh)
	<-s.doneCh
	_ = termios.Tcsetattr(s.fd, termios.TCIFLUSH, &s.saved)
}
