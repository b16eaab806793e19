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

//go:build !termios

package main

import (
	"os"
	"sync/atomic"

	"golang.org/x/term"
)

// termStepper puts stdin into raw mode with golang.org/x/term and flips a
// paused flag on every keypress read in a background goroutine, the same
// MakeRaw/Restore pairing the pack's terminal-host code uses for
// non-blocking single-key input.
type termStepper struct {
	fd       int
	old      *term.State
	stopCh   chan struct{}
	doneCh   chan struct{}
	paused   atomic.Bool
}

func newRawStepper() (rawStepper, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		// not an interactive terminal (piped input, CI, etc.); run free-running
		return &termStepper{fd: -1}, nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	s := &termStepper{fd: fd, old: old, stopCh: make(chan struct{}), doneCh: make(chan struct{})}
	go s.readLoop()
	return s, nil
}

func (s *termStepper) readLoop() {
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

func (s *termStepper) Paused() bool {
	if s.fd < 0 {
		return false
	}
	return s.paused.Load()
}

func (s *termStepper) Close() {
	if s.fd < 0 {
		return
	}
	close(s.stopCh)
	<-s.doneCh
	_ = term.Restore(s.fd, s.old)
}
