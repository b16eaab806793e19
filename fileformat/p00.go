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

package fileformat

import (
	"bytes"

	"github.com/retrosys/c64core/internal/curated"
)

const p00HeaderSize = 26

var p00Signature = []byte("C64File")

// ErrBadP00Signature reports a P00 file whose fixed 8-byte signature
// doesn't read "C64File" NUL-padded.
var ErrBadP00Signature = curated.Errorf("fileformat: bad P00 signature")

// P00 is a PC64-container PRG: the 16-byte PETSCII program name plus the
// PRG payload it wraps.
type P00 struct {
	Name    string
	Program Program
}

// LoadP00 parses the 26-byte PC64 header (8-byte signature, 16-byte
// PETSCII name, 1 reserved byte, 1 record-length byte) followed by a PRG
// payload.
func LoadP00(raw []byte) (P00, error) {
	if len(raw) < p00HeaderSize+2 {
		return P00{}, ErrTruncated
	}
	sig := raw[:8]
	if !bytes.HasPrefix(sig, p00Signature) {
		return P00{}, ErrBadP00Signature
	}
	name := bytes.TrimRight(raw[8:24], "\x00")

	prg, err := LoadPRG(raw[p00HeaderSize:])
	if err != nil {
		return P00{}, err
	}

	return P00{Name: string(name), Program: prg}, nil
}
