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

// Package fileformat converts the byte-level C64 media and cartridge
// container formats (D64 delegated to disk.LoadD64, G64, T64, PRG, P00,
// CRT) into the in-memory shapes the rest of the core consumes.
package fileformat

import "github.com/retrosys/c64core/internal/curated"

// ErrTruncated reports a file shorter than its own header claims.
var ErrTruncated = curated.Errorf("fileformat: truncated file")

// Program is a loaded PRG-shaped payload: a 2-byte load address followed
// by raw bytes destined for memory starting at that address.
type Program struct {
	LoadAddress uint16
	Data        []byte
}

// LoadPRG parses the 2-byte-load-address-then-contents PRG format.
func LoadPRG(raw []byte) (Program, error) {
	if len(raw) < 2 {
		return Program{}, ErrTruncated
	}
	return Program{
		LoadAddress: uint16(raw[0]) | uint16(raw[1])<<8,
		Data:        append([]byte(nil), raw[2:]...),
	}, nil
}
