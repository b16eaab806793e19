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
	"encoding/binary"

	"github.com/retrosys/c64core/internal/curated"
)

const (
	t64HeaderSize   = 64
	t64EntrySize    = 32
	t64EntryT64Type = 1 // normal tape entry
)

// ErrBadT64Header reports a T64 archive too short to hold its own header
// and directory.
var ErrBadT64Header = curated.Errorf("fileformat: bad T64 header")

// T64Entry is one tape-archive directory entry together with the PRG
// payload it points to.
type T64Entry struct {
	Name    string
	Program Program
}

// T64 is a tape archive: the free-text description from the container
// header plus every directory entry it lists.
type T64 struct {
	Description string
	Entries     []T64Entry
}

// LoadT64 parses the 64-byte container header, its directory of 32-byte
// entries, and the inlined PRG payload each entry's data offset points to.
func LoadT64(raw []byte) (T64, error) {
	if len(raw) < t64HeaderSize {
		return T64{}, ErrBadT64Header
	}

	usedEntries := int(binary.LittleEndian.Uint16(raw[36:38]))
	description := string(bytes.TrimRight(raw[40:64], " \x00"))

	dirStart := t64HeaderSize
	dirEnd := dirStart + usedEntries*t64EntrySize
	if dirEnd > len(raw) {
		return T64{}, ErrBadT64Header
	}

	out := T64{Description: description}
	for i := 0; i < usedEntries; i++ {
		e := raw[dirStart+i*t64EntrySize : dirStart+(i+1)*t64EntrySize]
		entryType := e[0]
		if entryType != t64EntryT64Type {
			continue
		}
		startAddr := binary.LittleEndian.Uint16(e[2:4])
		endAddr := binary.LittleEndian.Uint16(e[4:6])
		dataOffset := binary.LittleEndian.Uint32(e[8:12])
		name := string(bytes.TrimRight(e[16:32], " \x00"))

		length := int(endAddr) - int(startAddr)
		if length < 0 || int(dataOffset)+length > len(raw) {
			return T64{}, ErrTruncated
		}

		out.Entries = append(out.Entries, T64Entry{
			Name: name,
			Program: Program{
				LoadAddress: startAddr,
				Data:        append([]byte(nil), raw[dataOffset:int(dataOffset)+length]...),
			},
		})
	}

	return out, nil
}
