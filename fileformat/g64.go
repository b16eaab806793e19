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

	"github.com/retrosys/c64core/disk"
	"github.com/retrosys/c64core/internal/curated"
)

var g64Signature = []byte("GCR-1541")

const (
	g64HeaderSize  = 12
	g64OffsetEntry = 4
)

// ErrBadG64Signature reports a file not beginning with the G64 magic
// string.
var ErrBadG64Signature = curated.Errorf("fileformat: bad G64 signature")

// LoadG64 parses a G64 image: raw per-halftrack GCR bitstreams with each
// halftrack's own length, already bit-cell encoded, unlike D64's plain
// sector image. Every byte in a track's stored stream becomes 8 entries in
// the halftrack's bit array, MSB first, matching how the 1541's head
// engine walks bits in disk.Media.
func LoadG64(raw []byte) (*disk.Media, error) {
	if len(raw) < g64HeaderSize || !bytes.HasPrefix(raw, g64Signature) {
		return nil, ErrBadG64Signature
	}

	numHalftracks := int(raw[9])
	trackOffsetTable := raw[g64HeaderSize:]
	if len(trackOffsetTable) < numHalftracks*g64OffsetEntry {
		return nil, ErrTruncated
	}

	m := &disk.Media{}
	for i := 0; i < numHalftracks; i++ {
		offset := binary.LittleEndian.Uint32(trackOffsetTable[i*g64OffsetEntry : i*g64OffsetEntry+4])
		if offset == 0 {
			continue
		}
		if int(offset)+2 > len(raw) {
			return nil, ErrTruncated
		}
		trackLen := int(binary.LittleEndian.Uint16(raw[offset : offset+2]))
		start := int(offset) + 2
		if start+trackLen > len(raw) {
			return nil, ErrTruncated
		}
		track := raw[start : start+trackLen]

		bits := make([]byte, trackLen*8)
		for b, byteVal := range track {
			for bit := 0; bit < 8; bit++ {
				bits[b*8+bit] = (byteVal >> (7 - bit)) & 1
			}
		}
		ht := i + 1 // G64 numbers halftracks from 1
		if ht > disk.MaxHalftrack {
			continue
		}
		m.Tracks[ht] = disk.Halftrack{Bits: bits}
	}

	return m, nil
}
