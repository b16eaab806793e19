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
	"github.com/retrosys/c64core/mem"
)

var crtSignature = []byte("C64 CARTRIDGE   ")

const (
	crtHeaderMinSize = 0x40
	chipHeaderSize   = 16
)

// ErrBadCRTSignature reports a file not beginning with the CRT magic
// string.
var ErrBadCRTSignature = curated.Errorf("fileformat: bad CRT signature")

// CRTInfo carries the cartridge header fields this core doesn't model as
// part of mem.Cartridge but a caller may still want (name, declared
// hardware type, version), alongside the parsed cartridge itself.
type CRTInfo struct {
	Name         string
	HardwareType uint16
	Version      uint16
	Cartridge    mem.Cartridge
}

// LoadCRT parses a CRT image: the fixed 0x40-byte header followed by one
// or more "CHIP" packets, each a 16-byte sub-header plus a ROM bank. CHIP
// packets loading at $8000 populate Cartridge.LoROM; packets loading at
// $A000 or $E000 populate Cartridge.HiROM. Only the first bank seen at
// each location is kept — bank-switching cartridges with multiple ROM
// banks per location are outside this core's modeled capability set (§1
// scopes out emulating cartridge-chip variants beyond the abstract
// interface).
func LoadCRT(raw []byte) (CRTInfo, error) {
	if len(raw) < crtHeaderMinSize || !bytes.HasPrefix(raw, crtSignature) {
		return CRTInfo{}, ErrBadCRTSignature
	}

	headerLen := binary.BigEndian.Uint32(raw[0x10:0x14])
	if int(headerLen) < crtHeaderMinSize || int(headerLen) > len(raw) {
		return CRTInfo{}, ErrTruncated
	}

	version := binary.BigEndian.Uint16(raw[0x14:0x16])
	hardwareType := binary.BigEndian.Uint16(raw[0x16:0x18])
	exrom := raw[0x18]
	game := raw[0x19]
	name := string(bytes.TrimRight(raw[0x20:0x40], "\x00"))

	info := CRTInfo{
		Name:         name,
		HardwareType: hardwareType,
		Version:      version,
		Cartridge: mem.Cartridge{
			Present:  true,
			EXROMLow: exrom == 0,
			GAMELow:  game == 0,
		},
	}

	offset := int(headerLen)
	for offset+chipHeaderSize <= len(raw) {
		if !bytes.HasPrefix(raw[offset:], []byte("CHIP")) {
			break
		}
		packetLen := int(binary.BigEndian.Uint32(raw[offset+4 : offset+8]))
		loadAddr := binary.BigEndian.Uint16(raw[offset+12 : offset+14])
		romSize := int(binary.BigEndian.Uint16(raw[offset+14 : offset+16]))

		romStart := offset + chipHeaderSize
		if romStart+romSize > len(raw) || packetLen < chipHeaderSize {
			return CRTInfo{}, ErrTruncated
		}
		rom := raw[romStart : romStart+romSize]

		switch loadAddr {
		case 0x8000:
			if info.Cartridge.LoROM == nil {
				info.Cartridge.LoROM = append([]byte(nil), rom...)
			}
		case 0xa000, 0xe000:
			if info.Cartridge.HiROM == nil {
				info.Cartridge.HiROM = append([]byte(nil), rom...)
			}
		}

		offset += packetLen
	}

	return info, nil
}
