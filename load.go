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

package c64core

import (
	"github.com/retrosys/c64core/disk"
	"github.com/retrosys/c64core/fileformat"
)

// LoadBasicROM, LoadKernalROM and LoadCharROM copy a firmware image into
// the corresponding ROM bank. The core ships no ROM images of its own
// (copyright); a host supplies them.
func (c *C64) LoadBasicROM(image []byte) { c.Mem.BasicROM = append([]byte(nil), image...) }

func (c *C64) LoadKernalROM(image []byte) { c.Mem.KernalROM = append([]byte(nil), image...) }

func (c *C64) LoadCharROM(image []byte) { c.Mem.CharROM = append([]byte(nil), image...) }

// LoadDriveROM copies a 1541 DOS ROM image into the attached drive.
func (c *C64) LoadDriveROM(image []byte) { c.Drive.Memory.LoadROM(image) }

// LoadCartridgeImage parses a raw CRT file and plugs the resulting
// cartridge into the expansion port.
func (c *C64) LoadCartridgeImage(raw []byte) error {
	info, err := fileformat.LoadCRT(raw)
	if err != nil {
		return err
	}
	c.AttachCartridge(info.Cartridge)
	return nil
}

// LoadD64Image parses a raw D64 sector image and mounts it in the
// attached drive.
func (c *C64) LoadD64Image(raw []byte) error {
	m, err := disk.LoadD64(raw)
	if err != nil {
		return err
	}
	c.InsertDisk(m)
	return nil
}

// LoadG64Image parses a raw G64 bitstream image and mounts it in the
// attached drive.
func (c *C64) LoadG64Image(raw []byte) error {
	m, err := fileformat.LoadG64(raw)
	if err != nil {
		return err
	}
	c.InsertDisk(m)
	return nil
}

// InjectProgram writes a parsed PRG-style payload directly into RAM at its
// load address, the same byte-level effect a KERNAL LOAD (or a fast-load
// cartridge) has once the bytes have arrived; it doesn't itself drive the
// serial bus protocol that gets them there.
func (c *C64) InjectProgram(p fileformat.Program) {
	addr := int(p.LoadAddress)
	for i, b := range p.Data {
		if addr+i > 0xffff {
			break
		}
		c.Mem.RAM[addr+i] = b
	}
}
