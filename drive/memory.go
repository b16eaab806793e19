package drive

import "github.com/retrosys/c64core/disk"

// Memory is the 1541's address space as seen by its own 6502: 2 KiB of
// static RAM mirrored across $0000-$0FFF, the two VIAs at $1800/$1C00
// (each mirrored across a 16-byte-aligned block), and 16 KiB of DOS ROM
// at $C000-$FFFF.
type Memory struct {
	RAM  [0x0800]byte
	ROM  [0x4000]byte
	VIA1 *VIA // serial/IEC bus
	VIA2 *VIA // head interface

	Head *Head
}

func NewMemory() *Memory {
	m := &Memory{
		VIA1: newVIA("VIA1"),
		VIA2: newVIA("VIA2"),
	}
	m.Head = NewHead(m.VIA2)
	return m
}

// Read implements cpu6502.Bus.
func (m *Memory) Read(addr uint16) uint8 {
	switch {
	case addr < 0x1000:
		return m.RAM[addr&0x07ff]
	case addr >= 0x1800 && addr < 0x1c00:
		return m.VIA1.Read(int(addr))
	case addr >= 0x1c00 && addr < 0x2000:
		return m.VIA2.Read(int(addr))
	case addr >= 0xc000:
		return m.ROM[addr-0xc000]
	default:
		return 0
	}
}

// Write implements cpu6502.Bus.
func (m *Memory) Write(addr uint16, v uint8) {
	switch {
	case addr < 0x1000:
		m.RAM[addr&0x07ff] = v
	case addr >= 0x1800 && addr < 0x1c00:
		m.VIA1.Write(int(addr), v)
	case addr >= 0x1c00 && addr < 0x2000:
		m.VIA2.Write(int(addr), v)
	default:
		// ROM writes and unmapped regions are no-ops, matching real bus
		// behavior (a write to ROM has no effect on the stored bitstream).
	}
}

// LoadROM copies a 16 KiB 1541 DOS ROM image into place.
func (m *Memory) LoadROM(image []byte) {
	copy(m.ROM[:], image)
}

// InsertDisk mounts media and rewires the head interface to read/write it.
func (m *Memory) InsertDisk(media *disk.Media) {
	m.Head.Media = media
}
