package drive

import "github.com/retrosys/c64core/disk"

// ue7Carry is the number of 16 MHz ticks (indexed by the two VIA2 PB5/PB6
// density bits) the UE7 divider counts before producing a carry; UE3 then
// counts four such carries to produce one bit-cell time.
var ue7Carry = [4]int{16, 15, 14, 13}

// Head is the 1541's read/write head: current halftrack and bit offset,
// the speed-zone clock divider, and the 10-bit shift register used to
// detect SYNC.
type Head struct {
	Media *disk.Media

	Halftrack int
	Offset    int

	via *VIA

	ue7 int
	ue3 int

	shiftReg uint16
	inSync   bool

	bitsSinceSync int

	// writeShiftReg holds the byte currently being shifted out to the
	// media, MSB first, reloaded from VIA2's output register (ora) at
	// every byte boundary - the real head has no data source of its own.
	writeShiftReg uint8

	// ByteReady is called (edge) once a GCR byte boundary is reached while
	// synced; the owning drive wires this to VIA2 CA1 and the CPU's V flag.
	ByteReady func(value uint8)
}

func NewHead(via2 *VIA) *Head {
	return &Head{Halftrack: 2, via: via2}
}

// densityZone reads the two density-select bits the DOS writes to VIA2
// port B (bits 5 and 6).
func (h *Head) densityZone() int {
	pb := h.via.orb
	return int(pb>>5) & 0x03
}

// StepIn moves the head toward the spindle center by one halftrack (used
// by the stepper-motor control bits on VIA2 port B).
func (h *Head) StepIn() {
	if h.Halftrack < disk.MaxHalftrack {
		h.Halftrack++
		h.Offset = 0
	}
}

// StepOut moves the head toward the rim by one halftrack.
func (h *Head) StepOut() {
	if h.Halftrack > disk.MinHalftrack {
		h.Halftrack--
		h.Offset = 0
	}
}

// Tick advances the head's bit clock by one 16 MHz tick, reading or
// writing one bit whenever the zone-dependent divider produces a bit-cell
// boundary. In write mode the bit shifted out comes from writeShiftReg,
// reloaded from VIA2's ora at each byte boundary - the same register the
// DOS loads before dropping the write gate.
func (h *Head) Tick(writeMode bool) {
	h.ue7++
	if h.ue7 < ue7Carry[h.densityZone()] {
		return
	}
	h.ue7 = 0
	h.ue3++
	if h.ue3 < 4 {
		return
	}
	h.ue3 = 0

	if h.Media == nil {
		return
	}

	if writeMode {
		if h.bitsSinceSync == 0 {
			h.writeShiftReg = h.via.ora
		}
		bit := (h.writeShiftReg >> 7) & 0x01
		h.writeShiftReg <<= 1
		h.Media.WriteBit(h.Halftrack, h.Offset, bit)
		h.advanceWrite()
	} else {
		bit := h.Media.ReadBit(h.Halftrack, h.Offset)
		h.advanceRead(bit)
	}
	h.Offset = (h.Offset + 1) % h.Media.Length(h.Halftrack)
}

func (h *Head) advanceRead(bit byte) {
	h.shiftReg = h.shiftReg<<1 | uint16(bit)

	if h.shiftReg&0x03ff == 0x03ff {
		h.inSync = true
		h.bitsSinceSync = 0
		return
	}
	if !h.inSync {
		return
	}

	h.bitsSinceSync++
	if h.bitsSinceSync == 8 {
		h.bitsSinceSync = 0
		if h.ByteReady != nil {
			h.ByteReady(uint8(h.shiftReg))
		}
	}
}

func (h *Head) advanceWrite() {
	h.bitsSinceSync++
	if h.bitsSinceSync == 8 {
		h.bitsSinceSync = 0
		if h.ByteReady != nil {
			h.ByteReady(h.via.ora)
		}
	}
}

// InSync reports whether the read shift register has most recently
// detected a SYNC mark (ten consecutive one-bits).
func (h *Head) InSync() bool { return h.inSync }

// LeaveSync is called once the DOS has consumed the header/data block
// following a SYNC mark, so the next SYNC is detected fresh.
func (h *Head) LeaveSync() { h.inSync = false }
