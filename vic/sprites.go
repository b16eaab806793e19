package vic

// spritePointerOffset is added to vmBase to find the 8 sprite data pointers
// at the end of the 1000-byte video matrix (offsets 0x3f8-0x3ff).
const spritePointerOffset = 0x3f8

// spriteDMA reports whether sprite n's DMA unit is currently active: it
// turns on when the raster line matches the sprite's Y coordinate (its
// first p-access/s-access cycle) and turns off once 21 lines' worth of
// data (63 bytes across 3 s-accesses/line) have been fetched.
type spriteDMA struct {
	active     bool
	dataLine   int // 0..62, offset of the next of the sprite's 63 data bytes
	pointer    uint16
}

// spritePAccessCycle gives the VIC cycle number (1-based, matching the
// documented numbering) of each sprite's p-access, per the fixed per-line cycle assignment used by real hardware.
var spritePAccessCycle = [8]int{58, 60, 62, 64, 66, 68, 1, 3}

// checkSpriteDMA latches DMA start for any sprite whose Y coordinate
// matches the current raster line's low 8 bits, and advances data-line
// counters for already-active sprites once per line (called at the start
// of each raster line).
func (v *VIC) checkSpriteDMA() {
	for i := range v.Sprites {
		s := &v.Sprites[i]
		if !s.Enabled {
			s.dma.active = false
			continue
		}
		if s.Y&0xff == v.RasterLine&0xff && !s.dma.active {
			s.dma.active = true
			s.dma.dataLine = 0
		}
		if s.dma.active {
			s.expansionFF = !s.ExpandY || !s.expansionFF
		}
	}
}

// doPAccess fetches sprite n's data pointer from the last 8 bytes of the
// video matrix and loads it into the sprite's DMA unit.
func (v *VIC) doPAccess(n int) {
	if v.Bus == nil {
		return
	}
	addr := v.vmBase + spritePointerOffset + uint16(n)
	ptr := v.Bus.VICRead(addr)
	v.Sprites[n].dma.pointer = uint16(ptr) << 6
}

// doSAccess fetches one of sprite n's three data bytes this line and
// shifts it into the 24-bit graphics shift register.
func (v *VIC) doSAccess(n int) {
	s := &v.Sprites[n]
	if !s.dma.active || v.Bus == nil {
		return
	}
	addr := s.dma.pointer + uint16(s.dma.dataLine)
	b := v.Bus.VICRead(addr)
	s.ShiftReg = s.ShiftReg<<8 | uint32(b)
	s.dma.dataLine++
	if s.dma.dataLine >= 63 {
		s.dma.active = false
		s.dma.dataLine = 0
	}
}

// outputPixel advances sprite n's shift register by one output pixel
// (two pixels when X-expanded, since the shift only moves on every other
// dot cycle) and reports the 2-bit multicolor or 1-bit hires pixel value
// plus whether it was opaque.
func (s *Sprite) outputPixel() (value uint8, opaque bool) {
	if s.Multicolor {
		pair := uint8(s.ShiftReg>>22) & 0x03
		if !s.ExpandX || s.pumpPhase {
			s.ShiftReg <<= 2
		}
		s.pumpPhase = !s.pumpPhase
		return pair, pair != 0
	}
	bit := uint8(s.ShiftReg>>23) & 0x01
	if !s.ExpandX || s.pumpPhase {
		s.ShiftReg <<= 1
	}
	s.pumpPhase = !s.pumpPhase
	return bit, bit != 0
}

// cycleSprites drives the p-access/s-access fetch schedule for whichever
// sprites own the current VIC cycle, per the fixed per-line cycle table.
func (v *VIC) cycleSprites() {
	for i, pCycle := range spritePAccessCycle {
		if v.RasterCycle == pCycle {
			v.doPAccess(i)
		}
		if v.Sprites[i].dma.active {
			for s := 0; s < 3; s++ {
				if v.RasterCycle == pCycle+2+s {
					v.doSAccess(i)
				}
			}
		}
	}
}

// checkCollision latches sprite-sprite and sprite-background collision
// bits; both kinds of collision latch until the corresponding status
// register is read (see Read's $D01E/$D01F handling).
func (v *VIC) checkCollision(spriteMask, backgroundHit uint8) {
	for i := 0; i < 8; i++ {
		bit := uint8(1) << uint(i)
		if spriteMask&bit != 0 {
			others := spriteMask &^ bit
			if others != 0 {
				v.collisionSS |= bit
				v.Sprites[i].CollisionSS = true
				v.irr |= 0x04
			}
			if backgroundHit&bit != 0 {
				v.collisionSB |= bit
				v.Sprites[i].CollisionSB = true
				v.irr |= 0x02
			}
		}
	}
	v.updateIRQ()
}
