// Package vic emulates the VIC-II video chip: the raster engine, bad-line
// bus stealing, sprites, and the shadow-register delay pipeline that
// governs when a register write actually takes visible effect.
package vic

import "fmt"

// Model selects the PAL/NTSC raster geometry.
type Model int

const (
	Model6569PAL Model = iota
	Model6567NTSC
	Model6567NTSCR56A
)

type geometry struct {
	cyclesPerLine int
	linesPerFrame int
}

var geometries = map[Model]geometry{
	Model6569PAL:      {63, 312},
	Model6567NTSC:      {65, 263},
	Model6567NTSCR56A: {64, 262},
}

// Bus is the memory interface the VIC-II needs of its owner: reads go
// through the VIC's own bank-relative address space (character ROM,
// screen/color RAM, cartridge in ultimax mode).
type Bus interface {
	VICRead(addr uint16) uint8
	ColorRead(addr uint16) uint8
}

// shadowReg is one delayed-write register: writes land in Current
// immediately and are visible to the CPU on readback, but most VIC
// internal logic consumes Delayed, which a cycle-shifted pipeline bit
// copies Current into after the documented one-cycle delay.
type shadowReg struct {
	Current uint8
	Delayed uint8
}

func (s *shadowReg) write(v uint8) { s.Current = v }
func (s *shadowReg) commit()       { s.Delayed = s.Current }

// writeWithGrayDotBug is the buggy variant of write used by colour
// registers when GrayDotBug is enabled: it forces Delayed to gray (0xF)
// immediately, so the one cycle before the real commit shows a gray dot
// instead of the old colour.
func (s *shadowReg) writeWithGrayDotBug(v uint8) {
	s.Current = v
	s.Delayed = 0x0f
}

// Sprite is one of the eight hardware sprite units.
type Sprite struct {
	X, Y        int
	Enabled     bool
	Multicolor  bool
	ExpandX     bool
	ExpandY     bool
	Priority    bool // true = behind background
	Color       uint8
	MC          uint8 // data pointer counter, 0..62 across 3 DMA accesses
	ShiftReg    uint32
	expansionFF bool
	pumpPhase   bool
	CollisionSS bool
	CollisionSB bool

	dma spriteDMA
}

// VIC is one VIC-II instance.
type VIC struct {
	Model Model
	Bus   Bus

	RasterLine  int
	RasterCycle int // 1-based, matches the documented cycle numbering

	denWasSetAtLine0x30 bool
	badLine             bool

	BA  bool // bus-available output to the CPU's RDY input (active low in real hardware, true==asserted-low modeled as BA==false)
	IRQ bool

	yscroll shadowReg
	xscroll shadowReg
	ctrl1   shadowReg // $D011
	ctrl2   shadowReg // $D016
	rasterCompare shadowReg
	borderColor shadowReg
	bgColor     [4]shadowReg

	imr uint8
	irr uint8

	Sprites     [8]Sprite
	spriteMulti [2]shadowReg
	msbX        uint8

	collisionSS uint8
	collisionSB uint8

	vc, vmli int
	rc       int

	vmBase   uint16 // video matrix base, from bank + $D018 high nibble
	charBase uint16 // character generator base

	memSources memSourceTable

	Palette *Palette

	// GrayDotBug reproduces the documented glitch on some VIC-II revisions
	// where writing a colour register's current nibble also forces its
	// delayed nibble to gray (0xF) for the one cycle before the real
	// commit lands.
	GrayDotBug bool

	delay uint64 // shadow-register commit pipeline
}

func New(model Model, bus Bus, grayDotBug bool) *VIC {
	return &VIC{
		Model:      model,
		Bus:        bus,
		memSources: normalMemSourceTable(),
		Palette:    NewPalette(model),
		GrayDotBug: grayDotBug,
	}
}

func (v *VIC) String() string {
	return fmt.Sprintf("line=%d cycle=%d bad=%v BA=%v IRQ=%v", v.RasterLine, v.RasterCycle, v.badLine, v.BA, v.IRQ)
}

func (v *VIC) geometry() geometry { return geometries[v.Model] }

// Reset restores the documented power-on/reset state: the raster position
// returns to the top of the frame, every shadow register and sprite clears,
// and BA releases. Models the VIC-II's RES pin, wired to the same system
// reset net as the CPU and CIAs on real hardware.
func (v *VIC) Reset() {
	v.RasterLine = 0
	v.RasterCycle = 0
	v.denWasSetAtLine0x30 = false
	v.badLine = false
	v.BA = true
	v.IRQ = false
	v.yscroll = shadowReg{}
	v.xscroll = shadowReg{}
	v.ctrl1 = shadowReg{}
	v.ctrl2 = shadowReg{}
	v.rasterCompare = shadowReg{}
	v.borderColor = shadowReg{}
	for i := range v.bgColor {
		v.bgColor[i] = shadowReg{}
	}
	v.imr = 0
	v.irr = 0
	v.Sprites = [8]Sprite{}
	v.spriteMulti = [2]shadowReg{}
	v.msbX = 0
	v.collisionSS = 0
	v.collisionSB = 0
	v.vc, v.vmli, v.rc = 0, 0, 0
	v.delay = 0
}

// BadLine reports whether the current cycle falls within a bad line, per
// P8: DEN was set while scanning line 0x30, the current line is within
// [0x30,0xF7], and its low 3 bits match YSCROLL.
func (v *VIC) BadLine() bool { return v.badLine }

// denBit is $D011 bit 4 (display enable).
func (v *VIC) denBit() bool { return v.ctrl1.Current&0x10 != 0 }

func (v *VIC) yscrollValue() int { return int(v.ctrl1.Delayed & 0x07) }

// computeBadLine implements P8: DEN must have been set at line 0x30 at
// some point this frame, the current line must be in [0x30,0xF7], and the
// low 3 bits of the line must match YSCROLL.
func (v *VIC) computeBadLine() bool {
	if v.RasterLine == 0x30 && v.denBit() {
		v.denWasSetAtLine0x30 = true
	}
	return v.denWasSetAtLine0x30 &&
		v.RasterLine >= 0x30 && v.RasterLine <= 0xf7 &&
		v.RasterLine&7 == v.yscrollValue()
}

// Cycle runs one VIC-II cycle: advances the raster position, updates the
// BA/bad-line state, commits any shadow-register writes due this cycle,
// and generates interrupts. Called once per C64 master cycle, before the
// CPU's own cycle, per the documented VIC-before-CPU ordering.
func (v *VIC) Cycle() {
	v.delay = v.delay >> 1
	if v.delay&1 != 0 {
		v.commitShadows()
	}

	g := v.geometry()

	v.badLine = v.computeBadLine()

	// BA is asserted (forcing CPU RDY low) for the three cycles before the
	// first c-access of a bad line, and held through all 40 c-accesses.
	v.BA = true
	if v.badLine && v.RasterCycle >= 12 && v.RasterCycle <= 54 {
		v.BA = false
	}

	if v.badLine && v.RasterCycle >= 15 && v.RasterCycle <= 54 {
		v.doCAccess()
	}

	v.cycleSprites()

	if v.RasterCycle == 1 && v.rasterMatches() {
		v.irr |= 0x01
		v.updateIRQ()
	}

	v.RasterCycle++
	if v.RasterCycle > g.cyclesPerLine {
		v.RasterCycle = 1
		v.checkSpriteDMA()
		v.RasterLine++
		if v.RasterLine >= g.linesPerFrame {
			v.RasterLine = 0
			v.denWasSetAtLine0x30 = false
			v.vc = 0
		}
		if v.RasterLine == 0 {
			v.rc = 0
		}
		if v.badLine {
			v.rc = (v.rc + 1) & 0x07
		}
	}
}

func (v *VIC) rasterMatches() bool {
	line9 := int(v.rasterCompare.Delayed) | (int(v.ctrl1.Delayed&0x80) << 1)
	return v.RasterLine == line9
}

func (v *VIC) doCAccess() {
	if v.Bus == nil {
		return
	}
	addr := v.vmBase + uint16(v.vc)
	_ = v.Bus.VICRead(addr)
	_ = v.Bus.ColorRead(uint16(v.vc))
	v.vc++
	v.vmli++
}

func (v *VIC) commitShadows() {
	v.yscroll.commit()
	v.xscroll.commit()
	v.ctrl1.commit()
	v.ctrl2.commit()
	v.rasterCompare.commit()
	v.borderColor.commit()
	for i := range v.bgColor {
		v.bgColor[i].commit()
	}
}

// writeColor applies a colour-register write, including the gray-dot-bug
// glitch when enabled, then schedules the normal one-cycle commit.
func (v *VIC) writeColor(reg *shadowReg, val uint8) {
	if v.GrayDotBug {
		reg.writeWithGrayDotBug(val)
	} else {
		reg.write(val)
	}
	v.scheduleCommit(1)
}

func (v *VIC) scheduleCommit(delayCycles int) {
	if delayCycles <= 0 {
		v.delay |= 1
		return
	}
	v.delay |= 1 << uint(delayCycles)
}

func (v *VIC) updateIRQ() {
	if v.irr&v.imr&0x0f != 0 {
		v.irr |= 0x80
		v.IRQ = true
	} else {
		v.irr &^= 0x80
		v.IRQ = false
	}
}

// Read services a CPU read of one of the 47 VIC registers at
// $D000-$D02E, with the documented "unused bits read as 1" masking.
func (v *VIC) Read(reg int) uint8 {
	switch reg {
	case 0x11:
		val := v.ctrl1.Current & 0x7f
		if v.RasterLine > 0xff {
			val |= 0x80
		}
		return val
	case 0x12:
		return uint8(v.RasterLine)
	case 0x16:
		return v.ctrl2.Current | 0xc0
	case 0x19:
		return v.irr | 0x70
	case 0x1a:
		return v.imr | 0xf0
	case 0x10:
		return v.msbX
	case 0x15:
		var m uint8
		for i, s := range v.Sprites {
			if s.Enabled {
				m |= 1 << uint(i)
			}
		}
		return m
	case 0x17:
		var m uint8
		for i, s := range v.Sprites {
			if s.ExpandY {
				m |= 1 << uint(i)
			}
		}
		return m
	case 0x18:
		return uint8(v.vmBase>>6) | uint8(v.charBase>>11)<<1 | 0x01
	case 0x1b:
		var m uint8
		for i, s := range v.Sprites {
			if s.Priority {
				m |= 1 << uint(i)
			}
		}
		return m
	case 0x1c:
		var m uint8
		for i, s := range v.Sprites {
			if s.Multicolor {
				m |= 1 << uint(i)
			}
		}
		return m
	case 0x1d:
		var m uint8
		for i, s := range v.Sprites {
			if s.ExpandX {
				m |= 1 << uint(i)
			}
		}
		return m
	case 0x1e:
		m := v.collisionSS
		v.collisionSS = 0
		for i := range v.Sprites {
			v.Sprites[i].CollisionSS = false
		}
		return m
	case 0x1f:
		m := v.collisionSB
		v.collisionSB = 0
		for i := range v.Sprites {
			v.Sprites[i].CollisionSB = false
		}
		return m
	case 0x20:
		return v.borderColor.Current | 0xf0
	}
	if reg >= 0x00 && reg <= 0x0f {
		if reg%2 == 0 {
			return uint8(v.Sprites[reg/2].X)
		}
		return uint8(v.Sprites[reg/2].Y)
	}
	if reg >= 0x21 && reg <= 0x24 {
		return v.bgColor[reg-0x21].Current | 0xf0
	}
	if reg == 0x25 || reg == 0x26 {
		return v.spriteMulti[reg-0x25].Current | 0xf0
	}
	if reg >= 0x27 && reg <= 0x2e {
		return v.Sprites[reg-0x27].Color | 0xf0
	}
	return 0xff
}

// Write services a CPU write to a VIC register. Writes land in the
// shadow register's Current field immediately; the commit into Delayed
// is scheduled through the pipeline per the teacher's shift-pipeline
// idiom rather than applied synchronously.
func (v *VIC) Write(reg int, val uint8) {
	switch reg {
	case 0x11:
		v.ctrl1.write(val)
		v.scheduleCommit(1)
	case 0x12:
		v.rasterCompare.write(val)
		v.scheduleCommit(1)
	case 0x16:
		v.ctrl2.write(val)
		v.scheduleCommit(1)
	case 0x19:
		v.irr &^= val & 0x0f
		v.updateIRQ()
	case 0x1a:
		v.imr = val & 0x0f
		v.updateIRQ()
	case 0x10:
		v.msbX = val
		for i := range v.Sprites {
			lo := v.Sprites[i].X & 0xff
			if val&(1<<uint(i)) != 0 {
				v.Sprites[i].X = lo | 0x100
			} else {
				v.Sprites[i].X = lo
			}
		}
	case 0x15:
		for i := range v.Sprites {
			v.Sprites[i].Enabled = val&(1<<uint(i)) != 0
		}
	case 0x17:
		for i := range v.Sprites {
			v.Sprites[i].ExpandY = val&(1<<uint(i)) != 0
		}
	case 0x18:
		v.vmBase = uint16(val>>4) << 10
		v.charBase = uint16(val>>1&0x07) << 11
	case 0x1b:
		for i := range v.Sprites {
			v.Sprites[i].Priority = val&(1<<uint(i)) != 0
		}
	case 0x1c:
		for i := range v.Sprites {
			v.Sprites[i].Multicolor = val&(1<<uint(i)) != 0
		}
	case 0x1d:
		for i := range v.Sprites {
			v.Sprites[i].ExpandX = val&(1<<uint(i)) != 0
		}
	case 0x20:
		v.writeColor(&v.borderColor, val)
	}
	if reg >= 0x00 && reg <= 0x0f {
		n := reg / 2
		if reg%2 == 0 {
			hi := v.Sprites[n].X & 0x100
			v.Sprites[n].X = hi | int(val)
		} else {
			v.Sprites[n].Y = int(val)
		}
	}
	if reg >= 0x21 && reg <= 0x24 {
		v.writeColor(&v.bgColor[reg-0x21], val)
	}
	if reg == 0x25 || reg == 0x26 {
		v.writeColor(&v.spriteMulti[reg-0x25], val)
	}
	if reg >= 0x27 && reg <= 0x2e {
		v.Sprites[reg-0x27].Color = val & 0x0f
	}
}
