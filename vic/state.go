package vic

// State is a complete snapshot of one VIC-II instance's internal state:
// every CPU-visible register plus the hidden counters (raster position,
// bad-line latch, sprite DMA/shift-register state, shadow-register commit
// pipeline) that register reads/writes alone don't expose. Unlike Read,
// capturing state this way has no side effects — collision latches and
// interrupt flags are copied, not cleared.
type State struct {
	RasterLine  int
	RasterCycle int

	DenWasSetAtLine0x30 bool
	BadLine             bool
	BA                  bool
	IRQ                 bool

	YScroll       ShadowRegState
	XScroll       ShadowRegState
	Ctrl1         ShadowRegState
	Ctrl2         ShadowRegState
	RasterCompare ShadowRegState
	BorderColor   ShadowRegState
	BgColor       [4]ShadowRegState
	SpriteMulti   [2]ShadowRegState

	IMR uint8
	IRR uint8

	Sprites     [8]SpriteState
	MSBX        uint8
	CollisionSS uint8
	CollisionSB uint8

	VC, VMLI int
	RC       int

	VMBase   uint16
	CharBase uint16

	GrayDotBug bool
	Delay      uint64
}

// ShadowRegState mirrors shadowReg's exported fields.
type ShadowRegState struct {
	Current uint8
	Delayed uint8
}

// SpriteState mirrors the parts of Sprite (plus its private DMA unit) not
// already addressable through a register.
type SpriteState struct {
	X, Y        int
	Enabled     bool
	Multicolor  bool
	ExpandX     bool
	ExpandY     bool
	Priority    bool
	Color       uint8
	MC          uint8
	ShiftReg    uint32
	ExpansionFF bool
	PumpPhase   bool
	CollisionSS bool
	CollisionSB bool

	DMAActive   bool
	DMADataLine int
	DMAPointer  uint16
}

func exportShadow(s shadowReg) ShadowRegState {
	return ShadowRegState{Current: s.Current, Delayed: s.Delayed}
}

func importShadow(s ShadowRegState) shadowReg {
	return shadowReg{Current: s.Current, Delayed: s.Delayed}
}

// State returns a complete, side-effect-free copy of this VIC's internal
// state, suitable for inclusion in a snapshot descriptor.
func (v *VIC) State() State {
	st := State{
		RasterLine:          v.RasterLine,
		RasterCycle:         v.RasterCycle,
		DenWasSetAtLine0x30: v.denWasSetAtLine0x30,
		BadLine:             v.badLine,
		BA:                  v.BA,
		IRQ:                 v.IRQ,
		YScroll:             exportShadow(v.yscroll),
		XScroll:             exportShadow(v.xscroll),
		Ctrl1:               exportShadow(v.ctrl1),
		Ctrl2:               exportShadow(v.ctrl2),
		RasterCompare:       exportShadow(v.rasterCompare),
		BorderColor:         exportShadow(v.borderColor),
		IMR:                 v.imr,
		IRR:                 v.irr,
		MSBX:                v.msbX,
		CollisionSS:         v.collisionSS,
		CollisionSB:         v.collisionSB,
		VC:                  v.vc,
		VMLI:                v.vmli,
		RC:                  v.rc,
		VMBase:              v.vmBase,
		CharBase:            v.charBase,
		GrayDotBug:          v.GrayDotBug,
		Delay:               v.delay,
	}
	for i := range v.bgColor {
		st.BgColor[i] = exportShadow(v.bgColor[i])
	}
	for i := range v.spriteMulti {
		st.SpriteMulti[i] = exportShadow(v.spriteMulti[i])
	}
	for i, s := range v.Sprites {
		st.Sprites[i] = SpriteState{
			X: s.X, Y: s.Y,
			Enabled: s.Enabled, Multicolor: s.Multicolor,
			ExpandX: s.ExpandX, ExpandY: s.ExpandY,
			Priority: s.Priority, Color: s.Color,
			MC: s.MC, ShiftReg: s.ShiftReg,
			ExpansionFF: s.expansionFF, PumpPhase: s.pumpPhase,
			CollisionSS: s.CollisionSS, CollisionSB: s.CollisionSB,
			DMAActive: s.dma.active, DMADataLine: s.dma.dataLine, DMAPointer: s.dma.pointer,
		}
	}
	return st
}

// SetState restores a previously captured State.
func (v *VIC) SetState(st State) {
	v.RasterLine = st.RasterLine
	v.RasterCycle = st.RasterCycle
	v.denWasSetAtLine0x30 = st.DenWasSetAtLine0x30
	v.badLine = st.BadLine
	v.BA = st.BA
	v.IRQ = st.IRQ
	v.yscroll = importShadow(st.YScroll)
	v.xscroll = importShadow(st.XScroll)
	v.ctrl1 = importShadow(st.Ctrl1)
	v.ctrl2 = importShadow(st.Ctrl2)
	v.rasterCompare = importShadow(st.RasterCompare)
	v.borderColor = importShadow(st.BorderColor)
	v.imr = st.IMR
	v.irr = st.IRR
	v.msbX = st.MSBX
	v.collisionSS = st.CollisionSS
	v.collisionSB = st.CollisionSB
	v.vc = st.VC
	v.vmli = st.VMLI
	v.rc = st.RC
	v.vmBase = st.VMBase
	v.charBase = st.CharBase
	v.GrayDotBug = st.GrayDotBug
	v.delay = st.Delay
	for i := range st.BgColor {
		v.bgColor[i] = importShadow(st.BgColor[i])
	}
	for i := range st.SpriteMulti {
		v.spriteMulti[i] = importShadow(st.SpriteMulti[i])
	}
	for i, ss := range st.Sprites {
		v.Sprites[i] = Sprite{
			X: ss.X, Y: ss.Y,
			Enabled: ss.Enabled, Multicolor: ss.Multicolor,
			ExpandX: ss.ExpandX, ExpandY: ss.ExpandY,
			Priority: ss.Priority, Color: ss.Color,
			MC: ss.MC, ShiftReg: ss.ShiftReg,
			expansionFF: ss.ExpansionFF, pumpPhase: ss.PumpPhase,
			CollisionSS: ss.CollisionSS, CollisionSB: ss.CollisionSB,
			dma: spriteDMA{active: ss.DMAActive, dataLine: ss.DMADataLine, pointer: ss.DMAPointer},
		}
	}
}
