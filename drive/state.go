package drive

// VIAState is a complete snapshot of one VIA's internal state.
type VIAState struct {
	ORA, ORB   uint8
	DDRA, DDRB uint8

	T1C, T1L uint16
	T2C, T2L uint16
	T1Active bool
	T2Active bool

	SR uint8

	ACR uint8
	PCR uint8

	IFR uint8
	IER uint8

	CA1, CA2, CB1, CB2 bool
}

// State returns a complete copy of this VIA's internal state.
func (v *VIA) State() VIAState {
	return VIAState{
		ORA: v.ora, ORB: v.orb, DDRA: v.ddra, DDRB: v.ddrb,
		T1C: v.t1c, T1L: v.t1l, T2C: v.t2c, T2L: v.t2l,
		T1Active: v.t1Active, T2Active: v.t2Active,
		SR: v.sr, ACR: v.acr, PCR: v.pcr, IFR: v.ifr, IER: v.ier,
		CA1: v.ca1, CA2: v.ca2, CB1: v.cb1, CB2: v.cb2,
	}
}

// SetState restores a previously captured VIAState.
func (v *VIA) SetState(s VIAState) {
	v.ora, v.orb, v.ddra, v.ddrb = s.ORA, s.ORB, s.DDRA, s.DDRB
	v.t1c, v.t1l, v.t2c, v.t2l = s.T1C, s.T1L, s.T2C, s.T2L
	v.t1Active, v.t2Active = s.T1Active, s.T2Active
	v.sr, v.acr, v.pcr, v.ifr, v.ier = s.SR, s.ACR, s.PCR, s.IFR, s.IER
	v.ca1, v.ca2, v.cb1, v.cb2 = s.CA1, s.CA2, s.CB1, s.CB2
}

// HeadState is a complete snapshot of the read/write head's position and
// bit-clock state. Media itself (KeepOnReset, like the C64's own RAM
// disk image) is not part of this.
type HeadState struct {
	Halftrack int
	Offset    int

	UE7 int
	UE3 int

	ShiftReg      uint16
	InSync        bool
	BitsSinceSync int
}

// State returns a complete copy of the head's position/bit-clock state.
func (h *Head) State() HeadState {
	return HeadState{
		Halftrack: h.Halftrack, Offset: h.Offset,
		UE7: h.ue7, UE3: h.ue3,
		ShiftReg: h.shiftReg, InSync: h.inSync, BitsSinceSync: h.bitsSinceSync,
	}
}

// SetState restores a previously captured HeadState.
func (h *Head) SetState(s HeadState) {
	h.Halftrack, h.Offset = s.Halftrack, s.Offset
	h.ue7, h.ue3 = s.UE7, s.UE3
	h.shiftReg, h.inSync, h.bitsSinceSync = s.ShiftReg, s.InSync, s.BitsSinceSync
}
