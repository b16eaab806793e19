package mem

// PortState is a complete snapshot of the 6510 processor port's internal
// state, including the per-bit capacitor-discharge bookkeeping that
// RAM/DDR alone don't capture.
type PortState struct {
	DDR  uint8
	Data uint8

	DischargeAt [8]uint64
	LastLevel   [8]bool

	DatasetteSense bool
}

// PortState returns a complete copy of the processor port's internal
// state.
func (m *Memory) PortState() PortState {
	return PortState{
		DDR: m.port.ddr, Data: m.port.data,
		DischargeAt: m.port.dischargeAt, LastLevel: m.port.lastLevel,
		DatasetteSense: m.port.datasetteSense,
	}
}

// SetPortState restores a previously captured PortState and rebuilds the
// bank-selection tables it drives.
func (m *Memory) SetPortState(s PortState) {
	m.port.ddr, m.port.data = s.DDR, s.Data
	m.port.dischargeAt, m.port.lastLevel = s.DischargeAt, s.LastLevel
	m.port.datasetteSense = s.DatasetteSense
	m.rebuildBankTables()
}
