package cia

// State is a complete snapshot of one CIA's internal state: both ports'
// data/direction registers, both timers, the interrupt pending/mask pair,
// the shift register, and the TOD clock. Captured directly from the
// package's private fields rather than through Read, so nothing is
// cleared or otherwise disturbed by taking it (unlike reading $D01E/$D01F
// on the VIC, CIA register reads have no comparable destructive side
// effect on the fields this covers, but capturing state this way still
// keeps the two concerns — bus access and persistence — separate).
type State struct {
	PRA, PRB   uint8
	DDRA, DDRB uint8

	TimerA, TimerB TimerState
	TBCountSrc     uint8

	Delay, Feed uint64

	ICRPending    uint8
	ICRMask       uint8
	ICRAckPending uint8
	IRQAsserted   bool

	SPOutput bool
	SDR      uint8
	SRCount  int

	TOD TODState
}

// TimerState mirrors the private timer struct.
type TimerState struct {
	Latch   uint16
	Counter uint16
	Running bool
	OneShot bool
	Toggle  bool
}

// TODState mirrors the private TOD struct.
type TODState struct {
	Tenths, Seconds, Minutes, Hours uint8
	PM                              bool

	AlarmTenths, AlarmSeconds, AlarmMinutes, AlarmHours uint8
	AlarmPM                                             bool
	WritingAlarm                                        bool

	Stopped bool
	Frozen  bool
	FrozenTenths, FrozenSeconds, FrozenMinutes, FrozenHours uint8
	FrozenPM                                                bool

	LastMatch bool
}

func exportTimer(t timer) TimerState {
	return TimerState{Latch: t.latch, Counter: t.counter, Running: t.running, OneShot: t.oneShot, Toggle: t.toggle}
}

func importTimer(s TimerState) timer {
	return timer{latch: s.Latch, counter: s.Counter, running: s.Running, oneShot: s.OneShot, toggle: s.Toggle}
}

func exportTOD(t TOD) TODState {
	return TODState{
		Tenths: t.tenths, Seconds: t.seconds, Minutes: t.minutes, Hours: t.hours, PM: t.pm,
		AlarmTenths: t.alarmTenths, AlarmSeconds: t.alarmSeconds, AlarmMinutes: t.alarmMinutes,
		AlarmHours: t.alarmHours, AlarmPM: t.alarmPM, WritingAlarm: t.writingAlarm,
		Stopped: t.stopped, Frozen: t.frozen,
		FrozenTenths: t.frozenTenths, FrozenSeconds: t.frozenSeconds,
		FrozenMinutes: t.frozenMinutes, FrozenHours: t.frozenHours, FrozenPM: t.frozenPM,
		LastMatch: t.lastMatch,
	}
}

func importTOD(s TODState) TOD {
	return TOD{
		tenths: s.Tenths, seconds: s.Seconds, minutes: s.Minutes, hours: s.Hours, pm: s.PM,
		alarmTenths: s.AlarmTenths, alarmSeconds: s.AlarmSeconds, alarmMinutes: s.AlarmMinutes,
		alarmHours: s.AlarmHours, alarmPM: s.AlarmPM, writingAlarm: s.WritingAlarm,
		stopped: s.Stopped, frozen: s.Frozen,
		frozenTenths: s.FrozenTenths, frozenSeconds: s.FrozenSeconds,
		frozenMinutes: s.FrozenMinutes, frozenHours: s.FrozenHours, frozenPM: s.FrozenPM,
		lastMatch: s.LastMatch,
	}
}

// State returns a complete copy of this CIA's internal state.
func (c *CIA) State() State {
	return State{
		PRA: c.pra, PRB: c.prb, DDRA: c.ddra, DDRB: c.ddrb,
		TimerA: exportTimer(c.ta), TimerB: exportTimer(c.tb), TBCountSrc: c.tbCountSrc,
		Delay: c.delay, Feed: c.feed,
		ICRPending: c.icrPending, ICRMask: c.icrMask, ICRAckPending: c.icrAckPending, IRQAsserted: c.irqAsserted,
		SPOutput: c.spOutput, SDR: c.sdr, SRCount: c.srCount,
		TOD: exportTOD(c.tod),
	}
}

// SetState restores a previously captured State.
func (c *CIA) SetState(s State) {
	c.pra, c.prb, c.ddra, c.ddrb = s.PRA, s.PRB, s.DDRA, s.DDRB
	c.ta = importTimer(s.TimerA)
	c.tb = importTimer(s.TimerB)
	c.tbCountSrc = s.TBCountSrc
	c.delay, c.feed = s.Delay, s.Feed
	c.icrPending, c.icrMask, c.icrAckPending, c.irqAsserted = s.ICRPending, s.ICRMask, s.ICRAckPending, s.IRQAsserted
	c.spOutput, c.sdr, c.srCount = s.SPOutput, s.SDR, s.SRCount
	c.tod = importTOD(s.TOD)
}
