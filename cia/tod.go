package cia

// TOD is the CIA's time-of-day clock: BCD hours/minutes/seconds/tenths
// driven by a 50 or 60 Hz line-frequency input divided internally down to
// tenths of a second (CRA bit 7 selects the divisor), with an alarm
// register and the documented read/write freeze semantics (reading hours
// freezes the displayed fields until tenths is read; writing hours stops
// the clock until tenths is written).
type TOD struct {
	tenths, seconds, minutes, hours uint8 // each stored as BCD
	pm                              bool

	alarmTenths, alarmSeconds, alarmMinutes, alarmHours uint8
	alarmPM                                              bool
	writingAlarm                                         bool

	stopped bool
	frozen  bool
	frozenTenths, frozenSeconds, frozenMinutes, frozenHours uint8
	frozenPM                                                bool

	lastMatch bool

	// todIn50Hz mirrors control register A's TODIN bit: the line input is
	// 50 Hz when set, 60 Hz when clear. lineAccum counts line pulses
	// towards the next tenth-of-a-second digit, dividing by 5 or 6
	// accordingly so the displayed clock stays accurate regardless of
	// which mains frequency actually drives it.
	todIn50Hz bool
	lineAccum int
}

// SetLineFrequency is driven by CRA bit 7 (TODIN): true selects a 50 Hz
// line input, false 60 Hz.
func (t *TOD) SetLineFrequency(is50Hz bool) { t.todIn50Hz = is50Hz }

// LineFrequency reports the currently selected TODIN state, for CRA reads.
func (t *TOD) LineFrequency() bool { return t.todIn50Hz }

func (t *TOD) lineDivider() int {
	if t.todIn50Hz {
		return 5
	}
	return 6
}

func bcdInc(v uint8, mod uint8) (uint8, bool) {
	lo := v & 0x0f
	hi := v >> 4
	lo++
	if lo == 10 {
		lo = 0
		hi++
	}
	v = hi<<4 | lo
	if v >= mod {
		return 0, true
	}
	return v, false
}

// tick is driven by one line-frequency pulse (50 or 60 Hz, per CRA bit 7);
// it divides that pulse down by 5 or 6 to reach the actual tenth-of-a-
// second rate before advancing the BCD digits.
func (t *TOD) tick() {
	if t.stopped {
		return
	}
	t.lineAccum++
	if t.lineAccum < t.lineDivider() {
		return
	}
	t.lineAccum = 0
	t.tenths++
	if t.tenths < 0x0a {
		return
	}
	t.tenths = 0
	var carry bool
	t.seconds, carry = bcdInc(t.seconds, 0x60)
	if !carry {
		return
	}
	t.minutes, carry = bcdInc(t.minutes, 0x60)
	if !carry {
		return
	}
	// hours roll 12->1 with AM/PM toggling at the 12 boundary, BCD 1-12.
	next, rolled := bcdInc(t.hours&0x1f, 0x13)
	if rolled {
		next = 0x01
	}
	if next == 0x12 {
		t.pm = !t.pm
	}
	t.hours = next
}

func (t *TOD) matchesAlarm() bool {
	match := t.tenths == t.alarmTenths &&
		t.seconds == t.alarmSeconds &&
		t.minutes == t.alarmMinutes &&
		t.hours == t.alarmHours &&
		t.pm == t.alarmPM
	fire := match && !t.lastMatch
	t.lastMatch = match
	return fire
}

func (t *TOD) readTenths() uint8 {
	if t.frozen {
		t.frozen = false
		return t.frozenTenths
	}
	return t.tenths
}

func (t *TOD) readSeconds() uint8 {
	if t.frozen {
		return t.frozenSeconds
	}
	return t.seconds
}

func (t *TOD) readMinutes() uint8 {
	if t.frozen {
		return t.frozenMinutes
	}
	return t.minutes
}

func (t *TOD) readHours() uint8 {
	if !t.frozen {
		t.frozen = true
		t.frozenTenths, t.frozenSeconds, t.frozenMinutes, t.frozenHours, t.frozenPM =
			t.tenths, t.seconds, t.minutes, t.hours, t.pm
	}
	h := t.frozenHours
	if t.frozenPM {
		h |= 0x80
	}
	return h
}

func (t *TOD) writeTenths(v uint8) {
	v &= 0x0f
	if t.writingAlarm {
		t.alarmTenths = v
	} else {
		t.tenths = v
		t.stopped = false
	}
}

func (t *TOD) writeSeconds(v uint8) {
	v &= 0x7f
	if t.writingAlarm {
		t.alarmSeconds = v
	} else {
		t.seconds = v
	}
}

func (t *TOD) writeMinutes(v uint8) {
	v &= 0x7f
	if t.writingAlarm {
		t.alarmMinutes = v
	} else {
		t.minutes = v
	}
}

func (t *TOD) writeHours(v uint8) {
	pm := v&0x80 != 0
	v &= 0x1f
	if t.writingAlarm {
		t.alarmHours = v
		t.alarmPM = pm
	} else {
		t.hours = v
		t.pm = pm
		t.stopped = true
	}
}

// SetWritingAlarm is driven by bit 7 of control register B: when set,
// writes to the TOD registers target the alarm latch instead of the live
// clock.
func (t *TOD) SetWritingAlarm(on bool) { t.writingAlarm = on }
