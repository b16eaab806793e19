package iec

// C64Connector translates between the bus's Lines and CIA2 port A, which
// on real hardware drives/senses ATN (bit 3), CLOCK OUT (bit 4) and DATA
// OUT (bit 5), with CLOCK IN/DATA IN read back on bits 6/7. Grounded on
// the CBM2031Connector idiom (Vanders' cbm2031 emulator): translate a
// parallel port's bits to/from named serial-bus signals rather than
// modeling the IEC as its own addressable device.
type C64Connector struct {
	Bus  *Bus
	Name string
}

const (
	paATNOut   = 1 << 3
	paClockOut = 1 << 4
	paDataOut  = 1 << 5
	paClockIn  = 1 << 6
	paDataIn   = 1 << 7
)

// FromPA publishes this C64's outgoing ATN/CLOCK/DATA state onto the bus,
// given the current value of CIA2 port A (active-high bits that assert
// the corresponding active-low bus line).
func (c C64Connector) FromPA(pa uint8) {
	c.Bus.SetDevice(c.Name, Lines{
		ATN:   pa&paATNOut != 0,
		Clock: pa&paClockOut != 0,
		Data:  pa&paDataOut != 0,
	})
}

// ToPA returns the CLOCK IN / DATA IN bits (6, 7) reflecting the bus's
// current shared state, to be ORed into a port-A read by the caller.
func (c C64Connector) ToPA() uint8 {
	var v uint8
	s := c.Bus.State()
	if s.Clock {
		v |= paClockIn
	}
	if s.Data {
		v |= paDataIn
	}
	return v
}

// DriveConnector translates between the bus's Lines and the 1541's VIA1
// port B, which on real 1541 hardware drives DATA OUT (bit 1) and CLOCK
// OUT (bit 3) and senses DATA IN (bit 0), CLOCK IN (bit 2) and ATN IN
// (bit 7, also wired to CA1 for edge-triggered ATN detection).
type DriveConnector struct {
	Bus  *Bus
	Name string
}

const (
	pbDataIn   = 1 << 0
	pbDataOut  = 1 << 1
	pbClockIn  = 1 << 2
	pbClockOut = 1 << 3
	pbATNIn    = 1 << 7
)

// FromPB publishes the drive's outgoing CLOCK/DATA state onto the bus.
// The 1541 never drives ATN (only the C64 does), so this participant
// never asserts that line.
func (d DriveConnector) FromPB(pb uint8) {
	d.Bus.SetDevice(d.Name, Lines{
		Clock: pb&pbClockOut != 0,
		Data:  pb&pbDataOut != 0,
	})
}

// ToPB returns the DATA IN / CLOCK IN / ATN IN bits reflecting the bus's
// current shared state, to be ORed into a port-B read by the caller.
func (d DriveConnector) ToPB() uint8 {
	var v uint8
	s := d.Bus.State()
	if s.Data {
		v |= pbDataIn
	}
	if s.Clock {
		v |= pbClockIn
	}
	if s.ATN {
		v |= pbATNIn
	}
	return v
}

// ATNAsserted reports whether the bus's ATN line is currently pulled low,
// the edge the drive's VIA1 CA1 input watches for to interrupt the DOS
// out of an idle loop.
func (d DriveConnector) ATNAsserted() bool {
	return d.Bus.State().ATN
}
