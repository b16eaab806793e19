// Package cia emulates the MOS 6526/8521 Complex Interface Adapter: two
// 16-bit timers, a BCD time-of-day clock with alarm, an 8-bit serial shift
// register, two parallel ports, and interrupt generation. The C64 carries
// two of these (CIA1 drives the keyboard/joysticks and the CPU IRQ line,
// CIA2 drives the VIC bank select, user port, and the CPU NMI line).
package cia

import "fmt"

// Model selects the NMOS 6526 vs. CMOS 8521 ICR-read quirk.
type Model int

const (
	Model6526 Model = iota
	Model8521
)

// delay/feed pipeline bits. A write schedules a bit into feed; Tick moves
// it into delay one cycle later, where it is "due". Two-stage bits
// (countX0/countX1, loadX0/loadX1, readIcr/clearIcr) carry a request
// through a second cycle before they take effect, the documented two-cycle
// latency between a register access and the behaviour it causes;
// single-stage bits (oneShotX0, setIntX) model a plain one-cycle delay.
// This is the same "current/delayed register pair with a shift-pipeline"
// idiom the VIC-II's shadow registers use (scheduleCommit/commit), applied
// here to timer start/load sequencing and the 8521's two-cycle ICR clear
// instead of video register latching.
const (
	countA0 = 1 << iota
	countA1
	loadA0
	loadA1
	oneShotA0
	setIntA
	clearIcr
	readIcr
	countB0
	countB1
	loadB0
	loadB1
	oneShotB0
	setIntB
)

// Ports exposes the chip's two parallel ports to the owning bus so port
// side effects (keyboard matrix scan, VIC bank select, IEC lines, user
// port) can be wired in without CIA needing to know what's attached.
type Ports struct {
	ReadA  func(ddr uint8) uint8
	WriteA func(value, ddr uint8)
	ReadB  func(ddr uint8) uint8
	WriteB func(value, ddr uint8)
}

type timer struct {
	latch   uint16
	counter uint16
	running bool
	oneShot bool
	toggle  bool // PB output pulse/toggle state
}

// CIA is one 6526/8521 instance.
type CIA struct {
	Model Model
	Name  string

	pra, prb   uint8
	ddra, ddrb uint8

	ta, tb timer

	// tbCountSrc is CRB's INMODE (bits 6:5): 0 counts phi2, 1 counts CNT
	// pulses, 2 counts timer A underflows, 3 counts timer A underflows
	// gated by CNT. Neither CIA in this core has an external CNT source
	// wired to it, so mode 1 never advances (an unconnected input idles
	// high) and mode 3 behaves like mode 2.
	tbCountSrc uint8

	delay, feed uint64

	icrPending    uint8
	icrMask       uint8
	icrAckPending uint8 // 8521 only: bits snapshotted at an ICR read, cleared two cycles later
	irqAsserted   bool

	// spOutput mirrors CRA bit 6 (SPMODE): true shifts the serial register
	// out one bit per timer A underflow, raising the SP interrupt every
	// eighth bit. Input mode is clocked by the same unconnected CNT line
	// as CRB's INMODE 1 and is not modeled.
	spOutput bool
	sdr      uint8
	srCount  int

	tod TOD

	Ports Ports
}

func New(name string, model Model) *CIA {
	return &CIA{Name: name, Model: model}
}

func (c *CIA) String() string {
	return fmt.Sprintf("%s: TA=%04x TB=%04x ICR=%02x IMR=%02x", c.Name, c.ta.counter, c.tb.counter, c.icrPending, c.icrMask)
}

// IRQ reports whether this CIA is currently pulling its interrupt output
// low. Once raised the level follows icrPending/icrMask combinationally,
// but a freshly pending source only raises it one cycle after the
// underflow that set it (setIntA/setIntB), matching the documented
// propagation delay to the external IRQ pin.
func (c *CIA) IRQ() bool {
	return c.irqAsserted && c.icrPending&c.icrMask&0x1f != 0
}

// Reset restores the documented power-on/reset state: both ports become
// inputs with their output latches clear, both timers stop, the interrupt
// mask and pending flags clear, and the TOD clock halts at midnight. Models
// the 6526/8521's dedicated RES pin, wired to the system reset line on
// real hardware.
func (c *CIA) Reset() {
	c.pra, c.prb = 0, 0
	c.ddra, c.ddrb = 0, 0
	c.ta = timer{}
	c.tb = timer{}
	c.tbCountSrc = 0
	c.delay, c.feed = 0, 0
	c.icrPending, c.icrMask, c.icrAckPending = 0, 0, 0
	c.irqAsserted = false
	c.spOutput = false
	c.sdr = 0
	c.srCount = 0
	c.tod = TOD{stopped: true}
}

func (c *CIA) setPending(bit uint8) {
	c.icrPending |= bit & 0x1f
}

const (
	icrTA   = 1 << 0
	icrTB   = 1 << 1
	icrAlrm = 1 << 2
	icrSP   = 1 << 3
	icrFlag = 1 << 4
)

// Tick advances the CIA by one cycle. It shifts the delay pipeline (last
// cycle's feed becomes this cycle's due bits; any two-stage bits still in
// flight advance one more stage), steps both timers, and, when linePulse
// is set, feeds the TOD clock one pulse of its 50/60 Hz line input (the
// TOD itself divides that down to tenths of a second per CRA bit 7).
func (c *CIA) Tick(linePulse bool) {
	due := c.delay

	advanced := uint64(0)
	if due&countA0 != 0 {
		advanced |= countA1
	}
	if due&loadA0 != 0 {
		advanced |= loadA1
	}
	if due&countB0 != 0 {
		advanced |= countB1
	}
	if due&loadB0 != 0 {
		advanced |= loadB1
	}
	if due&readIcr != 0 {
		advanced |= clearIcr
	}
	c.delay = advanced | c.feed
	c.feed = 0

	if due&countA1 != 0 {
		c.ta.running = true
	}
	if due&loadA1 != 0 {
		c.ta.counter = c.ta.latch
	}
	if due&oneShotA0 != 0 {
		c.ta.running = false
	}
	if due&countB1 != 0 {
		c.tb.running = true
	}
	if due&loadB1 != 0 {
		c.tb.counter = c.tb.latch
	}
	if due&oneShotB0 != 0 {
		c.tb.running = false
	}
	if due&clearIcr != 0 {
		c.icrPending &^= c.icrAckPending
		c.icrAckPending = 0
	}

	var taUnderflow bool
	if c.ta.running {
		taUnderflow = c.stepTimerA()
	}
	c.stepTimerB(taUnderflow)

	if taUnderflow && c.spOutput {
		c.shiftOut()
	}

	if due&setIntA != 0 || due&setIntB != 0 {
		c.irqAsserted = true
	}
	if c.icrPending&c.icrMask&0x1f == 0 {
		c.irqAsserted = false
	}

	if linePulse {
		c.tod.tick()
		if c.tod.matchesAlarm() {
			c.setPending(icrAlrm)
			if icrAlrm&c.icrMask != 0 {
				c.irqAsserted = true
			}
		}
	}
}

func (c *CIA) stepTimerA() bool {
	if c.ta.counter == 0 {
		c.setPending(icrTA)
		c.feed |= setIntA
		c.ta.toggle = !c.ta.toggle
		if c.ta.oneShot {
			c.feed |= oneShotA0
		}
		c.ta.counter = c.ta.latch
		return true
	}
	c.ta.counter--
	return false
}

// stepTimerB decrements timer B according to its CRB-selected count
// source: phi2 (every cycle), timer A's underflow pulse, or a CNT input
// this core never drives (see tbCountSrc).
func (c *CIA) stepTimerB(taUnderflow bool) {
	if !c.tb.running {
		return
	}
	var advance bool
	switch c.tbCountSrc {
	case 0:
		advance = true
	case 1:
		advance = false
	default: // 2: TA underflow, 3: TA underflow gated by CNT (CNT idles high)
		advance = taUnderflow
	}
	if !advance {
		return
	}
	if c.tb.counter == 0 {
		c.setPending(icrTB)
		c.feed |= setIntB
		c.tb.toggle = !c.tb.toggle
		if c.tb.oneShot {
			c.feed |= oneShotB0
		}
		c.tb.counter = c.tb.latch
		return
	}
	c.tb.counter--
}

// shiftOut advances the serial register one bit on each timer A underflow
// while CRA's SPMODE selects output; after the eighth bit it raises the SP
// interrupt, the documented signal that a fresh byte may be loaded.
func (c *CIA) shiftOut() {
	c.sdr <<= 1
	c.srCount++
	if c.srCount >= 8 {
		c.srCount = 0
		c.setPending(icrSP)
		if icrSP&c.icrMask != 0 {
			c.irqAsserted = true
		}
	}
}

// register offsets, $00-$0F relative to the chip's base address.
const (
	RegPRA = iota
	RegPRB
	RegDDRA
	RegDDRB
	RegTALO
	RegTAHI
	RegTBLO
	RegTBHI
	RegTODTEN
	RegTODSEC
	RegTODMIN
	RegTODHR
	RegSDR
	RegICR
	RegCRA
	RegCRB
)

func (c *CIA) Read(reg int) uint8 {
	switch reg & 0x0f {
	case RegPRA:
		if c.Ports.ReadA != nil {
			return (c.Ports.ReadA(c.ddra) &^ c.ddra) | (c.pra & c.ddra)
		}
		return c.pra
	case RegPRB:
		v := c.prb
		if c.Ports.ReadB != nil {
			v = (c.Ports.ReadB(c.ddrb) &^ c.ddrb) | (c.prb & c.ddrb)
		}
		if c.ta.toggle {
			v |= 0x40
		}
		if c.tb.toggle {
			v |= 0x80
		}
		return v
	case RegDDRA:
		return c.ddra
	case RegDDRB:
		return c.ddrb
	case RegTALO:
		return uint8(c.ta.counter)
	case RegTAHI:
		return uint8(c.ta.counter >> 8)
	case RegTBLO:
		return uint8(c.tb.counter)
	case RegTBHI:
		return uint8(c.tb.counter >> 8)
	case RegTODTEN:
		return c.tod.readTenths()
	case RegTODSEC:
		return c.tod.readSeconds()
	case RegTODMIN:
		return c.tod.readMinutes()
	case RegTODHR:
		return c.tod.readHours()
	case RegSDR:
		return c.sdr
	case RegICR:
		return c.readICR()
	case RegCRA:
		v := uint8(0)
		if c.ta.running {
			v |= 0x01
		}
		if c.ta.oneShot {
			v |= 0x08
		}
		if c.spOutput {
			v |= 0x40
		}
		if c.tod.LineFrequency() {
			v |= 0x80
		}
		return v
	case RegCRB:
		v := uint8(0)
		if c.tb.running {
			v |= 0x01
		}
		if c.tb.oneShot {
			v |= 0x08
		}
		v |= c.tbCountSrc << 5
		return v
	}
	return 0
}

// readICR reports pending/unmasked interrupt sources and clears them per
// the model-specific quirk: the NMOS 6526 clears icrPending the instant it
// is read, racing a timer B underflow landing on the very same cycle (the
// well known "timer B bug", where that cycle's new pending bit is lost);
// the CMOS 8521 instead snapshots the bits pending at read time and clears
// only those, two cycles later, so a source that sets the same bit inside
// that window is not lost.
func (c *CIA) readICR() uint8 {
	v := c.icrPending & 0x1f
	if c.icrPending&c.icrMask&0x1f != 0 {
		v |= 0x80
	}
	if c.Model == Model8521 {
		c.icrAckPending = c.icrPending
		c.feed |= readIcr
	} else {
		c.icrPending = 0
	}
	return v
}

func (c *CIA) Write(reg int, v uint8) {
	switch reg & 0x0f {
	case RegPRA:
		c.pra = v
		if c.Ports.WriteA != nil {
			c.Ports.WriteA(v, c.ddra)
		}
	case RegPRB:
		c.prb = v
		if c.Ports.WriteB != nil {
			c.Ports.WriteB(v, c.ddrb)
		}
	case RegDDRA:
		c.ddra = v
	case RegDDRB:
		c.ddrb = v
	case RegTALO:
		c.ta.latch = c.ta.latch&0xff00 | uint16(v)
	case RegTAHI:
		c.ta.latch = uint16(v)<<8 | c.ta.latch&0x00ff
		if !c.ta.running {
			c.ta.counter = c.ta.latch
		}
	case RegTBLO:
		c.tb.latch = c.tb.latch&0xff00 | uint16(v)
	case RegTBHI:
		c.tb.latch = uint16(v)<<8 | c.tb.latch&0x00ff
		if !c.tb.running {
			c.tb.counter = c.tb.latch
		}
	case RegTODTEN:
		c.tod.writeTenths(v)
	case RegTODSEC:
		c.tod.writeSeconds(v)
	case RegTODMIN:
		c.tod.writeMinutes(v)
	case RegTODHR:
		c.tod.writeHours(v)
	case RegSDR:
		c.sdr = v
		c.srCount = 0
	case RegICR:
		if v&0x80 != 0 {
			c.icrMask |= v & 0x1f
		} else {
			c.icrMask &^= v & 0x1f
		}
		if c.icrPending&c.icrMask&0x1f != 0 {
			c.irqAsserted = true
		}
	case RegCRA:
		c.ta.oneShot = v&0x08 != 0
		c.spOutput = v&0x40 != 0
		c.tod.SetLineFrequency(v&0x80 != 0)
		if v&0x01 != 0 {
			c.feed |= countA0
		} else {
			c.ta.running = false
		}
		if v&0x10 != 0 {
			c.feed |= loadA0
		}
	case RegCRB:
		c.tb.oneShot = v&0x08 != 0
		c.tbCountSrc = (v >> 5) & 0x03
		c.tod.SetWritingAlarm(v&0x80 != 0)
		if v&0x01 != 0 {
			c.feed |= countB0
		} else {
			c.tb.running = false
		}
		if v&0x10 != 0 {
			c.feed |= loadB0
		}
	}
}
