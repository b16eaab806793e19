package cia_test

import (
	"testing"

	"github.com/retrosys/c64core/cia"
)

func TestTimerAOneShotFiresAfterLatchedCycles(t *testing.T) {
	c := cia.New("CIA1", cia.Model6526)
	c.Write(cia.RegICR, 0x80|0x01) // unmask TA
	c.Write(cia.RegTALO, 0x03)
	c.Write(cia.RegTAHI, 0x00)
	c.Write(cia.RegCRA, 0x01|0x08|0x10) // start, one-shot, force-load

	// Both the start and the force-load bits take a couple of cycles to
	// propagate through the delay pipeline before counting begins, so this
	// needs more than latch+1 ticks; 16 leaves ample margin.
	irqSeen := false
	for i := 0; i < 16; i++ {
		c.Tick(false)
		if c.IRQ() {
			irqSeen = true
			break
		}
	}
	if !irqSeen {
		t.Fatalf("expected CIA to assert IRQ after timer A underflow")
	}
}

func TestReadingICRClearsPending(t *testing.T) {
	c := cia.New("CIA1", cia.Model6526)
	c.Write(cia.RegICR, 0x80|0x01)
	c.Write(cia.RegTALO, 0x01)
	c.Write(cia.RegTAHI, 0x00)
	c.Write(cia.RegCRA, 0x01|0x08|0x10)
	irqSeen := false
	for i := 0; i < 16; i++ {
		c.Tick(false)
		if c.IRQ() {
			irqSeen = true
			break
		}
	}
	if !irqSeen {
		t.Fatalf("expected IRQ before read")
	}
	c.Read(cia.RegICR)
	if c.IRQ() {
		t.Fatalf("expected IRQ cleared after reading ICR on a 6526")
	}
}

func TestTimerBCascadesOnTimerAUnderflow(t *testing.T) {
	c := cia.New("CIA1", cia.Model6526)
	c.Write(cia.RegTALO, 0x02)
	c.Write(cia.RegTAHI, 0x00)
	c.Write(cia.RegCRA, 0x01) // start TA, continuous, count phi2

	c.Write(cia.RegTBLO, 0x02)
	c.Write(cia.RegTBHI, 0x00)
	c.Write(cia.RegCRB, 0x01|0x40) // start TB, INMODE=2 (count TA underflows)

	// Give the delay pipeline a few cycles to let both timers actually
	// start counting before measuring the cascade.
	for i := 0; i < 4; i++ {
		c.Tick(false)
	}
	tbBefore := c.Read(cia.RegTBLO)

	for i := 0; i < 200; i++ {
		c.Tick(false)
	}
	if got := c.Read(cia.RegTBLO); got == tbBefore {
		t.Fatalf("expected timer B to advance from timer A's underflow pulses, stayed at %#02x", got)
	}
}

func TestTimerBIgnoresPhi2WhenCascading(t *testing.T) {
	c := cia.New("CIA1", cia.Model6526)
	// Timer A never started: no underflow pulses exist at all.
	c.Write(cia.RegTBLO, 0xff)
	c.Write(cia.RegTBHI, 0xff)
	c.Write(cia.RegCRB, 0x01|0x40) // start TB, INMODE=2 (count TA underflows)

	for i := 0; i < 50; i++ {
		c.Tick(false)
	}
	if got := c.Read(cia.RegTBHI); got != 0xff {
		t.Fatalf("expected timer B latched at cascade mode not to count phi2 pulses, got high byte %#02x", got)
	}
}

func TestICR8521TwoCycleClearPreservesFreshBit(t *testing.T) {
	c := cia.New("CIA2", cia.Model8521)
	c.Write(cia.RegICR, 0x80|0x01|0x02) // unmask TA and TB

	c.Write(cia.RegTALO, 0x01)
	c.Write(cia.RegTAHI, 0x00)
	c.Write(cia.RegCRA, 0x01|0x08|0x10)

	irqSeen := false
	for i := 0; i < 16 && !irqSeen; i++ {
		c.Tick(false)
		irqSeen = c.IRQ()
	}
	if !irqSeen {
		t.Fatalf("expected timer A underflow to assert IRQ before the read")
	}

	c.Read(cia.RegICR) // schedules the 8521's two-cycle clear of the TA bit

	// A timer B underflow landing inside that two-cycle window must not be
	// lost: the 8521 only clears the bits that were pending at read time.
	c.Write(cia.RegTBLO, 0x01)
	c.Write(cia.RegTBHI, 0x00)
	c.Write(cia.RegCRB, 0x01|0x08|0x10)

	for i := 0; i < 16; i++ {
		c.Tick(false)
	}
	if !c.IRQ() {
		t.Fatalf("expected a timer B underflow inside the ICR-read clear window to still assert IRQ on an 8521")
	}
}

func TestTODTenthsRolloverAdvancesSeconds(t *testing.T) {
	c := cia.New("CIA2", cia.Model8521)
	c.Write(cia.RegCRA, 0x80) // TODIN: 50 Hz line input, divide by 5
	c.Write(cia.RegTODTEN, 0x09)
	c.Write(cia.RegTODSEC, 0x00)
	for i := 0; i < 5; i++ {
		c.Tick(true)
	}
	if c.Read(cia.RegTODTEN) != 0x00 {
		t.Fatalf("expected tenths to roll to 0")
	}
	if c.Read(cia.RegTODSEC) != 0x01 {
		t.Fatalf("expected seconds to advance to 1, got %#02x", c.Read(cia.RegTODSEC))
	}
}

func TestTODLineFrequencySelectsDivider(t *testing.T) {
	c := cia.New("CIA1", cia.Model6526)
	c.Write(cia.RegCRA, 0x00) // TODIN: 60 Hz line input, divide by 6
	c.Write(cia.RegTODTEN, 0x09)
	for i := 0; i < 5; i++ {
		c.Tick(true)
	}
	if c.Read(cia.RegTODTEN) != 0x09 {
		t.Fatalf("expected tenths unchanged after only 5 of 6 line pulses at 60 Hz")
	}
	c.Tick(true)
	if c.Read(cia.RegTODTEN) != 0x00 {
		t.Fatalf("expected tenths to roll over on the 6th line pulse at 60 Hz")
	}
}

func TestTODHoursReadFreezesFields(t *testing.T) {
	c := cia.New("CIA1", cia.Model6526)
	c.Write(cia.RegTODTEN, 0x05)
	_ = c.Read(cia.RegTODHR) // freeze
	c.Tick(true)             // clock continues running underneath
	if c.Read(cia.RegTODTEN) != 0x05 {
		t.Fatalf("expected frozen tenths to still read 0x05")
	}
}
