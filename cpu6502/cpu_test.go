package cpu6502_test

import (
	"testing"

	"github.com/retrosys/c64core/cpu6502"
)

type flatBus struct {
	mem [65536]uint8
}

func (b *flatBus) Read(addr uint16) uint8     { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, v uint8) { b.mem[addr] = v }

func newTestCPU(program ...uint8) (*cpu6502.CPU, *flatBus) {
	bus := &flatBus{}
	copy(bus.mem[0x0800:], program)
	bus.mem[0xfffc] = 0x00
	bus.mem[0xfffd] = 0x08
	c := cpu6502.New(bus)
	c.Reset()
	c.LoadResetVector()
	return c, bus
}

func run(c *cpu6502.CPU, cycles int) {
	for i := 0; i < cycles; i++ {
		c.ExecuteOneCycle()
	}
}

func TestLDAImmediateSetsRegisterAndFlags(t *testing.T) {
	c, _ := newTestCPU(0xa9, 0x00, 0xa9, 0x80)
	run(c, 2)
	if c.Regs.A != 0 || c.Regs.P&cpu6502.FlagZ == 0 {
		t.Fatalf("expected A=0 Z=1, got A=%02x P=%s", c.Regs.A, c.Regs.P)
	}
	run(c, 2)
	if c.Regs.A != 0x80 || c.Regs.P&cpu6502.FlagN == 0 {
		t.Fatalf("expected A=80 N=1, got A=%02x P=%s", c.Regs.A, c.Regs.P)
	}
}

func TestCycleCounterIsMonotonic(t *testing.T) {
	c, _ := newTestCPU(0xa9, 0x01, 0xaa, 0xe8, 0x00)
	var last uint64
	for i := 0; i < 10; i++ {
		c.ExecuteOneCycle()
		if c.Cycle < last {
			t.Fatalf("cycle counter went backwards: %d -> %d", last, c.Cycle)
		}
		last = c.Cycle
	}
}

func TestAbsoluteIndexedPageCrossCostsExtraCycle(t *testing.T) {
	// LDX #$01 ; LDA $08FF,X  (crosses into $0900)
	c, bus := newTestCPU(0xa2, 0x01, 0xbd, 0xff, 0x08)
	bus.mem[0x0900] = 0x42
	run(c, 2) // LDX
	start := c.Cycle
	run(c, 5) // LDA abs,X crossing: 5 cycles
	if c.Regs.A != 0x42 {
		t.Fatalf("expected A=0x42 after crossing read, got %02x", c.Regs.A)
	}
	if c.Cycle-start != 5 {
		t.Fatalf("expected 5 cycles for crossing abs,X read, got %d", c.Cycle-start)
	}
}

func TestAbsoluteIndexedNoCrossIsFourCycles(t *testing.T) {
	// LDX #$01 ; LDA $0900,X (no cross)
	c, bus := newTestCPU(0xa2, 0x01, 0xbd, 0x00, 0x09)
	bus.mem[0x0901] = 0x99
	run(c, 2)
	start := c.Cycle
	run(c, 4)
	if c.Regs.A != 0x99 {
		t.Fatalf("expected A=0x99, got %02x", c.Regs.A)
	}
	if c.Cycle-start != 4 {
		t.Fatalf("expected 4 cycles for non-crossing abs,X read, got %d", c.Cycle-start)
	}
}

func TestBranchNotTakenIsTwoCycles(t *testing.T) {
	// SEC ; BCC +2 (not taken: carry is set)
	c, _ := newTestCPU(0x38, 0x90, 0x02)
	run(c, 2) // SEC
	start := c.Cycle
	run(c, 2) // BCC not taken
	if c.Cycle-start != 2 {
		t.Fatalf("expected not-taken branch to cost 2 cycles, got %d", c.Cycle-start)
	}
}

func TestBranchTakenSamePageIsThreeCycles(t *testing.T) {
	// CLC ; BCC +2 (taken: carry is clear, same page)
	c, _ := newTestCPU(0x18, 0x90, 0x02)
	run(c, 2) // CLC
	start := c.Cycle
	run(c, 3) // BCC taken, no page cross
	if c.Cycle-start != 3 {
		t.Fatalf("expected taken branch (no cross) to cost 3 cycles, got %d", c.Cycle-start)
	}
}

func TestBRKSetsBreakFlagInPushedStatusOnly(t *testing.T) {
	c, bus := newTestCPU(0x00)
	bus.mem[0xfffe] = 0x00
	bus.mem[0xffff] = 0x09
	run(c, 7)
	sp := c.Regs.SP
	pushedP := bus.mem[0x0100|uint16(sp+1)]
	if pushedP&0x10 == 0 {
		t.Fatalf("expected B flag set in pushed status for BRK, got %08b", pushedP)
	}
	if c.Regs.P&0x10 != 0 {
		t.Fatalf("B flag must never appear in the live status register, got %s", c.Regs.P)
	}
}

func TestHardwareIRQClearsBreakFlagInPushedStatus(t *testing.T) {
	c, bus := newTestCPU(0x58, 0xea, 0xea) // CLI ; NOP ; NOP
	bus.mem[0xfffe] = 0x00
	bus.mem[0xffff] = 0x09
	run(c, 2) // CLI
	c.IRQ = true
	run(c, 2) // NOP retires with interrupt pending, serviced at next fetch
	run(c, 7) // interrupt sequence
	sp := c.Regs.SP
	pushedP := bus.mem[0x0100|uint16(sp+1)]
	if pushedP&0x10 != 0 {
		t.Fatalf("expected B flag clear in pushed status for hardware IRQ, got %08b", pushedP)
	}
}

func TestJamOpcodeKillsCPU(t *testing.T) {
	c, _ := newTestCPU(0x02)
	run(c, 1)
	if !c.Killed {
		t.Fatalf("expected JAM opcode to kill the CPU")
	}
	if c.State != cpu6502.StateIllegal {
		t.Fatalf("expected StateIllegal, got %v", c.State)
	}
}

func TestRDYStallsReadCyclesOnly(t *testing.T) {
	c, _ := newTestCPU(0xa9, 0x55)
	c.RDY = false
	start := c.Cycle
	for i := 0; i < 5; i++ {
		c.ExecuteOneCycle()
	}
	if c.Regs.A == 0x55 {
		t.Fatalf("LDA should not have completed while RDY held low")
	}
	_ = start
	c.RDY = true
	run(c, 2)
	if c.Regs.A != 0x55 {
		t.Fatalf("expected LDA to complete once RDY released, got A=%02x", c.Regs.A)
	}
}
