// Package cpu6502 emulates the MOS 6502/6510 instruction set with per-cycle
// fidelity. It is shared by the C64's 6510 and the 1541 drive's 6502 — the
// two differ only in the processor-port bits the 6510 exposes at $00/$01,
// which the owning bus implementation (not this package) is responsible for.
//
// The CPU does not own memory. It is constructed with a Bus, and every read
// or write during an instruction goes through it:
//
//	c := cpu6502.New(bus)
//	c.Reset()
//	for {
//		bp := c.ExecuteOneCycle()
//		if bp != cpu6502.NoBreak {
//			break
//		}
//	}
//
// Instructions are modeled as a sequence of micro-instructions, one bus
// cycle each, built on demand from the opcode at ExecuteOneCycle's fetch
// step. This mirrors the real 6502's decode-as-you-go PLA rather than
// pre-expanding a full 256-entry schedule table, while still giving callers
// (the VIC-II's RDY line, the scheduler's breakpoint checks) a hook at every
// single cycle boundary.
package cpu6502
