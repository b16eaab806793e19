package cpu6502

// Each addressing-mode builder returns the program steps that follow the
// opcode fetch cycle (which the CPU's fetch() already charged). A step's fn
// may call dropNextStep to remove a following step from the in-flight
// program — used to model the 6502's page-crossing cycle penalty, which is
// only known once the high byte of an indexed address has been fetched.

func (c *CPU) dropNextStep() {
	if c.pc+1 < len(c.program) {
		c.program = append(c.program[:c.pc+1], c.program[c.pc+2:]...)
	}
}

type readExec func(c *CPU, v uint8)
type writeExec func(c *CPU) uint8
type rmwExec func(c *CPU, v uint8) uint8
type impliedExec func(c *CPU)

// --- implied / accumulator (2 cycles total) ---

func buildImplied(exec impliedExec) []step {
	return []step{
		{read: true, fn: func(c *CPU) {
			c.read(c.Regs.PC) // dummy fetch of next byte, discarded
			exec(c)
		}},
	}
}

func buildAccumulator(exec func(c *CPU, v uint8) uint8) []step {
	return []step{
		{read: true, fn: func(c *CPU) {
			c.read(c.Regs.PC)
			c.Regs.A = exec(c, c.Regs.A)
		}},
	}
}

// --- immediate (2 cycles total) ---

func buildImmediate(exec readExec) []step {
	return []step{
		{read: true, fn: func(c *CPU) {
			v := c.read(c.Regs.PC)
			c.Regs.PC++
			exec(c, v)
		}},
	}
}

// --- zero page (3 cycles read/write, 5 cycles RMW) ---

func buildZeroPageRead(exec readExec) []step {
	var zp uint8
	return []step{
		{read: true, fn: func(c *CPU) { zp = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { exec(c, c.read(uint16(zp))) }},
	}
}

func buildZeroPageWrite(exec writeExec) []step {
	var zp uint8
	return []step{
		{read: true, fn: func(c *CPU) { zp = c.read(c.Regs.PC); c.Regs.PC++ }},
		{fn: func(c *CPU) { c.write(uint16(zp), exec(c)) }},
	}
}

func buildZeroPageRMW(exec rmwExec) []step {
	var zp uint8
	var v uint8
	return []step{
		{read: true, fn: func(c *CPU) { zp = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { v = c.read(uint16(zp)) }},
		{fn: func(c *CPU) { c.write(uint16(zp), v) }},
		{fn: func(c *CPU) { c.write(uint16(zp), exec(c, v)) }},
	}
}

// --- zero page indexed (4 cycles read/write, 6 cycles RMW) ---

func buildZeroPageIndexedRead(index func(c *CPU) uint8, exec readExec) []step {
	var zp uint8
	return []step{
		{read: true, fn: func(c *CPU) { zp = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { c.read(uint16(zp)); zp += index(c) }},
		{read: true, fn: func(c *CPU) { exec(c, c.read(uint16(zp))) }},
	}
}

func buildZeroPageIndexedWrite(index func(c *CPU) uint8, exec writeExec) []step {
	var zp uint8
	return []step{
		{read: true, fn: func(c *CPU) { zp = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { c.read(uint16(zp)); zp += index(c) }},
		{fn: func(c *CPU) { c.write(uint16(zp), exec(c)) }},
	}
}

func buildZeroPageIndexedRMW(index func(c *CPU) uint8, exec rmwExec) []step {
	var zp uint8
	var v uint8
	return []step{
		{read: true, fn: func(c *CPU) { zp = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { c.read(uint16(zp)); zp += index(c) }},
		{read: true, fn: func(c *CPU) { v = c.read(uint16(zp)) }},
		{fn: func(c *CPU) { c.write(uint16(zp), v) }},
		{fn: func(c *CPU) { c.write(uint16(zp), exec(c, v)) }},
	}
}

// --- absolute (4 cycles read/write, 6 cycles RMW, 3 cycles JMP) ---

func buildAbsoluteRead(exec readExec) []step {
	var lo, hi uint8
	return []step{
		{read: true, fn: func(c *CPU) { lo = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { hi = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { exec(c, c.read(uint16(hi)<<8|uint16(lo))) }},
	}
}

func buildAbsoluteWrite(exec writeExec) []step {
	var lo, hi uint8
	return []step{
		{read: true, fn: func(c *CPU) { lo = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { hi = c.read(c.Regs.PC); c.Regs.PC++ }},
		{fn: func(c *CPU) { c.write(uint16(hi)<<8|uint16(lo), exec(c)) }},
	}
}

func buildAbsoluteRMW(exec rmwExec) []step {
	var lo, hi, v uint8
	return []step{
		{read: true, fn: func(c *CPU) { lo = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { hi = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { v = c.read(uint16(hi)<<8 | uint16(lo)) }},
		{fn: func(c *CPU) { c.write(uint16(hi)<<8|uint16(lo), v) }},
		{fn: func(c *CPU) { c.write(uint16(hi)<<8|uint16(lo), exec(c, v)) }},
	}
}

func buildJMPAbsolute() []step {
	var lo uint8
	return []step{
		{read: true, fn: func(c *CPU) { lo = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) {
			hi := c.read(c.Regs.PC)
			c.Regs.PC = uint16(hi)<<8 | uint16(lo)
		}},
	}
}

// buildJMPIndirect reproduces the NMOS page-wrap bug: if the pointer low
// byte is $FF, the high byte is fetched from the start of the same page
// rather than the next page.
func buildJMPIndirect() []step {
	var ptrLo, ptrHi, lo uint8
	return []step{
		{read: true, fn: func(c *CPU) { ptrLo = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { ptrHi = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { lo = c.read(uint16(ptrHi)<<8 | uint16(ptrLo)) }},
		{read: true, fn: func(c *CPU) {
			hiAddr := uint16(ptrHi)<<8 | uint16(ptrLo+1)
			hi := c.read(hiAddr)
			c.Regs.PC = uint16(hi)<<8 | uint16(lo)
		}},
	}
}

// --- absolute indexed (4/5 cycles read, 5 cycles write, 7 cycles RMW) ---

func buildAbsoluteIndexedRead(index func(c *CPU) uint8, exec readExec) []step {
	var lo, hi uint8
	var eff uint16
	return []step{
		{read: true, fn: func(c *CPU) { lo = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) {
			hi = c.read(c.Regs.PC)
			c.Regs.PC++
			base := uint16(hi)<<8 | uint16(lo)
			eff = base + uint16(index(c))
			if base&0xff00 == eff&0xff00 {
				c.dropNextStep()
			}
		}},
		{read: true, fn: func(c *CPU) {
			wrong := uint16(hi)<<8 | (eff & 0x00ff)
			c.read(wrong)
		}},
		{read: true, fn: func(c *CPU) { exec(c, c.read(eff)) }},
	}
}

func buildAbsoluteIndexedWrite(index func(c *CPU) uint8, exec writeExec) []step {
	var lo, hi uint8
	var eff uint16
	return []step{
		{read: true, fn: func(c *CPU) { lo = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) {
			hi = c.read(c.Regs.PC)
			c.Regs.PC++
			eff = uint16(hi)<<8 + uint16(lo) + uint16(index(c))
		}},
		{read: true, fn: func(c *CPU) {
			wrong := uint16(hi)<<8 | (eff & 0x00ff)
			c.read(wrong)
		}},
		{fn: func(c *CPU) { c.write(eff, exec(c)) }},
	}
}

func buildAbsoluteIndexedRMW(index func(c *CPU) uint8, exec rmwExec) []step {
	var lo, hi uint8
	var eff uint16
	var v uint8
	return []step{
		{read: true, fn: func(c *CPU) { lo = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) {
			hi = c.read(c.Regs.PC)
			c.Regs.PC++
			eff = uint16(hi)<<8 + uint16(lo) + uint16(index(c))
		}},
		{read: true, fn: func(c *CPU) {
			wrong := uint16(hi)<<8 | (eff & 0x00ff)
			c.read(wrong)
		}},
		{read: true, fn: func(c *CPU) { v = c.read(eff) }},
		{fn: func(c *CPU) { c.write(eff, v) }},
		{fn: func(c *CPU) { c.write(eff, exec(c, v)) }},
	}
}

// --- indexed indirect, (zp,X) — always 6 cycles ---

func buildIndexedIndirectRead(exec readExec) []step {
	var zp uint8
	var lo, hi uint8
	return []step{
		{read: true, fn: func(c *CPU) { zp = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { c.read(uint16(zp)); zp += c.Regs.X }},
		{read: true, fn: func(c *CPU) { lo = c.read(uint16(zp)) }},
		{read: true, fn: func(c *CPU) { hi = c.read(uint16(zp + 1)) }},
		{read: true, fn: func(c *CPU) { exec(c, c.read(uint16(hi)<<8|uint16(lo))) }},
	}
}

func buildIndexedIndirectWrite(exec writeExec) []step {
	var zp uint8
	var lo, hi uint8
	return []step{
		{read: true, fn: func(c *CPU) { zp = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { c.read(uint16(zp)); zp += c.Regs.X }},
		{read: true, fn: func(c *CPU) { lo = c.read(uint16(zp)) }},
		{read: true, fn: func(c *CPU) { hi = c.read(uint16(zp + 1)) }},
		{fn: func(c *CPU) { c.write(uint16(hi)<<8|uint16(lo), exec(c)) }},
	}
}

// buildIndexedIndirectRMW is the (zp,X) read-modify-write form used by the
// illegal SLO/RLA/SRE/RRA/DCP/ISC opcodes — always 8 cycles.
func buildIndexedIndirectRMW(exec rmwExec) []step {
	var zp uint8
	var lo, hi, v uint8
	return []step{
		{read: true, fn: func(c *CPU) { zp = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { c.read(uint16(zp)); zp += c.Regs.X }},
		{read: true, fn: func(c *CPU) { lo = c.read(uint16(zp)) }},
		{read: true, fn: func(c *CPU) { hi = c.read(uint16(zp + 1)) }},
		{read: true, fn: func(c *CPU) { v = c.read(uint16(hi)<<8 | uint16(lo)) }},
		{fn: func(c *CPU) { c.write(uint16(hi)<<8|uint16(lo), v) }},
		{fn: func(c *CPU) { c.write(uint16(hi)<<8|uint16(lo), exec(c, v)) }},
	}
}

// --- indirect indexed, (zp),Y — 5/6 cycles read, always 6 write, 8 RMW ---

func buildIndirectIndexedRead(exec readExec) []step {
	var zp, lo, hi uint8
	var eff uint16
	return []step{
		{read: true, fn: func(c *CPU) { zp = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { lo = c.read(uint16(zp)) }},
		{read: true, fn: func(c *CPU) {
			hi = c.read(uint16(zp + 1))
			base := uint16(hi)<<8 | uint16(lo)
			eff = base + uint16(c.Regs.Y)
			if base&0xff00 == eff&0xff00 {
				c.dropNextStep()
			}
		}},
		{read: true, fn: func(c *CPU) {
			wrong := uint16(hi)<<8 | (eff & 0x00ff)
			c.read(wrong)
		}},
		{read: true, fn: func(c *CPU) { exec(c, c.read(eff)) }},
	}
}

func buildIndirectIndexedWrite(exec writeExec) []step {
	var zp, lo, hi uint8
	var eff uint16
	return []step{
		{read: true, fn: func(c *CPU) { zp = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { lo = c.read(uint16(zp)) }},
		{read: true, fn: func(c *CPU) {
			hi = c.read(uint16(zp + 1))
			eff = uint16(hi)<<8 + uint16(lo) + uint16(c.Regs.Y)
		}},
		{read: true, fn: func(c *CPU) {
			wrong := uint16(hi)<<8 | (eff & 0x00ff)
			c.read(wrong)
		}},
		{fn: func(c *CPU) { c.write(eff, exec(c)) }},
	}
}

// buildIndirectIndexedRMW is the (zp),Y read-modify-write form — always 8
// cycles, since an RMW must read the correct byte regardless of crossing.
func buildIndirectIndexedRMW(exec rmwExec) []step {
	var zp, lo, hi uint8
	var eff uint16
	var v uint8
	return []step{
		{read: true, fn: func(c *CPU) { zp = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { lo = c.read(uint16(zp)) }},
		{read: true, fn: func(c *CPU) {
			hi = c.read(uint16(zp + 1))
			eff = uint16(hi)<<8 + uint16(lo) + uint16(c.Regs.Y)
		}},
		{read: true, fn: func(c *CPU) {
			wrong := uint16(hi)<<8 | (eff & 0x00ff)
			c.read(wrong)
		}},
		{read: true, fn: func(c *CPU) { v = c.read(eff) }},
		{fn: func(c *CPU) { c.write(eff, v) }},
		{fn: func(c *CPU) { c.write(eff, exec(c, v)) }},
	}
}

// --- stack and control flow ---

func buildPush(exec func(c *CPU) uint8) []step {
	return []step{
		{read: true, fn: func(c *CPU) { c.read(c.Regs.PC) }},
		{fn: func(c *CPU) { c.push(exec(c)) }},
	}
}

func buildPull(exec func(c *CPU, v uint8)) []step {
	return []step{
		{read: true, fn: func(c *CPU) { c.read(c.Regs.PC) }},
		{read: true, fn: func(c *CPU) { c.read(0x0100 | uint16(c.Regs.SP)) }},
		{read: true, fn: func(c *CPU) { exec(c, c.pop()) }},
	}
}

// buildBranch is 2 cycles when not taken, 3 when taken without a page
// cross, 4 when taken across a page.
func buildBranch(cond func(c *CPU) bool) []step {
	var offset uint8
	return []step{
		{read: true, fn: func(c *CPU) {
			offset = c.read(c.Regs.PC)
			c.Regs.PC++
			if !cond(c) {
				c.dropNextStep()
				c.dropNextStep()
			}
		}},
		{read: true, fn: func(c *CPU) {
			c.read(c.Regs.PC)
			old := c.Regs.PC
			c.Regs.PC = uint16(int32(c.Regs.PC) + int32(int8(offset)))
			if old&0xff00 == c.Regs.PC&0xff00 {
				c.dropNextStep()
			}
		}},
		{read: true, fn: func(c *CPU) {
			c.read((c.Regs.PC & 0x00ff) | (c.Regs.PC & 0xff00))
		}},
	}
}

func buildJSR() []step {
	var lo uint8
	return []step{
		{read: true, fn: func(c *CPU) { lo = c.read(c.Regs.PC); c.Regs.PC++ }},
		{read: true, fn: func(c *CPU) { c.read(0x0100 | uint16(c.Regs.SP)) }},
		{fn: func(c *CPU) { c.push(uint8(c.Regs.PC >> 8)) }},
		{fn: func(c *CPU) { c.push(uint8(c.Regs.PC)) }},
		{read: true, fn: func(c *CPU) {
			hi := c.read(c.Regs.PC)
			c.Regs.PC = uint16(hi)<<8 | uint16(lo)
		}},
	}
}

func buildRTS() []step {
	return []step{
		{read: true, fn: func(c *CPU) { c.read(c.Regs.PC) }},
		{read: true, fn: func(c *CPU) { c.read(0x0100 | uint16(c.Regs.SP)) }},
		{read: true, fn: func(c *CPU) {
			lo := c.pop()
			c.Regs.PC = uint16(lo)
		}},
		{read: true, fn: func(c *CPU) {
			hi := c.pop()
			c.Regs.PC = (uint16(hi) << 8) | (c.Regs.PC & 0x00ff)
		}},
		{read: true, fn: func(c *CPU) { c.read(c.Regs.PC); c.Regs.PC++ }},
	}
}

func buildRTI() []step {
	return []step{
		{read: true, fn: func(c *CPU) { c.read(c.Regs.PC) }},
		{read: true, fn: func(c *CPU) { c.read(0x0100 | uint16(c.Regs.SP)) }},
		{read: true, fn: func(c *CPU) {
			p := c.pop()
			c.Regs.P = Flags(p)&^FlagB | Flag5
		}},
		{read: true, fn: func(c *CPU) { c.Regs.PC = uint16(c.pop()) }},
		{read: true, fn: func(c *CPU) {
			hi := c.pop()
			c.Regs.PC = uint16(hi)<<8 | (c.Regs.PC & 0x00ff)
		}},
	}
}

func buildBRK() []step {
	return []step{
		{read: true, fn: func(c *CPU) { c.read(c.Regs.PC); c.Regs.PC++ }},
		{fn: func(c *CPU) { c.push(uint8(c.Regs.PC >> 8)) }},
		{fn: func(c *CPU) { c.push(uint8(c.Regs.PC)) }},
		{fn: func(c *CPU) {
			c.push(uint8(c.Regs.P | Flag5 | FlagB))
			c.Regs.P |= FlagI
		}},
		{read: true, fn: func(c *CPU) {
			lo := c.read(0xfffe)
			c.data = lo
		}},
		{read: true, fn: func(c *CPU) {
			hi := c.read(0xffff)
			c.Regs.PC = uint16(hi)<<8 | uint16(c.data)
		}},
	}
}
