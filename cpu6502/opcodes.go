package cpu6502

// opKind distinguishes the handful of opcodes that need special handling in
// fetch() from the bulk that simply build a cycle program.
type opKind int

const (
	opNormal opKind = iota
	opJam
)

type opcodeDef struct {
	name  string
	kind  opKind
	build func(c *CPU) []step
}

// opcodeTable covers the full documented 6502/6510 instruction set plus the
// illegal opcodes that real C64 software (loaders, copy protections, demos)
// is known to rely on: the unstable-free combined read-modify-write/logic
// ops (SLO/RLA/SRE/RRA/DCP/ISC), LAX/SAX, and the undocumented NOPs. The
// true JAM/KIL opcodes halt the bus exactly as silicon does.
var opcodeTable = map[uint8]opcodeDef{
	// ADC
	0x69: {"ADC", opNormal, func(c *CPU) []step { return buildImmediate(execADC) }},
	0x65: {"ADC", opNormal, func(c *CPU) []step { return buildZeroPageRead(execADC) }},
	0x75: {"ADC", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execADC) }},
	0x6D: {"ADC", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execADC) }},
	0x7D: {"ADC", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execADC) }},
	0x79: {"ADC", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regY, execADC) }},
	0x61: {"ADC", opNormal, func(c *CPU) []step { return buildIndexedIndirectRead(execADC) }},
	0x71: {"ADC", opNormal, func(c *CPU) []step { return buildIndirectIndexedRead(execADC) }},

	// AND
	0x29: {"AND", opNormal, func(c *CPU) []step { return buildImmediate(execAND) }},
	0x25: {"AND", opNormal, func(c *CPU) []step { return buildZeroPageRead(execAND) }},
	0x35: {"AND", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execAND) }},
	0x2D: {"AND", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execAND) }},
	0x3D: {"AND", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execAND) }},
	0x39: {"AND", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regY, execAND) }},
	0x21: {"AND", opNormal, func(c *CPU) []step { return buildIndexedIndirectRead(execAND) }},
	0x31: {"AND", opNormal, func(c *CPU) []step { return buildIndirectIndexedRead(execAND) }},

	// ASL
	0x0A: {"ASL", opNormal, func(c *CPU) []step { return buildAccumulator(execASL) }},
	0x06: {"ASL", opNormal, func(c *CPU) []step { return buildZeroPageRMW(execASL) }},
	0x16: {"ASL", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRMW(regX, execASL) }},
	0x0E: {"ASL", opNormal, func(c *CPU) []step { return buildAbsoluteRMW(execASL) }},
	0x1E: {"ASL", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regX, execASL) }},

	// branches
	0x90: {"BCC", opNormal, func(c *CPU) []step { return buildBranch(func(c *CPU) bool { return !c.Regs.flag(FlagC) }) }},
	0xB0: {"BCS", opNormal, func(c *CPU) []step { return buildBranch(func(c *CPU) bool { return c.Regs.flag(FlagC) }) }},
	0xF0: {"BEQ", opNormal, func(c *CPU) []step { return buildBranch(func(c *CPU) bool { return c.Regs.flag(FlagZ) }) }},
	0x30: {"BMI", opNormal, func(c *CPU) []step { return buildBranch(func(c *CPU) bool { return c.Regs.flag(FlagN) }) }},
	0xD0: {"BNE", opNormal, func(c *CPU) []step { return buildBranch(func(c *CPU) bool { return !c.Regs.flag(FlagZ) }) }},
	0x10: {"BPL", opNormal, func(c *CPU) []step { return buildBranch(func(c *CPU) bool { return !c.Regs.flag(FlagN) }) }},
	0x50: {"BVC", opNormal, func(c *CPU) []step { return buildBranch(func(c *CPU) bool { return !c.Regs.flag(FlagV) }) }},
	0x70: {"BVS", opNormal, func(c *CPU) []step { return buildBranch(func(c *CPU) bool { return c.Regs.flag(FlagV) }) }},

	// BIT
	0x24: {"BIT", opNormal, func(c *CPU) []step { return buildZeroPageRead(execBIT) }},
	0x2C: {"BIT", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execBIT) }},

	// BRK / RTI / JSR / RTS
	0x00: {"BRK", opNormal, func(c *CPU) []step { return buildBRK() }},
	0x40: {"RTI", opNormal, func(c *CPU) []step { return buildRTI() }},
	0x20: {"JSR", opNormal, func(c *CPU) []step { return buildJSR() }},
	0x60: {"RTS", opNormal, func(c *CPU) []step { return buildRTS() }},

	// flags
	0x18: {"CLC", opNormal, func(c *CPU) []step { return buildImplied(execCLC) }},
	0x38: {"SEC", opNormal, func(c *CPU) []step { return buildImplied(execSEC) }},
	0x58: {"CLI", opNormal, func(c *CPU) []step { return buildImplied(execCLI) }},
	0x78: {"SEI", opNormal, func(c *CPU) []step { return buildImplied(execSEI) }},
	0xB8: {"CLV", opNormal, func(c *CPU) []step { return buildImplied(execCLV) }},
	0xD8: {"CLD", opNormal, func(c *CPU) []step { return buildImplied(execCLD) }},
	0xF8: {"SED", opNormal, func(c *CPU) []step { return buildImplied(execSED) }},

	// CMP / CPX / CPY
	0xC9: {"CMP", opNormal, func(c *CPU) []step { return buildImmediate(execCMP) }},
	0xC5: {"CMP", opNormal, func(c *CPU) []step { return buildZeroPageRead(execCMP) }},
	0xD5: {"CMP", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execCMP) }},
	0xCD: {"CMP", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execCMP) }},
	0xDD: {"CMP", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execCMP) }},
	0xD9: {"CMP", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regY, execCMP) }},
	0xC1: {"CMP", opNormal, func(c *CPU) []step { return buildIndexedIndirectRead(execCMP) }},
	0xD1: {"CMP", opNormal, func(c *CPU) []step { return buildIndirectIndexedRead(execCMP) }},
	0xE0: {"CPX", opNormal, func(c *CPU) []step { return buildImmediate(execCPX) }},
	0xE4: {"CPX", opNormal, func(c *CPU) []step { return buildZeroPageRead(execCPX) }},
	0xEC: {"CPX", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execCPX) }},
	0xC0: {"CPY", opNormal, func(c *CPU) []step { return buildImmediate(execCPY) }},
	0xC4: {"CPY", opNormal, func(c *CPU) []step { return buildZeroPageRead(execCPY) }},
	0xCC: {"CPY", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execCPY) }},

	// DEC/DEX/DEY, INC/INX/INY
	0xC6: {"DEC", opNormal, func(c *CPU) []step { return buildZeroPageRMW(execDEC) }},
	0xD6: {"DEC", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRMW(regX, execDEC) }},
	0xCE: {"DEC", opNormal, func(c *CPU) []step { return buildAbsoluteRMW(execDEC) }},
	0xDE: {"DEC", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regX, execDEC) }},
	0xCA: {"DEX", opNormal, func(c *CPU) []step { return buildImplied(execDEX) }},
	0x88: {"DEY", opNormal, func(c *CPU) []step { return buildImplied(execDEY) }},
	0xE6: {"INC", opNormal, func(c *CPU) []step { return buildZeroPageRMW(execINC) }},
	0xF6: {"INC", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRMW(regX, execINC) }},
	0xEE: {"INC", opNormal, func(c *CPU) []step { return buildAbsoluteRMW(execINC) }},
	0xFE: {"INC", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regX, execINC) }},
	0xE8: {"INX", opNormal, func(c *CPU) []step { return buildImplied(execINX) }},
	0xC8: {"INY", opNormal, func(c *CPU) []step { return buildImplied(execINY) }},

	// EOR
	0x49: {"EOR", opNormal, func(c *CPU) []step { return buildImmediate(execEOR) }},
	0x45: {"EOR", opNormal, func(c *CPU) []step { return buildZeroPageRead(execEOR) }},
	0x55: {"EOR", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execEOR) }},
	0x4D: {"EOR", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execEOR) }},
	0x5D: {"EOR", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execEOR) }},
	0x59: {"EOR", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regY, execEOR) }},
	0x41: {"EOR", opNormal, func(c *CPU) []step { return buildIndexedIndirectRead(execEOR) }},
	0x51: {"EOR", opNormal, func(c *CPU) []step { return buildIndirectIndexedRead(execEOR) }},

	// JMP
	0x4C: {"JMP", opNormal, func(c *CPU) []step { return buildJMPAbsolute() }},
	0x6C: {"JMP", opNormal, func(c *CPU) []step { return buildJMPIndirect() }},

	// LDA/LDX/LDY
	0xA9: {"LDA", opNormal, func(c *CPU) []step { return buildImmediate(execLDA) }},
	0xA5: {"LDA", opNormal, func(c *CPU) []step { return buildZeroPageRead(execLDA) }},
	0xB5: {"LDA", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execLDA) }},
	0xAD: {"LDA", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execLDA) }},
	0xBD: {"LDA", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execLDA) }},
	0xB9: {"LDA", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regY, execLDA) }},
	0xA1: {"LDA", opNormal, func(c *CPU) []step { return buildIndexedIndirectRead(execLDA) }},
	0xB1: {"LDA", opNormal, func(c *CPU) []step { return buildIndirectIndexedRead(execLDA) }},
	0xA2: {"LDX", opNormal, func(c *CPU) []step { return buildImmediate(execLDX) }},
	0xA6: {"LDX", opNormal, func(c *CPU) []step { return buildZeroPageRead(execLDX) }},
	0xB6: {"LDX", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regY, execLDX) }},
	0xAE: {"LDX", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execLDX) }},
	0xBE: {"LDX", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regY, execLDX) }},
	0xA0: {"LDY", opNormal, func(c *CPU) []step { return buildImmediate(execLDY) }},
	0xA4: {"LDY", opNormal, func(c *CPU) []step { return buildZeroPageRead(execLDY) }},
	0xB4: {"LDY", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execLDY) }},
	0xAC: {"LDY", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execLDY) }},
	0xBC: {"LDY", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execLDY) }},

	// LSR
	0x4A: {"LSR", opNormal, func(c *CPU) []step { return buildAccumulator(execLSR) }},
	0x46: {"LSR", opNormal, func(c *CPU) []step { return buildZeroPageRMW(execLSR) }},
	0x56: {"LSR", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRMW(regX, execLSR) }},
	0x4E: {"LSR", opNormal, func(c *CPU) []step { return buildAbsoluteRMW(execLSR) }},
	0x5E: {"LSR", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regX, execLSR) }},

	// NOP
	0xEA: {"NOP", opNormal, func(c *CPU) []step { return buildImplied(execNOP) }},

	// ORA
	0x09: {"ORA", opNormal, func(c *CPU) []step { return buildImmediate(execORA) }},
	0x05: {"ORA", opNormal, func(c *CPU) []step { return buildZeroPageRead(execORA) }},
	0x15: {"ORA", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execORA) }},
	0x0D: {"ORA", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execORA) }},
	0x1D: {"ORA", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execORA) }},
	0x19: {"ORA", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regY, execORA) }},
	0x01: {"ORA", opNormal, func(c *CPU) []step { return buildIndexedIndirectRead(execORA) }},
	0x11: {"ORA", opNormal, func(c *CPU) []step { return buildIndirectIndexedRead(execORA) }},

	// stack
	0x48: {"PHA", opNormal, func(c *CPU) []step { return buildPush(func(c *CPU) uint8 { return c.Regs.A }) }},
	0x08: {"PHP", opNormal, func(c *CPU) []step {
		return buildPush(func(c *CPU) uint8 { return uint8(c.Regs.P | Flag5 | FlagB) })
	}},
	0x68: {"PLA", opNormal, func(c *CPU) []step {
		return buildPull(func(c *CPU, v uint8) { c.Regs.A = v; c.Regs.setNZ(v) })
	}},
	0x28: {"PLP", opNormal, func(c *CPU) []step {
		return buildPull(func(c *CPU, v uint8) { c.Regs.P = Flags(v)&^FlagB | Flag5 })
	}},

	// ROL / ROR
	0x2A: {"ROL", opNormal, func(c *CPU) []step { return buildAccumulator(execROL) }},
	0x26: {"ROL", opNormal, func(c *CPU) []step { return buildZeroPageRMW(execROL) }},
	0x36: {"ROL", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRMW(regX, execROL) }},
	0x2E: {"ROL", opNormal, func(c *CPU) []step { return buildAbsoluteRMW(execROL) }},
	0x3E: {"ROL", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regX, execROL) }},
	0x6A: {"ROR", opNormal, func(c *CPU) []step { return buildAccumulator(execROR) }},
	0x66: {"ROR", opNormal, func(c *CPU) []step { return buildZeroPageRMW(execROR) }},
	0x76: {"ROR", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRMW(regX, execROR) }},
	0x6E: {"ROR", opNormal, func(c *CPU) []step { return buildAbsoluteRMW(execROR) }},
	0x7E: {"ROR", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regX, execROR) }},

	// SBC
	0xE9: {"SBC", opNormal, func(c *CPU) []step { return buildImmediate(execSBC) }},
	0xE5: {"SBC", opNormal, func(c *CPU) []step { return buildZeroPageRead(execSBC) }},
	0xF5: {"SBC", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execSBC) }},
	0xED: {"SBC", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execSBC) }},
	0xFD: {"SBC", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execSBC) }},
	0xF9: {"SBC", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regY, execSBC) }},
	0xE1: {"SBC", opNormal, func(c *CPU) []step { return buildIndexedIndirectRead(execSBC) }},
	0xF1: {"SBC", opNormal, func(c *CPU) []step { return buildIndirectIndexedRead(execSBC) }},

	// STA/STX/STY
	0x85: {"STA", opNormal, func(c *CPU) []step { return buildZeroPageWrite(execSTA) }},
	0x95: {"STA", opNormal, func(c *CPU) []step { return buildZeroPageIndexedWrite(regX, execSTA) }},
	0x8D: {"STA", opNormal, func(c *CPU) []step { return buildAbsoluteWrite(execSTA) }},
	0x9D: {"STA", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedWrite(regX, execSTA) }},
	0x99: {"STA", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedWrite(regY, execSTA) }},
	0x81: {"STA", opNormal, func(c *CPU) []step { return buildIndexedIndirectWrite(execSTA) }},
	0x91: {"STA", opNormal, func(c *CPU) []step { return buildIndirectIndexedWrite(execSTA) }},
	0x86: {"STX", opNormal, func(c *CPU) []step { return buildZeroPageWrite(execSTX) }},
	0x96: {"STX", opNormal, func(c *CPU) []step { return buildZeroPageIndexedWrite(regY, execSTX) }},
	0x8E: {"STX", opNormal, func(c *CPU) []step { return buildAbsoluteWrite(execSTX) }},
	0x84: {"STY", opNormal, func(c *CPU) []step { return buildZeroPageWrite(execSTY) }},
	0x94: {"STY", opNormal, func(c *CPU) []step { return buildZeroPageIndexedWrite(regX, execSTY) }},
	0x8C: {"STY", opNormal, func(c *CPU) []step { return buildAbsoluteWrite(execSTY) }},

	// register transfers
	0xAA: {"TAX", opNormal, func(c *CPU) []step { return buildImplied(execTAX) }},
	0xA8: {"TAY", opNormal, func(c *CPU) []step { return buildImplied(execTAY) }},
	0xBA: {"TSX", opNormal, func(c *CPU) []step { return buildImplied(execTSX) }},
	0x8A: {"TXA", opNormal, func(c *CPU) []step { return buildImplied(execTXA) }},
	0x9A: {"TXS", opNormal, func(c *CPU) []step { return buildImplied(execTXS) }},
	0x98: {"TYA", opNormal, func(c *CPU) []step { return buildImplied(execTYA) }},

	// --- illegal/undocumented opcodes in regular use by C64 software ---

	// LAX (LDA+LDX combined)
	0xA7: {"LAX", opNormal, func(c *CPU) []step { return buildZeroPageRead(execLAX) }},
	0xB7: {"LAX", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regY, execLAX) }},
	0xAF: {"LAX", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execLAX) }},
	0xBF: {"LAX", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regY, execLAX) }},
	0xA3: {"LAX", opNormal, func(c *CPU) []step { return buildIndexedIndirectRead(execLAX) }},
	0xB3: {"LAX", opNormal, func(c *CPU) []step { return buildIndirectIndexedRead(execLAX) }},

	// SAX (store A&X)
	0x87: {"SAX", opNormal, func(c *CPU) []step { return buildZeroPageWrite(execSAX) }},
	0x97: {"SAX", opNormal, func(c *CPU) []step { return buildZeroPageIndexedWrite(regY, execSAX) }},
	0x8F: {"SAX", opNormal, func(c *CPU) []step { return buildAbsoluteWrite(execSAX) }},
	0x83: {"SAX", opNormal, func(c *CPU) []step { return buildIndexedIndirectWrite(execSAX) }},

	// DCP (DEC+CMP)
	0xC7: {"DCP", opNormal, func(c *CPU) []step { return buildZeroPageRMW(execDCP) }},
	0xD7: {"DCP", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRMW(regX, execDCP) }},
	0xCF: {"DCP", opNormal, func(c *CPU) []step { return buildAbsoluteRMW(execDCP) }},
	0xDF: {"DCP", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regX, execDCP) }},
	0xDB: {"DCP", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regY, execDCP) }},
	0xC3: {"DCP", opNormal, func(c *CPU) []step { return buildIndexedIndirectRMW(execDCP) }},
	0xD3: {"DCP", opNormal, func(c *CPU) []step { return buildIndirectIndexedRMW(execDCP) }},

	// ISC/ISB (INC+SBC)
	0xE7: {"ISC", opNormal, func(c *CPU) []step { return buildZeroPageRMW(execISC) }},
	0xF7: {"ISC", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRMW(regX, execISC) }},
	0xEF: {"ISC", opNormal, func(c *CPU) []step { return buildAbsoluteRMW(execISC) }},
	0xFF: {"ISC", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regX, execISC) }},
	0xFB: {"ISC", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regY, execISC) }},
	0xE3: {"ISC", opNormal, func(c *CPU) []step { return buildIndexedIndirectRMW(execISC) }},
	0xF3: {"ISC", opNormal, func(c *CPU) []step { return buildIndirectIndexedRMW(execISC) }},

	// SLO (ASL+ORA)
	0x07: {"SLO", opNormal, func(c *CPU) []step { return buildZeroPageRMW(execSLO) }},
	0x17: {"SLO", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRMW(regX, execSLO) }},
	0x0F: {"SLO", opNormal, func(c *CPU) []step { return buildAbsoluteRMW(execSLO) }},
	0x1F: {"SLO", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regX, execSLO) }},
	0x1B: {"SLO", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regY, execSLO) }},
	0x03: {"SLO", opNormal, func(c *CPU) []step { return buildIndexedIndirectRMW(execSLO) }},
	0x13: {"SLO", opNormal, func(c *CPU) []step { return buildIndirectIndexedRMW(execSLO) }},

	// RLA (ROL+AND)
	0x27: {"RLA", opNormal, func(c *CPU) []step { return buildZeroPageRMW(execRLA) }},
	0x37: {"RLA", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRMW(regX, execRLA) }},
	0x2F: {"RLA", opNormal, func(c *CPU) []step { return buildAbsoluteRMW(execRLA) }},
	0x3F: {"RLA", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regX, execRLA) }},
	0x3B: {"RLA", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regY, execRLA) }},
	0x23: {"RLA", opNormal, func(c *CPU) []step { return buildIndexedIndirectRMW(execRLA) }},
	0x33: {"RLA", opNormal, func(c *CPU) []step { return buildIndirectIndexedRMW(execRLA) }},

	// SRE (LSR+EOR)
	0x47: {"SRE", opNormal, func(c *CPU) []step { return buildZeroPageRMW(execSRE) }},
	0x57: {"SRE", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRMW(regX, execSRE) }},
	0x4F: {"SRE", opNormal, func(c *CPU) []step { return buildAbsoluteRMW(execSRE) }},
	0x5F: {"SRE", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regX, execSRE) }},
	0x5B: {"SRE", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regY, execSRE) }},
	0x43: {"SRE", opNormal, func(c *CPU) []step { return buildIndexedIndirectRMW(execSRE) }},
	0x53: {"SRE", opNormal, func(c *CPU) []step { return buildIndirectIndexedRMW(execSRE) }},

	// RRA (ROR+ADC)
	0x67: {"RRA", opNormal, func(c *CPU) []step { return buildZeroPageRMW(execRRA) }},
	0x77: {"RRA", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRMW(regX, execRRA) }},
	0x6F: {"RRA", opNormal, func(c *CPU) []step { return buildAbsoluteRMW(execRRA) }},
	0x7F: {"RRA", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regX, execRRA) }},
	0x7B: {"RRA", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRMW(regY, execRRA) }},
	0x63: {"RRA", opNormal, func(c *CPU) []step { return buildIndexedIndirectRMW(execRRA) }},
	0x73: {"RRA", opNormal, func(c *CPU) []step { return buildIndirectIndexedRMW(execRRA) }},

	// undocumented NOPs: single-byte
	0x1A: {"NOP", opNormal, func(c *CPU) []step { return buildImplied(execNOP) }},
	0x3A: {"NOP", opNormal, func(c *CPU) []step { return buildImplied(execNOP) }},
	0x5A: {"NOP", opNormal, func(c *CPU) []step { return buildImplied(execNOP) }},
	0x7A: {"NOP", opNormal, func(c *CPU) []step { return buildImplied(execNOP) }},
	0xDA: {"NOP", opNormal, func(c *CPU) []step { return buildImplied(execNOP) }},
	0xFA: {"NOP", opNormal, func(c *CPU) []step { return buildImplied(execNOP) }},

	// undocumented NOPs: immediate (DOP)
	0x80: {"NOP", opNormal, func(c *CPU) []step { return buildImmediate(execNOPRead) }},
	0x82: {"NOP", opNormal, func(c *CPU) []step { return buildImmediate(execNOPRead) }},
	0x89: {"NOP", opNormal, func(c *CPU) []step { return buildImmediate(execNOPRead) }},
	0xC2: {"NOP", opNormal, func(c *CPU) []step { return buildImmediate(execNOPRead) }},
	0xE2: {"NOP", opNormal, func(c *CPU) []step { return buildImmediate(execNOPRead) }},

	// undocumented NOPs: zero page / zero page,X (DOP)
	0x04: {"NOP", opNormal, func(c *CPU) []step { return buildZeroPageRead(execNOPRead) }},
	0x44: {"NOP", opNormal, func(c *CPU) []step { return buildZeroPageRead(execNOPRead) }},
	0x64: {"NOP", opNormal, func(c *CPU) []step { return buildZeroPageRead(execNOPRead) }},
	0x14: {"NOP", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execNOPRead) }},
	0x34: {"NOP", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execNOPRead) }},
	0x54: {"NOP", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execNOPRead) }},
	0x74: {"NOP", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execNOPRead) }},
	0xD4: {"NOP", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execNOPRead) }},
	0xF4: {"NOP", opNormal, func(c *CPU) []step { return buildZeroPageIndexedRead(regX, execNOPRead) }},

	// undocumented NOPs: absolute / absolute,X (TOP)
	0x0C: {"NOP", opNormal, func(c *CPU) []step { return buildAbsoluteRead(execNOPRead) }},
	0x1C: {"NOP", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execNOPRead) }},
	0x3C: {"NOP", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execNOPRead) }},
	0x5C: {"NOP", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execNOPRead) }},
	0x7C: {"NOP", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execNOPRead) }},
	0xDC: {"NOP", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execNOPRead) }},
	0xFC: {"NOP", opNormal, func(c *CPU) []step { return buildAbsoluteIndexedRead(regX, execNOPRead) }},

	// JAM/KIL: locks the bus, as on real silicon
	0x02: {"JAM", opJam, nil},
	0x12: {"JAM", opJam, nil},
	0x22: {"JAM", opJam, nil},
	0x32: {"JAM", opJam, nil},
	0x42: {"JAM", opJam, nil},
	0x52: {"JAM", opJam, nil},
	0x62: {"JAM", opJam, nil},
	0x72: {"JAM", opJam, nil},
	0x92: {"JAM", opJam, nil},
	0xB2: {"JAM", opJam, nil},
	0xD2: {"JAM", opJam, nil},
	0xF2: {"JAM", opJam, nil},
}

func regX(c *CPU) uint8 { return c.Regs.X }
func regY(c *CPU) uint8 { return c.Regs.Y }

// --- load/store ---

func execLDA(c *CPU, v uint8) { c.Regs.A = v; c.Regs.setNZ(v) }
func execLDX(c *CPU, v uint8) { c.Regs.X = v; c.Regs.setNZ(v) }
func execLDY(c *CPU, v uint8) { c.Regs.Y = v; c.Regs.setNZ(v) }
func execLAX(c *CPU, v uint8) { c.Regs.A = v; c.Regs.X = v; c.Regs.setNZ(v) }

func execSTA(c *CPU) uint8 { return c.Regs.A }
func execSTX(c *CPU) uint8 { return c.Regs.X }
func execSTY(c *CPU) uint8 { return c.Regs.Y }
func execSAX(c *CPU) uint8 { return c.Regs.A & c.Regs.X }

func execNOPRead(c *CPU, v uint8) {}
func execNOP(c *CPU)              {}

// --- logic ---

func execAND(c *CPU, v uint8) { c.Regs.A &= v; c.Regs.setNZ(c.Regs.A) }
func execORA(c *CPU, v uint8) { c.Regs.A |= v; c.Regs.setNZ(c.Regs.A) }
func execEOR(c *CPU, v uint8) { c.Regs.A ^= v; c.Regs.setNZ(c.Regs.A) }

func execBIT(c *CPU, v uint8) {
	c.Regs.setFlag(FlagZ, c.Regs.A&v == 0)
	c.Regs.setFlag(FlagN, v&0x80 != 0)
	c.Regs.setFlag(FlagV, v&0x40 != 0)
}

// --- arithmetic ---

func execADC(c *CPU, v uint8) {
	if c.Regs.flag(FlagD) {
		adcBCD(c, v)
		return
	}
	carry := uint16(0)
	if c.Regs.flag(FlagC) {
		carry = 1
	}
	sum := uint16(c.Regs.A) + uint16(v) + carry
	result := uint8(sum)
	c.Regs.setFlag(FlagC, sum > 0xff)
	c.Regs.setFlag(FlagV, (uint16(c.Regs.A)^sum)&(uint16(v)^sum)&0x80 != 0)
	c.Regs.A = result
	c.Regs.setNZ(result)
}

func execSBC(c *CPU, v uint8) {
	if c.Regs.flag(FlagD) {
		sbcBCD(c, v)
		return
	}
	execADC(c, ^v)
}

// adcBCD follows the common emulator convention: the decimal-corrected
// result is stored in A, V and Z are derived from the binary sum, and N is
// taken from the high nibble after the low-nibble correction but before the
// high-nibble correction, as the NMOS 6502 computes them.
func adcBCD(c *CPU, v uint8) {
	a := c.Regs.A
	carry := uint16(0)
	if c.Regs.flag(FlagC) {
		carry = 1
	}
	binSum := uint16(a) + uint16(v) + carry
	c.Regs.setFlag(FlagV, (uint16(a)^binSum)&(uint16(v)^binSum)&0x80 != 0)
	c.Regs.setFlag(FlagZ, uint8(binSum) == 0)

	lo := uint16(a&0x0f) + uint16(v&0x0f) + carry
	hi := uint16(a>>4) + uint16(v>>4)
	if lo > 9 {
		lo += 6
		hi++
	}
	c.Regs.setFlag(FlagN, uint8(hi<<4)&0x80 != 0)
	if hi > 9 {
		hi += 6
	}
	c.Regs.setFlag(FlagC, hi > 15)
	c.Regs.A = uint8(hi<<4) | uint8(lo&0x0f)
}

func sbcBCD(c *CPU, v uint8) {
	a := c.Regs.A
	carry := int16(0)
	if c.Regs.flag(FlagC) {
		carry = 1
	}
	binResult := int16(a) - int16(v) - (1 - carry)
	c.Regs.setFlag(FlagC, binResult >= 0)
	c.Regs.setFlag(FlagV, (uint16(a)^uint16(v))&(uint16(a)^uint16(binResult))&0x80 != 0)
	c.Regs.setFlag(FlagZ, uint8(binResult) == 0)
	c.Regs.setFlag(FlagN, uint8(binResult)&0x80 != 0)

	lo := int16(a&0x0f) - int16(v&0x0f) - (1 - carry)
	hi := int16(a>>4) - int16(v>>4)
	if lo < 0 {
		lo -= 6
		hi--
	}
	if hi < 0 {
		hi -= 6
	}
	c.Regs.A = uint8(hi<<4) | uint8(lo&0x0f)
}

func execCMP(c *CPU, v uint8) { cmp(c, c.Regs.A, v) }
func execCPX(c *CPU, v uint8) { cmp(c, c.Regs.X, v) }
func execCPY(c *CPU, v uint8) { cmp(c, c.Regs.Y, v) }

func cmp(c *CPU, reg, v uint8) {
	c.Regs.setFlag(FlagC, reg >= v)
	c.Regs.setNZ(reg - v)
}

// --- shifts and increments (read-modify-write) ---

func execASL(c *CPU, v uint8) uint8 {
	c.Regs.setFlag(FlagC, v&0x80 != 0)
	r := v << 1
	c.Regs.setNZ(r)
	return r
}

func execLSR(c *CPU, v uint8) uint8 {
	c.Regs.setFlag(FlagC, v&0x01 != 0)
	r := v >> 1
	c.Regs.setNZ(r)
	return r
}

func execROL(c *CPU, v uint8) uint8 {
	var carryIn uint8
	if c.Regs.flag(FlagC) {
		carryIn = 1
	}
	c.Regs.setFlag(FlagC, v&0x80 != 0)
	r := v<<1 | carryIn
	c.Regs.setNZ(r)
	return r
}

func execROR(c *CPU, v uint8) uint8 {
	var carryIn uint8
	if c.Regs.flag(FlagC) {
		carryIn = 0x80
	}
	c.Regs.setFlag(FlagC, v&0x01 != 0)
	r := v>>1 | carryIn
	c.Regs.setNZ(r)
	return r
}

func execINC(c *CPU, v uint8) uint8 { r := v + 1; c.Regs.setNZ(r); return r }
func execDEC(c *CPU, v uint8) uint8 { r := v - 1; c.Regs.setNZ(r); return r }

// illegal combined RMW ops
func execSLO(c *CPU, v uint8) uint8 {
	r := execASL(c, v)
	c.Regs.A |= r
	c.Regs.setNZ(c.Regs.A)
	return r
}

func execRLA(c *CPU, v uint8) uint8 {
	r := execROL(c, v)
	c.Regs.A &= r
	c.Regs.setNZ(c.Regs.A)
	return r
}

func execSRE(c *CPU, v uint8) uint8 {
	r := execLSR(c, v)
	c.Regs.A ^= r
	c.Regs.setNZ(c.Regs.A)
	return r
}

func execRRA(c *CPU, v uint8) uint8 {
	r := execROR(c, v)
	execADC(c, r)
	return r
}

func execDCP(c *CPU, v uint8) uint8 {
	r := execDEC(c, v)
	cmp(c, c.Regs.A, r)
	return r
}

func execISC(c *CPU, v uint8) uint8 {
	r := execINC(c, v)
	execSBC(c, r)
	return r
}

// --- flags ---

func execCLC(c *CPU) { c.Regs.setFlag(FlagC, false) }
func execSEC(c *CPU) { c.Regs.setFlag(FlagC, true) }
func execCLI(c *CPU) { c.Regs.setFlag(FlagI, false) }
func execSEI(c *CPU) { c.Regs.setFlag(FlagI, true) }
func execCLV(c *CPU) { c.Regs.setFlag(FlagV, false) }
func execCLD(c *CPU) { c.Regs.setFlag(FlagD, false) }
func execSED(c *CPU) { c.Regs.setFlag(FlagD, true) }

// --- register transfers ---

func execTAX(c *CPU) { c.Regs.X = c.Regs.A; c.Regs.setNZ(c.Regs.X) }
func execTAY(c *CPU) { c.Regs.Y = c.Regs.A; c.Regs.setNZ(c.Regs.Y) }
func execTXA(c *CPU) { c.Regs.A = c.Regs.X; c.Regs.setNZ(c.Regs.A) }
func execTYA(c *CPU) { c.Regs.A = c.Regs.Y; c.Regs.setNZ(c.Regs.A) }
func execTSX(c *CPU) { c.Regs.X = c.Regs.SP; c.Regs.setNZ(c.Regs.X) }
func execTXS(c *CPU) { c.Regs.SP = c.Regs.X }
func execINX(c *CPU)  { c.Regs.X++; c.Regs.setNZ(c.Regs.X) }
func execINY(c *CPU)  { c.Regs.Y++; c.Regs.setNZ(c.Regs.Y) }
func execDEX(c *CPU)  { c.Regs.X--; c.Regs.setNZ(c.Regs.X) }
func execDEY(c *CPU)  { c.Regs.Y--; c.Regs.setNZ(c.Regs.Y) }
