package cpu

// Instruction describes one of the 256 opcode slots: its addressing mode,
// the operation to run, its base cycle count, and whether a page boundary
// crossed while resolving its address adds one more cycle.
type Instruction struct {
	Name             string
	Mode             AddressingMode
	Op               func(c *CPU, bus Bus) uint8
	Cycles           uint8
	PageCrossPenalty bool
}

func instr(name string, mode AddressingMode, op func(c *CPU, bus Bus) uint8, cycles uint8, pageCross bool) Instruction {
	return Instruction{Name: name, Mode: mode, Op: op, Cycles: cycles, PageCrossPenalty: pageCross}
}

// opcodeTable is indexed directly by the fetched opcode byte. Every slot is
// populated: undocumented opcodes resolve to their commonly observed
// behavior and JAM slots stall rather than executing garbage.
var opcodeTable = [256]Instruction{
	0x00: instr("BRK", Implied, opBRK, 7, false),
	0x01: instr("ORA", IndexedIndirect, opORA, 6, false),
	0x02: instr("JAM", Implied, opJAM, 2, false),
	0x03: instr("SLO", IndexedIndirect, opSLO, 8, false),
	0x04: instr("NOP", ZeroPage, opSKB, 3, false),
	0x05: instr("ORA", ZeroPage, opORA, 3, false),
	0x06: instr("ASL", ZeroPage, opASL, 5, false),
	0x07: instr("SLO", ZeroPage, opSLO, 5, false),
	0x08: instr("PHP", Implied, opPHP, 3, false),
	0x09: instr("ORA", Immediate, opORA, 2, false),
	0x0A: instr("ASL", Accumulator, opASL, 2, false),
	0x0B: instr("ANC", Immediate, opANC, 2, false),
	0x0C: instr("NOP", Absolute, opSKB, 4, false),
	0x0D: instr("ORA", Absolute, opORA, 4, false),
	0x0E: instr("ASL", Absolute, opASL, 6, false),
	0x0F: instr("SLO", Absolute, opSLO, 6, false),

	0x10: instr("BPL", Relative, opBPL, 2, true),
	0x11: instr("ORA", IndirectIndexed, opORA, 5, true),
	0x12: instr("JAM", Implied, opJAM, 2, false),
	0x13: instr("SLO", IndirectIndexed, opSLO, 8, false),
	0x14: instr("NOP", ZeroPageX, opSKB, 4, false),
	0x15: instr("ORA", ZeroPageX, opORA, 4, false),
	0x16: instr("ASL", ZeroPageX, opASL, 6, false),
	0x17: instr("SLO", ZeroPageX, opSLO, 6, false),
	0x18: instr("CLC", Implied, opCLC, 2, false),
	0x19: instr("ORA", AbsoluteY, opORA, 4, true),
	0x1A: instr("NOP", Implied, opNOP, 2, false),
	0x1B: instr("SLO", AbsoluteY, opSLO, 7, false),
	0x1C: instr("NOP", AbsoluteX, opSKB, 4, true),
	0x1D: instr("ORA", AbsoluteX, opORA, 4, true),
	0x1E: instr("ASL", AbsoluteX, opASL, 7, false),
	0x1F: instr("SLO", AbsoluteX, opSLO, 7, false),

	0x20: instr("JSR", Absolute, opJSR, 6, false),
	0x21: instr("AND", IndexedIndirect, opAND, 6, false),
	0x22: instr("JAM", Implied, opJAM, 2, false),
	0x23: instr("RLA", IndexedIndirect, opRLA, 8, false),
	0x24: instr("BIT", ZeroPage, opBIT, 3, false),
	0x25: instr("AND", ZeroPage, opAND, 3, false),
	0x26: instr("ROL", ZeroPage, opROL, 5, false),
	0x27: instr("RLA", ZeroPage, opRLA, 5, false),
	0x28: instr("PLP", Implied, opPLP, 4, false),
	0x29: instr("AND", Immediate, opAND, 2, false),
	0x2A: instr("ROL", Accumulator, opROL, 2, false),
	0x2B: instr("ANC", Immediate, opANC, 2, false),
	0x2C: instr("BIT", Absolute, opBIT, 4, false),
	0x2D: instr("AND", Absolute, opAND, 4, false),
	0x2E: instr("ROL", Absolute, opROL, 6, false),
	0x2F: instr("RLA", Absolute, opRLA, 6, false),

	0x30: instr("BMI", Relative, opBMI, 2, true),
	0x31: instr("AND", IndirectIndexed, opAND, 5, true),
	0x32: instr("JAM", Implied, opJAM, 2, false),
	0x33: instr("RLA", IndirectIndexed, opRLA, 8, false),
	0x34: instr("NOP", ZeroPageX, opSKB, 4, false),
	0x35: instr("AND", ZeroPageX, opAND, 4, false),
	0x36: instr("ROL", ZeroPageX, opROL, 6, false),
	0x37: instr("RLA", ZeroPageX, opRLA, 6, false),
	0x38: instr("SEC", Implied, opSEC, 2, false),
	0x39: instr("AND", AbsoluteY, opAND, 4, true),
	0x3A: instr("NOP", Implied, opNOP, 2, false),
	0x3B: instr("RLA", AbsoluteY, opRLA, 7, false),
	0x3C: instr("NOP", AbsoluteX, opSKB, 4, true),
	0x3D: instr("AND", AbsoluteX, opAND, 4, true),
	0x3E: instr("ROL", AbsoluteX, opROL, 7, false),
	0x3F: instr("RLA", AbsoluteX, opRLA, 7, false),

	0x40: instr("RTI", Implied, opRTI, 6, false),
	0x41: instr("EOR", IndexedIndirect, opEOR, 6, false),
	0x42: instr("JAM", Implied, opJAM, 2, false),
	0x43: instr("SRE", IndexedIndirect, opSRE, 8, false),
	0x44: instr("NOP", ZeroPage, opSKB, 3, false),
	0x45: instr("EOR", ZeroPage, opEOR, 3, false),
	0x46: instr("LSR", ZeroPage, opLSR, 5, false),
	0x47: instr("SRE", ZeroPage, opSRE, 5, false),
	0x48: instr("PHA", Implied, opPHA, 3, false),
	0x49: instr("EOR", Immediate, opEOR, 2, false),
	0x4A: instr("LSR", Accumulator, opLSR, 2, false),
	0x4B: instr("ALR", Immediate, opALR, 2, false),
	0x4C: instr("JMP", Absolute, opJMP, 3, false),
	0x4D: instr("EOR", Absolute, opEOR, 4, false),
	0x4E: instr("LSR", Absolute, opLSR, 6, false),
	0x4F: instr("SRE", Absolute, opSRE, 6, false),

	0x50: instr("BVC", Relative, opBVC, 2, true),
	0x51: instr("EOR", IndirectIndexed, opEOR, 5, true),
	0x52: instr("JAM", Implied, opJAM, 2, false),
	0x53: instr("SRE", IndirectIndexed, opSRE, 8, false),
	0x54: instr("NOP", ZeroPageX, opSKB, 4, false),
	0x55: instr("EOR", ZeroPageX, opEOR, 4, false),
	0x56: instr("LSR", ZeroPageX, opLSR, 6, false),
	0x57: instr("SRE", ZeroPageX, opSRE, 6, false),
	0x58: instr("CLI", Implied, opCLI, 2, false),
	0x59: instr("EOR", AbsoluteY, opEOR, 4, true),
	0x5A: instr("NOP", Implied, opNOP, 2, false),
	0x5B: instr("SRE", AbsoluteY, opSRE, 7, false),
	0x5C: instr("NOP", AbsoluteX, opSKB, 4, true),
	0x5D: instr("EOR", AbsoluteX, opEOR, 4, true),
	0x5E: instr("LSR", AbsoluteX, opLSR, 7, false),
	0x5F: instr("SRE", AbsoluteX, opSRE, 7, false),

	0x60: instr("RTS", Implied, opRTS, 6, false),
	0x61: instr("ADC", IndexedIndirect, opADC, 6, false),
	0x62: instr("JAM", Implied, opJAM, 2, false),
	0x63: instr("RRA", IndexedIndirect, opRRA, 8, false),
	0x64: instr("NOP", ZeroPage, opSKB, 3, false),
	0x65: instr("ADC", ZeroPage, opADC, 3, false),
	0x66: instr("ROR", ZeroPage, opROR, 5, false),
	0x67: instr("RRA", ZeroPage, opRRA, 5, false),
	0x68: instr("PLA", Implied, opPLA, 4, false),
	0x69: instr("ADC", Immediate, opADC, 2, false),
	0x6A: instr("ROR", Accumulator, opROR, 2, false),
	0x6B: instr("ARR", Immediate, opARR, 2, false),
	0x6C: instr("JMP", Indirect, opJMP, 5, false),
	0x6D: instr("ADC", Absolute, opADC, 4, false),
	0x6E: instr("ROR", Absolute, opROR, 6, false),
	0x6F: instr("RRA", Absolute, opRRA, 6, false),

	0x70: instr("BVS", Relative, opBVS, 2, true),
	0x71: instr("ADC", IndirectIndexed, opADC, 5, true),
	0x72: instr("JAM", Implied, opJAM, 2, false),
	0x73: instr("RRA", IndirectIndexed, opRRA, 8, false),
	0x74: instr("NOP", ZeroPageX, opSKB, 4, false),
	0x75: instr("ADC", ZeroPageX, opADC, 4, false),
	0x76: instr("ROR", ZeroPageX, opROR, 6, false),
	0x77: instr("RRA", ZeroPageX, opRRA, 6, false),
	0x78: instr("SEI", Implied, opSEI, 2, false),
	0x79: instr("ADC", AbsoluteY, opADC, 4, true),
	0x7A: instr("NOP", Implied, opNOP, 2, false),
	0x7B: instr("RRA", AbsoluteY, opRRA, 7, false),
	0x7C: instr("NOP", AbsoluteX, opSKB, 4, true),
	0x7D: instr("ADC", AbsoluteX, opADC, 4, true),
	0x7E: instr("ROR", AbsoluteX, opROR, 7, false),
	0x7F: instr("RRA", AbsoluteX, opRRA, 7, false),

	0x80: instr("NOP", Immediate, opSKB, 2, false),
	0x81: instr("STA", IndexedIndirect, opSTA, 6, false),
	0x82: instr("NOP", Immediate, opSKB, 2, false),
	0x83: instr("SAX", IndexedIndirect, opSAX, 6, false),
	0x84: instr("STY", ZeroPage, opSTY, 3, false),
	0x85: instr("STA", ZeroPage, opSTA, 3, false),
	0x86: instr("STX", ZeroPage, opSTX, 3, false),
	0x87: instr("SAX", ZeroPage, opSAX, 3, false),
	0x88: instr("DEY", Implied, opDEY, 2, false),
	0x89: instr("NOP", Immediate, opSKB, 2, false),
	0x8A: instr("TXA", Implied, opTXA, 2, false),
	0x8B: instr("XAA", Immediate, opXAA, 2, false),
	0x8C: instr("STY", Absolute, opSTY, 4, false),
	0x8D: instr("STA", Absolute, opSTA, 4, false),
	0x8E: instr("STX", Absolute, opSTX, 4, false),
	0x8F: instr("SAX", Absolute, opSAX, 4, false),

	0x90: instr("BCC", Relative, opBCC, 2, true),
	0x91: instr("STA", IndirectIndexed, opSTA, 6, false),
	0x92: instr("JAM", Implied, opJAM, 2, false),
	0x93: instr("SHA", IndirectIndexed, opSHA, 6, false),
	0x94: instr("STY", ZeroPageX, opSTY, 4, false),
	0x95: instr("STA", ZeroPageX, opSTA, 4, false),
	0x96: instr("STX", ZeroPageY, opSTX, 4, false),
	0x97: instr("SAX", ZeroPageY, opSAX, 4, false),
	0x98: instr("TYA", Implied, opTYA, 2, false),
	0x99: instr("STA", AbsoluteY, opSTA, 5, false),
	0x9A: instr("TXS", Implied, opTXS, 2, false),
	0x9B: instr("TAS", AbsoluteY, opTAS, 5, false),
	0x9C: instr("SHY", AbsoluteX, opSHY, 5, false),
	0x9D: instr("STA", AbsoluteX, opSTA, 5, false),
	0x9E: instr("SHX", AbsoluteY, opSHX, 5, false),
	0x9F: instr("SHA", AbsoluteY, opSHA, 5, false),

	0xA0: instr("LDY", Immediate, opLDY, 2, false),
	0xA1: instr("LDA", IndexedIndirect, opLDA, 6, false),
	0xA2: instr("LDX", Immediate, opLDX, 2, false),
	0xA3: instr("LAX", IndexedIndirect, opLAX, 6, false),
	0xA4: instr("LDY", ZeroPage, opLDY, 3, false),
	0xA5: instr("LDA", ZeroPage, opLDA, 3, false),
	0xA6: instr("LDX", ZeroPage, opLDX, 3, false),
	0xA7: instr("LAX", ZeroPage, opLAX, 3, false),
	0xA8: instr("TAY", Implied, opTAY, 2, false),
	0xA9: instr("LDA", Immediate, opLDA, 2, false),
	0xAA: instr("TAX", Implied, opTAX, 2, false),
	0xAB: instr("LAX", Immediate, opLAX, 2, false),
	0xAC: instr("LDY", Absolute, opLDY, 4, false),
	0xAD: instr("LDA", Absolute, opLDA, 4, false),
	0xAE: instr("LDX", Absolute, opLDX, 4, false),
	0xAF: instr("LAX", Absolute, opLAX, 4, false),

	0xB0: instr("BCS", Relative, opBCS, 2, true),
	0xB1: instr("LDA", IndirectIndexed, opLDA, 5, true),
	0xB2: instr("JAM", Implied, opJAM, 2, false),
	0xB3: instr("LAX", IndirectIndexed, opLAX, 5, true),
	0xB4: instr("LDY", ZeroPageX, opLDY, 4, false),
	0xB5: instr("LDA", ZeroPageX, opLDA, 4, false),
	0xB6: instr("LDX", ZeroPageY, opLDX, 4, false),
	0xB7: instr("LAX", ZeroPageY, opLAX, 4, false),
	0xB8: instr("CLV", Implied, opCLV, 2, false),
	0xB9: instr("LDA", AbsoluteY, opLDA, 4, true),
	0xBA: instr("TSX", Implied, opTSX, 2, false),
	0xBB: instr("LAS", AbsoluteY, opLAS, 4, true),
	0xBC: instr("LDY", AbsoluteX, opLDY, 4, true),
	0xBD: instr("LDA", AbsoluteX, opLDA, 4, true),
	0xBE: instr("LDX", AbsoluteY, opLDX, 4, true),
	0xBF: instr("LAX", AbsoluteY, opLAX, 4, true),

	0xC0: instr("CPY", Immediate, opCPY, 2, false),
	0xC1: instr("CMP", IndexedIndirect, opCMP, 6, false),
	0xC2: instr("NOP", Immediate, opSKB, 2, false),
	0xC3: instr("DCP", IndexedIndirect, opDCP, 8, false),
	0xC4: instr("CPY", ZeroPage, opCPY, 3, false),
	0xC5: instr("CMP", ZeroPage, opCMP, 3, false),
	0xC6: instr("DEC", ZeroPage, opDEC, 5, false),
	0xC7: instr("DCP", ZeroPage, opDCP, 5, false),
	0xC8: instr("INY", Implied, opINY, 2, false),
	0xC9: instr("CMP", Immediate, opCMP, 2, false),
	0xCA: instr("DEX", Implied, opDEX, 2, false),
	0xCB: instr("AXS", Immediate, opAXS, 2, false),
	0xCC: instr("CPY", Absolute, opCPY, 4, false),
	0xCD: instr("CMP", Absolute, opCMP, 4, false),
	0xCE: instr("DEC", Absolute, opDEC, 6, false),
	0xCF: instr("DCP", Absolute, opDCP, 6, false),

	0xD0: instr("BNE", Relative, opBNE, 2, true),
	0xD1: instr("CMP", IndirectIndexed, opCMP, 5, true),
	0xD2: instr("JAM", Implied, opJAM, 2, false),
	0xD3: instr("DCP", IndirectIndexed, opDCP, 8, false),
	0xD4: instr("NOP", ZeroPageX, opSKB, 4, false),
	0xD5: instr("CMP", ZeroPageX, opCMP, 4, false),
	0xD6: instr("DEC", ZeroPageX, opDEC, 6, false),
	0xD7: instr("DCP", ZeroPageX, opDCP, 6, false),
	0xD8: instr("CLD", Implied, opCLD, 2, false),
	0xD9: instr("CMP", AbsoluteY, opCMP, 4, true),
	0xDA: instr("NOP", Implied, opNOP, 2, false),
	0xDB: instr("DCP", AbsoluteY, opDCP, 7, false),
	0xDC: instr("NOP", AbsoluteX, opSKB, 4, true),
	0xDD: instr("CMP", AbsoluteX, opCMP, 4, true),
	0xDE: instr("DEC", AbsoluteX, opDEC, 7, false),
	0xDF: instr("DCP", AbsoluteX, opDCP, 7, false),

	0xE0: instr("CPX", Immediate, opCPX, 2, false),
	0xE1: instr("SBC", IndexedIndirect, opSBC, 6, false),
	0xE2: instr("NOP", Immediate, opSKB, 2, false),
	0xE3: instr("ISB", IndexedIndirect, opISB, 8, false),
	0xE4: instr("CPX", ZeroPage, opCPX, 3, false),
	0xE5: instr("SBC", ZeroPage, opSBC, 3, false),
	0xE6: instr("INC", ZeroPage, opINC, 5, false),
	0xE7: instr("ISB", ZeroPage, opISB, 5, false),
	0xE8: instr("INX", Implied, opINX, 2, false),
	0xE9: instr("SBC", Immediate, opSBC, 2, false),
	0xEA: instr("NOP", Implied, opNOP, 2, false),
	0xEB: instr("SBC", Immediate, opSBC, 2, false),
	0xEC: instr("CPX", Absolute, opCPX, 4, false),
	0xED: instr("SBC", Absolute, opSBC, 4, false),
	0xEE: instr("INC", Absolute, opINC, 6, false),
	0xEF: instr("ISB", Absolute, opISB, 6, false),

	0xF0: instr("BEQ", Relative, opBEQ, 2, true),
	0xF1: instr("SBC", IndirectIndexed, opSBC, 5, true),
	0xF2: instr("JAM", Implied, opJAM, 2, false),
	0xF3: instr("ISB", IndirectIndexed, opISB, 8, false),
	0xF4: instr("NOP", ZeroPageX, opSKB, 4, false),
	0xF5: instr("SBC", ZeroPageX, opSBC, 4, false),
	0xF6: instr("INC", ZeroPageX, opINC, 6, false),
	0xF7: instr("ISB", ZeroPageX, opISB, 6, false),
	0xF8: instr("SED", Implied, opSED, 2, false),
	0xF9: instr("SBC", AbsoluteY, opSBC, 4, true),
	0xFA: instr("NOP", Implied, opNOP, 2, false),
	0xFB: instr("ISB", AbsoluteY, opISB, 7, false),
	0xFC: instr("NOP", AbsoluteX, opSKB, 4, true),
	0xFD: instr("SBC", AbsoluteX, opSBC, 4, true),
	0xFE: instr("INC", AbsoluteX, opINC, 7, false),
	0xFF: instr("ISB", AbsoluteX, opISB, 7, false),
}
