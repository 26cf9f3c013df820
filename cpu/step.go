package cpu

// StepResult reports the outcome of a Step call. The stepper's
// contract is effectively infallible today: every opcode, including
// unknown ones, results in StepOK. The wider enumeration exists so a
// future revision (bus faults, a halt opcode, an illegal-instruction
// trap) can widen the result without changing Step's signature.
type StepResult int

const (
	// StepOK is returned unconditionally by Step today.
	StepOK StepResult = iota
	// StepUnknownOpcode is reserved for a future opt-in trap; Step
	// never returns it now (unknown opcodes are silently absorbed).
	StepUnknownOpcode
	// StepHalted is reserved for a future halt instruction.
	StepHalted
)

// cycleTable holds the base cycle cost of every opcode, indexed by
// opcode byte. Values are reproduced verbatim from the reference
// table; they do not account for page-crossings or taken branches.
var cycleTable = [256]uint8{
	// 0x00-0x0F
	7, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 4, 4, 6, 6,
	// 0x10-0x1F
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	// 0x20-0x2F
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 4, 4, 6, 6,
	// 0x30-0x3F
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	// 0x40-0x4F
	6, 6, 2, 8, 3, 3, 5, 5, 3, 2, 2, 2, 3, 4, 6, 6,
	// 0x50-0x5F
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	// 0x60-0x6F
	6, 6, 2, 8, 3, 3, 5, 5, 4, 2, 2, 2, 5, 4, 6, 6,
	// 0x70-0x7F
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	// 0x80-0x8F
	6, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	// 0x90-0x9F
	2, 6, 2, 6, 4, 4, 4, 4, 2, 5, 2, 5, 5, 5, 5, 5,
	// 0xA0-0xAF
	2, 6, 2, 6, 3, 3, 3, 3, 2, 2, 2, 2, 4, 4, 4, 4,
	// 0xB0-0xBF
	2, 5, 2, 5, 4, 4, 4, 4, 2, 4, 2, 4, 4, 4, 4, 4,
	// 0xC0-0xCF
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	// 0xD0-0xDF
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
	// 0xE0-0xEF
	2, 6, 2, 8, 3, 3, 5, 5, 2, 2, 2, 2, 4, 4, 6, 6,
	// 0xF0-0xFF
	2, 5, 2, 8, 4, 4, 6, 6, 2, 4, 2, 7, 4, 4, 7, 7,
}

// Step fetches the opcode at PC, decodes and executes exactly one
// instruction, advances the Clock by that opcode's base cycle count,
// and returns. Unknown opcodes charge the table's cycle cost but
// otherwise leave state untouched beyond the opcode fetch itself.
func (c *CPU) Step() (StepResult, error) {
	op := c.Bus.Read(c.PC)
	c.PC++

	var err error

	switch op {
	case 0x00: // BRK
		c.PC++ // padding byte
		c.push16(c.PC)
		c.push(c.P | FlagBreak | FlagUnused)
		c.SetInterrupt(true)
		lo := c.Bus.Read(IRQVector)
		hi := c.Bus.Read(IRQVector + 1)
		c.PC = uint16(hi)<<8 | uint16(lo)
	case 0x01: // ORA (ind,X)
		c.opORA(c.addrIndirectX())
	case 0x05: // ORA zp
		c.opORA(c.addrZeroPage())
	case 0x06: // ASL zp
		c.opASLMem(c.addrZeroPage())
	case 0x08: // PHP
		c.push(c.P | FlagBreak | FlagUnused)
	case 0x09: // ORA imm
		c.opORA(c.addrImmediate())
	case 0x0A: // ASL A
		c.opASLAcc()
	case 0x0D: // ORA abs
		c.opORA(c.addrAbsolute())
	case 0x0E: // ASL abs
		c.opASLMem(c.addrAbsolute())
	case 0x10: // BPL
		c.branch(!c.Negative())
	case 0x11: // ORA (ind),Y
		c.opORA(c.addrIndirectY())
	case 0x15: // ORA zp,X
		c.opORA(c.addrZeroPageX())
	case 0x16: // ASL zp,X
		c.opASLMem(c.addrZeroPageX())
	case 0x18: // CLC
		c.SetCarry(false)
	case 0x19: // ORA abs,Y
		c.opORA(c.addrAbsoluteY())
	case 0x1D: // ORA abs,X
		c.opORA(c.addrAbsoluteX())
	case 0x1E: // ASL abs,X
		c.opASLMem(c.addrAbsoluteX())
	case 0x20: // JSR abs
		pcBeforeOperand := c.PC
		target := c.addrAbsolute()
		c.push16(pcBeforeOperand + 1)
		c.PC = target
	case 0x21: // AND (ind,X)
		c.opAND(c.addrIndirectX())
	case 0x24: // BIT zp
		c.opBIT(c.addrZeroPage())
	case 0x25: // AND zp
		c.opAND(c.addrZeroPage())
	case 0x26: // ROL zp
		c.opROLMem(c.addrZeroPage())
	case 0x28: // PLP
		s := c.pull()
		c.P = (s &^ 0x30) | (c.P & 0x30)
	case 0x29: // AND imm
		c.opAND(c.addrImmediate())
	case 0x2A: // ROL A
		c.opROLAcc()
	case 0x2C: // BIT abs
		c.opBIT(c.addrAbsolute())
	case 0x2D: // AND abs
		c.opAND(c.addrAbsolute())
	case 0x2E: // ROL abs
		c.opROLMem(c.addrAbsolute())
	case 0x30: // BMI
		c.branch(c.Negative())
	case 0x31: // AND (ind),Y
		c.opAND(c.addrIndirectY())
	case 0x35: // AND zp,X
		c.opAND(c.addrZeroPageX())
	case 0x36: // ROL zp,X
		c.opROLMem(c.addrZeroPageX())
	case 0x38: // SEC
		c.SetCarry(true)
	case 0x39: // AND abs,Y
		c.opAND(c.addrAbsoluteY())
	case 0x3D: // AND abs,X
		c.opAND(c.addrAbsoluteX())
	case 0x3E: // ROL abs,X
		c.opROLMem(c.addrAbsoluteX())
	case 0x40: // RTI
		s := c.pull()
		c.P = (s &^ FlagBreak) | (c.P & FlagBreak)
		c.PC = c.pull16()
	case 0x41: // EOR (ind,X)
		c.opEOR(c.addrIndirectX())
	case 0x45: // EOR zp
		c.opEOR(c.addrZeroPage())
	case 0x46: // LSR zp
		c.opLSRMem(c.addrZeroPage())
	case 0x48: // PHA
		c.push(c.A)
	case 0x49: // EOR imm
		c.opEOR(c.addrImmediate())
	case 0x4A: // LSR A
		c.opLSRAcc()
	case 0x4C: // JMP abs
		c.PC = c.addrAbsolute()
	case 0x4D: // EOR abs
		c.opEOR(c.addrAbsolute())
	case 0x4E: // LSR abs
		c.opLSRMem(c.addrAbsolute())
	case 0x50: // BVC
		c.branch(!c.Overflow())
	case 0x51: // EOR (ind),Y
		c.opEOR(c.addrIndirectY())
	case 0x55: // EOR zp,X
		c.opEOR(c.addrZeroPageX())
	case 0x56: // LSR zp,X
		c.opLSRMem(c.addrZeroPageX())
	case 0x58: // CLI
		c.SetInterrupt(false)
	case 0x59: // EOR abs,Y
		c.opEOR(c.addrAbsoluteY())
	case 0x5D: // EOR abs,X
		c.opEOR(c.addrAbsoluteX())
	case 0x5E: // LSR abs,X
		c.opLSRMem(c.addrAbsoluteX())
	case 0x60: // RTS
		c.PC = c.pull16() + 1
	case 0x61: // ADC (ind,X)
		c.opADC(c.addrIndirectX())
	case 0x65: // ADC zp
		c.opADC(c.addrZeroPage())
	case 0x66: // ROR zp
		c.opRORMem(c.addrZeroPage())
	case 0x68: // PLA
		c.A = c.pull()
		c.setNZ(c.A)
	case 0x69: // ADC imm
		c.opADC(c.addrImmediate())
	case 0x6A: // ROR A
		c.opRORAcc()
	case 0x6C: // JMP (ind)
		c.PC = c.addrIndirectJMP()
	case 0x6D: // ADC abs
		c.opADC(c.addrAbsolute())
	case 0x6E: // ROR abs
		c.opRORMem(c.addrAbsolute())
	case 0x70: // BVS
		c.branch(c.Overflow())
	case 0x71: // ADC (ind),Y
		c.opADC(c.addrIndirectY())
	case 0x75: // ADC zp,X
		c.opADC(c.addrZeroPageX())
	case 0x76: // ROR zp,X
		c.opRORMem(c.addrZeroPageX())
	case 0x78: // SEI
		c.SetInterrupt(true)
	case 0x79: // ADC abs,Y
		c.opADC(c.addrAbsoluteY())
	case 0x7D: // ADC abs,X
		c.opADC(c.addrAbsoluteX())
	case 0x7E: // ROR abs,X
		c.opRORMem(c.addrAbsoluteX())
	case 0x80: // VMCALL (non-6502 extension; undocumented NOP on real hardware)
		sel := c.Bus.Read(c.PC)
		c.PC++
		if c.VMCall != nil {
			err = c.VMCall.Handle(c, sel)
		}
	case 0x81: // STA (ind,X)
		c.opStore(c.A, c.addrIndirectX())
	case 0x84: // STY zp
		c.opStore(c.Y, c.addrZeroPage())
	case 0x85: // STA zp
		c.opStore(c.A, c.addrZeroPage())
	case 0x86: // STX zp
		c.opStore(c.X, c.addrZeroPage())
	case 0x88: // DEY
		c.Y--
		c.setNZ(c.Y)
	case 0x8A: // TXA
		c.A = c.X
		c.setNZ(c.A)
	case 0x8C: // STY abs
		c.opStore(c.Y, c.addrAbsolute())
	case 0x8D: // STA abs
		c.opStore(c.A, c.addrAbsolute())
	case 0x8E: // STX abs
		c.opStore(c.X, c.addrAbsolute())
	case 0x90: // BCC
		c.branch(!c.Carry())
	case 0x91: // STA (ind),Y
		c.opStore(c.A, c.addrIndirectY())
	case 0x94: // STY zp,X
		c.opStore(c.Y, c.addrZeroPageX())
	case 0x95: // STA zp,X
		c.opStore(c.A, c.addrZeroPageX())
	case 0x96: // STX zp,Y
		c.opStore(c.X, c.addrZeroPageY())
	case 0x98: // TYA
		c.A = c.Y
		c.setNZ(c.A)
	case 0x99: // STA abs,Y
		c.opStore(c.A, c.addrAbsoluteY())
	case 0x9A: // TXS
		c.SP = c.X
	case 0x9D: // STA abs,X
		c.opStore(c.A, c.addrAbsoluteX())
	case 0xA0: // LDY imm
		c.opLoad(&c.Y, c.addrImmediate())
	case 0xA1: // LDA (ind,X)
		c.opLoad(&c.A, c.addrIndirectX())
	case 0xA2: // LDX imm
		c.opLoad(&c.X, c.addrImmediate())
	case 0xA4: // LDY zp
		c.opLoad(&c.Y, c.addrZeroPage())
	case 0xA5: // LDA zp
		c.opLoad(&c.A, c.addrZeroPage())
	case 0xA6: // LDX zp
		c.opLoad(&c.X, c.addrZeroPage())
	case 0xA8: // TAY
		c.Y = c.A
		c.setNZ(c.Y)
	case 0xA9: // LDA imm
		c.opLoad(&c.A, c.addrImmediate())
	case 0xAA: // TAX
		c.X = c.A
		c.setNZ(c.X)
	case 0xAC: // LDY abs
		c.opLoad(&c.Y, c.addrAbsolute())
	case 0xAD: // LDA abs
		c.opLoad(&c.A, c.addrAbsolute())
	case 0xAE: // LDX abs
		c.opLoad(&c.X, c.addrAbsolute())
	case 0xB0: // BCS
		c.branch(c.Carry())
	case 0xB1: // LDA (ind),Y
		c.opLoad(&c.A, c.addrIndirectY())
	case 0xB4: // LDY zp,X
		c.opLoad(&c.Y, c.addrZeroPageX())
	case 0xB5: // LDA zp,X
		c.opLoad(&c.A, c.addrZeroPageX())
	case 0xB6: // LDX zp,Y
		c.opLoad(&c.X, c.addrZeroPageY())
	case 0xB8: // CLV
		c.SetOverflow(false)
	case 0xB9: // LDA abs,Y
		c.opLoad(&c.A, c.addrAbsoluteY())
	case 0xBA: // TSX
		c.X = c.SP
		c.setNZ(c.X)
	case 0xBC: // LDY abs,X
		c.opLoad(&c.Y, c.addrAbsoluteX())
	case 0xBD: // LDA abs,X
		c.opLoad(&c.A, c.addrAbsoluteX())
	case 0xBE: // LDX abs,Y
		c.opLoad(&c.X, c.addrAbsoluteY())
	case 0xC0: // CPY imm
		c.opCompare(c.Y, c.addrImmediate())
	case 0xC1: // CMP (ind,X)
		c.opCompare(c.A, c.addrIndirectX())
	case 0xC4: // CPY zp
		c.opCompare(c.Y, c.addrZeroPage())
	case 0xC5: // CMP zp
		c.opCompare(c.A, c.addrZeroPage())
	case 0xC6: // DEC zp
		c.opDEC(c.addrZeroPage())
	case 0xC8: // INY
		c.Y++
		c.setNZ(c.Y)
	case 0xC9: // CMP imm
		c.opCompare(c.A, c.addrImmediate())
	case 0xCA: // DEX
		c.X--
		c.setNZ(c.X)
	case 0xCC: // CPY abs
		c.opCompare(c.Y, c.addrAbsolute())
	case 0xCD: // CMP abs
		c.opCompare(c.A, c.addrAbsolute())
	case 0xCE: // DEC abs
		c.opDEC(c.addrAbsolute())
	case 0xD0: // BNE
		c.branch(!c.Zero())
	case 0xD1: // CMP (ind),Y
		c.opCompare(c.A, c.addrIndirectY())
	case 0xD5: // CMP zp,X
		c.opCompare(c.A, c.addrZeroPageX())
	case 0xD6: // DEC zp,X
		c.opDEC(c.addrZeroPageX())
	case 0xD8: // CLD
		c.SetDecimal(false)
	case 0xD9: // CMP abs,Y
		c.opCompare(c.A, c.addrAbsoluteY())
	case 0xDD: // CMP abs,X
		c.opCompare(c.A, c.addrAbsoluteX())
	case 0xDE: // DEC abs,X
		c.opDEC(c.addrAbsoluteX())
	case 0xE0: // CPX imm
		c.opCompare(c.X, c.addrImmediate())
	case 0xE1: // SBC (ind,X)
		c.opSBC(c.addrIndirectX())
	case 0xE4: // CPX zp
		c.opCompare(c.X, c.addrZeroPage())
	case 0xE5: // SBC zp
		c.opSBC(c.addrZeroPage())
	case 0xE6: // INC zp
		c.opINC(c.addrZeroPage())
	case 0xE8: // INX
		c.X++
		c.setNZ(c.X)
	case 0xE9: // SBC imm
		c.opSBC(c.addrImmediate())
	case 0xEA: // NOP
		// No effect beyond the fetch and cycle charge.
	case 0xEC: // CPX abs
		c.opCompare(c.X, c.addrAbsolute())
	case 0xED: // SBC abs
		c.opSBC(c.addrAbsolute())
	case 0xEE: // INC abs
		c.opINC(c.addrAbsolute())
	case 0xF0: // BEQ
		c.branch(c.Zero())
	case 0xF1: // SBC (ind),Y
		c.opSBC(c.addrIndirectY())
	case 0xF5: // SBC zp,X
		c.opSBC(c.addrZeroPageX())
	case 0xF6: // INC zp,X
		c.opINC(c.addrZeroPageX())
	case 0xF8: // SED
		c.SetDecimal(true)
	case 0xF9: // SBC abs,Y
		c.opSBC(c.addrAbsoluteY())
	case 0xFD: // SBC abs,X
		c.opSBC(c.addrAbsoluteX())
	case 0xFE: // INC abs,X
		c.opINC(c.addrAbsoluteX())
	default:
		// Unknown/undocumented opcode: silently ignored beyond the
		// fetch and cycle charge, matching the source.
	}

	c.Clock.Advance(uint32(cycleTable[op]))
	return StepOK, err
}
