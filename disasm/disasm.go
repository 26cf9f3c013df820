// Package disasm renders a single 6502 instruction at a given address
// to a fixed-capacity byte buffer. It is pure with respect to CPU
// state: it reads bytes near addr via the bus but never mutates
// registers.
package disasm

import (
	"fmt"

	"go6502/cpu"
)

// addrMode enumerates the operand-rendering shapes disasm needs; it is
// distinct from (and simpler than) the cpu package's addressing-mode
// helpers since disasm never computes an effective address, only a
// textual operand.
type addrMode int

const (
	modeImplicit addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirectX
	modeIndirectY
	modeIndirect
	modeRelative
)

// Disassemble reads the opcode at addr and its operand bytes from
// cpu.Bus, renders the canonical assembler text into buf (capped at
// len(buf)), and returns the number of bytes written.
//
// Branch targets are computed relative to cpu.PC, not addr — a direct
// reproduction of the source's behavior. A general purpose disassembler
// would use addr+2; this one only gets the right answer when called
// with addr == cpu.PC, which is the only way every existing caller uses
// it.
//
// If the opcode is unrecognized, buf is left untouched (nothing is
// written) and the returned length is the length of whatever string
// buf already holds up to its first zero byte — callers are expected
// to zero or pre-initialize buf before calling.
func Disassemble(c *cpu.CPU, addr uint16, buf []byte) int {
	op := c.Bus.Read(addr)
	op1 := c.Bus.Read(addr + 1)
	op2 := c.Bus.Read(addr + 2)

	mnemonic, mode, ok := decode(op)
	if !ok {
		return strlen(buf)
	}

	var text string
	switch mode {
	case modeImplicit:
		text = mnemonic
	case modeAccumulator:
		text = mnemonic + " A"
	case modeImmediate:
		text = fmt.Sprintf("%s #$%02X", mnemonic, op1)
	case modeZeroPage:
		text = fmt.Sprintf("%s $%02X", mnemonic, op1)
	case modeZeroPageX:
		text = fmt.Sprintf("%s $%02X,X", mnemonic, op1)
	case modeZeroPageY:
		text = fmt.Sprintf("%s $%02X,Y", mnemonic, op1)
	case modeAbsolute:
		text = fmt.Sprintf("%s $%02X%02X", mnemonic, op2, op1)
	case modeAbsoluteX:
		text = fmt.Sprintf("%s $%02X%02X,X", mnemonic, op2, op1)
	case modeAbsoluteY:
		text = fmt.Sprintf("%s $%02X%02X,Y", mnemonic, op2, op1)
	case modeIndirectX:
		text = fmt.Sprintf("%s ($%02X,X)", mnemonic, op1)
	case modeIndirectY:
		text = fmt.Sprintf("%s ($%02X),Y", mnemonic, op1)
	case modeIndirect:
		text = fmt.Sprintf("%s ($%02X%02X)", mnemonic, op2, op1)
	case modeRelative:
		offset := int16(int8(op1))
		target := c.PC + 2 + uint16(offset)
		text = fmt.Sprintf("%s $%04X", mnemonic, target)
	}

	return copy(buf, text)
}

// strlen returns the length of the NUL-terminated (or fully-populated)
// string currently held in buf.
func strlen(buf []byte) int {
	for i, b := range buf {
		if b == 0 {
			return i
		}
	}
	return len(buf)
}

// decode returns the mnemonic and addressing mode for op, and false if
// op isn't one of the 151 documented opcodes (or this core's VMCALL
// extension).
func decode(op uint8) (string, addrMode, bool) {
	switch op {
	case 0x00:
		return "BRK", modeImplicit, true
	case 0x01:
		return "ORA", modeIndirectX, true
	case 0x05:
		return "ORA", modeZeroPage, true
	case 0x06:
		return "ASL", modeZeroPage, true
	case 0x08:
		return "PHP", modeImplicit, true
	case 0x09:
		return "ORA", modeImmediate, true
	case 0x0A:
		return "ASL", modeAccumulator, true
	case 0x0D:
		return "ORA", modeAbsolute, true
	case 0x0E:
		return "ASL", modeAbsolute, true
	case 0x10:
		return "BPL", modeRelative, true
	case 0x11:
		return "ORA", modeIndirectY, true
	case 0x15:
		return "ORA", modeZeroPageX, true
	case 0x16:
		return "ASL", modeZeroPageX, true
	case 0x18:
		return "CLC", modeImplicit, true
	case 0x19:
		return "ORA", modeAbsoluteY, true
	case 0x1D:
		return "ORA", modeAbsoluteX, true
	case 0x1E:
		return "ASL", modeAbsoluteX, true
	case 0x20:
		return "JSR", modeAbsolute, true
	case 0x21:
		return "AND", modeIndirectX, true
	case 0x24:
		return "BIT", modeZeroPage, true
	case 0x25:
		return "AND", modeZeroPage, true
	case 0x26:
		return "ROL", modeZeroPage, true
	case 0x28:
		return "PLP", modeImplicit, true
	case 0x29:
		return "AND", modeImmediate, true
	case 0x2A:
		return "ROL", modeAccumulator, true
	case 0x2C:
		return "BIT", modeAbsolute, true
	case 0x2D:
		return "AND", modeAbsolute, true
	case 0x2E:
		return "ROL", modeAbsolute, true
	case 0x30:
		return "BMI", modeRelative, true
	case 0x31:
		return "AND", modeIndirectY, true
	case 0x35:
		return "AND", modeZeroPageX, true
	case 0x36:
		return "ROL", modeZeroPageX, true
	case 0x38:
		return "SEC", modeImplicit, true
	case 0x39:
		return "AND", modeAbsoluteY, true
	case 0x3D:
		return "AND", modeAbsoluteX, true
	case 0x3E:
		return "ROL", modeAbsoluteX, true
	case 0x40:
		return "RTI", modeImplicit, true
	case 0x41:
		return "EOR", modeIndirectX, true
	case 0x45:
		return "EOR", modeZeroPage, true
	case 0x46:
		return "LSR", modeZeroPage, true
	case 0x48:
		return "PHA", modeImplicit, true
	case 0x49:
		return "EOR", modeImmediate, true
	case 0x4A:
		return "LSR", modeAccumulator, true
	case 0x4C:
		return "JMP", modeAbsolute, true
	case 0x4D:
		return "EOR", modeAbsolute, true
	case 0x4E:
		return "LSR", modeAbsolute, true
	case 0x50:
		return "BVC", modeRelative, true
	case 0x51:
		return "EOR", modeIndirectY, true
	case 0x55:
		return "EOR", modeZeroPageX, true
	case 0x56:
		return "LSR", modeZeroPageX, true
	case 0x58:
		return "CLI", modeImplicit, true
	case 0x59:
		return "EOR", modeAbsoluteY, true
	case 0x5D:
		return "EOR", modeAbsoluteX, true
	case 0x5E:
		return "LSR", modeAbsoluteX, true
	case 0x60:
		return "RTS", modeImplicit, true
	case 0x61:
		return "ADC", modeIndirectX, true
	case 0x65:
		return "ADC", modeZeroPage, true
	case 0x66:
		return "ROR", modeZeroPage, true
	case 0x68:
		return "PLA", modeImplicit, true
	case 0x69:
		return "ADC", modeImmediate, true
	case 0x6A:
		return "ROR", modeAccumulator, true
	case 0x6C:
		return "JMP", modeIndirect, true
	case 0x6D:
		return "ADC", modeAbsolute, true
	case 0x6E:
		return "ROR", modeAbsolute, true
	case 0x70:
		return "BVS", modeRelative, true
	case 0x71:
		return "ADC", modeIndirectY, true
	case 0x75:
		return "ADC", modeZeroPageX, true
	case 0x76:
		return "ROR", modeZeroPageX, true
	case 0x78:
		return "SEI", modeImplicit, true
	case 0x79:
		return "ADC", modeAbsoluteY, true
	case 0x7D:
		return "ADC", modeAbsoluteX, true
	case 0x7E:
		return "ROR", modeAbsoluteX, true
	case 0x80:
		return "VMCALL", modeImmediate, true
	case 0x81:
		return "STA", modeIndirectX, true
	case 0x84:
		return "STY", modeZeroPage, true
	case 0x85:
		return "STA", modeZeroPage, true
	case 0x86:
		return "STX", modeZeroPage, true
	case 0x88:
		return "DEY", modeImplicit, true
	case 0x8A:
		return "TXA", modeImplicit, true
	case 0x8C:
		return "STY", modeAbsolute, true
	case 0x8D:
		return "STA", modeAbsolute, true
	case 0x8E:
		return "STX", modeAbsolute, true
	case 0x90:
		return "BCC", modeRelative, true
	case 0x91:
		return "STA", modeIndirectY, true
	case 0x94:
		return "STY", modeZeroPageX, true
	case 0x95:
		return "STA", modeZeroPageX, true
	case 0x96:
		return "STX", modeZeroPageY, true
	case 0x98:
		return "TYA", modeImplicit, true
	case 0x99:
		return "STA", modeAbsoluteY, true
	case 0x9A:
		return "TXS", modeImplicit, true
	case 0x9D:
		return "STA", modeAbsoluteX, true
	case 0xA0:
		return "LDY", modeImmediate, true
	case 0xA1:
		return "LDA", modeIndirectX, true
	case 0xA2:
		return "LDX", modeImmediate, true
	case 0xA4:
		return "LDY", modeZeroPage, true
	case 0xA5:
		return "LDA", modeZeroPage, true
	case 0xA6:
		return "LDX", modeZeroPage, true
	case 0xA8:
		return "TAY", modeImplicit, true
	case 0xA9:
		return "LDA", modeImmediate, true
	case 0xAA:
		return "TAX", modeImplicit, true
	case 0xAC:
		return "LDY", modeAbsolute, true
	case 0xAD:
		return "LDA", modeAbsolute, true
	case 0xAE:
		return "LDX", modeAbsolute, true
	case 0xB0:
		return "BCS", modeRelative, true
	case 0xB1:
		return "LDA", modeIndirectY, true
	case 0xB4:
		return "LDY", modeZeroPageX, true
	case 0xB5:
		return "LDA", modeZeroPageX, true
	case 0xB6:
		return "LDX", modeZeroPageY, true
	case 0xB8:
		return "CLV", modeImplicit, true
	case 0xB9:
		return "LDA", modeAbsoluteY, true
	case 0xBA:
		return "TSX", modeImplicit, true
	case 0xBC:
		return "LDY", modeAbsoluteX, true
	case 0xBD:
		return "LDA", modeAbsoluteX, true
	case 0xBE:
		return "LDX", modeAbsoluteY, true
	case 0xC0:
		return "CPY", modeImmediate, true
	case 0xC1:
		return "CMP", modeIndirectX, true
	case 0xC4:
		return "CPY", modeZeroPage, true
	case 0xC5:
		return "CMP", modeZeroPage, true
	case 0xC6:
		return "DEC", modeZeroPage, true
	case 0xC8:
		return "INY", modeImplicit, true
	case 0xC9:
		return "CMP", modeImmediate, true
	case 0xCA:
		return "DEX", modeImplicit, true
	case 0xCC:
		return "CPY", modeAbsolute, true
	case 0xCD:
		return "CMP", modeAbsolute, true
	case 0xCE:
		return "DEC", modeAbsolute, true
	case 0xD0:
		return "BNE", modeRelative, true
	case 0xD1:
		return "CMP", modeIndirectY, true
	case 0xD5:
		return "CMP", modeZeroPageX, true
	case 0xD6:
		return "DEC", modeZeroPageX, true
	case 0xD8:
		return "CLD", modeImplicit, true
	case 0xD9:
		return "CMP", modeAbsoluteY, true
	case 0xDD:
		return "CMP", modeAbsoluteX, true
	case 0xDE:
		return "DEC", modeAbsoluteX, true
	case 0xE0:
		return "CPX", modeImmediate, true
	case 0xE1:
		return "SBC", modeIndirectX, true
	case 0xE4:
		return "CPX", modeZeroPage, true
	case 0xE5:
		return "SBC", modeZeroPage, true
	case 0xE6:
		return "INC", modeZeroPage, true
	case 0xE8:
		return "INX", modeImplicit, true
	case 0xE9:
		return "SBC", modeImmediate, true
	case 0xEA:
		return "NOP", modeImplicit, true
	case 0xEC:
		return "CPX", modeAbsolute, true
	case 0xED:
		return "SBC", modeAbsolute, true
	case 0xEE:
		return "INC", modeAbsolute, true
	case 0xF0:
		return "BEQ", modeRelative, true
	case 0xF1:
		return "SBC", modeIndirectY, true
	case 0xF5:
		return "SBC", modeZeroPageX, true
	case 0xF6:
		return "INC", modeZeroPageX, true
	case 0xF8:
		return "SED", modeImplicit, true
	case 0xF9:
		return "SBC", modeAbsoluteY, true
	case 0xFD:
		return "SBC", modeAbsoluteX, true
	case 0xFE:
		return "INC", modeAbsoluteX, true
	default:
		return "", modeImplicit, false
	}
}
