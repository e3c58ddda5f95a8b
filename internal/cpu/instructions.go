package cpu

// AddressingMode selects how an instruction locates its operand.
type AddressingMode uint8

// Addressing modes of the 6502. Implied also covers the accumulator
// variants of the shift and rotate instructions.
const (
	Implied AddressingMode = iota
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

var addressingNames = [...]string{
	Implied:   "implied",
	Immediate: "immediate",
	ZeroPage:  "zero page",
	ZeroPageX: "zero page,x",
	ZeroPageY: "zero page,y",
	Relative:  "relative",
	Absolute:  "absolute",
	AbsoluteX: "absolute,x",
	AbsoluteY: "absolute,y",
	Indirect:  "indirect",
	IndirectX: "(indirect,x)",
	IndirectY: "(indirect),y",
}

func (m AddressingMode) String() string {
	if int(m) < len(addressingNames) {
		return addressingNames[m]
	}
	return "unknown"
}

// OperandBytes returns the number of bytes following the opcode.
func (m AddressingMode) OperandBytes() int {
	switch m {
	case Implied:
		return 0
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 2
	default:
		return 1
	}
}

// Operation selects the function that an instruction executes.
type Operation uint8

// Operations of the 6502. Illegal is executed for all undefined opcodes.
const (
	Illegal Operation = iota
	Adc
	And
	Asl
	Bcc
	Bcs
	Beq
	Bit
	Bmi
	Bne
	Bpl
	Brk
	Bvc
	Bvs
	Clc
	Cld
	Cli
	Clv
	Cmp
	Cpx
	Cpy
	Dec
	Dex
	Dey
	Eor
	Inc
	Inx
	Iny
	Jmp
	Jsr
	Lda
	Ldx
	Ldy
	Lsr
	Nop
	Ora
	Pha
	Php
	Pla
	Plp
	Rol
	Ror
	Rti
	Rts
	Sbc
	Sec
	Sed
	Sei
	Sta
	Stx
	Sty
	Tax
	Tay
	Tsx
	Txa
	Txs
	Tya
)

// Instruction describes one opcode.
type Instruction struct {
	Name      string
	Operation Operation
	Mode      AddressingMode
	Cycles    uint8 // base cycles without page cross or branch penalties
}

// Official returns whether the opcode is a documented instruction.
func (i Instruction) Official() bool {
	return i.Name != illegalName
}

const illegalName = "???"

// Instructions maps every opcode byte to its instruction. Undefined
// opcodes are named ??? and execute as no-ops.
var Instructions = [256]Instruction{
	0x00: {"BRK", Brk, Implied, 7},
	0x01: {"ORA", Ora, IndirectX, 6},
	0x02: {"???", Illegal, Implied, 2},
	0x03: {"???", Illegal, Implied, 8},
	0x04: {"???", Nop, Implied, 3},
	0x05: {"ORA", Ora, ZeroPage, 3},
	0x06: {"ASL", Asl, ZeroPage, 5},
	0x07: {"???", Illegal, Implied, 5},
	0x08: {"PHP", Php, Implied, 3},
	0x09: {"ORA", Ora, Immediate, 2},
	0x0A: {"ASL", Asl, Implied, 2},
	0x0B: {"???", Illegal, Implied, 2},
	0x0C: {"???", Nop, Implied, 4},
	0x0D: {"ORA", Ora, Absolute, 4},
	0x0E: {"ASL", Asl, Absolute, 6},
	0x0F: {"???", Illegal, Implied, 6},
	0x10: {"BPL", Bpl, Relative, 2},
	0x11: {"ORA", Ora, IndirectY, 5},
	0x12: {"???", Illegal, Implied, 2},
	0x13: {"???", Illegal, Implied, 8},
	0x14: {"???", Nop, Implied, 4},
	0x15: {"ORA", Ora, ZeroPageX, 4},
	0x16: {"ASL", Asl, ZeroPageX, 6},
	0x17: {"???", Illegal, Implied, 6},
	0x18: {"CLC", Clc, Implied, 2},
	0x19: {"ORA", Ora, AbsoluteY, 4},
	0x1A: {"???", Nop, Implied, 2},
	0x1B: {"???", Illegal, Implied, 7},
	0x1C: {"???", Nop, Implied, 4},
	0x1D: {"ORA", Ora, AbsoluteX, 4},
	0x1E: {"ASL", Asl, AbsoluteX, 7},
	0x1F: {"???", Illegal, Implied, 7},
	0x20: {"JSR", Jsr, Absolute, 6},
	0x21: {"AND", And, IndirectX, 6},
	0x22: {"???", Illegal, Implied, 2},
	0x23: {"???", Illegal, Implied, 8},
	0x24: {"BIT", Bit, ZeroPage, 3},
	0x25: {"AND", And, ZeroPage, 3},
	0x26: {"ROL", Rol, ZeroPage, 5},
	0x27: {"???", Illegal, Implied, 5},
	0x28: {"PLP", Plp, Implied, 4},
	0x29: {"AND", And, Immediate, 2},
	0x2A: {"ROL", Rol, Implied, 2},
	0x2B: {"???", Illegal, Implied, 2},
	0x2C: {"BIT", Bit, Absolute, 4},
	0x2D: {"AND", And, Absolute, 4},
	0x2E: {"ROL", Rol, Absolute, 6},
	0x2F: {"???", Illegal, Implied, 6},
	0x30: {"BMI", Bmi, Relative, 2},
	0x31: {"AND", And, IndirectY, 5},
	0x32: {"???", Illegal, Implied, 2},
	0x33: {"???", Illegal, Implied, 8},
	0x34: {"???", Nop, Implied, 4},
	0x35: {"AND", And, ZeroPageX, 4},
	0x36: {"ROL", Rol, ZeroPageX, 6},
	0x37: {"???", Illegal, Implied, 6},
	0x38: {"SEC", Sec, Implied, 2},
	0x39: {"AND", And, AbsoluteY, 4},
	0x3A: {"???", Nop, Implied, 2},
	0x3B: {"???", Illegal, Implied, 7},
	0x3C: {"???", Nop, Implied, 4},
	0x3D: {"AND", And, AbsoluteX, 4},
	0x3E: {"ROL", Rol, AbsoluteX, 7},
	0x3F: {"???", Illegal, Implied, 7},
	0x40: {"RTI", Rti, Implied, 6},
	0x41: {"EOR", Eor, IndirectX, 6},
	0x42: {"???", Illegal, Implied, 2},
	0x43: {"???", Illegal, Implied, 8},
	0x44: {"???", Nop, Implied, 3},
	0x45: {"EOR", Eor, ZeroPage, 3},
	0x46: {"LSR", Lsr, ZeroPage, 5},
	0x47: {"???", Illegal, Implied, 5},
	0x48: {"PHA", Pha, Implied, 3},
	0x49: {"EOR", Eor, Immediate, 2},
	0x4A: {"LSR", Lsr, Implied, 2},
	0x4B: {"???", Illegal, Implied, 2},
	0x4C: {"JMP", Jmp, Absolute, 3},
	0x4D: {"EOR", Eor, Absolute, 4},
	0x4E: {"LSR", Lsr, Absolute, 6},
	0x4F: {"???", Illegal, Implied, 6},
	0x50: {"BVC", Bvc, Relative, 2},
	0x51: {"EOR", Eor, IndirectY, 5},
	0x52: {"???", Illegal, Implied, 2},
	0x53: {"???", Illegal, Implied, 8},
	0x54: {"???", Nop, Implied, 4},
	0x55: {"EOR", Eor, ZeroPageX, 4},
	0x56: {"LSR", Lsr, ZeroPageX, 6},
	0x57: {"???", Illegal, Implied, 6},
	0x58: {"CLI", Cli, Implied, 2},
	0x59: {"EOR", Eor, AbsoluteY, 4},
	0x5A: {"???", Nop, Implied, 2},
	0x5B: {"???", Illegal, Implied, 7},
	0x5C: {"???", Nop, Implied, 4},
	0x5D: {"EOR", Eor, AbsoluteX, 4},
	0x5E: {"LSR", Lsr, AbsoluteX, 7},
	0x5F: {"???", Illegal, Implied, 7},
	0x60: {"RTS", Rts, Implied, 6},
	0x61: {"ADC", Adc, IndirectX, 6},
	0x62: {"???", Illegal, Implied, 2},
	0x63: {"???", Illegal, Implied, 8},
	0x64: {"???", Nop, Implied, 3},
	0x65: {"ADC", Adc, ZeroPage, 3},
	0x66: {"ROR", Ror, ZeroPage, 5},
	0x67: {"???", Illegal, Implied, 5},
	0x68: {"PLA", Pla, Implied, 4},
	0x69: {"ADC", Adc, Immediate, 2},
	0x6A: {"ROR", Ror, Implied, 2},
	0x6B: {"???", Illegal, Implied, 2},
	0x6C: {"JMP", Jmp, Indirect, 5},
	0x6D: {"ADC", Adc, Absolute, 4},
	0x6E: {"ROR", Ror, Absolute, 6},
	0x6F: {"???", Illegal, Implied, 6},
	0x70: {"BVS", Bvs, Relative, 2},
	0x71: {"ADC", Adc, IndirectY, 5},
	0x72: {"???", Illegal, Implied, 2},
	0x73: {"???", Illegal, Implied, 8},
	0x74: {"???", Nop, Implied, 4},
	0x75: {"ADC", Adc, ZeroPageX, 4},
	0x76: {"ROR", Ror, ZeroPageX, 6},
	0x77: {"???", Illegal, Implied, 6},
	0x78: {"SEI", Sei, Implied, 2},
	0x79: {"ADC", Adc, AbsoluteY, 4},
	0x7A: {"???", Nop, Implied, 2},
	0x7B: {"???", Illegal, Implied, 7},
	0x7C: {"???", Nop, Implied, 4},
	0x7D: {"ADC", Adc, AbsoluteX, 4},
	0x7E: {"ROR", Ror, AbsoluteX, 7},
	0x7F: {"???", Illegal, Implied, 7},
	0x80: {"???", Nop, Implied, 2},
	0x81: {"STA", Sta, IndirectX, 6},
	0x82: {"???", Nop, Implied, 2},
	0x83: {"???", Illegal, Implied, 6},
	0x84: {"STY", Sty, ZeroPage, 3},
	0x85: {"STA", Sta, ZeroPage, 3},
	0x86: {"STX", Stx, ZeroPage, 3},
	0x87: {"???", Illegal, Implied, 3},
	0x88: {"DEY", Dey, Implied, 2},
	0x89: {"???", Nop, Implied, 2},
	0x8A: {"TXA", Txa, Implied, 2},
	0x8B: {"???", Illegal, Implied, 2},
	0x8C: {"STY", Sty, Absolute, 4},
	0x8D: {"STA", Sta, Absolute, 4},
	0x8E: {"STX", Stx, Absolute, 4},
	0x8F: {"???", Illegal, Implied, 4},
	0x90: {"BCC", Bcc, Relative, 2},
	0x91: {"STA", Sta, IndirectY, 6},
	0x92: {"???", Illegal, Implied, 2},
	0x93: {"???", Illegal, Implied, 6},
	0x94: {"STY", Sty, ZeroPageX, 4},
	0x95: {"STA", Sta, ZeroPageX, 4},
	0x96: {"STX", Stx, ZeroPageY, 4},
	0x97: {"???", Illegal, Implied, 4},
	0x98: {"TYA", Tya, Implied, 2},
	0x99: {"STA", Sta, AbsoluteY, 5},
	0x9A: {"TXS", Txs, Implied, 2},
	0x9B: {"???", Illegal, Implied, 5},
	0x9C: {"???", Nop, Implied, 5},
	0x9D: {"STA", Sta, AbsoluteX, 5},
	0x9E: {"???", Illegal, Implied, 5},
	0x9F: {"???", Illegal, Implied, 5},
	0xA0: {"LDY", Ldy, Immediate, 2},
	0xA1: {"LDA", Lda, IndirectX, 6},
	0xA2: {"LDX", Ldx, Immediate, 2},
	0xA3: {"???", Illegal, Implied, 6},
	0xA4: {"LDY", Ldy, ZeroPage, 3},
	0xA5: {"LDA", Lda, ZeroPage, 3},
	0xA6: {"LDX", Ldx, ZeroPage, 3},
	0xA7: {"???", Illegal, Implied, 3},
	0xA8: {"TAY", Tay, Implied, 2},
	0xA9: {"LDA", Lda, Immediate, 2},
	0xAA: {"TAX", Tax, Implied, 2},
	0xAB: {"???", Illegal, Implied, 2},
	0xAC: {"LDY", Ldy, Absolute, 4},
	0xAD: {"LDA", Lda, Absolute, 4},
	0xAE: {"LDX", Ldx, Absolute, 4},
	0xAF: {"???", Illegal, Implied, 4},
	0xB0: {"BCS", Bcs, Relative, 2},
	0xB1: {"LDA", Lda, IndirectY, 5},
	0xB2: {"???", Illegal, Implied, 2},
	0xB3: {"???", Illegal, Implied, 5},
	0xB4: {"LDY", Ldy, ZeroPageX, 4},
	0xB5: {"LDA", Lda, ZeroPageX, 4},
	0xB6: {"LDX", Ldx, ZeroPageY, 4},
	0xB7: {"???", Illegal, Implied, 4},
	0xB8: {"CLV", Clv, Implied, 2},
	0xB9: {"LDA", Lda, AbsoluteY, 4},
	0xBA: {"TSX", Tsx, Implied, 2},
	0xBB: {"???", Illegal, Implied, 4},
	0xBC: {"LDY", Ldy, AbsoluteX, 4},
	0xBD: {"LDA", Lda, AbsoluteX, 4},
	0xBE: {"LDX", Ldx, AbsoluteY, 4},
	0xBF: {"???", Illegal, Implied, 4},
	0xC0: {"CPY", Cpy, Immediate, 2},
	0xC1: {"CMP", Cmp, IndirectX, 6},
	0xC2: {"???", Nop, Implied, 2},
	0xC3: {"???", Illegal, Implied, 8},
	0xC4: {"CPY", Cpy, ZeroPage, 3},
	0xC5: {"CMP", Cmp, ZeroPage, 3},
	0xC6: {"DEC", Dec, ZeroPage, 5},
	0xC7: {"???", Illegal, Implied, 5},
	0xC8: {"INY", Iny, Implied, 2},
	0xC9: {"CMP", Cmp, Immediate, 2},
	0xCA: {"DEX", Dex, Implied, 2},
	0xCB: {"???", Illegal, Implied, 2},
	0xCC: {"CPY", Cpy, Absolute, 4},
	0xCD: {"CMP", Cmp, Absolute, 4},
	0xCE: {"DEC", Dec, Absolute, 6},
	0xCF: {"???", Illegal, Implied, 6},
	0xD0: {"BNE", Bne, Relative, 2},
	0xD1: {"CMP", Cmp, IndirectY, 5},
	0xD2: {"???", Illegal, Implied, 2},
	0xD3: {"???", Illegal, Implied, 8},
	0xD4: {"???", Nop, Implied, 4},
	0xD5: {"CMP", Cmp, ZeroPageX, 4},
	0xD6: {"DEC", Dec, ZeroPageX, 6},
	0xD7: {"???", Illegal, Implied, 6},
	0xD8: {"CLD", Cld, Implied, 2},
	0xD9: {"CMP", Cmp, AbsoluteY, 4},
	0xDA: {"???", Nop, Implied, 2},
	0xDB: {"???", Illegal, Implied, 7},
	0xDC: {"???", Nop, Implied, 4},
	0xDD: {"CMP", Cmp, AbsoluteX, 4},
	0xDE: {"DEC", Dec, AbsoluteX, 7},
	0xDF: {"???", Illegal, Implied, 7},
	0xE0: {"CPX", Cpx, Immediate, 2},
	0xE1: {"SBC", Sbc, IndirectX, 6},
	0xE2: {"???", Nop, Implied, 2},
	0xE3: {"???", Illegal, Implied, 8},
	0xE4: {"CPX", Cpx, ZeroPage, 3},
	0xE5: {"SBC", Sbc, ZeroPage, 3},
	0xE6: {"INC", Inc, ZeroPage, 5},
	0xE7: {"???", Illegal, Implied, 5},
	0xE8: {"INX", Inx, Implied, 2},
	0xE9: {"SBC", Sbc, Immediate, 2},
	0xEA: {"NOP", Nop, Implied, 2},
	0xEB: {"???", Illegal, Implied, 2},
	0xEC: {"CPX", Cpx, Absolute, 4},
	0xED: {"SBC", Sbc, Absolute, 4},
	0xEE: {"INC", Inc, Absolute, 6},
	0xEF: {"???", Illegal, Implied, 6},
	0xF0: {"BEQ", Beq, Relative, 2},
	0xF1: {"SBC", Sbc, IndirectY, 5},
	0xF2: {"???", Illegal, Implied, 2},
	0xF3: {"???", Illegal, Implied, 8},
	0xF4: {"???", Nop, Implied, 4},
	0xF5: {"SBC", Sbc, ZeroPageX, 4},
	0xF6: {"INC", Inc, ZeroPageX, 6},
	0xF7: {"???", Illegal, Implied, 6},
	0xF8: {"SED", Sed, Implied, 2},
	0xF9: {"SBC", Sbc, AbsoluteY, 4},
	0xFA: {"???", Nop, Implied, 2},
	0xFB: {"???", Illegal, Implied, 7},
	0xFC: {"???", Nop, Implied, 4},
	0xFD: {"SBC", Sbc, AbsoluteX, 4},
	0xFE: {"INC", Inc, AbsoluteX, 7},
	0xFF: {"???", Illegal, Implied, 7},
}
