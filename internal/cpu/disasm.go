package cpu

import (
	"fmt"
	"strings"

	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

// Line is a single disassembled instruction.
type Line struct {
	Address uint16
	Opcode  uint8
	Bytes   []byte // opcode followed by the operand bytes
	Text    string
	Comment string
}

func (l Line) String() string {
	return fmt.Sprintf("$%04X: %s", l.Address, l.Text)
}

// Disassemble decodes the instructions in the address range [start, end]
// using the read function to access memory. Reads have to be free of side
// effects as instructions are decoded without executing them.
func Disassemble(read func(address uint16) uint8, start, end uint16) []Line {
	var lines []Line
	for address := uint32(start); address <= uint32(end); {
		line := Decode(read, uint16(address))
		lines = append(lines, line)
		address += uint32(len(line.Bytes))
	}
	return lines
}

// DisassembleBytes decodes the code as if it was located at origin. A
// trailing instruction with missing operand bytes is emitted as data.
func DisassembleBytes(code []byte, origin uint16) []Line {
	read := func(address uint16) uint8 {
		return code[address-origin]
	}

	var lines []Line
	for offset := 0; offset < len(code); {
		ins := Instructions[code[offset]]
		size := 1 + ins.Mode.OperandBytes()
		address := origin + uint16(offset)

		if offset+size > len(code) {
			lines = append(lines, dataLine(address, code[offset:]))
			break
		}

		lines = append(lines, Decode(read, address))
		offset += size
	}
	return lines
}

// Decode decodes the instruction at the given address.
func Decode(read func(address uint16) uint8, address uint16) Line {
	opcode := read(address)
	ins := Instructions[opcode]

	line := Line{
		Address: address,
		Opcode:  opcode,
		Bytes:   make([]byte, 1, m6502.MaxOpcodeSize),
	}
	line.Bytes[0] = opcode
	for i := range ins.Mode.OperandBytes() {
		line.Bytes = append(line.Bytes, read(address+1+uint16(i)))
	}

	line.Text = formatInstruction(ins, address, line.Bytes[1:])
	if !ins.Official() {
		line.Comment = unofficialComment(opcode)
	}
	return line
}

func formatInstruction(ins Instruction, address uint16, operand []byte) string {
	switch ins.Mode {
	case Implied:
		return ins.Name
	case Immediate:
		return fmt.Sprintf("%s #$%02X", ins.Name, operand[0])
	case Relative:
		target := address + 2 + uint16(int8(operand[0]))
		return fmt.Sprintf("%s $%04X", ins.Name, target)
	}

	value := uint16(operand[0])
	if len(operand) > 1 {
		value |= uint16(operand[1]) << 8
	}
	return fmt.Sprintf("%s $%04X", ins.Name, value)
}

// unofficialComment names the undocumented instruction that the opcode
// triggers on real hardware.
func unofficialComment(opcode uint8) string {
	op := m6502.Opcodes[opcode]
	if op.Instruction == nil {
		return "undefined opcode"
	}
	return fmt.Sprintf("unofficial %s instruction", op.Instruction.Name)
}

func dataLine(address uint16, data []byte) Line {
	values := make([]string, len(data))
	for i, b := range data {
		values[i] = fmt.Sprintf("$%02X", b)
	}
	return Line{
		Address: address,
		Opcode:  data[0],
		Bytes:   data,
		Text:    ".byte " + strings.Join(values, ", "),
	}
}
