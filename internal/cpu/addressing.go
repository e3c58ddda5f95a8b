package cpu

// address resolves the operand location for the addressing mode and moves
// the program counter past the operand bytes. It returns true if the
// resolved address crossed a page, which may cost an extra cycle.
func (c *CPU) address(mode AddressingMode) bool {
	switch mode {
	case Implied:
		c.fetched = c.A
		return false

	case Immediate:
		c.addrAbs = c.PC
		c.PC++
		return false

	case ZeroPage:
		c.addrAbs = uint16(c.readPC())
		return false

	case ZeroPageX:
		c.addrAbs = uint16(c.readPC() + c.X)
		return false

	case ZeroPageY:
		c.addrAbs = uint16(c.readPC() + c.Y)
		return false

	case Relative:
		c.addrRel = uint16(c.readPC())
		if c.addrRel&0x80 != 0 {
			c.addrRel |= 0xFF00
		}
		return false

	case Absolute:
		c.addrAbs = c.readPCWord()
		return false

	case AbsoluteX:
		base := c.readPCWord()
		c.addrAbs = base + uint16(c.X)
		return pageCrossed(base, c.addrAbs)

	case AbsoluteY:
		base := c.readPCWord()
		c.addrAbs = base + uint16(c.Y)
		return pageCrossed(base, c.addrAbs)

	case Indirect:
		ptr := c.readPCWord()
		lo := uint16(c.read(ptr))
		// the high byte is fetched without carrying into the pointer page
		hi := uint16(c.read(ptr&0xFF00 | uint16(uint8(ptr)+1)))
		c.addrAbs = hi<<8 | lo
		return false

	case IndirectX:
		ptr := c.readPC() + c.X
		c.addrAbs = c.readZeroPageWord(ptr)
		return false

	case IndirectY:
		base := c.readZeroPageWord(c.readPC())
		c.addrAbs = base + uint16(c.Y)
		return pageCrossed(base, c.addrAbs)

	default:
		return false
	}
}

// readPC reads the byte at the program counter and advances it.
func (c *CPU) readPC() uint8 {
	b := c.read(c.PC)
	c.PC++
	return b
}

// readPCWord reads the little endian word at the program counter and advances it.
func (c *CPU) readPCWord() uint16 {
	lo := uint16(c.readPC())
	hi := uint16(c.readPC())
	return hi<<8 | lo
}

// readZeroPageWord reads a little endian pointer from the zero page, the
// high byte wraps around within the zero page.
func (c *CPU) readZeroPageWord(ptr uint8) uint16 {
	lo := uint16(c.read(uint16(ptr)))
	hi := uint16(c.read(uint16(ptr + 1)))
	return hi<<8 | lo
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// fetch loads the operand of the current instruction. For implied
// instructions the operand is the accumulator, captured by address.
func (c *CPU) fetch() uint8 {
	if Instructions[c.opcode].Mode != Implied {
		c.fetched = c.read(c.addrAbs)
	}
	return c.fetched
}
