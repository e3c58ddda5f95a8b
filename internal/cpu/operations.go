package cpu

// execute runs the operation of the current instruction. It returns true
// if the operation takes an extra cycle when its address crossed a page.
//
//nolint:funlen,cyclop,gocyclo // one case per operation
func (c *CPU) execute(op Operation) bool {
	switch op {
	case Adc:
		c.addWithCarry(c.fetch())
		return true
	case Sbc:
		c.addWithCarry(^c.fetch())
		return true

	case And:
		c.A &= c.fetch()
		c.setZN(c.A)
		return true
	case Eor:
		c.A ^= c.fetch()
		c.setZN(c.A)
		return true
	case Ora:
		c.A |= c.fetch()
		c.setZN(c.A)
		return true

	case Asl:
		value := c.fetch()
		c.Status.Set(Carry, value&0x80 != 0)
		c.writeBack(value << 1)
	case Lsr:
		value := c.fetch()
		c.Status.Set(Carry, value&0x01 != 0)
		c.writeBack(value >> 1)
	case Rol:
		value := c.fetch()
		carry := uint8(c.Status & Carry)
		c.Status.Set(Carry, value&0x80 != 0)
		c.writeBack(value<<1 | carry)
	case Ror:
		value := c.fetch()
		carry := uint8(c.Status&Carry) << 7
		c.Status.Set(Carry, value&0x01 != 0)
		c.writeBack(value>>1 | carry)

	case Bcc:
		c.branch(!c.Status.Has(Carry))
	case Bcs:
		c.branch(c.Status.Has(Carry))
	case Beq:
		c.branch(c.Status.Has(Zero))
	case Bne:
		c.branch(!c.Status.Has(Zero))
	case Bmi:
		c.branch(c.Status.Has(Negative))
	case Bpl:
		c.branch(!c.Status.Has(Negative))
	case Bvc:
		c.branch(!c.Status.Has(Overflow))
	case Bvs:
		c.branch(c.Status.Has(Overflow))

	case Bit:
		value := c.fetch()
		c.Status.Set(Zero, c.A&value == 0)
		c.Status.Set(Negative, value&0x80 != 0)
		c.Status.Set(Overflow, value&0x40 != 0)

	case Brk:
		c.PC++
		c.pushWord(c.PC)
		c.push(uint8(c.Status | Break | Unused))
		c.Status.Set(InterruptDisable, true)
		c.Status.Set(Break, false)
		c.PC = c.readWord(IRQVector)

	case Clc:
		c.Status.Set(Carry, false)
	case Cld:
		c.Status.Set(Decimal, false)
	case Cli:
		c.Status.Set(InterruptDisable, false)
	case Clv:
		c.Status.Set(Overflow, false)
	case Sec:
		c.Status.Set(Carry, true)
	case Sed:
		c.Status.Set(Decimal, true)
	case Sei:
		c.Status.Set(InterruptDisable, true)

	case Cmp:
		c.compare(c.A)
		return true
	case Cpx:
		c.compare(c.X)
	case Cpy:
		c.compare(c.Y)

	case Dec:
		value := c.fetch() - 1
		c.write(c.addrAbs, value)
		c.setZN(value)
	case Inc:
		value := c.fetch() + 1
		c.write(c.addrAbs, value)
		c.setZN(value)
	case Dex:
		c.X--
		c.setZN(c.X)
	case Dey:
		c.Y--
		c.setZN(c.Y)
	case Inx:
		c.X++
		c.setZN(c.X)
	case Iny:
		c.Y++
		c.setZN(c.Y)

	case Jmp:
		c.PC = c.addrAbs
	case Jsr:
		c.pushWord(c.PC - 1)
		c.PC = c.addrAbs
	case Rts:
		c.PC = c.popWord() + 1
	case Rti:
		c.Status = Flags(c.pop())
		c.Status.Set(Break, false)
		c.Status.Set(Unused, false)
		c.PC = c.popWord()

	case Lda:
		c.A = c.fetch()
		c.setZN(c.A)
		return true
	case Ldx:
		c.X = c.fetch()
		c.setZN(c.X)
		return true
	case Ldy:
		c.Y = c.fetch()
		c.setZN(c.Y)
		return true

	case Sta:
		c.write(c.addrAbs, c.A)
	case Stx:
		c.write(c.addrAbs, c.X)
	case Sty:
		c.write(c.addrAbs, c.Y)

	case Pha:
		c.push(c.A)
	case Php:
		c.push(uint8(c.Status | Break | Unused))
		c.Status.Set(Break, false)
	case Pla:
		c.A = c.pop()
		c.setZN(c.A)
	case Plp:
		c.Status = Flags(c.pop())
		c.Status.Set(Break, false)
		c.Status.Set(Unused, true)

	case Tax:
		c.X = c.A
		c.setZN(c.X)
	case Tay:
		c.Y = c.A
		c.setZN(c.Y)
	case Tsx:
		c.X = c.SP
		c.setZN(c.X)
	case Txa:
		c.A = c.X
		c.setZN(c.A)
	case Txs:
		c.SP = c.X
	case Tya:
		c.A = c.Y
		c.setZN(c.A)

	case Nop, Illegal:
	}

	return false
}

// addWithCarry adds the operand and the carry to the accumulator. The sum
// is computed in 16 bits so that the carry out is bit 8 of the result.
func (c *CPU) addWithCarry(operand uint8) {
	a := uint16(c.A)
	m := uint16(operand)
	result := a + m + uint16(c.Status&Carry)

	c.Status.Set(Carry, result > 0xFF)
	c.Status.Set(Zero, result&0xFF == 0)
	c.Status.Set(Overflow, (a^result)&(m^result)&0x80 != 0)
	c.Status.Set(Negative, result&0x80 != 0)
	c.A = uint8(result)
}

func (c *CPU) compare(register uint8) {
	value := c.fetch()
	c.Status.Set(Carry, register >= value)
	c.setZN(register - value)
}

// branch takes the branch if the condition holds. A taken branch costs one
// cycle and a second one if the target is in another page.
func (c *CPU) branch(condition bool) {
	if !condition {
		return
	}

	c.cycles++
	c.addrAbs = c.PC + c.addrRel
	if pageCrossed(c.addrAbs, c.PC) {
		c.cycles++
	}
	c.PC = c.addrAbs
}

// writeBack stores the result of a shift or rotate in the accumulator for
// the implied form of the instruction, otherwise in memory.
func (c *CPU) writeBack(value uint8) {
	c.setZN(value)
	if Instructions[c.opcode].Mode == Implied {
		c.A = value
		return
	}
	c.write(c.addrAbs, value)
}
