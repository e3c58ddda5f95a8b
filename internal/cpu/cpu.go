// Package cpu implements a cycle counting 6502 processor core.
package cpu

import (
	"fmt"

	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
)

const (
	stackBase = 0x0100

	initialStackPointer = 0xFD
	resetCycles         = 8
	irqCycles           = 7
	nmiCycles           = 8
)

// Interrupt vector addresses.
const (
	NMIVector   = uint16(m6502.NMIAddress)
	ResetVector = uint16(m6502.ResetAddress)
	IRQVector   = uint16(m6502.IrqAddress)
)

// Bus is the memory the processor reads from and writes to.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// CPU is a 6502 processor. It executes one instruction per sequence of
// Clock calls, the instruction takes effect on the first clock and the
// remaining calls only consume its cycles.
type CPU struct {
	A      uint8  // accumulator
	X      uint8  // index register X
	Y      uint8  // index register Y
	SP     uint8  // stack pointer, offset into page 1
	PC     uint16 // program counter
	Status Flags

	bus Bus

	fetched uint8
	addrAbs uint16
	addrRel uint16
	cycles  uint8 // remaining cycles of the current instruction
	clock   uint64
}

// New returns a processor that is not yet connected to a bus.
func New() *CPU {
	return &CPU{
		SP:     initialStackPointer,
		Status: Unused,
	}
}

// ConnectBus attaches the processor to a bus.
func (c *CPU) ConnectBus(bus Bus) {
	c.bus = bus
}

// Clock advances the processor by one cycle.
func (c *CPU) Clock() {
	if c.cycles == 0 {
		opcode := c.read(c.PC)
		c.PC++

		ins := &Instructions[opcode]
		c.cycles = ins.Cycles

		pageCrossed := c.address(ins.Mode)
		mayTakeExtraCycle := c.execute(ins.Operation)
		if pageCrossed && mayTakeExtraCycle {
			c.cycles++
		}
	}

	c.clock++
	c.cycles--
}

// Complete returns whether the current instruction has used up all its cycles.
func (c *CPU) Complete() bool {
	return c.cycles == 0
}

// Cycles returns the number of clocks the processor has executed.
func (c *CPU) Cycles() uint64 {
	return c.clock
}

// Reset puts the processor into the power up state and loads the
// program counter from the reset vector.
func (c *CPU) Reset() {
	c.A = 0
	c.X = 0
	c.Y = 0
	c.SP = initialStackPointer
	c.Status = Unused
	c.PC = c.readWord(ResetVector)

	c.addrAbs = 0
	c.addrRel = 0
	c.fetched = 0
	c.cycles = resetCycles
}

// IRQ requests a maskable interrupt, it is ignored while interrupts are disabled.
func (c *CPU) IRQ() {
	if c.Status.Has(InterruptDisable) {
		return
	}
	c.interrupt(IRQVector)
	c.cycles = irqCycles
}

// NMI requests a non maskable interrupt.
func (c *CPU) NMI() {
	c.interrupt(NMIVector)
	c.cycles = nmiCycles
}

// interrupt pushes the return state of a hardware interrupt and jumps to
// the handler at the given vector.
func (c *CPU) interrupt(vector uint16) {
	c.pushWord(c.PC)

	c.Status.Set(Break, false)
	c.Status.Set(Unused, true)
	c.push(uint8(c.Status))
	c.Status.Set(InterruptDisable, true)

	c.PC = c.readWord(vector)
}

// State is a snapshot of the visible processor registers.
type State struct {
	A, X, Y, SP uint8
	PC          uint16
	Status      Flags
	Cycles      uint64
}

// State returns a snapshot of the registers.
func (c *CPU) State() State {
	return State{
		A:      c.A,
		X:      c.X,
		Y:      c.Y,
		SP:     c.SP,
		PC:     c.PC,
		Status: c.Status,
		Cycles: c.clock,
	}
}

func (s State) String() string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		s.A, s.X, s.Y, uint8(s.Status), s.SP, s.Cycles)
}

func (c *CPU) read(address uint16) uint8 {
	if c.bus == nil {
		panic("cpu: read without a connected bus")
	}
	return c.bus.Read(address)
}

func (c *CPU) write(address uint16, data uint8) {
	if c.bus == nil {
		panic("cpu: write without a connected bus")
	}
	c.bus.Write(address, data)
}

// readWord reads a little endian word.
func (c *CPU) readWord(address uint16) uint16 {
	lo := uint16(c.read(address))
	hi := uint16(c.read(address + 1))
	return hi<<8 | lo
}

func (c *CPU) push(data uint8) {
	c.write(stackBase|uint16(c.SP), data)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.read(stackBase | uint16(c.SP))
}

func (c *CPU) pushWord(data uint16) {
	c.push(uint8(data >> 8))
	c.push(uint8(data))
}

func (c *CPU) popWord() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// setZN sets the zero and negative flags for the given value.
func (c *CPU) setZN(value uint8) {
	c.Status.Set(Zero, value == 0)
	c.Status.Set(Negative, value&0x80 != 0)
}
