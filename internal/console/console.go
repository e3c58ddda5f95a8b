// Package console wires the CPU, the bus, the PPU and the cartridge
// together and drives the master clock.
package console

import (
	"context"
	"fmt"

	"github.com/retroenv/nesgoemu/internal/bus"
	"github.com/retroenv/nesgoemu/internal/cartridge"
	"github.com/retroenv/nesgoemu/internal/cpu"
	"github.com/retroenv/nesgoemu/internal/ppu"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// instructions between two checks for context cancellation
const contextCheckInterval = 1024

// Console is the composition root of the emulated system.
type Console struct {
	logger *log.Logger

	cpu  *cpu.CPU
	bus  *bus.Bus
	ppu  *ppu.PPU
	cart *cartridge.Cartridge

	breakpoints set.Set[uint16]
	nmiPending  bool
}

// New returns a console with the cartridge inserted. The cartridge can be
// nil to run code from RAM.
func New(logger *log.Logger, cart *cartridge.Cartridge) *Console {
	c := &Console{
		logger:      logger,
		cpu:         cpu.New(),
		ppu:         ppu.New(),
		cart:        cart,
		breakpoints: set.New[uint16](),
	}

	c.bus = bus.New(c.cpu, c.ppu)
	if cart != nil {
		c.bus.InsertCartridge(cart)
		c.ppu.ConnectCartridge(cart)
	}
	return c
}

// CPU returns the processor.
func (c *Console) CPU() *cpu.CPU {
	return c.cpu
}

// Bus returns the CPU bus.
func (c *Console) Bus() *bus.Bus {
	return c.bus
}

// PPU returns the picture processing unit.
func (c *Console) PPU() *ppu.PPU {
	return c.ppu
}

// Reset resets all components, the CPU starts at the reset vector.
func (c *Console) Reset() {
	if c.cart != nil {
		c.cart.Reset()
	}
	c.ppu.Reset()
	c.bus.Reset()
	c.nmiPending = false

	c.logger.Debug("Console reset", log.Hex("pc", c.cpu.PC))
}

// Clock advances the system by one master clock tick. A non maskable
// interrupt raised by the PPU is delivered once the CPU finished the
// current instruction.
func (c *Console) Clock() {
	c.bus.Clock()

	if c.ppu.TakeNMI() {
		c.nmiPending = true
	}
	if c.nmiPending && c.cpu.Complete() {
		c.nmiPending = false
		c.cpu.NMI()
	}
}

// StepInstruction clocks the system until the next CPU instruction has
// completed and returns the number of master clock ticks used.
func (c *Console) StepInstruction() int {
	return c.finishInstruction() + c.executeInstruction()
}

// StepFrame clocks the system until the PPU completed the current frame.
func (c *Console) StepFrame() {
	frame := c.ppu.Frame()
	for c.ppu.Frame() == frame {
		c.Clock()
	}
}

// AddBreakpoint stops Run before the instruction at the address executes.
func (c *Console) AddBreakpoint(address uint16) {
	c.breakpoints.Add(address)
}

// StopReason describes why Run returned.
type StopReason int

// Stop reasons of Run.
const (
	CycleLimit StopReason = iota
	Breakpoint
)

func (r StopReason) String() string {
	if r == Breakpoint {
		return "breakpoint"
	}
	return "cycle limit"
}

// RunOptions controls Run.
type RunOptions struct {
	MaxCycles uint64 // CPU cycle limit, 0 runs until a breakpoint is hit

	// Trace is called before every instruction with its disassembly and
	// the register state.
	Trace func(line cpu.Line, state cpu.State)
}

// RunResult summarizes a finished run.
type RunResult struct {
	Reason       StopReason
	PC           uint16
	Instructions uint64
	Cycles       uint64
}

// Run executes instructions until the cycle limit or a breakpoint is
// reached or the context is cancelled. A breakpoint at the address of the
// first instruction does not stop the run, which allows resuming.
func (c *Console) Run(ctx context.Context, opts RunOptions) (RunResult, error) {
	var result RunResult
	startCycles := c.cpu.Cycles()

	for {
		if result.Instructions%contextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				result.PC = c.cpu.PC
				result.Cycles = c.cpu.Cycles() - startCycles
				return result, fmt.Errorf("running after %d instructions: %w", result.Instructions, err)
			}
		}

		c.finishInstruction()
		result.PC = c.cpu.PC
		result.Cycles = c.cpu.Cycles() - startCycles

		if opts.MaxCycles > 0 && result.Cycles >= opts.MaxCycles {
			result.Reason = CycleLimit
			return result, nil
		}
		if result.Instructions > 0 && c.breakpoints.Contains(result.PC) {
			result.Reason = Breakpoint
			c.logger.Debug("Breakpoint hit",
				log.Hex("pc", result.PC),
				log.String("registers", c.cpu.State().String()))
			return result, nil
		}

		if opts.Trace != nil {
			opts.Trace(cpu.Decode(c.bus.Peek, result.PC), c.cpu.State())
		}

		c.executeInstruction()
		result.Instructions++
	}
}

// finishInstruction clocks until the CPU consumed all cycles of the
// current instruction or interrupt sequence.
func (c *Console) finishInstruction() int {
	ticks := 0
	for !c.cpu.Complete() {
		c.Clock()
		ticks++
	}
	return ticks
}

// executeInstruction clocks until the CPU fetched and completed the next instruction.
func (c *Console) executeInstruction() int {
	ticks := 0
	start := c.cpu.Cycles()
	for c.cpu.Cycles() == start {
		c.Clock()
		ticks++
	}
	return ticks + c.finishInstruction()
}
