// Package bus implements the CPU address space of the console and the
// master clock that drives the CPU and the PPU.
package bus

import (
	"github.com/retroenv/nesgoemu/internal/cartridge"
	"github.com/retroenv/nesgoemu/internal/cpu"
)

const (
	ramSize = 0x0800

	ramEnd      = 0x1FFF
	ppuEnd      = 0x3FFF
	ramMask     = ramSize - 1
	ppuMask     = 0x0007
	cpuDivision = 3
)

// PictureUnit is the register window and clock of the PPU.
type PictureUnit interface {
	CPURead(address uint16) uint8
	CPUWrite(address uint16, data uint8)
	Clock()
}

// Bus dispatches CPU memory accesses and divides the master clock.
type Bus struct {
	cpu  *cpu.CPU
	ppu  PictureUnit
	cart *cartridge.Cartridge

	ram          [ramSize]uint8
	clockCounter uint64
}

var _ cpu.Bus = (*Bus)(nil)

// New returns a bus that the CPU is connected to.
func New(c *cpu.CPU, ppu PictureUnit) *Bus {
	b := &Bus{
		cpu: c,
		ppu: ppu,
	}
	c.ConnectBus(b)
	return b
}

// InsertCartridge connects the cartridge, nil removes it.
func (b *Bus) InsertCartridge(cart *cartridge.Cartridge) {
	b.cart = cart
}

// Read returns the byte at the address. The cartridge has priority over
// all other devices, unmapped addresses read as 0.
func (b *Bus) Read(address uint16) uint8 {
	if b.cart != nil {
		if data, ok := b.cart.CPURead(address); ok {
			return data
		}
	}

	switch {
	case address <= ramEnd:
		return b.ram[address&ramMask]
	case address <= ppuEnd:
		return b.ppu.CPURead(address & ppuMask)
	default:
		return 0
	}
}

// Write stores the byte at the address. The cartridge has priority over
// all other devices, writes to unmapped addresses are ignored.
func (b *Bus) Write(address uint16, data uint8) {
	if b.cart != nil && b.cart.CPUWrite(address, data) {
		return
	}

	switch {
	case address <= ramEnd:
		b.ram[address&ramMask] = data
	case address <= ppuEnd:
		b.ppu.CPUWrite(address&ppuMask, data)
	}
}

// Reset resets the CPU and the clock divider.
func (b *Bus) Reset() {
	b.cpu.Reset()
	b.clockCounter = 0
}

// Clock advances the system by one PPU dot. The CPU runs at a third of
// the PPU rate.
func (b *Bus) Clock() {
	b.ppu.Clock()
	if b.clockCounter%cpuDivision == 0 {
		b.cpu.Clock()
	}
	b.clockCounter++
}

// ClockCount returns the number of master clock ticks since the last reset.
func (b *Bus) ClockCount() uint64 {
	return b.clockCounter
}

// Peek reads an address without side effects on the PPU registers, used
// for disassembly and tracing.
func (b *Bus) Peek(address uint16) uint8 {
	if address > ramEnd && address <= ppuEnd {
		return 0
	}
	return b.Read(address)
}
