// Package ppu implements the picture processing unit as seen by the CPU:
// the 8 register window, the PPU memory map and the frame timing.
// Pixel rendering is not implemented.
package ppu

import "github.com/retroenv/nesgoemu/internal/cartridge"

// Register offsets within the CPU visible register window.
const (
	Control = iota
	Mask
	Status
	OAMAddress
	OAMData
	Scroll
	Address
	Data
)

const (
	cyclesPerScanline = 341
	lastScanline      = 260
	vblankScanline    = 241
	preRenderScanline = -1

	statusVBlank     = 0x80
	controlIncrement = 0x04
	controlNMI       = 0x80

	paletteStart = 0x3F00
)

// PPU is the picture processing unit.
type PPU struct {
	cart *cartridge.Cartridge

	nameTable    [2][1024]uint8
	paletteTable [32]uint8
	registers    [8]uint8

	addressLatch bool
	vramAddress  uint16
	dataBuffer   uint8

	cycle    int
	scanline int
	frame    uint64
	nmi      bool
}

// New returns a PPU in its power up state.
func New() *PPU {
	p := &PPU{}
	p.Reset()
	return p
}

// ConnectCartridge attaches the cartridge that provides the pattern tables.
func (p *PPU) ConnectCartridge(cart *cartridge.Cartridge) {
	p.cart = cart
}

// Reset resets the registers and the frame timing.
func (p *PPU) Reset() {
	p.registers = [8]uint8{}
	p.addressLatch = false
	p.vramAddress = 0
	p.dataBuffer = 0
	p.cycle = 0
	p.scanline = preRenderScanline
	p.nmi = false
}

// CPURead reads a register, the address is the offset within the register window.
func (p *PPU) CPURead(address uint16) uint8 {
	switch address & 0x0007 {
	case Status:
		data := p.registers[Status]&0xE0 | p.dataBuffer&0x1F
		p.registers[Status] &^= statusVBlank
		p.addressLatch = false
		return data

	case Data:
		data := p.dataBuffer
		p.dataBuffer = p.PPURead(p.vramAddress)
		// palette reads are not delayed by the read buffer
		if p.vramAddress >= paletteStart {
			data = p.dataBuffer
		}
		p.incrementAddress()
		return data

	default:
		return p.registers[address&0x0007]
	}
}

// CPUWrite writes a register, the address is the offset within the register window.
func (p *PPU) CPUWrite(address uint16, data uint8) {
	register := address & 0x0007
	if register != Status {
		p.registers[register] = data
	}

	switch register {
	case Scroll:
		p.addressLatch = !p.addressLatch

	case Address:
		if !p.addressLatch {
			p.vramAddress = p.vramAddress&0x00FF | uint16(data&0x3F)<<8
		} else {
			p.vramAddress = p.vramAddress&0xFF00 | uint16(data)
		}
		p.addressLatch = !p.addressLatch

	case Data:
		p.PPUWrite(p.vramAddress, data)
		p.incrementAddress()
	}
}

// PPURead reads from the PPU address space, the cartridge gets the first
// chance to handle the address.
func (p *PPU) PPURead(address uint16) uint8 {
	address &= 0x3FFF
	if p.cart != nil {
		if data, ok := p.cart.PPURead(address); ok {
			return data
		}
	}

	switch {
	case address <= 0x1FFF:
		return 0
	case address < paletteStart:
		table, offset := p.nameTableIndex(address)
		return p.nameTable[table][offset]
	default:
		return p.paletteTable[paletteIndex(address)]
	}
}

// PPUWrite writes to the PPU address space, the cartridge gets the first
// chance to handle the address.
func (p *PPU) PPUWrite(address uint16, data uint8) {
	address &= 0x3FFF
	if p.cart != nil && p.cart.PPUWrite(address, data) {
		return
	}

	switch {
	case address <= 0x1FFF:
	case address < paletteStart:
		table, offset := p.nameTableIndex(address)
		p.nameTable[table][offset] = data
	default:
		p.paletteTable[paletteIndex(address)] = data
	}
}

// Clock advances the PPU by one dot.
func (p *PPU) Clock() {
	if p.cycle == 1 {
		switch p.scanline {
		case preRenderScanline:
			p.registers[Status] &^= statusVBlank
		case vblankScanline:
			p.registers[Status] |= statusVBlank
			if p.registers[Control]&controlNMI != 0 {
				p.nmi = true
			}
		}
	}

	p.cycle++
	if p.cycle < cyclesPerScanline {
		return
	}
	p.cycle = 0
	p.scanline++
	if p.scanline > lastScanline {
		p.scanline = preRenderScanline
		p.frame++
	}
}

// TakeNMI returns whether the PPU raised a non maskable interrupt since
// the last call and acknowledges it.
func (p *PPU) TakeNMI() bool {
	nmi := p.nmi
	p.nmi = false
	return nmi
}

// Frame returns the number of completed frames.
func (p *PPU) Frame() uint64 {
	return p.frame
}

// Position returns the current scanline and dot.
func (p *PPU) Position() (int, int) {
	return p.scanline, p.cycle
}

func (p *PPU) incrementAddress() {
	if p.registers[Control]&controlIncrement != 0 {
		p.vramAddress += 32
	} else {
		p.vramAddress++
	}
	p.vramAddress &= 0x3FFF
}

// nameTableIndex maps a name table address to one of the two physical
// tables based on the cartridge mirroring.
func (p *PPU) nameTableIndex(address uint16) (int, uint16) {
	offset := address & 0x03FF
	mirror := cartridge.Horizontal
	if p.cart != nil {
		mirror = p.cart.Mirror
	}

	if mirror == cartridge.Vertical {
		return int(address>>10) & 1, offset
	}
	return int(address>>11) & 1, offset
}

// paletteIndex returns the palette entry, the background color entries of
// the sprite palettes mirror the ones of the background palettes.
func paletteIndex(address uint16) uint16 {
	index := address & 0x001F
	if index&0x13 == 0x10 {
		index &^= 0x10
	}
	return index
}
