// Package cartridge implements the iNES image loader and the cartridge
// memory as seen through its mapper.
package cartridge

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/nesgoemu/internal/mapper"
	nescart "github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

const (
	headerSize  = 16
	trainerSize = 512

	// PRGBankSize is the size of a program ROM bank.
	PRGBankSize = 16384
	// CHRBankSize is the size of a character ROM bank.
	CHRBankSize = 8192
)

var (
	// ErrInvalidHeader is returned for an image that does not start with a valid iNES header.
	ErrInvalidHeader = errors.New("invalid iNES header")
	// ErrTruncated is returned when the image contains fewer bytes than its header declares.
	ErrTruncated = errors.New("truncated image")
)

var magic = [4]byte{'N', 'E', 'S', 0x1A}

// MirrorMode defines the name table mirroring of the cartridge.
type MirrorMode uint8

// Mirroring modes selected by bit 0 of the first flag byte.
const (
	Horizontal MirrorMode = iota
	Vertical
)

func (m MirrorMode) String() string {
	if m == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Header is the 16 byte iNES header.
type Header struct {
	Name       [4]byte
	PRGBanks   byte
	CHRBanks   byte
	Mapper1    byte
	Mapper2    byte
	PRGRAMSize byte
	TVSystem1  byte
	TVSystem2  byte
	Unused     [5]byte
}

// MapperID combines the mapper nibbles of both flag bytes.
func (h Header) MapperID() byte {
	return (h.Mapper2>>4)<<4 | h.Mapper1>>4
}

// HasTrainer returns whether a 512 byte trainer follows the header.
func (h Header) HasTrainer() bool {
	return h.Mapper1&0x04 != 0
}

// Cartridge contains the program and character memory of a loaded image.
type Cartridge struct {
	Header  Header
	PRG     []byte // program ROM
	CHR     []byte // character ROM, or character RAM if CHRBanks is 0
	Trainer []byte

	MapperID byte
	PRGBanks byte
	CHRBanks byte
	Mirror   MirrorMode
	Battery  bool

	mapper mapper.Mapper
}

// Load reads an iNES image. The header is validated here, the memory
// blocks are extracted by the retrogolib NES cartridge parser.
func Load(reader io.Reader) (*Cartridge, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	var header Header
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrTruncated, err)
	}
	if header.Name != magic {
		return nil, fmt.Errorf("%w: unexpected name tag %q", ErrInvalidHeader, header.Name[:])
	}
	if header.PRGBanks == 0 {
		return nil, fmt.Errorf("%w: no program banks", ErrInvalidHeader)
	}

	m, err := mapper.New(header.MapperID(), header.PRGBanks, header.CHRBanks)
	if err != nil {
		return nil, fmt.Errorf("creating mapper: %w", err)
	}

	cart := &Cartridge{
		Header:   header,
		MapperID: header.MapperID(),
		PRGBanks: header.PRGBanks,
		CHRBanks: header.CHRBanks,
		Mirror:   MirrorMode(header.Mapper1 & 0x01),
		Battery:  header.Mapper1&0x02 != 0,
		mapper:   m,
	}

	if err := checkBlocks(header, len(data)); err != nil {
		return nil, err
	}

	parsed, err := nescart.LoadFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing image: %w", err)
	}

	cart.PRG = parsed.PRG
	if header.HasTrainer() {
		cart.Trainer = parsed.Trainer
	}
	if header.CHRBanks == 0 {
		cart.CHR = make([]byte, CHRBankSize)
	} else {
		cart.CHR = parsed.CHR
	}
	return cart, nil
}

type block struct {
	name string
	size int
}

// checkBlocks verifies that the image contains every block its header declares.
func checkBlocks(header Header, size int) error {
	var blocks []block
	if header.HasTrainer() {
		blocks = append(blocks, block{"trainer", trainerSize})
	}
	blocks = append(blocks,
		block{"program ROM", int(header.PRGBanks) * PRGBankSize},
		block{"character ROM", int(header.CHRBanks) * CHRBankSize},
	)

	offset := headerSize
	for _, b := range blocks {
		available := max(size-offset, 0)
		if available < b.size {
			return fmt.Errorf("%w: reading %s: got %d of %d bytes", ErrTruncated, b.name, available, b.size)
		}
		offset += b.size
	}
	return nil
}

// Mapper returns the address translation strategy of the cartridge.
func (c *Cartridge) Mapper() mapper.Mapper {
	return c.mapper
}

// Reset resets the mapper state.
func (c *Cartridge) Reset() {
	c.mapper.Reset()
}

// CPURead reads from the cartridge if the mapper claims the CPU address.
func (c *Cartridge) CPURead(address uint16) (uint8, bool) {
	offset, ok := c.mapper.CPUMapRead(address)
	if !ok {
		return 0, false
	}
	return c.PRG[offset], true
}

// CPUWrite offers a CPU write to the cartridge and returns whether the
// mapper claims the address. Program ROM is never modified by a write.
func (c *Cartridge) CPUWrite(address uint16, _ uint8) bool {
	_, ok := c.mapper.CPUMapWrite(address)
	return ok
}

// PPURead reads from the cartridge if the mapper claims the PPU address.
func (c *Cartridge) PPURead(address uint16) (uint8, bool) {
	offset, ok := c.mapper.PPUMapRead(address)
	if !ok {
		return 0, false
	}
	return c.CHR[offset], true
}

// PPUWrite writes to the cartridge if the mapper claims the PPU address.
func (c *Cartridge) PPUWrite(address uint16, data uint8) bool {
	offset, ok := c.mapper.PPUMapWrite(address)
	if !ok {
		return false
	}
	c.CHR[offset] = data
	return true
}
