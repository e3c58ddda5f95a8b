// Package mapper provides the cartridge address translation strategies.
package mapper

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned for a mapper id that has no implementation.
var ErrUnsupported = errors.New("unsupported mapper")

// Mapper translates CPU and PPU bus addresses into offsets within the
// cartridge program and character memory. Every method returns false
// if the mapper does not handle the address.
type Mapper interface {
	// ID returns the iNES mapper number.
	ID() byte
	// Name returns the common name of the board.
	Name() string

	CPUMapRead(address uint16) (uint32, bool)
	CPUMapWrite(address uint16) (uint32, bool)
	PPUMapRead(address uint16) (uint32, bool)
	PPUMapWrite(address uint16) (uint32, bool)

	// Reset restores the power on bank selection.
	Reset()
}

type constructor func(prgBanks, chrBanks byte) Mapper

var mappers = map[byte]constructor{
	0: newNROM,
}

// New returns the mapper implementation for the given iNES mapper id.
func New(id, prgBanks, chrBanks byte) (Mapper, error) {
	create, ok := mappers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupported, id)
	}
	return create(prgBanks, chrBanks), nil
}

// Supported returns whether a mapper implementation exists for the id.
func Supported(id byte) bool {
	_, ok := mappers[id]
	return ok
}
