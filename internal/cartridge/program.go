package cartridge

import (
	"errors"
	"fmt"

	"github.com/retroenv/nesgoemu/internal/mapper"
	m6502 "github.com/retroenv/retrogolib/arch/cpu/cpu6502"
	"github.com/retroenv/retrogolib/arch/system/nes"
)

// ErrProgramSize is returned when a raw program does not fit into the program ROM window.
var ErrProgramSize = errors.New("program does not fit into program ROM")

// FromProgram builds a 32 KB mapper 0 cartridge that contains the raw
// program at the origin address and a reset vector pointing to it.
func FromProgram(code []byte, origin uint16) (*Cartridge, error) {
	base := uint16(nes.CodeBaseAddress)
	resetVector := uint16(m6502.ResetAddress)

	if origin < base {
		return nil, fmt.Errorf("%w: origin $%04X is below $%04X", ErrProgramSize, origin, base)
	}
	if int(origin)+len(code) > int(resetVector) {
		return nil, fmt.Errorf("%w: %d bytes at $%04X overlap the vectors", ErrProgramSize, len(code), origin)
	}

	const prgBanks = 2
	m, err := mapper.New(0, prgBanks, 1)
	if err != nil {
		return nil, fmt.Errorf("creating mapper: %w", err)
	}

	cart := &Cartridge{
		Header: Header{
			Name:     magic,
			PRGBanks: prgBanks,
			CHRBanks: 1,
		},
		PRG:      make([]byte, prgBanks*PRGBankSize),
		CHR:      make([]byte, CHRBankSize),
		PRGBanks: prgBanks,
		CHRBanks: 1,
		mapper:   m,
	}

	copy(cart.PRG[origin-base:], code)
	cart.PRG[resetVector-base] = byte(origin)
	cart.PRG[resetVector-base+1] = byte(origin >> 8)
	return cart, nil
}
