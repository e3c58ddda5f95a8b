package mapper

import "github.com/retroenv/retrogolib/arch/system/nes"

const (
	prgBankSize = 0x4000
	chrWindow   = 0x1FFF

	singleBankMask = prgBankSize - 1
	doubleBankMask = 2*prgBankSize - 1
)

// NROM implements mapper 0: fixed program banks mapped at 0x8000, a
// single 16 KB bank is mirrored into 0xC000, character memory is not banked.
type NROM struct {
	prgBanks byte
	chrRAM   bool
}

func newNROM(prgBanks, chrBanks byte) Mapper {
	return &NROM{
		prgBanks: prgBanks,
		chrRAM:   chrBanks == 0,
	}
}

// ID returns the iNES mapper number.
func (m *NROM) ID() byte { return 0 }

// Name returns the board name.
func (m *NROM) Name() string { return "NROM" }

// CPUMapRead maps a CPU read in the program ROM window.
func (m *NROM) CPUMapRead(address uint16) (uint32, bool) {
	return m.cpuMap(address)
}

// CPUMapWrite maps a CPU write in the program ROM window.
func (m *NROM) CPUMapWrite(address uint16) (uint32, bool) {
	return m.cpuMap(address)
}

// PPUMapRead maps a PPU read in the pattern table window.
func (m *NROM) PPUMapRead(address uint16) (uint32, bool) {
	if address > chrWindow {
		return 0, false
	}
	return uint32(address), true
}

// PPUMapWrite only claims pattern table writes for boards with character RAM.
func (m *NROM) PPUMapWrite(address uint16) (uint32, bool) {
	if !m.chrRAM || address > chrWindow {
		return 0, false
	}
	return uint32(address), true
}

// Reset does nothing as the board has no bank registers.
func (m *NROM) Reset() {}

func (m *NROM) cpuMap(address uint16) (uint32, bool) {
	if address < uint16(nes.CodeBaseAddress) {
		return 0, false
	}
	mask := uint16(singleBankMask)
	if m.prgBanks > 1 {
		mask = doubleBankMask
	}
	return uint32(address & mask), true
}
