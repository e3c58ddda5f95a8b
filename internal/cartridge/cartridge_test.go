package cartridge

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/nesgoemu/internal/mapper"
	nescart "github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/assert"
)

// buildNESROM creates an iNES image where every PRG bank is filled with its
// bank number and every CHR bank with its bank number + 0x80.
func buildNESROM(prgBanks, chrBanks, flags1, flags2 byte) []byte {
	header := []byte{
		'N', 'E', 'S', 0x1A,
		prgBanks, chrBanks,
		flags1, flags2,
		0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
	}

	var buf bytes.Buffer
	buf.Write(header)
	if flags1&0x04 != 0 {
		buf.Write(bytes.Repeat([]byte{0xEE}, trainerSize))
	}
	for i := range prgBanks {
		buf.Write(bytes.Repeat([]byte{i}, PRGBankSize))
	}
	for i := range chrBanks {
		buf.Write(bytes.Repeat([]byte{0x80 + i}, CHRBankSize))
	}
	return buf.Bytes()
}

//nolint:funlen // test functions can be long
func TestLoad(t *testing.T) {
	t.Run("two program banks and one character bank", func(t *testing.T) {
		cart, err := Load(bytes.NewReader(buildNESROM(2, 1, 0x00, 0x00)))
		assert.NoError(t, err)
		assert.Len(t, cart.PRG, 32768)
		assert.Len(t, cart.CHR, 8192)
		assert.Equal(t, byte(0), cart.MapperID)
		assert.Equal(t, byte(2), cart.PRGBanks)
		assert.Equal(t, byte(1), cart.CHRBanks)
		assert.Equal(t, byte(0), cart.PRG[0])
		assert.Equal(t, byte(1), cart.PRG[PRGBankSize])
		assert.Equal(t, byte(0x80), cart.CHR[0])
	})

	t.Run("trainer is skipped", func(t *testing.T) {
		cart, err := Load(bytes.NewReader(buildNESROM(1, 1, 0x04, 0x00)))
		assert.NoError(t, err)
		assert.Len(t, cart.Trainer, trainerSize)
		assert.Equal(t, byte(0xEE), cart.Trainer[0])
		assert.Equal(t, byte(0), cart.PRG[0])
		assert.Equal(t, byte(0x80), cart.CHR[CHRBankSize-1])
	})

	t.Run("mirroring and battery flags", func(t *testing.T) {
		cart, err := Load(bytes.NewReader(buildNESROM(1, 1, 0x03, 0x00)))
		assert.NoError(t, err)
		assert.Equal(t, Vertical, cart.Mirror)
		assert.True(t, cart.Battery)
	})

	t.Run("character RAM for zero character banks", func(t *testing.T) {
		cart, err := Load(bytes.NewReader(buildNESROM(1, 0, 0x00, 0x00)))
		assert.NoError(t, err)
		assert.Len(t, cart.CHR, CHRBankSize)
		assert.True(t, cart.PPUWrite(0x0010, 0x42))
		value, ok := cart.PPURead(0x0010)
		assert.True(t, ok)
		assert.Equal(t, uint8(0x42), value)
	})

	t.Run("invalid name tag", func(t *testing.T) {
		data := buildNESROM(1, 1, 0x00, 0x00)
		data[3] = 0x00
		_, err := Load(bytes.NewReader(data))
		assert.True(t, errors.Is(err, ErrInvalidHeader))
	})

	t.Run("truncated header", func(t *testing.T) {
		_, err := Load(bytes.NewReader([]byte{'N', 'E', 'S'}))
		assert.True(t, errors.Is(err, ErrTruncated))
	})

	t.Run("truncated program ROM", func(t *testing.T) {
		data := buildNESROM(2, 1, 0x00, 0x00)
		_, err := Load(bytes.NewReader(data[:headerSize+PRGBankSize]))
		assert.True(t, errors.Is(err, ErrTruncated))
		assert.ErrorContains(t, err, "program ROM")
	})

	t.Run("truncated character ROM", func(t *testing.T) {
		data := buildNESROM(1, 1, 0x00, 0x00)
		_, err := Load(bytes.NewReader(data[:len(data)-1]))
		assert.True(t, errors.Is(err, ErrTruncated))
		assert.ErrorContains(t, err, "character ROM")
	})

	t.Run("unsupported mapper", func(t *testing.T) {
		_, err := Load(bytes.NewReader(buildNESROM(1, 1, 0x10, 0x00)))
		assert.True(t, errors.Is(err, mapper.ErrUnsupported))
	})
}

func TestHeaderMapperID(t *testing.T) {
	tests := []struct {
		flags1 byte
		flags2 byte
		want   byte
	}{
		{0x00, 0x00, 0},
		{0x10, 0x00, 1},
		{0x41, 0x00, 4},
		{0x40, 0x10, 0x14},
		{0xF3, 0xF0, 0xFF},
	}

	for _, tt := range tests {
		h := Header{Mapper1: tt.flags1, Mapper2: tt.flags2}
		assert.Equal(t, tt.want, h.MapperID())

		// the retrogolib parser accepts every mapper id, use it as reference
		ref, err := nescart.LoadFile(bytes.NewReader(buildNESROM(1, 1, tt.flags1, tt.flags2)))
		assert.NoError(t, err)
		assert.Equal(t, ref.Mapper, h.MapperID())
	}
}

func TestLoadMatchesReferenceParser(t *testing.T) {
	tests := []struct {
		name     string
		prgBanks byte
		chrBanks byte
		flags1   byte
	}{
		{"one program bank", 1, 1, 0x00},
		{"two program banks", 2, 1, 0x00},
		{"two character banks", 2, 2, 0x00},
		{"trainer", 1, 1, 0x04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildNESROM(tt.prgBanks, tt.chrBanks, tt.flags1, 0x00)

			cart, err := Load(bytes.NewReader(data))
			assert.NoError(t, err)
			ref, err := nescart.LoadFile(bytes.NewReader(data))
			assert.NoError(t, err)

			assert.Equal(t, ref.PRG, cart.PRG)
			assert.Equal(t, ref.CHR, cart.CHR)
			assert.Equal(t, ref.Mapper, cart.MapperID)
			if tt.flags1&0x04 != 0 {
				assert.Equal(t, ref.Trainer, cart.Trainer)
			}
		})
	}
}

func TestLoadTruncatedTrainer(t *testing.T) {
	data := buildNESROM(1, 1, 0x04, 0x00)
	_, err := Load(bytes.NewReader(data[:headerSize+trainerSize/2]))
	assert.True(t, errors.Is(err, ErrTruncated))
	assert.ErrorContains(t, err, "trainer")
}

func TestCartridgeMapping(t *testing.T) {
	cart, err := Load(bytes.NewReader(buildNESROM(1, 1, 0x00, 0x00)))
	assert.NoError(t, err)
	cart.PRG[0x0123] = 0x99

	lower, ok := cart.CPURead(0x8123)
	assert.True(t, ok)
	upper, ok := cart.CPURead(0xC123)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x99), lower)
	assert.Equal(t, lower, upper)

	_, ok = cart.CPURead(0x6000)
	assert.False(t, ok)

	assert.False(t, cart.CPUWrite(0x0000, 0x55))

	value, ok := cart.PPURead(0x0000)
	assert.True(t, ok)
	assert.Equal(t, uint8(0x80), value)
	assert.False(t, cart.PPUWrite(0x0000, 0x01))
	_, ok = cart.PPURead(0x2000)
	assert.False(t, ok)
}

func TestProgramROMIsReadOnly(t *testing.T) {
	tests := []struct {
		name     string
		prgBanks byte
		write    uint16
		mirrors  []uint16
	}{
		{"single bank lower window", 1, 0x8000, []uint16{0x8000, 0xC000}},
		{"single bank upper window", 1, 0xC000, []uint16{0x8000, 0xC000}},
		{"two banks", 2, 0x8000, []uint16{0x8000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart, err := Load(bytes.NewReader(buildNESROM(tt.prgBanks, 1, 0x00, 0x00)))
			assert.NoError(t, err)
			cart.PRG[0] = 0xEA

			assert.True(t, cart.CPUWrite(tt.write, 0x42), "mapper claims the write")
			for _, address := range tt.mirrors {
				value, ok := cart.CPURead(address)
				assert.True(t, ok)
				assert.Equal(t, uint8(0xEA), value)
			}
			assert.Equal(t, byte(0xEA), cart.PRG[0])
		})
	}
}

func TestFromProgram(t *testing.T) {
	code := []byte{0xA9, 0x05, 0x00}
	cart, err := FromProgram(code, 0x8010)
	assert.NoError(t, err)
	assert.Len(t, cart.PRG, 2*PRGBankSize)

	value, ok := cart.CPURead(0x8010)
	assert.True(t, ok)
	assert.Equal(t, uint8(0xA9), value)

	lo, _ := cart.CPURead(0xFFFC)
	hi, _ := cart.CPURead(0xFFFD)
	assert.Equal(t, uint8(0x10), lo)
	assert.Equal(t, uint8(0x80), hi)

	_, err = FromProgram(code, 0x0200)
	assert.True(t, errors.Is(err, ErrProgramSize))

	_, err = FromProgram(make([]byte, 0x8000), 0x8000)
	assert.True(t, errors.Is(err, ErrProgramSize))
}
