package fileprocessor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/nesgoemu/internal/cartridge"
	"github.com/retroenv/nesgoemu/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func createTestCode() []byte {
	// Simple 6502 program: LDX #$03, loop: DEX, BNE loop, STX $0200, end: JMP end
	return []byte{
		0xA2, 0x03, // LDX #$03
		0xCA,       // DEX
		0xD0, 0xFD, // BNE $8002
		0x8E, 0x00, 0x02, // STX $0200
		0x4C, 0x08, 0x80, // JMP $8008
	}
}

// createMinimalNESROM creates a minimal valid NES ROM with the given code
func createMinimalNESROM(code []byte) []byte {
	rom := make([]byte, 0, 16+16384+8192) // Header + 16KB PRG + 8KB CHR

	// iNES header (16 bytes)
	header := []byte{
		0x4E, 0x45, 0x53, 0x1A, // "NES" + MS-DOS EOF
		0x01,       // 1x 16KB PRG-ROM
		0x01,       // 1x 8KB CHR-ROM
		0x01,       // Mapper 0, vertical mirroring
		0x00,       // Mapper 0
		0x00,       // No PRG-RAM
		0x00,       // NTSC
		0x00, 0x00, // Unused
		0x00, 0x00, 0x00, 0x00, // Padding
	}
	rom = append(rom, header...)

	// PRG-ROM (16384 bytes)
	prgROM := make([]byte, 16384)
	copy(prgROM, code)

	// Set reset vector to point to start of code (0x8000)
	prgROM[0x3FFC] = 0x00
	prgROM[0x3FFD] = 0x80

	rom = append(rom, prgROM...)

	// CHR-ROM (8192 bytes)
	chrROM := make([]byte, 8192)
	rom = append(rom, chrROM...)

	return rom
}

func loadTestCartridge(t *testing.T) *cartridge.Cartridge {
	t.Helper()

	cart, err := cartridge.Load(bytes.NewReader(createMinimalNESROM(createTestCode())))
	assert.NoError(t, err)
	return cart
}

func TestProcessRunWithTrace(t *testing.T) {
	emuOptions := options.NewEmulator()
	emuOptions.Trace = true
	emuOptions.Breakpoints = []uint16{0x8008}

	var buf bytes.Buffer
	err := Process(context.Background(), log.NewTestLogger(t), loadTestCartridge(t), emuOptions, &buf)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// LDX, 3 times DEX and BNE, STX followed by 2 comment lines
	assert.Len(t, lines, 10)
	assert.True(t, strings.HasPrefix(lines[0], "8000  A2 03     LDX #$03"))
	assert.True(t, strings.HasPrefix(lines[7], "8005  8E 00 02  STX $0200"))
	assert.Equal(t, "; Stopped at $8008 by breakpoint after 8 instructions and 28 cycles", lines[8])
	assert.True(t, strings.HasPrefix(lines[9], "; A:00 X:00 Y:00"))
}

func TestProcessRunCycleLimit(t *testing.T) {
	emuOptions := options.NewEmulator()
	emuOptions.MaxCycles = 1000

	var buf bytes.Buffer
	err := Process(context.Background(), log.NewTestLogger(t), loadTestCartridge(t), emuOptions, &buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "; Stopped at $8008 by cycle limit")
}

func TestProcessRunStartAddress(t *testing.T) {
	emuOptions := options.NewEmulator()
	emuOptions.SetPC = true
	emuOptions.StartPC = 0x8008
	emuOptions.Breakpoints = []uint16{0x8008}

	var buf bytes.Buffer
	err := Process(context.Background(), log.NewTestLogger(t), loadTestCartridge(t), emuOptions, &buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "; Stopped at $8008 by breakpoint after 1 instructions")
}

func TestProcessDisassemble(t *testing.T) {
	emuOptions := options.NewEmulator()
	emuOptions.Disassemble = true

	var buf bytes.Buffer
	err := Process(context.Background(), log.NewTestLogger(t), loadTestCartridge(t), emuOptions, &buf)
	assert.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "; Mapper: 0 (NROM), mirroring: vertical\n")
	assert.Contains(t, output, "; Code base address: $C000\n")
	assert.Contains(t, output, "LDX #$03")
	assert.Contains(t, output, "BNE $C002")
	assert.Contains(t, output, "JMP $8008")
	assert.Contains(t, output, "; $C00B-$FFF9 zero filled\n")
	assert.Contains(t, output, ".byte $00, $00, $00, $80, $00, $00")
}

func TestProcessCancelled(t *testing.T) {
	emuOptions := options.NewEmulator()
	emuOptions.MaxCycles = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Process(ctx, log.NewTestLogger(t), loadTestCartridge(t), emuOptions, &buf)
	assert.ErrorContains(t, err, "context canceled")
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "program.bin")
	assert.NoError(t, os.WriteFile(input, createTestCode(), 0600))

	opts := options.Program{}
	opts.Input = input
	opts.Output = GenerateOutputFilename(input)

	emuOptions := options.NewEmulator()
	emuOptions.Breakpoints = []uint16{0x8008}

	err := ProcessFile(context.Background(), log.NewTestLogger(t), opts, emuOptions)
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "program.log"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), "; Stopped at $8008 by breakpoint")
}

func TestGetFilesToProcess(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.nes", "b.nes", "c.bin"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0600))
	}

	opts := &options.Program{}
	opts.Batch = filepath.Join(dir, "*.nes")
	files, err := GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts = &options.Program{}
	opts.Input = "game.nes"
	files, err = GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Equal(t, []string{"game.nes"}, files)
}

func TestGenerateOutputFilename(t *testing.T) {
	assert.Equal(t, "roms/game.log", GenerateOutputFilename("roms/game.nes"))
	assert.Equal(t, "program.log", GenerateOutputFilename("program"))
}
