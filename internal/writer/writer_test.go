package writer

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/retroenv/nesgoemu/internal/cartridge"
	"github.com/retroenv/nesgoemu/internal/cpu"
	"github.com/retroenv/retrogolib/assert"
)

func TestWriteCode(t *testing.T) {
	lines := cpu.DisassembleBytes([]byte{0xA9, 0x05, 0x02, 0x20}, 0x8000)
	assert.Len(t, lines, 3)
	unofficial := lines[1].Comment
	assert.NotEmpty(t, unofficial)

	tests := []struct {
		name     string
		options  Options
		expected []string
	}{
		{
			name:    "all comments",
			options: Options{HexComments: true, OffsetComments: true},
			expected: []string{
				fmt.Sprintf("  %-30s ; $8000  A9 05", "LDA #$05"),
				fmt.Sprintf("  %-30s ; $8002  02  %s", "???", unofficial),
				fmt.Sprintf("  %-30s ; $8003  20", ".byte $20"),
			},
		},
		{
			name:    "no hex comments",
			options: Options{OffsetComments: true},
			expected: []string{
				fmt.Sprintf("  %-30s ; $8000", "LDA #$05"),
				fmt.Sprintf("  %-30s ; $8002  %s", "???", unofficial),
				fmt.Sprintf("  %-30s ; $8003", ".byte $20"),
			},
		},
		{
			name:    "no comments",
			options: Options{},
			expected: []string{
				"  LDA #$05",
				fmt.Sprintf("  %-30s ; %s", "???", unofficial),
				"  .byte $20",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := New(&buf, tt.options)
			assert.NoError(t, w.WriteCode(lines))
			assert.Equal(t, strings.Join(tt.expected, "\n")+"\n", buf.String())
		})
	}
}

func TestWriteData(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{OffsetComments: true})

	data := make([]byte, 18)
	data[0] = 0xAB
	data[17] = 0xCD
	assert.NoError(t, w.WriteData(0xFFE0, data))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], ".byte $ab, $00,"))
	assert.True(t, strings.HasSuffix(lines[0], "; $FFE0"))
	assert.Equal(t, fmt.Sprintf("%-32s ; $FFF0", ".byte $00, $cd"), lines[1])
}

func TestBundleDataWrites(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{})

	assert.NoError(t, w.BundleDataWrites([]byte{0x01, 0xFF}, nil))
	assert.Equal(t, ".byte $01, $ff\n", buf.String())
}

func TestWriteTraceLine(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf, Options{})

	line := cpu.DisassembleBytes([]byte{0x8D, 0x00, 0x20}, 0xC000)[0]
	state := cpu.State{A: 0x80, SP: 0xFD, PC: 0xC000, Status: cpu.Unused | cpu.Negative, Cycles: 7}
	assert.NoError(t, w.WriteTraceLine(line, state))

	expected := fmt.Sprintf("C000  8D 00 20  %-30s  A:80 X:00 Y:00 P:A0 SP:FD CYC:7\n", "STA $2000")
	assert.Equal(t, expected, buf.String())
}

func TestWriteCommentHeader(t *testing.T) {
	cart, err := cartridge.FromProgram([]byte{0xEA}, 0x8000)
	assert.NoError(t, err)

	var buf bytes.Buffer
	w := New(&buf, Options{})
	assert.NoError(t, w.WriteCommentHeader(cart))
	assert.NoError(t, w.WriteComment("Code base address: $%04x", 0x8000))

	output := buf.String()
	assert.Contains(t, output, "; PRG CRC32 checksum: ")
	assert.Contains(t, output, "; CHR CRC32 checksum: ")
	assert.Contains(t, output, "; Mapper: 0 (NROM), mirroring: horizontal\n")
	assert.Contains(t, output, "; Code base address: $8000\n")
}
