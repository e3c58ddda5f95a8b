// Package writer implements the listing and trace output.
package writer

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/nesgoemu/internal/cartridge"
	"github.com/retroenv/nesgoemu/internal/cpu"
)

const dataBytesPerLine = 16

type lineWriterFunc func(line string, byteCount int) error

// Writer writes disassembly listings and execution traces.
type Writer struct {
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	HexComments    bool // output the instruction bytes as comment
	OffsetComments bool // output the instruction address as comment
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// WriteCommentHeader writes the CRC32 checksums and the cartridge layout as comments to the output.
func (w Writer) WriteCommentHeader(cart *cartridge.Cartridge) error {
	if _, err := fmt.Fprintf(w.writer, "; PRG CRC32 checksum: %08x\n", crc32.ChecksumIEEE(cart.PRG)); err != nil {
		return fmt.Errorf("writing prg checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; CHR CRC32 checksum: %08x\n", crc32.ChecksumIEEE(cart.CHR)); err != nil {
		return fmt.Errorf("writing chr checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Mapper: %d (%s), mirroring: %s\n",
		cart.MapperID, cart.Mapper().Name(), cart.Mirror); err != nil {
		return fmt.Errorf("writing mapper: %w", err)
	}
	return nil
}

// WriteComment writes a comment line.
func (w Writer) WriteComment(format string, args ...any) error {
	if _, err := fmt.Fprintf(w.writer, "; "+format+"\n", args...); err != nil {
		return fmt.Errorf("writing comment: %w", err)
	}
	return nil
}

// WriteCode writes disassembled instructions with their address and byte comments.
func (w Writer) WriteCode(lines []cpu.Line) error {
	for _, line := range lines {
		if err := w.writeCodeLine(line); err != nil {
			return fmt.Errorf("writing code line: %w", err)
		}
	}
	return nil
}

// WriteData writes data bytes that start at the given address.
func (w Writer) WriteData(address uint16, data []byte) error {
	current := address
	lineWriter := func(line string, byteCount int) error {
		var err error
		if w.options.OffsetComments {
			_, err = fmt.Fprintf(w.writer, "%-32s ; $%04X\n", line, current)
		} else {
			_, err = fmt.Fprintf(w.writer, "%s\n", line)
		}
		if err != nil {
			return fmt.Errorf("writing data line: %w", err)
		}

		current += uint16(byteCount)
		return nil
	}

	if err := w.BundleDataWrites(data, lineWriter); err != nil {
		return fmt.Errorf("writing data: %w", err)
	}
	return nil
}

// BundleDataWrites bundles writes of data bytes to print dataBytesPerLine bytes per line.
func (w Writer) BundleDataWrites(data []byte, lineWriter lineWriterFunc) error {
	remaining := len(data)
	for i := 0; remaining > 0; {
		toWrite := min(remaining, dataBytesPerLine)

		buf := &strings.Builder{}
		buf.WriteString(".byte ")
		for j := range toWrite {
			if _, err := fmt.Fprintf(buf, "$%02x, ", data[i+j]); err != nil {
				return fmt.Errorf("writing data byte: %w", err)
			}
		}

		line := strings.TrimRight(buf.String(), ", ")

		if lineWriter != nil {
			if err := lineWriter(line, toWrite); err != nil {
				return fmt.Errorf("writing data line using custom writer: %w", err)
			}
		} else {
			if _, err := fmt.Fprintf(w.writer, "%s\n", line); err != nil {
				return fmt.Errorf("writing data line: %w", err)
			}
		}

		i += toWrite
		remaining -= toWrite
	}

	return nil
}

// WriteTraceLine writes an executed instruction in the common trace log
// layout: address, instruction bytes, disassembly and the register state
// before execution.
func (w Writer) WriteTraceLine(line cpu.Line, state cpu.State) error {
	if _, err := fmt.Fprintf(w.writer, "%04X  %-8s  %-30s  %s\n",
		line.Address, hexBytes(line.Bytes), line.Text, state); err != nil {
		return fmt.Errorf("writing trace line: %w", err)
	}
	return nil
}

func (w Writer) writeCodeLine(line cpu.Line) error {
	comment := w.lineComment(line)
	if comment == "" {
		if _, err := fmt.Fprintf(w.writer, "  %s\n", line.Text); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	} else {
		if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", line.Text, comment); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

func (w Writer) lineComment(line cpu.Line) string {
	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", line.Address))
	}
	if w.options.HexComments {
		parts = append(parts, hexBytes(line.Bytes))
	}
	if line.Comment != "" {
		parts = append(parts, line.Comment)
	}
	return strings.Join(parts, "  ")
}

func hexBytes(data []byte) string {
	values := make([]string, len(data))
	for i, b := range data {
		values[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(values, " ")
}
