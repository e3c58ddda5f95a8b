// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/nesgoemu/internal/cartridge"
	"github.com/retroenv/nesgoemu/internal/console"
	"github.com/retroenv/nesgoemu/internal/cpu"
	"github.com/retroenv/nesgoemu/internal/detector"
	"github.com/retroenv/nesgoemu/internal/loader"
	"github.com/retroenv/nesgoemu/internal/options"
	"github.com/retroenv/nesgoemu/internal/writer"
	"github.com/retroenv/retrogolib/arch/system/nes"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, emuOptions options.Emulator) error {
	format := detector.New(logger).Detect(opts)

	cart, err := loader.New().Load(opts.Input, format, emuOptions.Origin)
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}
	logger.Debug("Cartridge loaded",
		log.String("file", opts.Input),
		log.Uint8("mapper", cart.MapperID),
		log.Int("prg_size", len(cart.PRG)),
		log.Int("chr_size", len(cart.CHR)),
		log.Stringer("mirror", cart.Mirror))

	output, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() { _ = output.Close() }()

	return Process(ctx, logger, cart, emuOptions, output)
}

// Process runs or disassembles the cartridge and writes the result to the writer.
func Process(ctx context.Context, logger *log.Logger, cart *cartridge.Cartridge,
	emuOptions options.Emulator, output io.Writer) error {

	w := writer.New(output, writer.Options{
		HexComments:    emuOptions.HexComments,
		OffsetComments: emuOptions.OffsetComments,
	})

	con := console.New(logger, cart)
	con.Reset()

	if emuOptions.Disassemble {
		if err := disassemble(w, con, cart); err != nil {
			return fmt.Errorf("disassembling: %w", err)
		}
		return nil
	}

	if err := run(ctx, logger, w, con, emuOptions); err != nil {
		return fmt.Errorf("running: %w", err)
	}
	return nil
}

func run(ctx context.Context, logger *log.Logger, w *writer.Writer,
	con *console.Console, emuOptions options.Emulator) error {

	if emuOptions.SetPC {
		con.CPU().PC = emuOptions.StartPC
	}
	for _, address := range emuOptions.Breakpoints {
		con.AddBreakpoint(address)
	}

	runOptions := console.RunOptions{
		MaxCycles: emuOptions.MaxCycles,
	}

	var traceErr error
	if emuOptions.Trace {
		runOptions.Trace = func(line cpu.Line, state cpu.State) {
			if traceErr == nil {
				traceErr = w.WriteTraceLine(line, state)
			}
		}
	}

	result, err := con.Run(ctx, runOptions)
	if err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	if traceErr != nil {
		return traceErr
	}

	logger.Info("Execution stopped",
		log.Stringer("reason", result.Reason),
		log.Hex("pc", result.PC),
		log.Int("instructions", int(result.Instructions)),
		log.Int("cycles", int(result.Cycles)))

	if err := w.WriteComment("Stopped at $%04X by %s after %d instructions and %d cycles",
		result.PC, result.Reason, result.Instructions, result.Cycles); err != nil {
		return err
	}
	return w.WriteComment("%s", con.CPU().State())
}

// disassemble writes a listing of the program ROM that ends at the vectors,
// a 16 KB program ROM is listed at its mirror at $C000. The zero filled area
// between the code and the vectors is skipped.
func disassemble(w *writer.Writer, con *console.Console, cart *cartridge.Cartridge) error {
	read := con.Bus().Peek
	base := uint16(nes.CodeBaseAddress)
	if size := len(cart.PRG); size < 0x10000-int(base) {
		base = uint16(0x10000 - size)
	}

	if err := w.WriteCommentHeader(cart); err != nil {
		return err
	}
	if err := w.WriteComment("Code base address: $%04X\n", base); err != nil {
		return err
	}

	codeEnd := base
	for address := cpu.NMIVector - 1; address >= base; address-- {
		if read(address) != 0 {
			codeEnd = address
			break
		}
	}

	lines := cpu.Disassemble(read, base, codeEnd)
	if err := w.WriteCode(lines); err != nil {
		return err
	}

	last := lines[len(lines)-1]
	next := uint32(last.Address) + uint32(len(last.Bytes))
	if next < uint32(cpu.NMIVector) {
		if err := w.WriteComment("$%04X-$%04X zero filled", next, cpu.NMIVector-1); err != nil {
			return err
		}
		next = uint32(cpu.NMIVector)
	}

	var vectors []byte
	for address := next; address <= 0xFFFF; address++ {
		vectors = append(vectors, read(uint16(address)))
	}
	if len(vectors) == 0 {
		return nil
	}
	return w.WriteData(uint16(next), vectors)
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".log"
}

func createWriter(opts options.Program) (io.WriteCloser, error) {
	if opts.Output == "" {
		return &nopCloser{os.Stdout}, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("nesgoemu", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// nopCloser wraps an io.Writer to add a no-op Close method
type nopCloser struct {
	io.Writer
}

func (nc *nopCloser) Close() error {
	return nil
}
