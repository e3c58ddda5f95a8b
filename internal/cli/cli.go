// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/nesgoemu/internal/options"
)

// ParseFlags parses command line flags and returns program and emulator options
func ParseFlags() (options.Program, options.Emulator, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, options.Emulator{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Emulator{}, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	emuOptions, err := createEmulatorOptions(opts)
	if err != nil {
		return opts, options.Emulator{}, err
	}
	return opts, emuOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: nesgoemu [options] <file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to run, please pass the file to run as last argument", arg),
			}
		}
	}
	return nil
}

// createEmulatorOptions converts and validates the program options
func createEmulatorOptions(opts options.Program) (options.Emulator, error) {
	emuOptions := options.NewEmulator()
	emuOptions.Binary = opts.Binary
	emuOptions.Disassemble = opts.Disasm
	emuOptions.Trace = opts.Trace
	emuOptions.MaxCycles = opts.Cycles
	emuOptions.HexComments = !opts.NoHexComments
	emuOptions.OffsetComments = !opts.NoOffsets

	origin, err := ParseAddress(opts.Origin)
	if err != nil {
		return options.Emulator{}, fmt.Errorf("parsing origin: %w", err)
	}
	emuOptions.Origin = origin

	if opts.PC != "" {
		pc, err := ParseAddress(opts.PC)
		if err != nil {
			return options.Emulator{}, fmt.Errorf("parsing start address: %w", err)
		}
		emuOptions.StartPC = pc
		emuOptions.SetPC = true
	}

	if opts.Break != "" {
		for s := range strings.SplitSeq(opts.Break, ",") {
			address, err := ParseAddress(strings.TrimSpace(s))
			if err != nil {
				return options.Emulator{}, fmt.Errorf("parsing breakpoint: %w", err)
			}
			emuOptions.Breakpoints = append(emuOptions.Breakpoints, address)
		}
	}

	return emuOptions, nil
}

// ParseAddress parses a 16 bit address in decimal, 0x prefixed or $ prefixed
// hexadecimal notation.
func ParseAddress(s string) (uint16, error) {
	var (
		value uint64
		err   error
	)
	if hex, ok := strings.CutPrefix(s, "$"); ok {
		value, err = strconv.ParseUint(hex, 16, 16)
	} else {
		value, err = strconv.ParseUint(s, 0, 16)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid address '%s': %w", s, err)
	}
	return uint16(value), nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output trace or listing file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .log file naming, for example *.nes")
	flags.BoolVar(&opts.Binary, "binary", false, "read input file as raw 6502 program without any header")
	flags.StringVar(&opts.Origin, "origin", "0x8000", "load address of a raw binary program")
	flags.Uint64Var(&opts.Cycles, "cycles", 100000, "number of CPU cycles to run, 0 runs until a breakpoint is hit")
	flags.StringVar(&opts.PC, "pc", "", "start address that overrides the reset vector")
	flags.StringVar(&opts.Break, "break", "", "comma separated list of breakpoint addresses")
	flags.BoolVar(&opts.Trace, "trace", false, "output every executed instruction with the register state")
	flags.BoolVar(&opts.Disasm, "disasm", false, "disassemble the program ROM instead of running it")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
