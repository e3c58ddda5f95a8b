// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	Output string `flag:"o" usage:"output trace or listing file (default: stdout)"`
	Batch  string `flag:"batch" usage:"batch process files matching pattern (e.g. *.nes)"`
}

// Flags contains behavior options.
type Flags struct {
	Binary bool   `flag:"binary" usage:"treat input as raw 6502 program without header"`
	Origin string `flag:"origin" usage:"load address of a raw program" default:"0x8000"`
	Cycles uint64 `flag:"cycles" usage:"CPU cycles to run, 0 runs until a breakpoint" default:"100000"`
	PC     string `flag:"pc" usage:"start address overriding the reset vector"`
	Break  string `flag:"break" usage:"comma separated breakpoint addresses"`
	Trace  bool   `flag:"trace" usage:"output every executed instruction"`
	Disasm bool   `flag:"disasm" usage:"disassemble the program ROM instead of running it"`
	Debug  bool   `flag:"debug" usage:"enable debug logging"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains output formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Emulator defines the parsed options that control a console run.
type Emulator struct {
	Origin      uint16   // load address of a raw program
	MaxCycles   uint64   // CPU cycle limit of a run
	StartPC     uint16   // start address, only used if SetPC is set
	SetPC       bool     // override the reset vector
	Breakpoints []uint16 // addresses to stop at

	Binary         bool
	Disassemble    bool
	Trace          bool
	HexComments    bool
	OffsetComments bool
}

// NewEmulator returns a new options instance with default options.
func NewEmulator() Emulator {
	return Emulator{
		Origin:    0x8000,
		MaxCycles: 100000,

		HexComments:    true,
		OffsetComments: true,
	}
}
