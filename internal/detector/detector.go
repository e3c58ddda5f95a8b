// Package detector handles input file format detection.
package detector

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/nesgoemu/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Format is the container format of an input file.
type Format int

// Supported input formats.
const (
	INES   Format = iota // iNES cartridge image with a 16 byte header
	Binary               // raw 6502 program without a header
)

func (f Format) String() string {
	if f == Binary {
		return "binary"
	}
	return "iNES"
}

var inesMagic = []byte{'N', 'E', 'S', 0x1A}

// Detector handles format detection from file extensions, file content and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the input format. The binary option takes priority,
// otherwise the format is detected from the file extension and for
// unknown extensions from the file content.
func (d *Detector) Detect(opts options.Program) Format {
	if opts.Binary {
		return Binary
	}

	format, ok := detectFromExtension(opts.Input)
	if !ok {
		format = d.detectFromContent(opts.Input)
	}

	d.logger.Debug("Auto-detected format",
		log.Stringer("format", format),
		log.String("file", opts.Input))
	return format
}

// detectFromExtension determines the format based on the file extension.
func detectFromExtension(filename string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return INES, true
	case ".bin", ".prg", ".6502":
		return Binary, true
	default:
		return INES, false
	}
}

// detectFromContent checks the file for the iNES header magic. Files that
// can not be read are reported as iNES so that the loader returns the error.
func (d *Detector) detectFromContent(filename string) Format {
	file, err := os.Open(filename)
	if err != nil {
		return INES
	}
	defer func() { _ = file.Close() }()

	header := make([]byte, len(inesMagic))
	if _, err := io.ReadFull(file, header); err != nil {
		d.logger.Debug("Reading file header failed", log.Err(err))
		return Binary
	}
	if bytes.Equal(header, inesMagic) {
		return INES
	}
	return Binary
}
