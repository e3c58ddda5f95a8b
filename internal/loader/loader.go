// Package loader handles cartridge file loading operations.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/nesgoemu/internal/cartridge"
	"github.com/retroenv/nesgoemu/internal/detector"
)

// Loader handles loading cartridge files from disk.
type Loader struct{}

// New creates a new cartridge loader.
func New() *Loader {
	return &Loader{}
}

// Load loads and parses a cartridge file in the given format. Raw binary
// programs are placed at the origin address of a generated mapper 0
// cartridge.
func (l *Loader) Load(input string, format detector.Format, origin uint16) (*cartridge.Cartridge, error) {
	file, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", input, err)
	}
	defer func() { _ = file.Close() }()

	cart, err := l.load(file, format, origin)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}
	return cart, nil
}

// LoadFromBytes parses a cartridge from memory.
func (l *Loader) LoadFromBytes(data []byte, format detector.Format, origin uint16) (*cartridge.Cartridge, error) {
	return l.load(bytes.NewReader(data), format, origin)
}

func (l *Loader) load(reader io.Reader, format detector.Format, origin uint16) (*cartridge.Cartridge, error) {
	if format == detector.INES {
		cart, err := cartridge.Load(reader)
		if err != nil {
			return nil, fmt.Errorf("parsing iNES image: %w", err)
		}
		return cart, nil
	}

	code, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	cart, err := cartridge.FromProgram(code, origin)
	if err != nil {
		return nil, fmt.Errorf("building cartridge: %w", err)
	}
	return cart, nil
}
