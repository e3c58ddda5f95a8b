package cpu

import "strings"

// Flags is the processor status register.
type Flags uint8

// Status register bits.
const (
	Carry            Flags = 1 << iota // C
	Zero                               // Z
	InterruptDisable                   // I
	Decimal                            // D, stored but ignored by the arithmetic
	Break                              // B
	Unused                             // U
	Overflow                           // V
	Negative                           // N
)

// Has returns whether all bits of f are set.
func (s Flags) Has(f Flags) bool {
	return s&f == f
}

// Set sets or clears the bits of f.
func (s *Flags) Set(f Flags, value bool) {
	if value {
		*s |= f
	} else {
		*s &^= f
	}
}

// String returns the flags in NV-BDIZC notation, cleared flags as lower case letters.
func (s Flags) String() string {
	const names = "CZIDBUVN"
	var sb strings.Builder
	for bit := 7; bit >= 0; bit-- {
		c := names[bit]
		if s&(1<<bit) == 0 {
			c += 'a' - 'A'
		}
		if bit == 5 {
			c = '-'
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
