// Package image defines the wire format the device loads and the assembler
// produces: the opcode table, register encoding, and tape file layout. It is
// the single source of truth consulted by the assembler, the executor, and
// the decompiler so the three never drift out of sync.
package image

// DataReg identifies one of the 8-bit data registers (D0-D3) or the
// accumulator. Encoded as a single byte: ACC=0, D0=1, D1=2, D2=3, D3=4.
type DataReg uint8

const (
	ACC DataReg = 0
	D0  DataReg = 1
	D1  DataReg = 2
	D2  DataReg = 3
	D3  DataReg = 4
)

func (r DataReg) String() string {
	switch r {
	case ACC:
		return "acc"
	case D0:
		return "d0"
	case D1:
		return "d1"
	case D2:
		return "d2"
	case D3:
		return "d3"
	default:
		return "?"
	}
}

// DataRegByName resolves a case-insensitive register mnemonic to a DataReg.
func DataRegByName(name string) (DataReg, bool) {
	switch lower(name) {
	case "acc":
		return ACC, true
	case "d0":
		return D0, true
	case "d1":
		return D1, true
	case "d2":
		return D2, true
	case "d3":
		return D3, true
	}
	return 0, false
}

// AddrReg identifies one of the 16-bit address registers. Encoded as a
// single byte: A0=0, A1=1.
type AddrReg uint8

const (
	A0 AddrReg = 0
	A1 AddrReg = 1
)

func (r AddrReg) String() string {
	if r == A0 {
		return "a0"
	}
	return "a1"
}

// AddrRegByName resolves a case-insensitive register mnemonic to an AddrReg.
func AddrRegByName(name string) (AddrReg, bool) {
	switch lower(name) {
	case "a0":
		return A0, true
	case "a1":
		return A1, true
	}
	return 0, false
}

func lower(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
