package device

import (
	"fmt"

	"github.com/tvmproject/tvm/internal/image"
)

// Dump is the register snapshot shared by DEBUG, crash reports, and the
// piped protocol's `d` frame (SPEC §6: "object with keys pc, a0, a1, sp,
// fp, acc, d0, d1, d2, d3, overflow").
type Dump struct {
	PC, A0, A1, SP, FP   uint16
	ACC, D0, D1, D2, D3  byte
	Overflow             bool
}

func (d *Device) CurrentDump() Dump {
	return Dump{
		PC: d.PC, A0: d.A[image.A0], A1: d.A[image.A1], SP: d.SP, FP: d.FP,
		ACC: d.D[image.ACC], D0: d.D[image.D0], D1: d.D[image.D1],
		D2: d.D[image.D2], D3: d.D[image.D3],
		Overflow: d.Overflow,
	}
}

// Line renders the 16-byte dump in the space-separated hex-group text form
// used by DEBUG and by a direct-mode crash report (SPEC §6): PC A0 A1 SP FP
// as 4 hex digits each, then ACC D0 D1 D2 D3 Overflow as 2 hex digits each.
func (dump Dump) Line() string {
	ov := byte(0)
	if dump.Overflow {
		ov = 1
	}
	return fmt.Sprintf("%04X %04X %04X %04X %04X %02X %02X %02X %02X %02X %02X",
		dump.PC, dump.A0, dump.A1, dump.SP, dump.FP,
		dump.ACC, dump.D0, dump.D1, dump.D2, dump.D3, ov)
}

// Bytes renders the wire-compact 16-byte binary dump form.
func (dump Dump) Bytes() []byte {
	b := make([]byte, 16)
	b[0], b[1] = byte(dump.PC>>8), byte(dump.PC)
	b[2], b[3] = byte(dump.A0>>8), byte(dump.A0)
	b[4], b[5] = byte(dump.A1>>8), byte(dump.A1)
	b[6], b[7] = byte(dump.SP>>8), byte(dump.SP)
	b[8], b[9] = byte(dump.FP>>8), byte(dump.FP)
	b[10] = dump.ACC
	b[11] = dump.D0
	b[12] = dump.D1
	b[13] = dump.D2
	b[14] = dump.D3
	if dump.Overflow {
		b[15] = 1
	}
	return b
}
