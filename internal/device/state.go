// Package device holds the mutable state of one running machine: registers,
// memory, the call stack carved out of that same memory, open file handles,
// and the PRNG — everything the executor (internal/exec) mutates on every
// instruction and everything a dump (internal/proto) snapshots between
// instructions.
package device

import (
	"fmt"

	"github.com/tvmproject/tvm/internal/image"
)

const RAMSize = 65536

// Trap is a RuntimeTrap: a fault that unconditionally terminates execution.
// It is never recoverable by the running program itself (SPEC §7).
type Trap struct {
	Msg string
}

func (t *Trap) Error() string { return t.Msg }

func trap(format string, args ...interface{}) *Trap {
	return &Trap{Msg: fmt.Sprintf(format, args...)}
}

// Device is the complete state of one machine instance.
type Device struct {
	D        [5]byte // indexed by image.DataReg (ACC=0, D0..D3=1..4)
	A        [2]uint16
	PC       uint16
	SP       uint16
	FP       uint16
	Overflow bool

	Mem [RAMSize]byte

	Strings []byte
	Data    []byte
	Ops     []byte

	Files []*FileHandle

	rngState uint64
}

// New constructs a booted Device for the given image regions and input file
// paths (index i -> handle id i). SP and FP start at 0xFFFF, PC at 0, per
// SPEC §3 — this is exactly the state a fresh boot dump must report.
func New(ops, strings, data []byte, inputPaths []string, open FileOpener) *Device {
	d := &Device{
		SP:       0xFFFF,
		FP:       0xFFFF,
		Ops:      ops,
		Strings:  strings,
		Data:     data,
		rngState: 0x2545F4914F6CDD1D, // fixed default seed, overridden by SEED
	}
	d.Files = make([]*FileHandle, len(inputPaths))
	for i, p := range inputPaths {
		d.Files[i] = newFileHandle(p, open)
	}
	return d
}

// Reg returns the value of a data register.
func (d *Device) Reg(r image.DataReg) byte { return d.D[r] }

// SetReg sets the value of a data register.
func (d *Device) SetReg(r image.DataReg, v byte) { d.D[r] = v }

// AReg returns the value of an address register.
func (d *Device) AReg(r image.AddrReg) uint16 { return d.A[r] }

// SetAReg sets the value of an address register.
func (d *Device) SetAReg(r image.AddrReg, v uint16) { d.A[r] = v }

// SetArith writes ACC and the overflow flag together as the single compound
// update SPEC §9 requires, so no observer (including a piped dump between
// instructions) can see one updated without the other.
func (d *Device) SetArith(result int) {
	d.Overflow = result < 0 || result > 255
	d.D[image.ACC] = byte(((result % 256) + 256) % 256)
}
