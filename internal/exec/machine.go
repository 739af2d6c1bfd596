package exec

import (
	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/hostio"
	"github.com/tvmproject/tvm/internal/image"
)

// Outcome reports what a single Step actually did, so both run loops
// (internal/runloop) can react the same way regardless of mode.
type Outcome int

const (
	Continue       Outcome = iota // the instruction completed; PC now points at the next one
	Halted                        // HALT executed, or PC ran off the end of ops
	AwaitingKey                   // RCHR blocked on an empty keyboard buffer
	AwaitingString                // RSTR is mid-read and the keyboard buffer ran dry
)

const (
	pendingNone = 0
	pendingRCHR = 1
	pendingRSTR = 2
)

type pendingState struct {
	kind  int
	reg   image.DataReg // RCHR destination
	addr  uint16        // RSTR destination base address
	count int           // RSTR bytes written so far
}

// Machine couples a Device with a host I/O surface and drives one
// fetch-decode-execute step at a time.
type Machine struct {
	Dev *device.Device
	IO  hostio.IO

	pending pendingState
}

func New(dev *device.Device, io hostio.IO) *Machine {
	return &Machine{Dev: dev, IO: io}
}

type handlerFunc func(m *Machine, ops []operand) (Outcome, error)

// Step performs exactly one fetch-execute step (or resumes a suspended
// RCHR/RSTR), per SPEC §4.D/§4.F.
func (m *Machine) Step() (Outcome, error) {
	if m.pending.kind != pendingNone {
		return m.resumePending()
	}

	// Falling through to exactly the end of ops halts cleanly; a PC past
	// the end (a jump out of the region) traps in OpByte below.
	if int(m.Dev.PC) == len(m.Dev.Ops) {
		return Halted, nil
	}

	opByte, err := m.Dev.OpByte(m.Dev.PC)
	if err != nil {
		return Halted, err
	}
	m.Dev.PC++

	shape, ops, err := m.decode(image.Opcode(opByte))
	if err != nil {
		return Halted, err
	}

	h, ok := handlers[shape.Op]
	if !ok {
		return Halted, &device.Trap{Msg: "no executor registered for opcode " + shape.Mnemonic}
	}
	return h(m, ops)
}

var handlers = map[image.Opcode]handlerFunc{}

func register(op image.Opcode, fn handlerFunc) {
	handlers[op] = fn
}
