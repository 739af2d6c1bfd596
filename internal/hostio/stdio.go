package hostio

import (
	"os"
	"time"

	"github.com/tvmproject/tvm/internal/terminal"
)

// StdIO backs the direct-mode run loop (`tvm run`, `tvm debug`): real
// stdout/stderr, a raw-mode keyboard, real files opened lazily by handle.
type StdIO struct {
	*FileBackend
	Out *os.File
	Err *os.File
	Kb  *terminal.Keyboard
}

// NewStdIO constructs a StdIO. kb may be nil when stdin is not a terminal
// worth putting in raw mode (e.g. piped test harnesses using direct mode);
// KbReady/KbTryRead then always report "nothing available".
func NewStdIO(kb *terminal.Keyboard) *StdIO {
	return &StdIO{FileBackend: newFileBackend(), Out: os.Stdout, Err: os.Stderr, Kb: kb}
}

func (s *StdIO) StdoutWrite(b byte) { s.Out.Write([]byte{b}) }
func (s *StdIO) StderrWrite(b byte) { s.Err.Write([]byte{b}) }

func (s *StdIO) KbReady() bool {
	if s.Kb == nil {
		return false
	}
	return s.Kb.Ready()
}

func (s *StdIO) KbTryRead() (byte, bool) {
	if s.Kb == nil || !s.Kb.Ready() {
		return 0, false
	}
	return s.Kb.ReadBlocking(), true // Ready() already guaranteed a byte is queued
}

func (s *StdIO) Clock() (byte, byte, byte) {
	now := time.Now()
	return byte(now.Second()), byte(now.Minute()), byte(now.Hour())
}
