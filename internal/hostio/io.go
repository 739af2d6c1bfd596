// Package hostio is the abstract host I/O surface of SPEC §4.E: the only
// door the executor has to the outside world. Two implementations exist:
// StdIO (real stdout/stderr/terminal/files/clock, for the `run`/`debug`
// subcommands) and PipedIO (keyboard/string bytes are injected by the piped
// protocol instead of read from a real tty, for the `piped` subcommand).
package hostio

import "github.com/tvmproject/tvm/internal/device"

// IO is the host I/O surface the executor drives. All blocking-shaped calls
// are actually non-blocking "try" calls; suspension is modeled at the
// executor level (internal/exec) via pending-operation state, per SPEC §5's
// single-threaded cooperative model.
type IO interface {
	StdoutWrite(b byte)
	StderrWrite(b byte)

	KbReady() bool
	// KbTryRead returns the next buffered key and true, or (0, false) if
	// none is currently available.
	KbTryRead() (byte, bool)

	FileOpen(h *device.FileHandle) error
	FileRead(h *device.FileHandle, n int) ([]byte, error)
	FileWrite(h *device.FileHandle, data []byte) (int, error)
	FileSkip(h *device.FileHandle, n int) (int, error)
	FileSeek(h *device.FileHandle, pos uint32) error
	FileSize(h *device.FileHandle) (uint32, error)

	// Clock reports the local wall-clock seconds, minutes, hours.
	Clock() (s, m, h byte)
}
