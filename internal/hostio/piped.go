package hostio

import "time"

// PipedIO backs the `piped` subcommand. stdout/stderr bytes are buffered
// rather than written to a real stream — internal/proto drains them into
// `o`/`e` frames after every Step, preserving the SPEC §5 ordering
// guarantee that step N's side effects are flushed before step N+1 is
// read. Keyboard/string bytes are injected by InputKey/InputString frames
// instead of read from a real tty.
type PipedIO struct {
	*FileBackend

	stdout []byte
	stderr []byte

	keyQueue []byte
}

func NewPipedIO() *PipedIO {
	return &PipedIO{FileBackend: newFileBackend()}
}

func (p *PipedIO) StdoutWrite(b byte) { p.stdout = append(p.stdout, b) }
func (p *PipedIO) StderrWrite(b byte) { p.stderr = append(p.stderr, b) }

// DrainStdout/DrainStderr hand the buffered bytes to the caller and clear
// the buffer.
func (p *PipedIO) DrainStdout() []byte { b := p.stdout; p.stdout = nil; return b }
func (p *PipedIO) DrainStderr() []byte { b := p.stderr; p.stderr = nil; return b }

// PushKey is called by internal/proto when an `Input Key`/`Input String`
// frame arrives; the bytes become available to the next KbTryRead call.
func (p *PipedIO) PushKey(b byte) { p.keyQueue = append(p.keyQueue, b) }

func (p *PipedIO) KbReady() bool { return len(p.keyQueue) > 0 }

func (p *PipedIO) KbTryRead() (byte, bool) {
	if len(p.keyQueue) == 0 {
		return 0, false
	}
	b := p.keyQueue[0]
	p.keyQueue = p.keyQueue[1:]
	return b, true
}

func (p *PipedIO) Clock() (byte, byte, byte) {
	now := time.Now()
	return byte(now.Second()), byte(now.Minute()), byte(now.Hour())
}
