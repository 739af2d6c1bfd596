package proto

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tvmproject/tvm/internal/exec"
	"github.com/tvmproject/tvm/internal/hostio"
	"github.com/tvmproject/tvm/internal/runloop"
)

// State is one of the five named piped-session states of SPEC §4.G.
type State int

const (
	Idle State = iota
	AwaitingKey
	AwaitingString
	Halted
	Crashed
)

// Session drives one runloop.Piped from frames read off r and writes reply
// frames to w, implementing the state machine of SPEC §4.G. It owns no
// goroutines: HandleFrame processes exactly one host frame per call, which
// is what lets the piped run loop interleave stepping with protocol I/O
// without any synchronization.
type Session struct {
	piped *runloop.Piped
	io    *hostio.PipedIO

	r *bufio.Reader
	w *bufio.Writer

	State State
}

func NewSession(p *runloop.Piped, pio *hostio.PipedIO, r io.Reader, w io.Writer) *Session {
	return &Session{
		piped: p,
		io:    pio,
		r:     bufio.NewReader(r),
		w:     bufio.NewWriter(w),
	}
}

// HandleFrame reads and processes exactly one host->device frame, writing
// whatever device->host frames it produces. It returns a non-nil error
// when the session should stop (EOF on r, or a ProtocolError).
func (s *Session) HandleFrame() error {
	prefix, err := s.r.ReadByte()
	if err != nil {
		return err
	}

	switch prefix {
	case InStep:
		return s.step(false)
	case InStepForce:
		return s.step(true)
	case InDumpReq:
		return s.sendDump()
	case InBreakSet:
		addr, err := s.readU16()
		if err != nil {
			return err
		}
		s.piped.SetBreakpoint(addr)
		return nil
	case InBreakClear:
		addr, err := s.readU16()
		if err != nil {
			return err
		}
		s.piped.ClearBreakpoint(addr)
		return nil
	case InMemoryReq:
		return s.sendMemory()
	case InKey:
		b, err := s.r.ReadByte()
		if err != nil {
			return err
		}
		s.io.PushKey(b)
		if s.State == AwaitingKey {
			s.State = Idle
		}
		return nil
	case InString:
		n, err := s.r.ReadByte()
		if err != nil {
			return err
		}
		for i := 0; i < int(n); i++ {
			b, err := s.r.ReadByte()
			if err != nil {
				return err
			}
			s.io.PushKey(b)
		}
		if s.State == AwaitingString {
			s.State = Idle
		}
		return nil
	default:
		return fmt.Errorf("proto: unknown frame prefix %q", prefix)
	}
}

// step executes one instruction (or reports a breakpoint hit without
// executing) and flushes every side effect it produced, in the order SPEC
// §5 requires: fully flushed before the next command is read.
func (s *Session) step(ignoreBreakpoints bool) error {
	res := s.piped.Step(ignoreBreakpoints)

	if res.BreakpointHit {
		if err := s.writeFrame(OutBreakHit); err != nil {
			return err
		}
		if err := s.writeU16(s.piped.M.Dev.PC); err != nil {
			return err
		}
		return s.flushText()
	}

	if err := s.flushText(); err != nil {
		return err
	}

	var reply byte
	switch {
	case res.Err != nil:
		s.State = Crashed
		reply = OutCrashed
	case res.Outcome == exec.Halted:
		s.State = Halted
		reply = OutHalted
	case res.Outcome == exec.AwaitingKey:
		s.State = AwaitingKey
		reply = OutKeyReq
	case res.Outcome == exec.AwaitingString:
		s.State = AwaitingString
		reply = OutStringReq
	default:
		return nil // Continue: no frame, per SPEC §8 scenario 6
	}
	if err := s.writeFrame(reply); err != nil {
		return err
	}
	return s.w.Flush()
}

// flushText drains buffered stdout/stderr bytes into 'o'/'e' frames,
// chunked at maxChunk bytes each.
func (s *Session) flushText() error {
	if err := s.flushChunked(OutStdout, s.io.DrainStdout()); err != nil {
		return err
	}
	return s.flushChunked(OutStderr, s.io.DrainStderr())
}

func (s *Session) flushChunked(prefix byte, data []byte) error {
	for len(data) > 0 {
		n := len(data)
		if n > maxChunk {
			n = maxChunk
		}
		if err := s.writeFrame(prefix); err != nil {
			return err
		}
		if err := s.w.WriteByte(byte(n)); err != nil {
			return err
		}
		if _, err := s.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return s.w.Flush()
}

func (s *Session) sendDump() error {
	if err := s.writeFrame(OutDump); err != nil {
		return err
	}
	if _, err := s.w.Write(s.piped.M.Dev.CurrentDump().Bytes()); err != nil {
		return err
	}
	return s.w.Flush()
}

// sendMemory replies to a Request Memory frame with `m,len_be,bytes` for
// mem[lo..=hi], split across multiple frames when the range exceeds
// maxChunk bytes (SPEC §4.G: "multiple frames if > 255 bytes").
func (s *Session) sendMemory() error {
	lo, err := s.readU16()
	if err != nil {
		return err
	}
	hi, err := s.readU16()
	if err != nil {
		return err
	}
	var mem []byte
	for a := int(lo); a <= int(hi); a++ {
		mem = append(mem, s.piped.M.Dev.ReadByte(uint16(a)))
	}

	for {
		n := len(mem)
		if n > maxChunk {
			n = maxChunk
		}
		if err := s.writeFrame(OutMemory); err != nil {
			return err
		}
		if err := s.writeU16(uint16(n)); err != nil {
			return err
		}
		if _, err := s.w.Write(mem[:n]); err != nil {
			return err
		}
		mem = mem[n:]
		if len(mem) == 0 {
			break
		}
	}
	return s.w.Flush()
}

func (s *Session) writeFrame(prefix byte) error {
	return s.w.WriteByte(prefix)
}

func (s *Session) readU16() (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(s.r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

func (s *Session) writeU16(v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := s.w.Write(buf[:])
	return err
}
