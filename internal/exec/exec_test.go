package exec_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvmproject/tvm/internal/asm"
	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/exec"
	"github.com/tvmproject/tvm/internal/image"
)

// captureIO is a minimal hostio.IO for exercising the executor without a
// real terminal or filesystem: stdout/stderr go to in-memory buffers, and
// the keyboard/file surface is never touched by the scenarios below.
type captureIO struct {
	stdout, stderr bytes.Buffer
}

func (c *captureIO) StdoutWrite(b byte) { c.stdout.WriteByte(b) }
func (c *captureIO) StderrWrite(b byte) { c.stderr.WriteByte(b) }
func (c *captureIO) KbReady() bool      { return false }
func (c *captureIO) KbTryRead() (byte, bool) { return 0, false }
func (c *captureIO) FileOpen(h *device.FileHandle) error                { return nil }
func (c *captureIO) FileRead(h *device.FileHandle, n int) ([]byte, error) { return nil, nil }
func (c *captureIO) FileWrite(h *device.FileHandle, data []byte) (int, error) { return 0, nil }
func (c *captureIO) FileSkip(h *device.FileHandle, n int) (int, error)   { return 0, nil }
func (c *captureIO) FileSeek(h *device.FileHandle, pos uint32) error     { return nil }
func (c *captureIO) FileSize(h *device.FileHandle) (uint32, error)       { return 0, nil }
func (c *captureIO) Clock() (byte, byte, byte)                           { return 0, 0, 0 }

// runProgram assembles src and runs it to completion (or trap), returning
// stdout and the final device state.
func runProgram(t *testing.T, src string) (string, *device.Device, error) {
	t.Helper()
	img, _, errs := asm.Assemble(src)
	require.Empty(t, errs)

	io := &captureIO{}
	dev := device.New(img.Ops, img.Strings, img.Data, nil, nil)
	m := exec.New(dev, io)

	for {
		outcome, err := m.Step()
		if err != nil {
			return io.stdout.String(), dev, err
		}
		if outcome == exec.Halted {
			return io.stdout.String(), dev, nil
		}
	}
}

func TestAddLeavesDstUnchangedWritesOnlyACC(t *testing.T) {
	src := "prog\n1.0\n.ops\nCPY D0 1\nCPY D1 2\nADD D0 D1\nPRT ACC\nHALT\n"
	out, dev, err := runProgram(t, src)
	require.NoError(t, err)
	require.Equal(t, "3", out)
	require.Equal(t, byte(1), dev.Reg(image.D0))
}

func TestAddOverflowWraps(t *testing.T) {
	src := "prog\n1.0\n.ops\nCPY D0 200\nADD D0 100\nPRT ACC\nHALT\n"
	out, dev, err := runProgram(t, src)
	require.NoError(t, err)
	require.Equal(t, "44", out)
	require.True(t, dev.Overflow)
}

func TestIncAddrRegIs16BitAndHasNoACCMirror(t *testing.T) {
	src := "prog\n1.0\n.ops\nCPY A0 @65535\nINC A0\nHALT\n"
	_, dev, err := runProgram(t, src)
	require.NoError(t, err)
	require.Equal(t, uint16(0), dev.AReg(image.A0))
	require.True(t, dev.Overflow)
	require.Equal(t, byte(0), dev.Reg(image.ACC))
}

func TestCallRetNetZeroStackReturnsAfterCall(t *testing.T) {
	src := "prog\n1.0\n.ops\n" +
		"CALL sub\n" +
		"PRT 9\n" +
		"HALT\n" +
		"sub:\n" +
		"PRT 1\n" +
		"RET\n"
	out, _, err := runProgram(t, src)
	require.NoError(t, err)
	require.Equal(t, "19", out)
}

func TestHaltStopsExecutionAtExactInstruction(t *testing.T) {
	src := "prog\n1.0\n.ops\nPRT 1\nHALT\nPRT 2\n"
	out, _, err := runProgram(t, src)
	require.NoError(t, err)
	require.Equal(t, "1", out)
}

func TestStackPushPopOrderIsLIFO(t *testing.T) {
	src := "prog\n1.0\n.ops\n" +
		"CPY D0 1\nPUSH D0\n" +
		"CPY D0 2\nPUSH D0\n" +
		"CPY D0 3\nPUSH D0\n" +
		"POP D1\nPRT D1\n" +
		"POP D1\nPRT D1\n" +
		"POP D1\nPRT D1\n" +
		"HALT\n"
	out, _, err := runProgram(t, src)
	require.NoError(t, err)
	require.Equal(t, "321", out)
}

// CALL pushes a 4-byte return-address/FP header (FP+1..FP+4), so the
// caller's own pushed argument lands at FP+5, not FP+1.
func TestArgReadsFrameWithoutTouchingStack(t *testing.T) {
	src := "prog\n1.0\n.ops\n" +
		"CPY D0 7\nPUSH D0\n" +
		"CALL sub\n" +
		"HALT\n" +
		"sub:\n" +
		"ARG D1 5\nPRT D1\n" +
		"ARG D1 5\nPRT D1\n" +
		"RET\n"
	out, _, err := runProgram(t, src)
	require.NoError(t, err)
	require.Equal(t, "77", out)
}

// A nested CALL must restore the outer frame's FP on RET, so the outer
// frame's ARG reads still resolve correctly after the inner call returns.
func TestNestedCallRestoresCallerFrameOnReturn(t *testing.T) {
	src := "prog\n1.0\n.ops\n" +
		"CPY D0 9\nPUSH D0\n" +
		"CALL outer\n" +
		"HALT\n" +
		"outer:\n" +
		"CALL inner\n" +
		"ARG D1 5\nPRT D1\n" +
		"RET\n" +
		"inner:\n" +
		"RET\n"
	out, _, err := runProgram(t, src)
	require.NoError(t, err)
	require.Equal(t, "9", out)
}

func TestBitwiseOpsWriteOnlyACC(t *testing.T) {
	src := "prog\n1.0\n.ops\n" +
		"CPY D0 xF0\nCPY D1 x0F\n" +
		"AND D0 D1\nPRT ACC\n" +
		"OR D0 D1\nPRT ACC\n" +
		"XOR D0 D0\nPRT ACC\n" +
		"HALT\n"
	out, dev, err := runProgram(t, src)
	require.NoError(t, err)
	require.Equal(t, "02550", out)
	require.Equal(t, byte(0xF0), dev.Reg(image.D0))
}

func TestCmpWritesEqualLesserGreater(t *testing.T) {
	src := "prog\n1.0\n.ops\n" +
		"CPY D0 5\nCPY D1 5\nCMP D0 D1\nPRT ACC\n" +
		"CPY D1 6\nCMP D0 D1\nPRT ACC\n" +
		"CPY D1 4\nCMP D0 D1\nPRT ACC\n" +
		"HALT\n"
	out, _, err := runProgram(t, src)
	require.NoError(t, err)
	require.Equal(t, "012", out)
}
