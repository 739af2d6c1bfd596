package proto_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvmproject/tvm/internal/asm"
	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/exec"
	"github.com/tvmproject/tvm/internal/hostio"
	"github.com/tvmproject/tvm/internal/image"
	"github.com/tvmproject/tvm/internal/proto"
	"github.com/tvmproject/tvm/internal/runloop"
)

func newSession(t *testing.T, src string) (*proto.Session, *runloop.Piped, *device.Device, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	img, _, errs := asm.Assemble(src)
	require.Empty(t, errs)

	pio := hostio.NewPipedIO()
	dev := device.New(img.Ops, img.Strings, img.Data, nil, nil)
	m := exec.New(dev, pio)
	p := runloop.NewPiped(m)

	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	return proto.NewSession(p, pio, in, out), p, dev, in, out
}

// A step that ends in Continue sends no status frame of its own: the only
// frame here is the 'o' frame carrying PRT's output.
func TestContinueStepSendsOnlyStdoutFrame(t *testing.T) {
	sess, _, _, in, out := newSession(t, "prog\n1.0\n.ops\nPRT 1\nHALT\n")
	in.WriteByte(proto.InStep)
	require.NoError(t, sess.HandleFrame())
	require.Equal(t, []byte{'o', 1, '1'}, out.Bytes())
}

func TestStepToHaltSendsHaltedFrame(t *testing.T) {
	sess, _, _, in, out := newSession(t, "prog\n1.0\n.ops\nHALT\n")
	in.WriteByte(proto.InStep)
	require.NoError(t, sess.HandleFrame())
	require.Equal(t, []byte{proto.OutHalted}, out.Bytes())
}

func TestDumpFrameIs16Bytes(t *testing.T) {
	sess, _, _, in, out := newSession(t, "prog\n1.0\n.ops\nHALT\n")
	in.WriteByte(proto.InDumpReq)
	require.NoError(t, sess.HandleFrame())
	require.Equal(t, byte(proto.OutDump), out.Bytes()[0])
	require.Len(t, out.Bytes()[1:], 16)
}

func TestBreakpointHitSkipsExecutionAndReportsPC(t *testing.T) {
	sess, p, dev, in, out := newSession(t, "prog\n1.0\n.ops\nPRT 1\nHALT\n")
	p.SetBreakpoint(0)
	in.WriteByte(proto.InStep)

	require.NoError(t, sess.HandleFrame())
	b := out.Bytes()
	require.Equal(t, byte(proto.OutBreakHit), b[0])
	require.Equal(t, uint16(0), binary.BigEndian.Uint16(b[1:3]))
	require.Equal(t, uint16(0), dev.PC)
}

func TestStepForceIgnoresBreakpoint(t *testing.T) {
	sess, p, _, in, out := newSession(t, "prog\n1.0\n.ops\nHALT\n")
	p.SetBreakpoint(0)
	in.WriteByte(proto.InStepForce)

	require.NoError(t, sess.HandleFrame())
	require.Equal(t, []byte{proto.OutHalted}, out.Bytes())
}

func TestMemoryRequestReturnsInclusiveRange(t *testing.T) {
	sess, _, dev, in, out := newSession(t, "prog\n1.0\n.ops\nHALT\n")
	dev.WriteByte(10, 0xAA)
	dev.WriteByte(11, 0xBB)

	in.WriteByte(proto.InMemoryReq)
	binary.Write(in, binary.BigEndian, uint16(10))
	binary.Write(in, binary.BigEndian, uint16(11))

	require.NoError(t, sess.HandleFrame())
	b := out.Bytes()
	require.Equal(t, byte(proto.OutMemory), b[0])
	require.Equal(t, uint16(2), binary.BigEndian.Uint16(b[1:3]))
	require.Equal(t, []byte{0xAA, 0xBB}, b[3:5])
}

func TestMemoryRequestChunksPastTwoFiveFive(t *testing.T) {
	sess, _, dev, in, out := newSession(t, "prog\n1.0\n.ops\nHALT\n")
	for a := 0; a < 300; a++ {
		dev.WriteByte(uint16(a), byte(a))
	}

	in.WriteByte(proto.InMemoryReq)
	binary.Write(in, binary.BigEndian, uint16(0))
	binary.Write(in, binary.BigEndian, uint16(299))

	require.NoError(t, sess.HandleFrame())
	b := out.Bytes()

	require.Equal(t, byte(proto.OutMemory), b[0])
	first := binary.BigEndian.Uint16(b[1:3])
	require.Equal(t, uint16(255), first)
	firstChunk := b[3 : 3+255]
	require.Equal(t, byte(0), firstChunk[0])
	require.Equal(t, byte(254), firstChunk[254])

	rest := b[3+255:]
	require.Equal(t, byte(proto.OutMemory), rest[0])
	second := binary.BigEndian.Uint16(rest[1:3])
	require.Equal(t, uint16(45), second)
	secondChunk := rest[3 : 3+45]
	require.Equal(t, byte(255), secondChunk[0])
	require.Equal(t, byte(43), secondChunk[44])
}

func TestKeyFrameFeedsBlockedRCHR(t *testing.T) {
	sess, _, dev, in, out := newSession(t, "prog\n1.0\n.ops\nRCHR D0\nHALT\n")

	in.WriteByte(proto.InStep)
	require.NoError(t, sess.HandleFrame())
	require.Equal(t, []byte{proto.OutKeyReq}, out.Bytes())

	in.WriteByte(proto.InKey)
	in.WriteByte('Z')
	out.Reset()
	require.NoError(t, sess.HandleFrame())
	require.Empty(t, out.Bytes())

	in.WriteByte(proto.InStep)
	out.Reset()
	require.NoError(t, sess.HandleFrame())
	require.Equal(t, byte('Z'), dev.Reg(image.D0))
}

func TestSetAndClearBreakpointAreIdempotent(t *testing.T) {
	sess, p, _, in, _ := newSession(t, "prog\n1.0\n.ops\nHALT\n")

	in.WriteByte(proto.InBreakSet)
	binary.Write(in, binary.BigEndian, uint16(3))
	require.NoError(t, sess.HandleFrame())
	require.True(t, p.HasBreakpoint(3))

	in.WriteByte(proto.InBreakSet)
	binary.Write(in, binary.BigEndian, uint16(3))
	require.NoError(t, sess.HandleFrame())
	require.True(t, p.HasBreakpoint(3))

	in.WriteByte(proto.InBreakClear)
	binary.Write(in, binary.BigEndian, uint16(3))
	require.NoError(t, sess.HandleFrame())
	require.False(t, p.HasBreakpoint(3))

	in.WriteByte(proto.InBreakClear)
	binary.Write(in, binary.BigEndian, uint16(3))
	require.NoError(t, sess.HandleFrame())
	require.False(t, p.HasBreakpoint(3))
}
