package image_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvmproject/tvm/internal/image"
)

func TestTapeRoundTrip(t *testing.T) {
	img := &image.Image{
		Name:    "prog",
		Version: "1.0",
		Ops:     []byte{1, 2, 3},
		Strings: []byte{2, 'h', 'i'},
		Data:    []byte{0},
	}
	enc, err := img.Encode()
	require.NoError(t, err)

	got, err := image.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, img, got)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := image.Decode([]byte{0, 0, 0, 0})
	require.Error(t, err)
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	img := &image.Image{Name: "p", Version: "1"}
	enc, err := img.Encode()
	require.NoError(t, err)
	enc = append(enc, 0xFF)
	_, err = image.Decode(enc)
	require.Error(t, err)
}

func TestHandleEncodeDecodeRoundTrip(t *testing.T) {
	h := image.Handle{IsReg: true, Val: byte(image.D2)}
	enc := h.Encode()
	got := image.DecodeHandle(enc[:])
	require.Equal(t, h, got)

	regs := [5]byte{0, 0, 0, 7, 0}
	require.Equal(t, byte(7), got.Resolve(regs))
}

func TestHandleLiteralResolve(t *testing.T) {
	h := image.Handle{IsReg: false, Val: 42}
	require.Equal(t, byte(42), h.Resolve([5]byte{}))
}

func TestPackAndReadString(t *testing.T) {
	blob, err := image.PackString("hi")
	require.NoError(t, err)
	s, err := image.ReadString(blob, 0)
	require.NoError(t, err)
	require.Equal(t, "hi", s)
}

func TestReadStringOutOfRange(t *testing.T) {
	_, err := image.ReadString([]byte{1, 'x'}, 5)
	require.Error(t, err)
}

func TestPackTableAndLDOffset(t *testing.T) {
	blob, err := image.PackTable([][]byte{{10, 20}, {30}})
	require.NoError(t, err)

	off, err := image.LDOffset(blob, 0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, uint16(0), off)

	off, err = image.LDOffset(blob, 0, 1, 1)
	require.NoError(t, err)
	require.Equal(t, byte(20), blob[off])

	n, err := image.LENValue(blob, 0, 0)
	require.NoError(t, err)
	require.Equal(t, byte(2), n)

	n, err = image.LENValue(blob, 0, 1)
	require.NoError(t, err)
	require.Equal(t, byte(2), n)
}

func TestRegisterNamesRoundTrip(t *testing.T) {
	r, ok := image.DataRegByName("D2")
	require.True(t, ok)
	require.Equal(t, image.D2, r)
	require.Equal(t, "d2", r.String())

	a, ok := image.AddrRegByName("a1")
	require.True(t, ok)
	require.Equal(t, image.A1, a)
}

func TestShapesHaveUniqueOpcodes(t *testing.T) {
	seen := map[image.Opcode]bool{}
	for _, s := range image.Shapes {
		require.False(t, seen[s.Op], "duplicate opcode %v", s.Op)
		seen[s.Op] = true
	}
}
