package device_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/image"
)

func TestNewBootsSPFPAtFFFF(t *testing.T) {
	d := device.New(nil, nil, nil, nil, nil)
	require.Equal(t, uint16(0xFFFF), d.SP)
	require.Equal(t, uint16(0xFFFF), d.FP)
	require.Equal(t, uint16(0), d.PC)
}

func TestPushPopByteRoundTrip(t *testing.T) {
	d := device.New(nil, nil, nil, nil, nil)
	require.NoError(t, d.PushByte(0x42))
	v, err := d.PopByte()
	require.NoError(t, err)
	require.Equal(t, byte(0x42), v)
}

func TestPushWordHighByteAtHigherAddress(t *testing.T) {
	d := device.New(nil, nil, nil, nil, nil)
	require.NoError(t, d.PushWord(0xABCD))
	require.Equal(t, byte(0xAB), d.Mem[d.SP+2])
	require.Equal(t, byte(0xCD), d.Mem[d.SP+1])

	v, err := d.PopWord()
	require.NoError(t, err)
	require.Equal(t, uint16(0xABCD), v)
}

func TestPopByteUnderflowTraps(t *testing.T) {
	d := device.New(nil, nil, nil, nil, nil)
	_, err := d.PopByte()
	require.Error(t, err)
}

func TestSetArithWritesACCAndOverflowTogether(t *testing.T) {
	d := device.New(nil, nil, nil, nil, nil)
	d.SetArith(300)
	require.True(t, d.Overflow)
	require.Equal(t, byte(300%256), d.Reg(image.ACC))

	d.SetArith(10)
	require.False(t, d.Overflow)
	require.Equal(t, byte(10), d.Reg(image.ACC))
}

func TestCurrentDumpReflectsState(t *testing.T) {
	d := device.New(nil, nil, nil, nil, nil)
	d.SetReg(image.D0, 7)
	dump := d.CurrentDump()
	require.Equal(t, byte(7), dump.D0)
	require.Equal(t, uint16(0xFFFF), dump.SP)
}

func TestDumpBytesAndLineAgree(t *testing.T) {
	d := device.New(nil, nil, nil, nil, nil)
	d.SetReg(image.ACC, 1)
	d.Overflow = true
	dump := d.CurrentDump()

	b := dump.Bytes()
	require.Len(t, b, 16)
	require.Equal(t, byte(1), b[15])
	require.Contains(t, dump.Line(), "01")
}

func TestSeedIsDeterministic(t *testing.T) {
	d1 := device.New(nil, nil, nil, nil, nil)
	d2 := device.New(nil, nil, nil, nil, nil)
	d1.Seed(5)
	d2.Seed(5)
	for i := 0; i < 10; i++ {
		require.Equal(t, d1.Rand(), d2.Rand())
	}
}

func TestDataByteOutOfRangeTraps(t *testing.T) {
	d := device.New(nil, nil, []byte{1, 2}, nil, nil)
	_, err := d.DataByte(5)
	require.Error(t, err)
}
