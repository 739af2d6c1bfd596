package exec_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvmproject/tvm/internal/asm"
	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/exec"
	"github.com/tvmproject/tvm/internal/hostio"
	"github.com/tvmproject/tvm/internal/image"
)

func TestFopenReportsSizeAcrossFourRegisters(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tvmfile")
	require.NoError(t, err)
	_, err = f.WriteString("hello")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	img, _, errs := asm.Assemble("prog\n1.0\n.ops\nFOPEN 0\nHALT\n")
	require.Empty(t, errs)

	io := hostio.NewPipedIO()
	dev := device.New(img.Ops, img.Strings, img.Data, []string{f.Name()}, nil)
	m := exec.New(dev, io)
	for {
		outcome, err := m.Step()
		require.NoError(t, err)
		if outcome == exec.Halted {
			break
		}
	}
	require.Equal(t, byte(5), dev.Reg(image.D0))
	require.Equal(t, byte(0), dev.Reg(image.D1))
}

func TestFilerReadsIntoMemoryAndReportsCountInACC(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tvmfile")
	require.NoError(t, err)
	_, err = f.WriteString("hi!")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	img, _, errs := asm.Assemble("prog\n1.0\n.ops\nFOPEN 0\nCPY ACC 3\nFILER 0 @100\nHALT\n")
	require.Empty(t, errs)

	io := hostio.NewPipedIO()
	dev := device.New(img.Ops, img.Strings, img.Data, []string{f.Name()}, nil)
	m := exec.New(dev, io)
	for {
		outcome, err := m.Step()
		require.NoError(t, err)
		if outcome == exec.Halted {
			break
		}
	}
	require.Equal(t, byte(3), dev.Reg(image.ACC))
	require.Equal(t, []byte("hi!"), []byte{dev.ReadByte(100), dev.ReadByte(101), dev.ReadByte(102)})
}

func TestFskipClampsAtEOF(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tvmfile")
	require.NoError(t, err)
	_, err = f.WriteString("ab")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	img, _, errs := asm.Assemble("prog\n1.0\n.ops\nFOPEN 0\nFSKIP 0 99\nHALT\n")
	require.Empty(t, errs)

	io := hostio.NewPipedIO()
	dev := device.New(img.Ops, img.Strings, img.Data, []string{f.Name()}, nil)
	m := exec.New(dev, io)
	for {
		outcome, err := m.Step()
		require.NoError(t, err)
		if outcome == exec.Halted {
			break
		}
	}
	require.Equal(t, byte(2), dev.Reg(image.ACC))
}
