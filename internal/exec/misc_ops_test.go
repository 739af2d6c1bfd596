package exec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvmproject/tvm/internal/asm"
	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/exec"
	"github.com/tvmproject/tvm/internal/image"
)

func TestSeedRegMakesRandDeterministic(t *testing.T) {
	src := "prog\n1.0\n.ops\nCPY D0 5\nSEED D0\nRAND D1\nPRT D1\nHALT\n"
	out1, _, err := runProgram(t, src)
	require.NoError(t, err)
	out2, _, err := runProgram(t, src)
	require.NoError(t, err)
	require.Equal(t, out1, out2)
}

func TestSeedValAndSeedRegAgree(t *testing.T) {
	src1 := "prog\n1.0\n.ops\nSEED 9\nRAND D0\nPRT D0\nHALT\n"
	src2 := "prog\n1.0\n.ops\nCPY D0 9\nSEED D0\nRAND D1\nPRT D1\nHALT\n"
	out1, _, err := runProgram(t, src1)
	require.NoError(t, err)
	out2, _, err := runProgram(t, src2)
	require.NoError(t, err)
	require.Equal(t, out1, out2)
}

func TestTimeOpPopulatesD0D1D2(t *testing.T) {
	img, _, errs := asm.Assemble("prog\n1.0\n.ops\nTIME\nHALT\n")
	require.Empty(t, errs)

	io := &captureIO{}
	dev := device.New(img.Ops, img.Strings, img.Data, nil, nil)
	m := exec.New(dev, io)
	for {
		outcome, err := m.Step()
		require.NoError(t, err)
		if outcome == exec.Halted {
			break
		}
	}
	require.Less(t, dev.Reg(image.D0), byte(60))
	require.Less(t, dev.Reg(image.D1), byte(60))
	require.Less(t, dev.Reg(image.D2), byte(24))
}

func TestNopAdvancesWithoutSideEffects(t *testing.T) {
	src := "prog\n1.0\n.ops\nNOP\nHALT\n"
	out, _, err := runProgram(t, src)
	require.NoError(t, err)
	require.Equal(t, "", out)
}
