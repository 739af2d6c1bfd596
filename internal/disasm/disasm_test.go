package disasm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvmproject/tvm/internal/asm"
	"github.com/tvmproject/tvm/internal/disasm"
	"github.com/tvmproject/tvm/internal/image"
)

func TestDecompileRoundTripsOps(t *testing.T) {
	src := "loopy\n1.0\n" +
		".strings\n" +
		"greet=\"hi\"\n" +
		".data\n" +
		"tbl=[[1,2],[3]]\n" +
		".ops\n" +
		"CPY D0 0\n" +
		"loop:\n" +
		"INC D0\n" +
		"PRTS greet\n" +
		"CPY D1 10\n" +
		"SUB D1 D0\n" +
		"JNE loop\n" +
		"HALT\n"

	img, _, errs := asm.Assemble(src)
	require.Empty(t, errs)

	out, err := disasm.Decompile(img)
	require.NoError(t, err)
	require.Contains(t, out, ".ops")

	reassembled, _, errs := asm.Assemble(out)
	require.Empty(t, errs)
	require.Equal(t, img.Ops, reassembled.Ops)
	require.Equal(t, img.Strings, reassembled.Strings)
	require.Equal(t, img.Data, reassembled.Data)
}

func TestDecompileUnknownOpcodeErrors(t *testing.T) {
	img := &image.Image{Name: "bad", Version: "1", Ops: []byte{0xFE}}
	_, err := disasm.Decompile(img)
	require.Error(t, err)
}

func TestDecompileOmitsEmptySections(t *testing.T) {
	src := "bare\n1.0\n.ops\nHALT\n"
	img, _, errs := asm.Assemble(src)
	require.Empty(t, errs)

	out, err := disasm.Decompile(img)
	require.NoError(t, err)
	require.NotContains(t, out, ".strings")
	require.NotContains(t, out, ".data")
}
