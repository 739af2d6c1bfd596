package debuginfo_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvmproject/tvm/internal/debuginfo"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	m := debuginfo.NewModel()
	m.AddOp(0, 3, "PRT 1", "prt 1")
	m.AddOp(2, 4, "HALT", "halt")
	m.AddString(0, "greet", 2, `greet="hi"`)
	m.AddLabel(2, "done", 4, "done:")

	var buf bytes.Buffer
	require.NoError(t, debuginfo.Save(&buf, m))

	got, err := debuginfo.Load(&buf)
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestResolveFindsEnclosingInstruction(t *testing.T) {
	m := debuginfo.NewModel()
	m.AddOp(0, 1, "CPY D0 1", "cpy d0 1")
	m.AddOp(3, 2, "INC D0", "inc d0")
	m.AddOp(4, 3, "HALT", "halt")

	line, src, ok := m.Resolve(3)
	require.True(t, ok)
	require.Equal(t, 2, line)
	require.Equal(t, "INC D0", src)

	// a trap mid-instruction (truncated operand) still resolves to the
	// instruction it occurred within, not the one after it.
	line, _, ok = m.Resolve(1)
	require.True(t, ok)
	require.Equal(t, 1, line)
}

func TestResolveEmptyModel(t *testing.T) {
	m := debuginfo.NewModel()
	_, _, ok := m.Resolve(0)
	require.False(t, ok)
}

func TestResolveBeforeFirstOp(t *testing.T) {
	m := debuginfo.NewModel()
	m.AddOp(5, 1, "HALT", "halt")
	_, _, ok := m.Resolve(2)
	require.False(t, ok)
}
