package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreprocessNoOpWithoutPragma(t *testing.T) {
	src := "prog\n1.0\n.ops\nHALT\n"
	out, err := Preprocess(src, "/nonexistent")
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestPreprocessSplicesEmittedLines(t *testing.T) {
	dir := t.TempDir()
	script := "for i=0,2 do emit('const K'..i..' '..i) end"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gen.lua"), []byte(script), 0o644))

	src := "prog\n1.0\n.ops\n#lua \"gen.lua\"\nHALT\n"
	out, err := Preprocess(src, dir)
	require.NoError(t, err)
	require.Contains(t, out, "const K0 0")
	require.Contains(t, out, "const K1 1")
	require.Contains(t, out, "const K2 2")
	require.Contains(t, out, "HALT")
}

func TestPreprocessMalformedPragma(t *testing.T) {
	src := "prog\n1.0\n.ops\n#lua gen.lua\nHALT\n"
	_, err := Preprocess(src, t.TempDir())
	require.Error(t, err)
}
