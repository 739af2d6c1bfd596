package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateInputPathRejectsMissingFile(t *testing.T) {
	err := validateInputPath(filepath.Join(t.TempDir(), "nope.dat"))
	require.Error(t, err)
}

func TestValidateInputPathAcceptsExistingFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "present")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, validateInputPath(f.Name()))
}

func TestLoadTapeRejectsGarbage(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "garbage")
	require.NoError(t, err)
	_, err = f.WriteString("not a tape")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = loadTape(f.Name())
	require.Error(t, err)
}

func TestAssembleThenLoadTapeRoundTrips(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "prog.basm")
	require.NoError(t, os.WriteFile(srcPath, []byte("prog\n1.0\n.ops\nPRT 1\nHALT\n"), 0o644))

	require.NoError(t, assembleCmd([]string{srcPath}))

	tapePath := filepath.Join(dir, "prog.tape")
	img, err := loadTape(tapePath)
	require.NoError(t, err)
	require.Equal(t, "prog", img.Name)
}
