package hostio_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/hostio"
)

func TestPipedIOKeyQueueFIFO(t *testing.T) {
	p := hostio.NewPipedIO()
	require.False(t, p.KbReady())

	p.PushKey('a')
	p.PushKey('b')
	require.True(t, p.KbReady())

	b, ok := p.KbTryRead()
	require.True(t, ok)
	require.Equal(t, byte('a'), b)

	b, ok = p.KbTryRead()
	require.True(t, ok)
	require.Equal(t, byte('b'), b)

	_, ok = p.KbTryRead()
	require.False(t, ok)
}

func TestPipedIODrainClearsBuffer(t *testing.T) {
	p := hostio.NewPipedIO()
	p.StdoutWrite('h')
	p.StdoutWrite('i')
	p.StderrWrite('!')

	require.Equal(t, []byte("hi"), p.DrainStdout())
	require.Empty(t, p.DrainStdout())
	require.Equal(t, []byte("!"), p.DrainStderr())
}

func TestFileBackendReadWriteSeekRoundTrip(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tvmfile")
	require.NoError(t, err)
	path := f.Name()
	require.NoError(t, f.Close())

	p := hostio.NewPipedIO()
	h := &device.FileHandle{Path: path}

	n, err := p.FileWrite(h, []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	require.NoError(t, p.FileSeek(h, 0))
	data, err := p.FileRead(h, 5)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	size, err := p.FileSize(h)
	require.NoError(t, err)
	require.Equal(t, uint32(5), size)
}

func TestFileBackendSkipClampsToRemaining(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tvmfile")
	require.NoError(t, err)
	path := f.Name()
	_, err = f.WriteString("abc")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	p := hostio.NewPipedIO()
	h := &device.FileHandle{Path: path}

	skipped, err := p.FileSkip(h, 100)
	require.NoError(t, err)
	require.Equal(t, 3, skipped)

	skipped, err = p.FileSkip(h, 5)
	require.NoError(t, err)
	require.Equal(t, 0, skipped)
}
