package hostio

import (
	"io"
	"os"

	"github.com/tvmproject/tvm/internal/device"
)

// FileBackend implements the file_* methods of IO against real os.Files,
// shared by StdIO and PipedIO (piped mode still reads/writes real input
// files named on argv; only the keyboard is virtualized).
type FileBackend struct {
	open map[*device.FileHandle]*os.File
}

func newFileBackend() *FileBackend {
	return &FileBackend{open: map[*device.FileHandle]*os.File{}}
}

func (b *FileBackend) ensure(h *device.FileHandle) (*os.File, error) {
	if f, ok := b.open[h]; ok {
		return f, nil
	}
	f, err := os.OpenFile(h.Path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	b.open[h] = f
	h.Opened = true
	return f, nil
}

func (b *FileBackend) FileOpen(h *device.FileHandle) error {
	_, err := b.ensure(h)
	return err
}

func (b *FileBackend) FileRead(h *device.FileHandle, n int) ([]byte, error) {
	f, err := b.ensure(h)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	read, err := f.ReadAt(buf, int64(h.Cursor))
	if err != nil && err != io.EOF {
		return nil, err
	}
	h.Cursor += uint32(read)
	return buf[:read], nil
}

func (b *FileBackend) FileWrite(h *device.FileHandle, data []byte) (int, error) {
	f, err := b.ensure(h)
	if err != nil {
		return 0, err
	}
	n, err := f.WriteAt(data, int64(h.Cursor))
	if err != nil {
		return n, err
	}
	h.Cursor += uint32(n)
	return n, nil
}

func (b *FileBackend) FileSkip(h *device.FileHandle, n int) (int, error) {
	size, err := b.FileSize(h)
	if err != nil {
		return 0, err
	}
	remain := int(size) - int(h.Cursor)
	if remain < 0 {
		remain = 0
	}
	if n > remain {
		n = remain
	}
	h.Cursor += uint32(n)
	return n, nil
}

func (b *FileBackend) FileSeek(h *device.FileHandle, pos uint32) error {
	if _, err := b.ensure(h); err != nil {
		return err
	}
	h.Cursor = pos
	return nil
}

func (b *FileBackend) FileSize(h *device.FileHandle) (uint32, error) {
	f, err := b.ensure(h)
	if err != nil {
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return uint32(info.Size()), nil
}
