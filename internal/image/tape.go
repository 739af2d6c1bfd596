package image

import (
	"encoding/binary"
	"fmt"
)

// Magic is the 3-byte prefix every tape file begins with.
var Magic = [3]byte{0xFD, 0xA0, 0x10}

const (
	MaxNameLen    = 20
	MaxVersionLen = 10
	MaxRegionLen  = 65535
)

// Image is one fully assembled program: a header plus the three
// independently size-bounded regions loaded into the device.
type Image struct {
	Name    string
	Version string
	Ops     []byte
	Strings []byte
	Data    []byte
}

// ImageError reports a malformed or oversize tape/region.
type ImageError struct {
	Msg string
}

func (e *ImageError) Error() string { return "image: " + e.Msg }

func newImageError(format string, args ...interface{}) *ImageError {
	return &ImageError{Msg: fmt.Sprintf(format, args...)}
}

// Encode serializes the image to the tape file layout of SPEC §6:
//
//	magic:3 | name_len:1 name | ver_len:1 ver | ops_len:2 ops |
//	strings_len:2 strings | data_len:2 data
func (img *Image) Encode() ([]byte, error) {
	if len(img.Name) > MaxNameLen {
		return nil, newImageError("program name %q exceeds %d bytes", img.Name, MaxNameLen)
	}
	if len(img.Version) > MaxVersionLen {
		return nil, newImageError("program version %q exceeds %d bytes", img.Version, MaxVersionLen)
	}
	if len(img.Ops) > MaxRegionLen {
		return nil, newImageError("ops region exceeds %d bytes", MaxRegionLen)
	}
	if len(img.Strings) > MaxRegionLen {
		return nil, newImageError("strings region exceeds %d bytes", MaxRegionLen)
	}
	if len(img.Data) > MaxRegionLen {
		return nil, newImageError("data region exceeds %d bytes", MaxRegionLen)
	}

	out := make([]byte, 0, 3+1+len(img.Name)+1+len(img.Version)+2+len(img.Ops)+2+len(img.Strings)+2+len(img.Data))
	out = append(out, Magic[:]...)
	out = append(out, byte(len(img.Name)))
	out = append(out, img.Name...)
	out = append(out, byte(len(img.Version)))
	out = append(out, img.Version...)
	out = appendU16(out, uint16(len(img.Ops)))
	out = append(out, img.Ops...)
	out = appendU16(out, uint16(len(img.Strings)))
	out = append(out, img.Strings...)
	out = appendU16(out, uint16(len(img.Data)))
	out = append(out, img.Data...)
	return out, nil
}

// Decode parses a tape file produced by Encode.
func Decode(b []byte) (*Image, error) {
	r := &cursor{b: b}
	magic, err := r.take(3)
	if err != nil {
		return nil, newImageError("truncated header: %v", err)
	}
	if magic[0] != Magic[0] || magic[1] != Magic[1] || magic[2] != Magic[2] {
		return nil, newImageError("bad magic: got % x want % x", magic, Magic)
	}

	name, err := r.takeLenPrefixed()
	if err != nil {
		return nil, newImageError("reading name: %v", err)
	}
	version, err := r.takeLenPrefixed()
	if err != nil {
		return nil, newImageError("reading version: %v", err)
	}
	ops, err := r.takeU16Prefixed()
	if err != nil {
		return nil, newImageError("reading ops region: %v", err)
	}
	strs, err := r.takeU16Prefixed()
	if err != nil {
		return nil, newImageError("reading strings region: %v", err)
	}
	data, err := r.takeU16Prefixed()
	if err != nil {
		return nil, newImageError("reading data region: %v", err)
	}
	if !r.empty() {
		return nil, newImageError("%d trailing bytes after data region", len(r.b)-r.pos)
	}

	return &Image{
		Name:    string(name),
		Version: string(version),
		Ops:     ops,
		Strings: strs,
		Data:    data,
	}, nil
}

func appendU16(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

type cursor struct {
	b   []byte
	pos int
}

func (c *cursor) empty() bool { return c.pos >= len(c.b) }

func (c *cursor) take(n int) ([]byte, error) {
	if c.pos+n > len(c.b) {
		return nil, fmt.Errorf("need %d bytes, have %d", n, len(c.b)-c.pos)
	}
	out := c.b[c.pos : c.pos+n]
	c.pos += n
	return out, nil
}

func (c *cursor) takeLenPrefixed() ([]byte, error) {
	lb, err := c.take(1)
	if err != nil {
		return nil, err
	}
	return c.take(int(lb[0]))
}

func (c *cursor) takeU16Prefixed() ([]byte, error) {
	lb, err := c.take(2)
	if err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint16(lb)
	return c.take(int(n))
}
