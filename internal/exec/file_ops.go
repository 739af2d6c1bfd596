package exec

import (
	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/image"
)

func init() {
	register(opFor("fopen", image.KindHandle), fopen)
	register(opFor("filer", image.KindHandle, image.KindAddr), filer)
	register(opFor("filew", image.KindHandle, image.KindAddr), filew)
	register(opFor("filewb", image.KindHandle, image.KindHandle), filewByte)
	register(opFor("fskip", image.KindHandle, image.KindHandle), fskip)
	register(opFor("fseek", image.KindHandle), fseek)
	register(opFor("fchk", image.KindHandle, image.KindAddr), fchkAddr)
	register(opFor("fchk", image.KindHandle, image.KindAddrReg), fchkAReg)
}

func fileHandle(m *Machine, h image.Handle) (*device.FileHandle, error) {
	id := h.Resolve(m.Dev.D)
	fh := m.Dev.Handle(id)
	if fh == nil {
		return nil, &device.Trap{Msg: "file handle id out of range"}
	}
	return fh, nil
}

// fopen reports file size into D3(MSB),D2,D1,D0(LSB) (SPEC §4.D).
func fopen(m *Machine, ops []operand) (Outcome, error) {
	fh, err := fileHandle(m, ops[0].handle)
	if err != nil {
		return Halted, err
	}
	if err := m.IO.FileOpen(fh); err != nil {
		return Halted, &device.Trap{Msg: err.Error()}
	}
	size, err := m.IO.FileSize(fh)
	if err != nil {
		return Halted, &device.Trap{Msg: err.Error()}
	}
	m.Dev.SetReg(image.D3, byte(size>>24))
	m.Dev.SetReg(image.D2, byte(size>>16))
	m.Dev.SetReg(image.D1, byte(size>>8))
	m.Dev.SetReg(image.D0, byte(size))
	return Continue, nil
}

func filer(m *Machine, ops []operand) (Outcome, error) {
	fh, err := fileHandle(m, ops[0].handle)
	if err != nil {
		return Halted, err
	}
	n := int(m.Dev.Reg(image.ACC))
	data, err := m.IO.FileRead(fh, n)
	if err != nil {
		return Halted, &device.Trap{Msg: err.Error()}
	}
	base := ops[1].addr
	for i, b := range data {
		m.Dev.WriteByte(base+uint16(i), b)
	}
	m.Dev.SetReg(image.ACC, byte(len(data)))
	return Continue, nil
}

func filew(m *Machine, ops []operand) (Outcome, error) {
	fh, err := fileHandle(m, ops[0].handle)
	if err != nil {
		return Halted, err
	}
	n := int(m.Dev.Reg(image.ACC))
	base := ops[1].addr
	data := make([]byte, n)
	for i := 0; i < n; i++ {
		data[i] = m.Dev.ReadByte(base + uint16(i))
	}
	written, err := m.IO.FileWrite(fh, data)
	if err != nil {
		return Halted, &device.Trap{Msg: err.Error()}
	}
	m.Dev.SetReg(image.ACC, byte(written))
	return Continue, nil
}

func filewByte(m *Machine, ops []operand) (Outcome, error) {
	fh, err := fileHandle(m, ops[0].handle)
	if err != nil {
		return Halted, err
	}
	b := ops[1].handle.Resolve(m.Dev.D)
	written, err := m.IO.FileWrite(fh, []byte{b})
	if err != nil {
		return Halted, &device.Trap{Msg: err.Error()}
	}
	m.Dev.SetReg(image.ACC, byte(written))
	return Continue, nil
}

func fskip(m *Machine, ops []operand) (Outcome, error) {
	fh, err := fileHandle(m, ops[0].handle)
	if err != nil {
		return Halted, err
	}
	n := int(ops[1].handle.Resolve(m.Dev.D))
	skipped, err := m.IO.FileSkip(fh, n)
	if err != nil {
		return Halted, &device.Trap{Msg: err.Error()}
	}
	m.Dev.SetReg(image.ACC, byte(skipped))
	return Continue, nil
}

// fseek sets the cursor to the 32-bit value composed from D3..D0, read
// directly as bytes 3,2,1,0 of a big-endian offset (DESIGN.md Open
// Question (b): this shape does not pop a stack at all).
func fseek(m *Machine, ops []operand) (Outcome, error) {
	fh, err := fileHandle(m, ops[0].handle)
	if err != nil {
		return Halted, err
	}
	pos := uint32(m.Dev.Reg(image.D3))<<24 | uint32(m.Dev.Reg(image.D2))<<16 |
		uint32(m.Dev.Reg(image.D1))<<8 | uint32(m.Dev.Reg(image.D0))
	if err := m.IO.FileSeek(fh, pos); err != nil {
		return Halted, &device.Trap{Msg: err.Error()}
	}
	return Continue, nil
}

func fchkAddr(m *Machine, ops []operand) (Outcome, error) {
	if fileAvailable(m, ops[0].handle) {
		m.Dev.PC = ops[1].addr
	}
	return Continue, nil
}
func fchkAReg(m *Machine, ops []operand) (Outcome, error) {
	if fileAvailable(m, ops[0].handle) {
		m.Dev.PC = m.Dev.AReg(ops[1].areg)
	}
	return Continue, nil
}

func fileAvailable(m *Machine, h image.Handle) bool {
	fh, err := fileHandle(m, h)
	if err != nil {
		return false
	}
	return fh.OpenErr == nil
}
