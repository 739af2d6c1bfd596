// Package exec is the instruction executor (SPEC §4.D): fetch the opcode
// at PC, decode its operands, advance PC past them, then apply effects.
package exec

import (
	"encoding/binary"
	"fmt"

	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/image"
)

// operand is a decoded instruction operand, tagged by the Kind the opcode
// table declared for that slot.
type operand struct {
	kind   image.Kind
	reg    image.DataReg
	areg   image.AddrReg
	num    byte
	addr   uint16
	handle image.Handle
}

func (m *Machine) decode(op image.Opcode) (image.Shape, []operand, error) {
	shape, ok := image.ByOpcode[op]
	if !ok {
		return shape, nil, fmt.Errorf("unknown opcode byte 0x%02x at pc %d", op, m.Dev.PC-1)
	}
	ops := make([]operand, len(shape.Operands))
	pc := m.Dev.PC
	for i, k := range shape.Operands {
		raw, err := m.takeBytes(pc, k.Width())
		if err != nil {
			return shape, nil, err
		}
		pc += uint16(k.Width())
		o := operand{kind: k}
		switch k {
		case image.KindDataReg:
			o.reg = image.DataReg(raw[0])
		case image.KindAddrReg:
			o.areg = image.AddrReg(raw[0])
		case image.KindNum:
			o.num = raw[0]
		case image.KindAddr, image.KindStringID, image.KindDataID:
			o.addr = binary.BigEndian.Uint16(raw)
		case image.KindHandle:
			o.handle = image.DecodeHandle(raw)
		}
		ops[i] = o
	}
	m.Dev.PC = pc
	return shape, ops, nil
}

func (m *Machine) takeBytes(pc uint16, n int) ([]byte, error) {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := m.Dev.OpByte(pc + uint16(i))
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// dataDeref reads the byte at data[addrReg], used by every "addr_reg
// dereferences through data" operand (SPEC §4.D).
func dataDeref(d *device.Device, r image.AddrReg) (byte, error) {
	return d.DataByte(d.AReg(r))
}
