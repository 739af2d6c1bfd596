package exec

import (
	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/image"
)

func init() {
	register(opFor("cpy", image.KindDataReg, image.KindDataReg), cpyDRegDReg)
	register(opFor("cpy", image.KindDataReg, image.KindNum), cpyDRegVal)
	register(opFor("cpy", image.KindDataReg, image.KindAddrReg), cpyDRegAReg)
	register(opFor("cpy", image.KindAddrReg, image.KindAddr), cpyARegAddr)
	register(opFor("cpy", image.KindAddrReg, image.KindAddrReg), cpyARegAReg)
	register(opFor("cpy", image.KindAddrReg, image.KindDataReg, image.KindDataReg), cpyARegDHiDLo)
	register(opFor("cpy", image.KindDataReg, image.KindDataReg, image.KindAddrReg), cpyDHiDLoAReg)

	register(opFor("swp", image.KindDataReg, image.KindDataReg), swpDRegDReg)
	register(opFor("swp", image.KindAddrReg, image.KindAddrReg), swpARegAReg)

	register(opFor("memr", image.KindAddr), memrAddr)
	register(opFor("memr", image.KindAddrReg), memrAReg)
	register(opFor("memw", image.KindAddr), memwAddr)
	register(opFor("memw", image.KindAddrReg), memwAReg)
	register(opFor("memc", image.KindAddrReg, image.KindAddrReg), memcARegAReg)
	register(opFor("memp", image.KindAddrReg), mempAReg)

	register(opFor("ld", image.KindAddrReg, image.KindDataID, image.KindHandle, image.KindHandle), ldAReg)
	register(opFor("len", image.KindDataID, image.KindHandle), lenData)
}

func cpyDRegDReg(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(ops[0].reg, m.Dev.Reg(ops[1].reg))
	return Continue, nil
}
func cpyDRegVal(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(ops[0].reg, ops[1].num)
	return Continue, nil
}
func cpyDRegAReg(m *Machine, ops []operand) (Outcome, error) {
	v, err := dataDeref(m.Dev, ops[1].areg)
	if err != nil {
		return Halted, err
	}
	m.Dev.SetReg(ops[0].reg, v)
	return Continue, nil
}
func cpyARegAddr(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetAReg(ops[0].areg, ops[1].addr)
	return Continue, nil
}
func cpyARegAReg(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetAReg(ops[0].areg, m.Dev.AReg(ops[1].areg))
	return Continue, nil
}

// cpyARegDHiDLo joins two 8-bit data registers into a 16-bit address
// register, high byte first (SPEC §4.D).
func cpyARegDHiDLo(m *Machine, ops []operand) (Outcome, error) {
	hi := m.Dev.Reg(ops[1].reg)
	lo := m.Dev.Reg(ops[2].reg)
	m.Dev.SetAReg(ops[0].areg, uint16(hi)<<8|uint16(lo))
	return Continue, nil
}

// cpyDHiDLoAReg splits a 16-bit address register into two 8-bit data
// registers, high byte first.
func cpyDHiDLoAReg(m *Machine, ops []operand) (Outcome, error) {
	v := m.Dev.AReg(ops[2].areg)
	m.Dev.SetReg(ops[0].reg, byte(v>>8))
	m.Dev.SetReg(ops[1].reg, byte(v))
	return Continue, nil
}

func swpDRegDReg(m *Machine, ops []operand) (Outcome, error) {
	a, b := ops[0].reg, ops[1].reg
	va, vb := m.Dev.Reg(a), m.Dev.Reg(b)
	m.Dev.SetReg(a, vb)
	m.Dev.SetReg(b, va)
	return Continue, nil
}

func swpARegAReg(m *Machine, ops []operand) (Outcome, error) {
	a, b := ops[0].areg, ops[1].areg
	va, vb := m.Dev.AReg(a), m.Dev.AReg(b)
	m.Dev.SetAReg(a, vb)
	m.Dev.SetAReg(b, va)
	return Continue, nil
}

func memrAddr(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(image.ACC, m.Dev.ReadByte(ops[0].addr))
	return Continue, nil
}
func memrAReg(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(image.ACC, m.Dev.ReadByte(m.Dev.AReg(ops[0].areg)))
	return Continue, nil
}
func memwAddr(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.WriteByte(ops[0].addr, m.Dev.Reg(image.ACC))
	return Continue, nil
}
func memwAReg(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.WriteByte(m.Dev.AReg(ops[0].areg), m.Dev.Reg(image.ACC))
	return Continue, nil
}

// memcARegAReg copies ACC bytes from data[a_src] into mem[a_dst].
func memcARegAReg(m *Machine, ops []operand) (Outcome, error) {
	n := int(m.Dev.Reg(image.ACC))
	src := m.Dev.AReg(ops[0].areg)
	dst := m.Dev.AReg(ops[1].areg)
	for i := 0; i < n; i++ {
		b, err := m.Dev.DataByte(src + uint16(i))
		if err != nil {
			return Halted, err
		}
		m.Dev.WriteByte(dst+uint16(i), b)
	}
	return Continue, nil
}

func mempAReg(m *Machine, ops []operand) (Outcome, error) {
	n := int(m.Dev.Reg(image.ACC))
	base := m.Dev.AReg(ops[0].areg)
	for i := 0; i < n; i++ {
		m.IO.StdoutWrite(m.Dev.ReadByte(base + uint16(i)))
	}
	return Continue, nil
}

func ldAReg(m *Machine, ops []operand) (Outcome, error) {
	dataID := ops[1].addr
	outer := int(ops[2].handle.Resolve(m.Dev.D))
	inner := int(ops[3].handle.Resolve(m.Dev.D))
	off, err := image.LDOffset(m.Dev.Data, dataID, outer, inner)
	if err != nil {
		return Halted, &device.Trap{Msg: err.Error()}
	}
	m.Dev.SetAReg(ops[0].areg, off)
	return Continue, nil
}

func lenData(m *Machine, ops []operand) (Outcome, error) {
	dataID := ops[0].addr
	outer := int(ops[1].handle.Resolve(m.Dev.D))
	v, err := image.LENValue(m.Dev.Data, dataID, outer)
	if err != nil {
		return Halted, &device.Trap{Msg: err.Error()}
	}
	m.Dev.SetReg(image.ACC, v)
	return Continue, nil
}
