package exec

import "github.com/tvmproject/tvm/internal/image"

func init() {
	register(opFor("add", image.KindDataReg, image.KindDataReg), addRegReg)
	register(opFor("add", image.KindDataReg, image.KindNum), addRegVal)
	register(opFor("add", image.KindDataReg, image.KindAddrReg), addRegAReg)
	register(opFor("sub", image.KindDataReg, image.KindDataReg), subRegReg)
	register(opFor("sub", image.KindDataReg, image.KindNum), subRegVal)
	register(opFor("sub", image.KindDataReg, image.KindAddrReg), subRegAReg)

	register(opFor("inc", image.KindDataReg), incReg)
	register(opFor("inc", image.KindAddrReg), incAReg)
	register(opFor("dec", image.KindDataReg), decReg)
	register(opFor("dec", image.KindAddrReg), decAReg)
}

func addRegReg(m *Machine, ops []operand) (Outcome, error) {
	lhs := int(m.Dev.Reg(ops[0].reg))
	rhs := int(m.Dev.Reg(ops[1].reg))
	m.Dev.SetArith(lhs + rhs)
	return Continue, nil
}

func addRegVal(m *Machine, ops []operand) (Outcome, error) {
	lhs := int(m.Dev.Reg(ops[0].reg))
	m.Dev.SetArith(lhs + int(ops[1].num))
	return Continue, nil
}

func addRegAReg(m *Machine, ops []operand) (Outcome, error) {
	lhs := int(m.Dev.Reg(ops[0].reg))
	rhs, err := dataDeref(m.Dev, ops[1].areg)
	if err != nil {
		return Halted, err
	}
	m.Dev.SetArith(lhs + int(rhs))
	return Continue, nil
}

func subRegReg(m *Machine, ops []operand) (Outcome, error) {
	lhs := int(m.Dev.Reg(ops[0].reg))
	rhs := int(m.Dev.Reg(ops[1].reg))
	m.Dev.SetArith(lhs - rhs)
	return Continue, nil
}

func subRegVal(m *Machine, ops []operand) (Outcome, error) {
	lhs := int(m.Dev.Reg(ops[0].reg))
	m.Dev.SetArith(lhs - int(ops[1].num))
	return Continue, nil
}

func subRegAReg(m *Machine, ops []operand) (Outcome, error) {
	lhs := int(m.Dev.Reg(ops[0].reg))
	rhs, err := dataDeref(m.Dev, ops[1].areg)
	if err != nil {
		return Halted, err
	}
	m.Dev.SetArith(lhs - int(rhs))
	return Continue, nil
}

func incReg(m *Machine, ops []operand) (Outcome, error) {
	r := ops[0].reg
	result := int(m.Dev.Reg(r)) + 1
	m.Dev.Overflow = result > 255
	m.Dev.SetReg(r, byte(result%256))
	m.Dev.SetReg(image.ACC, byte(result%256))
	return Continue, nil
}

func decReg(m *Machine, ops []operand) (Outcome, error) {
	r := ops[0].reg
	result := int(m.Dev.Reg(r)) - 1
	m.Dev.Overflow = result < 0
	v := byte(((result % 256) + 256) % 256)
	m.Dev.SetReg(r, v)
	m.Dev.SetReg(image.ACC, v)
	return Continue, nil
}

func incAReg(m *Machine, ops []operand) (Outcome, error) {
	r := ops[0].areg
	result := int(m.Dev.AReg(r)) + 1
	m.Dev.Overflow = result > 65535
	m.Dev.SetAReg(r, uint16(result%65536))
	return Continue, nil
}

func decAReg(m *Machine, ops []operand) (Outcome, error) {
	r := ops[0].areg
	result := int(m.Dev.AReg(r)) - 1
	m.Dev.Overflow = result < 0
	m.Dev.SetAReg(r, uint16(((result%65536)+65536)%65536))
	return Continue, nil
}
