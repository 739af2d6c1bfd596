package exec

import "github.com/tvmproject/tvm/internal/image"

func init() {
	register(opFor("and", image.KindDataReg, image.KindDataReg), andRegReg)
	register(opFor("and", image.KindDataReg, image.KindNum), andRegVal)
	register(opFor("and", image.KindDataReg, image.KindAddrReg), andRegAReg)
	register(opFor("or", image.KindDataReg, image.KindDataReg), orRegReg)
	register(opFor("or", image.KindDataReg, image.KindNum), orRegVal)
	register(opFor("or", image.KindDataReg, image.KindAddrReg), orRegAReg)
	register(opFor("xor", image.KindDataReg, image.KindDataReg), xorRegReg)
	register(opFor("xor", image.KindDataReg, image.KindNum), xorRegVal)
	register(opFor("xor", image.KindDataReg, image.KindAddrReg), xorRegAReg)
	register(opFor("not", image.KindDataReg), notReg)
	register(opFor("not", image.KindAddrReg), notAReg)
	register(opFor("not", image.KindNum), notVal)
}

func andRegReg(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(image.ACC, m.Dev.Reg(ops[0].reg)&m.Dev.Reg(ops[1].reg))
	return Continue, nil
}
func andRegVal(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(image.ACC, m.Dev.Reg(ops[0].reg)&ops[1].num)
	return Continue, nil
}
func andRegAReg(m *Machine, ops []operand) (Outcome, error) {
	rhs, err := dataDeref(m.Dev, ops[1].areg)
	if err != nil {
		return Halted, err
	}
	m.Dev.SetReg(image.ACC, m.Dev.Reg(ops[0].reg)&rhs)
	return Continue, nil
}

func orRegReg(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(image.ACC, m.Dev.Reg(ops[0].reg)|m.Dev.Reg(ops[1].reg))
	return Continue, nil
}
func orRegVal(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(image.ACC, m.Dev.Reg(ops[0].reg)|ops[1].num)
	return Continue, nil
}
func orRegAReg(m *Machine, ops []operand) (Outcome, error) {
	rhs, err := dataDeref(m.Dev, ops[1].areg)
	if err != nil {
		return Halted, err
	}
	m.Dev.SetReg(image.ACC, m.Dev.Reg(ops[0].reg)|rhs)
	return Continue, nil
}

func xorRegReg(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(image.ACC, m.Dev.Reg(ops[0].reg)^m.Dev.Reg(ops[1].reg))
	return Continue, nil
}
func xorRegVal(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(image.ACC, m.Dev.Reg(ops[0].reg)^ops[1].num)
	return Continue, nil
}
func xorRegAReg(m *Machine, ops []operand) (Outcome, error) {
	rhs, err := dataDeref(m.Dev, ops[1].areg)
	if err != nil {
		return Halted, err
	}
	m.Dev.SetReg(image.ACC, m.Dev.Reg(ops[0].reg)^rhs)
	return Continue, nil
}

func notReg(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(image.ACC, ^m.Dev.Reg(ops[0].reg))
	return Continue, nil
}
func notAReg(m *Machine, ops []operand) (Outcome, error) {
	v, err := dataDeref(m.Dev, ops[0].areg)
	if err != nil {
		return Halted, err
	}
	m.Dev.SetReg(image.ACC, ^v)
	return Continue, nil
}
func notVal(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(image.ACC, ^ops[0].num)
	return Continue, nil
}
