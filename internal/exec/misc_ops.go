package exec

import "github.com/tvmproject/tvm/internal/image"

func init() {
	register(opFor("nop"), nop)
	register(opFor("halt"), halt)
	register(opFor("rand", image.KindDataReg), randReg)
	register(opFor("seed", image.KindDataReg), seedReg)
	register(opFor("seed", image.KindNum), seedVal)
	register(opFor("time"), timeOp)
}

func nop(m *Machine, ops []operand) (Outcome, error) {
	return Continue, nil
}
func halt(m *Machine, ops []operand) (Outcome, error) {
	return Halted, nil
}

func randReg(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(ops[0].reg, m.Dev.Rand())
	return Continue, nil
}

func seedReg(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.Seed(m.Dev.Reg(ops[0].reg))
	return Continue, nil
}
func seedVal(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.Seed(ops[0].num)
	return Continue, nil
}

// timeOp populates D0=seconds, D1=minutes, D2=hours of the local wall clock.
func timeOp(m *Machine, ops []operand) (Outcome, error) {
	s, mi, h := m.IO.Clock()
	m.Dev.SetReg(image.D0, s)
	m.Dev.SetReg(image.D1, mi)
	m.Dev.SetReg(image.D2, h)
	return Continue, nil
}
