package exec

import "github.com/tvmproject/tvm/internal/image"

func init() {
	register(opFor("push", image.KindDataReg), pushReg)
	register(opFor("push", image.KindNum), pushVal)
	register(opFor("push", image.KindAddrReg), pushAReg)
	register(opFor("pop", image.KindDataReg), popReg)
	register(opFor("pop", image.KindAddrReg), popAReg)

	register(opFor("arg", image.KindDataReg, image.KindNum), argReg)
	register(opFor("arg", image.KindAddrReg, image.KindNum), argAReg)
}

func pushReg(m *Machine, ops []operand) (Outcome, error) {
	if err := m.Dev.PushByte(m.Dev.Reg(ops[0].reg)); err != nil {
		return Halted, err
	}
	return Continue, nil
}
func pushVal(m *Machine, ops []operand) (Outcome, error) {
	if err := m.Dev.PushByte(ops[0].num); err != nil {
		return Halted, err
	}
	return Continue, nil
}
func pushAReg(m *Machine, ops []operand) (Outcome, error) {
	if err := m.Dev.PushWord(m.Dev.AReg(ops[0].areg)); err != nil {
		return Halted, err
	}
	return Continue, nil
}

func popReg(m *Machine, ops []operand) (Outcome, error) {
	v, err := m.Dev.PopByte()
	if err != nil {
		return Halted, err
	}
	m.Dev.SetReg(ops[0].reg, v)
	return Continue, nil
}
func popAReg(m *Machine, ops []operand) (Outcome, error) {
	v, err := m.Dev.PopWord()
	if err != nil {
		return Halted, err
	}
	m.Dev.SetAReg(ops[0].areg, v)
	return Continue, nil
}

// argReg/argAReg read an argument byte at mem[FP+n] without touching SP or
// FP — the frame stays intact for repeated reads (SPEC §4.D). CALL's saved
// return-address/FP pair occupies FP+1..FP+4, so the caller's own pushed
// arguments start at n=5, not n=1.
func argReg(m *Machine, ops []operand) (Outcome, error) {
	addr := m.Dev.FP + uint16(ops[1].num)
	m.Dev.SetReg(ops[0].reg, m.Dev.ReadByte(addr))
	return Continue, nil
}
func argAReg(m *Machine, ops []operand) (Outcome, error) {
	addr := m.Dev.FP + uint16(ops[1].num)
	m.Dev.SetAReg(ops[0].areg, m.Dev.ReadWord(addr))
	return Continue, nil
}
