package exec

import "github.com/tvmproject/tvm/internal/image"

const (
	cmpEqual   = 0
	cmpLesser  = 1
	cmpGreater = 2
)

func init() {
	register(opFor("cmp", image.KindDataReg, image.KindDataReg), cmpRegReg)
	register(opFor("cmp", image.KindDataReg, image.KindNum), cmpRegVal)
	register(opFor("cmp", image.KindDataReg, image.KindAddrReg), cmpRegAReg)
	// cmpar is the historical synonym for cmp, kept as an alias rather than
	// removed (SPEC §4.D names it "historical", not deprecated-and-broken).
	register(opFor("cmpar", image.KindDataReg, image.KindDataReg), cmpRegReg)
	register(opFor("cmpar", image.KindDataReg, image.KindNum), cmpRegVal)
	register(opFor("cmpar", image.KindDataReg, image.KindAddrReg), cmpRegAReg)
}

func cmpResult(lhs, rhs byte) byte {
	switch {
	case lhs == rhs:
		return cmpEqual
	case lhs < rhs:
		return cmpLesser
	default:
		return cmpGreater
	}
}

func cmpRegReg(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(image.ACC, cmpResult(m.Dev.Reg(ops[0].reg), m.Dev.Reg(ops[1].reg)))
	return Continue, nil
}
func cmpRegVal(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.SetReg(image.ACC, cmpResult(m.Dev.Reg(ops[0].reg), ops[1].num))
	return Continue, nil
}
func cmpRegAReg(m *Machine, ops []operand) (Outcome, error) {
	rhs, err := dataDeref(m.Dev, ops[1].areg)
	if err != nil {
		return Halted, err
	}
	m.Dev.SetReg(image.ACC, cmpResult(m.Dev.Reg(ops[0].reg), rhs))
	return Continue, nil
}
