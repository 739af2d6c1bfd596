package exec

import "github.com/tvmproject/tvm/internal/image"

func init() {
	register(opFor("jmp", image.KindAddr), jmpAddr)
	register(opFor("jmp", image.KindAddrReg), jmpAReg)
	register(opFor("je", image.KindAddr), branchAddr(func(m *Machine) bool { return m.Dev.Reg(image.ACC) == cmpEqual }))
	register(opFor("je", image.KindAddrReg), branchAReg(func(m *Machine) bool { return m.Dev.Reg(image.ACC) == cmpEqual }))
	register(opFor("jne", image.KindAddr), branchAddr(func(m *Machine) bool { return m.Dev.Reg(image.ACC) != cmpEqual }))
	register(opFor("jne", image.KindAddrReg), branchAReg(func(m *Machine) bool { return m.Dev.Reg(image.ACC) != cmpEqual }))
	register(opFor("jg", image.KindAddr), branchAddr(func(m *Machine) bool { return m.Dev.Reg(image.ACC) == cmpGreater }))
	register(opFor("jg", image.KindAddrReg), branchAReg(func(m *Machine) bool { return m.Dev.Reg(image.ACC) == cmpGreater }))
	register(opFor("jl", image.KindAddr), branchAddr(func(m *Machine) bool { return m.Dev.Reg(image.ACC) == cmpLesser }))
	register(opFor("jl", image.KindAddrReg), branchAReg(func(m *Machine) bool { return m.Dev.Reg(image.ACC) == cmpLesser }))
	register(opFor("over", image.KindAddr), branchAddr(func(m *Machine) bool { return m.Dev.Overflow }))
	register(opFor("over", image.KindAddrReg), branchAReg(func(m *Machine) bool { return m.Dev.Overflow }))
	register(opFor("nover", image.KindAddr), branchAddr(func(m *Machine) bool { return !m.Dev.Overflow }))
	register(opFor("nover", image.KindAddrReg), branchAReg(func(m *Machine) bool { return !m.Dev.Overflow }))

	register(opFor("call", image.KindAddr), callAddr)
	register(opFor("call", image.KindAddrReg), callAReg)
	register(opFor("ret"), ret)
}

func jmpAddr(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.PC = ops[0].addr
	return Continue, nil
}
func jmpAReg(m *Machine, ops []operand) (Outcome, error) {
	m.Dev.PC = m.Dev.AReg(ops[0].areg)
	return Continue, nil
}

func branchAddr(cond func(*Machine) bool) handlerFunc {
	return func(m *Machine, ops []operand) (Outcome, error) {
		if cond(m) {
			m.Dev.PC = ops[0].addr
		}
		return Continue, nil
	}
}
func branchAReg(cond func(*Machine) bool) handlerFunc {
	return func(m *Machine, ops []operand) (Outcome, error) {
		if cond(m) {
			m.Dev.PC = m.Dev.AReg(ops[0].areg)
		}
		return Continue, nil
	}
}

// callAddr pushes the return address (PC already advanced past this
// instruction) and the caller's FP, then sets FP to the new frame base and
// jumps. FP IS saved/restored across calls, forming a real frame chain
// (DESIGN.md Open Question (a), resolved against
// original_source/tests/execution/multiple/stack.rs).
func callAddr(m *Machine, ops []operand) (Outcome, error) {
	return doCall(m, ops[0].addr)
}
func callAReg(m *Machine, ops []operand) (Outcome, error) {
	return doCall(m, m.Dev.AReg(ops[0].areg))
}

func doCall(m *Machine, target uint16) (Outcome, error) {
	ret := m.Dev.PC
	oldFP := m.Dev.FP
	if err := m.Dev.PushWord(ret); err != nil {
		return Halted, err
	}
	if err := m.Dev.PushWord(oldFP); err != nil {
		return Halted, err
	}
	m.Dev.FP = m.Dev.SP
	m.Dev.PC = target
	return Continue, nil
}

func ret(m *Machine, ops []operand) (Outcome, error) {
	oldFP, err := m.Dev.PopWord()
	if err != nil {
		return Halted, err
	}
	pc, err := m.Dev.PopWord()
	if err != nil {
		return Halted, err
	}
	m.Dev.FP = oldFP
	m.Dev.PC = pc
	return Continue, nil
}
