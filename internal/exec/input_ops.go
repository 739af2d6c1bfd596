package exec

import (
	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/image"
)

const rstrMaxLen = 255

func init() {
	register(opFor("ipoll", image.KindAddr), ipollAddr)
	register(opFor("ipoll", image.KindAddrReg), ipollAReg)
	register(opFor("rchr", image.KindDataReg), rchrReg)
	register(opFor("rstr", image.KindAddr), rstrAddr)
	register(opFor("rstr", image.KindAddrReg), rstrAReg)
}

func ipollAddr(m *Machine, ops []operand) (Outcome, error) {
	if m.IO.KbReady() {
		m.Dev.PC = ops[0].addr
	}
	return Continue, nil
}
func ipollAReg(m *Machine, ops []operand) (Outcome, error) {
	if m.IO.KbReady() {
		m.Dev.PC = m.Dev.AReg(ops[0].areg)
	}
	return Continue, nil
}

// rchrReg blocks until one byte is available. Since PC has already been
// advanced past this instruction by decode, a blocked RCHR cannot simply be
// re-fetched on the next Step — it is resumed through pendingState instead.
func rchrReg(m *Machine, ops []operand) (Outcome, error) {
	if b, ok := m.IO.KbTryRead(); ok {
		m.Dev.SetReg(ops[0].reg, b)
		return Continue, nil
	}
	m.pending = pendingState{kind: pendingRCHR, reg: ops[0].reg}
	return AwaitingKey, nil
}

func rstrAddr(m *Machine, ops []operand) (Outcome, error) {
	return readRSTR(m, ops[0].addr, 0)
}
func rstrAReg(m *Machine, ops []operand) (Outcome, error) {
	return readRSTR(m, m.Dev.AReg(ops[0].areg), 0)
}

// readRSTR reads bytes into mem[base..] until return is pressed or
// rstrMaxLen bytes accumulate, leaving ACC set to the count. Backspace and
// delete remove the previously written byte rather than being stored.
func readRSTR(m *Machine, base uint16, count int) (Outcome, error) {
	for count < rstrMaxLen {
		b, ok := m.IO.KbTryRead()
		if !ok {
			m.pending = pendingState{kind: pendingRSTR, addr: base, count: count}
			return AwaitingString, nil
		}
		switch b {
		case '\r', '\n':
			m.Dev.SetReg(image.ACC, byte(count))
			return Continue, nil
		case 8, 127:
			if count > 0 {
				count--
			}
		default:
			m.Dev.WriteByte(base+uint16(count), b)
			count++
		}
	}
	m.Dev.SetReg(image.ACC, byte(count))
	return Continue, nil
}

// resumePending continues a suspended RCHR/RSTR from where it left off.
func (m *Machine) resumePending() (Outcome, error) {
	p := m.pending
	m.pending = pendingState{}
	switch p.kind {
	case pendingRCHR:
		return rchrReg(m, []operand{{reg: p.reg}})
	case pendingRSTR:
		return readRSTR(m, p.addr, p.count)
	default:
		return Halted, &device.Trap{Msg: "resumePending called with no pending operation"}
	}
}
