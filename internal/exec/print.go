package exec

import (
	"strconv"

	"github.com/tvmproject/tvm/internal/device"
	"github.com/tvmproject/tvm/internal/image"
)

func init() {
	register(opFor("prt", image.KindDataReg), prtReg)
	register(opFor("prt", image.KindNum), prtVal)
	register(opFor("prtc", image.KindDataReg), prtcReg)
	register(opFor("prtc", image.KindNum), prtcVal)
	register(opFor("prts", image.KindStringID), prtsStr)
	register(opFor("prtln"), prtln)
	register(opFor("prtd", image.KindAddrReg), prtdAReg)
	register(opFor("debug"), debugDump)
}

func writeDecimal(m *Machine, v byte) {
	for _, c := range strconv.Itoa(int(v)) {
		m.IO.StdoutWrite(byte(c))
	}
}

func prtReg(m *Machine, ops []operand) (Outcome, error) {
	writeDecimal(m, m.Dev.Reg(ops[0].reg))
	return Continue, nil
}
func prtVal(m *Machine, ops []operand) (Outcome, error) {
	writeDecimal(m, ops[0].num)
	return Continue, nil
}

func prtcReg(m *Machine, ops []operand) (Outcome, error) {
	m.IO.StdoutWrite(m.Dev.Reg(ops[0].reg))
	return Continue, nil
}
func prtcVal(m *Machine, ops []operand) (Outcome, error) {
	m.IO.StdoutWrite(ops[0].num)
	return Continue, nil
}

func prtsStr(m *Machine, ops []operand) (Outcome, error) {
	s, err := image.ReadString(m.Dev.Strings, ops[0].addr)
	if err != nil {
		return Halted, &device.Trap{Msg: err.Error()}
	}
	for i := 0; i < len(s); i++ {
		m.IO.StdoutWrite(s[i])
	}
	return Continue, nil
}

func prtln(m *Machine, ops []operand) (Outcome, error) {
	m.IO.StdoutWrite('\n')
	return Continue, nil
}

// prtdAReg prints ACC bytes as characters starting at data[a_reg], distinct
// from MEMP which reads the same range out of mem instead of the data blob.
func prtdAReg(m *Machine, ops []operand) (Outcome, error) {
	n := int(m.Dev.Reg(image.ACC))
	base := m.Dev.AReg(ops[0].areg)
	for i := 0; i < n; i++ {
		b, err := m.Dev.DataByte(base + uint16(i))
		if err != nil {
			return Halted, err
		}
		m.IO.StdoutWrite(b)
	}
	return Continue, nil
}

func debugDump(m *Machine, ops []operand) (Outcome, error) {
	line := m.Dev.CurrentDump().Line()
	for i := 0; i < len(line); i++ {
		m.IO.StdoutWrite(line[i])
	}
	m.IO.StdoutWrite('\n')
	return Continue, nil
}
