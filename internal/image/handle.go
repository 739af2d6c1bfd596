package image

// Handle is a KindHandle operand: either an 8-bit literal or a DataReg id,
// used wherever SPEC_FULL's supplemented shapes allow a file handle id, or
// an LD outer/inner index, to be given as either form.
type Handle struct {
	IsReg bool
	Val   byte // literal value, or the DataReg id when IsReg
}

func (h Handle) Encode() [2]byte {
	tag := byte(0)
	if h.IsReg {
		tag = 1
	}
	return [2]byte{tag, h.Val}
}

func DecodeHandle(b []byte) Handle {
	return Handle{IsReg: b[0] != 0, Val: b[1]}
}

// Resolve returns the handle's numeric value given the current data
// registers, resolving a register handle through them.
func (h Handle) Resolve(dataRegs [5]byte) byte {
	if h.IsReg {
		return dataRegs[h.Val]
	}
	return h.Val
}
