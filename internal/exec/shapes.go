package exec

import (
	"fmt"

	"github.com/tvmproject/tvm/internal/image"
)

// opFor resolves the Opcode byte for a mnemonic/operand-kind signature, so
// the handler registration files below can address image.Shapes entries by
// shape instead of needing access to image's private opcode constants.
func opFor(mnemonic string, kinds ...image.Kind) image.Opcode {
	for _, s := range image.ByMnemonic[mnemonic] {
		if kindsEqual(s.Operands, kinds) {
			return s.Op
		}
	}
	panic(fmt.Sprintf("exec: no shape %s%v registered in image.Shapes", mnemonic, kinds))
}

func kindsEqual(a, b []image.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
