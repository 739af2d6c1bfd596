// Package disasm implements the decompiler of SPEC §4.H: for each opcode
// byte in an image's ops region, look up its shape and consume operand
// bytes, then emit reassemblable textual source. Labels are synthesized
// for every offset that is a jump/call target, found in a first scan pass
// before any text is emitted — mirroring the teacher's two-pass shape
// (`ie64dis.go`'s Decode/FormatInstruction split), generalized here to the
// variable-width encoding this instruction set actually uses.
package disasm

import (
	"encoding/binary"
	"fmt"

	"github.com/tvmproject/tvm/internal/image"
)

// rawOp is one decoded instruction: its shape, ops-region offset, and its
// operand bytes exactly as they appear on the wire (not yet resolved to
// text — that needs the label table built from a full scan).
type rawOp struct {
	Offset   uint16
	Shape    image.Shape
	Operands [][]byte
}

// scanOps walks an ops region once, decoding every instruction in order.
// A malformed trailing instruction (operand bytes run past the end of the
// region) is reported as an error; SPEC gives the decompiler no graceful
// fallback for that case since a validly assembled image never produces
// one.
func scanOps(ops []byte) ([]rawOp, error) {
	var out []rawOp
	offset := 0
	for offset < len(ops) {
		opByte := ops[offset]
		shape, ok := image.ByOpcode[image.Opcode(opByte)]
		if !ok {
			return nil, fmt.Errorf("disasm: unknown opcode byte 0x%02x at offset %d", opByte, offset)
		}
		pos := offset + 1
		operands := make([][]byte, len(shape.Operands))
		for i, k := range shape.Operands {
			w := k.Width()
			if pos+w > len(ops) {
				return nil, fmt.Errorf("disasm: truncated operand for %q at offset %d", shape.Mnemonic, offset)
			}
			operands[i] = ops[pos : pos+w]
			pos += w
		}
		out = append(out, rawOp{Offset: uint16(offset), Shape: shape, Operands: operands})
		offset = pos
	}
	return out, nil
}

// jumpTargets collects the set of ops-offsets addressed by any KindAddr
// operand — the offsets that need a synthesized label (SPEC §4.H: "Labels
// are re-synthesized for every offset that is a jump/call target").
func jumpTargets(ops []rawOp) map[uint16]bool {
	targets := map[uint16]bool{}
	for _, op := range ops {
		for i, k := range op.Shape.Operands {
			if k == image.KindAddr {
				targets[binary.BigEndian.Uint16(op.Operands[i])] = true
			}
		}
	}
	return targets
}
