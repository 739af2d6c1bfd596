package asm

import (
	"strings"

	"github.com/tvmproject/tvm/internal/image"
)

// tokenKinds reports every image.Kind a token could plausibly represent,
// given what's known about registers, labels, string keys, and data keys
// syntactically (SPEC §4.B phase 4: "register? number literal? @addr?
// ... string name? label name? constant?").
func tokenKinds(pm *ProgramModel, labels map[string]bool, tok string) map[image.Kind]bool {
	kinds := map[image.Kind]bool{}
	lowered := strings.ToLower(tok)

	if _, ok := image.DataRegByName(lowered); ok {
		kinds[image.KindDataReg] = true
		kinds[image.KindHandle] = true
	}
	if _, ok := image.AddrRegByName(lowered); ok {
		kinds[image.KindAddrReg] = true
	}
	if strings.HasPrefix(tok, "@") {
		if _, ok := parseLiteral(tok[1:]); ok {
			kinds[image.KindAddr] = true
		}
	} else if labels[tok] {
		kinds[image.KindAddr] = true
	}
	if b, ok := parseByteLiteral(tok); ok {
		_ = b
		kinds[image.KindNum] = true
		kinds[image.KindHandle] = true
	}
	if stringKeyExists(pm, tok) {
		kinds[image.KindStringID] = true
	}
	if dataKeyExists(pm, tok) {
		kinds[image.KindDataID] = true
	}
	return kinds
}

func stringKeyExists(pm *ProgramModel, key string) bool {
	for _, s := range pm.Strings {
		if s.Key == key {
			return true
		}
	}
	return false
}

func dataKeyExists(pm *ProgramModel, key string) bool {
	for _, d := range pm.Data {
		if d.Key == key {
			return true
		}
	}
	return false
}

// matchShape picks the unique image.Shape whose operand Kinds the given
// tokens can satisfy. Zero or more-than-one match is a located error (SPEC
// §4.B phase 4: "Ambiguity or no match is a located error").
func matchShape(pm *ProgramModel, labels map[string]bool, op OpLine) (image.Shape, error) {
	candidates := image.ByMnemonic[op.Mnemonic]
	if len(candidates) == 0 {
		return image.Shape{}, errAt(op.Line, "unknown mnemonic %q", op.Mnemonic)
	}
	var matched []image.Shape
	for _, shape := range candidates {
		if len(shape.Operands) != len(op.Tokens) {
			continue
		}
		ok := true
		for i, k := range shape.Operands {
			if !tokenKinds(pm, labels, op.Tokens[i])[k] {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, shape)
		}
	}
	switch len(matched) {
	case 0:
		return image.Shape{}, errAt(op.Line, "no operand shape of %q matches %v", op.Mnemonic, op.Tokens)
	case 1:
		return matched[0], nil
	default:
		return image.Shape{}, errAt(op.Line, "ambiguous operand shape for %q %v", op.Mnemonic, op.Tokens)
	}
}

// encodeOperand resolves one token against its declared Kind into its
// on-wire bytes, now that label/string/data offsets are fully known.
func encodeOperand(op OpLine, tok string, kind image.Kind, labelOffsets, stringOffsets, dataOffsets map[string]uint16) ([]byte, error) {
	lowered := strings.ToLower(tok)
	switch kind {
	case image.KindDataReg:
		r, ok := image.DataRegByName(lowered)
		if !ok {
			return nil, errAt(op.Line, "%q is not a data register", tok)
		}
		return []byte{byte(r)}, nil

	case image.KindAddrReg:
		r, ok := image.AddrRegByName(lowered)
		if !ok {
			return nil, errAt(op.Line, "%q is not an address register", tok)
		}
		return []byte{byte(r)}, nil

	case image.KindNum:
		b, ok := parseByteLiteral(tok)
		if !ok {
			return nil, errAt(op.Line, "%q is not a valid byte literal", tok)
		}
		return []byte{b}, nil

	case image.KindAddr:
		var addr uint16
		if strings.HasPrefix(tok, "@") {
			v, ok := parseLiteral(tok[1:])
			if !ok || v < 0 || v > 0xFFFF {
				return nil, errAt(op.Line, "%q is not a valid address literal", tok)
			}
			addr = uint16(v)
		} else {
			off, ok := labelOffsets[tok]
			if !ok {
				return nil, errAt(op.Line, "undefined label %q", tok)
			}
			addr = off
		}
		return []byte{byte(addr >> 8), byte(addr)}, nil

	case image.KindStringID:
		off, ok := stringOffsets[tok]
		if !ok {
			return nil, errAt(op.Line, "undefined string %q", tok)
		}
		return []byte{byte(off >> 8), byte(off)}, nil

	case image.KindDataID:
		off, ok := dataOffsets[tok]
		if !ok {
			return nil, errAt(op.Line, "undefined data %q", tok)
		}
		return []byte{byte(off >> 8), byte(off)}, nil

	case image.KindHandle:
		if r, ok := image.DataRegByName(lowered); ok {
			enc := image.Handle{IsReg: true, Val: byte(r)}.Encode()
			return enc[:], nil
		}
		b, ok := parseByteLiteral(tok)
		if !ok {
			return nil, errAt(op.Line, "%q is not a valid handle literal", tok)
		}
		enc := image.Handle{IsReg: false, Val: b}.Encode()
		return enc[:], nil
	}
	return nil, errAt(op.Line, "internal: unhandled operand kind for %q", tok)
}
