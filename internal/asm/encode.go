package asm

import "github.com/tvmproject/tvm/internal/image"

// buildStrings packs every `.strings` entry in declaration order, returning
// the blob and each key's byte offset into it (the offset a KindStringID
// operand resolves to, per image.ReadString's id convention).
func buildStrings(pm *ProgramModel) ([]byte, map[string]uint16, []AssemblerError) {
	var blob []byte
	offsets := map[string]uint16{}
	var errs []AssemblerError
	for _, s := range pm.Strings {
		if _, dup := offsets[s.Key]; dup {
			errs = append(errs, errAt(s.Line, "string %q already defined", s.Key))
			continue
		}
		if len(blob) > image.MaxRegionLen {
			errs = append(errs, errAt(s.Line, "strings region exceeds %d bytes", image.MaxRegionLen))
			continue
		}
		offsets[s.Key] = uint16(len(blob))
		packed, err := image.PackString(s.Value)
		if err != nil {
			errs = append(errs, errAt(s.Line, "%s", err))
			continue
		}
		blob = append(blob, packed...)
	}
	return blob, offsets, errs
}

// buildData packs every `.data` entry in declaration order, returning the
// blob and each key's byte offset into it (the id a KindDataID operand
// resolves to, per image.TableHeader's id convention).
func buildData(pm *ProgramModel) ([]byte, map[string]uint16, []AssemblerError) {
	var blob []byte
	offsets := map[string]uint16{}
	var errs []AssemblerError
	for _, d := range pm.Data {
		if _, dup := offsets[d.Key]; dup {
			errs = append(errs, errAt(d.Line, "data %q already defined", d.Key))
			continue
		}
		if len(blob) > image.MaxRegionLen {
			errs = append(errs, errAt(d.Line, "data region exceeds %d bytes", image.MaxRegionLen))
			continue
		}
		offsets[d.Key] = uint16(len(blob))
		packed, err := image.PackTable(d.Rows)
		if err != nil {
			errs = append(errs, errAt(d.Line, "%s", err))
			continue
		}
		blob = append(blob, packed...)
	}
	return blob, offsets, errs
}

// buildOps emits the final ops-region bytes for every resolved instruction,
// and a parallel offset->source-line map for debug info.
func buildOps(resolved []resolvedOp, labelOffsets, stringOffsets, dataOffsets map[string]uint16) ([]byte, map[uint16]int, []AssemblerError) {
	var blob []byte
	lines := map[uint16]int{}
	var errs []AssemblerError

	for _, op := range resolved {
		lines[op.Offset] = op.Line
		blob = append(blob, byte(op.Shape.Op))
		for i, kind := range op.Shape.Operands {
			bytes, err := encodeOperand(op.OpLine, op.Tokens[i], kind, labelOffsets, stringOffsets, dataOffsets)
			if err != nil {
				errs = append(errs, err.(AssemblerError))
				continue
			}
			blob = append(blob, bytes...)
		}
	}
	return blob, lines, errs
}
