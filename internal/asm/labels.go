package asm

import "github.com/tvmproject/tvm/internal/image"

// resolvedOp is one OpLine after its unique image.Shape has been chosen and
// its byte offset in the ops region computed.
type resolvedOp struct {
	OpLine
	Shape  image.Shape
	Offset uint16
}

// resolveShapesAndLabels is pass 1 (SPEC §4.B phase 3): pick each op's
// unique shape, then walk the ops in order accumulating Shape.Width() to
// learn every label's absolute ops-region offset. Labels must be known
// before shape matching only insofar as a forward-referenced label token
// must parse as KindAddr-eligible; matchShape treats every bare identifier
// appearing in Labels position as a potential label regardless of whether
// it's been bound yet, so a single pass suffices.
func resolveShapesAndLabels(pm *ProgramModel) ([]resolvedOp, map[string]uint16, []AssemblerError) {
	labelSet := map[string]bool{}
	for _, op := range pm.Ops {
		for _, l := range op.Labels {
			labelSet[l] = true
		}
	}

	var errs []AssemblerError
	var resolved []resolvedOp
	var offset uint16
	labelOffsets := map[string]uint16{}

	for _, op := range pm.Ops {
		shape, err := matchShape(pm, labelSet, op)
		if err != nil {
			errs = append(errs, err.(AssemblerError))
			continue
		}
		for _, l := range op.Labels {
			if _, dup := labelOffsets[l]; dup {
				errs = append(errs, errAt(op.Line, "label %q already defined", l))
				continue
			}
			labelOffsets[l] = offset
		}
		resolved = append(resolved, resolvedOp{OpLine: op, Shape: shape, Offset: offset})
		width := shape.Width()
		if int(offset)+width > image.MaxRegionLen {
			errs = append(errs, errAt(op.Line, "ops region exceeds %d bytes", image.MaxRegionLen))
		}
		offset += uint16(width)
	}

	return resolved, labelOffsets, errs
}
