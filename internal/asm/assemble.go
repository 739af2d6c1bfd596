package asm

import (
	"strings"

	"github.com/tvmproject/tvm/internal/debuginfo"
	"github.com/tvmproject/tvm/internal/image"
)

// Assemble turns assembly source into a loadable image.Image plus its
// debug-info sidecar, or the full set of located errors found along the
// way. Errors accumulate within a phase rather than stopping at the first
// one: parse errors are returned together, then shape/label, string and
// data errors are collected together, and ops encoding runs only once
// those are clean. A failing phase stops the later ones.
func Assemble(src string) (*image.Image, *debuginfo.Model, []AssemblerError) {
	pm, errs := Parse(src)
	if len(errs) > 0 {
		return nil, nil, errs
	}

	resolved, labelOffsets, shapeErrs := resolveShapesAndLabels(pm)
	stringsBlob, stringOffsets, strErrs := buildStrings(pm)
	dataBlob, dataOffsets, dataErrs := buildData(pm)

	errs = append(errs, shapeErrs...)
	errs = append(errs, strErrs...)
	errs = append(errs, dataErrs...)
	if len(errs) > 0 {
		return nil, nil, errs
	}

	opsBlob, _, opErrs := buildOps(resolved, labelOffsets, stringOffsets, dataOffsets)
	if len(opErrs) > 0 {
		return nil, nil, opErrs
	}

	img := &image.Image{
		Name:    pm.Name,
		Version: pm.Version,
		Ops:     opsBlob,
		Strings: stringsBlob,
		Data:    dataBlob,
	}
	return img, buildDebugModel(pm, resolved, stringOffsets, dataOffsets), nil
}

// buildDebugModel assembles the debuginfo.Model sidecar from the same
// intermediate data the encode pass used, so `assemble -d` never has to
// duplicate label/offset computation.
func buildDebugModel(pm *ProgramModel, resolved []resolvedOp, stringOffsets, dataOffsets map[string]uint16) *debuginfo.Model {
	m := debuginfo.NewModel()
	for _, op := range resolved {
		processed := op.Mnemonic
		if len(op.Tokens) > 0 {
			processed = processed + " " + strings.Join(op.Tokens, " ")
		}
		m.AddOp(op.Offset, op.Line, op.Raw, processed)
		for _, label := range op.Labels {
			m.AddLabel(op.Offset, label, op.Line, op.Raw)
		}
	}
	for _, s := range pm.Strings {
		m.AddString(stringOffsets[s.Key], s.Key, s.Line, s.Value)
	}
	for _, d := range pm.Data {
		m.AddData(dataOffsets[d.Key], d.Key, d.Line, d.Key)
	}
	return m
}
