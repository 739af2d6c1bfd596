// Package asm implements the textual-assembly-to-tape-image pipeline of
// SPEC §4.B: tokenize, build the constant/label tables, resolve each
// instruction's operands against the shapes in internal/image, then emit a
// tape image.
package asm

import "fmt"

// AssemblerError is a located diagnostic (SPEC §7).
type AssemblerError struct {
	Line int
	Col  int
	Msg  string
}

func (e AssemblerError) Error() string {
	if e.Col > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func errAt(line int, format string, args ...interface{}) AssemblerError {
	return AssemblerError{Line: line, Msg: fmt.Sprintf(format, args...)}
}
