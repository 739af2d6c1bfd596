// Package debuginfo is the JSON debug-info sidecar produced by
// `tvm assemble -d` and consumed by `tvm debug`: a map from assembled
// byte offsets back to the source line and text they came from. Grounded
// on the original device's `assembler/debug_model.rs` DebugModel/DebugOp/
// DebugLabel shape, translated from serde structs into an encoding/json
// model with the same field set.
package debuginfo

// Op is one `.ops`-section instruction's debug record.
type Op struct {
	Byte          uint16 `json:"byte"`
	LineNum       int    `json:"line_num"`
	OriginalLine  string `json:"original_line"`
	ProcessedLine string `json:"processed_line"`
}

// DataString is one `.strings` or `.data` entry's debug record (the
// original Rust model uses the same shape for both).
type DataString struct {
	Addr         uint16 `json:"addr"`
	Key          string `json:"key"`
	LineNum      int    `json:"line_num"`
	OriginalLine string `json:"original_line"`
}

// Label is one label's debug record.
type Label struct {
	Byte         uint16 `json:"byte"`
	Name         string `json:"name"`
	LineNum      int    `json:"line_num"`
	OriginalLine string `json:"original_line"`
}

// Model is the complete debug-info sidecar for one assembled program.
type Model struct {
	Ops     []Op         `json:"ops"`
	Strings []DataString `json:"strings"`
	Data    []DataString `json:"data"`
	Labels  []Label      `json:"labels"`
}

func NewModel() *Model { return &Model{} }

func (m *Model) AddOp(byteOff uint16, lineNum int, original, processed string) {
	m.Ops = append(m.Ops, Op{Byte: byteOff, LineNum: lineNum, OriginalLine: original, ProcessedLine: processed})
}

func (m *Model) AddString(addr uint16, key string, lineNum int, original string) {
	m.Strings = append(m.Strings, DataString{Addr: addr, Key: key, LineNum: lineNum, OriginalLine: original})
}

func (m *Model) AddData(addr uint16, key string, lineNum int, original string) {
	m.Data = append(m.Data, DataString{Addr: addr, Key: key, LineNum: lineNum, OriginalLine: original})
}

func (m *Model) AddLabel(byteOff uint16, name string, lineNum int, original string) {
	m.Labels = append(m.Labels, Label{Byte: byteOff, Name: name, LineNum: lineNum, OriginalLine: original})
}
