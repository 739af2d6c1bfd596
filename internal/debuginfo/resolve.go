package debuginfo

import (
	"encoding/json"
	"io"
	"sort"
)

// Save writes m as the JSON sidecar `tvm assemble -d` produces.
func Save(w io.Writer, m *Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Load reads a JSON sidecar written by Save.
func Load(r io.Reader) (*Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Resolve maps an ops-region byte offset (typically a crashed PC) back to
// its originating source line number and text (SPEC_FULL.md's supplemented
// PC-to-source lookup). It
// returns the debug record for the instruction that the offset falls
// within — the greatest recorded op byte at or before pc — since a trap
// mid-instruction (a truncated operand) would otherwise resolve to
// nothing at all.
func (m *Model) Resolve(pc uint16) (line int, source string, ok bool) {
	if len(m.Ops) == 0 {
		return 0, "", false
	}
	idx := sort.Search(len(m.Ops), func(i int) bool { return m.Ops[i].Byte > pc })
	if idx == 0 {
		return 0, "", false
	}
	op := m.Ops[idx-1]
	return op.LineNum, op.OriginalLine, true
}
