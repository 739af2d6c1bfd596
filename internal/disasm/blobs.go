package disasm

import (
	"fmt"
	"strings"

	"github.com/tvmproject/tvm/internal/image"
)

// stringEntry/dataEntry are one reconstructed `.strings`/`.data` line, keyed
// by a synthesized name since the binary image carries no key names.
type stringEntry struct {
	Key    string
	Offset uint16
	Value  string
}

type dataEntry struct {
	Key    string
	Offset uint16
	Rows   [][]byte
}

// scanStrings walks a strings blob end to end, synthesizing `strN` keys in
// blob order (SPEC §6: "len:1 | bytes:len", one entry after another).
func scanStrings(blob []byte) ([]stringEntry, map[uint16]string, error) {
	var entries []stringEntry
	byOffset := map[uint16]string{}
	offset := 0
	n := 0
	for offset < len(blob) {
		s, err := image.ReadString(blob, uint16(offset))
		if err != nil {
			return nil, nil, fmt.Errorf("disasm: %w", err)
		}
		key := fmt.Sprintf("str%d", n)
		entries = append(entries, stringEntry{Key: key, Offset: uint16(offset), Value: s})
		byOffset[uint16(offset)] = key
		offset += 1 + len(s)
		n++
	}
	return entries, byOffset, nil
}

// scanData walks a data blob end to end, synthesizing `datN` keys in blob
// order, per SPEC §6's packed-table layout.
func scanData(blob []byte) ([]dataEntry, map[uint16]string, error) {
	var entries []dataEntry
	byOffset := map[uint16]string{}
	offset := 0
	n := 0
	for offset < len(blob) {
		oc, lens, err := image.TableHeader(blob, uint16(offset))
		if err != nil {
			return nil, nil, fmt.Errorf("disasm: %w", err)
		}
		rowsStart := offset + 1 + int(oc)
		rows := make([][]byte, oc)
		pos := rowsStart
		for i, l := range lens {
			rows[i] = blob[pos : pos+int(l)]
			pos += int(l)
		}
		key := fmt.Sprintf("dat%d", n)
		entries = append(entries, dataEntry{Key: key, Offset: uint16(offset), Rows: rows})
		byOffset[uint16(offset)] = key
		offset = pos
		n++
	}
	return entries, byOffset, nil
}

// formatStringLine renders one `.strings` entry, quoting and escaping
// embedded double quotes exactly as internal/asm.Parse expects to read
// them back.
func formatStringLine(e stringEntry) string {
	escaped := strings.ReplaceAll(e.Value, `"`, `""`)
	return fmt.Sprintf(`%s="%s"`, e.Key, escaped)
}

// formatDataLine renders one `.data` entry as a decimal-byte grid, the
// simplest element form internal/asm.parseByteLiteral always accepts.
func formatDataLine(e dataEntry) string {
	var rows []string
	for _, row := range e.Rows {
		var elems []string
		for _, b := range row {
			elems = append(elems, fmt.Sprintf("%d", b))
		}
		rows = append(rows, "["+strings.Join(elems, ",")+"]")
	}
	return fmt.Sprintf("%s=[%s]", e.Key, strings.Join(rows, ","))
}
