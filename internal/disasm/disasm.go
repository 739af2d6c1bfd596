package disasm

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/tvmproject/tvm/internal/image"
)

// Decompile renders img back into reassemblable textual source: a header,
// a `.strings` section, a `.data` section, and a `.ops` section with labels
// synthesized for every jump/call target (SPEC §4.H). Reassembling the
// output is expected to reproduce img byte-for-byte, modulo the synthetic
// key/label names (SPEC §8's round-trip property).
func Decompile(img *image.Image) (string, error) {
	ops, err := scanOps(img.Ops)
	if err != nil {
		return "", err
	}
	strEntries, strByOffset, err := scanStrings(img.Strings)
	if err != nil {
		return "", err
	}
	dataEntries, dataByOffset, err := scanData(img.Data)
	if err != nil {
		return "", err
	}

	labels := synthesizeLabels(jumpTargets(ops))

	var b strings.Builder
	fmt.Fprintln(&b, img.Name)
	fmt.Fprintln(&b, img.Version)

	if len(strEntries) > 0 {
		fmt.Fprintln(&b, ".strings")
		for _, e := range strEntries {
			fmt.Fprintln(&b, formatStringLine(e))
		}
	}
	if len(dataEntries) > 0 {
		fmt.Fprintln(&b, ".data")
		for _, e := range dataEntries {
			fmt.Fprintln(&b, formatDataLine(e))
		}
	}

	fmt.Fprintln(&b, ".ops")
	for _, op := range ops {
		if label, ok := labels[op.Offset]; ok {
			fmt.Fprintf(&b, "%s:\n", label)
		}
		line, err := formatInstruction(op, labels, strByOffset, dataByOffset)
		if err != nil {
			return "", err
		}
		fmt.Fprintln(&b, line)
	}

	return b.String(), nil
}

// synthesizeLabels assigns L0, L1, ... to every jump/call target offset, in
// ascending address order so output is deterministic.
func synthesizeLabels(targets map[uint16]bool) map[uint16]string {
	offsets := make([]uint16, 0, len(targets))
	for off := range targets {
		offsets = append(offsets, off)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	labels := make(map[uint16]string, len(offsets))
	for i, off := range offsets {
		labels[off] = fmt.Sprintf("L%d", i)
	}
	return labels
}

func formatInstruction(op rawOp, labels map[uint16]string, strByOffset, dataByOffset map[uint16]string) (string, error) {
	tokens := make([]string, 0, 1+len(op.Shape.Operands))
	tokens = append(tokens, op.Shape.Mnemonic)
	for i, k := range op.Shape.Operands {
		tok, err := formatOperand(k, op.Operands[i], labels, strByOffset, dataByOffset)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, tok)
	}
	return strings.Join(tokens, " "), nil
}

func formatOperand(k image.Kind, raw []byte, labels, strByOffset, dataByOffset map[uint16]string) (string, error) {
	switch k {
	case image.KindDataReg:
		return image.DataReg(raw[0]).String(), nil
	case image.KindAddrReg:
		return image.AddrReg(raw[0]).String(), nil
	case image.KindNum:
		return fmt.Sprintf("%d", raw[0]), nil
	case image.KindAddr:
		addr := binary.BigEndian.Uint16(raw)
		if name, ok := labels[addr]; ok {
			return name, nil
		}
		return fmt.Sprintf("@%d", addr), nil
	case image.KindStringID:
		off := binary.BigEndian.Uint16(raw)
		name, ok := strByOffset[off]
		if !ok {
			return "", fmt.Errorf("disasm: string operand references offset %d with no string entry", off)
		}
		return name, nil
	case image.KindDataID:
		off := binary.BigEndian.Uint16(raw)
		name, ok := dataByOffset[off]
		if !ok {
			return "", fmt.Errorf("disasm: data operand references offset %d with no data entry", off)
		}
		return name, nil
	case image.KindHandle:
		h := image.DecodeHandle(raw)
		if h.IsReg {
			return image.DataReg(h.Val).String(), nil
		}
		return fmt.Sprintf("%d", h.Val), nil
	}
	return "", fmt.Errorf("disasm: unhandled operand kind %v", k)
}
