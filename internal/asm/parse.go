package asm

import (
	"strings"

	"github.com/tvmproject/tvm/internal/image"
)

type section int

const (
	secHeader section = iota
	secStrings
	secData
	secOps
)

// Parse tokenizes assembly source into a ProgramModel: header, `.strings`,
// `.data`, and `.ops` sub-grammars, per SPEC §4.B phase 1. Section markers
// are case-sensitive, and so are string/data keys, labels and constant
// names; mnemonics, register names and the `const` keyword are not.
func Parse(src string) (*ProgramModel, []AssemblerError) {
	pm := &ProgramModel{Constants: map[string]constEntry{}}
	var errs []AssemblerError

	lines := strings.Split(src, "\n")
	sec := secHeader
	var pendingLabels []string
	lastWasBareLabel := false

	for i, raw := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if sec != secStrings {
			trimmed = strings.TrimSpace(stripOpsComment(trimmed))
			if trimmed == "" {
				continue
			}
		}

		switch trimmed {
		case ".strings":
			if sec == secOps {
				errs = append(errs, errAt(lineNum, "unexpected .strings divider, all data and strings must be defined before .ops"))
				continue
			}
			sec = secStrings
			continue
		case ".data":
			if sec == secOps {
				errs = append(errs, errAt(lineNum, "unexpected .data divider, all data and strings must be defined before .ops"))
				continue
			}
			sec = secData
			continue
		case ".ops":
			if sec == secOps {
				errs = append(errs, errAt(lineNum, "unexpected .ops divider, already in ops section"))
				continue
			}
			sec = secOps
			continue
		}

		switch sec {
		case secHeader:
			if pm.Name == "" {
				if len(trimmed) > image.MaxNameLen {
					errs = append(errs, errAt(lineNum, "program name exceeds %d bytes", image.MaxNameLen))
					continue
				}
				pm.Name = trimmed
			} else if pm.Version == "" {
				if len(trimmed) > image.MaxVersionLen {
					errs = append(errs, errAt(lineNum, "program version exceeds %d bytes", image.MaxVersionLen))
					continue
				}
				pm.Version = trimmed
			} else {
				errs = append(errs, errAt(lineNum, "unexpected content before a section divider: %q", trimmed))
			}

		case secStrings:
			entry, err := parseStringLine(trimmed, lineNum)
			if err != nil {
				errs = append(errs, errAt(lineNum, "%s", err))
				continue
			}
			pm.Strings = append(pm.Strings, entry)

		case secData:
			entry, err := parseDataLine(trimmed, lineNum)
			if err != nil {
				errs = append(errs, errAt(lineNum, "%s", err))
				continue
			}
			pm.Data = append(pm.Data, entry)

		case secOps:
			label, rest, hasLabel := splitLabel(trimmed)
			if hasLabel {
				pendingLabels = append(pendingLabels, label)
			}
			rest = strings.TrimSpace(rest)
			if rest == "" {
				if hasLabel {
					if lastWasBareLabel {
						errs = append(errs, errAt(lineNum, "empty label: %q has no instruction between it and the previous label", label))
					}
					lastWasBareLabel = true
				}
				continue
			}
			lastWasBareLabel = false
			fields := strings.Fields(rest)
			mnemonic := strings.ToLower(fields[0])
			if mnemonic == "const" {
				if err := parseConstLine(pm, fields, lineNum); err != nil {
					errs = append(errs, errAt(lineNum, "%s", err))
				}
				continue
			}
			tokens := substituteConstants(pm, fields[1:])
			pm.Ops = append(pm.Ops, OpLine{
				Mnemonic: mnemonic,
				Tokens:   tokens,
				Labels:   pendingLabels,
				Line:     lineNum,
				Raw:      trimmed,
			})
			pendingLabels = nil
		}
	}

	if len(pendingLabels) > 0 {
		errs = append(errs, errAt(len(lines), "label(s) %v at end of file bind to no instruction", pendingLabels))
	}
	if pm.Name == "" {
		errs = append(errs, errAt(1, "program name missing"))
	}
	if pm.Version == "" {
		errs = append(errs, errAt(1, "program version missing"))
	}

	return pm, errs
}

// stripOpsComment removes a `#`-comment, respecting double-quoted strings.
func stripOpsComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == '"' {
			inQuote = !inQuote
		} else if c == '#' && !inQuote {
			return line[:i]
		}
	}
	return line
}

// splitLabel peels a leading `name:` off an ops-section line.
func splitLabel(line string) (label, rest string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return "", line, false
	}
	candidate := strings.TrimSpace(line[:idx])
	if candidate == "" || strings.ContainsAny(candidate, " \t") {
		return "", line, false
	}
	return candidate, line[idx+1:], true
}

func parseStringLine(line string, lineNum int) (StringEntry, error) {
	key, content, ok := strings.Cut(line, "=")
	if !ok {
		return StringEntry{}, errAt(lineNum, "string must be defined as <key>=<content>")
	}
	key = strings.TrimSpace(key)
	content = strings.TrimSpace(content)
	if content == "" {
		return StringEntry{}, errAt(lineNum, "string %q has no content", key)
	}
	if len(content) >= 2 && strings.HasPrefix(content, `"`) && strings.HasSuffix(content, `"`) {
		inner := content[1 : len(content)-1]
		content = strings.ReplaceAll(inner, `""`, `"`)
	}
	if len(content) > 255 {
		return StringEntry{}, errAt(lineNum, "string %q exceeds 255 bytes", key)
	}
	return StringEntry{Key: key, Value: content, Line: lineNum}, nil
}

func parseDataLine(line string, lineNum int) (DataEntry, error) {
	key, content, ok := strings.Cut(line, "=")
	if !ok {
		return DataEntry{}, errAt(lineNum, "data must be defined as <key>=[[...],[...]]")
	}
	key = strings.TrimSpace(key)
	rows, err := parseDataGrid(strings.TrimSpace(content))
	if err != nil {
		return DataEntry{}, errAt(lineNum, "data %q: %s", key, err)
	}
	if len(rows) > image.MaxOuterCount {
		return DataEntry{}, errAt(lineNum, "data %q has more than %d rows", key, image.MaxOuterCount)
	}
	for _, r := range rows {
		if len(r) > image.MaxInnerLen {
			return DataEntry{}, errAt(lineNum, "data %q has a row longer than %d bytes", key, image.MaxInnerLen)
		}
	}
	return DataEntry{Key: key, Rows: rows, Line: lineNum}, nil
}

func parseConstLine(pm *ProgramModel, fields []string, lineNum int) error {
	if len(fields) < 3 {
		return errAt(lineNum, "const must be defined as const <key> <value>")
	}
	key, value := fields[1], fields[2]
	if err := validateConstName(key, lineNum); err != nil {
		return err
	}
	if _, exists := pm.Constants[key]; exists {
		return errAt(lineNum, "constant %q already defined", key)
	}
	pm.Constants[key] = constEntry{Value: value, Line: lineNum}
	return nil
}

func validateConstName(name string, lineNum int) error {
	lowered := strings.ToLower(name)
	if _, ok := image.DataRegByName(lowered); ok {
		return errAt(lineNum, "constant name %q collides with a register", name)
	}
	if _, ok := image.AddrRegByName(lowered); ok {
		return errAt(lineNum, "constant name %q collides with a register", name)
	}
	for _, m := range image.Mnemonics() {
		if lowered == m {
			return errAt(lineNum, "constant name %q collides with a mnemonic", name)
		}
	}
	return nil
}

// substituteConstants replaces any token matching a previously-defined
// constant with its literal value text, word for word (SPEC §4.B phase 2:
// "must be defined before use").
func substituteConstants(pm *ProgramModel, tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		if c, ok := pm.Constants[t]; ok {
			out[i] = c.Value
		} else {
			out[i] = t
		}
	}
	return out
}
