package asm

import (
	"fmt"
	"strings"
)

// parseDataGrid parses a `.data` section value of the form
// `[[e,e,...],[e,e,...],...]` where each element is a decimal byte, `xHH`,
// `b00000000`, `'c'`, or `"str"` (expanded byte-by-byte).
func parseDataGrid(content string) ([][]byte, error) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "[") || !strings.HasSuffix(content, "]") {
		return nil, fmt.Errorf("data value must be of the form [[...],[...]]")
	}
	rows, rest, err := parseRowList(content)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, fmt.Errorf("unexpected trailing content: %q", rest)
	}
	return rows, nil
}

// parseRowList consumes an outer `[ ... ]` containing comma-separated
// inner rows, returning the parsed rows and whatever trails the closing
// bracket.
func parseRowList(s string) ([][]byte, string, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || s[0] != '[' {
		return nil, s, fmt.Errorf("expected '['")
	}
	s = s[1:]
	var rows [][]byte
	for {
		s = strings.TrimSpace(s)
		if len(s) == 0 {
			return nil, s, fmt.Errorf("unterminated data list")
		}
		if s[0] == ']' {
			return rows, s[1:], nil
		}
		if s[0] != '[' {
			return nil, s, fmt.Errorf("expected '[' to start a row, found %q", s)
		}
		row, rest, err := parseByteRow(s)
		if err != nil {
			return nil, s, err
		}
		rows = append(rows, row)
		s = strings.TrimSpace(rest)
		if len(s) > 0 && s[0] == ',' {
			s = s[1:]
			continue
		}
		if len(s) > 0 && s[0] == ']' {
			return rows, s[1:], nil
		}
		return nil, s, fmt.Errorf("expected ',' or ']' after row, found %q", s)
	}
}

func parseByteRow(s string) ([]byte, string, error) {
	if len(s) == 0 || s[0] != '[' {
		return nil, s, fmt.Errorf("expected '['")
	}
	s = s[1:]
	var row []byte
	for {
		s = strings.TrimSpace(s)
		if len(s) == 0 {
			return nil, s, fmt.Errorf("unterminated row")
		}
		if s[0] == ']' {
			return row, s[1:], nil
		}
		elem, rest, err := takeDataElement(s)
		if err != nil {
			return nil, s, err
		}
		row = append(row, elem...)
		s = strings.TrimSpace(rest)
		if len(s) > 0 && s[0] == ',' {
			s = s[1:]
			continue
		}
		if len(s) > 0 && s[0] == ']' {
			return row, s[1:], nil
		}
		return nil, s, fmt.Errorf("expected ',' or ']' within row, found %q", s)
	}
}

// takeDataElement consumes one grid element — a quoted string (expanded
// byte-by-byte) or a single literal token — returning its bytes and the
// unconsumed remainder.
func takeDataElement(s string) ([]byte, string, error) {
	if s[0] == '"' {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return nil, s, fmt.Errorf("unterminated string literal in data element")
		}
		str := s[1 : 1+end]
		return []byte(str), s[2+end:], nil
	}
	end := 0
	for end < len(s) && s[end] != ',' && s[end] != ']' {
		end++
	}
	tok := strings.TrimSpace(s[:end])
	b, ok := parseByteLiteral(tok)
	if !ok {
		return nil, s, fmt.Errorf("invalid data element %q", tok)
	}
	return []byte{b}, s[end:], nil
}
