package report

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Report is a parsed canonical report.
type Report struct {
	sections map[string]map[string]string
}

// Field returns the value of key in section, or "".
func (r *Report) Field(section, key string) string {
	if r == nil {
		return ""
	}
	return r.sections[section][key]
}

// Canonicalize rejects any report bytes that Render could not have produced
// and returns a copy of the input. Reports must be canonical before CID
// derivation or signature verification.
func Canonicalize(input []byte) ([]byte, error) {
	if _, err := Parse(input); err != nil {
		return nil, err
	}
	return append([]byte(nil), input...), nil
}

// Parse validates input as a canonical report and indexes its fields.
func Parse(input []byte) (*Report, error) {
	if len(input) == 0 {
		return nil, errors.New("empty report")
	}
	if !utf8.Valid(input) {
		return nil, errors.New("report must be valid UTF-8")
	}
	if bytes.HasPrefix(input, []byte{0xEF, 0xBB, 0xBF}) {
		return nil, errors.New("BOM not allowed")
	}
	if bytes.Contains(input, []byte("\r")) {
		return nil, errors.New("CR line endings not allowed")
	}
	if input[len(input)-1] != '\n' {
		return nil, errors.New("missing trailing newline")
	}

	lines := strings.Split(string(input), "\n")
	if len(lines) < 3 {
		return nil, errors.New("report too short")
	}
	if lines[0] != Preamble {
		return nil, errors.New("missing report preamble")
	}
	if lines[len(lines)-2] != Postamble {
		return nil, errors.New("missing report postamble")
	}
	for _, l := range lines {
		if strings.HasSuffix(l, " ") || strings.HasSuffix(l, "\t") {
			return nil, errors.New("trailing whitespace forbidden")
		}
	}

	r := &Report{sections: make(map[string]map[string]string, len(sectionOrder))}
	end := len(lines) - 2
	i := 1
	for _, sec := range sectionOrder {
		if i >= end || lines[i] != sec {
			return nil, fmt.Errorf("sections missing or out of order (expected %q)", sec)
		}
		i++
		start := i
		for i < end && lines[i] != "" {
			i++
		}
		if i >= end {
			return nil, fmt.Errorf("missing blank line after section %q", sec)
		}
		body := lines[start:i]
		if !sort.StringsAreSorted(body) {
			return nil, fmt.Errorf("section %q lines not sorted", sec)
		}
		fields := make(map[string]string, len(body))
		for _, l := range body {
			k, v, ok := strings.Cut(l, ": ")
			if !ok || k == "" || v == "" {
				return nil, fmt.Errorf("section %q: malformed line %q", sec, l)
			}
			if _, dup := fields[k]; dup {
				return nil, fmt.Errorf("section %q: duplicate field %q", sec, k)
			}
			fields[k] = v
		}
		r.sections[sec] = fields
		i++
	}
	if i != end {
		return nil, errors.New("unexpected content before postamble")
	}
	return r, nil
}
