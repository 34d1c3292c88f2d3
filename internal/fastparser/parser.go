// Package fastparser splits delimited text into a grid without building an AST.
//
// It enforces the same structural rules as the AST parser in internal/parser
// (non-empty input, no empty records, equal field counts) and reports
// violations with the same *parser.FormatError values. For valid UTF-8 input
// both produce the same fields; Split keeps invalid bytes as they are, while
// the AST parser replaces them with U+FFFD.
package fastparser

import (
	"strings"

	"github.com/shapestone/shape-regrid/internal/parser"
)

// Split splits data into records on '\n' and each record into fields on delim.
// A single terminal '\n' does not start a new record.
//
// All fields are substrings of one copy of data, so the input slice may be
// released (or unmapped) once Split returns.
func Split(data []byte, delim byte) ([][]string, error) {
	if len(data) == 0 {
		return nil, &parser.FormatError{Line: 1, Err: parser.ErrEmptyInput}
	}

	s := string(data)
	s = strings.TrimSuffix(s, "\n")

	p := &splitter{
		input: s,
		delim: delim,
		width: -1,
	}
	return p.split()
}

type splitter struct {
	input string
	delim byte
	width int
}

func (p *splitter) split() ([][]string, error) {
	// Estimate capacity assuming ~9 bytes per field.
	estimated := len(p.input) / 9
	if estimated < 16 {
		estimated = 16
	}
	backing := make([]string, 0, estimated)
	records := make([][]string, 0, estimated/4+1)

	line := 1
	rest := p.input
	for {
		record, next, more := cut(rest, '\n')
		if record == "" {
			return nil, &parser.FormatError{Line: line, Err: parser.ErrEmptyRecord}
		}

		start := len(backing)
		backing = p.appendFields(backing, record)
		end := len(backing)

		count := end - start
		if p.width < 0 {
			p.width = count
		} else if count != p.width {
			return nil, &parser.FormatError{Line: line, Got: count, Want: p.width, Err: parser.ErrFieldCount}
		}
		records = append(records, backing[start:end:end])

		if !more {
			return records, nil
		}
		rest = next
		line++
	}
}

// appendFields appends the fields of a single record.
func (p *splitter) appendFields(dst []string, record string) []string {
	if p.delim == '\n' {
		return append(dst, record)
	}
	for {
		field, next, more := cut(record, p.delim)
		dst = append(dst, field)
		if !more {
			return dst
		}
		record = next
	}
}

// cut slices s around the first instance of sep.
func cut(s string, sep byte) (before, after string, found bool) {
	if i := strings.IndexByte(s, sep); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}
