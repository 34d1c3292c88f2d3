package regrid

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// Delimiter is a validated single-character field separator.
//
// The set is closed: values are only produced by the constants below or by
// ValidateDelimiter.
type Delimiter rune

// Recognized delimiters.
const (
	Semicolon      Delimiter = ';'
	Tab            Delimiter = '\t'
	Newline        Delimiter = '\n'
	CarriageReturn Delimiter = '\r'
	Comma          Delimiter = ','
	Pipe           Delimiter = '|'
)

var delimiterNames = map[Delimiter]string{
	Semicolon:      "semicolon",
	Tab:            "tab",
	Newline:        "newline",
	CarriageReturn: "carriage-return",
	Comma:          "comma",
	Pipe:           "pipe",
}

// Delimiters returns the recognized delimiters in character order.
func Delimiters() []Delimiter {
	keys := maps.Keys(delimiterNames)
	slices.Sort(keys)
	return keys
}

// ValidateDelimiter accepts a token exactly equal to one recognized delimiter
// character. Anything else, including the empty string and multi-character
// tokens, fails with ErrInvalidDelimiter.
func ValidateDelimiter(token string) (Delimiter, error) {
	for d := range delimiterNames {
		if token == d.String() {
			return d, nil
		}
	}
	return 0, newError(KindInvalidDelimiter, fmt.Sprintf("%q (accepted: %s)", token, acceptedDelimiters()), nil)
}

// String returns the delimiter character.
func (d Delimiter) String() string { return string(rune(d)) }

// Name returns a readable name for logs and messages.
func (d Delimiter) Name() string {
	if name, ok := delimiterNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Delimiter(%q)", rune(d))
}

// byte returns the delimiter as a single byte; every recognized delimiter is ASCII.
func (d Delimiter) byte() byte { return byte(d) }

func acceptedDelimiters() string {
	quoted := make([]string, 0, len(delimiterNames))
	for _, d := range Delimiters() {
		quoted = append(quoted, fmt.Sprintf("%q", d.String()))
	}
	return strings.Join(quoted, ", ")
}
