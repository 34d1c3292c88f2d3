// Package regrid parses delimited text into a rectangular grid and writes the
// grid back out with a different delimiter, row by row or transposed.
//
// Input is split into records on '\n' and each record into fields on a single
// Delimiter. There is no quoting: every character between delimiters is field
// content, and whitespace is kept verbatim. A single terminal newline is
// ignored. Input that is empty, contains an empty line, or has records of
// different lengths is rejected with ErrInvalidFileFormat.
//
// # Parsing APIs
//
//   - Parse(string, Delimiter) - byte-level fast path returning a *Grid
//   - ParseNode(string, Delimiter) - LL(1) parser returning a Shape AST
//   - ParseReader(io.Reader, Delimiter) - AST parser over a buffered stream
//
// All three enforce the same rules and report the same errors. On valid UTF-8
// they also yield the same fields; the AST parsers replace invalid bytes with
// U+FFFD, Parse keeps them.
//
// # Formatting
//
//	g, err := regrid.Parse("a;b\nc;d\n", regrid.Semicolon)
//	if err != nil {
//	    // handle error
//	}
//	regrid.Format(g, regrid.Comma, regrid.RowMajor)    // "a,b\nc,d"
//	regrid.Format(g, regrid.Comma, regrid.ColumnMajor) // "a,c\nb,d"
//
// # Thread Safety
//
// Grids are immutable and every function is safe for concurrent use.
// Converter values may be shared between goroutines.
package regrid

import (
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-regrid/internal/fastparser"
	"github.com/shapestone/shape-regrid/internal/parser"
)

// Parse splits raw text into a Grid using delim.
func Parse(raw string, delim Delimiter) (*Grid, error) {
	records, err := fastparser.Split([]byte(raw), delim.byte())
	if err != nil {
		return nil, wrapFormatError(err)
	}
	return newGridUnchecked(records), nil
}

// ParseNode parses raw text into a Shape AST.
//
// Returns an *ast.ArrayDataNode of records; each record is an
// *ast.ArrayDataNode of *ast.LiteralNode string fields.
func ParseNode(raw string, delim Delimiter) (ast.SchemaNode, error) {
	p := parser.NewParserWithOptions(raw, parser.Options{Delimiter: rune(delim)})
	node, err := p.Parse()
	if err != nil {
		return nil, wrapFormatError(err)
	}
	return node, nil
}

// ParseReader parses text from r into a Shape AST using a buffered stream.
func ParseReader(r io.Reader, delim Delimiter) (ast.SchemaNode, error) {
	stream := tokenizer.NewStreamFromReader(r)
	p := parser.NewParserFromStreamWithOptions(stream, parser.Options{Delimiter: rune(delim)})
	node, err := p.Parse()
	if err != nil {
		return nil, wrapFormatError(err)
	}
	return node, nil
}

// Validate reports whether raw forms a valid grid under delim.
func Validate(raw string, delim Delimiter) error {
	_, err := Parse(raw, delim)
	return err
}

// wrapFormatError tags a parser failure as ErrInvalidFileFormat, keeping the
// *parser.FormatError reachable through errors.As.
func wrapFormatError(err error) error {
	return newError(KindInvalidFileFormat, "", err)
}
