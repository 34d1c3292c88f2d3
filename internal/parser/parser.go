// Package parser implements LL(1) recursive descent parsing of delimited text
// into a rectangular grid represented as a Shape AST.
//
// Grammar:
//
//	File      = Record { Newline Record } [ Newline ] ;
//	Record    = Field { Delimiter Field } ;
//	Field     = [ FieldText ] ;
//
// A Record may not be empty (an empty line), the File must hold at least one
// Record, and every Record must have the same number of Fields.
package parser

import (
	"errors"
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-regrid/internal/tokenizer"
)

// Structural errors reported through FormatError.
var (
	// ErrEmptyInput indicates the input holds no records.
	ErrEmptyInput = errors.New("input has no records")
	// ErrEmptyRecord indicates an empty line inside the input.
	ErrEmptyRecord = errors.New("empty record")
	// ErrFieldCount indicates a record has the wrong number of fields.
	ErrFieldCount = errors.New("wrong number of fields")
)

// FormatError describes why input is not a rectangular, non-empty grid.
type FormatError struct {
	// Line is the 1-indexed line of the offending record.
	Line int
	// Got and Want are set for ErrFieldCount.
	Got, Want int
	// Err is one of ErrEmptyInput, ErrEmptyRecord or ErrFieldCount.
	Err error
}

func (e *FormatError) Error() string {
	if errors.Is(e.Err, ErrFieldCount) {
		return fmt.Sprintf("line %d: %v (got %d, expected %d)", e.Line, e.Err, e.Got, e.Want)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error { return e.Err }

// Options configures the parser behavior.
type Options struct {
	// Delimiter is the field delimiter. Default: ';'
	Delimiter rune
}

// DefaultOptions returns default parser options.
func DefaultOptions() Options {
	return Options{Delimiter: ';'}
}

// Parser implements LL(1) recursive descent parsing for delimited text.
// It maintains a single token lookahead.
type Parser struct {
	tokenizer      *shapetokenizer.Tokenizer
	current        *shapetokenizer.Token
	hasToken       bool
	opts           Options
	expectedFields int
	line           int
}

// NewParser creates a parser for the given input using the default delimiter.
func NewParser(input string) *Parser {
	return NewParserWithOptions(input, DefaultOptions())
}

// NewParserWithOptions creates a parser for the given input with custom options.
func NewParserWithOptions(input string, opts Options) *Parser {
	return NewParserFromStreamWithOptions(shapetokenizer.NewStream(input), opts)
}

// NewParserFromStream creates a parser over a pre-configured stream, such as
// one built with tokenizer.NewStreamFromReader.
func NewParserFromStream(stream shapetokenizer.Stream) *Parser {
	return NewParserFromStreamWithOptions(stream, DefaultOptions())
}

// NewParserFromStreamWithOptions creates a parser from a stream with custom options.
func NewParserFromStreamWithOptions(stream shapetokenizer.Stream, opts Options) *Parser {
	tok := tokenizer.NewTokenizerWithStreamAndOptions(stream, tokenizer.Options{
		Delimiter: opts.Delimiter,
	})

	p := &Parser{
		tokenizer:      &tok,
		opts:           opts,
		expectedFields: -1,
		line:           1,
	}
	p.advance()
	return p
}

// Parse parses the whole input.
//
// Returns an *ast.ArrayDataNode of records; each record is an *ast.ArrayDataNode
// of *ast.LiteralNode fields holding string values. Any structural violation
// aborts parsing with a *FormatError; no partial grid is returned.
func (p *Parser) Parse() (*ast.ArrayDataNode, error) {
	if !p.hasToken {
		return nil, &FormatError{Line: p.line, Err: ErrEmptyInput}
	}

	records := make([]ast.SchemaNode, 0, 16)
	for p.hasToken {
		record, err := p.parseRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)

		// A single terminal newline does not start another record.
		if p.peekKind(tokenizer.TokenNewline) {
			p.advance()
			p.line++
		}
	}

	return ast.NewArrayDataNode(records, ast.ZeroPosition()), nil
}

// parseRecord parses a single record.
//
// Grammar:
//
//	Record = Field { Delimiter Field } ;
func (p *Parser) parseRecord() (*ast.ArrayDataNode, error) {
	if p.peekKind(tokenizer.TokenNewline) {
		return nil, &FormatError{Line: p.line, Err: ErrEmptyRecord}
	}

	startPos := p.position()
	fields := make([]ast.SchemaNode, 0, 8)
	fields = append(fields, p.parseField())

	for p.peekKind(tokenizer.TokenDelimiter) {
		p.advance()
		fields = append(fields, p.parseField())
	}

	count := len(fields)
	if p.expectedFields < 0 {
		p.expectedFields = count
	} else if count != p.expectedFields {
		return nil, &FormatError{Line: p.line, Got: count, Want: p.expectedFields, Err: ErrFieldCount}
	}

	return ast.NewArrayDataNode(fields, startPos), nil
}

// parseField parses a single field. A missing FieldText token is an empty field.
//
// Grammar:
//
//	Field = [ FieldText ] ;
func (p *Parser) parseField() *ast.LiteralNode {
	pos := p.position()
	if p.peekKind(tokenizer.TokenField) {
		value := p.current.ValueString()
		p.advance()
		return ast.NewLiteralNode(value, pos)
	}
	return ast.NewLiteralNode("", pos)
}

// Helper methods

func (p *Parser) peekKind(kind string) bool {
	return p.hasToken && p.current != nil && p.current.Kind() == kind
}

// advance moves to next token.
func (p *Parser) advance() {
	token, ok := p.tokenizer.NextToken()
	if ok {
		p.current = token
		p.hasToken = true
	} else {
		p.hasToken = false
		p.current = nil
	}
}

// position returns current position for AST nodes.
func (p *Parser) position() ast.Position {
	if p.hasToken && p.current != nil {
		return ast.NewPosition(
			p.current.Offset(),
			p.current.Row(),
			p.current.Column(),
		)
	}
	return ast.ZeroPosition()
}
