package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Options configures the tokenizer behavior.
type Options struct {
	// Delimiter is the field delimiter. Default: ';'
	Delimiter rune
}

// DefaultOptions returns default tokenizer options.
func DefaultOptions() Options {
	return Options{
		Delimiter: ';',
	}
}

// NewTokenizer creates a tokenizer using the default ';' delimiter.
func NewTokenizer() tokenizer.Tokenizer {
	return NewTokenizerWithOptions(DefaultOptions())
}

// NewTokenizerWithOptions creates a tokenizer with custom options.
//
// Matchers are tried in order:
//  1. Newline (only \n; a preceding \r stays in the field)
//  2. Delimiter
//  3. Field content
//
// When the delimiter is itself '\n' the newline matcher always wins, so every
// line becomes a single-field record.
func NewTokenizerWithOptions(opts Options) tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		tokenizer.StringMatcherFunc(TokenNewline, "\n"),
		tokenizer.StringMatcherFunc(TokenDelimiter, string(opts.Delimiter)),
		FieldContentMatcher(opts.Delimiter),
	)
}

// NewTokenizerWithStream creates a tokenizer over a pre-configured stream with
// the default delimiter.
func NewTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	return NewTokenizerWithStreamAndOptions(stream, DefaultOptions())
}

// NewTokenizerWithStreamAndOptions creates a tokenizer from a stream with custom options.
func NewTokenizerWithStreamAndOptions(stream tokenizer.Stream, opts Options) tokenizer.Tokenizer {
	tok := NewTokenizerWithOptions(opts)
	tok.InitializeFromStream(stream)
	return tok
}

// FieldContentMatcher creates a matcher for field content.
// Matches runs of characters that are neither the delimiter nor LF.
//
// Grammar:
//
//	Field = Character+ ;
//	Character = <any character except delimiter, LF> ;
//
// Uses ByteStream for ASCII scanning when available.
func FieldContentMatcher(delim rune) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if delim < 128 {
			if byteStream, ok := stream.(tokenizer.ByteStream); ok {
				return fieldContentByte(byteStream, byte(delim))
			}
		}
		return fieldContentRune(stream, delim)
	}
}

func fieldContentByte(stream tokenizer.ByteStream, delim byte) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok || b == delim || b == '\n' {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenField, []rune(string(value)))
}

func fieldContentRune(stream tokenizer.Stream, delim rune) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok || r == delim || r == '\n' {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenField, value)
}
