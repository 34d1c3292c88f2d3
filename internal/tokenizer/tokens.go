// Package tokenizer provides delimited-text tokenization using Shape's tokenizer framework.
package tokenizer

// Token type constants for delimited text.
//
// The tokenizer emits three kinds of tokens. There is no quoting: every byte
// that is not the field delimiter or the record separator is field content.
const (
	// Structural tokens
	TokenDelimiter = "Delimiter" // configured field delimiter
	TokenNewline   = "Newline"   // \n (record separator)

	// Field content token
	TokenField = "Field" // run of characters that are neither delimiter nor newline

	// Special token
	TokenEOF = "EOF" // End of file
)
