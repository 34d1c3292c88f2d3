package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
)

// records flattens a parsed node into [][]string.
func records(t *testing.T, node *ast.ArrayDataNode) [][]string {
	t.Helper()

	out := make([][]string, 0, node.Len())
	for i, elem := range node.Elements() {
		rec, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			t.Fatalf("record %d: expected *ast.ArrayDataNode, got %T", i, elem)
		}
		fields := make([]string, 0, rec.Len())
		for j, f := range rec.Elements() {
			lit, ok := f.(*ast.LiteralNode)
			if !ok {
				t.Fatalf("record %d field %d: expected *ast.LiteralNode, got %T", i, j, f)
			}
			s, ok := lit.Value().(string)
			if !ok {
				t.Fatalf("record %d field %d: expected string value, got %T", i, j, lit.Value())
			}
			fields = append(fields, s)
		}
		out = append(out, fields)
	}
	return out
}

func equalRecords(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// TestParse_Valid covers inputs that form a rectangular, non-empty grid.
// Grammar: File = Record { Newline Record } [ Newline ]
func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name  string
		delim rune
		input string
		want  [][]string
	}{
		{
			name:  "two by two with terminal newline",
			delim: ';',
			input: "a;b\nc;d\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "no terminal newline",
			delim: ';',
			input: "a;b\nc;d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "single field",
			delim: ';',
			input: "hello",
			want:  [][]string{{"hello"}},
		},
		{
			name:  "empty fields",
			delim: ';',
			input: ";;\na;;b\n",
			want:  [][]string{{"", "", ""}, {"a", "", "b"}},
		},
		{
			name:  "whitespace kept verbatim",
			delim: ';',
			input: " a ;\tb\r\n c; d \r\n",
			want:  [][]string{{" a ", "\tb\r"}, {" c", " d \r"}},
		},
		{
			name:  "numbers stay text",
			delim: ';',
			input: "007;1e3\n",
			want:  [][]string{{"007", "1e3"}},
		},
		{
			name:  "tab delimiter",
			delim: '\t',
			input: "a\tb\tc\n1\t2\t3\n",
			want:  [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:  "carriage return delimiter",
			delim: '\r',
			input: "a\rb\nc\rd\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "newline delimiter gives single-field records",
			delim: '\n',
			input: "a;b\nc;d\n",
			want:  [][]string{{"a;b"}, {"c;d"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := NewParserWithOptions(tt.input, Options{Delimiter: tt.delim}).Parse()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := records(t, node); !equalRecords(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  error
		wantLine int
	}{
		{"empty input", "", ErrEmptyInput, 1},
		{"only newline", "\n", ErrEmptyRecord, 1},
		{"ragged rows", "a;b\nc\n", ErrFieldCount, 2},
		{"longer later row", "a;b\nc;d\ne;f;g\n", ErrFieldCount, 3},
		{"blank line in middle", "a;b\n\nc;d\n", ErrEmptyRecord, 2},
		{"two terminal newlines", "a;b\n\n", ErrEmptyRecord, 2},
		{"leading blank line", "\na;b\n", ErrEmptyRecord, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := NewParser(tt.input).Parse()
			if err == nil {
				t.Fatalf("expected error, got %v", node)
			}
			if node != nil {
				t.Errorf("expected no partial result, got %v", node)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}

			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %T", err)
			}
			if fe.Line != tt.wantLine {
				t.Errorf("line = %d, want %d", fe.Line, tt.wantLine)
			}
		})
	}
}

func TestFormatError_Error(t *testing.T) {
	err := &FormatError{Line: 2, Got: 1, Want: 2, Err: ErrFieldCount}
	if got, want := err.Error(), "line 2: wrong number of fields (got 1, expected 2)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = &FormatError{Line: 4, Err: ErrEmptyRecord}
	if got, want := err.Error(), "line 4: empty record"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewParserFromStream(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		sb.WriteString("x|y|z\n")
	}

	stream := shapetokenizer.NewStreamFromReader(strings.NewReader(sb.String()))
	node, err := NewParserFromStreamWithOptions(stream, Options{Delimiter: '|'}).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := records(t, node)
	if len(got) != 500 {
		t.Fatalf("got %d records, want 500", len(got))
	}
	for i, rec := range got {
		if len(rec) != 3 || rec[0] != "x" || rec[2] != "z" {
			t.Fatalf("record %d = %q", i, rec)
		}
	}
}

func TestNewParser_DefaultDelimiter(t *testing.T) {
	stream := shapetokenizer.NewStream("a;b")
	node, err := NewParserFromStream(stream).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := records(t, node); !equalRecords(got, [][]string{{"a", "b"}}) {
		t.Errorf("got %q", got)
	}
}
