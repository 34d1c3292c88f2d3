package regrid

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
)

// recordSeparator joins records in output text.
const recordSeparator = '\n'

// Format renders g with fields joined by out.
//
// RowMajor emits records in order; ColumnMajor emits g.Transpose(). Records are
// joined with '\n' and there is no terminal separator. Fields are written
// verbatim: no quoting or escaping is applied.
func Format(g *Grid, out Delimiter, mode Mode) string {
	var sb strings.Builder
	sb.Grow(estimateSize(g))
	writeGrid(&sb, g, out, mode)
	return sb.String()
}

// FormatTo writes the output of Format to w.
func FormatTo(w io.Writer, g *Grid, out Delimiter, mode Mode) error {
	var buf bytes.Buffer
	buf.Grow(estimateSize(g))
	writeGrid(&buf, g, out, mode)
	_, err := w.Write(buf.Bytes())
	return err
}

type runeWriter interface {
	io.StringWriter
	WriteRune(r rune) (int, error)
}

func writeGrid(w runeWriter, g *Grid, out Delimiter, mode Mode) {
	if mode == ColumnMajor {
		g = g.Transpose()
	}
	for i, rec := range g.records {
		if i > 0 {
			w.WriteRune(recordSeparator)
		}
		for j, field := range rec {
			if j > 0 {
				w.WriteRune(rune(out))
			}
			w.WriteString(field)
		}
	}
}

func estimateSize(g *Grid) int {
	n := g.Rows() * g.Cols()
	for _, rec := range g.records {
		for _, f := range rec {
			n += len(f)
		}
	}
	return n
}

// RenderNode renders a node produced by ParseNode, ParseReader or GridToNode.
//
// The node must describe a valid grid; anything else fails with
// ErrInvalidFileFormat.
func RenderNode(node ast.SchemaNode, out Delimiter, mode Mode) ([]byte, error) {
	g, err := GridFromNode(node)
	if err != nil {
		return nil, err
	}
	return []byte(Format(g, out, mode)), nil
}

// literalString returns the string held by a field node.
func literalString(node ast.SchemaNode) (string, error) {
	lit, ok := node.(*ast.LiteralNode)
	if !ok {
		return "", fmt.Errorf("unsupported node type for field: %T", node)
	}
	switch v := lit.Value().(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
