package regrid

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// GridToNode converts a Grid to a Shape AST.
//
//   - Grid -> *ast.ArrayDataNode of records
//   - record -> *ast.ArrayDataNode of fields
//   - field -> *ast.LiteralNode holding a string
func GridToNode(g *Grid) ast.SchemaNode {
	pos := ast.Position{}

	records := make([]ast.SchemaNode, len(g.records))
	for i, rec := range g.records {
		fields := make([]ast.SchemaNode, len(rec))
		for j, f := range rec {
			fields[j] = ast.NewLiteralNode(f, pos)
		}
		records[i] = ast.NewArrayDataNode(fields, pos)
	}
	return ast.NewArrayDataNode(records, pos)
}

// GridFromNode converts a Shape AST back into a Grid.
//
// The node must be an array of arrays of literals forming a rectangular,
// non-empty grid; otherwise it fails with ErrInvalidFileFormat.
func GridFromNode(node ast.SchemaNode) (*Grid, error) {
	file, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, newError(KindInvalidFileFormat, fmt.Sprintf("expected array of records, got %T", node), nil)
	}

	elements := file.Elements()
	records := make([][]string, len(elements))
	for i, elem := range elements {
		rec, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, newError(KindInvalidFileFormat, fmt.Sprintf("record %d: expected array of fields, got %T", i+1, elem), nil)
		}
		fields := make([]string, len(rec.Elements()))
		for j, f := range rec.Elements() {
			s, err := literalString(f)
			if err != nil {
				return nil, newError(KindInvalidFileFormat, fmt.Sprintf("record %d field %d", i+1, j+1), err)
			}
			fields[j] = s
		}
		records[i] = fields
	}

	return NewGrid(records)
}
