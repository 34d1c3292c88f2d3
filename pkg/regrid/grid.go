package regrid

import (
	"fmt"
	"slices"
)

// Grid is an immutable rectangular table of string fields.
//
// A Grid always holds at least one record and every record holds the same,
// non-zero number of fields. Grids are built by Parse, NewGrid or GridFromNode
// and are never modified afterwards; accessors return copies.
type Grid struct {
	records [][]string
	width   int
}

// NewGrid copies records into a Grid. It fails with ErrInvalidFileFormat when
// records is empty, a record is empty, or the records differ in length.
func NewGrid(records [][]string) (*Grid, error) {
	if len(records) == 0 {
		return nil, newError(KindInvalidFileFormat, "grid has no records", nil)
	}

	width := len(records[0])
	backing := make([]string, 0, width*len(records))
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		if len(rec) == 0 {
			return nil, newError(KindInvalidFileFormat, fmt.Sprintf("record %d is empty", i+1), nil)
		}
		if len(rec) != width {
			return nil, newError(KindInvalidFileFormat,
				fmt.Sprintf("record %d has %d fields, expected %d", i+1, len(rec), width), nil)
		}
		start := len(backing)
		backing = append(backing, rec...)
		rows = append(rows, backing[start:len(backing):len(backing)])
	}

	return &Grid{records: rows, width: width}, nil
}

// newGridUnchecked wraps records the caller has already validated and owns.
func newGridUnchecked(records [][]string) *Grid {
	return &Grid{records: records, width: len(records[0])}
}

// Rows returns the number of records.
func (g *Grid) Rows() int { return len(g.records) }

// Cols returns the number of fields in every record.
func (g *Grid) Cols() int { return g.width }

// Field returns the field at record r, column c. It panics when out of range.
func (g *Grid) Field(r, c int) string { return g.records[r][c] }

// Record returns a copy of record r.
func (g *Grid) Record(r int) []string { return slices.Clone(g.records[r]) }

// Records returns a deep copy of the grid contents.
func (g *Grid) Records() [][]string {
	out := make([][]string, len(g.records))
	for i, rec := range g.records {
		out[i] = slices.Clone(rec)
	}
	return out
}

// Transpose returns a new grid whose i-th record is the i-th field of every
// record of g, in original order. Transpose(Transpose(g)) equals g.
func (g *Grid) Transpose() *Grid {
	rows := len(g.records)
	backing := make([]string, rows*g.width)
	out := make([][]string, g.width)
	for c := 0; c < g.width; c++ {
		rec := backing[c*rows : (c+1)*rows : (c+1)*rows]
		for r := 0; r < rows; r++ {
			rec[r] = g.records[r][c]
		}
		out[c] = rec
	}
	return newGridUnchecked(out)
}

// Equal reports whether g and other hold the same fields in the same shape.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.width != other.width || len(g.records) != len(other.records) {
		return false
	}
	for i := range g.records {
		if !slices.Equal(g.records[i], other.records[i]) {
			return false
		}
	}
	return true
}
