package regrid

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Preview renders g as a text table, oriented by mode. When header is set the
// first output record becomes the table header.
func Preview(w io.Writer, g *Grid, mode Mode, header bool) {
	if mode == ColumnMajor {
		g = g.Transpose()
	}
	rows := g.Records()

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")

	if header {
		table.SetHeader(rows[0])
		rows = rows[1:]
	}
	table.AppendBulk(rows)
	table.Render()
}
