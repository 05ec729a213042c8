package render

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteTable prints rows as an ASCII table. The last column is right aligned
// since it always holds counts.
func WriteTable(w io.Writer, columns []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	align := make([]int, len(columns))
	for i := range align {
		align[i] = tablewriter.ALIGN_LEFT
	}
	if len(align) > 0 {
		align[len(align)-1] = tablewriter.ALIGN_RIGHT
	}
	table.SetColumnAlignment(align)

	table.AppendBulk(rows)
	table.Render()
}
