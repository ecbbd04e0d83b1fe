package response

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	DefaultTableLimit = 10
	noDataMessage     = "No data found."
	columnSeparator   = " | "
)

// RenderTable lays rows out as an aligned text table of at most limit rows.
// Column widths only consider the rows that are displayed.
func RenderTable(columns []string, rows [][]any, limit int) string {
	return renderTable(columns, rows, len(rows), limit)
}

// renderTable reports totalRows in the trailing "more rows" line, which may
// exceed len(rows) when the result was capped upstream.
func renderTable(columns []string, rows [][]any, totalRows, limit int) string {
	if len(rows) == 0 {
		return noDataMessage
	}
	if limit <= 0 {
		limit = DefaultTableLimit
	}
	shown := rows
	if len(shown) > limit {
		shown = shown[:limit]
	}

	widths := make([]int, len(columns))
	for i, column := range columns {
		widths[i] = utf8.RuneCountInString(column)
	}
	for _, row := range shown {
		for i, value := range row {
			if n := utf8.RuneCountInString(FormatValue(value)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	header := joinPadded(columns, widths)
	lines := make([]string, 0, len(shown)+3)
	lines = append(lines, header, strings.Repeat("-", utf8.RuneCountInString(header)))

	cells := make([]string, len(columns))
	for _, row := range shown {
		for i, value := range row {
			cells[i] = FormatValue(value)
		}
		lines = append(lines, joinPadded(cells[:len(row)], widths))
	}
	if totalRows > len(shown) {
		lines = append(lines, fmt.Sprintf("... and %d more rows", totalRows-len(shown)))
	}
	return strings.Join(lines, "\n")
}

func joinPadded(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(columnSeparator)
		}
		b.WriteString(cell)
		if pad := widths[i] - utf8.RuneCountInString(cell); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return b.String()
}
