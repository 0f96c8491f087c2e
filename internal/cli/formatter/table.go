package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// Table is an aligned text table. Cells may contain ANSI styling; widths are
// measured on visible characters.
type Table struct {
	Headers []string
	Rows    [][]string
	// RightAlign lists column indexes whose cells are padded on the left.
	RightAlign []int
}

// RenderTable renders a simple aligned table with a header separator line.
func RenderTable(headers []string, rows [][]string) string {
	return Table{Headers: headers, Rows: rows}.Render()
}

func (t Table) Render() string {
	cols := len(t.Headers)
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	right := make(map[int]bool, len(t.RightAlign))
	for _, c := range t.RightAlign {
		right[c] = true
	}

	var b strings.Builder
	header := make([]string, cols)
	for i, h := range t.Headers {
		header[i] = StyleHeader.Render(h)
	}
	t.writeRow(&b, header, widths, right)

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range t.Rows {
		t.writeRow(&b, row, widths, right)
	}
	return b.String()
}

func (t Table) writeRow(b *strings.Builder, row []string, widths []int, right map[int]bool) {
	cols := len(widths)
	for i := 0; i < cols; i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		pad := max(0, widths[i]-lipgloss.Width(cell))
		last := i == cols-1
		switch {
		case right[i]:
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
		case last:
			b.WriteString(cell)
		default:
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", pad))
		}
		if !last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
