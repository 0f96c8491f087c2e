package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderShareBar renders count as a share of total, like "████░░░░  3".
// An empty total draws an empty bar.
func RenderShareBar(count, total, width int, style lipgloss.Style) string {
	if width < 2 {
		width = 2
	}
	filled := 0
	if total > 0 && count > 0 {
		filled = count * width / total
		if filled == 0 {
			filled = 1
		}
	}
	filled = min(filled, width)

	bar := style.Render(strings.Repeat(filledBlock, filled)) + StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
	return fmt.Sprintf("%s %3d", bar, count)
}

// RenderProgress renders a percentage bar like [████░░░░] 45%, used for the
// vendor submission rate. Colors go green above 66%, yellow from 33%, red below.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	if width < 2 {
		width = 2
	}

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
