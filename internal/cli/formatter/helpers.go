package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// CurrencyCode prefixes every rendered budget amount.
const CurrencyCode = "AED"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatBudget renders an amount with thousands separators, rounded to whole
// units: "AED 42,000,000".
func FormatBudget(amount float64) string {
	return CurrencyCode + " " + humanize.Comma(int64(math.Round(amount)))
}

// FormatBudgetPtr renders an optional budget, "--" when unset.
func FormatBudgetPtr(amount *float64) string {
	if amount == nil {
		return "--"
	}
	return FormatBudget(*amount)
}

// DaysLabel describes a day offset relative to today. A nil offset means the
// date could not be parsed.
func DaysLabel(days *int) string {
	if days == nil {
		return "invalid date"
	}
	switch d := *days; {
	case d == 0:
		return "Today"
	case d == 1:
		return "Tomorrow"
	case d == -1:
		return "Yesterday"
	case d > 0:
		return fmt.Sprintf("In %dd", d)
	default:
		return fmt.Sprintf("%dd ago", -d)
	}
}

// DaysLabelStyled returns DaysLabel with urgency coloring: red when past or
// within two days, yellow within window.
func DaysLabelStyled(days *int, window int) string {
	text := DaysLabel(days)
	switch {
	case days == nil, *days <= 2:
		return StyleRed.Render(text)
	case *days <= window:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// HumanTime renders t relative to now, e.g. "3 hours ago".
func HumanTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// ApprovalsSummary renders missing approvals, or a check mark when complete.
func ApprovalsSummary(missing []string) string {
	if len(missing) == 0 {
		return StyleGreen.Render("✔ all")
	}
	return StyleYellow.Render("missing " + strings.Join(missing, ", "))
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to width visible characters, ending in an ellipsis.
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
