package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ToneStyle returns the style used to render a badge of the given tone.
func ToneStyle(t domain.Tone) lipgloss.Style {
	switch t {
	case domain.ToneOK:
		return StyleGreen
	case domain.ToneWarn:
		return StyleYellow
	case domain.ToneDanger:
		return StyleRed
	default:
		return StyleFg
	}
}

// StatusBadge renders a status with its tone, e.g. "● Evaluation".
func StatusBadge(s domain.Status) string {
	tone, ok := domain.StatusTone(s)
	if !ok {
		return StyleDim.Render("? " + string(s))
	}
	return ToneStyle(tone).Render("● " + string(s))
}

// RiskBadge renders a risk value with its tone.
func RiskBadge(r domain.Risk) string {
	tone, ok := domain.RiskTone(r)
	if !ok {
		return StyleDim.Render("? " + string(r))
	}
	if r == domain.RiskNone {
		return Dim("–")
	}
	return ToneStyle(tone).Render(strings.ToUpper(string(r)))
}

// AlertStyle maps an alert severity onto a style.
func AlertStyle(t aggregator.AlertType) lipgloss.Style {
	switch t {
	case aggregator.AlertDanger:
		return StyleRed
	case aggregator.AlertWarn:
		return StyleYellow
	default:
		return StyleBlue
	}
}

// AlertIcon returns the marker shown before an alert.
func AlertIcon(t aggregator.AlertType) string {
	switch t {
	case aggregator.AlertDanger:
		return "▲"
	case aggregator.AlertWarn:
		return "●"
	default:
		return "✔"
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
