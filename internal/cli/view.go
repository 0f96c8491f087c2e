package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies a screen on the view stack.
type ViewID int

const (
	ViewDashboard ViewID = iota
	ViewRecords
	ViewFilter
)

func (id ViewID) String() string {
	switch id {
	case ViewDashboard:
		return "dashboard"
	case ViewRecords:
		return "records"
	case ViewFilter:
		return "filter"
	}
	return "unknown"
}

// View is a screen of the TUI: a tea.Model plus the title used in the
// breadcrumb and the key hints shown in the status bar.
type View interface {
	tea.Model
	ID() ViewID
	Title() string
	ShortHelp() []key.Binding
}
