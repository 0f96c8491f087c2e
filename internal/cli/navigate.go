package cli

import (
	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg asks the appModel to recompute the dashboard.
type refreshViewMsg struct{}

// filterAppliedMsg replaces the active filter and recomputes the dashboard.
// The filter form sends it on submit; the appModel pops the form first.
type filterAppliedMsg struct {
	filter aggregator.FilterCriteria
}

// formCancelledMsg is sent when the filter form is dismissed with esc.
type formCancelledMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func refreshView() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

func applyFilter(f aggregator.FilterCriteria) tea.Cmd {
	return func() tea.Msg { return filterAppliedMsg{filter: f} }
}
