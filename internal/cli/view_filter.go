package cli

import (
	"strings"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// filterView wraps the filter form as a View on the navigation stack.
// Submitting sends a filterAppliedMsg; esc sends formCancelledMsg.
type filterView struct {
	state *SharedState
	form  *huh.Form

	query  string
	site   string
	status string
}

func newFilterView(state *SharedState) *filterView {
	v := &filterView{
		state:  state,
		query:  state.Filter.TextQuery,
		site:   orAll(state.Filter.Site),
		status: orAll(state.Filter.Status),
	}

	sites := []string{aggregator.All}
	statuses := aggregator.StatusOptions(domain.DefaultStageSet())
	if d := state.Dashboard; d != nil {
		sites, statuses = d.SiteOptions, d.StatusOptions
	}

	v.form = huh.NewForm(
		huh.NewGroup(
			queryInput(&v.query),
			optionSelect("Site", sites, &v.site),
			optionSelect("Status", statuses, &v.status),
		),
	).WithTheme(rfpwatchHuhTheme()).WithShowHelp(false)
	return v
}

func orAll(s string) string {
	if s == "" {
		return aggregator.All
	}
	return s
}

// criteria returns the filter the form currently describes.
func (v *filterView) criteria() aggregator.FilterCriteria {
	return aggregator.FilterCriteria{
		TextQuery: strings.TrimSpace(v.query),
		Site:      orAll(v.site),
		Status:    orAll(v.status),
	}
}

func (v *filterView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *filterView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape cancels the form.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, func() tea.Msg { return formCancelledMsg{} }
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		return v, applyFilter(v.criteria())
	}
	return v, cmd
}

func (v *filterView) View() string {
	return "\n" + v.form.View()
}

func (v *filterView) ID() ViewID    { return ViewFilter }
func (v *filterView) Title() string { return "Filter" }
func (v *filterView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/apply")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
