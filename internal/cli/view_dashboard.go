package cli

import (
	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardView is the home screen of the TUI: the full dashboard in a
// scrollable viewport.
type dashboardView struct {
	state *SharedState
	vp    viewport.Model
}

func newDashboardView(state *SharedState) *dashboardView {
	vp := viewport.New(state.Width, dashboardViewportHeight(state))
	vp.KeyMap = dashboardViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return &dashboardView{state: state, vp: vp}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	hints := []key.Binding{
		key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "records")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	}
	if !v.state.Filter.IsIdentity() {
		hints = append(hints, key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filter")))
	}
	return append(hints,
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	)
}

func (v *dashboardView) Init() tea.Cmd {
	v.refreshContent()
	return nil
}

func (v *dashboardView) refreshContent() {
	if v.state.Dashboard == nil {
		return
	}
	v.vp.SetContent(formatter.FormatDashboard(v.state.Dashboard))
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.refreshContent()
		return v, nil

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = dashboardViewportHeight(v.state)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "l", "enter":
			return v, pushView(newRecordListView(v.state))
		case "f", "/":
			return v, pushView(newFilterView(v.state))
		case "c":
			if !v.state.Filter.IsIdentity() {
				return v, applyFilter(aggregator.NewFilterCriteria())
			}
			return v, nil
		case "r":
			return v, refreshView()
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *dashboardView) View() string {
	if v.state.Dashboard == nil {
		if v.state.Err != nil {
			return "\n  " + formatter.StyleRed.Render("Error: "+v.state.Err.Error())
		}
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.vp.Height <= 0 || v.vp.Width <= 0 {
		return formatter.FormatDashboard(v.state.Dashboard)
	}
	out := v.vp.View()
	if v.vp.TotalLineCount() > v.vp.Height {
		out += "\n" + scrollIndicator(v.vp)
	}
	return out
}

// dashboardViewportHeight leaves one line for the scroll indicator.
func dashboardViewportHeight(s *SharedState) int {
	return max(s.ContentHeight()-1, 1)
}

// dashboardViewportKeyMap returns a restricted keymap for the dashboard
// viewport. Letter keys are left free for view shortcuts.
func dashboardViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}
