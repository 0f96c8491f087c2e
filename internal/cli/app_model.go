package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// appModel is the root bubbletea Model for the TUI.
// It owns the view stack and the dashboard every view renders from.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

func newAppModel(ctx context.Context, app *App, filter aggregator.FilterCriteria) appModel {
	state := newSharedState(ctx, app, filter)
	return appModel{
		state:     state,
		viewStack: []View{newDashboardView(state)},
	}
}

// runTUI starts the interactive dashboard on the alternate screen.
func runTUI(ctx context.Context, app *App, filter aggregator.FilterCriteria) error {
	p := tea.NewProgram(newAppModel(ctx, app, filter), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// broadcast forwards msg to every view on the stack so views below the top
// stay in sync with the shared dashboard.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *appModel) popTo(id ViewID) {
	for len(m.viewStack) > 1 && m.activeView().ID() == id {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.state.Load()}
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dashboardLoadedMsg:
		if !m.state.apply(msg) {
			m.state.App.logger().Debug("stale dashboard load dropped", zap.Uint64("seq", msg.seq))
			return m, nil
		}
		if msg.err != nil {
			m.state.App.logger().Debug("dashboard load failed", zap.Error(msg.err))
		}
		return m, m.broadcast(msg)

	// Navigation messages from views
	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		m.state.App.logger().Debug("view pushed", zap.Stringer("view", msg.view.ID()), zap.Int("depth", len(m.viewStack)))
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case refreshViewMsg:
		return m, m.state.Load()

	case filterAppliedMsg:
		m.popTo(ViewFilter)
		m.state.Filter = msg.filter
		return m, m.state.Load()

	case formCancelledMsg:
		m.popTo(ViewFilter)
		return m, nil
	}

	// Forward to active view
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// The filter form receives every key, including q and esc.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		// Pop view stack (go back)
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}

	// Forward to active view
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("rfpwatch")

	// Breadcrumb from view stack
	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	if d := m.state.Dashboard; d != nil {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(d.Source) + formatter.Dim("]")
	}
	if f := formatter.FormatFilter(m.state.Filter); f != "" {
		header += "  " + formatter.StyleYellow.Render(f)
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	switch {
	case m.state.Loading:
		hints = append(hints, formatter.Dim("loading…"))
	case m.state.Err != nil:
		hints = append(hints, formatter.StyleRed.Render("Error: "+m.state.Err.Error()))
	}

	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 && !viewCapturesInput(m.activeView()) {
		hints = append(hints, formatter.Dim("esc: back"))
	}

	bar := strings.Join(hints, "  ")
	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}

// viewCapturesInput returns true if the active view has its own text input
// and should receive all key events (bypassing global keybindings like q/Esc).
func viewCapturesInput(v View) bool {
	return v != nil && v.ID() == ViewFilter
}
