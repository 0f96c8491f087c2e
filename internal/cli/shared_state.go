package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/contract"
	tea "github.com/charmbracelet/bubbletea"
)

// dashboardLoadedMsg carries a freshly computed dashboard. seq is the load
// generation it answers.
type dashboardLoadedMsg struct {
	seq  uint64
	resp *contract.DashboardResponse
	err  error
}

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App
	Ctx context.Context

	// Active filter; every load uses it.
	Filter aggregator.FilterCriteria

	// Last computed dashboard and the error of the last load, if any.
	Dashboard *contract.DashboardResponse
	Err       error
	Loading   bool
	LoadedAt  time.Time

	// seq numbers loads; only the answer to the latest one is applied.
	seq uint64

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(ctx context.Context, app *App, filter aggregator.FilterCriteria) *SharedState {
	if ctx == nil {
		ctx = context.Background()
	}
	return &SharedState{App: app, Ctx: ctx, Filter: filter}
}

// Load returns a Cmd that recomputes the dashboard for the active filter.
func (s *SharedState) Load() tea.Cmd {
	s.Loading = true
	s.seq++
	seq, app, ctx := s.seq, s.App, s.Ctx
	req := contract.NewDashboardRequest()
	req.Filter = s.Filter
	now := app.now()
	req.Now = &now
	return func() tea.Msg {
		svc, err := app.dashboardUseCase()
		if err != nil {
			return dashboardLoadedMsg{seq: seq, err: err}
		}
		resp, err := svc.GetDashboard(ctx, req)
		return dashboardLoadedMsg{seq: seq, resp: resp, err: err}
	}
}

// apply records the outcome of a load and reports whether it was current.
// Answers to superseded loads are dropped. A failed load keeps the previous
// dashboard so views can keep showing it under the error.
func (s *SharedState) apply(msg dashboardLoadedMsg) bool {
	if msg.seq != s.seq {
		return false
	}
	s.Loading = false
	s.Err = msg.err
	if msg.err == nil {
		s.Dashboard = msg.resp
		s.LoadedAt = s.App.now()
	}
	return true
}

// DueWindowDays returns the due window of the last dashboard, or the
// configured one before the first load.
func (s *SharedState) DueWindowDays() int {
	if s.Dashboard != nil {
		return s.Dashboard.DueWindowDays
	}
	return s.App.Config.DueWindowDays
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
