package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/aggregator"
	"github.com/alexanderramin/rfpwatch/internal/teatest"
)

// TestDriver wraps teatest.Driver with inspection of the appModel: the view
// stack and the shared dashboard state the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app, sizes the terminal and drains
// Init(), which computes the first dashboard synchronously.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	return newTestDriverWithFilter(t, app, aggregator.NewFilterCriteria())
}

func newTestDriverWithFilter(t *testing.T, app *App, filter aggregator.FilterCriteria) *TestDriver {
	t.Helper()
	m := newAppModel(context.Background(), app, filter)
	d := teatest.New(t, m, teatest.WithSize(120, 40), teatest.WithCmdTimeout(250*time.Millisecond))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ActiveView returns the top view on the stack.
func (d *TestDriver) ActiveView() View {
	m := d.appModel()
	return m.activeView()
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting reports whether the model or the driver saw a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// PlainView returns the rendered screen without ANSI escapes.
func (d *TestDriver) PlainView() string {
	return stripANSI(d.View())
}
