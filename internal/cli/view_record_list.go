package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/rfpwatch/internal/cli/formatter"
	"github.com/alexanderramin/rfpwatch/internal/contract"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// recordListView shows the filtered records: a selectable list on the left
// and the selected record's detail on the right.
type recordListView struct {
	state  *SharedState
	cursor int
	offset int // first visible row
}

func newRecordListView(state *SharedState) *recordListView {
	return &recordListView{state: state}
}

func (v *recordListView) ID() ViewID { return ViewRecords }
func (v *recordListView) Title() string {
	return fmt.Sprintf("Records (%d)", len(v.records()))
}

func (v *recordListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "select")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *recordListView) Init() tea.Cmd { return nil }

func (v *recordListView) records() []contract.RecordView {
	if v.state.Dashboard == nil {
		return nil
	}
	return v.state.Dashboard.Records
}

// selected returns the record under the cursor.
func (v *recordListView) selected() (contract.RecordView, bool) {
	recs := v.records()
	if v.cursor < 0 || v.cursor >= len(recs) {
		return contract.RecordView{}, false
	}
	return recs[v.cursor], true
}

// clamp keeps the cursor on a record and inside the visible window.
func (v *recordListView) clamp() {
	n := len(v.records())
	v.cursor = min(v.cursor, n-1)
	v.cursor = max(v.cursor, 0)

	rows := v.listHeight()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+rows {
		v.offset = v.cursor - rows + 1
	}
	v.offset = max(min(v.offset, n-rows), 0)
}

// listHeight is the number of record rows that fit under the list header.
func (v *recordListView) listHeight() int {
	return max(v.state.ContentHeight()-3, 1)
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *recordListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg, tea.WindowSizeMsg:
		v.clamp()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			v.cursor--
		case "down", "j":
			v.cursor++
		case "pgup":
			v.cursor -= v.listHeight()
		case "pgdown":
			v.cursor += v.listHeight()
		case "g", "home":
			v.cursor = 0
		case "G", "end":
			v.cursor = len(v.records()) - 1
		case "f", "/":
			return v, pushView(newFilterView(v.state))
		case "r":
			return v, refreshView()
		}
		v.clamp()
	}
	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

const recordListPaneWidth = 44

func (v *recordListView) View() string {
	recs := v.records()
	if v.state.Dashboard == nil {
		return "\n  " + formatter.Dim("Loading...")
	}
	if len(recs) == 0 {
		return "\n  " + formatter.Dim("No records match the filter. Press 'f' to change it.")
	}

	leftPane := v.renderList(recs)
	rightPane := v.renderDetail()

	// Decide layout: split pane vs. single column.
	if v.state.Width < 80 {
		return leftPane + "\n" + rightPane
	}

	rightWidth := max(v.state.Width-recordListPaneWidth-3, 20)
	leftCol := lipgloss.NewStyle().Width(recordListPaneWidth).Render(leftPane)
	divider := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render("│")
	rightCol := lipgloss.NewStyle().Width(rightWidth).Render(rightPane)

	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, leftCol, " "+divider+" ", rightCol)
}

func (v *recordListView) renderList(recs []contract.RecordView) string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("RECORDS") + "\n\n")

	end := min(v.offset+v.listHeight(), len(recs))
	for i := v.offset; i < end; i++ {
		r := recs[i]
		cursor := "  "
		idStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			idStyle = formatter.StyleBold
		}
		dot := formatter.ToneStyle(r.StatusTone).Render("●")
		b.WriteString(fmt.Sprintf("%s%s %s %s\n",
			cursor,
			dot,
			idStyle.Render(padRight(formatter.Truncate(r.Record.ID, 14), 14)),
			formatter.Truncate(r.Record.Title, recordListPaneWidth-20),
		))
	}
	return b.String()
}

func (v *recordListView) renderDetail() string {
	rec, ok := v.selected()
	if !ok {
		return formatter.Dim("Select a record to see details.")
	}
	return formatter.FormatRecordDetail(rec, v.state.DueWindowDays())
}

// padRight pads s with spaces to the given display width.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
