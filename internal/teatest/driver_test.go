package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type pingMsg struct{}
type pongMsg struct{}

// counter counts pings; each ping Cmd chains a pong.
type counter struct {
	pings, pongs int
	size         tea.WindowSizeMsg
}

func (c counter) Init() tea.Cmd { return func() tea.Msg { return pingMsg{} } }

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pingMsg:
		c.pings++
		return c, func() tea.Msg { return pongMsg{} }
	case pongMsg:
		c.pongs++
	case tea.WindowSizeMsg:
		c.size = msg
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return c, tea.Quit
		case "p":
			return c, tea.Batch(
				func() tea.Msg { return pingMsg{} },
				func() tea.Msg { return pingMsg{} },
			)
		}
	}
	return c, nil
}

func (c counter) View() string { return "pings" }

func TestDriver_DrainsChainedAndBatchedCmds(t *testing.T) {
	d := New(t, counter{}, WithSize(80, 24))
	d.DrainInit()

	c := d.Model.(counter)
	assert.Equal(t, 1, c.pings)
	assert.Equal(t, 1, c.pongs)
	assert.Equal(t, 80, c.size.Width)

	d.PressKey('p')
	c = d.Model.(counter)
	assert.Equal(t, 3, c.pings)
	assert.Equal(t, 3, c.pongs)
	assert.True(t, d.Seen(pongMsg{}))
	assert.True(t, d.ViewContains("pings"))
}

func TestDriver_QuitStopsFurtherInput(t *testing.T) {
	d := New(t, counter{})
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d.PressKey('p')
	assert.Equal(t, 0, d.Model.(counter).pings)
}
