package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type echoMsg string

// echoModel records typed runes and echoes Enter back through a Cmd.
type echoModel struct {
	typed  string
	echoed []string
	width  int
	delay  time.Duration
}

func (m echoModel) Init() tea.Cmd {
	return func() tea.Msg { return echoMsg("init") }
}

func (m echoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case echoMsg:
		m.echoed = append(m.echoed, string(msg))
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyRunes:
			m.typed += string(msg.Runes)
		case tea.KeyEnter:
			text, delay := m.typed, m.delay
			m.typed = ""
			return m, func() tea.Msg {
				time.Sleep(delay)
				return echoMsg(text)
			}
		case tea.KeyEsc:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m echoModel) View() string { return m.typed }

func TestDriver_DrainsInitAndCommands(t *testing.T) {
	d := New(t, echoModel{}, WithSize(80, 24))
	d.DrainInit()
	d.Submit("hello")

	m := d.Model.(echoModel)
	assert.Equal(t, 80, m.width)
	assert.Equal(t, []string{"init", "hello"}, m.echoed)
	assert.Empty(t, d.View())
}

func TestDriver_SkipsSlowCommands(t *testing.T) {
	d := New(t, echoModel{delay: 200 * time.Millisecond})
	d.Submit("slow")

	assert.Empty(t, d.Model.(echoModel).echoed)
}

func TestDriver_WithCmdTimeoutWaitsLonger(t *testing.T) {
	d := New(t, echoModel{delay: 50 * time.Millisecond}, WithCmdTimeout(2*time.Second))
	d.Submit("slow")

	assert.Equal(t, []string{"slow"}, d.Model.(echoModel).echoed)
}

func TestDriver_QuitStopsFurtherInput(t *testing.T) {
	d := New(t, echoModel{})
	d.PressEsc()
	assert.True(t, d.Quitting)

	d.Type("ignored")
	assert.Empty(t, d.View())
}
