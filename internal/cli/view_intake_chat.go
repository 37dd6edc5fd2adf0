package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/proposal/internal/cli/formatter"
	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/alexanderramin/proposal/internal/intelligence"
	"github.com/alexanderramin/proposal/internal/service"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Lines taken by the header, status and input rows.
const chatChromeHeight = 3

// intakeChatModel is the full-screen intake chat: a scrolling transcript
// above a single-line answer input.
type intakeChatModel struct {
	ctx       context.Context
	intake    service.IntakeService
	sessionID string

	input    textinput.Model
	viewport viewport.Model

	transcript []string
	pending    string // status shown while a request is in flight
	quitting   bool
}

type turnMsg struct {
	result *service.TurnResult
	err    error
}

type fieldsMsg struct {
	fields *domain.ProposalFields
	err    error
}

type documentMsg struct {
	doc string
	err error
}

func newIntakeChatModel(ctx context.Context, intake service.IntakeService, sessionID string, opening intelligence.DialogueTurn) *intakeChatModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Type your answer"
	ti.CharLimit = 2000
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	m := &intakeChatModel{
		ctx:       ctx,
		intake:    intake,
		sessionID: sessionID,
		input:     ti,
		viewport:  viewport.New(80, 20),
	}
	m.appendBlock(formatter.FormatTurn(opening))
	return m
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (m *intakeChatModel) Init() tea.Cmd {
	return nil
}

func (m *intakeChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case turnMsg:
		m.pending = ""
		if msg.err != nil {
			m.appendError(msg.err)
			return m, nil
		}
		m.appendBlock(formatter.FormatTurn(msg.result.Turn))
		if msg.result.Complete {
			m.appendBlock(formatter.FormatIntakeComplete(msg.result.Extraction.Err))
		}
		return m, nil

	case fieldsMsg:
		m.pending = ""
		if msg.err != nil {
			m.appendError(msg.err)
			return m, nil
		}
		m.appendBlock(formatter.FormatFields(*msg.fields))
		return m, nil

	case documentMsg:
		m.pending = ""
		if msg.err != nil {
			m.appendError(msg.err)
			return m, nil
		}
		rendered, err := formatter.RenderMarkdown(msg.doc, max(m.viewport.Width-2, 20), false)
		if err != nil {
			rendered = msg.doc
		}
		m.appendBlock(rendered)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case tea.KeyEnter:
			if m.pending != "" {
				return m, nil
			}
			input := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if input == "" {
				return m, nil
			}
			return m, m.handleInput(input)
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *intakeChatModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("PROPOSAL INTAKE"))
	b.WriteString("  ")
	b.WriteString(formatter.TruncID(m.sessionID))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	status := "enter send · /fields · /render · /quit · pgup/pgdn scroll"
	if m.pending != "" {
		status = m.pending
	}
	b.WriteString(formatter.Dim(status))
	b.WriteString("\n")
	b.WriteString(formatter.StylePurple.Render("answer"))
	b.WriteString(formatter.Dim("> "))
	b.WriteString(m.input.View())
	return b.String()
}

// ── input handling ───────────────────────────────────────────────────────────

func (m *intakeChatModel) handleInput(input string) tea.Cmd {
	ctx, intake, id := m.ctx, m.intake, m.sessionID

	switch strings.ToLower(input) {
	case "/quit", "/exit", "/q":
		m.quitting = true
		return tea.Quit
	case "/fields":
		m.pending = "Loading fields..."
		return func() tea.Msg {
			fields, err := intake.GetFields(ctx, id)
			return fieldsMsg{fields: fields, err: err}
		}
	case "/render":
		m.pending = "Drafting the proposal..."
		return func() tea.Msg {
			doc, err := intake.Render(ctx, id, service.RenderOptions{})
			return documentMsg{doc: doc, err: err}
		}
	}

	m.appendBlock(formatter.StyleBlue.Render("You: ") + input)
	m.pending = "Thinking..."
	return func() tea.Msg {
		res, err := intake.Answer(ctx, id, input)
		return turnMsg{result: res, err: err}
	}
}

// ── transcript ───────────────────────────────────────────────────────────────

func (m *intakeChatModel) appendBlock(block string) {
	m.transcript = append(m.transcript, strings.TrimRight(block, "\n"))
	m.refresh()
}

func (m *intakeChatModel) appendError(err error) {
	m.appendBlock(formatter.StyleRed.Render("Error: ") + err.Error())
}

func (m *intakeChatModel) resize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = max(height-chatChromeHeight, 3)
	m.input.Width = max(width-10, 10)
	m.refresh()
}

func (m *intakeChatModel) refresh() {
	content := strings.Join(m.transcript, "\n\n")
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(content))
	m.viewport.GotoBottom()
}
