// Package tui is the Bubble Tea chat interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hyperjump/cancerqa/internal/cli"
	"github.com/hyperjump/cancerqa/internal/models"
	"github.com/hyperjump/cancerqa/internal/session"
)

// AskFunc answers one question.
type AskFunc func(ctx context.Context, question string) (models.MatchResult, error)

// answerMsg carries the result of an asynchronous ask.
type answerMsg struct {
	question string
	result   models.MatchResult
	err      error
}

// Model is the Bubble Tea model for the chat session.
type Model struct {
	ctx       context.Context
	ask       AskFunc
	history   *session.History
	showTurns int
	input     textinput.Model
	viewport  viewport.Model
	status    string
	ready     bool
	pending   bool
}

// New creates a chat model. showTurns bounds how many past turns are displayed.
func New(ctx context.Context, ask AskFunc, history *session.History, showTurns int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask in English or বাংলা and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	return Model{
		ctx:       ctx,
		ask:       ask,
		history:   history,
		showTurns: showTurns,
		input:     ti,
		viewport:  viewport.New(0, 0),
		status:    "Type a question. :clear forgets history, Ctrl+C quits.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := historyBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header, status, input box
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-bh)
		m.viewport.SetContent(m.renderHistory())
		return m, nil
	case answerMsg:
		m.pending = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		turn := m.history.Add(msg.question, msg.result)
		if msg.result.Matched {
			m.status = fmt.Sprintf("%s answer, score %.2f", turn.Language.DisplayName(), turn.Score)
		} else {
			m.status = fmt.Sprintf("%s, no close match", turn.Language.DisplayName())
		}
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoTop()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.input.Value())
	switch {
	case q == "":
		m.status = "Please enter a question."
		return m, nil
	case q == ":quit" || q == ":q":
		return m, tea.Quit
	case q == ":clear":
		m.history.Clear()
		m.input.Reset()
		m.status = "History cleared."
		m.viewport.SetContent(m.renderHistory())
		return m, nil
	case m.pending:
		return m, nil
	}
	m.pending = true
	m.input.Reset()
	m.status = "Thinking..."
	ctx, ask := m.ctx, m.ask
	return m, func() tea.Msg {
		res, err := ask(ctx, q)
		return answerMsg{question: q, result: res, err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Women's Cancer Awareness Chatbot")
	history := historyBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + history + "\n" + input + "\n" + status
}

func (m Model) renderHistory() string {
	var b strings.Builder
	_ = cli.WriteHistory(&b, m.history.Recent(m.showTurns), m.history.Len(), cli.OutputText)
	return strings.TrimRight(b.String(), "\n")
}

var (
	historyBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)
