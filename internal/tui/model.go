// Package tui is the Bubble Tea chat interface over the RAG agent.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ragkit/internal/domain"
)

// Asker is the TUI-facing subset of the RAG agent.
type Asker interface {
	Answer(ctx context.Context, query string) (domain.AgentResult, error)
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	agent      Asker
	input      textinput.Model
	viewport   viewport.Model
	transcript []string
	summary    string
	status     string
	ready      bool
}

// New creates a chat model. summary is shown under the header until the
// first question is asked.
func New(agent Asker, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		agent:    agent,
		input:    ti,
		viewport: vp,
		summary:  summary,
		status:   "Knowledge base loaded. Ask away.",
	}
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header+summary, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.ask(q)
				m.input.SetValue("")
				m.viewport.SetContent(m.renderTranscript())
				m.viewport.GotoBottom()
				return m, nil
			}
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("ragkit chat")
	summary := summaryStyle.Render(m.summary)
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + chat + "\n" + input + "\n" + status
}

func (m *Model) ask(query string) {
	m.transcript = append(m.transcript, userStyle.Render("You: ")+query)
	result, err := m.agent.Answer(context.Background(), query)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.transcript = append(m.transcript, errorStyle.Render("Error: "+err.Error()))
		return
	}
	m.transcript = append(m.transcript, assistantStyle.Render("Assistant: ")+result.Answer)
	if result.FromFAQ {
		m.status = fmt.Sprintf("FAQ match (confidence %.2f)", result.Confidence)
	} else if len(result.Sources) > 0 {
		for i, src := range result.Sources {
			m.transcript = append(m.transcript,
				sourceStyle.Render(fmt.Sprintf("  [%d] %s (score %.3f)", i+1, src.Chunk.Source, src.Score)))
		}
		m.status = fmt.Sprintf("Answered from %d source(s)", len(result.Sources))
	} else {
		m.status = "No relevant context found"
	}
	m.transcript = append(m.transcript, "")
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet."
	}
	return strings.Join(m.transcript, "\n")
}

var (
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	sourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
