package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"marinebot/internal/domain"
)

// AskPort is the TUI-facing subset of the pipeline.
type AskPort interface {
	Ask(ctx context.Context, question string) domain.Answer
}

type exchange struct {
	question string
	answer   domain.Answer
}

// answerMsg delivers a finished pipeline answer back to the event loop.
type answerMsg struct {
	question string
	answer   domain.Answer
}

// askCmd runs the pipeline off the event loop; generation can block for
// minutes and must not freeze the UI.
func askCmd(pipeline AskPort, question string) tea.Cmd {
	return func() tea.Msg {
		return answerMsg{question: question, answer: pipeline.Ask(context.Background(), question)}
	}
}

// Model is the Bubble Tea model for the chat TUI.
type Model struct {
	pipeline AskPort
	input    textinput.Model
	viewport viewport.Model
	history  []exchange
	status   string
	ready    bool
	waiting  bool
}

// New creates a new TUI model instance.
func New(pipeline AskPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a marine question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{pipeline: pipeline, input: ti, viewport: vp, status: "Ready."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + input frame + spacer
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
		if msg.String() == "enter" {
			q := strings.TrimSpace(m.input.Value())
			if q != "" && !m.waiting {
				m.waiting = true
				m.status = "Thinking..."
				m.input.SetValue("")
				return m, askCmd(m.pipeline, q)
			}
		}
	case answerMsg:
		m.waiting = false
		m.history = append(m.history, exchange{question: msg.question, answer: msg.answer})
		m.status = fmt.Sprintf("Status: %s", msg.answer.Status)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and chat transcript.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Marine Bot")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.history) == 0 {
		return "No questions yet."
	}
	var b strings.Builder
	for i, ex := range m.history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("You: " + ex.question))
		b.WriteString("\n")
		label := "Bot: "
		if ex.answer.Status == domain.StatusIgnored {
			label = "Bot (ignored): "
		}
		b.WriteString(label + ex.answer.Text)
	}
	return b.String()
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
