// Package tui implements the interactive terminal chat.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/wordbot/internal/adapters/render/transcript"
	"github.com/bnema/wordbot/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	Title    = "WordBot - Intelligent NLP Chatbot"
	Subtitle = "This chatbot detects input types, responds smartly, and provides key grammatical analysis!"

	headerHeight  = 3
	footerHeight  = 2
	inputHeight   = 1
	defaultWidth  = 80
	defaultHeight = 24
	inputLimit    = 4096
)

// Submitter handles one chat submission against a session.
type Submitter interface {
	Submit(ctx context.Context, session *domain.Session, input string) (domain.Message, bool)
}

type replyMsg struct {
	reply domain.Message
	ok    bool
}

// Model is the bubbletea model of a chat session. The session is only
// touched by the submission command while busy is set.
type Model struct {
	ctx      context.Context
	service  Submitter
	session  *domain.Session
	renderer *transcript.Renderer

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   styles

	modelName string
	pending   []domain.Message
	busy      bool
	width     int
	height    int
}

type Option func(*Model)

// WithRenderer replaces the transcript renderer, mostly to pin a style.
func WithRenderer(renderer *transcript.Renderer) Option {
	return func(m *Model) {
		if renderer != nil {
			m.renderer = renderer
		}
	}
}

func WithModelName(name string) Option {
	return func(m *Model) {
		m.modelName = name
	}
}

func New(ctx context.Context, service Submitter, session *domain.Session, opts ...Option) Model {
	st := newStyles()

	ti := textinput.New()
	ti.Placeholder = "Type a message... (Enter to send, Esc to quit)"
	ti.Prompt = "> "
	ti.PromptStyle = st.prompt
	ti.TextStyle = st.input
	ti.CharLimit = inputLimit
	ti.Width = defaultWidth - 4
	ti.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(st.spinner),
	)

	m := Model{
		ctx:      ctx,
		service:  service,
		session:  session,
		renderer: transcript.NewRenderer(),
		input:    ti,
		viewport: viewport.New(defaultWidth, defaultHeight-headerHeight-footerHeight-inputHeight),
		spinner:  sp,
		styles:   st,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.pending = session.Messages()
	m.refresh()

	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			return m.submit()
		}

		if !m.busy {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-headerHeight-footerHeight-inputHeight)
		m.input.Width = max(1, msg.Width-4)
		m.refresh()

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case replyMsg:
		m.busy = false
		m.pending = m.session.Messages()
		m.refresh()
		m.input.Focus()
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	input := m.input.Value()
	if input == "" {
		return m, nil
	}

	m.input.Reset()
	m.busy = true
	m.pending = append(m.pending, domain.Message{Sender: domain.SenderUser, Text: input})
	m.refresh()

	ctx, service, session := m.ctx, m.service, m.session
	submitCmd := func() tea.Msg {
		reply, ok := service.Submit(ctx, session, input)
		return replyMsg{reply: reply, ok: ok}
	}

	return m, tea.Batch(m.spinner.Tick, submitCmd)
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderer.Render(m.pending, m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render(Title),
		m.styles.subtitle.Render(Subtitle),
		"",
	)

	status := m.styles.status.Render(m.statusLine())
	if m.busy {
		status = fmt.Sprintf("%s %s", m.spinner.View(), m.styles.status.Render("Analyzing..."))
	}

	return strings.Join([]string{
		header,
		m.viewport.View(),
		m.input.View(),
		status,
		m.styles.help.Render("enter send - esc quit - pgup/pgdn scroll"),
	}, "\n")
}

func (m Model) statusLine() string {
	parts := []string{fmt.Sprintf("messages: %d", len(m.pending))}
	if m.modelName != "" {
		parts = append(parts, "model: "+m.modelName)
	}
	return strings.Join(parts, "  ")
}

// Run starts the chat on the given terminal streams and blocks until the
// user quits.
func Run(ctx context.Context, in io.Reader, out io.Writer, service Submitter, session *domain.Session, opts ...Option) error {
	p := tea.NewProgram(
		New(ctx, service, session, opts...),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run chat: %w", err)
	}

	return nil
}
