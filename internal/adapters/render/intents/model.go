// Package intents renders the active intent table, optionally with the
// similarity of a probe phrase to every intent.
package intents

import (
	"errors"
	"io"

	"github.com/bnema/wordbot/internal/application"
	"github.com/bnema/wordbot/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	table  domain.IntentTable
	opts   RenderOptions
	styles styles
	output string
}

func newModel(table domain.IntentTable, opts RenderOptions) model {
	return model{
		table:  table,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.table, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws the table once without a terminal and returns the result.
func Render(table domain.IntentTable, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(table, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

// ScoresFor is a convenience for callers that hold a matcher.
func ScoresFor(scores []application.IntentScore) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for _, scored := range scores {
		out[scored.Key] = scored.Score
	}
	return out
}
