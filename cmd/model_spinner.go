package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type modelInstallDoneMsg struct {
	err error
}

type modelInstallSpinnerModel struct {
	spinner spinner.Model
	label   string
	install tea.Cmd
	started time.Time
	now     func() time.Time
	err     error
	done    bool
}

func newModelInstallSpinnerModel(label string, install tea.Cmd, now func() time.Time) modelInstallSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return modelInstallSpinnerModel{
		spinner: s,
		label:   label,
		install: install,
		started: now(),
		now:     now,
	}
}

func (m modelInstallSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.install)
}

func (m modelInstallSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case modelInstallDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m modelInstallSpinnerModel) View() string {
	if m.done {
		return ""
	}

	elapsed := m.now().Sub(m.started).Truncate(time.Second)
	return fmt.Sprintf("%s %s %s", m.spinner.View(), m.label, elapsed)
}

// runModelInstallSpinner shows a spinner on output while install runs.
func runModelInstallSpinner(ctx context.Context, output io.Writer, label string, install func(context.Context) error) error {
	installCmd := func() tea.Msg {
		return modelInstallDoneMsg{err: install(ctx)}
	}

	p := tea.NewProgram(
		newModelInstallSpinnerModel(label, installCmd, time.Now),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(modelInstallSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
