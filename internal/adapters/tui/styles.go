package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	prompt   lipgloss.Style
	input    lipgloss.Style
	spinner  lipgloss.Style
	status   lipgloss.Style
	help     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		input:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		spinner:  lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		help:     lipgloss.NewStyle().Faint(true),
	}
}
