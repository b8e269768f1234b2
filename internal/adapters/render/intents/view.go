package intents

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/wordbot/internal/application"
	"github.com/bnema/wordbot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const scoreBarWidth = 24

type RenderOptions struct {
	// ModelName is shown in the header when set.
	ModelName string
	// Probe is the phrase the scores were computed for.
	Probe string
	// Scores holds one entry per intent key; nil hides the score lines.
	Scores map[string]float64
}

func renderView(table domain.IntentTable, opts RenderOptions, s styles) string {
	header := fmt.Sprintf("intents: %d", table.Len())
	if opts.ModelName != "" {
		header += fmt.Sprintf("  model: %s", opts.ModelName)
	}

	lines := []string{
		s.title.Render("WordBot Intents"),
		s.header.Render(header),
	}

	if table.Len() == 0 {
		lines = append(lines, s.empty.Render("No intents configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	best := ""
	if opts.Scores != nil {
		lines = append(lines, s.header.Render(fmt.Sprintf("probe: %q", opts.Probe)))
		best = bestAboveThreshold(table, opts.Scores)
	}

	for _, intent := range table.Intents() {
		lines = append(lines, s.section.Render(renderIntent(intent, opts, best, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderIntent(intent domain.Intent, opts RenderOptions, best string, s styles) string {
	title := s.intent.Render(intent.Key)
	if intent.Key == best {
		title += " " + s.best.Render("[match]")
	}

	parts := []string{title}
	if opts.Scores != nil {
		parts = append(parts, scoreLine(opts.Scores[intent.Key], s))
	}
	for _, response := range intent.Responses {
		parts = append(parts, s.response.Render("  - "+response))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// bestAboveThreshold mirrors the matcher: first key with the highest score,
// and only when that score exceeds the similarity threshold.
func bestAboveThreshold(table domain.IntentTable, scores map[string]float64) string {
	bestKey := ""
	bestScore := 0.0
	for _, key := range table.Keys() {
		if score := scores[key]; score > bestScore {
			bestKey = key
			bestScore = score
		}
	}
	if bestScore <= application.SimilarityThreshold {
		return ""
	}
	return bestKey
}

func scoreLine(score float64, s styles) string {
	percent := clampPercent(score * 100)
	scoreStyle := lipgloss.NewStyle().Foreground(interpolateColor(percent, 0, 100))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.scoreKey.Render("similarity:"),
		" ",
		renderProgressBar(percent, scoreBarWidth, s),
		" ",
		scoreStyle.Render(fmt.Sprintf("%.2f", score)),
	)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
