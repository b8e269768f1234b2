// Package transcript renders chat history as markdown.
package transcript

import (
	"fmt"
	"strings"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/charmbracelet/glamour"
)

const defaultWidth = 80

// Markdown formats each message as a "**Sender:** text" paragraph.
func Markdown(messages []domain.Message) string {
	var b strings.Builder
	for i, message := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(Line(message))
	}
	return b.String()
}

func Line(message domain.Message) string {
	return fmt.Sprintf("**%s:** %s", message.Sender, message.Text)
}

type Option func(*Renderer)

// WithStyle selects a glamour standard style such as "dark" or "notty".
// The default picks a style from the terminal background.
func WithStyle(name string) Option {
	return func(r *Renderer) {
		r.style = name
	}
}

// Renderer turns transcripts into terminal output. A Renderer is rebuilt
// lazily when the wrap width changes and is not safe for concurrent use.
type Renderer struct {
	style string
	width int
	term  *glamour.TermRenderer
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the styled transcript wrapped to width. Rendering
// failures fall back to the raw markdown.
func (r *Renderer) Render(messages []domain.Message, width int) string {
	md := Markdown(messages)
	if md == "" {
		return ""
	}

	term, err := r.termRenderer(width)
	if err != nil {
		return md
	}

	rendered, err := term.Render(md)
	if err != nil {
		return md
	}

	return strings.TrimRight(rendered, "\n ")
}

func (r *Renderer) termRenderer(width int) (*glamour.TermRenderer, error) {
	if width <= 0 {
		width = defaultWidth
	}
	if r.term != nil && r.width == width {
		return r.term, nil
	}

	styleOpt := glamour.WithAutoStyle()
	if r.style != "" {
		styleOpt = glamour.WithStandardStyle(r.style)
	}

	term, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}

	r.term = term
	r.width = width
	return term, nil
}
