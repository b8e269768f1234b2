package transcript

import (
	"testing"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleMessages() []domain.Message {
	return []domain.Message{
		{Sender: domain.SenderUser, Text: "42"},
		{Sender: domain.SenderBot, Text: domain.IntegerReply},
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		messages []domain.Message
		want     string
	}{
		{name: "empty", messages: nil, want: ""},
		{name: "single", messages: sampleMessages()[:1], want: "**You:** 42"},
		{
			name:     "exchange",
			messages: sampleMessages(),
			want:     "**You:** 42\n\n**WordBot:** This is an integer.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Markdown(tc.messages))
		})
	}
}

func TestRendererRendersEveryMessage(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(WithStyle("notty"))
	output := renderer.Render(sampleMessages(), 60)

	assert.Contains(t, output, "You:")
	assert.Contains(t, output, "42")
	assert.Contains(t, output, "WordBot:")
	assert.Contains(t, output, "This is an integer.")
	assert.NotRegexp(t, `\s$`, output)
}

func TestRendererReusesTermRendererPerWidth(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(WithStyle("notty"))
	renderer.Render(sampleMessages(), 60)
	first := renderer.term

	renderer.Render(sampleMessages(), 60)
	assert.Same(t, first, renderer.term)

	renderer.Render(sampleMessages(), 40)
	assert.NotSame(t, first, renderer.term)
	assert.Equal(t, 40, renderer.width)
}

func TestRendererEmptyTranscript(t *testing.T) {
	t.Parallel()

	assert.Empty(t, NewRenderer().Render(nil, 80))
}
