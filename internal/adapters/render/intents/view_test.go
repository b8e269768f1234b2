package intents

import (
	"strings"
	"testing"

	"github.com/bnema/wordbot/internal/application"
	"github.com/bnema/wordbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDefaultTable(t *testing.T) {
	output, err := Render(domain.DefaultIntentTable(), RenderOptions{ModelName: "wordbot-lexical-v1"})

	require.NoError(t, err)
	assert.Contains(t, output, "WordBot Intents")
	assert.Contains(t, output, "intents: 5")
	assert.Contains(t, output, "model: wordbot-lexical-v1")
	assert.Contains(t, output, "  - Hi there!")
	assert.NotContains(t, output, "similarity:")
	assert.NotContains(t, output, "[match]")

	order := []string{"hello", "how are you", "name", "weather", "bye"}
	last := -1
	for _, key := range order {
		idx := strings.Index(output, "\n"+key)
		require.GreaterOrEqual(t, idx, 0, key)
		assert.Greater(t, idx, last, key)
		last = idx
	}
}

func TestRenderProbeScores(t *testing.T) {
	table := domain.MustIntentTable([]domain.Intent{
		{Key: "hello", Responses: []string{"Hi!"}},
		{Key: "bye", Responses: []string{"Goodbye!"}},
	})

	output, err := Render(table, RenderOptions{
		Probe: "hello there",
		Scores: ScoresFor([]application.IntentScore{
			{Key: "hello", Score: 0.75},
			{Key: "bye", Score: 0.1},
		}),
	})

	require.NoError(t, err)
	assert.Contains(t, output, `probe: "hello there"`)
	assert.Contains(t, output, "hello [match]")
	assert.NotContains(t, output, "bye [match]")
	assert.Contains(t, output, "["+strings.Repeat("=", 18)+strings.Repeat("-", 6)+"] 0.75")
	assert.Contains(t, output, "0.10")
}

func TestRenderProbeAtThresholdHasNoMatch(t *testing.T) {
	table := domain.MustIntentTable([]domain.Intent{
		{Key: "hello", Responses: []string{"Hi!"}},
	})

	output, err := Render(table, RenderOptions{Scores: map[string]float64{"hello": 0.5}})

	require.NoError(t, err)
	assert.Contains(t, output, "0.50")
	assert.NotContains(t, output, "[match]")
}

func TestRenderEmptyTable(t *testing.T) {
	output, err := Render(domain.IntentTable{}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "intents: 0")
	assert.Contains(t, output, "No intents configured.")
}

func TestRenderProgressBarClamps(t *testing.T) {
	s := newStyles()

	assert.Equal(t, "["+strings.Repeat("=", 4)+"]", renderProgressBar(150, 4, s))
	assert.Equal(t, "["+strings.Repeat("-", 4)+"]", renderProgressBar(-5, 4, s))
	assert.Empty(t, renderProgressBar(50, 0, s))
}
