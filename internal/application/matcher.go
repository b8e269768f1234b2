package application

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/bnema/wordbot/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SimilarityThreshold is the score a best intent must exceed to be answered.
const SimilarityThreshold = 0.5

type MatcherOption func(*Matcher)

// WithRandom makes response selection draw from r instead of the
// process-wide source.
func WithRandom(r *rand.Rand) MatcherOption {
	return func(m *Matcher) {
		if r != nil {
			m.pick = r.IntN
		}
	}
}

func WithMatcherLogger(logger *zap.Logger) MatcherOption {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

type Matcher struct {
	embedder ports.Embedder
	intents  domain.IntentTable
	pick     func(n int) int
	logger   *zap.Logger

	mu         sync.Mutex
	keyVectors map[string][]float32
}

func NewMatcher(embedder ports.Embedder, intents domain.IntentTable, opts ...MatcherOption) *Matcher {
	m := &Matcher{
		embedder:   embedder,
		intents:    intents,
		pick:       rand.IntN,
		logger:     zap.NewNop(),
		keyVectors: make(map[string][]float32, intents.Len()),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Match answers a short conversational turn with a response of the most
// similar intent, or with the fallback reply.
func (m *Matcher) Match(ctx context.Context, input string) string {
	key, score := m.BestIntent(ctx, input)
	if key == "" || score <= SimilarityThreshold {
		return domain.FallbackReply
	}

	responses, ok := m.intents.Responses(key)
	if !ok || len(responses) == 0 {
		return domain.FallbackReply
	}

	return responses[m.pick(len(responses))]
}

// IntentScore is the similarity of an input to one intent key.
type IntentScore struct {
	Key   string
	Score float64
}

// BestIntent returns the first intent key with the highest positive score.
// The key is empty when no intent scored above zero.
func (m *Matcher) BestIntent(ctx context.Context, input string) (string, float64) {
	bestKey := ""
	bestScore := 0.0
	for _, scored := range m.Scores(ctx, input) {
		if scored.Score > bestScore {
			bestScore = scored.Score
			bestKey = scored.Key
		}
	}

	return bestKey, bestScore
}

// Scores compares input with every intent key in table order. Keys that
// cannot be compared score 0.
func (m *Matcher) Scores(ctx context.Context, input string) []IntentScore {
	keys := m.intents.Keys()
	scores := make([]IntentScore, len(keys))
	for i, key := range keys {
		scores[i].Key = key
	}

	lowered := cases.Lower(language.English).String(input)
	inputVector, err := m.embedder.Embed(ctx, lowered)
	if err != nil {
		m.logger.Warn("embed input failed", zap.Error(err))
		return scores
	}

	for i, key := range keys {
		keyVector, err := m.keyVector(ctx, key)
		if err != nil {
			m.logger.Warn("embed intent key failed", zap.String("key", key), zap.Error(err))
			continue
		}

		score, err := CosineSimilarity(inputVector, keyVector)
		if err != nil {
			m.logger.Warn("compare intent key failed", zap.String("key", key), zap.Error(err))
			continue
		}

		m.logger.Debug("intent scored", zap.String("key", key), zap.Float64("score", score))
		scores[i].Score = score
	}

	return scores
}

func (m *Matcher) keyVector(ctx context.Context, key string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vector, ok := m.keyVectors[key]; ok {
		return vector, nil
	}

	vector, err := m.embedder.Embed(ctx, key)
	if err != nil {
		return nil, err
	}
	m.keyVectors[key] = vector

	return vector, nil
}
