package application

import (
	"context"
	"strings"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/bnema/wordbot/internal/ports"
	"go.uber.org/zap"
)

const grammarReportHeader = "Here's the key grammatical structure:"

var grammarCategories = []struct {
	label string
	pos   domain.PartOfSpeech
}{
	{label: "Nouns", pos: domain.PartOfSpeechNoun},
	{label: "Verbs", pos: domain.PartOfSpeechVerb},
	{label: "Adjectives", pos: domain.PartOfSpeechAdjective},
	{label: "Adverbs", pos: domain.PartOfSpeechAdverb},
}

type GrammarExtractor struct {
	tagger ports.Tagger
	logger *zap.Logger
}

func NewGrammarExtractor(tagger ports.Tagger, logger *zap.Logger) *GrammarExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GrammarExtractor{tagger: tagger, logger: logger}
}

func (g *GrammarExtractor) Extract(ctx context.Context, sentence string) string {
	tokens, err := g.tagger.Tag(ctx, sentence)
	if err != nil {
		g.logger.Warn("tag sentence failed", zap.Error(err))
		return domain.NoGrammarReply
	}

	return FormatGrammarReport(tokens)
}

// FormatGrammarReport groups nouns, verbs, adjectives and adverbs in token
// order and renders one markdown line per non-empty group.
func FormatGrammarReport(tokens []domain.Token) string {
	groups := make(map[domain.PartOfSpeech][]string, len(grammarCategories))
	for _, token := range tokens {
		groups[token.POS] = append(groups[token.POS], token.Text)
	}

	var b strings.Builder
	b.WriteString(grammarReportHeader)
	b.WriteString("\n")

	found := false
	for _, category := range grammarCategories {
		words := groups[category.pos]
		if len(words) == 0 {
			continue
		}
		found = true
		b.WriteString("**")
		b.WriteString(category.label)
		b.WriteString(":** ")
		b.WriteString(strings.Join(words, ", "))
		b.WriteString("\n")
	}

	if !found {
		return domain.NoGrammarReply
	}

	return strings.TrimRight(b.String(), " \t\r\n")
}
