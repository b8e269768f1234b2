package application

import (
	"context"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/bnema/wordbot/internal/ports"
	"go.uber.org/zap"
)

type Dispatcher struct {
	matcher *Matcher
	grammar *GrammarExtractor
	logger  *zap.Logger
}

func NewDispatcher(model ports.LinguisticModel, intents domain.IntentTable, logger *zap.Logger, opts ...MatcherOption) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts = append([]MatcherOption{WithMatcherLogger(logger)}, opts...)

	return &Dispatcher{
		matcher: NewMatcher(model, intents, opts...),
		grammar: NewGrammarExtractor(model, logger),
		logger:  logger,
	}
}

// Analyze maps any input to a result. Empty input is answered with the
// fallback reply without consulting the model.
func (d *Dispatcher) Analyze(ctx context.Context, input string) domain.Result {
	if kind, ok := ClassifyLexical(input); ok {
		text, _ := kind.LexicalReply()
		return domain.Result{Kind: kind, Text: text}
	}

	trimmed := NormalizeInput(input)
	if trimmed == "" {
		return domain.Result{Kind: domain.KindChatResponse, Text: domain.FallbackReply}
	}

	turn := Route(trimmed)
	d.logger.Debug("routed input", zap.Stringer("turn", turn))

	if turn == domain.TurnLong {
		return domain.Result{Kind: domain.KindGrammarSummary, Text: d.grammar.Extract(ctx, trimmed)}
	}

	return domain.Result{Kind: domain.KindChatResponse, Text: d.matcher.Match(ctx, trimmed)}
}
