package application

import (
	"context"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/bnema/wordbot/internal/ports"
	"go.uber.org/zap"
)

type Analyzer interface {
	Analyze(ctx context.Context, input string) domain.Result
}

type ChatService struct {
	analyzer Analyzer
	clock    ports.Clock
	logger   *zap.Logger
}

func NewChatService(analyzer Analyzer, clock ports.Clock, logger *zap.Logger) *ChatService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ChatService{analyzer: analyzer, clock: clock, logger: logger}
}

func (s *ChatService) NewSession() *domain.Session {
	return domain.NewSession(s.clock.Now())
}

// Submit records the user's message and the bot's reply in session. Empty
// input is ignored and reports false.
func (s *ChatService) Submit(ctx context.Context, session *domain.Session, input string) (domain.Message, bool) {
	if input == "" {
		return domain.Message{}, false
	}

	session.Append(domain.Message{Sender: domain.SenderUser, Text: input, At: s.clock.Now()})

	result := s.analyzer.Analyze(ctx, input)
	s.logger.Debug("analyzed input",
		zap.String("session", session.ID),
		zap.String("kind", string(result.Kind)),
	)

	reply := domain.Message{Sender: domain.SenderBot, Text: result.Text, At: s.clock.Now()}
	session.Append(reply)

	return reply, true
}
