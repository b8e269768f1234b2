package domain

import (
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser Sender = "You"
	SenderBot  Sender = "WordBot"
)

type Message struct {
	Sender Sender
	Text   string
	At     time.Time
}

// Session holds one conversation's history. Messages can only be appended.
type Session struct {
	ID        string
	StartedAt time.Time
	messages  []Message
}

func NewSession(startedAt time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: startedAt,
	}
}

func (s *Session) Append(msg Message) {
	s.messages = append(s.messages, msg)
}

func (s *Session) Messages() []Message {
	return append([]Message(nil), s.messages...)
}

func (s *Session) Len() int {
	return len(s.messages)
}
