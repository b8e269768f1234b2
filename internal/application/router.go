package application

import (
	"strings"

	"github.com/bnema/wordbot/internal/domain"
)

// MaxShortTurnTokens is the largest whitespace token count still answered
// as a conversational turn.
const MaxShortTurnTokens = 3

// Route treats input of more than MaxShortTurnTokens whitespace-separated
// tokens as a long, analyzable sentence and anything else as a
// conversational turn.
func Route(input string) domain.Turn {
	if len(strings.Fields(input)) > MaxShortTurnTokens {
		return domain.TurnLong
	}
	return domain.TurnShort
}
