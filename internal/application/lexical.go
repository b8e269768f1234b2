package application

import (
	"regexp"
	"strings"

	"github.com/bnema/wordbot/internal/domain"
	"golang.org/x/text/unicode/norm"
)

var floatPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

// NormalizeInput composes the input to NFC and trims surrounding whitespace.
func NormalizeInput(input string) string {
	return strings.TrimSpace(norm.NFC.String(input))
}

// ClassifyLexical decides whether input is an integer, a float or made of
// symbols only. It returns false when the input needs linguistic handling,
// including when it is empty after trimming.
func ClassifyLexical(input string) (domain.Kind, bool) {
	trimmed := NormalizeInput(input)
	if trimmed == "" {
		return "", false
	}

	switch {
	case allASCIIDigits(trimmed):
		return domain.KindInteger, true
	case floatPattern.MatchString(trimmed):
		return domain.KindFloat, true
	case !containsASCIIAlphanumeric(trimmed):
		return domain.KindSymbolOnly, true
	default:
		return "", false
	}
}

func allASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func containsASCIIAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			return true
		}
	}
	return false
}
