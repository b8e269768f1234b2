package prose

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/bnema/wordbot/internal/ports"
	"github.com/jdkato/prose/v2"
)

// Tagger tags tokens with the averaged-perceptron model bundled with prose
// and maps Penn Treebank tags onto coarse parts of speech.
type Tagger struct{}

var _ ports.Tagger = Tagger{}

func NewTagger() Tagger {
	return Tagger{}
}

func (Tagger) Tag(ctx context.Context, text string) ([]domain.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tag text: %w", err)
	}

	tagged := doc.Tokens()
	tags := make([]string, len(tagged))
	for i, tok := range tagged {
		tags[i] = tok.Tag
	}
	tags = RecoverMainVerb(tags)

	tokens := make([]domain.Token, 0, len(tagged))
	for i, tok := range tagged {
		tokens = append(tokens, domain.Token{
			Text: tok.Text,
			POS:  MapPennTag(tags[i], tok.Text),
		})
	}

	return tokens, nil
}

// Forms of "be" are auxiliaries rather than content verbs.
var auxiliaries = map[string]struct{}{
	"am": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "'m": {}, "'re": {}, "'s": {},
}

// MapPennTag converts a Penn Treebank tag to a coarse part of speech. Proper
// nouns, modals and auxiliaries map to PartOfSpeechOther.
func MapPennTag(tag, text string) domain.PartOfSpeech {
	switch tag {
	case "NN", "NNS":
		return domain.PartOfSpeechNoun
	case "VB", "VBD", "VBG", "VBN", "VBP", "VBZ":
		if _, ok := auxiliaries[strings.ToLower(text)]; ok {
			return domain.PartOfSpeechOther
		}
		return domain.PartOfSpeechVerb
	case "JJ", "JJR", "JJS":
		return domain.PartOfSpeechAdjective
	case "RB", "RBR", "RBS", "WRB":
		return domain.PartOfSpeechAdverb
	default:
		return domain.PartOfSpeechOther
	}
}

// subjectModifiers may precede the head noun of a sentence-initial subject.
var subjectModifiers = map[string]struct{}{
	"DT": {}, "PDT": {}, "PRP$": {}, "CD": {}, "JJ": {}, "JJR": {}, "JJS": {},
}

// RecoverMainVerb fixes a frequent perceptron error on short verbless
// sentences: in "The quick fox jumps" the third-person verb is tagged as a
// plural noun. When no token carries a verb tag and the text opens with a
// noun phrase of modifiers and a singular head noun, an NNS directly after
// that head is re-tagged VBZ if nothing but a non-noun follows it. The input
// slice is not modified.
func RecoverMainVerb(tags []string) []string {
	out := append([]string(nil), tags...)
	for _, tag := range out {
		if strings.HasPrefix(tag, "VB") || tag == "MD" {
			return out
		}
	}

	head := 0
	for head < len(out) {
		if _, ok := subjectModifiers[out[head]]; !ok {
			break
		}
		head++
	}
	if head >= len(out) || (out[head] != "NN" && out[head] != "NNP") {
		return out
	}

	verb := head + 1
	if verb >= len(out) || out[verb] != "NNS" {
		return out
	}
	if next := verb + 1; next < len(out) && strings.HasPrefix(out[next], "NN") {
		return out
	}

	out[verb] = "VBZ"
	return out
}
