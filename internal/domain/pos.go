package domain

type PartOfSpeech string

const (
	PartOfSpeechNoun      PartOfSpeech = "NOUN"
	PartOfSpeechVerb      PartOfSpeech = "VERB"
	PartOfSpeechAdjective PartOfSpeech = "ADJ"
	PartOfSpeechAdverb    PartOfSpeech = "ADV"
	PartOfSpeechOther     PartOfSpeech = "OTHER"
)

type Token struct {
	Text string
	POS  PartOfSpeech
}
