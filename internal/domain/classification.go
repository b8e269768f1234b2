package domain

type Kind string

const (
	KindInteger        Kind = "integer"
	KindFloat          Kind = "float"
	KindSymbolOnly     Kind = "symbol_only"
	KindChatResponse   Kind = "chat_response"
	KindGrammarSummary Kind = "grammar_summary"
)

const (
	IntegerReply    = "This is an integer."
	FloatReply      = "This is a float."
	SymbolOnlyReply = "This contains only special characters."
	FallbackReply   = "I'm not sure how to respond to that."
	NoGrammarReply  = "No major grammatical elements found."
)

// LexicalReply returns the fixed reply for a kind decided by the lexical
// classifier. Other kinds carry their own text.
func (k Kind) LexicalReply() (string, bool) {
	switch k {
	case KindInteger:
		return IntegerReply, true
	case KindFloat:
		return FloatReply, true
	case KindSymbolOnly:
		return SymbolOnlyReply, true
	default:
		return "", false
	}
}

type Result struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

type Turn int

const (
	TurnShort Turn = iota
	TurnLong
)

func (t Turn) String() string {
	switch t {
	case TurnShort:
		return "short"
	case TurnLong:
		return "long"
	default:
		return "unknown"
	}
}
