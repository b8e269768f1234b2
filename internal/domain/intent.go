package domain

import (
	"fmt"
	"strings"
)

type Intent struct {
	Key       string
	Responses []string
}

// IntentTable is an ordered, read-only set of intents. Iteration follows
// insertion order so that similarity ties resolve the same way every run.
type IntentTable struct {
	intents []Intent
	index   map[string]int
}

func NewIntentTable(intents []Intent) (IntentTable, error) {
	table := IntentTable{
		intents: make([]Intent, 0, len(intents)),
		index:   make(map[string]int, len(intents)),
	}

	for i, intent := range intents {
		key := NormalizeIntentKey(intent.Key)
		if key == "" {
			return IntentTable{}, fmt.Errorf("%w: intent %d has an empty key", ErrInvalidIntentTable, i)
		}
		if _, ok := table.index[key]; ok {
			return IntentTable{}, fmt.Errorf("%w: duplicate key %q", ErrInvalidIntentTable, key)
		}

		responses := make([]string, 0, len(intent.Responses))
		for _, response := range intent.Responses {
			if strings.TrimSpace(response) == "" {
				continue
			}
			responses = append(responses, response)
		}
		if len(responses) == 0 {
			return IntentTable{}, fmt.Errorf("%w: key %q has no responses", ErrInvalidIntentTable, key)
		}

		table.index[key] = len(table.intents)
		table.intents = append(table.intents, Intent{Key: key, Responses: responses})
	}

	if len(table.intents) == 0 {
		return IntentTable{}, fmt.Errorf("%w: no intents", ErrInvalidIntentTable)
	}

	return table, nil
}

func MustIntentTable(intents []Intent) IntentTable {
	table, err := NewIntentTable(intents)
	if err != nil {
		panic(err)
	}
	return table
}

func DefaultIntentTable() IntentTable {
	return MustIntentTable([]Intent{
		{Key: "hello", Responses: []string{"Hi there!", "Hello!", "Hey! How can I help you?"}},
		{Key: "how are you", Responses: []string{"I'm good! How about you?", "I'm doing great! What about you?"}},
		{Key: "name", Responses: []string{"I'm a chatbot, and you can call me WordBot!", "I go by WordBot!"}},
		{Key: "weather", Responses: []string{"I can't check the weather, but I hope it's nice!", "Weather depends on where you are!"}},
		{Key: "bye", Responses: []string{"Goodbye! Have a nice day!", "See you later!", "Take care!"}},
	})
}

func NormalizeIntentKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func (t IntentTable) Len() int {
	return len(t.intents)
}

// Intents returns a copy of the table in insertion order.
func (t IntentTable) Intents() []Intent {
	out := make([]Intent, len(t.intents))
	for i, intent := range t.intents {
		out[i] = Intent{Key: intent.Key, Responses: append([]string(nil), intent.Responses...)}
	}
	return out
}

func (t IntentTable) Keys() []string {
	keys := make([]string, len(t.intents))
	for i, intent := range t.intents {
		keys[i] = intent.Key
	}
	return keys
}

func (t IntentTable) Responses(key string) ([]string, bool) {
	i, ok := t.index[NormalizeIntentKey(key)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), t.intents[i].Responses...), true
}
