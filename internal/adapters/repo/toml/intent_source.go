package toml

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/bnema/wordbot/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

// IntentSource reads the intent table from a TOML file and falls back to the
// built-in table when the file does not exist.
type IntentSource struct {
	path string
}

var _ ports.IntentSource = IntentSource{}

func NewIntentSource(path string) IntentSource {
	return IntentSource{path: path}
}

func (s IntentSource) Load(ctx context.Context) (domain.IntentTable, error) {
	if err := ctx.Err(); err != nil {
		return domain.IntentTable{}, err
	}
	if s.path == "" {
		return domain.DefaultIntentTable(), nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultIntentTable(), nil
		}
		return domain.IntentTable{}, fmt.Errorf("read intents file: %w", err)
	}

	var file intentsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.IntentTable{}, fmt.Errorf("decode intents file: %w", err)
	}
	if file.Version > currentSchemaVersion {
		return domain.IntentTable{}, fmt.Errorf("unsupported intents schema version %d (current %d)", file.Version, currentSchemaVersion)
	}

	intents := make([]domain.Intent, 0, len(file.Intents))
	for _, entry := range file.Intents {
		intents = append(intents, domain.Intent{Key: entry.Key, Responses: entry.Responses})
	}

	table, err := domain.NewIntentTable(intents)
	if err != nil {
		return domain.IntentTable{}, fmt.Errorf("load intents file %s: %w", s.path, err)
	}

	return table, nil
}
