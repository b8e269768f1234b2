package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Models  []modelSchema `toml:"models"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported models schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type modelSchema struct {
	Name        string `toml:"name"`
	Provider    string `toml:"provider"`
	Dimensions  int    `toml:"dimensions,omitempty"`
	NGramSize   int    `toml:"ngram_size,omitempty"`
	InstalledAt string `toml:"installed_at"`
}

type intentsFileSchema struct {
	Version int            `toml:"version"`
	Intents []intentSchema `toml:"intents"`
}

type intentSchema struct {
	Key       string   `toml:"key"`
	Responses []string `toml:"responses"`
}
