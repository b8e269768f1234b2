package domain

import (
	"fmt"
	"strings"
	"time"
)

type ModelProvider string

const (
	ModelProviderLexical ModelProvider = "lexical"
	ModelProviderOllama  ModelProvider = "ollama"
	ModelProviderGenAI   ModelProvider = "genai"
)

func (p ModelProvider) Valid() bool {
	switch p {
	case ModelProviderLexical, ModelProviderOllama, ModelProviderGenAI:
		return true
	default:
		return false
	}
}

// DefaultModelName is the model used when none is configured.
func (p ModelProvider) DefaultModelName() string {
	switch p {
	case ModelProviderLexical:
		return "wordbot-lexical-v1"
	case ModelProviderOllama:
		return "nomic-embed-text"
	case ModelProviderGenAI:
		return "gemini-embedding-001"
	default:
		return ""
	}
}

// ModelManifest describes an installed local model.
type ModelManifest struct {
	Name        string
	Provider    ModelProvider
	Dimensions  int
	NGramSize   int
	InstalledAt time.Time
}

func (m ModelManifest) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !m.Provider.Valid() {
		return fmt.Errorf("unsupported provider %q", m.Provider)
	}
	if m.Provider == ModelProviderLexical {
		if m.Dimensions <= 0 {
			return fmt.Errorf("dimensions must be positive")
		}
		if m.NGramSize <= 0 {
			return fmt.Errorf("ngram size must be positive")
		}
	}

	return nil
}
