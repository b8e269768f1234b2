// Package model assembles linguistic models from a tagger and an embedder
// and knows how to install the configured provider.
package model

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/wordbot/internal/adapters/embedding/genai"
	"github.com/bnema/wordbot/internal/adapters/embedding/lexical"
	"github.com/bnema/wordbot/internal/adapters/embedding/ollama"
	"github.com/bnema/wordbot/internal/adapters/secrets/file"
	"github.com/bnema/wordbot/internal/domain"
	"github.com/bnema/wordbot/internal/ports"
)

// Model pairs a tagger with an embedder under one name.
type Model struct {
	name string
	ports.Tagger
	ports.Embedder
}

var _ ports.LinguisticModel = (*Model)(nil)

func New(name string, tagger ports.Tagger, embedder ports.Embedder) *Model {
	return &Model{name: name, Tagger: tagger, Embedder: embedder}
}

func (m *Model) Name() string {
	return m.name
}

type LoaderConfig struct {
	Provider       domain.ModelProvider
	Name           string
	OllamaEndpoint string
	GenAIAPIKey    string
	HTTPClient     *http.Client
	Tagger         ports.Tagger
	Manifests      ports.ModelManifestRepository
	Secrets        ports.SecretStore
	Clock          ports.Clock
}

// NewLoader returns the loader for the configured provider.
func NewLoader(cfg LoaderConfig) (ports.ModelLoader, error) {
	provider := domain.ModelProvider(strings.ToLower(strings.TrimSpace(string(cfg.Provider))))
	if provider == "" {
		provider = domain.ModelProviderLexical
	}
	if !provider.Valid() {
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
	if cfg.Tagger == nil {
		return nil, errors.New("model loader requires a tagger")
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = provider.DefaultModelName()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}

	switch provider {
	case domain.ModelProviderOllama:
		return &OllamaLoader{
			client:    ollama.NewClient(cfg.OllamaEndpoint, name, cfg.HTTPClient),
			tagger:    cfg.Tagger,
			manifests: cfg.Manifests,
			clock:     clock,
		}, nil
	case domain.ModelProviderGenAI:
		return &GenAILoader{
			name:    name,
			apiKey:  cfg.GenAIAPIKey,
			tagger:  cfg.Tagger,
			secrets: cfg.Secrets,
		}, nil
	default:
		if cfg.Manifests == nil {
			return nil, errors.New("lexical model loader requires a manifest repository")
		}
		return &LexicalLoader{
			name:      name,
			tagger:    cfg.Tagger,
			manifests: cfg.Manifests,
			clock:     clock,
		}, nil
	}
}

// LexicalLoader builds the offline hashed n-gram model described by a
// manifest in the model directory.
type LexicalLoader struct {
	name      string
	tagger    ports.Tagger
	manifests ports.ModelManifestRepository
	clock     ports.Clock
}

var _ ports.ModelLoader = (*LexicalLoader)(nil)

func (l *LexicalLoader) Load(ctx context.Context) (ports.LinguisticModel, error) {
	manifest, err := l.manifests.GetByName(ctx, l.name)
	if err != nil {
		if errors.Is(err, domain.ErrModelManifestNotFound) {
			return nil, fmt.Errorf("model %q: %w", l.name, domain.ErrModelNotInstalled)
		}
		return nil, fmt.Errorf("read model manifest: %w", err)
	}
	if manifest.Provider != domain.ModelProviderLexical {
		return nil, fmt.Errorf("model %q is a %s model, not lexical", l.name, manifest.Provider)
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("model %q: %w", l.name, err)
	}

	embedder := lexical.NewEmbedder(manifest.Dimensions, manifest.NGramSize)
	return New(manifest.Name, l.tagger, embedder), nil
}

func (l *LexicalLoader) Install(ctx context.Context) error {
	return l.manifests.Save(ctx, domain.ModelManifest{
		Name:        l.name,
		Provider:    domain.ModelProviderLexical,
		Dimensions:  lexical.DefaultDimensions,
		NGramSize:   lexical.DefaultNGramSize,
		InstalledAt: l.clock.Now().UTC().Truncate(time.Second),
	})
}

// OllamaLoader serves embeddings from a local Ollama daemon. Installing
// pulls the model into the daemon.
type OllamaLoader struct {
	client    *ollama.Client
	tagger    ports.Tagger
	manifests ports.ModelManifestRepository
	clock     ports.Clock
}

var _ ports.ModelLoader = (*OllamaLoader)(nil)

func (l *OllamaLoader) Load(ctx context.Context) (ports.LinguisticModel, error) {
	installed, err := l.client.Installed(ctx)
	if err != nil {
		return nil, err
	}
	if !installed {
		return nil, fmt.Errorf("ollama model %q: %w", l.client.Model(), domain.ErrModelNotInstalled)
	}

	return New(l.client.Model(), l.tagger, l.client), nil
}

func (l *OllamaLoader) Install(ctx context.Context) error {
	if err := l.client.Pull(ctx); err != nil {
		return err
	}
	if l.manifests == nil {
		return nil
	}

	return l.manifests.Save(ctx, domain.ModelManifest{
		Name:        l.client.Model(),
		Provider:    domain.ModelProviderOllama,
		InstalledAt: l.clock.Now().UTC().Truncate(time.Second),
	})
}

// GenAILoader serves embeddings from the Gemini API. There is nothing to
// install; a missing key is reported directly.
type GenAILoader struct {
	name    string
	apiKey  string
	tagger  ports.Tagger
	secrets ports.SecretStore
}

var _ ports.ModelLoader = (*GenAILoader)(nil)

func (l *GenAILoader) Load(ctx context.Context) (ports.LinguisticModel, error) {
	apiKey, err := l.resolveAPIKey(ctx)
	if err != nil {
		return nil, err
	}

	embedder, err := genai.NewEmbedder(ctx, apiKey, l.name)
	if err != nil {
		return nil, err
	}

	return New(embedder.Model(), l.tagger, embedder), nil
}

func (l *GenAILoader) Install(context.Context) error {
	return nil
}

func (l *GenAILoader) resolveAPIKey(ctx context.Context) (string, error) {
	if key := strings.TrimSpace(l.apiKey); key != "" {
		return key, nil
	}
	if l.secrets == nil {
		return "", genai.ErrMissingAPIKey
	}

	key, err := l.secrets.Get(ctx, file.APIKeyRef(domain.ModelProviderGenAI))
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", fmt.Errorf("%w: run `wordbot auth set-key --provider genai`", genai.ErrMissingAPIKey)
		}
		return "", fmt.Errorf("read genai API key: %w", err)
	}

	return key, nil
}
