package model

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/wordbot/internal/adapters/embedding/genai"
	"github.com/bnema/wordbot/internal/adapters/repo/toml"
	"github.com/bnema/wordbot/internal/adapters/secrets/file"
	"github.com/bnema/wordbot/internal/application"
	"github.com/bnema/wordbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTagger struct{}

func (stubTagger) Tag(context.Context, string) ([]domain.Token, error) {
	return []domain.Token{{Text: "fox", POS: domain.PartOfSpeechNoun}}, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newManifests(t *testing.T) *toml.ModelRepository {
	t.Helper()

	repo, err := toml.NewModelRepository(t.TempDir())
	require.NoError(t, err)
	return repo
}

func TestNewLoaderSelectsProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provider domain.ModelProvider
		want     any
	}{
		{name: "default", provider: "", want: &LexicalLoader{}},
		{name: "lexical", provider: domain.ModelProviderLexical, want: &LexicalLoader{}},
		{name: "ollama upper case", provider: "OLLAMA", want: &OllamaLoader{}},
		{name: "genai", provider: domain.ModelProviderGenAI, want: &GenAILoader{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			loader, err := NewLoader(LoaderConfig{
				Provider:  tc.provider,
				Tagger:    stubTagger{},
				Manifests: newManifests(t),
			})
			require.NoError(t, err)
			assert.IsType(t, tc.want, loader)
		})
	}
}

func TestNewLoaderRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(LoaderConfig{Provider: "spacy", Tagger: stubTagger{}})
	assert.ErrorContains(t, err, `unknown model provider "spacy"`)

	_, err = NewLoader(LoaderConfig{Provider: domain.ModelProviderLexical})
	assert.ErrorContains(t, err, "requires a tagger")

	_, err = NewLoader(LoaderConfig{Provider: domain.ModelProviderLexical, Tagger: stubTagger{}})
	assert.ErrorContains(t, err, "requires a manifest repository")
}

func TestLexicalLoaderInstallsOnFirstLoad(t *testing.T) {
	t.Parallel()

	manifests := newManifests(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	loader, err := NewLoader(LoaderConfig{
		Provider:  domain.ModelProviderLexical,
		Tagger:    stubTagger{},
		Manifests: manifests,
		Clock:     fixedClock{now: now},
	})
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrModelNotInstalled)

	model, err := application.LoadModel(context.Background(), loader, nil)
	require.NoError(t, err)
	assert.Equal(t, "wordbot-lexical-v1", model.Name())

	manifest, err := manifests.GetByName(context.Background(), "wordbot-lexical-v1")
	require.NoError(t, err)
	assert.Equal(t, domain.ModelProviderLexical, manifest.Provider)
	assert.Equal(t, 512, manifest.Dimensions)
	assert.Equal(t, 3, manifest.NGramSize)
	assert.True(t, now.Equal(manifest.InstalledAt))

	vector, err := model.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Len(t, vector, 512)

	tokens, err := model.Tag(context.Background(), "fox")
	require.NoError(t, err)
	assert.Equal(t, "fox", tokens[0].Text)
}

func TestLexicalLoaderRejectsForeignManifest(t *testing.T) {
	t.Parallel()

	manifests := newManifests(t)
	require.NoError(t, manifests.Save(context.Background(), domain.ModelManifest{
		Name:     "wordbot-lexical-v1",
		Provider: domain.ModelProviderOllama,
	}))

	loader, err := NewLoader(LoaderConfig{Tagger: stubTagger{}, Manifests: manifests})
	require.NoError(t, err)

	_, err = loader.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrModelNotInstalled)
	assert.ErrorContains(t, err, "not lexical")
}

func TestOllamaLoaderPullsMissingModel(t *testing.T) {
	t.Parallel()

	var installed atomic.Bool
	var pulls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/show":
			if !installed.Load() {
				http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(`{}`))
		case "/api/pull":
			pulls.Add(1)
			installed.Store(true)
			_, _ = w.Write([]byte(`{"status":"success"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	manifests := newManifests(t)
	loader, err := NewLoader(LoaderConfig{
		Provider:       domain.ModelProviderOllama,
		OllamaEndpoint: server.URL,
		HTTPClient:     server.Client(),
		Tagger:         stubTagger{},
		Manifests:      manifests,
	})
	require.NoError(t, err)

	model, err := application.LoadModel(context.Background(), loader, nil)
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", model.Name())
	assert.Equal(t, int32(1), pulls.Load())

	manifest, err := manifests.GetByName(context.Background(), "nomic-embed-text")
	require.NoError(t, err)
	assert.Equal(t, domain.ModelProviderOllama, manifest.Provider)
}

func TestGenAILoaderResolvesAPIKey(t *testing.T) {
	t.Parallel()

	t.Run("configured key wins", func(t *testing.T) {
		t.Parallel()

		loader := &GenAILoader{apiKey: " configured ", secrets: file.NewStore(t.TempDir())}
		key, err := loader.resolveAPIKey(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "configured", key)
	})

	t.Run("secret store fallback", func(t *testing.T) {
		t.Parallel()

		store := file.NewStore(t.TempDir())
		require.NoError(t, store.Put(context.Background(), file.APIKeyRef(domain.ModelProviderGenAI), "stored"))

		loader := &GenAILoader{secrets: store}
		key, err := loader.resolveAPIKey(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "stored", key)
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		loader := &GenAILoader{secrets: file.NewStore(t.TempDir())}
		_, err := loader.Load(context.Background())
		assert.ErrorIs(t, err, genai.ErrMissingAPIKey)
		assert.NotErrorIs(t, err, domain.ErrModelNotInstalled)
		assert.NoError(t, loader.Install(context.Background()))
	})
}
