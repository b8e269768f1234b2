package toml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, err := NewModelRepository(filepath.Join(t.TempDir(), "models"))
	require.NoError(t, err)

	installed := time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC)
	lexical := domain.ModelManifest{
		Name:        "wordbot-lexical-v1",
		Provider:    domain.ModelProviderLexical,
		Dimensions:  512,
		NGramSize:   3,
		InstalledAt: installed,
	}
	ollama := domain.ModelManifest{
		Name:        "nomic-embed-text",
		Provider:    domain.ModelProviderOllama,
		InstalledAt: installed,
	}

	require.NoError(t, repo.Save(context.Background(), lexical))
	require.NoError(t, repo.Save(context.Background(), ollama))

	got, err := repo.GetByName(context.Background(), lexical.Name)
	require.NoError(t, err)
	assert.Equal(t, lexical, got)

	manifests, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ModelManifest{lexical, ollama}, manifests)
}

func TestModelRepositorySaveReplacesExistingEntry(t *testing.T) {
	t.Parallel()

	repo, err := NewModelRepository(t.TempDir())
	require.NoError(t, err)

	manifest := domain.ModelManifest{Name: "m", Provider: domain.ModelProviderLexical, Dimensions: 64, NGramSize: 3}
	require.NoError(t, repo.Save(context.Background(), manifest))

	manifest.Dimensions = 128
	require.NoError(t, repo.Save(context.Background(), manifest))

	manifests, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, 128, manifests[0].Dimensions)
}

func TestModelRepositoryMissingManifest(t *testing.T) {
	t.Parallel()

	repo, err := NewModelRepository(t.TempDir())
	require.NoError(t, err)

	_, err = repo.GetByName(context.Background(), "absent")
	assert.ErrorIs(t, err, domain.ErrModelManifestNotFound)

	manifests, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, manifests)
}

func TestModelRepositoryRejectsInvalidManifest(t *testing.T) {
	t.Parallel()

	repo, err := NewModelRepository(t.TempDir())
	require.NoError(t, err)

	err = repo.Save(context.Background(), domain.ModelManifest{Name: "m", Provider: domain.ModelProviderLexical})
	assert.ErrorContains(t, err, "dimensions must be positive")
	_, statErr := os.Stat(repo.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestModelRepositoryRejectsNewerSchema(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models.toml"), []byte("version = 99\n"), 0o644))

	repo, err := NewModelRepository(dir)
	require.NoError(t, err)

	_, err = repo.List(context.Background())
	assert.ErrorContains(t, err, "unsupported models schema version 99")
}

func TestModelRepositoryWritesReadableTOML(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo, err := NewModelRepository(dir)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.ModelManifest{
		Name:       "wordbot-lexical-v1",
		Provider:   domain.ModelProviderLexical,
		Dimensions: 512,
		NGramSize:  3,
	}))

	data, err := os.ReadFile(filepath.Join(dir, "models.toml"))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "version = 1")
	assert.Contains(t, content, "[[models]]")
	assert.Contains(t, content, "wordbot-lexical-v1")
	assert.Contains(t, content, "ngram_size = 3")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasSuffix(entry.Name(), ".tmp"), "temp file left behind: %s", entry.Name())
	}
}

func TestModelRepositoryConcurrentSaves(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			repo, err := NewModelRepository(dir)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, repo.Save(context.Background(), domain.ModelManifest{
				Name:       "model-" + string(rune('a'+i)),
				Provider:   domain.ModelProviderLexical,
				Dimensions: 32,
				NGramSize:  2,
			}))
		}(i)
	}
	wg.Wait()

	repo, err := NewModelRepository(dir)
	require.NoError(t, err)
	manifests, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, manifests, 8)
}

func TestModelRepositoryHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	repo, err := NewModelRepository(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = repo.GetByName(ctx, "m")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Save(ctx, domain.ModelManifest{}), context.Canceled)
}
