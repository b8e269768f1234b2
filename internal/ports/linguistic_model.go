package ports

import (
	"context"

	"github.com/bnema/wordbot/internal/domain"
)

// Tagger splits text into tokens and assigns each a part of speech.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]domain.Token, error)
}

// Embedder maps text to a dense vector. Vectors from one embedder are
// comparable with each other by cosine similarity.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type LinguisticModel interface {
	Tagger
	Embedder
	Name() string
}

// ModelLoader acquires a linguistic model. Load returns an error wrapping
// domain.ErrModelNotInstalled when Install may fix the failure.
type ModelLoader interface {
	Load(ctx context.Context) (LinguisticModel, error)
	Install(ctx context.Context) error
}
