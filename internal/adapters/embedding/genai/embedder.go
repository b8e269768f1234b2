// Package genai embeds text with Google's Gemini embedding models.
package genai

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/wordbot/internal/ports"
	"google.golang.org/genai"
)

const (
	DefaultModel = "gemini-embedding-001"

	taskSemanticSimilarity = "SEMANTIC_SIMILARITY"
)

var ErrMissingAPIKey = errors.New("genai API key is required")

type Embedder struct {
	client *genai.Client
	model  string
}

var _ ports.Embedder = (*Embedder)(nil)

func NewEmbedder(ctx context.Context, apiKey, model string) (*Embedder, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Embedder{client: client, model: model}, nil
}

func (e *Embedder) Model() string {
	return e.model
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := e.client.Models.EmbedContent(ctx,
		e.model,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)},
		&genai.EmbedContentConfig{TaskType: taskSemanticSimilarity},
	)
	if err != nil {
		return nil, fmt.Errorf("genai embed: %w", err)
	}
	if len(result.Embeddings) == 0 || result.Embeddings[0] == nil {
		return nil, fmt.Errorf("genai returned no embeddings for model %q", e.model)
	}

	return result.Embeddings[0].Values, nil
}
