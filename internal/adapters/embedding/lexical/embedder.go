// Package lexical embeds text offline by hashing word and character n-gram
// features into a fixed number of buckets.
package lexical

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/bnema/wordbot/internal/ports"
)

const (
	DefaultDimensions = 512
	DefaultNGramSize  = 3
)

type Embedder struct {
	dimensions int
	ngram      int
}

var _ ports.Embedder = (*Embedder)(nil)

func NewEmbedder(dimensions, ngram int) *Embedder {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	if ngram <= 0 {
		ngram = DefaultNGramSize
	}

	return &Embedder{dimensions: dimensions, ngram: ngram}
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vector := make([]float32, e.dimensions)
	for _, word := range words(text) {
		vector[e.bucket("w:"+word)] += 1

		padded := []rune("#" + word + "#")
		if len(padded) <= e.ngram {
			vector[e.bucket("c:"+string(padded))] += 1
			continue
		}
		for i := 0; i+e.ngram <= len(padded); i++ {
			vector[e.bucket("c:"+string(padded[i:i+e.ngram]))] += 1
		}
	}

	return vector, nil
}

func (e *Embedder) bucket(feature string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(feature))
	return int(h.Sum32() % uint32(e.dimensions))
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
