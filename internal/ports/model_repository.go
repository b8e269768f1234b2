package ports

import (
	"context"

	"github.com/bnema/wordbot/internal/domain"
)

type ModelManifestRepository interface {
	GetByName(ctx context.Context, name string) (domain.ModelManifest, error)
	List(ctx context.Context) ([]domain.ModelManifest, error)
	Save(ctx context.Context, manifest domain.ModelManifest) error
}

type IntentSource interface {
	Load(ctx context.Context) (domain.IntentTable, error)
}
