package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/bnema/wordbot/internal/ports"
	"go.uber.org/zap"
)

// LoadModel loads the linguistic model. When the model is not installed it
// installs it once and retries the load once; any further failure is final.
func LoadModel(ctx context.Context, loader ports.ModelLoader, logger *zap.Logger) (ports.LinguisticModel, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	model, err := loader.Load(ctx)
	if err == nil {
		logger.Info("linguistic model loaded", zap.String("model", model.Name()))
		return model, nil
	}
	if !errors.Is(err, domain.ErrModelNotInstalled) {
		return nil, fmt.Errorf("load linguistic model: %w", err)
	}

	logger.Info("linguistic model not installed, installing", zap.Error(err))
	if err := loader.Install(ctx); err != nil {
		return nil, fmt.Errorf("install linguistic model: %w", err)
	}

	model, err = loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load linguistic model after install: %w", err)
	}

	logger.Info("linguistic model loaded", zap.String("model", model.Name()))
	return model, nil
}
