package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	intentsrender "github.com/bnema/wordbot/internal/adapters/render/intents"
	modeladapter "github.com/bnema/wordbot/internal/adapters/model"
	proseadapter "github.com/bnema/wordbot/internal/adapters/nlp/prose"
	tomlrepo "github.com/bnema/wordbot/internal/adapters/repo/toml"
	filestore "github.com/bnema/wordbot/internal/adapters/secrets/file"
	"github.com/bnema/wordbot/internal/application"
	"github.com/bnema/wordbot/internal/config"
	"github.com/bnema/wordbot/internal/domain"
	"github.com/bnema/wordbot/internal/logging"
	"github.com/bnema/wordbot/internal/ports"
	"go.uber.org/zap"
)

type app struct {
	cfg            config.Config
	logger         *zap.Logger
	manifests      *tomlrepo.ModelRepository
	intentSource   ports.IntentSource
	secretStore    ports.SecretStore
	loader         ports.ModelLoader
	intentRenderer func(domain.IntentTable, intentsrender.RenderOptions) (string, error)
	clock          ports.Clock
}

// pipeline is everything a submission needs once the model is loaded.
type pipeline struct {
	model      ports.LinguisticModel
	intents    domain.IntentTable
	dispatcher *application.Dispatcher
}

func wireApp() (*app, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	manifests, err := tomlrepo.NewModelRepository(cfg.Model.Dir)
	if err != nil {
		return nil, fmt.Errorf("wire model repository: %w", err)
	}

	secretStore := filestore.NewStore(cfg.Secrets.Dir)
	clock := ports.SystemClock{}

	loader, err := modeladapter.NewLoader(modeladapter.LoaderConfig{
		Provider:       cfg.Model.Provider,
		Name:           cfg.Model.Name,
		OllamaEndpoint: cfg.Ollama.Endpoint,
		GenAIAPIKey:    cfg.GenAI.APIKey,
		HTTPClient:     &http.Client{Timeout: 10 * time.Minute},
		Tagger:         proseadapter.NewTagger(),
		Manifests:      manifests,
		Secrets:        secretStore,
		Clock:          clock,
	})
	if err != nil {
		return nil, fmt.Errorf("wire model loader: %w", err)
	}

	return &app{
		cfg:            cfg,
		logger:         logger,
		manifests:      manifests,
		intentSource:   tomlrepo.NewIntentSource(cfg.Intents.Path),
		secretStore:    secretStore,
		loader:         loader,
		intentRenderer: intentsrender.Render,
		clock:          clock,
	}, nil
}

// loadPipeline loads the intent table and the linguistic model, installing
// the model first when it is missing.
func (a *app) loadPipeline(ctx context.Context) (*pipeline, error) {
	intents, err := a.intentSource.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load intents: %w", err)
	}

	model, err := application.LoadModel(ctx, a.loader, a.logger)
	if err != nil {
		return nil, err
	}

	return &pipeline{
		model:      model,
		intents:    intents,
		dispatcher: application.NewDispatcher(model, intents, a.logger),
	}, nil
}

// withLogger swaps the application logger, flushing the previous one.
func (a *app) withLogger(logger *zap.Logger) {
	_ = a.logger.Sync()
	a.logger = logger
}
