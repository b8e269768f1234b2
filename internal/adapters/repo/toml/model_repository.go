package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/bnema/wordbot/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	modelsFileName  = "models.toml"
	modelsFileMode  = 0o644
	modelsDirMode   = 0o755
	tempFilePattern = ".models-*.toml.tmp"
)

// ModelRepository keeps the manifests of installed models in a single TOML
// file inside the model directory.
type ModelRepository struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ModelManifestRepository = (*ModelRepository)(nil)

func NewModelRepository(modelDir string) (*ModelRepository, error) {
	if modelDir == "" {
		return nil, errors.New("model directory is empty")
	}

	absDir, err := filepath.Abs(modelDir)
	if err != nil {
		return nil, fmt.Errorf("resolve model directory: %w", err)
	}
	path := filepath.Join(filepath.Clean(absDir), modelsFileName)

	return &ModelRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *ModelRepository) Path() string {
	return r.path
}

func (r *ModelRepository) Save(ctx context.Context, manifest domain.ModelManifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("validate model manifest: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(manifest)
	updated := false
	for i := range file.Models {
		if file.Models[i].Name == encoded.Name {
			file.Models[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Models = append(file.Models, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *ModelRepository) GetByName(ctx context.Context, name string) (domain.ModelManifest, error) {
	if err := ctx.Err(); err != nil {
		return domain.ModelManifest{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.ModelManifest{}, err
	}

	for _, entry := range file.Models {
		if entry.Name == name {
			return fromSchema(entry), nil
		}
	}

	return domain.ModelManifest{}, fmt.Errorf("%w: %q", domain.ErrModelManifestNotFound, name)
}

func (r *ModelRepository) List(ctx context.Context) ([]domain.ModelManifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	manifests := make([]domain.ModelManifest, 0, len(file.Models))
	for _, entry := range file.Models {
		manifests = append(manifests, fromSchema(entry))
	}

	return manifests, nil
}

func (r *ModelRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read models file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode models file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *ModelRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, modelsDirMode); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode models file: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp models file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp models file: %w", err)
	}
	if err := tempFile.Chmod(modelsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp models file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp models file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace models file: %w", err)
	}
	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(manifest domain.ModelManifest) modelSchema {
	return modelSchema{
		Name:        manifest.Name,
		Provider:    string(manifest.Provider),
		Dimensions:  manifest.Dimensions,
		NGramSize:   manifest.NGramSize,
		InstalledAt: formatTime(manifest.InstalledAt),
	}
}

func fromSchema(entry modelSchema) domain.ModelManifest {
	return domain.ModelManifest{
		Name:        entry.Name,
		Provider:    domain.ModelProvider(entry.Provider),
		Dimensions:  entry.Dimensions,
		NGramSize:   entry.NGramSize,
		InstalledAt: parseTime(entry.InstalledAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
