// Package config resolves WordBot settings from ~/.wordbot/config.toml and
// WORDBOT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/wordbot/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".wordbot"
	envPrefix  = "WORDBOT"

	KeyModelProvider  = "model.provider"
	KeyModelName      = "model.name"
	KeyModelDir       = "model.dir"
	KeyOllamaEndpoint = "ollama.endpoint"
	KeyGenAIAPIKey    = "genai.api_key"
	KeyIntentsPath    = "intents.path"
	KeySecretsDir     = "secrets.dir"
	KeyLogLevel       = "log.level"
	KeyLogFile        = "log.file"

	defaultOllamaEndpoint = "http://localhost:11434"
	defaultLogLevel       = "warn"
	chatLogFile           = "wordbot.log"
)

type Config struct {
	Model   ModelConfig
	Ollama  OllamaConfig
	GenAI   GenAIConfig
	Intents IntentsConfig
	Secrets SecretsConfig
	Log     LogConfig

	// Dir is the per-user WordBot directory.
	Dir string
}

type ModelConfig struct {
	Provider domain.ModelProvider
	Name     string
	Dir      string
}

type OllamaConfig struct {
	Endpoint string
}

type GenAIConfig struct {
	APIKey string
}

type IntentsConfig struct {
	Path string
}

type SecretsConfig struct {
	Dir string
}

type LogConfig struct {
	Level string
	File  string
}

// ChatLogFile is where the interactive chat logs when no log file is
// configured, so log lines do not tear the terminal UI.
func (c Config) ChatLogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Dir, chatLogFile)
}

// Load reads the config file under homeDir when present and applies
// environment overrides. A missing config file is not an error.
func Load(v *viper.Viper, homeDir string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if homeDir == "" {
		return Config{}, errors.New("home directory is empty")
	}

	dir := filepath.Join(homeDir, configDir)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyModelProvider, string(domain.ModelProviderLexical))
	v.SetDefault(KeyModelName, "")
	v.SetDefault(KeyModelDir, filepath.Join(dir, "models"))
	v.SetDefault(KeyOllamaEndpoint, defaultOllamaEndpoint)
	v.SetDefault(KeyGenAIAPIKey, "")
	v.SetDefault(KeyIntentsPath, filepath.Join(dir, "intents.toml"))
	v.SetDefault(KeySecretsDir, filepath.Join(dir, "secrets"))
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogFile, "")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	provider := domain.ModelProvider(strings.ToLower(strings.TrimSpace(v.GetString(KeyModelProvider))))
	if !provider.Valid() {
		return Config{}, fmt.Errorf("%s: unsupported provider %q", KeyModelProvider, provider)
	}

	name := strings.TrimSpace(v.GetString(KeyModelName))
	if name == "" {
		name = provider.DefaultModelName()
	}

	cfg := Config{
		Dir: dir,
		Model: ModelConfig{
			Provider: provider,
			Name:     name,
		},
		Ollama: OllamaConfig{Endpoint: strings.TrimSpace(v.GetString(KeyOllamaEndpoint))},
		GenAI:  GenAIConfig{APIKey: strings.TrimSpace(v.GetString(KeyGenAIAPIKey))},
		Log: LogConfig{
			Level: strings.TrimSpace(v.GetString(KeyLogLevel)),
		},
	}

	var err error
	if cfg.Model.Dir, err = normalizePath(v.GetString(KeyModelDir), homeDir); err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyModelDir, err)
	}
	if cfg.Secrets.Dir, err = normalizePath(v.GetString(KeySecretsDir), homeDir); err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeySecretsDir, err)
	}
	if raw := strings.TrimSpace(v.GetString(KeyIntentsPath)); raw != "" {
		if cfg.Intents.Path, err = normalizePath(raw, homeDir); err != nil {
			return Config{}, fmt.Errorf("%s: %w", KeyIntentsPath, err)
		}
	}
	if raw := strings.TrimSpace(v.GetString(KeyLogFile)); raw != "" {
		if cfg.Log.File, err = normalizePath(raw, homeDir); err != nil {
			return Config{}, fmt.Errorf("%s: %w", KeyLogFile, err)
		}
	}

	return cfg, nil
}

// LoadDefault loads the configuration of the current user.
func LoadDefault() (Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	return Load(viper.New(), homeDir)
}

func normalizePath(path, homeDir string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is empty")
	}
	if path == "~" {
		path = homeDir
	} else if strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}

	return filepath.Clean(absPath), nil
}
