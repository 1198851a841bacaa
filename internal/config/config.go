// Package config provides configuration loading and structs for the
// Osusume server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Engine    EngineConfig    `yaml:"engine"`
	Watch     WatchConfig     `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the database and model/index artifacts.
type StorageConfig struct {
	DatabasePath    string `yaml:"database_path"`
	AuthorIndexPath string `yaml:"author_index_path"`
	RatingModelPath string `yaml:"rating_model_path"`
	BooksCSVPath    string `yaml:"books_csv_path"`
	ReadListCSVPath string `yaml:"read_list_csv_path"`
}

// EmbeddingConfig holds sentence-embedder settings.
type EmbeddingConfig struct {
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
}

// EngineConfig holds ranking engine settings.
type EngineConfig struct {
	// DefaultK and MaxK bound how many recommendations a query returns.
	DefaultK int `yaml:"default_k"`
	MaxK     int `yaml:"max_k"`
	// DefaultBoostFactor applies when a request leaves it unset; must be > 1.
	DefaultBoostFactor float64 `yaml:"default_boost_factor"`
	// MaxUserID overrides the rating model's user count when positive.
	MaxUserID int `yaml:"max_user_id"`
	// ModelTimeoutSeconds bounds each external model call (rating
	// prediction, similarity scoring) per query.
	ModelTimeoutSeconds int `yaml:"model_timeout_seconds"`
	// SaveResults persists every ranked result set keyed by (user, query).
	SaveResults bool `yaml:"save_results"`
}

// ModelTimeout returns the per-call model timeout as a duration.
func (e *EngineConfig) ModelTimeout() time.Duration {
	return time.Duration(e.ModelTimeoutSeconds) * time.Second
}

// WatchConfig holds catalog artifact watch settings.
type WatchConfig struct {
	// Enabled turns on wholesale catalog reload when a watched file changes.
	Enabled bool `yaml:"enabled"`
}

// Load reads and parses the config file at path, applies defaults, and
// makes artifact paths absolute. Returns an error if the file cannot be
// read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.AuthorIndexPath = expandPath(cfg.Storage.AuthorIndexPath, configDir)
	cfg.Storage.RatingModelPath = expandPath(cfg.Storage.RatingModelPath, configDir)
	cfg.Storage.BooksCSVPath = expandPath(cfg.Storage.BooksCSVPath, configDir)
	cfg.Storage.ReadListCSVPath = expandPath(cfg.Storage.ReadListCSVPath, configDir)
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
