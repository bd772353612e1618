// Package config provides configuration loading and structs for the cancerqa server and CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/cancerqa/pkg/utils"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Storage  StorageConfig  `yaml:"storage"`
	Matching MatchingConfig `yaml:"matching"`
	Session  SessionConfig  `yaml:"session"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host              string   `yaml:"host"`
	Port              int      `yaml:"port"`
	CORSOrigins       []string `yaml:"cors_origins"`
	MaxQuestionLength int      `yaml:"max_question_length"` // characters; 0 disables the limit
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CorpusConfig lists the question-answer sources. Several paths are joined
// column-wise into one table.
type CorpusConfig struct {
	Paths []string `yaml:"paths"`
	Sheet string   `yaml:"sheet"`
	Watch *bool    `yaml:"watch"`
}

// WatchOrDefault returns whether to hot-reload on source changes; defaults to true when unset.
func (c *CorpusConfig) WatchOrDefault() bool {
	if c.Watch != nil {
		return *c.Watch
	}
	return true
}

// StorageConfig holds the path of the imported corpus database.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// MatchingConfig holds matcher settings.
type MatchingConfig struct {
	Threshold     float64 `yaml:"threshold"`
	StopWordsPath string  `yaml:"stopwords_path"`
	FallbackEN    string  `yaml:"fallback_en"`
	FallbackBN    string  `yaml:"fallback_bn"`
}

// SessionConfig holds interactive chat settings.
type SessionConfig struct {
	HistorySize int `yaml:"history_size"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
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
	for i := range cfg.Corpus.Paths {
		cfg.Corpus.Paths[i] = expandPath(cfg.Corpus.Paths[i], configDir)
	}
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	if cfg.Matching.StopWordsPath != "" {
		cfg.Matching.StopWordsPath = expandPath(cfg.Matching.StopWordsPath, configDir)
	}

	return &cfg, nil
}

// LoadOrDefault loads path, or returns the built-in defaults when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		var cfg Config
		ApplyDefaults(&cfg)
		return &cfg, nil
	}
	return Load(path)
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

// ApplyEnv overrides cfg from environment variables. lookup is os.LookupEnv in production.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v, ok := lookup("CANCERQA_HOST"); ok && v != "" {
		cfg.Server.Host = v
	}
	if v, ok := lookup("CANCERQA_CORPUS"); ok && v != "" {
		cfg.Corpus.Paths = utils.SplitList(v)
	}
	if v, ok := lookup("CANCERQA_THRESHOLD"); ok && v != "" {
		th, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid CANCERQA_THRESHOLD %q: %w", v, err)
		}
		cfg.Matching.Threshold = th
	}
	if v, ok := lookup("CANCERQA_DEBUG"); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CANCERQA_DEBUG %q: %w", v, err)
		}
		cfg.Debug = debug
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if th := c.Matching.Threshold; !(th >= 0 && th <= 1) { // also rejects NaN
		return fmt.Errorf("matching.threshold must be within [0, 1], got %v", c.Matching.Threshold)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if len(c.Corpus.Paths) == 0 {
		return fmt.Errorf("corpus.paths must list at least one source")
	}
	if c.Session.HistorySize < 0 {
		return fmt.Errorf("session.history_size must not be negative")
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// paths starting with "~/" are relative to the home directory. Other paths are left as-is.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
