package config

import "github.com/hyperjump/cancerqa/internal/match"

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "./config.yaml"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.CORSOrigins == nil {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Server.MaxQuestionLength == 0 {
		cfg.Server.MaxQuestionLength = 4096
	}
	if len(cfg.Corpus.Paths) == 0 {
		cfg.Corpus.Paths = []string{"./Women_Cancer_QA.xlsx"}
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "./cancerqa.db"
	}
	if cfg.Matching.FallbackEN == "" {
		cfg.Matching.FallbackEN = match.DefaultFallbackEN
	}
	if cfg.Matching.FallbackBN == "" {
		cfg.Matching.FallbackBN = match.DefaultFallbackBN
	}
	if cfg.Session.HistorySize == 0 {
		cfg.Session.HistorySize = 5
	}
}
