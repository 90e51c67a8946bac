/*
Package config manages TOML config for senserve.
*/
package config

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"senserve/internal/utils"
	"senserve/pkg/suggest"
)

// Config holds the entire config structure
type Config struct {
	Data    DataConfig    `toml:"data"`
	Suggest SuggestConfig `toml:"suggest"`
	Scoring ScoringConfig `toml:"scoring"`
	Server  ServerConfig  `toml:"server"`
	REPL    ReplConfig    `toml:"repl"`
}

// DataConfig points at the corpus on disk.
type DataConfig struct {
	Dir string `toml:"dir"`
}

// SuggestConfig bounds the engine per query.
type SuggestConfig struct {
	MaxResults int `toml:"max_results"`
	TimeoutMs  int `toml:"timeout_ms"`
}

// ScoringConfig exposes the penalty tables. Each slice carries the explicit
// penalties for match positions 0-3; the default applies beyond.
type ScoringConfig struct {
	Substitution        []float64 `toml:"substitution"`
	SubstitutionDefault float64   `toml:"substitution_default"`
	Addition            []float64 `toml:"addition"`
	AdditionDefault     float64   `toml:"addition_default"`
	Deletion            []float64 `toml:"deletion"`
	DeletionDefault     float64   `toml:"deletion_default"`
}

// ServerConfig has IPC related options.
type ServerConfig struct {
	MaxQueryLen int `toml:"max_query_len"`
	WordLimit   int `toml:"word_limit"`
}

// ReplConfig holds interactive mode options.
type ReplConfig struct {
	WordLimit int `toml:"word_limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir: "corpus/",
		},
		Suggest: SuggestConfig{
			MaxResults: suggest.DefaultMaxResults,
			TimeoutMs:  2000,
		},
		Scoring: ScoringConfig{
			Substitution:        []float64{5, 4, 3, 2},
			SubstitutionDefault: 1,
			Addition:            []float64{10, 8, 6, 4},
			AdditionDefault:     2,
			Deletion:            []float64{10, 8, 6, 4},
			DeletionDefault:     2,
		},
		Server: ServerConfig{
			MaxQueryLen: 200,
			WordLimit:   24,
		},
		REPL: ReplConfig{
			WordLimit: 10,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, falling back to defaults per field
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Timeout returns the per-query budget as a duration; zero means no limit.
func (c *Config) Timeout() time.Duration {
	if c.Suggest.TimeoutMs <= 0 {
		return 0
	}
	return time.Duration(c.Suggest.TimeoutMs) * time.Millisecond
}

// ScoringTables converts the TOML penalty arrays into the engine's tables.
// Short arrays keep the built-in values for the missing buckets.
func (c *Config) ScoringTables() suggest.ScoringConfig {
	tables := suggest.DefaultScoringConfig()
	applyTable(&tables.Substitution, c.Scoring.Substitution, c.Scoring.SubstitutionDefault)
	applyTable(&tables.Addition, c.Scoring.Addition, c.Scoring.AdditionDefault)
	applyTable(&tables.Deletion, c.Scoring.Deletion, c.Scoring.DeletionDefault)
	return tables
}

func applyTable(dst *suggest.PenaltyTable, explicit []float64, def float64) {
	for i := 0; i < len(explicit) && i < len(dst.Explicit); i++ {
		dst.Explicit[i] = explicit[i]
	}
	if def > 0 {
		dst.Default = def
	}
}
