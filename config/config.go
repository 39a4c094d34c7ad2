// Package config holds the settings of the mesh tools and loads them from
// YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all tool settings
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Import  ImportConfig  `yaml:"import"`
	Quality QualityConfig `yaml:"quality"`
}

// LoggingConfig holds logging settings. File rotation applies only when
// File is set.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// ImportConfig holds element mesh conversion settings
type ImportConfig struct {
	OrientFaces bool `yaml:"orient_faces"` // Rewind faces to point out of their owner
}

// QualityConfig holds the thresholds a mesh must satisfy
type QualityConfig struct {
	MaxNonOrthogonality float64 `yaml:"max_non_orthogonality"` // degrees
	MaxClosedness       float64 `yaml:"max_closedness"`
	MinVolume           float64 `yaml:"min_volume"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Import: ImportConfig{
			OrientFaces: true,
		},
		Quality: QualityConfig{
			MaxNonOrthogonality: 70,
			MaxClosedness:       1e-6,
			MinVolume:           1e-30,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory if needed
func (cfg *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
