// Package config loads clonescan configuration from TOML, YAML, or
// JSON files with sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for clonescan.
type Config struct {
	// Duplicate detection parameters
	Detection DetectionConfig `koanf:"detection"`

	// Per-language structural query overrides
	Languages LanguageConfig `koanf:"languages"`

	// Size analyzer thresholds
	Thresholds ThresholdConfig `koanf:"thresholds"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// DetectionConfig parameterizes the duplicate matcher.
type DetectionConfig struct {
	MinSize       int     `koanf:"min_size"`
	MinSimilarity float64 `koanf:"min_similarity"`
	Strategy      string  `koanf:"strategy"` // exact or pairwise
}

// LanguageConfig carries per-language extraction data. Queries maps a
// language name to a tree-sitter query source that replaces the
// built-in one.
type LanguageConfig struct {
	Queries map[string]string `koanf:"queries"`
}

// ThresholdConfig defines size-analyzer thresholds.
type ThresholdConfig struct {
	LargeFileTokens  int `koanf:"large_file_tokens"`
	LargeClassTokens int `koanf:"large_class_tokens"`
	TopN             int `koanf:"top_n"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns  []string `koanf:"patterns"`
	Dirs      []string `koanf:"dirs"`
	Gitignore bool     `koanf:"gitignore"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			MinSize:       50,
			MinSimilarity: 0.8,
			Strategy:      "exact",
		},
		Thresholds: ThresholdConfig{
			LargeFileTokens:  500,
			LargeClassTokens: 300,
			TopN:             10,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.min.css",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				"dist",
				"build",
				"__pycache__",
				".venv",
				"venv",
				"env",
			},
			Gitignore: true,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or
// returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"clonescan.toml",
		"clonescan.yaml",
		"clonescan.yml",
		"clonescan.json",
		".clonescan.toml",
		".clonescan.yaml",
		".clonescan.yml",
		".clonescan.json",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			cfg, err := Load(name)
			if err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}
