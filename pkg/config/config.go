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

// Config holds all configuration options for dupmap.
type Config struct {
	// Thresholds for pair retention and review marking
	Thresholds ThresholdConfig `koanf:"thresholds"`

	// File exclusion markers
	Exclude ExcludeConfig `koanf:"exclude"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// ThresholdConfig defines the similarity cutoffs.
type ThresholdConfig struct {
	// SimilarityFloor is the minimum score for a pair to be retained at all.
	SimilarityFloor float64 `koanf:"similarity_floor"`
	// ReviewThreshold is the minimum score to draw an edge and mark a
	// method suspicious.
	ReviewThreshold float64 `koanf:"review_threshold"`
	// MinTokens is the minimum raw token count for a method to be compared.
	MinTokens int `koanf:"min_tokens"`
}

// ExcludeConfig defines path markers that exclude files from the scan.
type ExcludeConfig struct {
	Dirs []string `koanf:"dirs"`
}

// OutputConfig controls report and console output.
type OutputConfig struct {
	// ReportFile is the diagram file written in the working directory.
	ReportFile string `koanf:"report_file"`
	Format     string `koanf:"format"` // text, json, markdown
	Color      bool   `koanf:"color"`
	TopPairs   int    `koanf:"top_pairs"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Thresholds: ThresholdConfig{
			SimilarityFloor: 0.30,
			ReviewThreshold: 0.75,
			MinTokens:       15,
		},
		Exclude: ExcludeConfig{
			Dirs: []string{
				"venv",
				"env",
				".git",
				"node_modules",
				"vendor",
				"__pycache__",
				"dist",
				"build",
			},
		},
		Output: OutputConfig{
			ReportFile: "duplication_report.mmd",
			Format:     "text",
			Color:      true,
			TopPairs:   10,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
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

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"dupmap.toml",
		"dupmap.yaml",
		"dupmap.yml",
		"dupmap.json",
		".dupmap.toml",
		".dupmap.yaml",
		".dupmap.yml",
		".dupmap.json",
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

// ShouldExclude checks if a path should be excluded from the scan.
// Matching is a plain substring test against the full path, so a marker
// anywhere in the path excludes it, prefixes of unrelated directory names
// included.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, dir) {
			return true
		}
	}
	return false
}
