// Package config provides configuration loading and management for Theoria.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/schemaworks/theoria/assemble"
	"github.com/schemaworks/theoria/balance"
	"github.com/schemaworks/theoria/merge"
	"github.com/schemaworks/theoria/universal"
)

// Config represents the complete Theoria configuration
type Config struct {
	Version  string         `yaml:"version"`
	Log      LogConfig      `yaml:"log"`
	NATS     NATSConfig     `yaml:"nats"`
	Assembly AssemblyConfig `yaml:"assembly"`
	Balance  BalanceConfig  `yaml:"balance"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Export   ExportConfig   `yaml:"export"`
}

// LogConfig configures structured logging
type LogConfig struct {
	// Level is the minimum level to emit (debug, info, warn, error)
	Level string `yaml:"level"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
}

// AssemblyConfig configures the schema assembly engine
type AssemblyConfig struct {
	// MergePolicy resolves universal/theory collisions
	// (reject, prefer-universal, prefer-theory)
	MergePolicy string `yaml:"merge_policy"`
	// OpenPrimitives overrides the built-in primitive type allowlist
	// (empty = built-in list)
	OpenPrimitives []string `yaml:"open_primitives"`
	// UniversalVersion pins the universal definition set version
	UniversalVersion string `yaml:"universal_version"`
}

// BalanceConfig configures the purpose-balance verdict thresholds
type BalanceConfig struct {
	// RatioThreshold is the smallest acceptable min/max purpose-count
	// ratio (0-1)
	RatioThreshold float64 `yaml:"ratio_threshold"`
	// VarianceCeiling bounds the normalized variance of purpose counts
	VarianceCeiling float64 `yaml:"variance_ceiling"`
}

// CorpusConfig configures the theory corpus location
type CorpusConfig struct {
	// Root is the corpus root path (auto-detected from git if empty)
	Root string `yaml:"root"`
	// Include lists glob patterns for bundle files, relative to Root
	Include []string `yaml:"include"`
	// Exclude lists glob patterns to skip
	Exclude []string `yaml:"exclude"`
}

// ExportConfig configures RDF export
type ExportConfig struct {
	// Format is the RDF serialization format (turtle, ntriples, jsonld)
	Format string `yaml:"format"`
	// Profile is the ontology alignment profile (minimal, bfo, cco)
	Profile string `yaml:"profile"`
	// BaseIRI is the base IRI for entity URIs
	BaseIRI string `yaml:"base_iri"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	thresholds := balance.DefaultThresholds()
	return &Config{
		Version: "1",
		Log: LogConfig{
			Level: "info",
		},
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
		Assembly: AssemblyConfig{
			MergePolicy:      merge.DefaultPolicy.String(),
			OpenPrimitives:   nil, // Built-in list
			UniversalVersion: universal.DefaultVersion,
		},
		Balance: BalanceConfig{
			RatioThreshold:  thresholds.RatioMinimum,
			VarianceCeiling: thresholds.VarianceCeiling,
		},
		Corpus: CorpusConfig{
			Root:    "", // Auto-detect
			Include: []string{"theories/**/*.yaml", "theories/**/*.yml"},
		},
		Export: ExportConfig{
			Format:  "turtle",
			Profile: "minimal",
			BaseIRI: "https://theoria.dev",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not a known level (valid: debug, info, warn, error)", c.Log.Level)
	}

	if c.Assembly.MergePolicy != "" && !merge.Policy(c.Assembly.MergePolicy).IsValid() {
		return fmt.Errorf("assembly.merge_policy %q is not a known policy (valid: reject, prefer-universal, prefer-theory)", c.Assembly.MergePolicy)
	}

	if c.Balance.RatioThreshold < 0 || c.Balance.RatioThreshold > 1 {
		return fmt.Errorf("balance.ratio_threshold must be between 0 and 1")
	}
	if c.Balance.VarianceCeiling < 0 {
		return fmt.Errorf("balance.variance_ceiling must not be negative")
	}

	for _, pattern := range c.Corpus.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("corpus.include pattern %q is not a valid glob", pattern)
		}
	}
	for _, pattern := range c.Corpus.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("corpus.exclude pattern %q is not a valid glob", pattern)
		}
	}

	if c.Export.Format != "" {
		switch strings.ToLower(c.Export.Format) {
		case "turtle", "ntriples", "jsonld":
		default:
			return fmt.Errorf("export.format %q is not supported (valid: turtle, ntriples, jsonld)", c.Export.Format)
		}
	}
	if c.Export.Profile != "" {
		switch strings.ToLower(c.Export.Profile) {
		case "minimal", "bfo", "cco":
		default:
			return fmt.Errorf("export.profile %q is not supported (valid: minimal, bfo, cco)", c.Export.Profile)
		}
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Version != "" {
		c.Version = other.Version
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}

	// Assembly
	if other.Assembly.MergePolicy != "" {
		c.Assembly.MergePolicy = other.Assembly.MergePolicy
	}
	if len(other.Assembly.OpenPrimitives) > 0 {
		c.Assembly.OpenPrimitives = other.Assembly.OpenPrimitives
	}
	if other.Assembly.UniversalVersion != "" {
		c.Assembly.UniversalVersion = other.Assembly.UniversalVersion
	}

	// Balance
	if other.Balance.RatioThreshold != 0 {
		c.Balance.RatioThreshold = other.Balance.RatioThreshold
	}
	if other.Balance.VarianceCeiling != 0 {
		c.Balance.VarianceCeiling = other.Balance.VarianceCeiling
	}

	// Corpus
	if other.Corpus.Root != "" {
		c.Corpus.Root = other.Corpus.Root
	}
	if len(other.Corpus.Include) > 0 {
		c.Corpus.Include = other.Corpus.Include
	}
	if len(other.Corpus.Exclude) > 0 {
		c.Corpus.Exclude = other.Corpus.Exclude
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Profile != "" {
		c.Export.Profile = other.Export.Profile
	}
	if other.Export.BaseIRI != "" {
		c.Export.BaseIRI = other.Export.BaseIRI
	}
}

// Options converts the assembly and balance sections into engine options.
// Zero or unknown values are left for the engine defaults to fill.
func (c *Config) Options() assemble.Options {
	return assemble.Options{
		MergePolicy:    merge.ParsePolicy(c.Assembly.MergePolicy),
		OpenPrimitives: c.Assembly.OpenPrimitives,
		Balance: balance.Thresholds{
			RatioMinimum:    c.Balance.RatioThreshold,
			VarianceCeiling: c.Balance.VarianceCeiling,
		},
	}
}
