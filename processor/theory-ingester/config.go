package theoryingester

import (
	"fmt"
	"reflect"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/semstreams/component"
)

// theoryIngesterSchema defines the configuration schema.
var theoryIngesterSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the theory-ingester input component.
type Config struct {
	Ports *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`

	// CorpusRoot is the base directory of the theory corpus.
	CorpusRoot string `json:"corpus_root" schema:"type:string,description:Base directory of the theory corpus,category:basic,default:."`

	// Include lists glob patterns selecting bundle files, relative to the corpus root.
	Include []string `json:"include" schema:"type:array,description:Glob patterns selecting bundle files,category:basic,default:[theories/**/*.yaml,theories/**/*.yml]"`

	// Exclude lists glob patterns for files to skip.
	Exclude []string `json:"exclude" schema:"type:array,description:Glob patterns excluding bundle files,category:advanced"`

	// ScanOnStart controls whether the full corpus is staged when the component starts.
	ScanOnStart bool `json:"scan_on_start" schema:"type:bool,description:Stage all corpus bundles on startup,category:basic,default:true"`

	// WatchConfig holds file watching configuration.
	WatchConfig WatchConfig `json:"watch_config" schema:"type:object,description:File watching configuration for automatic bundle re-ingestion,category:advanced"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.CorpusRoot == "" {
		return fmt.Errorf("corpus_root is required")
	}
	for _, pattern := range c.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	if c.WatchConfig.DebounceDelay != "" {
		if _, err := time.ParseDuration(c.WatchConfig.DebounceDelay); err != nil {
			return fmt.Errorf("invalid debounce_delay format: %w", err)
		}
	}
	return nil
}

// DefaultConfig returns default configuration for theory-ingester.
func DefaultConfig() Config {
	outputDefs := []component.PortDefinition{
		{
			Name:        "staged.out",
			Type:        "jetstream",
			Subject:     "theoria.theory.staged.v1",
			StreamName:  "THEORY",
			Required:    true,
			Description: "Staged theory bundles for schema assembly",
		},
	}

	return Config{
		Ports: &component.PortConfig{
			Outputs: outputDefs,
		},
		CorpusRoot:  ".",
		Include:     []string{"theories/**/*.yaml", "theories/**/*.yml"},
		ScanOnStart: true,
		WatchConfig: DefaultWatchConfig(),
	}
}
