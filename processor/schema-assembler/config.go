package schemaassembler

import (
	"fmt"
	"reflect"

	"github.com/c360studio/semstreams/component"
	"github.com/schemaworks/theoria/assemble"
	"github.com/schemaworks/theoria/balance"
	"github.com/schemaworks/theoria/merge"
	"github.com/schemaworks/theoria/universal"
)

// schemaAssemblerSchema defines the configuration schema.
var schemaAssemblerSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the schema-assembler processor component.
type Config struct {
	Ports *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`

	// StreamName is the JetStream stream carrying staged theory bundles.
	StreamName string `json:"stream_name" schema:"type:string,description:JetStream stream name,category:basic,default:THEORY"`

	// ConsumerName is the durable consumer name.
	ConsumerName string `json:"consumer_name" schema:"type:string,description:Durable consumer name,category:basic,default:schema-assembler"`

	// MergePolicy resolves collisions between theory terms and universal primitives.
	MergePolicy string `json:"merge_policy" schema:"type:string,description:Collision policy (reject/prefer-universal/prefer-theory),category:basic,default:reject"`

	// OpenPrimitives lists primitive type names domain/range entries may
	// reference without a term definition. Empty selects the built-in list.
	OpenPrimitives []string `json:"open_primitives" schema:"type:array,description:Primitive type names usable without definition,category:advanced"`

	// UniversalVersion pins the universal term set version this component
	// expects. Assembly refuses to start against a different set.
	UniversalVersion string `json:"universal_version" schema:"type:string,description:Expected universal term set version,category:advanced,default:1.0.0"`

	// RatioThreshold is the minimum structural balance ratio.
	RatioThreshold float64 `json:"ratio_threshold" schema:"type:float,description:Minimum structural balance ratio,category:advanced,default:0.70"`

	// VarianceCeiling is the maximum purpose coverage variance.
	VarianceCeiling float64 `json:"variance_ceiling" schema:"type:float,description:Maximum purpose coverage variance,category:advanced,default:1.0"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.StreamName == "" {
		return fmt.Errorf("stream_name is required")
	}
	if c.ConsumerName == "" {
		return fmt.Errorf("consumer_name is required")
	}
	if c.MergePolicy != "" && !merge.Policy(c.MergePolicy).IsValid() {
		return fmt.Errorf("unknown merge_policy: %s (valid: %s, %s, %s)",
			c.MergePolicy, merge.PolicyReject, merge.PolicyPreferUniversal, merge.PolicyPreferTheory)
	}
	if c.RatioThreshold < 0 || c.RatioThreshold > 1 {
		return fmt.Errorf("ratio_threshold must be in [0, 1], got %v", c.RatioThreshold)
	}
	if c.VarianceCeiling < 0 {
		return fmt.Errorf("variance_ceiling must not be negative, got %v", c.VarianceCeiling)
	}
	return nil
}

// GetOptions returns the assembly options this configuration describes.
func (c *Config) GetOptions() assemble.Options {
	return assemble.Options{
		MergePolicy:    merge.ParsePolicy(c.MergePolicy),
		OpenPrimitives: c.OpenPrimitives,
		Balance: balance.Thresholds{
			RatioMinimum:    c.RatioThreshold,
			VarianceCeiling: c.VarianceCeiling,
		},
	}
}

// DefaultConfig returns default configuration for schema-assembler.
func DefaultConfig() Config {
	inputDefs := []component.PortDefinition{
		{
			Name:        "staged.in",
			Type:        "jetstream",
			Subject:     "theoria.theory.staged.v1",
			StreamName:  "THEORY",
			Required:    true,
			Description: "Staged theory bundles awaiting assembly",
		},
	}

	outputDefs := []component.PortDefinition{
		{
			Name:        "schema.out",
			Type:        "jetstream",
			Subject:     "theoria.schema.assembled.v1",
			StreamName:  "SCHEMA",
			Required:    true,
			Description: "Assembled knowledge schemas",
		},
	}

	thresholds := balance.DefaultThresholds()

	return Config{
		Ports: &component.PortConfig{
			Inputs:  inputDefs,
			Outputs: outputDefs,
		},
		StreamName:       "THEORY",
		ConsumerName:     "schema-assembler",
		MergePolicy:      merge.DefaultPolicy.String(),
		UniversalVersion: universal.DefaultVersion,
		RatioThreshold:   thresholds.RatioMinimum,
		VarianceCeiling:  thresholds.VarianceCeiling,
	}
}
