package schemaassembler

import (
	"testing"

	"github.com/schemaworks/theoria/assemble"
	"github.com/schemaworks/theoria/merge"
	"github.com/schemaworks/theoria/staging"
	"github.com/schemaworks/theoria/universal"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing stream name",
			mutate:  func(c *Config) { c.StreamName = "" },
			wantErr: true,
		},
		{
			name:    "missing consumer name",
			mutate:  func(c *Config) { c.ConsumerName = "" },
			wantErr: true,
		},
		{
			name:    "unknown merge policy",
			mutate:  func(c *Config) { c.MergePolicy = "overwrite" },
			wantErr: true,
		},
		{
			name:    "empty merge policy allowed",
			mutate:  func(c *Config) { c.MergePolicy = "" },
			wantErr: false,
		},
		{
			name:    "ratio threshold above one",
			mutate:  func(c *Config) { c.RatioThreshold = 1.1 },
			wantErr: true,
		},
		{
			name:    "negative ratio threshold",
			mutate:  func(c *Config) { c.RatioThreshold = -0.1 },
			wantErr: true,
		},
		{
			name:    "negative variance ceiling",
			mutate:  func(c *Config) { c.VarianceCeiling = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfigShape(t *testing.T) {
	config := DefaultConfig()

	if config.StreamName != "THEORY" {
		t.Errorf("unexpected default stream: %s", config.StreamName)
	}
	if config.ConsumerName != "schema-assembler" {
		t.Errorf("unexpected default consumer: %s", config.ConsumerName)
	}
	if config.MergePolicy != merge.DefaultPolicy.String() {
		t.Errorf("unexpected default merge policy: %s", config.MergePolicy)
	}
	if config.UniversalVersion != universal.DefaultVersion {
		t.Errorf("unexpected default universal version: %s", config.UniversalVersion)
	}

	if config.Ports == nil {
		t.Fatal("default config should define ports")
	}
	if len(config.Ports.Inputs) != 1 || config.Ports.Inputs[0].Subject != "theoria.theory.staged.v1" {
		t.Errorf("unexpected input ports: %+v", config.Ports.Inputs)
	}
	if len(config.Ports.Outputs) != 1 || config.Ports.Outputs[0].Subject != "theoria.schema.assembled.v1" {
		t.Errorf("unexpected output ports: %+v", config.Ports.Outputs)
	}
}

func TestGetOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := DefaultConfig()
		opts := config.GetOptions()

		if opts.MergePolicy != merge.PolicyReject {
			t.Errorf("unexpected merge policy: %s", opts.MergePolicy)
		}
		if opts.Balance.RatioMinimum != 0.70 {
			t.Errorf("unexpected ratio minimum: %v", opts.Balance.RatioMinimum)
		}
		if opts.Balance.VarianceCeiling != 1.0 {
			t.Errorf("unexpected variance ceiling: %v", opts.Balance.VarianceCeiling)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		config := DefaultConfig()
		config.MergePolicy = "prefer-theory"
		config.OpenPrimitives = []string{"string"}
		config.RatioThreshold = 0.9
		config.VarianceCeiling = 0.5

		opts := config.GetOptions()
		if opts.MergePolicy != merge.PolicyPreferTheory {
			t.Errorf("unexpected merge policy: %s", opts.MergePolicy)
		}
		if len(opts.OpenPrimitives) != 1 || opts.OpenPrimitives[0] != "string" {
			t.Errorf("unexpected open primitives: %v", opts.OpenPrimitives)
		}
		if opts.Balance.RatioMinimum != 0.9 {
			t.Errorf("unexpected ratio minimum: %v", opts.Balance.RatioMinimum)
		}
	})

	t.Run("unknown policy left empty", func(t *testing.T) {
		// Validate rejects unknown policies; GetOptions on an unvalidated
		// config leaves the policy empty for the engine default to fill.
		config := DefaultConfig()
		config.MergePolicy = "overwrite"

		opts := config.GetOptions()
		if opts.MergePolicy != "" {
			t.Errorf("expected empty policy for unknown value, got %s", opts.MergePolicy)
		}
	})
}

// The consumer computes the cache key before assembling, so the key the
// config-built assembler produces must match the hash the engine records
// on the assembled schema.
func TestGetOptionsCacheKeyMatchesSchema(t *testing.T) {
	config := DefaultConfig()
	assembler := assemble.New(nil, config.GetOptions())

	bundle := staging.TheoryBundle{
		TheoryID: "social-influence",
		Classified: []staging.ClassifiedTerm{
			{Term: "Actor", Category: "entity"},
			{Term: "influences", Category: "relationship",
				Domain: []string{"Actor"}, Range: []string{"Actor"}},
		},
	}

	key := assembler.InputHash(bundle)
	res := assembler.Assemble(bundle)
	if !res.Ok() {
		t.Fatalf("expected assembly to succeed, got diagnostics: %v", res.Diagnostics)
	}
	if res.Schema.InputHash != key {
		t.Errorf("cache key %s does not match schema input hash %s", key, res.Schema.InputHash)
	}
}
