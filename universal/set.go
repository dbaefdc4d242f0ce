// Package universal carries the versioned cross-theory definition set that
// is injected into every assembled schema. The set is an immutable value
// passed explicitly into assembly, never process-wide state.
package universal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/schemaworks/theoria/ontology"
)

// Set is one version of the universal definitions.
type Set struct {
	Version string                    `json:"version" yaml:"version"`
	Terms   []ontology.TermDefinition `json:"terms" yaml:"terms"`
}

// Load reads a custom universal set from a YAML file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universal set: %w", err)
	}

	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse universal set: %w", err)
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// Validate checks the set is well-formed: versioned, categorized, and free
// of key collisions.
func (s *Set) Validate() error {
	if s.Version == "" {
		return fmt.Errorf("universal set has no version")
	}

	seen := make(map[ontology.TermID]string, len(s.Terms))
	for _, term := range s.Terms {
		if term.IndigenousTerm == "" && term.Name == "" {
			return fmt.Errorf("universal set %s contains an unnamed term", s.Version)
		}
		if !term.Category.IsValid() {
			return fmt.Errorf("universal term %q has invalid category %q", term.Label(), term.Category)
		}
		key := term.Key()
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("universal terms %q and %q collide on key %q", prev, term.Label(), key)
		}
		seen[key] = term.Label()
	}
	return nil
}

// Keys returns the normalized keys of all terms in the set.
func (s *Set) Keys() map[ontology.TermID]struct{} {
	keys := make(map[ontology.TermID]struct{}, len(s.Terms))
	for _, term := range s.Terms {
		keys[term.Key()] = struct{}{}
	}
	return keys
}
