package staging

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadBundle reads a theory bundle from a YAML or JSON file. JSON parses
// through the YAML decoder, so one loader covers both extraction formats.
func LoadBundle(path string) (*TheoryBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theory bundle: %w", err)
	}
	bundle, err := ParseBundle(data)
	if err != nil {
		return nil, fmt.Errorf("theory bundle %s: %w", path, err)
	}
	return bundle, nil
}

// ParseBundle decodes and validates a theory bundle document.
func ParseBundle(data []byte) (*TheoryBundle, error) {
	var bundle TheoryBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return &bundle, nil
}
