package schemaexporter

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface needed for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the schema-exporter component with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "schema-exporter",
		Factory:     NewComponent,
		Schema:      schemaExporterSchema,
		Type:        "output",
		Protocol:    "rdf",
		Domain:      "schema",
		Description: "Serializes assembled knowledge schemas to RDF formats (Turtle, N-Triples, JSON-LD)",
		Version:     "0.1.0",
	})
}
