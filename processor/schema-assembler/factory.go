package schemaassembler

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface needed for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the schema-assembler component with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "schema-assembler",
		Factory:     NewComponent,
		Schema:      schemaAssemblerSchema,
		Type:        "processor",
		Protocol:    "assembly",
		Domain:      "schema",
		Description: "Assembles staged theory bundles into knowledge schemas",
		Version:     "0.1.0",
	})
}
