package theoryingester

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface needed for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the theory-ingester component with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "theory-ingester",
		Factory:     NewComponent,
		Schema:      theoryIngesterSchema,
		Type:        "processor",
		Protocol:    "corpus",
		Domain:      "theory",
		Description: "Watches the theory corpus and stages bundle files for schema assembly",
		Version:     "0.1.0",
	})
}
