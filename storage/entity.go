// Package storage persists assembled schema payloads in NATS KV, keyed by
// the input hash of the run that produced them.
package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// EntityType represents the type of entity stored in KV.
type EntityType string

const (
	EntityTypeTheory EntityType = "theory"
	EntityTypeSchema EntityType = "schema"
)

// EntityID represents a typed entity identifier.
type EntityID struct {
	Type EntityType
	ID   string
}

// String returns the string representation of the entity ID.
func (e EntityID) String() string {
	return fmt.Sprintf("%s:%s", e.Type, e.ID)
}

// ParseEntityID parses an entity ID string into its components.
func ParseEntityID(s string) (EntityID, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return EntityID{}, fmt.Errorf("invalid entity ID format: %s", s)
	}
	entityType := EntityType(parts[0])
	switch entityType {
	case EntityTypeTheory, EntityTypeSchema:
		return EntityID{Type: entityType, ID: parts[1]}, nil
	default:
		return EntityID{}, fmt.Errorf("unknown entity type: %s", parts[0])
	}
}

// NewEntityID generates a new unique entity ID for the given type.
func NewEntityID(t EntityType) EntityID {
	return EntityID{
		Type: t,
		ID:   uuid.New().String(),
	}
}
