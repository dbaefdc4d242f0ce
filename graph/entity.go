package graph

import (
	"fmt"
	"strings"

	"github.com/schemaworks/theoria/ontology"
)

// SchemaEntityID generates a consistent entity ID for an assembled schema.
// Format: theoria.schema.<theory-id>
func SchemaEntityID(theoryID string) string {
	return fmt.Sprintf("theoria.schema.%s", slugify(theoryID))
}

// TheoryEntityID generates a consistent entity ID for a staged theory.
// Format: theoria.theory.<theory-id>
func TheoryEntityID(theoryID string) string {
	return fmt.Sprintf("theoria.theory.%s", slugify(theoryID))
}

// TermEntityID generates a consistent entity ID for a schema term.
// Format: theoria.term.<theory-id>.<term-key>
func TermEntityID(theoryID string, key ontology.TermID) string {
	return fmt.Sprintf("theoria.term.%s.%s", slugify(theoryID), slugify(string(key)))
}

// slugify lowercases and replaces anything unsafe for dotted entity IDs.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}
