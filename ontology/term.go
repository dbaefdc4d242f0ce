// Package ontology defines the canonical term model for assembled knowledge
// schemas: term definitions, the closed category set, the normalized-key
// registry, and the diagnostic and provenance records shared by the
// validation, merge, classification and balance stages.
package ontology

import "strings"

// TermID identifies a registered term by its normalized key.
type TermID string

// TermDefinition is one named concept extracted from a theory.
// IndigenousTerm preserves the source wording verbatim; Name, when set, is
// the canonical form used for keying and display.
type TermDefinition struct {
	IndigenousTerm string   `json:"indigenous_term" yaml:"indigenous_term"`
	Name           string   `json:"name,omitempty" yaml:"name,omitempty"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	Category       Category `json:"category" yaml:"category"`
	Domain         []string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Range          []string `json:"range,omitempty" yaml:"range,omitempty"`
	SubTypeOf      string   `json:"sub_type_of,omitempty" yaml:"sub_type_of,omitempty"`
	Notation       string   `json:"notation,omitempty" yaml:"notation,omitempty"`
	Examples       []string `json:"examples,omitempty" yaml:"examples,omitempty"`

	// Placement is the structural bucket the blueprint assigned the term to.
	// Empty for terms that entered through the vocabulary or classified
	// artifacts rather than a blueprint bucket.
	Placement Bucket `json:"placement,omitempty" yaml:"placement,omitempty"`
}

// Key returns the normalized registry key for the term. The canonical name
// wins when present, otherwise the indigenous term keys the entry.
func (t TermDefinition) Key() TermID {
	if t.Name != "" {
		return NormalizeKey(t.Name)
	}
	return NormalizeKey(t.IndigenousTerm)
}

// Label returns the display form of the term: canonical name when set,
// indigenous term otherwise.
func (t TermDefinition) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.IndigenousTerm
}

// NormalizeKey produces the canonical lookup key of a term name:
// lowercased, hyphen and underscore folded to spaces, whitespace collapsed.
// "IS_A", "is-a" and " is  a " all normalize to "is a".
func NormalizeKey(s string) TermID {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return TermID(strings.Join(strings.Fields(s), " "))
}
