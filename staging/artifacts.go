// Package staging is the boundary to the upstream extraction collaborator.
// It parses staged theory bundles and consolidates the three extraction
// artifacts (vocabulary, classified terms, blueprint) into one theory term
// set ready for assembly.
package staging

import (
	"fmt"

	"github.com/schemaworks/theoria/ontology"
)

// VocabularyEntry is one row of the earliest extraction artifact: the flat
// vocabulary list with free-text category hints.
type VocabularyEntry struct {
	Term          string `json:"term" yaml:"term"`
	Definition    string `json:"definition,omitempty" yaml:"definition,omitempty"`
	SourceExcerpt string `json:"source_excerpt,omitempty" yaml:"source_excerpt,omitempty"`
	CategoryHint  string `json:"category_hint,omitempty" yaml:"category_hint,omitempty"`
}

// ClassifiedTerm is one row of the second artifact: terms with resolved
// categories and domain/range assignments.
type ClassifiedTerm struct {
	Term     string   `json:"term" yaml:"term"`
	Category string   `json:"category" yaml:"category"`
	Domain   []string `json:"domain,omitempty" yaml:"domain,omitempty"`
	Range    []string `json:"range,omitempty" yaml:"range,omitempty"`
	Parent   string   `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// Blueprint is the third artifact: the draft schema with term definitions
// already placed into structural buckets.
type Blueprint struct {
	Title         string   `json:"title" yaml:"title"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	StructureHint string   `json:"structure_hint,omitempty" yaml:"structure_hint,omitempty"`
	Stages        []string `json:"stages,omitempty" yaml:"stages,omitempty"`

	Entities    []ontology.TermDefinition `json:"entities,omitempty" yaml:"entities,omitempty"`
	Connections []ontology.TermDefinition `json:"connections,omitempty" yaml:"connections,omitempty"`
	Properties  []ontology.TermDefinition `json:"properties,omitempty" yaml:"properties,omitempty"`
	Modifiers   []ontology.TermDefinition `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

// TheoryBundle carries everything the extraction stage produced for one
// theory, artifacts in extraction order. Purposes maps each declared
// analytical purpose to the terms serving it.
type TheoryBundle struct {
	TheoryID   string              `json:"theory_id" yaml:"theory_id"`
	Purposes   map[string][]string `json:"purposes,omitempty" yaml:"purposes,omitempty"`
	Vocabulary []VocabularyEntry   `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty"`
	Classified []ClassifiedTerm    `json:"classified,omitempty" yaml:"classified,omitempty"`
	Blueprint  *Blueprint          `json:"blueprint,omitempty" yaml:"blueprint,omitempty"`
}

// Validate checks the bundle carries an id and at least one artifact.
func (b *TheoryBundle) Validate() error {
	if b.TheoryID == "" {
		return fmt.Errorf("theory bundle: theory_id is required")
	}
	if len(b.Vocabulary) == 0 && len(b.Classified) == 0 && b.Blueprint == nil {
		return fmt.Errorf("theory bundle %s: no extraction artifacts", b.TheoryID)
	}
	return nil
}

// Title returns the blueprint title when present, otherwise the theory id.
func (b *TheoryBundle) Title() string {
	if b.Blueprint != nil && b.Blueprint.Title != "" {
		return b.Blueprint.Title
	}
	return b.TheoryID
}
