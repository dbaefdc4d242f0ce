package assemble

import (
	"encoding/json"

	"github.com/schemaworks/theoria/balance"
	"github.com/schemaworks/theoria/classify"
	"github.com/schemaworks/theoria/ontology"
)

// AssembledSchema is the product of one assembly run: the merged term set
// split into structural buckets, the classification record, the optional
// balance report, and the full provenance trail.
type AssembledSchema struct {
	TheoryID         string `json:"theory_id"`
	Title            string `json:"title,omitempty"`
	UniversalVersion string `json:"universal_version"`

	Entities    []ontology.TermDefinition `json:"entities"`
	Connections []ontology.TermDefinition `json:"connections"`
	Properties  []ontology.TermDefinition `json:"properties"`
	Modifiers   []ontology.TermDefinition `json:"modifiers"`

	Classification classify.Record `json:"classification"`
	Balance        *balance.Report `json:"balance,omitempty"`

	Provenance  []ontology.Decision   `json:"provenance"`
	Diagnostics []ontology.Diagnostic `json:"diagnostics"`

	// InputHash is the SHA-256 digest of the bundle, the universal set and
	// the options that produced this schema.
	InputHash string `json:"input_hash"`
}

// bucket distributes merged terms into the four structural buckets,
// preserving the merge engine's key order within each bucket.
func (s *AssembledSchema) bucket(terms []ontology.TermDefinition) {
	for _, t := range terms {
		b := t.Placement
		if b == "" && t.Category.IsValid() {
			b = t.Category.Bucket()
		}
		switch b {
		case ontology.BucketEntities:
			s.Entities = append(s.Entities, t)
		case ontology.BucketConnections:
			s.Connections = append(s.Connections, t)
		case ontology.BucketProperties:
			s.Properties = append(s.Properties, t)
		case ontology.BucketModifiers:
			s.Modifiers = append(s.Modifiers, t)
		}
	}
}

// TermCount returns the number of terms across all four buckets.
func (s *AssembledSchema) TermCount() int {
	return len(s.Entities) + len(s.Connections) + len(s.Properties) + len(s.Modifiers)
}

// Terms returns every bucketed term in bucket order: entities, connections,
// properties, modifiers.
func (s *AssembledSchema) Terms() []ontology.TermDefinition {
	out := make([]ontology.TermDefinition, 0, s.TermCount())
	out = append(out, s.Entities...)
	out = append(out, s.Connections...)
	out = append(out, s.Properties...)
	out = append(out, s.Modifiers...)
	return out
}

// Term looks up a bucketed term by its normalized key.
func (s *AssembledSchema) Term(name string) (ontology.TermDefinition, bool) {
	key := ontology.NormalizeKey(name)
	for _, t := range s.Terms() {
		if t.Key() == key {
			return t, true
		}
	}
	return ontology.TermDefinition{}, false
}

// Canonical returns the canonical JSON encoding of the schema. Every slice
// is deterministically ordered and no map reaches the encoder, so equal
// inputs encode byte-identically.
func (s *AssembledSchema) Canonical() ([]byte, error) {
	return json.Marshal(s)
}
