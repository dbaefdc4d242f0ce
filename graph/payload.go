// Package graph provides the assembled-schema message payload and helpers
// for publishing assembly results to the knowledge graph.
package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"

	"github.com/schemaworks/theoria/assemble"
	"github.com/schemaworks/theoria/ontology"
	schemavocab "github.com/schemaworks/theoria/vocabulary/schema"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "schema",
		Category:    "assembled",
		Version:     "v1",
		Description: "Assembled knowledge schema with classification and provenance",
		Factory:     func() any { return &SchemaPayload{} },
	})
	if err != nil {
		panic("failed to register SchemaPayload: " + err.Error())
	}
}

// SchemaType is the message type for assembled schema payloads.
var SchemaType = message.Type{Domain: "schema", Category: "assembled", Version: "v1"}

// TripleSource identifies this producer in emitted triples.
const TripleSource = "theoria.schema-assembler"

// SchemaPayload implements message.Payload and graph.Graphable for assembly
// results. Rejected assemblies carry diagnostics and no schema document.
type SchemaPayload struct {
	TheoryID    string                    `json:"theory_id"`
	Status      assemble.Status           `json:"status"`
	Schema_     *assemble.AssembledSchema `json:"schema,omitempty"`
	Diagnostics []ontology.Diagnostic     `json:"diagnostics,omitempty"`
	AssembledAt time.Time                 `json:"assembled_at"`
}

// NewSchemaPayload wraps one assembly result for publication.
func NewSchemaPayload(res assemble.Result, at time.Time) *SchemaPayload {
	return &SchemaPayload{
		TheoryID:    res.TheoryID,
		Status:      res.Status,
		Schema_:     res.Schema,
		Diagnostics: res.Diagnostics,
		AssembledAt: at,
	}
}

func (p *SchemaPayload) Schema() message.Type { return SchemaType }

// AssembledSchema returns the schema document, nil for rejected results.
func (p *SchemaPayload) AssembledSchema() *assemble.AssembledSchema { return p.Schema_ }

func (p *SchemaPayload) Validate() error {
	if p.TheoryID == "" {
		return errors.New("theory ID is required")
	}
	switch p.Status {
	case assemble.StatusOk:
		if p.Schema_ == nil {
			return errors.New("ok result requires a schema")
		}
	case assemble.StatusRejected:
		if p.Schema_ != nil {
			return errors.New("rejected result must not carry a schema")
		}
	default:
		return fmt.Errorf("unknown status %q", p.Status)
	}
	return nil
}

func (p *SchemaPayload) MarshalJSON() ([]byte, error) {
	type Alias SchemaPayload
	return json.Marshal((*Alias)(p))
}

func (p *SchemaPayload) UnmarshalJSON(data []byte) error {
	type Alias SchemaPayload
	return json.Unmarshal(data, (*Alias)(p))
}

// EntityID implements graph.Graphable.
func (p *SchemaPayload) EntityID() string { return SchemaEntityID(p.TheoryID) }

// Triples implements graph.Graphable. Triple order is deterministic: schema
// metadata, classification, balance, bucket counts, then terms in bucket
// order. All triples share the payload's assembly timestamp.
func (p *SchemaPayload) Triples() []message.Triple {
	schemaID := p.EntityID()
	b := &tripleBuilder{at: p.AssembledAt}

	b.add(schemaID, schemavocab.SchemaTheory, TheoryEntityID(p.TheoryID))
	b.add(schemaID, schemavocab.SchemaStatus, string(p.Status))

	s := p.Schema_
	if s == nil {
		return b.triples
	}

	if s.Title != "" {
		b.add(schemaID, schemavocab.SchemaTitle, s.Title)
	}
	b.add(schemaID, schemavocab.SchemaUniversalVersion, s.UniversalVersion)
	b.add(schemaID, schemavocab.SchemaInputHash, s.InputHash)
	b.add(schemaID, schemavocab.SchemaAssembledAt, p.AssembledAt.Format(time.RFC3339))

	b.add(schemaID, schemavocab.SchemaModelType, string(s.Classification.ModelType))
	b.add(schemaID, schemavocab.SchemaReasoningEngine, string(s.Classification.ReasoningEngine))
	b.add(schemaID, schemavocab.SchemaConfidence, string(s.Classification.Confidence))
	if s.Classification.Rationale != "" {
		b.add(schemaID, schemavocab.SchemaRationale, s.Classification.Rationale)
	}
	for _, op := range s.Classification.CompatibleOperators {
		b.add(schemaID, schemavocab.SchemaOperators, op)
	}

	if s.Balance != nil {
		b.add(schemaID, schemavocab.SchemaIsBalanced, string(s.Balance.IsBalanced))
		b.add(schemaID, schemavocab.SchemaBalanceRatio, s.Balance.BalanceRatio)
		b.add(schemaID, schemavocab.SchemaBalanceVariance, s.Balance.Variance)
		b.add(schemaID, schemavocab.SchemaIntegrationQuality, s.Balance.IntegrationQuality)
	}

	b.add(schemaID, schemavocab.SchemaEntityCount, len(s.Entities))
	b.add(schemaID, schemavocab.SchemaConnectionCount, len(s.Connections))
	b.add(schemaID, schemavocab.SchemaPropertyCount, len(s.Properties))
	b.add(schemaID, schemavocab.SchemaModifierCount, len(s.Modifiers))

	for _, term := range s.Terms() {
		termID := TermEntityID(p.TheoryID, term.Key())
		b.add(schemaID, schemavocab.HasTerm, termID)

		b.add(termID, schemavocab.TermName, term.Label())
		if term.IndigenousTerm != "" && term.IndigenousTerm != term.Label() {
			b.add(termID, schemavocab.TermIndigenous, term.IndigenousTerm)
		}
		b.add(termID, schemavocab.TermCategory, string(term.Category))
		if term.Description != "" {
			b.add(termID, schemavocab.TermDescription, term.Description)
		}
		for _, ref := range term.Domain {
			b.add(termID, schemavocab.TermDomain, ref)
		}
		for _, ref := range term.Range {
			b.add(termID, schemavocab.TermRange, ref)
		}
		if term.SubTypeOf != "" {
			b.add(termID, schemavocab.TermSubTypeOf, term.SubTypeOf)
		}
		if term.Notation != "" {
			b.add(termID, schemavocab.TermNotation, term.Notation)
		}
		for _, example := range term.Examples {
			b.add(termID, schemavocab.TermExamples, example)
		}
	}

	return b.triples
}

type tripleBuilder struct {
	at      time.Time
	triples []message.Triple
}

func (b *tripleBuilder) add(subject, predicate string, object any) {
	b.triples = append(b.triples, message.Triple{
		Subject:    subject,
		Predicate:  predicate,
		Object:     object,
		Source:     TripleSource,
		Timestamp:  b.at,
		Confidence: 1.0,
	})
}
