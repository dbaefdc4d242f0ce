package export

import (
	"fmt"
	"strings"

	"github.com/schemaworks/theoria/assemble"
	"github.com/schemaworks/theoria/graph"
	"github.com/schemaworks/theoria/ontology"
	schemavocab "github.com/schemaworks/theoria/vocabulary/schema"
)

// Triple is one predicate-object pair on an exported entity. Objects of
// type Ref are written as IRI references, everything else as typed literals.
type Triple struct {
	Predicate string
	Object    any
}

// Entity is an exportable RDF entity with its kind and triples.
type Entity struct {
	ID      string
	Kind    schemavocab.TermKind
	Triples []Triple
}

// SchemaExporter renders assembled schemas as RDF documents. Output is
// deterministic: prefixes are sorted and terms keep their bucket order.
type SchemaExporter struct {
	profile  ProfileConfig
	prefixes map[string]string
}

// NewSchemaExporter creates an exporter for the given profile.
func NewSchemaExporter(profile Profile) *SchemaExporter {
	return &SchemaExporter{
		profile:  GetProfileConfig(profile),
		prefixes: defaultPrefixes(),
	}
}

// defaultPrefixes returns the standard namespace prefixes for RDF export.
func defaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":     "http://www.w3.org/1999/02/22-rdf-syntax-ns#",
		"rdfs":    "http://www.w3.org/2000/01/rdf-schema#",
		"owl":     "http://www.w3.org/2002/07/owl#",
		"xsd":     "http://www.w3.org/2001/XMLSchema#",
		"dc":      "http://purl.org/dc/terms/",
		"skos":    "http://www.w3.org/2004/02/skos/core#",
		"prov":    "http://www.w3.org/ns/prov#",
		"bfo":     "http://purl.obolibrary.org/obo/",
		"cco":     "http://www.ontologyrepository.com/CommonCoreOntologies/",
		"theoria": schemavocab.Namespace,
		"entity":  schemavocab.EntityNamespace,
	}
}

// SetPrefix overrides or adds a namespace prefix.
func (e *SchemaExporter) SetPrefix(prefix, iri string) {
	e.prefixes[prefix] = iri
}

// Export serializes the schema to the specified format.
func (e *SchemaExporter) Export(s *assemble.AssembledSchema, format Format) (string, error) {
	if s == nil {
		return "", fmt.Errorf("nil schema")
	}

	entities := e.entities(s)

	switch format {
	case FormatTurtle:
		return e.toTurtle(entities), nil
	case FormatNTriples:
		return e.toNTriples(entities), nil
	case FormatJSONLD:
		return e.toJSONLD(entities), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// entities renders the schema as one schema-level entity followed by one
// entity per term in bucket order.
func (e *SchemaExporter) entities(s *assemble.AssembledSchema) []Entity {
	out := make([]Entity, 0, s.TermCount()+1)
	out = append(out, e.schemaEntity(s))
	for _, term := range s.Terms() {
		out = append(out, e.termEntity(s, term))
	}
	return out
}

// schemaEntity renders the schema-level entity: provenance back to the
// theory, assembly metadata, classification, balance, and term membership.
func (e *SchemaExporter) schemaEntity(s *assemble.AssembledSchema) Entity {
	triples := []Triple{
		{schemavocab.SchemaTheory, Ref(entityIRI(graph.TheoryEntityID(s.TheoryID)))},
	}
	if s.Title != "" {
		triples = append(triples, Triple{schemavocab.SchemaTitle, s.Title})
	}
	triples = append(triples,
		Triple{schemavocab.SchemaUniversalVersion, s.UniversalVersion},
		Triple{schemavocab.SchemaInputHash, s.InputHash},
		Triple{schemavocab.SchemaModelType, string(s.Classification.ModelType)},
		Triple{schemavocab.SchemaReasoningEngine, string(s.Classification.ReasoningEngine)},
		Triple{schemavocab.SchemaConfidence, string(s.Classification.Confidence)},
	)
	if s.Balance != nil {
		triples = append(triples,
			Triple{schemavocab.SchemaIsBalanced, string(s.Balance.IsBalanced)},
			Triple{schemavocab.SchemaBalanceRatio, s.Balance.BalanceRatio},
		)
	}
	for _, term := range s.Terms() {
		triples = append(triples, Triple{schemavocab.HasTerm, e.termRef(s.TheoryID, term.Key())})
	}

	return Entity{
		ID:      graph.SchemaEntityID(s.TheoryID),
		Kind:    schemavocab.KindSchema,
		Triples: triples,
	}
}

// termEntity renders one term definition as an RDF entity.
func (e *SchemaExporter) termEntity(s *assemble.AssembledSchema, term ontology.TermDefinition) Entity {
	triples := []Triple{
		{schemavocab.TermName, term.Label()},
	}
	if term.IndigenousTerm != "" && term.IndigenousTerm != term.Label() {
		triples = append(triples, Triple{schemavocab.TermIndigenous, term.IndigenousTerm})
	}
	triples = append(triples, Triple{schemavocab.TermCategory, string(term.Category)})
	if term.Description != "" {
		triples = append(triples, Triple{schemavocab.TermDescription, term.Description})
	}
	for _, ref := range term.Domain {
		triples = append(triples, Triple{schemavocab.TermDomain, e.termObject(s, ref)})
	}
	for _, ref := range term.Range {
		triples = append(triples, Triple{schemavocab.TermRange, e.termObject(s, ref)})
	}
	if term.SubTypeOf != "" {
		triples = append(triples, Triple{schemavocab.TermSubTypeOf, e.termObject(s, term.SubTypeOf)})
	}
	if term.Notation != "" {
		triples = append(triples, Triple{schemavocab.TermNotation, term.Notation})
	}
	for _, example := range term.Examples {
		triples = append(triples, Triple{schemavocab.TermExamples, example})
	}

	return Entity{
		ID:      graph.TermEntityID(s.TheoryID, term.Key()),
		Kind:    schemavocab.TermKind(term.Category),
		Triples: triples,
	}
}

// termObject links a term reference to its entity IRI when the schema
// defines the referenced term, and falls back to a literal for open
// primitives.
func (e *SchemaExporter) termObject(s *assemble.AssembledSchema, ref string) any {
	if _, ok := s.Term(ref); ok {
		return e.termRef(s.TheoryID, ontology.NormalizeKey(ref))
	}
	return ref
}

func (e *SchemaExporter) termRef(theoryID string, key ontology.TermID) Ref {
	return Ref(entityIRI(graph.TermEntityID(theoryID, key)))
}

// toTurtle serializes entities to Turtle format.
func (e *SchemaExporter) toTurtle(entities []Entity) string {
	w := NewTurtleWriter()
	for prefix, iri := range e.prefixes {
		w.SetPrefix(prefix, iri)
	}
	w.WritePrefixes()

	for i, entity := range entities {
		w.WriteSubject(entityIRI(entity.ID))

		types := typeIRIsFor(e.profile, entity.Kind)
		for j, typeIRI := range types {
			w.WriteType(typeIRI, j == len(types)-1 && len(entity.Triples) == 0)
		}
		for j, triple := range entity.Triples {
			w.WritePredicate(e.predicateIRI(triple.Predicate), triple.Object, j == len(entity.Triples)-1)
		}

		if i < len(entities)-1 {
			w.WriteBlank()
		}
	}

	return w.String()
}

// toNTriples serializes entities to N-Triples format.
func (e *SchemaExporter) toNTriples(entities []Entity) string {
	w := NewNTriplesWriter()

	for _, entity := range entities {
		iri := entityIRI(entity.ID)
		for _, typeIRI := range typeIRIsFor(e.profile, entity.Kind) {
			w.WriteTypeTriple(iri, typeIRI)
		}
		for _, triple := range entity.Triples {
			w.WriteTriple(iri, e.predicateIRI(triple.Predicate), triple.Object)
		}
	}

	return w.String()
}

// toJSONLD serializes entities to JSON-LD format.
func (e *SchemaExporter) toJSONLD(entities []Entity) string {
	w := NewJSONLDWriter()
	w.SetContext(e.prefixes)

	for _, entity := range entities {
		properties := make(map[string]any, len(entity.Triples))
		for _, triple := range entity.Triples {
			key := e.predicateIRI(triple.Predicate)
			value := jsonldValue(triple.Object)
			switch existing := properties[key].(type) {
			case nil:
				properties[key] = value
			case []any:
				properties[key] = append(existing, value)
			default:
				properties[key] = []any{existing, value}
			}
		}
		w.AddNode(entityIRI(entity.ID), typeIRIsFor(e.profile, entity.Kind), properties)
	}

	return w.String()
}

func (e *SchemaExporter) predicateIRI(predicate string) string {
	if e.profile.TranslatePredicates {
		return schemavocab.GetPredicateIRI(predicate)
	}
	return schemavocab.Namespace + predicate
}

// entityIRI converts a dotted entity ID to an IRI.
// Example: "theoria.term.social-influence.actor"
//       -> "https://theoria.dev/entity/term/social-influence/actor"
func entityIRI(entityID string) string {
	parts := strings.Split(entityID, ".")
	if len(parts) < 2 {
		return schemavocab.EntityNamespace + entityID
	}

	// Drop the leading org segment, the rest becomes the IRI path
	return schemavocab.EntityNamespace + strings.Join(parts[1:], "/")
}
