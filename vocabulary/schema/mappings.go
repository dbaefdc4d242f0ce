package schema

import (
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/semstreams/vocabulary/bfo"
	"github.com/c360studio/semstreams/vocabulary/cco"
)

// TermKind identifies what a Theoria RDF entity stands for: one of the
// eight term categories, or one of the schema-level kinds. The category
// kinds use the same strings as the term categories so callers can convert
// directly.
type TermKind string

// Term kind constants.
const (
	// KindEntity is an entity term definition.
	KindEntity TermKind = "entity"
	// KindRelationship is a relationship term definition.
	KindRelationship TermKind = "relationship"
	// KindProperty is a property term definition.
	KindProperty TermKind = "property"
	// KindAction is an action term definition.
	KindAction TermKind = "action"
	// KindMeasure is a measure term definition.
	KindMeasure TermKind = "measure"
	// KindModifier is a modifier term definition.
	KindModifier TermKind = "modifier"
	// KindTruthValue is a truth value term definition.
	KindTruthValue TermKind = "truth_value"
	// KindOperator is an operator term definition.
	KindOperator TermKind = "operator"
	// KindTheory is a staged theory.
	KindTheory TermKind = "theory"
	// KindSchema is an assembled knowledge schema.
	KindSchema TermKind = "schema"
	// KindAssembly is one assembly run.
	KindAssembly TermKind = "assembly"
)

// BFOClassMap maps term kinds to BFO class IRIs.
// Use this for BFO profile RDF export.
var BFOClassMap = map[TermKind]string{
	// Term definitions and documents are information artifacts.
	KindEntity:       bfo.GenericallyDependentContinuant,
	KindRelationship: bfo.GenericallyDependentContinuant,
	KindProperty:     bfo.GenericallyDependentContinuant,
	KindAction:       bfo.GenericallyDependentContinuant,
	KindMeasure:      bfo.GenericallyDependentContinuant,
	KindModifier:     bfo.GenericallyDependentContinuant,
	KindTruthValue:   bfo.GenericallyDependentContinuant,
	KindOperator:     bfo.GenericallyDependentContinuant,
	KindTheory:       bfo.GenericallyDependentContinuant,
	KindSchema:       bfo.GenericallyDependentContinuant,

	// The assembly run is a process.
	KindAssembly: bfo.Process,
}

// CCOClassMap maps term kinds to CCO class IRIs.
// Use this for CCO profile RDF export.
var CCOClassMap = map[TermKind]string{
	KindEntity:       cco.InformationContentEntity,
	KindRelationship: cco.InformationContentEntity,
	KindProperty:     cco.InformationContentEntity,
	KindAction:       cco.InformationContentEntity,
	KindMeasure:      cco.InformationContentEntity,
	KindModifier:     cco.InformationContentEntity,
	KindTruthValue:   cco.InformationContentEntity,
	KindOperator:     cco.InformationContentEntity,
	KindTheory:       cco.InformationContentEntity,

	// A schema prescribes structure for downstream instantiation.
	KindSchema: cco.DirectiveInformationContentEntity,

	KindAssembly: cco.ActOfArtifactProcessing,
}

// PROVClassMap maps term kinds to PROV-O class IRIs.
// Use this for minimal and all profile RDF exports.
var PROVClassMap = map[TermKind]string{
	KindEntity:       vocabulary.ProvEntity,
	KindRelationship: vocabulary.ProvEntity,
	KindProperty:     vocabulary.ProvEntity,
	KindAction:       vocabulary.ProvEntity,
	KindMeasure:      vocabulary.ProvEntity,
	KindModifier:     vocabulary.ProvEntity,
	KindTruthValue:   vocabulary.ProvEntity,
	KindOperator:     vocabulary.ProvEntity,
	KindTheory:       vocabulary.ProvEntity,
	KindSchema:       vocabulary.ProvEntity,

	KindAssembly: vocabulary.ProvActivity,
}

// TheoriaClassMap maps term kinds to Theoria class IRIs.
// Use this for all profile RDF exports.
var TheoriaClassMap = map[TermKind]string{
	KindEntity:       ClassEntityTerm,
	KindRelationship: ClassRelationshipTerm,
	KindProperty:     ClassPropertyTerm,
	KindAction:       ClassActionTerm,
	KindMeasure:      ClassMeasureTerm,
	KindModifier:     ClassModifierTerm,
	KindTruthValue:   ClassTruthValueTerm,
	KindOperator:     ClassOperatorTerm,
	KindTheory:       ClassTheory,
	KindSchema:       ClassKnowledgeSchema,
	KindAssembly:     ClassAssembly,
}

// PredicateIRIMap maps internal dotted predicates to export IRIs. The
// entries mirror the IRIs the predicates are registered with, so both the
// streaming and the local export paths translate identically.
var PredicateIRIMap = map[string]string{
	SchemaTheory:           PropAssembledFrom,
	SchemaTitle:            vocabulary.DcTitle,
	SchemaStatus:           Namespace + "status",
	SchemaUniversalVersion: PropUniversalVersion,
	SchemaInputHash:        PropInputHash,
	SchemaAssembledAt:      vocabulary.ProvGeneratedAtTime,

	SchemaModelType:       PropModelType,
	SchemaReasoningEngine: PropReasoningEngine,
	SchemaConfidence:      PropConfidence,
	SchemaOperators:       Namespace + "operators",
	SchemaRationale:       Namespace + "rationale",

	SchemaIsBalanced:         PropIsBalanced,
	SchemaBalanceRatio:       PropBalanceRatio,
	SchemaBalanceVariance:    Namespace + "balanceVariance",
	SchemaIntegrationQuality: Namespace + "integrationQuality",

	TermName:        vocabulary.SkosPrefLabel,
	TermIndigenous:  vocabulary.SkosAltLabel,
	TermCategory:    Namespace + "category",
	TermSubTypeOf:   vocabulary.SkosBroader,
	TermDescription: "http://purl.org/dc/terms/description",
	TermDomain:      PropDomain,
	TermRange:       PropRange,
	TermNotation:    Namespace + "notation",
	TermExamples:    "http://www.w3.org/2004/02/skos/core#example",

	SchemaEntityCount:     Namespace + "entityCount",
	SchemaConnectionCount: Namespace + "connectionCount",
	SchemaPropertyCount:   Namespace + "propertyCount",
	SchemaModifierCount:   Namespace + "modifierCount",

	HasTerm: PropHasTerm,
}

// GetTypesForTerm returns all type IRIs for a term kind and profile.
// Profile determines which ontology types are included:
//   - "minimal": PROV-O + Theoria types
//   - "bfo": BFO + PROV-O + Theoria types
//   - "cco": CCO + BFO + PROV-O + Theoria types
func GetTypesForTerm(kind TermKind, profile string) []string {
	types := make([]string, 0, 4)

	// Always include the Theoria type
	if theoriaClass, ok := TheoriaClassMap[kind]; ok {
		types = append(types, theoriaClass)
	}

	// Always include the PROV-O type
	if provClass, ok := PROVClassMap[kind]; ok {
		types = append(types, provClass)
	}

	// Include the BFO type for bfo and cco profiles
	if profile == "bfo" || profile == "cco" {
		if bfoClass, ok := BFOClassMap[kind]; ok {
			types = append(types, bfoClass)
		}
	}

	// Include the CCO type for the cco profile
	if profile == "cco" {
		if ccoClass, ok := CCOClassMap[kind]; ok {
			types = append(types, ccoClass)
		}
	}

	return types
}

// GetPredicateIRI returns the standard IRI for a predicate, if mapped.
// Unmapped predicates fall back to the Theoria namespace.
func GetPredicateIRI(predicate string) string {
	if iri, ok := PredicateIRIMap[predicate]; ok {
		return iri
	}
	return Namespace + predicate
}
