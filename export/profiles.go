// Package export renders assembled knowledge schemas as RDF documents with
// configurable ontology alignment profiles.
package export

import (
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/semstreams/vocabulary/bfo"
	"github.com/c360studio/semstreams/vocabulary/cco"

	schemavocab "github.com/schemaworks/theoria/vocabulary/schema"
)

// Profile determines which ontology type assertions are included in the export.
type Profile string

const (
	// ProfileMinimal includes only PROV-O, Dublin Core, and SKOS alignment.
	ProfileMinimal Profile = "minimal"

	// ProfileBFO includes BFO type assertions plus the minimal profile.
	ProfileBFO Profile = "bfo"

	// ProfileCCO includes CCO type assertions plus the BFO profile.
	ProfileCCO Profile = "cco"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludeBFO indicates whether to include BFO type assertions.
	IncludeBFO bool

	// IncludeCCO indicates whether to include CCO type assertions.
	IncludeCCO bool

	// IncludePROV indicates whether to include PROV-O type assertions.
	IncludePROV bool

	// IncludeTheoria indicates whether to include Theoria type assertions.
	IncludeTheoria bool

	// TranslatePredicates indicates whether to translate predicates to standard IRIs.
	TranslatePredicates bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileMinimal: {
		Name:                ProfileMinimal,
		Description:         "PROV-O, Dublin Core, and SKOS alignment only",
		IncludeBFO:          false,
		IncludeCCO:          false,
		IncludePROV:         true,
		IncludeTheoria:      true,
		TranslatePredicates: true,
	},
	ProfileBFO: {
		Name:                ProfileBFO,
		Description:         "BFO type assertions plus minimal profile",
		IncludeBFO:          true,
		IncludeCCO:          false,
		IncludePROV:         true,
		IncludeTheoria:      true,
		TranslatePredicates: true,
	},
	ProfileCCO: {
		Name:                ProfileCCO,
		Description:         "Full CCO/BFO/PROV-O alignment",
		IncludeBFO:          true,
		IncludeCCO:          true,
		IncludePROV:         true,
		IncludeTheoria:      true,
		TranslatePredicates: true,
	},
}

// GetProfileConfig returns the configuration for a profile.
func GetProfileConfig(profile Profile) ProfileConfig {
	if config, ok := Profiles[profile]; ok {
		return config
	}
	return Profiles[ProfileMinimal]
}

// TypeAsserter generates type assertions for schema entities based on profile.
type TypeAsserter struct {
	profile ProfileConfig
}

// NewTypeAsserter creates a new type asserter for the given profile.
func NewTypeAsserter(profile Profile) *TypeAsserter {
	return &TypeAsserter{
		profile: GetProfileConfig(profile),
	}
}

// GetTypeIRIs returns all type IRIs for a term kind based on the profile.
func (t *TypeAsserter) GetTypeIRIs(kind schemavocab.TermKind) []string {
	return typeIRIsFor(t.profile, kind)
}

func typeIRIsFor(cfg ProfileConfig, kind schemavocab.TermKind) []string {
	types := make([]string, 0, 4)

	// Always include the Theoria type when enabled
	if cfg.IncludeTheoria {
		if class, ok := schemavocab.TheoriaClassMap[kind]; ok {
			types = append(types, class)
		}
	}

	// Include PROV-O type when enabled
	if cfg.IncludePROV {
		if class, ok := schemavocab.PROVClassMap[kind]; ok {
			types = append(types, class)
		}
	}

	// Include BFO type when enabled
	if cfg.IncludeBFO {
		if class, ok := schemavocab.BFOClassMap[kind]; ok {
			types = append(types, class)
		}
	}

	// Include CCO type when enabled
	if cfg.IncludeCCO {
		if class, ok := schemavocab.CCOClassMap[kind]; ok {
			types = append(types, class)
		}
	}

	return types
}

// TypeTriples returns rdf:type triples as []message.Triple for an entity
// of the given kind under the given profile.
func TypeTriples(entityID string, kind schemavocab.TermKind, profile Profile) []message.Triple {
	asserter := NewTypeAsserter(profile)
	typeIRIs := asserter.GetTypeIRIs(kind)
	triples := make([]message.Triple, 0, len(typeIRIs))
	for _, typeIRI := range typeIRIs {
		triples = append(triples, message.Triple{
			Subject:    entityID,
			Predicate:  "rdf.syntax.type",
			Object:     typeIRI,
			Source:     "theoria.schema-exporter",
			Confidence: 1.0,
		})
	}
	return triples
}

// BFOClassDescriptions provides human-readable descriptions for the BFO
// classes the export maps onto.
var BFOClassDescriptions = map[string]string{
	bfo.GenericallyDependentContinuant: "Information patterns that can be copied",
	bfo.Process:                        "Events that unfold over time",
}

// CCOClassDescriptions provides human-readable descriptions for the CCO
// classes the export maps onto.
var CCOClassDescriptions = map[string]string{
	cco.InformationContentEntity:          "Root class for information entities",
	cco.DirectiveInformationContentEntity: "Prescriptive information content",
	cco.ActOfArtifactProcessing:           "Processing of an artifact",
}

// PROVClassDescriptions provides human-readable descriptions for the PROV-O
// classes the export maps onto.
var PROVClassDescriptions = map[string]string{
	vocabulary.ProvEntity:   "Thing with fixed aspects",
	vocabulary.ProvActivity: "Something that occurs over time",
}
