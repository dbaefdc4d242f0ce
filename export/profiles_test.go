package export_test

import (
	"testing"

	"github.com/c360studio/semstreams/vocabulary"
	"github.com/c360studio/semstreams/vocabulary/bfo"
	"github.com/c360studio/semstreams/vocabulary/cco"

	"github.com/schemaworks/theoria/export"
	schemavocab "github.com/schemaworks/theoria/vocabulary/schema"
)

func TestGetProfileConfig(t *testing.T) {
	tests := []struct {
		profile  export.Profile
		wantBFO  bool
		wantCCO  bool
		wantPROV bool
	}{
		{export.ProfileMinimal, false, false, true},
		{export.ProfileBFO, true, false, true},
		{export.ProfileCCO, true, true, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.profile), func(t *testing.T) {
			config := export.GetProfileConfig(tc.profile)
			if config.IncludeBFO != tc.wantBFO {
				t.Errorf("IncludeBFO = %v, want %v", config.IncludeBFO, tc.wantBFO)
			}
			if config.IncludeCCO != tc.wantCCO {
				t.Errorf("IncludeCCO = %v, want %v", config.IncludeCCO, tc.wantCCO)
			}
			if config.IncludePROV != tc.wantPROV {
				t.Errorf("IncludePROV = %v, want %v", config.IncludePROV, tc.wantPROV)
			}
		})
	}
}

func TestGetProfileConfigUnknown(t *testing.T) {
	// Unknown profile should default to minimal
	config := export.GetProfileConfig("unknown")
	if config.Name != export.ProfileMinimal {
		t.Errorf("Unknown profile should default to minimal, got %s", config.Name)
	}
}

func TestTypeAsserterMinimal(t *testing.T) {
	asserter := export.NewTypeAsserter(export.ProfileMinimal)

	types := asserter.GetTypeIRIs(schemavocab.KindEntity)

	hasProvEntity := false
	hasTheoriaClass := false
	hasBFOClass := false
	for _, typ := range types {
		if typ == vocabulary.ProvEntity {
			hasProvEntity = true
		}
		if typ == schemavocab.ClassEntityTerm {
			hasTheoriaClass = true
		}
		if typ == bfo.GenericallyDependentContinuant {
			hasBFOClass = true
		}
	}

	if !hasProvEntity {
		t.Error("Minimal profile should include PROV-O type")
	}
	if !hasTheoriaClass {
		t.Error("Minimal profile should include Theoria type")
	}
	if hasBFOClass {
		t.Error("Minimal profile should not include BFO type")
	}
}

func TestTypeAsserterBFO(t *testing.T) {
	asserter := export.NewTypeAsserter(export.ProfileBFO)

	types := asserter.GetTypeIRIs(schemavocab.KindRelationship)

	hasBFOClass := false
	for _, typ := range types {
		if typ == bfo.GenericallyDependentContinuant {
			hasBFOClass = true
		}
	}

	if !hasBFOClass {
		t.Error("BFO profile should include BFO type")
	}
}

func TestTypeAsserterCCO(t *testing.T) {
	asserter := export.NewTypeAsserter(export.ProfileCCO)

	types := asserter.GetTypeIRIs(schemavocab.KindSchema)

	hasCCOClass := false
	for _, typ := range types {
		if typ == cco.DirectiveInformationContentEntity {
			hasCCOClass = true
		}
	}

	if !hasCCOClass {
		t.Error("CCO profile should include CCO type")
	}
}

func TestTypeTriples(t *testing.T) {
	triples := export.TypeTriples("theoria.schema.demo", schemavocab.KindSchema, export.ProfileCCO)

	// Theoria + PROV + BFO + CCO
	if len(triples) != 4 {
		t.Fatalf("expected 4 type triples, got %d", len(triples))
	}

	for _, triple := range triples {
		if triple.Subject != "theoria.schema.demo" {
			t.Errorf("unexpected subject %v", triple.Subject)
		}
		if triple.Predicate != "rdf.syntax.type" {
			t.Errorf("unexpected predicate %q", triple.Predicate)
		}
		if triple.Source != "theoria.schema-exporter" {
			t.Errorf("unexpected source %q", triple.Source)
		}
		if triple.Confidence != 1.0 {
			t.Errorf("unexpected confidence %v", triple.Confidence)
		}
	}
}

func TestTypeTriplesMinimal(t *testing.T) {
	triples := export.TypeTriples("theoria.term.demo.actor", schemavocab.KindEntity, export.ProfileMinimal)

	// Theoria + PROV only
	if len(triples) != 2 {
		t.Fatalf("expected 2 type triples, got %d", len(triples))
	}
}

func TestBFOClassDescriptions(t *testing.T) {
	if len(export.BFOClassDescriptions) == 0 {
		t.Error("BFOClassDescriptions should not be empty")
	}

	// Check for the classes the export maps onto
	if _, ok := export.BFOClassDescriptions[bfo.Process]; !ok {
		t.Error("BFOClassDescriptions should contain Process")
	}
	if _, ok := export.BFOClassDescriptions[bfo.GenericallyDependentContinuant]; !ok {
		t.Error("BFOClassDescriptions should contain GenericallyDependentContinuant")
	}
}

func TestCCOClassDescriptions(t *testing.T) {
	if len(export.CCOClassDescriptions) == 0 {
		t.Error("CCOClassDescriptions should not be empty")
	}

	// Check for the classes the export maps onto
	if _, ok := export.CCOClassDescriptions[cco.InformationContentEntity]; !ok {
		t.Error("CCOClassDescriptions should contain InformationContentEntity")
	}
	if _, ok := export.CCOClassDescriptions[cco.DirectiveInformationContentEntity]; !ok {
		t.Error("CCOClassDescriptions should contain DirectiveInformationContentEntity")
	}
}

func TestPROVClassDescriptions(t *testing.T) {
	if len(export.PROVClassDescriptions) == 0 {
		t.Error("PROVClassDescriptions should not be empty")
	}

	// Check for the classes the export maps onto
	if _, ok := export.PROVClassDescriptions[vocabulary.ProvEntity]; !ok {
		t.Error("PROVClassDescriptions should contain Entity")
	}
	if _, ok := export.PROVClassDescriptions[vocabulary.ProvActivity]; !ok {
		t.Error("PROVClassDescriptions should contain Activity")
	}
}
