package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemaworks/theoria/ontology"
)

func term(name string, cat ontology.Category, domain, rng []string) ontology.TermDefinition {
	return ontology.TermDefinition{
		Name:     name,
		Category: cat,
		Domain:   domain,
		Range:    rng,
	}
}

func TestMergeDisjointSets(t *testing.T) {
	universal := []ontology.TermDefinition{
		term("Entity", ontology.CategoryEntity, nil, nil),
		term("part of", ontology.CategoryRelationship, []string{"Entity"}, []string{"Entity"}),
	}
	theory := []ontology.TermDefinition{
		term("Social Capital", ontology.CategoryEntity, nil, nil),
	}

	res := NewEngine(PolicyReject).Merge(universal, theory)

	require.Empty(t, res.Diagnostics)
	require.Len(t, res.Terms, 3)
	assert.Equal(t, "Entity", res.Terms[0].Name)
	assert.Equal(t, "part of", res.Terms[1].Name)
	assert.Equal(t, "Social Capital", res.Terms[2].Name)

	actions := map[string]ontology.DecisionAction{}
	for _, d := range res.Decisions {
		actions[d.Term] = d.Action
	}
	assert.Equal(t, ontology.ActionInjected, actions["Entity"])
	assert.Equal(t, ontology.ActionInjected, actions["part of"])
	assert.Equal(t, ontology.ActionRegistered, actions["Social Capital"])
}

func TestMergeCompatibleRefinement(t *testing.T) {
	universal := []ontology.TermDefinition{
		term("Entity", ontology.CategoryEntity, nil, nil),
		term("Event", ontology.CategoryEntity, nil, nil),
		term("Process", ontology.CategoryEntity, nil, nil),
		term("State", ontology.CategoryEntity, nil, nil),
		term("causes", ontology.CategoryRelationship,
			[]string{"Event", "Process"}, []string{"Event", "Process", "State"}),
	}
	refined := term("causes", ontology.CategoryRelationship,
		[]string{"Process"}, []string{"State"})
	refined.Description = "narrowed to process outcomes"

	res := NewEngine(PolicyReject).Merge(universal, []ontology.TermDefinition{refined})

	require.Empty(t, res.Diagnostics)
	var kept *ontology.TermDefinition
	for i := range res.Terms {
		if res.Terms[i].Key() == "causes" {
			kept = &res.Terms[i]
		}
	}
	require.NotNil(t, kept)
	assert.Equal(t, "narrowed to process outcomes", kept.Description)
	assert.Equal(t, []string{"Process"}, kept.Domain)

	var refinedDecision bool
	for _, d := range res.Decisions {
		if d.Term == "causes" && d.Action == ontology.ActionRefined {
			refinedDecision = true
			assert.Equal(t, ontology.OriginTheory, d.Origin)
		}
	}
	assert.True(t, refinedDecision, "expected a refined decision for causes")
}

func TestMergeRefinementThroughSubtypeChain(t *testing.T) {
	universal := []ontology.TermDefinition{
		term("Entity", ontology.CategoryEntity, nil, nil),
		term("name", ontology.CategoryProperty, []string{"Entity"}, []string{"string"}),
	}
	institution := term("Institution", ontology.CategoryEntity, nil, nil)
	institution.SubTypeOf = "Actor"
	actor := term("Actor", ontology.CategoryEntity, nil, nil)
	actor.SubTypeOf = "Entity"
	theory := []ontology.TermDefinition{
		actor,
		institution,
		term("name", ontology.CategoryProperty, []string{"Institution"}, []string{"string"}),
	}

	res := NewEngine(PolicyReject).Merge(universal, theory)

	require.Empty(t, res.Diagnostics)
	for _, tt := range res.Terms {
		if tt.Key() == "name" {
			assert.Equal(t, []string{"Institution"}, tt.Domain)
		}
	}
}

func TestMergeConflictRejected(t *testing.T) {
	universal := []ontology.TermDefinition{
		term("Entity", ontology.CategoryEntity, nil, nil),
		term("is-a", ontology.CategoryRelationship, []string{"Entity"}, []string{"Entity"}),
	}
	variant := ontology.TermDefinition{
		IndigenousTerm: "IS_A",
		Name:           "IS_A",
		Category:       ontology.CategoryRelationship,
		Domain:         []string{"Entity"},
		Range:          []string{"Concept"},
	}
	theory := []ontology.TermDefinition{
		term("Concept", ontology.CategoryEntity, nil, nil),
		variant,
	}

	res := NewEngine(PolicyReject).Merge(universal, theory)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, ontology.CodeMergeConflict, res.Diagnostics[0].Code)
	assert.Equal(t, ontology.SeverityFatal, res.Diagnostics[0].Severity)
	assert.True(t, ontology.HasFatal(res.Diagnostics))

	// Universal definition stays in place under reject.
	for _, tt := range res.Terms {
		if tt.Key() == "is a" {
			assert.Equal(t, []string{"Entity"}, tt.Range)
		}
	}
}

func TestMergeConflictPreferTheory(t *testing.T) {
	universal := []ontology.TermDefinition{
		term("Entity", ontology.CategoryEntity, nil, nil),
		term("is-a", ontology.CategoryRelationship, []string{"Entity"}, []string{"Entity"}),
	}
	theory := []ontology.TermDefinition{
		term("Concept", ontology.CategoryEntity, nil, nil),
		term("IS_A", ontology.CategoryRelationship, []string{"Entity"}, []string{"Concept"}),
	}

	res := NewEngine(PolicyPreferTheory).Merge(universal, theory)

	require.Empty(t, res.Diagnostics)
	for _, tt := range res.Terms {
		if tt.Key() == "is a" {
			assert.Equal(t, "IS_A", tt.Name)
			assert.Equal(t, []string{"Concept"}, tt.Range)
		}
	}

	var recorded bool
	for _, d := range res.Decisions {
		if d.Action == ontology.ActionPolicyTheory {
			recorded = true
			assert.Equal(t, "IS_A", d.Term)
		}
	}
	assert.True(t, recorded, "policy override must leave a provenance decision")
}

func TestMergeConflictPreferUniversal(t *testing.T) {
	universal := []ontology.TermDefinition{
		term("Entity", ontology.CategoryEntity, nil, nil),
		term("is-a", ontology.CategoryRelationship, []string{"Entity"}, []string{"Entity"}),
	}
	theory := []ontology.TermDefinition{
		term("IS_A", ontology.CategoryRelationship, []string{"Entity"}, []string{"Concept"}),
	}

	res := NewEngine(PolicyPreferUniversal).Merge(universal, theory)

	require.Empty(t, res.Diagnostics)
	for _, tt := range res.Terms {
		if tt.Key() == "is a" {
			assert.Equal(t, "is-a", tt.Name)
			assert.Equal(t, []string{"Entity"}, tt.Range)
		}
	}

	var recorded bool
	for _, d := range res.Decisions {
		if d.Action == ontology.ActionPolicyUniversal {
			recorded = true
		}
	}
	assert.True(t, recorded)
}

func TestMergeCategoryMismatchIsConflict(t *testing.T) {
	universal := []ontology.TermDefinition{
		term("magnitude", ontology.CategoryMeasure, nil, []string{"number"}),
	}
	theory := []ontology.TermDefinition{
		term("Magnitude", ontology.CategoryEntity, nil, nil),
	}

	res := NewEngine(PolicyReject).Merge(universal, theory)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, ontology.CodeMergeConflict, res.Diagnostics[0].Code)
	assert.Contains(t, res.Diagnostics[0].Message, "category")
}

func TestMergeDroppedConstraintIsBroader(t *testing.T) {
	universal := []ontology.TermDefinition{
		term("Entity", ontology.CategoryEntity, nil, nil),
		term("name", ontology.CategoryProperty, []string{"Entity"}, []string{"string"}),
	}
	theory := []ontology.TermDefinition{
		term("name", ontology.CategoryProperty, nil, []string{"string"}),
	}

	res := NewEngine(PolicyReject).Merge(universal, theory)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, ontology.CodeMergeConflict, res.Diagnostics[0].Code)
}

func TestMergeOrderIndependentWithoutConflicts(t *testing.T) {
	universal := []ontology.TermDefinition{
		term("Entity", ontology.CategoryEntity, nil, nil),
		term("part of", ontology.CategoryRelationship, []string{"Entity"}, []string{"Entity"}),
	}
	a := []ontology.TermDefinition{
		term("Trust", ontology.CategoryEntity, nil, nil),
		term("Network", ontology.CategoryEntity, nil, nil),
	}
	b := []ontology.TermDefinition{
		term("Norm", ontology.CategoryEntity, nil, nil),
		term("reinforces", ontology.CategoryRelationship, []string{"Norm"}, []string{"Trust"}),
	}

	ab := NewEngine(PolicyReject).Merge(universal, append(append([]ontology.TermDefinition{}, a...), b...))
	ba := NewEngine(PolicyReject).Merge(universal, append(append([]ontology.TermDefinition{}, b...), a...))

	require.Equal(t, ab.Terms, ba.Terms)
	require.Equal(t, ab.Decisions, ba.Decisions)
	require.Equal(t, ab.Diagnostics, ba.Diagnostics)
}

func TestNewEngineInvalidPolicy(t *testing.T) {
	e := NewEngine(Policy("coin-flip"))
	assert.Equal(t, DefaultPolicy, e.Policy())
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
	}{
		{"reject", PolicyReject},
		{"prefer-universal", PolicyPreferUniversal},
		{"prefer-theory", PolicyPreferTheory},
		{"", Policy("")},
		{"REJECT", Policy("")},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParsePolicy(tc.in), "input %q", tc.in)
	}
}

func TestCheckCompleteness(t *testing.T) {
	merged := []ontology.TermDefinition{
		term("Trust", ontology.CategoryEntity, nil, nil),
		{IndigenousTerm: "IS_A", Name: "is-a", Category: ontology.CategoryRelationship,
			Domain: []string{"Trust"}, Range: []string{"Trust"}},
	}

	t.Run("all present", func(t *testing.T) {
		diag := CheckCompleteness([]string{"Trust", "is_a"}, merged, nil)
		assert.Nil(t, diag)
	})

	t.Run("absorbed with provenance", func(t *testing.T) {
		decisions := []ontology.Decision{
			{Action: ontology.ActionMergedInto, Term: "Mutual Trust", Into: "Trust"},
		}
		diag := CheckCompleteness([]string{"Trust", "Mutual Trust"}, merged, decisions)
		assert.Nil(t, diag)
	})

	t.Run("lost without provenance", func(t *testing.T) {
		diag := CheckCompleteness([]string{"Trust", "Reciprocity"}, merged, nil)
		require.NotNil(t, diag)
		assert.Equal(t, ontology.CodeInformationLoss, diag.Code)
		assert.Equal(t, ontology.SeverityWarning, diag.Severity)
		assert.Contains(t, diag.Message, "Reciprocity")
		assert.Equal(t, []string{"Reciprocity"}, diag.Terms)
	})

	t.Run("empty vocabulary", func(t *testing.T) {
		assert.Nil(t, CheckCompleteness(nil, merged, nil))
	})
}
