package staging

import (
	"sort"

	"github.com/schemaworks/theoria/balance"
	"github.com/schemaworks/theoria/ontology"
)

// Resolved is the consolidated view of one theory's staged artifacts.
type Resolved struct {
	// Terms is the theory term set, sorted by normalized key.
	Terms []ontology.TermDefinition

	// Decisions records every same-key consolidation as merged_into
	// provenance.
	Decisions []ontology.Decision

	// VocabularyTerms lists the earliest artifact's terms verbatim, in
	// extraction order. The completeness check compares against it.
	VocabularyTerms []string

	// Stages is the blueprint's declared ordering, if any.
	Stages []string

	// Purposes is the coverage skeleton built from the bundle's declared
	// purpose tags.
	Purposes []balance.PurposeCoverage
}

// Resolve consolidates the three artifacts into one term set. Blueprint
// definitions win, classified terms fill gaps, bare vocabulary entries
// become hint-categorized terms. Later artifacts folding into an existing
// key only backfill missing fields; a folded spelling that differs from
// the kept term leaves a merged_into decision. Total function: malformed
// categories survive into the term set for the validator to flag.
func Resolve(bundle TheoryBundle) Resolved {
	c := newConsolidation()

	if bp := bundle.Blueprint; bp != nil {
		for _, t := range bp.Entities {
			c.add(withPlacement(t, ontology.BucketEntities), ontology.OriginBlueprint)
		}
		for _, t := range bp.Connections {
			c.add(withPlacement(t, ontology.BucketConnections), ontology.OriginBlueprint)
		}
		for _, t := range bp.Properties {
			c.add(withPlacement(t, ontology.BucketProperties), ontology.OriginBlueprint)
		}
		for _, t := range bp.Modifiers {
			c.add(withPlacement(t, ontology.BucketModifiers), ontology.OriginBlueprint)
		}
	}

	for _, ct := range bundle.Classified {
		c.add(ontology.TermDefinition{
			IndigenousTerm: ct.Term,
			Category:       ontology.Category(ct.Category),
			Domain:         ct.Domain,
			Range:          ct.Range,
			SubTypeOf:      ct.Parent,
		}, ontology.OriginClassified)
	}

	for _, ve := range bundle.Vocabulary {
		category := CategoryFromHint(ve.CategoryHint)
		if category == "" {
			// A bare vocabulary term with no usable hint is a concept
			// until classification says otherwise.
			category = ontology.CategoryEntity
		}
		c.add(ontology.TermDefinition{
			IndigenousTerm: ve.Term,
			Description:    ve.Definition,
			Category:       category,
		}, ontology.OriginVocabulary)
	}

	res := Resolved{
		Terms:           c.terms(),
		Decisions:       c.decisions,
		VocabularyTerms: vocabularyTerms(bundle.Vocabulary),
		Purposes:        purposeCoverage(bundle.Purposes),
	}
	if bundle.Blueprint != nil {
		res.Stages = bundle.Blueprint.Stages
	}
	return res
}

// consolidation folds artifact entries into one term per normalized key.
type consolidation struct {
	byKey     map[ontology.TermID]*ontology.TermDefinition
	decisions []ontology.Decision
}

func newConsolidation() *consolidation {
	return &consolidation{byKey: make(map[ontology.TermID]*ontology.TermDefinition)}
}

// add merges one artifact entry. The first artifact to claim a key keeps
// the term; later entries backfill empty fields only.
func (c *consolidation) add(t ontology.TermDefinition, origin ontology.Origin) {
	key := t.Key()
	if key == "" {
		return
	}

	existing, ok := c.byKey[key]
	if !ok {
		if t.IndigenousTerm == "" {
			t.IndigenousTerm = t.Name
		}
		c.byKey[key] = &t
		return
	}

	if existing.Description == "" {
		existing.Description = t.Description
	}
	if len(existing.Domain) == 0 {
		existing.Domain = t.Domain
	}
	if len(existing.Range) == 0 {
		existing.Range = t.Range
	}
	if existing.SubTypeOf == "" {
		existing.SubTypeOf = t.SubTypeOf
	}
	if existing.Notation == "" {
		existing.Notation = t.Notation
	}
	if len(t.Examples) > 0 {
		existing.Examples = append(existing.Examples, t.Examples...)
	}

	if folded := t.Label(); folded != existing.Name && folded != existing.IndigenousTerm {
		c.decisions = append(c.decisions, ontology.Decision{
			Action: ontology.ActionMergedInto,
			Term:   folded,
			Into:   existing.Label(),
			Detail: "same-key consolidation across staged artifacts",
			Origin: origin,
		})
	}
}

// terms returns the consolidated set sorted by key, placements settled.
func (c *consolidation) terms() []ontology.TermDefinition {
	keys := make([]ontology.TermID, 0, len(c.byKey))
	for k := range c.byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]ontology.TermDefinition, 0, len(keys))
	for _, k := range keys {
		t := *c.byKey[k]
		if t.Placement == "" && t.Category.IsValid() {
			t.Placement = t.Category.Bucket()
		}
		out = append(out, t)
	}
	ontology.SortDecisions(c.decisions)
	return out
}

// withPlacement records the structural bucket the blueprint put a term in.
func withPlacement(t ontology.TermDefinition, bucket ontology.Bucket) ontology.TermDefinition {
	t.Placement = bucket
	return t
}

// vocabularyTerms extracts the verbatim earliest term list.
func vocabularyTerms(entries []VocabularyEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Term != "" {
			out = append(out, e.Term)
		}
	}
	return out
}

// purposeCoverage turns the bundle's purpose tags into scorer input.
// Unknown purpose names are dropped: the purpose set is closed.
func purposeCoverage(purposes map[string][]string) []balance.PurposeCoverage {
	if len(purposes) == 0 {
		return nil
	}
	names := make([]string, 0, len(purposes))
	for name := range purposes {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]balance.PurposeCoverage, 0, len(names))
	for _, name := range names {
		p := balance.ParsePurpose(name)
		if p == "" {
			continue
		}
		out = append(out, balance.PurposeCoverage{Purpose: p, Terms: purposes[name]})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
