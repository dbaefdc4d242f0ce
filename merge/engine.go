package merge

import (
	"fmt"
	"sort"

	"github.com/schemaworks/theoria/ontology"
)

// Engine merges a universal definition set with theory-specific terms.
type Engine struct {
	policy Policy
}

// NewEngine creates a merge engine with the given conflict policy. Invalid
// policies fall back to DefaultPolicy.
func NewEngine(policy Policy) *Engine {
	if !policy.IsValid() {
		policy = DefaultPolicy
	}
	return &Engine{policy: policy}
}

// Policy returns the engine's conflict resolution policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Result holds the merged ontology and the provenance of every merge
// decision. Terms are sorted by normalized key, decisions by term.
type Result struct {
	Terms       []ontology.TermDefinition `json:"terms"`
	Decisions   []ontology.Decision       `json:"decisions"`
	Diagnostics []ontology.Diagnostic     `json:"diagnostics,omitempty"`
}

// Merge combines universal and theory terms keyed by normalized name.
//
// A key present only in one input is carried over unchanged. A key present
// in both is kept as the theory version when that version is a compatible
// refinement (same category, domain and range no broader than the universal
// definition, subtype chains considered). Incompatible collisions resolve
// per the engine policy. Output ordering depends only on term keys, never
// on input order.
func (e *Engine) Merge(universal, theory []ontology.TermDefinition) Result {
	uidx := indexTerms(universal)
	tidx := indexTerms(theory)

	// Subtype chains may cross set boundaries. Theory definitions win the
	// lookup because a refinement replaces the universal entry.
	chain := make(map[ontology.TermID]ontology.TermDefinition, len(uidx)+len(tidx))
	for k, v := range uidx {
		chain[k] = v
	}
	for k, v := range tidx {
		chain[k] = v
	}

	keys := make([]ontology.TermID, 0, len(chain))
	for k := range chain {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var res Result
	for _, key := range keys {
		ut, inUniversal := uidx[key]
		tt, inTheory := tidx[key]

		switch {
		case inTheory && !inUniversal:
			res.Terms = append(res.Terms, tt)
			res.Decisions = append(res.Decisions, ontology.Decision{
				Action: ontology.ActionRegistered,
				Term:   tt.Label(),
				Origin: ontology.OriginTheory,
			})

		case inUniversal && !inTheory:
			res.Terms = append(res.Terms, ut)
			res.Decisions = append(res.Decisions, ontology.Decision{
				Action: ontology.ActionInjected,
				Term:   ut.Label(),
				Origin: ontology.OriginUniversal,
			})

		default:
			res.merge(e.policy, ut, tt, chain)
		}
	}

	ontology.SortDecisions(res.Decisions)
	return res
}

// merge resolves a single key collision between a universal and a theory
// definition.
func (r *Result) merge(policy Policy, ut, tt ontology.TermDefinition, chain map[ontology.TermID]ontology.TermDefinition) {
	if isRefinement(tt, ut, chain) {
		r.Terms = append(r.Terms, tt)
		r.Decisions = append(r.Decisions, ontology.Decision{
			Action: ontology.ActionRefined,
			Term:   tt.Label(),
			Detail: fmt.Sprintf("compatible refinement of universal %s %q", ut.Category, ut.Label()),
			Origin: ontology.OriginTheory,
		})
		return
	}

	switch policy {
	case PolicyPreferUniversal:
		r.Terms = append(r.Terms, ut)
		r.Decisions = append(r.Decisions, ontology.Decision{
			Action: ontology.ActionPolicyUniversal,
			Term:   ut.Label(),
			Detail: fmt.Sprintf("incompatible theory variant %q discarded", tt.Label()),
			Origin: ontology.OriginUniversal,
		})

	case PolicyPreferTheory:
		r.Terms = append(r.Terms, tt)
		r.Decisions = append(r.Decisions, ontology.Decision{
			Action: ontology.ActionPolicyTheory,
			Term:   tt.Label(),
			Detail: fmt.Sprintf("incompatible universal %s %q overridden", ut.Category, ut.Label()),
			Origin: ontology.OriginTheory,
		})

	default:
		// Reject keeps the universal definition so downstream checks still
		// see a term under this key, but the fatal diagnostic discards the
		// whole result.
		r.Terms = append(r.Terms, ut)
		r.Diagnostics = append(r.Diagnostics, ontology.NewDiagnostic(
			ontology.CodeMergeConflict,
			fmt.Sprintf("term %q conflicts with universal definition: %s", tt.Label(), incompatibility(tt, ut)),
			tt.Label(),
		))
	}
}

// isRefinement reports whether theory is a compatible refinement of
// universal: identical category, with domain and range no broader than the
// universal definition's.
func isRefinement(theory, universal ontology.TermDefinition, chain map[ontology.TermID]ontology.TermDefinition) bool {
	if theory.Category != universal.Category {
		return false
	}
	return refsWithin(theory.Domain, universal.Domain, chain) &&
		refsWithin(theory.Range, universal.Range, chain)
}

// refsWithin reports whether every theory reference is covered by some
// universal reference. An unconstrained universal list covers anything; an
// unconstrained theory list is broader than any universal constraint.
func refsWithin(theoryRefs, universalRefs []string, chain map[ontology.TermID]ontology.TermDefinition) bool {
	if len(universalRefs) == 0 {
		return true
	}
	if len(theoryRefs) == 0 {
		return false
	}
	bounds := make(map[ontology.TermID]struct{}, len(universalRefs))
	for _, ref := range universalRefs {
		bounds[ontology.NormalizeKey(ref)] = struct{}{}
	}
	for _, ref := range theoryRefs {
		if !covered(ontology.NormalizeKey(ref), bounds, chain) {
			return false
		}
	}
	return true
}

// covered walks the subtype chain from key until it hits a bound or runs
// out of parents.
func covered(key ontology.TermID, bounds map[ontology.TermID]struct{}, chain map[ontology.TermID]ontology.TermDefinition) bool {
	visited := make(map[ontology.TermID]struct{})
	for key != "" {
		if _, ok := bounds[key]; ok {
			return true
		}
		if _, seen := visited[key]; seen {
			return false
		}
		visited[key] = struct{}{}
		term, ok := chain[key]
		if !ok {
			return false
		}
		key = ontology.NormalizeKey(term.SubTypeOf)
	}
	return false
}

// incompatibility describes why a theory definition is not a refinement.
func incompatibility(theory, universal ontology.TermDefinition) string {
	if theory.Category != universal.Category {
		return fmt.Sprintf("category %s differs from universal %s", theory.Category, universal.Category)
	}
	return fmt.Sprintf("domain/range broader than universal (domain %v range %v vs domain %v range %v)",
		theory.Domain, theory.Range, universal.Domain, universal.Range)
}

// indexTerms keys terms by normalized key, first definition wins. Inputs
// are expected to be pre-deduplicated; the guard only makes behavior
// deterministic if they are not.
func indexTerms(terms []ontology.TermDefinition) map[ontology.TermID]ontology.TermDefinition {
	idx := make(map[ontology.TermID]ontology.TermDefinition, len(terms))
	for _, t := range terms {
		key := t.Key()
		if key == "" {
			continue
		}
		if _, ok := idx[key]; !ok {
			idx[key] = t
		}
	}
	return idx
}
