package ontology

import "sort"

// DecisionAction names what happened to a term during staging or merge.
type DecisionAction string

const (
	// ActionRegistered records a theory term kept as-is.
	ActionRegistered DecisionAction = "registered"

	// ActionInjected records a universal term carried into the schema.
	ActionInjected DecisionAction = "injected"

	// ActionMergedInto records a term consolidated into another term.
	ActionMergedInto DecisionAction = "merged_into"

	// ActionRefined records a theory term kept as a compatible refinement
	// of its universal counterpart.
	ActionRefined DecisionAction = "refined"

	// ActionPolicyUniversal records a conflict auto-resolved in favor of
	// the universal definition.
	ActionPolicyUniversal DecisionAction = "policy_universal"

	// ActionPolicyTheory records a conflict auto-resolved in favor of the
	// theory definition.
	ActionPolicyTheory DecisionAction = "policy_theory"
)

// Origin names which input a decision's term came from.
type Origin string

const (
	// OriginVocabulary marks the raw vocabulary artifact.
	OriginVocabulary Origin = "vocabulary"

	// OriginClassified marks the classified term artifact.
	OriginClassified Origin = "classified"

	// OriginBlueprint marks the draft schema blueprint.
	OriginBlueprint Origin = "blueprint"

	// OriginUniversal marks the injected universal set.
	OriginUniversal Origin = "universal"

	// OriginTheory marks the consolidated theory term set.
	OriginTheory Origin = "theory"
)

// Decision is one provenance record. Every merge or consolidation choice
// produces a decision so no term ever disappears silently.
type Decision struct {
	Action DecisionAction `json:"action"`
	Term   string         `json:"term"`
	Into   string         `json:"into,omitempty"`
	Detail string         `json:"detail,omitempty"`
	Origin Origin         `json:"origin,omitempty"`
}

// SortDecisions orders decisions by term, then action, then target. Sorted
// provenance keeps assembled output byte-stable across runs.
func SortDecisions(decisions []Decision) {
	sort.Slice(decisions, func(i, j int) bool {
		if decisions[i].Term != decisions[j].Term {
			return decisions[i].Term < decisions[j].Term
		}
		if decisions[i].Action != decisions[j].Action {
			return decisions[i].Action < decisions[j].Action
		}
		return decisions[i].Into < decisions[j].Into
	})
}

// MergedTargets collects term → merged-into targets from a decision list.
func MergedTargets(decisions []Decision) map[string]string {
	targets := make(map[string]string)
	for _, d := range decisions {
		if d.Action == ActionMergedInto {
			targets[d.Term] = d.Into
		}
	}
	return targets
}
