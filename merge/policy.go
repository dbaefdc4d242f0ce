// Package merge combines the universal definition set with a theory's term
// set into one ontology without silent overwrite: every kept, refined or
// policy-resolved term leaves a provenance decision, and unexplained term
// loss is reported rather than ignored.
package merge

// Policy selects how incompatible universal/theory collisions resolve.
type Policy string

const (
	// PolicyReject raises a fatal merge_conflict diagnostic.
	PolicyReject Policy = "reject"

	// PolicyPreferUniversal keeps the universal definition.
	PolicyPreferUniversal Policy = "prefer-universal"

	// PolicyPreferTheory keeps the theory definition.
	PolicyPreferTheory Policy = "prefer-theory"
)

// DefaultPolicy is the policy used when none is configured. Reject never
// makes a silent choice.
const DefaultPolicy = PolicyReject

// IsValid checks whether the policy is a known resolution policy.
func (p Policy) IsValid() bool {
	switch p {
	case PolicyReject, PolicyPreferUniversal, PolicyPreferTheory:
		return true
	}
	return false
}

// String returns the string representation of the policy.
func (p Policy) String() string {
	return string(p)
}

// ParsePolicy converts a string to a Policy, returning empty for unknown
// values.
func ParsePolicy(s string) Policy {
	p := Policy(s)
	if p.IsValid() {
		return p
	}
	return ""
}
