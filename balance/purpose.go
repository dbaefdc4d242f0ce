// Package balance scores how evenly a multi-purpose theory spreads its
// terms across the analytical purposes it declares. The scorer is a pure
// function of coverage input; single-purpose theories are not scored.
package balance

import "strings"

// Purpose is one analytical goal a theory may serve.
type Purpose string

const (
	// PurposeDescriptive covers terms that characterize what exists.
	PurposeDescriptive Purpose = "descriptive"

	// PurposeExplanatory covers terms that account for why something holds.
	PurposeExplanatory Purpose = "explanatory"

	// PurposePredictive covers terms that project future states.
	PurposePredictive Purpose = "predictive"

	// PurposeCausal covers terms that assert cause-effect structure.
	PurposeCausal Purpose = "causal"

	// PurposeIntervention covers terms that guide deliberate change.
	PurposeIntervention Purpose = "intervention"
)

// Purposes lists the fixed purpose set in canonical order.
var Purposes = []Purpose{
	PurposeCausal,
	PurposeDescriptive,
	PurposeExplanatory,
	PurposeIntervention,
	PurposePredictive,
}

// IsValid checks whether the purpose belongs to the fixed set.
func (p Purpose) IsValid() bool {
	switch p {
	case PurposeDescriptive, PurposeExplanatory, PurposePredictive, PurposeCausal, PurposeIntervention:
		return true
	}
	return false
}

// String returns the string representation of the purpose.
func (p Purpose) String() string {
	return string(p)
}

// ParsePurpose converts a string to a Purpose, returning empty for unknown
// values. Matching is case-insensitive.
func ParsePurpose(s string) Purpose {
	p := Purpose(strings.ToLower(strings.TrimSpace(s)))
	if p.IsValid() {
		return p
	}
	return ""
}

// PurposeCoverage records which terms serve one purpose. A term may appear
// under several purposes. TermCount stands alone so upstream can supply
// counts without enumerating terms; when zero it falls back to the term
// list length.
type PurposeCoverage struct {
	Purpose   Purpose  `json:"purpose"`
	Terms     []string `json:"terms,omitempty"`
	TermCount int      `json:"term_count"`
}

// Count returns the effective term count for this purpose.
func (c PurposeCoverage) Count() int {
	if c.TermCount > 0 {
		return c.TermCount
	}
	return len(c.Terms)
}
