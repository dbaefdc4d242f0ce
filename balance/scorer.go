package balance

import (
	"fmt"
	"math"
	"sort"

	"github.com/schemaworks/theoria/ontology"
)

// Balanced is the tri-state balance verdict.
type Balanced string

const (
	// BalancedYes means coverage cleared both thresholds.
	BalancedYes Balanced = "yes"

	// BalancedNo means at least one threshold failed.
	BalancedNo Balanced = "no"

	// BalancedNotApplicable marks theories with fewer than two purposes,
	// which cannot be unbalanced across purposes.
	BalancedNotApplicable Balanced = "not_applicable"
)

// Thresholds configure the balance verdict.
type Thresholds struct {
	// RatioMinimum is the smallest acceptable min/max purpose-count ratio.
	RatioMinimum float64 `json:"ratio_minimum" yaml:"ratio_minimum"`

	// VarianceCeiling bounds the population variance of purpose counts
	// after normalization by their mean.
	VarianceCeiling float64 `json:"variance_ceiling" yaml:"variance_ceiling"`
}

// DefaultThresholds returns the standard verdict thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{RatioMinimum: 0.70, VarianceCeiling: 1.0}
}

// Report holds the coverage statistics of one multi-purpose theory.
type Report struct {
	// Purposes carries the consolidated per-purpose coverage, sorted by
	// purpose name.
	Purposes []PurposeCoverage `json:"purposes"`

	// Mean of the per-purpose term counts.
	Mean float64 `json:"mean"`

	// Variance is the population variance of the counts normalized by
	// their mean.
	Variance float64 `json:"variance"`

	// BalanceRatio is min(count)/max(count) over purposes with count > 0.
	BalanceRatio float64 `json:"balance_ratio"`

	IsBalanced Balanced `json:"is_balanced"`

	// CrossPurposeTerms lists terms tagged under two or more purposes.
	CrossPurposeTerms []string `json:"cross_purpose_terms,omitempty"`

	// IntegrationQuality is the cross-purpose term share scaled by the
	// fraction of purpose pairs that share at least one term.
	IntegrationQuality float64 `json:"integration_quality"`
}

// Score computes the balance report for a set of purpose coverages. Pure
// function: no I/O, deterministic output ordering. Fewer than two distinct
// purposes yield a not_applicable verdict and no diagnostics.
func Score(coverages []PurposeCoverage, th Thresholds) (Report, []ontology.Diagnostic) {
	merged := consolidate(coverages)

	report := Report{Purposes: merged, IsBalanced: BalancedNotApplicable}
	if len(merged) < 2 {
		return report, nil
	}

	var (
		sum      float64
		minCount = math.MaxInt
		maxCount int
	)
	for _, c := range merged {
		n := c.TermCount
		sum += float64(n)
		if n > 0 {
			if n < minCount {
				minCount = n
			}
			if n > maxCount {
				maxCount = n
			}
		}
	}

	mean := sum / float64(len(merged))
	var popVar float64
	for _, c := range merged {
		d := float64(c.TermCount) - mean
		popVar += d * d
	}
	popVar /= float64(len(merged))

	report.Mean = mean
	if mean > 0 {
		report.Variance = popVar / mean
	}
	if maxCount > 0 {
		report.BalanceRatio = float64(minCount) / float64(maxCount)
	}

	report.CrossPurposeTerms, report.IntegrationQuality = integration(merged)

	if report.BalanceRatio >= th.RatioMinimum && report.Variance <= th.VarianceCeiling {
		report.IsBalanced = BalancedYes
		return report, nil
	}

	report.IsBalanced = BalancedNo
	diag := ontology.NewDiagnostic(
		ontology.CodePurposeImbalance,
		fmt.Sprintf("purpose coverage unbalanced: balance_ratio %.3f (minimum %.2f), normalized variance %.3f (ceiling %.2f)",
			report.BalanceRatio, th.RatioMinimum, report.Variance, th.VarianceCeiling),
	)
	return report, []ontology.Diagnostic{diag}
}

// consolidate folds duplicate purpose entries together, deduplicates term
// lists, settles effective counts and sorts by purpose name.
func consolidate(coverages []PurposeCoverage) []PurposeCoverage {
	byPurpose := make(map[Purpose]*PurposeCoverage)
	for _, c := range coverages {
		if c.Purpose == "" {
			continue
		}
		cur, ok := byPurpose[c.Purpose]
		if !ok {
			cp := PurposeCoverage{Purpose: c.Purpose, TermCount: c.TermCount}
			cp.Terms = append(cp.Terms, c.Terms...)
			byPurpose[c.Purpose] = &cp
			continue
		}
		cur.Terms = append(cur.Terms, c.Terms...)
		cur.TermCount += c.TermCount
	}

	out := make([]PurposeCoverage, 0, len(byPurpose))
	for _, c := range byPurpose {
		c.Terms = dedupTerms(c.Terms)
		if c.TermCount == 0 {
			c.TermCount = len(c.Terms)
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Purpose < out[j].Purpose })
	return out
}

// dedupTerms collapses terms that normalize to the same key, keeping the
// first verbatim spelling, sorted by key.
func dedupTerms(terms []string) []string {
	seen := make(map[ontology.TermID]string, len(terms))
	keys := make([]ontology.TermID, 0, len(terms))
	for _, term := range terms {
		key := ontology.NormalizeKey(term)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; !ok {
			seen[key] = term
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return out
}

// integration finds terms serving two or more purposes and derives the
// integration quality from them.
func integration(merged []PurposeCoverage) ([]string, float64) {
	type tagged struct {
		verbatim string
		purposes map[Purpose]struct{}
	}
	byKey := make(map[ontology.TermID]*tagged)
	for _, c := range merged {
		for _, term := range c.Terms {
			key := ontology.NormalizeKey(term)
			if key == "" {
				continue
			}
			tg, ok := byKey[key]
			if !ok {
				tg = &tagged{verbatim: term, purposes: make(map[Purpose]struct{})}
				byKey[key] = tg
			}
			tg.purposes[c.Purpose] = struct{}{}
		}
	}
	if len(byKey) == 0 {
		return nil, 0
	}

	sharedPairs := make(map[[2]Purpose]struct{})
	var crossKeys []ontology.TermID
	for key, tg := range byKey {
		if len(tg.purposes) < 2 {
			continue
		}
		crossKeys = append(crossKeys, key)
		ps := make([]Purpose, 0, len(tg.purposes))
		for p := range tg.purposes {
			ps = append(ps, p)
		}
		sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
		for i := 0; i < len(ps); i++ {
			for j := i + 1; j < len(ps); j++ {
				sharedPairs[[2]Purpose{ps[i], ps[j]}] = struct{}{}
			}
		}
	}
	if len(crossKeys) == 0 {
		return nil, 0
	}

	sort.Slice(crossKeys, func(i, j int) bool { return crossKeys[i] < crossKeys[j] })
	cross := make([]string, len(crossKeys))
	for i, k := range crossKeys {
		cross[i] = byKey[k].verbatim
	}

	quality := float64(len(crossKeys)) / float64(len(byKey))
	if allPairs := len(merged) * (len(merged) - 1) / 2; allPairs > 0 {
		quality *= float64(len(sharedPairs)) / float64(allPairs)
	}
	return cross, quality
}
