package merge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/schemaworks/theoria/ontology"
)

// CheckCompleteness verifies that every term named in the earliest
// vocabulary survives the pipeline: either a merged term still answers to
// its normalized key (verbatim or via its indigenous form) or a merged_into
// decision explains where it went. Returns nil when nothing was lost,
// otherwise a single information_loss warning naming the dropped terms.
func CheckCompleteness(vocabulary []string, merged []ontology.TermDefinition, decisions []ontology.Decision) *ontology.Diagnostic {
	if len(vocabulary) == 0 {
		return nil
	}

	present := make(map[ontology.TermID]struct{}, len(merged)*2)
	for _, t := range merged {
		if key := ontology.NormalizeKey(t.Name); key != "" {
			present[key] = struct{}{}
		}
		if key := ontology.NormalizeKey(t.IndigenousTerm); key != "" {
			present[key] = struct{}{}
		}
	}

	absorbed := make(map[ontology.TermID]struct{})
	for term := range ontology.MergedTargets(decisions) {
		absorbed[ontology.NormalizeKey(term)] = struct{}{}
	}

	var lost []string
	seen := make(map[ontology.TermID]struct{}, len(vocabulary))
	for _, raw := range vocabulary {
		key := ontology.NormalizeKey(raw)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := present[key]; ok {
			continue
		}
		if _, ok := absorbed[key]; ok {
			continue
		}
		lost = append(lost, raw)
	}
	if len(lost) == 0 {
		return nil
	}

	sort.Strings(lost)
	diag := ontology.NewDiagnostic(
		ontology.CodeInformationLoss,
		fmt.Sprintf("%d vocabulary term(s) missing from merged ontology without merge provenance: %s",
			len(lost), strings.Join(lost, ", ")),
		lost...,
	)
	return &diag
}
