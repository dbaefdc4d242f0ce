package validate

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"

	"github.com/schemaworks/theoria/ontology"
)

// checkHierarchy validates the subTypeOf relation: every parent reference
// must resolve to a registered term, and the resulting directed graph must
// be acyclic. Cycles are detected with a three-color depth-first traversal;
// each distinct cycle yields one diagnostic naming its participants.
func (v *Validator) checkHierarchy(terms []ontology.TermDefinition) []ontology.Diagnostic {
	var diags []ontology.Diagnostic

	g := core.NewGraph(core.WithDirected(true), core.WithLoops())

	// terms arrive sorted by key, so vertex and edge insertion order is
	// stable across runs.
	for _, term := range terms {
		_ = g.AddVertex(string(term.Key()))
	}

	for _, term := range terms {
		if term.SubTypeOf == "" {
			continue
		}
		label := term.Label()

		res, err := v.registry.Resolve(term.SubTypeOf)
		if err != nil || res.Kind != ontology.KindTerm {
			diags = append(diags, ontology.NewDiagnostic(
				ontology.CodeUnresolvedReference,
				fmt.Sprintf("subTypeOf of %q references unknown term %q", label, term.SubTypeOf),
				label,
			))
			continue
		}

		if _, err := g.AddEdge(string(term.Key()), string(res.ID), 0); err != nil {
			// A second parent declaration for the same child cannot happen
			// (one SubTypeOf field per term), so any edge failure is a
			// programming error worth surfacing as a finding.
			diags = append(diags, ontology.NewDiagnostic(
				ontology.CodeStructuralViolation,
				fmt.Sprintf("subTypeOf edge %q -> %q could not be recorded: %v", label, term.SubTypeOf, err),
				label,
			))
		}
	}

	hasCycles, cycles, err := dfs.DetectCycles(g)
	if err != nil {
		diags = append(diags, ontology.NewDiagnostic(
			ontology.CodeCycleDetected,
			fmt.Sprintf("subTypeOf traversal failed: %v", err),
		))
		return diags
	}
	if !hasCycles {
		return diags
	}

	for _, cycle := range cycles {
		// DetectCycles closes each cycle by repeating the first vertex;
		// drop the repeat when naming participants.
		participants := cycle
		if len(cycle) > 1 && cycle[0] == cycle[len(cycle)-1] {
			participants = cycle[:len(cycle)-1]
		}
		diags = append(diags, ontology.NewDiagnostic(
			ontology.CodeCycleDetected,
			fmt.Sprintf("subTypeOf cycle: %s", strings.Join(cycle, " -> ")),
			participants...,
		))
	}

	return diags
}
