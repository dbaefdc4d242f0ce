// Package validate enforces the structural invariants of a theory term set:
// category/bucket agreement, entity and connection domain/range rules,
// subTypeOf acyclicity and reference resolution. Validation is total: it
// always returns a result, never an error.
package validate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/schemaworks/theoria/ontology"
)

// Result is the outcome of validating one term set.
type Result struct {
	StructurallyValid bool                  `json:"structurally_valid"`
	Diagnostics       []ontology.Diagnostic `json:"diagnostics,omitempty"`
}

// Validator checks term sets against the structural invariants, resolving
// type references through a registry.
type Validator struct {
	registry *ontology.Registry
}

// New creates a validator backed by the given registry. The registry must
// already contain the terms being validated.
func New(registry *ontology.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate runs every structural check over the term set and reports all
// findings. Fatal diagnostics (structural violations, cycles, unresolved
// references) mark the set structurally invalid; callers decide whether
// warnings matter.
func (v *Validator) Validate(terms []ontology.TermDefinition) Result {
	sorted := make([]ontology.TermDefinition, len(terms))
	copy(sorted, terms)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key() < sorted[j].Key() })

	var diags []ontology.Diagnostic
	for _, term := range sorted {
		diags = append(diags, checkCategory(term)...)
		diags = append(diags, checkDomainRange(term)...)
		diags = append(diags, v.checkReferences(term)...)
	}
	diags = append(diags, v.checkHierarchy(sorted)...)

	return Result{
		StructurallyValid: !ontology.HasFatal(diags),
		Diagnostics:       diags,
	}
}

// checkCategory verifies the category is one of the closed set and matches
// the structural bucket the blueprint placed the term in.
func checkCategory(term ontology.TermDefinition) []ontology.Diagnostic {
	label := term.Label()

	if !term.Category.IsValid() {
		return []ontology.Diagnostic{ontology.NewDiagnostic(
			ontology.CodeStructuralViolation,
			fmt.Sprintf("term %q has category %q outside the closed set", label, term.Category),
			label,
		)}
	}

	if term.Placement != "" && term.Category.Bucket() != term.Placement {
		return []ontology.Diagnostic{ontology.NewDiagnostic(
			ontology.CodeStructuralViolation,
			fmt.Sprintf("term %q has category %s but was placed in the %s bucket",
				label, term.Category, term.Placement),
			label,
		)}
	}

	return nil
}

// checkDomainRange enforces the emptiness rules: entities carry neither
// domain nor range, relationships and actions carry both.
func checkDomainRange(term ontology.TermDefinition) []ontology.Diagnostic {
	label := term.Label()

	if term.Category == ontology.CategoryEntity {
		if len(term.Domain) > 0 || len(term.Range) > 0 {
			return []ontology.Diagnostic{ontology.NewDiagnostic(
				ontology.CodeStructuralViolation,
				fmt.Sprintf("entity %q must not declare domain or range", label),
				label,
			)}
		}
		return nil
	}

	if term.Category.RequiresDomainRange() {
		var diags []ontology.Diagnostic
		if len(term.Domain) == 0 {
			diags = append(diags, ontology.NewDiagnostic(
				ontology.CodeStructuralViolation,
				fmt.Sprintf("%s %q is missing a domain", term.Category, label),
				label,
			))
		}
		if len(term.Range) == 0 {
			diags = append(diags, ontology.NewDiagnostic(
				ontology.CodeStructuralViolation,
				fmt.Sprintf("%s %q is missing a range", term.Category, label),
				label,
			))
		}
		return diags
	}

	return nil
}

// checkReferences resolves every domain and range entry through the
// registry, reporting entries that name neither a term nor an allowlisted
// open primitive.
func (v *Validator) checkReferences(term ontology.TermDefinition) []ontology.Diagnostic {
	var diags []ontology.Diagnostic
	label := term.Label()

	report := func(ref, slot string) {
		diags = append(diags, ontology.NewDiagnostic(
			ontology.CodeUnresolvedReference,
			fmt.Sprintf("%s of %q references unknown type %q", slot, label, ref),
			label,
		))
	}

	for _, ref := range term.Domain {
		if _, err := v.registry.Resolve(ref); err != nil {
			var unresolved *ontology.UnresolvedReferenceError
			if errors.As(err, &unresolved) {
				report(ref, "domain")
			}
		}
	}
	for _, ref := range term.Range {
		if _, err := v.registry.Resolve(ref); err != nil {
			var unresolved *ontology.UnresolvedReferenceError
			if errors.As(err, &unresolved) {
				report(ref, "range")
			}
		}
	}

	return diags
}
