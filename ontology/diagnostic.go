package ontology

import "sort"

// Severity classifies whether a diagnostic blocks assembly.
type Severity string

const (
	// SeverityFatal findings reject the assembly run.
	SeverityFatal Severity = "fatal"

	// SeverityWarning findings attach to a successful result.
	SeverityWarning Severity = "warning"
)

// Code identifies the kind of finding a diagnostic reports.
type Code string

const (
	// CodeStructuralViolation marks an entity carrying domain/range or a
	// relationship/action missing either, or a category/bucket mismatch.
	CodeStructuralViolation Code = "structural_violation"

	// CodeCycleDetected marks a cycle in the subTypeOf relation.
	CodeCycleDetected Code = "cycle_detected"

	// CodeUnresolvedReference marks a domain/range entry naming neither a
	// known term nor an allowlisted open primitive.
	CodeUnresolvedReference Code = "unresolved_reference"

	// CodeDuplicateConflict marks two same-key terms with differing
	// categories.
	CodeDuplicateConflict Code = "duplicate_conflict"

	// CodeMergeConflict marks an incompatible universal/theory collision
	// not resolved by policy.
	CodeMergeConflict Code = "merge_conflict"

	// CodeInformationLoss marks a merged term count below the earliest
	// vocabulary count without covering provenance.
	CodeInformationLoss Code = "information_loss"

	// CodeLowConfidenceClassification marks a classification that fell back
	// to the low-confidence default.
	CodeLowConfidenceClassification Code = "low_confidence_classification"

	// CodePurposeImbalance marks a multi-purpose theory whose coverage
	// failed the balance thresholds.
	CodePurposeImbalance Code = "purpose_imbalance"
)

// severities fixes the severity of every diagnostic code. Codes absent from
// the map are treated as warnings.
var severities = map[Code]Severity{
	CodeStructuralViolation:         SeverityFatal,
	CodeCycleDetected:               SeverityFatal,
	CodeUnresolvedReference:         SeverityFatal,
	CodeDuplicateConflict:           SeverityFatal,
	CodeMergeConflict:               SeverityFatal,
	CodeInformationLoss:             SeverityWarning,
	CodeLowConfidenceClassification: SeverityWarning,
	CodePurposeImbalance:            SeverityWarning,
}

// Severity returns the fixed severity of the code.
func (c Code) Severity() Severity {
	if s, ok := severities[c]; ok {
		return s
	}
	return SeverityWarning
}

// Diagnostic is one finding produced during assembly.
type Diagnostic struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Terms    []string `json:"terms,omitempty"`
}

// NewDiagnostic builds a diagnostic with the severity fixed by its code.
func NewDiagnostic(code Code, message string, terms ...string) Diagnostic {
	sort.Strings(terms)
	return Diagnostic{
		Code:     code,
		Severity: code.Severity(),
		Message:  message,
		Terms:    terms,
	}
}

// Fatal reports whether the diagnostic blocks assembly.
func (d Diagnostic) Fatal() bool {
	return d.Severity == SeverityFatal
}

// HasFatal reports whether any diagnostic in the list is fatal.
func HasFatal(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Fatal() {
			return true
		}
	}
	return false
}
