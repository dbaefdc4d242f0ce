package ontology

import "testing"

func TestCodeSeverity(t *testing.T) {
	tests := []struct {
		code     Code
		expected Severity
	}{
		{CodeStructuralViolation, SeverityFatal},
		{CodeCycleDetected, SeverityFatal},
		{CodeUnresolvedReference, SeverityFatal},
		{CodeDuplicateConflict, SeverityFatal},
		{CodeMergeConflict, SeverityFatal},
		{CodeInformationLoss, SeverityWarning},
		{CodeLowConfidenceClassification, SeverityWarning},
		{CodePurposeImbalance, SeverityWarning},
		{Code("unknown"), SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Severity(); got != tt.expected {
				t.Errorf("Code(%q).Severity() = %q, want %q", tt.code, got, tt.expected)
			}
		})
	}
}

func TestNewDiagnosticSortsTerms(t *testing.T) {
	d := NewDiagnostic(CodeCycleDetected, "cycle", "gamma", "alpha", "beta")
	want := []string{"alpha", "beta", "gamma"}
	for i := range want {
		if d.Terms[i] != want[i] {
			t.Errorf("Terms[%d] = %q, want %q", i, d.Terms[i], want[i])
		}
	}
	if !d.Fatal() {
		t.Error("cycle_detected diagnostic should be fatal")
	}
}

func TestHasFatal(t *testing.T) {
	warnings := []Diagnostic{
		NewDiagnostic(CodeInformationLoss, "loss"),
		NewDiagnostic(CodePurposeImbalance, "imbalance"),
	}
	if HasFatal(warnings) {
		t.Error("warning-only list reported fatal")
	}

	mixed := append(warnings, NewDiagnostic(CodeCycleDetected, "cycle", "a"))
	if !HasFatal(mixed) {
		t.Error("list with cycle_detected should report fatal")
	}

	if HasFatal(nil) {
		t.Error("empty list reported fatal")
	}
}

func TestSortDecisions(t *testing.T) {
	decisions := []Decision{
		{Action: ActionRegistered, Term: "beta"},
		{Action: ActionMergedInto, Term: "alpha", Into: "beta"},
		{Action: ActionInjected, Term: "alpha"},
	}
	SortDecisions(decisions)

	if decisions[0].Term != "alpha" || decisions[0].Action != ActionInjected {
		t.Errorf("decisions[0] = %+v, want alpha/injected", decisions[0])
	}
	if decisions[1].Term != "alpha" || decisions[1].Action != ActionMergedInto {
		t.Errorf("decisions[1] = %+v, want alpha/merged_into", decisions[1])
	}
	if decisions[2].Term != "beta" {
		t.Errorf("decisions[2] = %+v, want beta", decisions[2])
	}
}

func TestMergedTargets(t *testing.T) {
	decisions := []Decision{
		{Action: ActionRegistered, Term: "actor"},
		{Action: ActionMergedInto, Term: "IS_A", Into: "is a"},
	}
	targets := MergedTargets(decisions)
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}
	if targets["IS_A"] != "is a" {
		t.Errorf("target for IS_A = %q, want %q", targets["IS_A"], "is a")
	}
}
