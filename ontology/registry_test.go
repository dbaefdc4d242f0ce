package ontology

import (
	"errors"
	"testing"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input    string
		expected TermID
	}{
		{"is-a", "is a"},
		{"IS_A", "is a"},
		{" is  a ", "is a"},
		{"Actor", "actor"},
		{"Social\tCapital", "social capital"},
		{"", ""},
		{"- _ -", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeKey(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRegisterDedupSameCategory(t *testing.T) {
	r := NewRegistry(nil)

	first, err := r.Register(TermDefinition{IndigenousTerm: "is-a", Category: CategoryRelationship})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}

	second, err := r.Register(TermDefinition{IndigenousTerm: "IS_A", Category: CategoryRelationship})
	if err != nil {
		t.Fatalf("second register: %v", err)
	}

	if first != second {
		t.Errorf("same-key same-category registration returned %q, want %q", second, first)
	}
	if r.Len() != 1 {
		t.Errorf("registry has %d terms, want 1", r.Len())
	}
}

func TestRegisterDuplicateConflict(t *testing.T) {
	r := NewRegistry(nil)

	if _, err := r.Register(TermDefinition{IndigenousTerm: "Actor", Category: CategoryEntity}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := r.Register(TermDefinition{IndigenousTerm: "actor", Category: CategoryRelationship})
	var dup *DuplicateConflictError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateConflictError, got %v", err)
	}
	if dup.Existing != CategoryEntity || dup.Incoming != CategoryRelationship {
		t.Errorf("conflict categories = %s/%s, want entity/relationship", dup.Existing, dup.Incoming)
	}
}

func TestResolveKnownTerm(t *testing.T) {
	r := NewRegistry(nil)
	id, err := r.Register(TermDefinition{IndigenousTerm: "Actor", Category: CategoryEntity})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := r.Resolve("actor")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Kind != KindTerm || res.ID != id {
		t.Errorf("resolve = %+v, want term %q", res, id)
	}
}

func TestResolveIndigenousAlias(t *testing.T) {
	r := NewRegistry(nil)
	id, err := r.Register(TermDefinition{
		IndigenousTerm: "soziales Kapital",
		Name:           "Social Capital",
		Category:       CategoryEntity,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Canonical name resolves.
	res, err := r.Resolve("social capital")
	if err != nil {
		t.Fatalf("resolve canonical: %v", err)
	}
	if res.ID != id {
		t.Errorf("canonical resolution = %q, want %q", res.ID, id)
	}

	// Indigenous form resolves through the alias.
	res, err = r.Resolve("Soziales Kapital")
	if err != nil {
		t.Fatalf("resolve alias: %v", err)
	}
	if res.Kind != KindTerm || res.ID != id {
		t.Errorf("alias resolution = %+v, want term %q", res, id)
	}
}

func TestResolveOpenPrimitive(t *testing.T) {
	r := NewRegistry([]string{"string", "date_time"})

	res, err := r.Resolve("Date-Time")
	if err != nil {
		t.Fatalf("resolve primitive: %v", err)
	}
	if res.Kind != KindOpenPrimitive {
		t.Errorf("resolve kind = %q, want open_primitive", res.Kind)
	}
}

func TestResolveUnknownReference(t *testing.T) {
	r := NewRegistry([]string{"string"})
	if _, err := r.Register(TermDefinition{IndigenousTerm: "Actor", Category: CategoryEntity}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := r.Resolve("Institution")
	var unresolved *UnresolvedReferenceError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected UnresolvedReferenceError, got %v", err)
	}
	if unresolved.Ref != "Institution" {
		t.Errorf("unresolved ref = %q, want Institution", unresolved.Ref)
	}
}

func TestRegisteredTermWinsOverPrimitive(t *testing.T) {
	r := NewRegistry([]string{"value"})
	id, err := r.Register(TermDefinition{IndigenousTerm: "Value", Category: CategoryEntity})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := r.Resolve("value")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Kind != KindTerm || res.ID != id {
		t.Errorf("resolve = %+v, want registered term to shadow the primitive", res)
	}
}

func TestIDsSorted(t *testing.T) {
	r := NewRegistry(nil)
	for _, name := range []string{"gamma", "alpha", "beta"} {
		if _, err := r.Register(TermDefinition{IndigenousTerm: name, Category: CategoryEntity}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	ids := r.IDs()
	want := []TermID{"alpha", "beta", "gamma"}
	if len(ids) != len(want) {
		t.Fatalf("got %d ids, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}
