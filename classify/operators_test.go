package classify

import (
	"sort"
	"testing"
)

func TestDefaultCatalogCoversEveryEngine(t *testing.T) {
	c := DefaultCatalog()
	engines := []Engine{
		EngineGraphTraversal,
		EngineIterativeClassification,
		EngineTemporal,
		EngineStatistical,
		EngineHybrid,
	}
	for _, e := range engines {
		ops := c.OperatorsFor(e)
		if len(ops) == 0 {
			t.Errorf("engine %s has no compatible operators", e)
		}
		if !sort.StringsAreSorted(ops) {
			t.Errorf("operators for %s are not sorted: %v", e, ops)
		}
	}
}

func TestRegisterOperator(t *testing.T) {
	c := NewCatalog()
	err := c.RegisterOperator(Operator{
		Name:    "motif-count",
		Engines: []Engine{EngineGraphTraversal},
	})
	if err != nil {
		t.Fatalf("RegisterOperator: %v", err)
	}

	if _, ok := c.Operator("motif-count"); !ok {
		t.Fatal("registered operator not found")
	}
	ops := c.OperatorsFor(EngineGraphTraversal)
	if len(ops) != 1 || ops[0] != "motif-count" {
		t.Errorf("OperatorsFor = %v, want [motif-count]", ops)
	}
	if len(c.OperatorsFor(EngineTemporal)) != 0 {
		t.Error("operator leaked into an untagged engine")
	}
}

func TestRegisterOperatorValidation(t *testing.T) {
	c := NewCatalog()
	if err := c.RegisterOperator(Operator{Engines: []Engine{EngineHybrid}}); err == nil {
		t.Error("expected error for missing name")
	}
	if err := c.RegisterOperator(Operator{Name: "untagged"}); err == nil {
		t.Error("expected error for missing engines")
	}
}

func TestDefaultCatalogIsIndependent(t *testing.T) {
	a := DefaultCatalog()
	b := DefaultCatalog()

	if err := a.RegisterOperator(Operator{Name: "custom", Engines: []Engine{EngineHybrid}}); err != nil {
		t.Fatalf("RegisterOperator: %v", err)
	}

	if _, ok := b.Operator("custom"); ok {
		t.Error("extending one default catalog must not affect another")
	}
}

func TestCatalogNames(t *testing.T) {
	c := DefaultCatalog()
	names := c.Names()
	if len(names) != len(defaultOperators) {
		t.Fatalf("Names() = %d entries, want %d", len(names), len(defaultOperators))
	}
	if !sort.StringsAreSorted(names) {
		t.Error("Names() must be sorted")
	}
}
