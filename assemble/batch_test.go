package assemble

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/schemaworks/theoria/staging"
)

func TestAssembleBatchIsolation(t *testing.T) {
	broken := staging.TheoryBundle{
		TheoryID: "broken",
		Classified: []staging.ClassifiedTerm{
			{Term: "Actor", Category: "entity", Domain: []string{"Actor"}},
		},
	}
	second := graphBundle()
	second.TheoryID = "second"

	bundles := []staging.TheoryBundle{graphBundle(), broken, second}

	a := New(nil, DefaultOptions())
	results, err := a.AssembleBatch(context.Background(), bundles, 2)
	if err != nil {
		t.Fatalf("AssembleBatch() error = %v", err)
	}
	if len(results) != len(bundles) {
		t.Fatalf("results = %d, want %d", len(results), len(bundles))
	}

	// Slots align with input order.
	for i, bundle := range bundles {
		if results[i].TheoryID != bundle.TheoryID {
			t.Errorf("results[%d].TheoryID = %s, want %s", i, results[i].TheoryID, bundle.TheoryID)
		}
	}

	if !results[0].Ok() {
		t.Errorf("results[0] rejected: %+v", results[0].Diagnostics)
	}
	if results[1].Ok() {
		t.Error("results[1] should be rejected")
	}
	if !results[2].Ok() {
		t.Errorf("results[2] rejected: %+v", results[2].Diagnostics)
	}
}

func TestAssembleBatchMatchesSerialRuns(t *testing.T) {
	bundles := []staging.TheoryBundle{graphBundle(), graphBundle(), graphBundle()}

	a := New(nil, DefaultOptions())
	results, err := a.AssembleBatch(context.Background(), bundles, 3)
	if err != nil {
		t.Fatalf("AssembleBatch() error = %v", err)
	}

	for i, bundle := range bundles {
		want := a.Assemble(bundle)
		if !reflect.DeepEqual(results[i], want) {
			t.Errorf("results[%d] differs from a serial run", i)
		}
	}
}

func TestAssembleBatchEmpty(t *testing.T) {
	a := New(nil, DefaultOptions())
	results, err := a.AssembleBatch(context.Background(), nil, 4)
	if err != nil {
		t.Fatalf("AssembleBatch() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestAssembleBatchDefaultWorkers(t *testing.T) {
	a := New(nil, DefaultOptions())
	results, err := a.AssembleBatch(context.Background(), []staging.TheoryBundle{graphBundle()}, 0)
	if err != nil {
		t.Fatalf("AssembleBatch() error = %v", err)
	}
	if !results[0].Ok() {
		t.Errorf("results[0] rejected: %+v", results[0].Diagnostics)
	}
}

func TestAssembleBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bundles := make([]staging.TheoryBundle, 16)
	for i := range bundles {
		bundles[i] = graphBundle()
	}

	a := New(nil, DefaultOptions())
	_, err := a.AssembleBatch(ctx, bundles, 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("AssembleBatch() error = %v, want context.Canceled", err)
	}
}
