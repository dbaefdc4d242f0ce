package classify

import (
	"testing"

	"github.com/schemaworks/theoria/ontology"
)

func TestDispatchGraphDefault(t *testing.T) {
	rec, diags := NewDispatcher(nil).Dispatch(Signals{Entities: 4, Connections: 3})

	if rec.ModelType != ModelGraph {
		t.Fatalf("ModelType = %s, want %s", rec.ModelType, ModelGraph)
	}
	if rec.ReasoningEngine != EngineGraphTraversal {
		t.Errorf("ReasoningEngine = %s, want %s", rec.ReasoningEngine, EngineGraphTraversal)
	}
	if rec.Confidence != ConfidenceHigh {
		t.Errorf("Confidence = %s, want high", rec.Confidence)
	}
	if len(rec.CompatibleOperators) == 0 {
		t.Error("expected compatible operators for the graph engine")
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

func TestDispatchRules(t *testing.T) {
	tests := []struct {
		name       string
		signals    Signals
		wantModel  ModelType
		wantEngine Engine
	}{
		{
			name:       "n-ary connections make a hypergraph",
			signals:    Signals{Connections: 2, NAryConnections: 1},
			wantModel:  ModelHypergraph,
			wantEngine: EngineHybrid,
		},
		{
			name:       "connection-referencing connections make a hypergraph",
			signals:    Signals{Connections: 3, ConnectionRefs: 2},
			wantModel:  ModelHypergraph,
			wantEngine: EngineHybrid,
		},
		{
			name:       "pure subtype hierarchy is a tree",
			signals:    Signals{Entities: 6, SubtypeEdges: 5},
			wantModel:  ModelTree,
			wantEngine: EngineIterativeClassification,
		},
		{
			name:       "declared stages make a sequence",
			signals:    Signals{Entities: 3, Connections: 1, Stages: []string{"input", "process", "output"}},
			wantModel:  ModelSequence,
			wantEngine: EngineTemporal,
		},
		{
			name:       "cross-tabulated axes make a table",
			signals:    Signals{Entities: 6, Connections: 1, SubtypeEdges: 4, CategoricalAxes: 2, CrossTabulating: 1},
			wantModel:  ModelTable,
			wantEngine: EngineStatistical,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, diags := NewDispatcher(nil).Dispatch(tc.signals)
			if rec.ModelType != tc.wantModel {
				t.Errorf("ModelType = %s, want %s", rec.ModelType, tc.wantModel)
			}
			if rec.ReasoningEngine != tc.wantEngine {
				t.Errorf("ReasoningEngine = %s, want %s", rec.ReasoningEngine, tc.wantEngine)
			}
			if rec.Confidence != ConfidenceHigh {
				t.Errorf("Confidence = %s, want high", rec.Confidence)
			}
			if len(diags) != 0 {
				t.Errorf("unexpected diagnostics: %v", diags)
			}
		})
	}
}

func TestDispatchHybridOverride(t *testing.T) {
	// Tree weight 3 and sequence weight 4 are within a factor of two.
	sig := Signals{Entities: 4, SubtypeEdges: 3, Stages: []string{"a", "b", "c", "d"}}

	rec, _ := NewDispatcher(nil).Dispatch(sig)

	if rec.ModelType != ModelHybrid {
		t.Fatalf("ModelType = %s, want %s", rec.ModelType, ModelHybrid)
	}
	if rec.ReasoningEngine != EngineHybrid {
		t.Errorf("ReasoningEngine = %s, want %s", rec.ReasoningEngine, EngineHybrid)
	}
	if rec.Confidence != ConfidenceHigh {
		t.Errorf("Confidence = %s, want high", rec.Confidence)
	}
}

func TestDispatchFirstMatchWinsWhenWeightsDiffer(t *testing.T) {
	// Hypergraph weight 1 against sequence weight 5: not comparable, so
	// the earlier rule takes it.
	sig := Signals{
		Connections:     2,
		NAryConnections: 1,
		Stages:          []string{"a", "b", "c", "d", "e"},
	}

	rec, _ := NewDispatcher(nil).Dispatch(sig)

	if rec.ModelType != ModelHypergraph {
		t.Fatalf("ModelType = %s, want %s", rec.ModelType, ModelHypergraph)
	}
}

func TestDispatchSparseSignals(t *testing.T) {
	rec, diags := NewDispatcher(nil).Dispatch(Signals{Entities: 2})

	if rec.ModelType != ModelOther {
		t.Fatalf("ModelType = %s, want %s", rec.ModelType, ModelOther)
	}
	if rec.ReasoningEngine != EngineHybrid {
		t.Errorf("ReasoningEngine = %s, want %s", rec.ReasoningEngine, EngineHybrid)
	}
	if rec.Confidence != ConfidenceLow {
		t.Errorf("Confidence = %s, want low", rec.Confidence)
	}
	if len(diags) != 1 || diags[0].Code != ontology.CodeLowConfidenceClassification {
		t.Fatalf("diagnostics = %v, want one low_confidence_classification", diags)
	}
	if diags[0].Fatal() {
		t.Error("low confidence must not be fatal")
	}
}

func TestDispatchPropertiesWithoutConnections(t *testing.T) {
	rec, diags := NewDispatcher(nil).Dispatch(Signals{Entities: 3, Properties: 2})

	if rec.ModelType != ModelGraph {
		t.Fatalf("ModelType = %s, want %s", rec.ModelType, ModelGraph)
	}
	if rec.Confidence != ConfidenceLow {
		t.Errorf("Confidence = %s, want low", rec.Confidence)
	}
	if len(diags) != 1 {
		t.Fatalf("expected a low-confidence diagnostic, got %v", diags)
	}
}

func TestDispatchIsTotal(t *testing.T) {
	grid := []Signals{
		{},
		{Entities: 1},
		{Connections: 1},
		{Properties: 1},
		{Modifiers: 3},
		{NAryConnections: 2, SubtypeEdges: 2},
		{SubtypeEdges: 1, Stages: []string{"x", "y"}},
		{CategoricalAxes: 3, CrossTabulating: 2, Connections: 2},
		{Connections: 5, NAryConnections: 5, Stages: []string{"a", "b"}, CategoricalAxes: 2, CrossTabulating: 4},
	}

	for i, sig := range grid {
		rec, _ := NewDispatcher(nil).Dispatch(sig)
		if !rec.ModelType.IsValid() {
			t.Errorf("grid[%d]: invalid model type %q", i, rec.ModelType)
		}
		if rec.ReasoningEngine == "" {
			t.Errorf("grid[%d]: empty reasoning engine", i)
		}
		if rec.Confidence != ConfidenceHigh && rec.Confidence != ConfidenceLow {
			t.Errorf("grid[%d]: invalid confidence %q", i, rec.Confidence)
		}
	}
}

func TestEngineForIsTotal(t *testing.T) {
	for _, m := range ModelTypes {
		if EngineFor(m) == "" {
			t.Errorf("EngineFor(%s) is empty", m)
		}
	}
	if EngineFor(ModelType("nonsense")) != EngineHybrid {
		t.Error("unknown model types must fall back to the hybrid engine")
	}
}
