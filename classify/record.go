// Package classify infers the structural model type of a merged theory
// ontology and assigns the reasoning engine and operator set that fit it.
// Classification is total: contradictory or sparse signals degrade to a
// low-confidence result instead of failing.
package classify

// ModelType is the inferred structural shape of a theory.
type ModelType string

const (
	// ModelGraph is the default shape: typed, property-bearing connections
	// between entities.
	ModelGraph ModelType = "graph"

	// ModelHypergraph marks n-ary connections or connections that take
	// other connections as domain/range elements.
	ModelHypergraph ModelType = "hypergraph"

	// ModelTree marks a pure subtype hierarchy with no cross-branch
	// connections.
	ModelTree ModelType = "tree"

	// ModelSequence marks an explicit declared ordering of stages.
	ModelSequence ModelType = "sequence"

	// ModelTable marks a cross-tabulation of two or more categorical axes.
	ModelTable ModelType = "table"

	// ModelHybrid marks several structural shapes of comparable weight.
	ModelHybrid ModelType = "hybrid"

	// ModelOther is the low-confidence fallback when signals are too
	// sparse to support any shape.
	ModelOther ModelType = "other"
)

// ModelTypes lists all model types in rule order.
var ModelTypes = []ModelType{
	ModelHypergraph,
	ModelTree,
	ModelSequence,
	ModelTable,
	ModelHybrid,
	ModelGraph,
	ModelOther,
}

// IsValid checks whether the model type is known.
func (m ModelType) IsValid() bool {
	switch m {
	case ModelGraph, ModelHypergraph, ModelTree, ModelSequence, ModelTable, ModelHybrid, ModelOther:
		return true
	}
	return false
}

// String returns the string representation of the model type.
func (m ModelType) String() string {
	return string(m)
}

// Engine identifies the downstream reasoning engine for a model type.
type Engine string

const (
	// EngineGraphTraversal walks typed connection graphs.
	EngineGraphTraversal Engine = "graph-traversal"

	// EngineIterativeClassification descends subtype hierarchies.
	EngineIterativeClassification Engine = "iterative-classification"

	// EngineTemporal reasons over declared stage orderings.
	EngineTemporal Engine = "temporal"

	// EngineStatistical aggregates over categorical cross-tabulations.
	EngineStatistical Engine = "statistical"

	// EngineHybrid combines engines for mixed or unresolved shapes.
	EngineHybrid Engine = "hybrid"
)

// String returns the string representation of the engine.
func (e Engine) String() string {
	return string(e)
}

// engineMap is the static model-type to engine assignment. Every model
// type has exactly one engine; dispatch never fails on an unknown type.
var engineMap = map[ModelType]Engine{
	ModelGraph:      EngineGraphTraversal,
	ModelTree:       EngineIterativeClassification,
	ModelSequence:   EngineTemporal,
	ModelTable:      EngineStatistical,
	ModelHypergraph: EngineHybrid,
	ModelHybrid:     EngineHybrid,
	ModelOther:      EngineHybrid,
}

// EngineFor returns the reasoning engine assigned to a model type. Unknown
// model types fall back to the hybrid engine.
func EngineFor(m ModelType) Engine {
	if e, ok := engineMap[m]; ok {
		return e
	}
	return EngineHybrid
}

// Confidence grades how well the structural signals support the result.
type Confidence string

const (
	// ConfidenceHigh means the signals cleared the rule thresholds.
	ConfidenceHigh Confidence = "high"

	// ConfidenceLow means the result is a fallback and callers should not
	// trust it without inspection.
	ConfidenceLow Confidence = "low"
)

// Record is the classification of one theory ontology.
type Record struct {
	ModelType           ModelType  `json:"model_type"`
	ReasoningEngine     Engine     `json:"reasoning_engine"`
	CompatibleOperators []string   `json:"compatible_operators"`
	Confidence          Confidence `json:"confidence"`
	Rationale           string     `json:"rationale,omitempty"`
}
