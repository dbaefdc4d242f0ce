package classify

import (
	"fmt"
	"strings"

	"github.com/schemaworks/theoria/ontology"
)

// Dispatcher applies the ordered structural rules to a signal set.
type Dispatcher struct {
	catalog *Catalog
}

// NewDispatcher creates a dispatcher backed by the given operator catalog.
// A nil catalog uses the built-in default.
func NewDispatcher(catalog *Catalog) *Dispatcher {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Dispatcher{catalog: catalog}
}

// match is one fired structural rule and its weight.
type match struct {
	model  ModelType
	weight int
	why    string
}

// Dispatch classifies a signal set. Rules fire in order: hypergraph, tree,
// sequence, table. Two or more firing with comparable weight (smallest at
// least half the largest) override to hybrid; otherwise the first fired
// rule wins. With no rule fired the shape defaults to graph when
// connections exist; sparse signals degrade to other with low confidence
// and a warning instead of an error.
func (d *Dispatcher) Dispatch(sig Signals) (Record, []ontology.Diagnostic) {
	matches := evaluate(sig)

	var (
		model ModelType
		conf  = ConfidenceHigh
		why   string
	)

	switch {
	case len(matches) >= 2 && comparableWeight(matches):
		model = ModelHybrid
		why = fmt.Sprintf("comparable structural weight across %s", joinModels(matches))
	case len(matches) >= 1:
		model = matches[0].model
		why = matches[0].why
	case sig.Connections > 0:
		model = ModelGraph
		why = fmt.Sprintf("%d typed connection(s) between entities", sig.Connections)
	case sig.Properties > 0:
		model = ModelGraph
		conf = ConfidenceLow
		why = fmt.Sprintf("%d property term(s) but no connections", sig.Properties)
	default:
		model = ModelOther
		conf = ConfidenceLow
		why = "no connection or property signals"
	}

	engine := EngineFor(model)
	rec := Record{
		ModelType:           model,
		ReasoningEngine:     engine,
		CompatibleOperators: d.catalog.OperatorsFor(engine),
		Confidence:          conf,
		Rationale:           why,
	}

	var diags []ontology.Diagnostic
	if conf == ConfidenceLow {
		diags = append(diags, ontology.NewDiagnostic(
			ontology.CodeLowConfidenceClassification,
			fmt.Sprintf("structural signals too sparse for a reliable classification: %s", why),
		))
	}
	return rec, diags
}

// evaluate runs rules 1 through 4 and collects every match in rule order.
func evaluate(sig Signals) []match {
	var matches []match

	if n := sig.NAryConnections + sig.ConnectionRefs; n > 0 {
		matches = append(matches, match{
			model:  ModelHypergraph,
			weight: n,
			why: fmt.Sprintf("%d n-ary connection(s) and %d connection(s) referencing other connections",
				sig.NAryConnections, sig.ConnectionRefs),
		})
	}

	if sig.SubtypeEdges > 0 && sig.Connections == 0 {
		matches = append(matches, match{
			model:  ModelTree,
			weight: sig.SubtypeEdges,
			why:    fmt.Sprintf("subtype hierarchy of %d edge(s) with no cross-branch connections", sig.SubtypeEdges),
		})
	}

	if len(sig.Stages) >= 2 {
		matches = append(matches, match{
			model:  ModelSequence,
			weight: len(sig.Stages),
			why:    fmt.Sprintf("declared ordering of %d stages", len(sig.Stages)),
		})
	}

	if sig.CategoricalAxes >= 2 && sig.CrossTabulating > 0 {
		matches = append(matches, match{
			model:  ModelTable,
			weight: sig.CategoricalAxes + sig.CrossTabulating,
			why: fmt.Sprintf("%d categorical axes cross-tabulated by %d connection(s)",
				sig.CategoricalAxes, sig.CrossTabulating),
		})
	}

	return matches
}

// comparableWeight reports whether the lightest match carries at least
// half the weight of the heaviest.
func comparableWeight(matches []match) bool {
	lo, hi := matches[0].weight, matches[0].weight
	for _, m := range matches[1:] {
		if m.weight < lo {
			lo = m.weight
		}
		if m.weight > hi {
			hi = m.weight
		}
	}
	return lo*2 >= hi
}

func joinModels(matches []match) string {
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = string(m.model)
	}
	return strings.Join(names, ", ")
}
