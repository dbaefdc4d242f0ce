package classify

import (
	"fmt"
	"sort"
	"sync"
)

// Operator is one reasoning operation tagged with the engines able to
// execute it.
type Operator struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Engines     []Engine `json:"engines"`
}

// Catalog is the master operator registry. Safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	operators map[string]Operator
}

// NewCatalog creates an empty operator catalog.
func NewCatalog() *Catalog {
	return &Catalog{operators: make(map[string]Operator)}
}

// RegisterOperator adds or replaces an operator definition.
func (c *Catalog) RegisterOperator(op Operator) error {
	if op.Name == "" {
		return fmt.Errorf("register operator: name required")
	}
	if len(op.Engines) == 0 {
		return fmt.Errorf("register operator %q: at least one engine required", op.Name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operators[op.Name] = op
	return nil
}

// Operator looks up an operator by name.
func (c *Catalog) Operator(name string) (Operator, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	op, ok := c.operators[name]
	return op, ok
}

// OperatorsFor returns the names of all operators tagged for the engine,
// sorted.
func (c *Catalog) OperatorsFor(engine Engine) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.operators))
	for name, op := range c.operators {
		for _, e := range op.Engines {
			if e == engine {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}

// Names returns all registered operator names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.operators))
	for name := range c.operators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultCatalog returns a fresh catalog seeded with the built-in
// operators. Each call returns an independent catalog so callers can
// extend theirs without affecting others.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, op := range defaultOperators {
		_ = c.RegisterOperator(op)
	}
	return c
}

var defaultOperators = []Operator{
	{Name: "traverse", Description: "walk typed connections from a start entity", Engines: []Engine{EngineGraphTraversal, EngineHybrid}},
	{Name: "shortest-path", Description: "minimal connection chain between two entities", Engines: []Engine{EngineGraphTraversal}},
	{Name: "neighborhood", Description: "entities reachable within n connection hops", Engines: []Engine{EngineGraphTraversal}},
	{Name: "reachability", Description: "whether one entity reaches another through connections", Engines: []Engine{EngineGraphTraversal, EngineHybrid}},
	{Name: "centrality", Description: "rank entities by connection participation", Engines: []Engine{EngineGraphTraversal}},

	{Name: "classify-instance", Description: "place an instance under its most specific type", Engines: []Engine{EngineIterativeClassification}},
	{Name: "ancestor-chain", Description: "walk a term's subtype parents to the root", Engines: []Engine{EngineIterativeClassification, EngineHybrid}},
	{Name: "descendant-set", Description: "collect all subtypes of a term", Engines: []Engine{EngineIterativeClassification}},
	{Name: "least-common-ancestor", Description: "deepest shared parent of two terms", Engines: []Engine{EngineIterativeClassification}},

	{Name: "order-check", Description: "verify two stages respect the declared ordering", Engines: []Engine{EngineTemporal}},
	{Name: "stage-progression", Description: "advance through the declared stage sequence", Engines: []Engine{EngineTemporal, EngineHybrid}},
	{Name: "interval-align", Description: "align overlapping stage intervals", Engines: []Engine{EngineTemporal}},
	{Name: "precedence-closure", Description: "transitive closure of precedes connections", Engines: []Engine{EngineTemporal}},

	{Name: "aggregate", Description: "fold measures over a categorical cell", Engines: []Engine{EngineStatistical}},
	{Name: "cross-tabulate", Description: "build the contingency table of two axes", Engines: []Engine{EngineStatistical, EngineHybrid}},
	{Name: "group-by", Description: "partition terms by a categorical axis", Engines: []Engine{EngineStatistical}},
	{Name: "marginal-distribution", Description: "per-axis distribution of a cross-tabulation", Engines: []Engine{EngineStatistical}},

	{Name: "decompose", Description: "split a mixed schema into single-shape fragments", Engines: []Engine{EngineHybrid}},
	{Name: "consistency-check", Description: "verify assertions against the schema invariants",
		Engines: []Engine{EngineGraphTraversal, EngineIterativeClassification, EngineTemporal, EngineStatistical, EngineHybrid}},
}
