package classify

import (
	"github.com/schemaworks/theoria/ontology"
)

// Signals are the structural measurements the dispatch rules consume.
// Counts cover theory terms only: terms injected verbatim from the
// universal set say nothing about the theory's own shape.
type Signals struct {
	Entities        int      `json:"entities"`
	Connections     int      `json:"connections"`
	Properties      int      `json:"properties"`
	Modifiers       int      `json:"modifiers"`
	NAryConnections int      `json:"nary_connections"`
	ConnectionRefs  int      `json:"connection_refs"`
	SubtypeEdges    int      `json:"subtype_edges"`
	CategoricalAxes int      `json:"categorical_axes"`
	CrossTabulating int      `json:"cross_tabulating"`
	Stages          []string `json:"stages,omitempty"`
}

// ExtractSignals measures a merged ontology. Decisions identify which terms
// were injected from the universal set so they can be excluded from shape
// statistics; stages carry the theory's declared ordering, if any.
func ExtractSignals(terms []ontology.TermDefinition, decisions []ontology.Decision, stages []string) Signals {
	injected := make(map[ontology.TermID]struct{})
	for _, d := range decisions {
		if d.Action == ontology.ActionInjected {
			injected[ontology.NormalizeKey(d.Term)] = struct{}{}
		}
	}

	// Connection keys span both sets: a theory connection pointing at a
	// universal connection still makes the shape higher-order.
	termKeys := make(map[ontology.TermID]struct{}, len(terms))
	connKeys := make(map[ontology.TermID]struct{})
	for _, t := range terms {
		termKeys[t.Key()] = struct{}{}
		if t.Category.Bucket() == ontology.BucketConnections {
			connKeys[t.Key()] = struct{}{}
		}
	}

	sig := Signals{Stages: stages}
	parentOf := make(map[ontology.TermID]ontology.TermID)
	childEntities := make(map[ontology.TermID]int)
	var connections []ontology.TermDefinition

	for _, t := range terms {
		key := t.Key()
		if _, ok := injected[key]; ok {
			continue
		}

		switch t.Category.Bucket() {
		case ontology.BucketEntities:
			sig.Entities++
		case ontology.BucketConnections:
			sig.Connections++
			connections = append(connections, t)
		case ontology.BucketProperties:
			sig.Properties++
		case ontology.BucketModifiers:
			sig.Modifiers++
		}

		if t.SubTypeOf != "" {
			parent := ontology.NormalizeKey(t.SubTypeOf)
			if _, known := termKeys[parent]; known {
				sig.SubtypeEdges++
				if t.Category == ontology.CategoryEntity {
					parentOf[key] = parent
					childEntities[parent]++
				}
			}
		}

		if t.Category.Bucket() == ontology.BucketConnections {
			if len(t.Domain) > 2 || len(t.Range) > 2 {
				sig.NAryConnections++
			}
			if referencesConnection(t.Domain, connKeys) || referencesConnection(t.Range, connKeys) {
				sig.ConnectionRefs++
			}
		}
	}

	// Categorical axes are theory-declared kinds with at least two entity
	// subtypes each.
	axes := make(map[ontology.TermID]struct{})
	for parent, n := range childEntities {
		if n < 2 {
			continue
		}
		if _, ok := injected[parent]; ok {
			continue
		}
		axes[parent] = struct{}{}
	}
	sig.CategoricalAxes = len(axes)

	if len(axes) >= 2 {
		for _, t := range connections {
			if crossTabulates(t, axes, parentOf) {
				sig.CrossTabulating++
			}
		}
	}

	return sig
}

// referencesConnection reports whether any reference resolves to a
// connection term.
func referencesConnection(refs []string, connKeys map[ontology.TermID]struct{}) bool {
	for _, ref := range refs {
		if _, ok := connKeys[ontology.NormalizeKey(ref)]; ok {
			return true
		}
	}
	return false
}

// crossTabulates reports whether a connection links two distinct
// categorical axes.
func crossTabulates(t ontology.TermDefinition, axes map[ontology.TermID]struct{}, parentOf map[ontology.TermID]ontology.TermID) bool {
	for _, d := range t.Domain {
		da := axisOf(ontology.NormalizeKey(d), axes, parentOf)
		if da == "" {
			continue
		}
		for _, r := range t.Range {
			ra := axisOf(ontology.NormalizeKey(r), axes, parentOf)
			if ra != "" && ra != da {
				return true
			}
		}
	}
	return false
}

// axisOf resolves a reference to the categorical axis it belongs to: the
// axis itself or its direct parent. Empty when the reference sits outside
// every axis.
func axisOf(key ontology.TermID, axes map[ontology.TermID]struct{}, parentOf map[ontology.TermID]ontology.TermID) ontology.TermID {
	if _, ok := axes[key]; ok {
		return key
	}
	if parent, ok := parentOf[key]; ok {
		if _, isAxis := axes[parent]; isAxis {
			return parent
		}
	}
	return ""
}
