package staging

import (
	"strings"

	"github.com/schemaworks/theoria/ontology"
)

// hintSynonyms maps normalized free-text hint words onto term categories.
var hintSynonyms = map[string]ontology.Category{
	"concept": ontology.CategoryEntity,
	"thing":   ontology.CategoryEntity,
	"class":   ontology.CategoryEntity,
	"kind":    ontology.CategoryEntity,
	"object":  ontology.CategoryEntity,
	"actor":   ontology.CategoryEntity,
	"agent":   ontology.CategoryEntity,
	"noun":    ontology.CategoryEntity,

	"relation":    ontology.CategoryRelationship,
	"link":        ontology.CategoryRelationship,
	"connection":  ontology.CategoryRelationship,
	"association": ontology.CategoryRelationship,
	"tie":         ontology.CategoryRelationship,

	"verb":     ontology.CategoryAction,
	"activity": ontology.CategoryAction,
	"behavior": ontology.CategoryAction,

	"attribute":      ontology.CategoryProperty,
	"characteristic": ontology.CategoryProperty,
	"feature":        ontology.CategoryProperty,
	"trait":          ontology.CategoryProperty,

	"metric":      ontology.CategoryMeasure,
	"measurement": ontology.CategoryMeasure,
	"quantity":    ontology.CategoryMeasure,
	"indicator":   ontology.CategoryMeasure,
	"scale":       ontology.CategoryMeasure,
	"variable":    ontology.CategoryMeasure,

	"qualifier": ontology.CategoryModifier,
	"adverb":    ontology.CategoryModifier,
	"adjective": ontology.CategoryModifier,

	"truth value": ontology.CategoryTruthValue,
	"certainty":   ontology.CategoryTruthValue,
	"modality":    ontology.CategoryTruthValue,
	"likelihood":  ontology.CategoryTruthValue,

	"connective": ontology.CategoryOperator,
	"logical":    ontology.CategoryOperator,
}

// CategoryFromHint maps a free-text category hint onto the closed category
// enum. The mapping happens once at staging; the result is never
// re-interpreted downstream. Unrecognized hints return the empty category.
func CategoryFromHint(hint string) ontology.Category {
	norm := string(ontology.NormalizeKey(hint))
	if norm == "" {
		return ""
	}

	if c := ontology.ParseCategory(norm); c != "" {
		return c
	}
	if c, ok := hintSynonyms[norm]; ok {
		return c
	}

	// Multi-word hints like "causal relationship" resolve by their first
	// recognizable word.
	for _, word := range strings.Fields(norm) {
		if c := ontology.ParseCategory(word); c != "" {
			return c
		}
		if c, ok := hintSynonyms[word]; ok {
			return c
		}
	}
	return ""
}
