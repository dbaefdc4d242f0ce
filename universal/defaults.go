package universal

import "github.com/schemaworks/theoria/ontology"

// DefaultVersion identifies the built-in universal set.
const DefaultVersion = "1.0.0"

// DefaultSet returns the built-in universal definitions: the generic
// entities, connections, properties and modifiers every theory schema
// shares. Callers receive a fresh value on every call, so one assembly
// run can never mutate another's universal terms.
func DefaultSet() *Set {
	return &Set{
		Version: DefaultVersion,
		Terms: []ontology.TermDefinition{
			// Generic entities. Entity is the hierarchy root.
			{IndigenousTerm: "Entity", Category: ontology.CategoryEntity,
				Description: "Anything that exists in a theory's domain of discourse"},
			{IndigenousTerm: "Actor", Category: ontology.CategoryEntity, SubTypeOf: "Entity",
				Description: "An entity capable of intentional action"},
			{IndigenousTerm: "Object", Category: ontology.CategoryEntity, SubTypeOf: "Entity",
				Description: "A passive entity acted upon"},
			{IndigenousTerm: "Event", Category: ontology.CategoryEntity, SubTypeOf: "Entity",
				Description: "An occurrence located in time"},
			{IndigenousTerm: "Process", Category: ontology.CategoryEntity, SubTypeOf: "Event",
				Description: "An extended event with internal structure"},
			{IndigenousTerm: "State", Category: ontology.CategoryEntity, SubTypeOf: "Entity",
				Description: "A condition that holds over an interval"},
			{IndigenousTerm: "Resource", Category: ontology.CategoryEntity, SubTypeOf: "Entity",
				Description: "An entity that can be consumed, exchanged or accumulated"},
			{IndigenousTerm: "Location", Category: ontology.CategoryEntity, SubTypeOf: "Entity",
				Description: "A spatial or institutional position"},

			// Generic connections.
			{IndigenousTerm: "part of", Category: ontology.CategoryRelationship,
				Domain: []string{"Entity"}, Range: []string{"Entity"},
				Description: "Mereological containment"},
			{IndigenousTerm: "member of", Category: ontology.CategoryRelationship,
				Domain: []string{"Entity"}, Range: []string{"Entity"},
				Description: "Membership in a collective"},
			{IndigenousTerm: "causes", Category: ontology.CategoryRelationship,
				Domain: []string{"Event", "Process"}, Range: []string{"Event", "Process", "State"},
				Description: "Direct causal influence"},
			{IndigenousTerm: "precedes", Category: ontology.CategoryRelationship,
				Domain: []string{"Event", "Process"}, Range: []string{"Event", "Process"},
				Description: "Temporal ordering"},
			{IndigenousTerm: "located in", Category: ontology.CategoryRelationship,
				Domain: []string{"Entity"}, Range: []string{"Location"},
				Description: "Spatial or institutional placement"},
			{IndigenousTerm: "acts on", Category: ontology.CategoryAction,
				Domain: []string{"Actor"}, Range: []string{"Entity"},
				Description: "Generic intentional action"},

			// Generic properties and measures.
			{IndigenousTerm: "name", Category: ontology.CategoryProperty,
				Domain: []string{"Entity"}, Range: []string{"string"},
				Description: "Human-readable identifier"},
			{IndigenousTerm: "description", Category: ontology.CategoryProperty,
				Domain: []string{"Entity"}, Range: []string{"text"},
				Description: "Free-text characterization"},
			{IndigenousTerm: "magnitude", Category: ontology.CategoryMeasure,
				Domain: []string{"Entity"}, Range: []string{"number"},
				Description: "Generic quantification"},

			// Modifiers, truth values, operators.
			{IndigenousTerm: "temporal", Category: ontology.CategoryModifier,
				Description: "Marks a time-dependent reading"},
			{IndigenousTerm: "spatial", Category: ontology.CategoryModifier,
				Description: "Marks a location-dependent reading"},
			{IndigenousTerm: "degree", Category: ontology.CategoryModifier,
				Description: "Marks graded intensity"},
			{IndigenousTerm: "certain", Category: ontology.CategoryTruthValue,
				Description: "Asserted without qualification"},
			{IndigenousTerm: "possible", Category: ontology.CategoryTruthValue,
				Description: "Asserted as a possibility"},
			{IndigenousTerm: "and", Category: ontology.CategoryOperator,
				Description: "Conjunction of conditions"},
			{IndigenousTerm: "or", Category: ontology.CategoryOperator,
				Description: "Disjunction of conditions"},
			{IndigenousTerm: "not", Category: ontology.CategoryOperator,
				Description: "Negation of a condition"},
		},
	}
}
