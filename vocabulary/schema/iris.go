package schema

// Namespace is the base IRI prefix for all Theoria ontology terms.
const Namespace = "https://theoria.dev/ontology/"

// EntityNamespace is the base IRI for Theoria entity instances.
const EntityNamespace = "https://theoria.dev/entity/"

// Class IRIs define the types of entities in the Theoria ontology.
// These classes extend standard ontology classes from BFO, CCO, and PROV-O.
const (
	// ClassTheory represents a staged theoretical framework.
	// Extends: bfo:GenericallyDependentContinuant, cco:InformationContentEntity, prov:Entity
	ClassTheory = Namespace + "Theory"

	// ClassKnowledgeSchema represents an assembled, validated schema.
	// Extends: bfo:GenericallyDependentContinuant, cco:DirectiveInformationContentEntity, prov:Entity
	ClassKnowledgeSchema = Namespace + "KnowledgeSchema"

	// ClassAssembly represents one assembly run.
	// Extends: bfo:Process, cco:ActOfArtifactProcessing, prov:Activity
	ClassAssembly = Namespace + "Assembly"

	// ClassTerm represents a schema term definition.
	// Extends: bfo:GenericallyDependentContinuant, cco:InformationContentEntity, prov:Entity
	ClassTerm = Namespace + "Term"

	// ClassEntityTerm represents an entity term.
	// Extends: ClassTerm
	ClassEntityTerm = Namespace + "EntityTerm"

	// ClassRelationshipTerm represents a relationship term.
	// Extends: ClassTerm
	ClassRelationshipTerm = Namespace + "RelationshipTerm"

	// ClassActionTerm represents an action term.
	// Extends: ClassTerm
	ClassActionTerm = Namespace + "ActionTerm"

	// ClassPropertyTerm represents a property term.
	// Extends: ClassTerm
	ClassPropertyTerm = Namespace + "PropertyTerm"

	// ClassMeasureTerm represents a measure term.
	// Extends: ClassTerm
	ClassMeasureTerm = Namespace + "MeasureTerm"

	// ClassModifierTerm represents a modifier term.
	// Extends: ClassTerm
	ClassModifierTerm = Namespace + "ModifierTerm"

	// ClassTruthValueTerm represents a truth value term.
	// Extends: ClassTerm
	ClassTruthValueTerm = Namespace + "TruthValueTerm"

	// ClassOperatorTerm represents an operator term.
	// Extends: ClassTerm
	ClassOperatorTerm = Namespace + "OperatorTerm"
)

// Object Property IRIs define relationships between Theoria entities.
const (
	// PropHasTerm links a schema to its term definitions.
	// Domain: ClassKnowledgeSchema, Range: ClassTerm
	PropHasTerm = Namespace + "hasTerm"

	// PropDomain links a connection term to its permitted subject terms.
	// Domain: ClassTerm, Range: ClassTerm
	PropDomain = Namespace + "domain"

	// PropRange links a connection term to its permitted object terms.
	// Domain: ClassTerm, Range: ClassTerm
	PropRange = Namespace + "range"

	// PropAssembledFrom links a schema to the theory it was assembled from.
	// Domain: ClassKnowledgeSchema, Range: ClassTheory
	PropAssembledFrom = Namespace + "assembledFrom"
)

// Data Property IRIs define literal-valued attributes.
const (
	// PropModelType is the classified structural model type.
	PropModelType = Namespace + "modelType"

	// PropReasoningEngine is the dispatched reasoning engine.
	PropReasoningEngine = Namespace + "reasoningEngine"

	// PropConfidence is the classification confidence.
	PropConfidence = Namespace + "confidence"

	// PropInputHash is the SHA-256 digest of the assembly inputs.
	PropInputHash = Namespace + "inputHash"

	// PropUniversalVersion is the universal set version used.
	PropUniversalVersion = Namespace + "universalVersion"

	// PropBalanceRatio is the min/max purpose coverage ratio.
	PropBalanceRatio = Namespace + "balanceRatio"

	// PropIsBalanced is the balance verdict.
	PropIsBalanced = Namespace + "isBalanced"
)
