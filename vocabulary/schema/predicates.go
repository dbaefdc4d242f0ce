package schema

import "github.com/c360studio/semstreams/vocabulary"

// Metadata predicates for assembled schemas.
const (
	// SchemaTheory links a schema to the theory it was assembled from.
	SchemaTheory = "schema.meta.theory"

	// SchemaTitle is the schema title.
	SchemaTitle = "schema.meta.title"

	// SchemaStatus is the assembly outcome.
	// Values: "ok", "rejected"
	SchemaStatus = "schema.meta.status"

	// SchemaUniversalVersion is the universal definition set version used.
	SchemaUniversalVersion = "schema.meta.universal_version"

	// SchemaInputHash is the SHA-256 digest of the assembly inputs.
	SchemaInputHash = "schema.meta.input_hash"

	// SchemaAssembledAt is the RFC3339 assembly timestamp.
	SchemaAssembledAt = "schema.meta.assembled_at"
)

// Classification predicates for the dispatch record.
const (
	// SchemaModelType is the classified structural model type.
	// Values: graph, hypergraph, tree, sequence, table, hybrid, other
	SchemaModelType = "schema.classification.model_type"

	// SchemaReasoningEngine is the dispatched reasoning engine.
	// Values: graph-traversal, iterative-classification, temporal, statistical, hybrid
	SchemaReasoningEngine = "schema.classification.engine"

	// SchemaConfidence is the classification confidence.
	// Values: "high", "low"
	SchemaConfidence = "schema.classification.confidence"

	// SchemaOperators lists the compatible reasoning operators.
	SchemaOperators = "schema.classification.operators"

	// SchemaRationale explains which structural rule fired.
	SchemaRationale = "schema.classification.rationale"
)

// Balance predicates for the purpose-coverage report.
const (
	// SchemaIsBalanced is the balance verdict.
	// Values: "yes", "no", "not_applicable"
	SchemaIsBalanced = "schema.balance.is_balanced"

	// SchemaBalanceRatio is the min/max purpose coverage ratio.
	SchemaBalanceRatio = "schema.balance.ratio"

	// SchemaBalanceVariance is the mean-normalized coverage variance.
	SchemaBalanceVariance = "schema.balance.variance"

	// SchemaIntegrationQuality is the cross-purpose integration score.
	SchemaIntegrationQuality = "schema.balance.integration_quality"
)

// Term predicates for individual schema term definitions.
const (
	// TermName is the canonical term name.
	TermName = "schema.term.name"

	// TermIndigenous is the theory's own wording for the term.
	TermIndigenous = "schema.term.indigenous"

	// TermCategory is the term category.
	// Values: entity, relationship, property, action, measure, modifier,
	// truth_value, operator
	TermCategory = "schema.term.category"

	// TermDescription is the term definition text.
	TermDescription = "schema.term.description"

	// TermDomain lists the permitted subject terms of a connection.
	TermDomain = "schema.term.domain"

	// TermRange lists the permitted object terms of a connection.
	TermRange = "schema.term.range"

	// TermSubTypeOf names the parent term in the subtype hierarchy.
	TermSubTypeOf = "schema.term.subtype_of"

	// TermNotation is the formal notation, when the theory provides one.
	TermNotation = "schema.term.notation"

	// TermExamples lists usage examples from the source theory.
	TermExamples = "schema.term.examples"
)

// Structural predicates describing bucket sizes.
const (
	// SchemaEntityCount is the entity bucket size.
	SchemaEntityCount = "schema.bucket.entity_count"

	// SchemaConnectionCount is the connection bucket size.
	SchemaConnectionCount = "schema.bucket.connection_count"

	// SchemaPropertyCount is the property bucket size.
	SchemaPropertyCount = "schema.bucket.property_count"

	// SchemaModifierCount is the modifier bucket size.
	SchemaModifierCount = "schema.bucket.modifier_count"
)

// Relationship predicates linking schema entities.
const (
	// HasTerm links a schema to its term entities.
	HasTerm = "schema.rel.has_term"
)

func init() {
	vocabulary.Register(SchemaTheory,
		vocabulary.WithDescription("Theory this schema was assembled from"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropAssembledFrom))

	vocabulary.Register(SchemaTitle,
		vocabulary.WithDescription("Schema title"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcTitle))

	vocabulary.Register(SchemaStatus,
		vocabulary.WithDescription("Assembly outcome: ok or rejected"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"status"))

	vocabulary.Register(SchemaUniversalVersion,
		vocabulary.WithDescription("Universal definition set version used"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropUniversalVersion))

	vocabulary.Register(SchemaInputHash,
		vocabulary.WithDescription("SHA-256 digest of the assembly inputs"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropInputHash))

	vocabulary.Register(SchemaAssembledAt,
		vocabulary.WithDescription("Assembly timestamp (RFC3339)"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(vocabulary.ProvGeneratedAtTime))

	vocabulary.Register(SchemaModelType,
		vocabulary.WithDescription("Classified structural model type"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropModelType))

	vocabulary.Register(SchemaReasoningEngine,
		vocabulary.WithDescription("Dispatched reasoning engine"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropReasoningEngine))

	vocabulary.Register(SchemaConfidence,
		vocabulary.WithDescription("Classification confidence: high or low"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropConfidence))

	vocabulary.Register(SchemaOperators,
		vocabulary.WithDescription("Compatible reasoning operators"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"operators"))

	vocabulary.Register(SchemaRationale,
		vocabulary.WithDescription("Which structural rule decided the classification"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"rationale"))

	vocabulary.Register(SchemaIsBalanced,
		vocabulary.WithDescription("Balance verdict: yes, no or not_applicable"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(PropIsBalanced))

	vocabulary.Register(SchemaBalanceRatio,
		vocabulary.WithDescription("Min/max purpose coverage ratio"),
		vocabulary.WithDataType("float"),
		vocabulary.WithIRI(PropBalanceRatio))

	vocabulary.Register(SchemaBalanceVariance,
		vocabulary.WithDescription("Mean-normalized purpose coverage variance"),
		vocabulary.WithDataType("float"),
		vocabulary.WithIRI(Namespace+"balanceVariance"))

	vocabulary.Register(SchemaIntegrationQuality,
		vocabulary.WithDescription("Cross-purpose integration score"),
		vocabulary.WithDataType("float"),
		vocabulary.WithIRI(Namespace+"integrationQuality"))

	vocabulary.Register(TermName,
		vocabulary.WithDescription("Canonical term name"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.SkosPrefLabel))

	vocabulary.Register(TermIndigenous,
		vocabulary.WithDescription("Theory's own wording for the term"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.SkosAltLabel))

	vocabulary.Register(TermCategory,
		vocabulary.WithDescription("Term category within the closed set"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"category"))

	vocabulary.Register(TermDescription,
		vocabulary.WithDescription("Term definition text"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://purl.org/dc/terms/description"))

	vocabulary.Register(TermDomain,
		vocabulary.WithDescription("Permitted subject terms of a connection"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(PropDomain))

	vocabulary.Register(TermRange,
		vocabulary.WithDescription("Permitted object terms of a connection"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(PropRange))

	vocabulary.Register(TermSubTypeOf,
		vocabulary.WithDescription("Parent term in the subtype hierarchy"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.SkosBroader))

	vocabulary.Register(TermNotation,
		vocabulary.WithDescription("Formal notation, when the theory provides one"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"notation"))

	vocabulary.Register(TermExamples,
		vocabulary.WithDescription("Usage examples from the source theory"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI("http://www.w3.org/2004/02/skos/core#example"))

	vocabulary.Register(SchemaEntityCount,
		vocabulary.WithDescription("Entity bucket size"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(Namespace+"entityCount"))

	vocabulary.Register(SchemaConnectionCount,
		vocabulary.WithDescription("Connection bucket size"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(Namespace+"connectionCount"))

	vocabulary.Register(SchemaPropertyCount,
		vocabulary.WithDescription("Property bucket size"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(Namespace+"propertyCount"))

	vocabulary.Register(SchemaModifierCount,
		vocabulary.WithDescription("Modifier bucket size"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(Namespace+"modifierCount"))

	vocabulary.Register(HasTerm,
		vocabulary.WithDescription("Links a schema to its term entities"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropHasTerm))
}
