package theory

// Namespace is the base IRI prefix for staged theory vocabulary terms.
const Namespace = "https://theoria.dev/ontology/theory/"

// EntityNamespace is the base IRI for theory entity instances.
const EntityNamespace = "https://theoria.dev/entity/theory/"

// Standard ontology IRI constants for mappings.
const (
	// DcCreated is the Dublin Core created property.
	DcCreated = "http://purl.org/dc/terms/created"
)

// Class IRIs define the types of staged theory entities.
const (
	// ClassTheory represents one staged theoretical framework.
	// Extends: bfo:GenericallyDependentContinuant, cco:InformationContentEntity
	ClassTheory = Namespace + "Theory"

	// ClassVocabularyEntry represents one raw extracted term.
	// Extends: ClassTheory artifact, cco:InformationContentEntity
	ClassVocabularyEntry = Namespace + "VocabularyEntry"

	// ClassBlueprint represents the draft schema blueprint artifact.
	// Extends: cco:DirectiveInformationContentEntity
	ClassBlueprint = Namespace + "Blueprint"
)

// Object Property IRIs define relationships between theory entities.
const (
	// PropHasSchema links a staged theory to its assembled schema.
	// Domain: ClassTheory, Range: schema.ClassKnowledgeSchema
	PropHasSchema = Namespace + "hasSchema"

	// PropHasVocabularyEntry links a theory to its raw terms.
	// Domain: ClassTheory, Range: ClassVocabularyEntry
	PropHasVocabularyEntry = Namespace + "hasVocabularyEntry"

	// PropHasBlueprint links a theory to its blueprint artifact.
	// Domain: ClassTheory, Range: ClassBlueprint
	PropHasBlueprint = Namespace + "hasBlueprint"
)
