package theory

import "github.com/c360studio/semstreams/vocabulary"

// Metadata predicates for staged theory bundles.
const (
	// TheoryID is the stable theory identifier.
	TheoryID = "theory.meta.id"

	// TheoryTitle is the human-readable theory title.
	TheoryTitle = "theory.meta.title"

	// TheorySource is the file path or locator the bundle was staged from.
	TheorySource = "theory.meta.source"

	// TheoryStagedAt is the RFC3339 staging timestamp.
	TheoryStagedAt = "theory.meta.staged_at"

	// TheoryIngestID is the unique id of the ingestion event.
	TheoryIngestID = "theory.meta.ingest_id"

	// TheoryPurposes lists the declared analytical purposes.
	// Values: descriptive, explanatory, predictive, causal, intervention
	TheoryPurposes = "theory.meta.purposes"
)

// Artifact predicates describe the staged extraction artifacts.
const (
	// TheoryVocabularySize is the raw vocabulary term count.
	TheoryVocabularySize = "theory.artifact.vocabulary_size"

	// TheoryClassifiedSize is the classified term count.
	TheoryClassifiedSize = "theory.artifact.classified_size"

	// TheoryHasBlueprint indicates whether a blueprint artifact arrived.
	TheoryHasBlueprint = "theory.artifact.has_blueprint"

	// TheoryStages is the blueprint's declared stage ordering.
	TheoryStages = "theory.artifact.stages"
)

// Relationship predicates linking theory entities.
const (
	// HasSchema links a staged theory to its assembled schema entity.
	HasSchema = "theory.rel.has_schema"
)

func init() {
	vocabulary.Register(TheoryID,
		vocabulary.WithDescription("Stable theory identifier"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcIdentifier))

	vocabulary.Register(TheoryTitle,
		vocabulary.WithDescription("Human-readable theory title"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcTitle))

	vocabulary.Register(TheorySource,
		vocabulary.WithDescription("File path or locator the bundle was staged from"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(vocabulary.DcSource))

	vocabulary.Register(TheoryStagedAt,
		vocabulary.WithDescription("Staging timestamp (RFC3339)"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(DcCreated))

	vocabulary.Register(TheoryIngestID,
		vocabulary.WithDescription("Unique id of the ingestion event"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(Namespace+"ingestID"))

	vocabulary.Register(TheoryPurposes,
		vocabulary.WithDescription("Declared analytical purposes: descriptive, explanatory, predictive, causal, intervention"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"purposes"))

	vocabulary.Register(TheoryVocabularySize,
		vocabulary.WithDescription("Raw vocabulary term count"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(Namespace+"vocabularySize"))

	vocabulary.Register(TheoryClassifiedSize,
		vocabulary.WithDescription("Classified term count"),
		vocabulary.WithDataType("int"),
		vocabulary.WithIRI(Namespace+"classifiedSize"))

	vocabulary.Register(TheoryHasBlueprint,
		vocabulary.WithDescription("Whether a blueprint artifact arrived with the bundle"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(Namespace+"hasBlueprintArtifact"))

	vocabulary.Register(TheoryStages,
		vocabulary.WithDescription("Blueprint's declared stage ordering"),
		vocabulary.WithDataType("array"),
		vocabulary.WithIRI(Namespace+"stages"))

	vocabulary.Register(HasSchema,
		vocabulary.WithDescription("Links a staged theory to its assembled schema"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(PropHasSchema))
}
