package staging

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStagedPayloadSchema(t *testing.T) {
	p := &StagedTheoryPayload{}
	typ := p.Schema()
	if typ.Domain != "theory" || typ.Category != "staged" || typ.Version != "v1" {
		t.Errorf("Schema() = %+v, want theory/staged/v1", typ)
	}
}

func TestStagedPayloadValidate(t *testing.T) {
	p := &StagedTheoryPayload{}
	if err := p.Validate(); err == nil {
		t.Error("expected error for missing theory ID")
	}

	p.Bundle = TheoryBundle{
		TheoryID:   "t1",
		Vocabulary: []VocabularyEntry{{Term: "Actor"}},
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestStagedPayloadRoundTrip(t *testing.T) {
	p := &StagedTheoryPayload{
		IngestID: "ingest-42",
		Source:   "corpus/social-capital.yaml",
		StagedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Bundle: TheoryBundle{
			TheoryID:   "social-capital",
			Vocabulary: []VocabularyEntry{{Term: "Trust", CategoryHint: "concept"}},
		},
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got StagedTheoryPayload
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Bundle.TheoryID != "social-capital" || got.IngestID != "ingest-42" {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if len(got.Bundle.Vocabulary) != 1 {
		t.Errorf("Vocabulary = %v", got.Bundle.Vocabulary)
	}
}
