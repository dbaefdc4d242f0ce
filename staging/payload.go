package staging

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "theory",
		Category:    "staged",
		Version:     "v1",
		Description: "Staged theory bundle awaiting schema assembly",
		Factory:     func() any { return &StagedTheoryPayload{} },
	})
	if err != nil {
		panic("failed to register StagedTheoryPayload: " + err.Error())
	}
}

// StagedType is the message type for staged theory bundles.
var StagedType = message.Type{Domain: "theory", Category: "staged", Version: "v1"}

// StagedTheoryPayload carries one staged theory bundle over the stream.
type StagedTheoryPayload struct {
	IngestID string       `json:"ingest_id,omitempty"`
	Source   string       `json:"source,omitempty"`
	StagedAt time.Time    `json:"staged_at"`
	Bundle   TheoryBundle `json:"bundle"`
}

// Schema implements message.Payload.
func (p *StagedTheoryPayload) Schema() message.Type {
	return StagedType
}

// Validate implements message.Payload.
func (p *StagedTheoryPayload) Validate() error {
	if p.Bundle.TheoryID == "" {
		return errors.New("theory ID is required")
	}
	return p.Bundle.Validate()
}

// MarshalJSON implements json.Marshaler.
func (p *StagedTheoryPayload) MarshalJSON() ([]byte, error) {
	type Alias StagedTheoryPayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *StagedTheoryPayload) UnmarshalJSON(data []byte) error {
	type Alias StagedTheoryPayload
	return json.Unmarshal(data, (*Alias)(p))
}
