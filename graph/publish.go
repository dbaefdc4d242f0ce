package graph

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// SubjectSchemaAssembled is the stream subject for assembled schema payloads.
const SubjectSchemaAssembled = "theoria.schema.assembled.v1"

// PublishSchema wraps the payload in a base message envelope and publishes
// it to the schema stream. A nil client is a no-op so one-shot CLI runs work
// without NATS.
func PublishSchema(ctx context.Context, nc *natsclient.Client, payload *SchemaPayload) error {
	if nc == nil {
		return nil
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid schema payload: %w", err)
	}

	baseMsg := message.NewBaseMessage(payload.Schema(), payload, "schema-assembler")
	data, err := json.Marshal(baseMsg)
	if err != nil {
		return fmt.Errorf("marshal schema payload: %w", err)
	}

	if err := nc.PublishToStream(ctx, SubjectSchemaAssembled, data); err != nil {
		return fmt.Errorf("publish schema payload: %w", err)
	}
	return nil
}
