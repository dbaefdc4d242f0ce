package staging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// SubjectTheoryStaged is the stream subject for staged theory bundles.
const SubjectTheoryStaged = "theoria.theory.staged.v1"

// PublishStaged wraps the payload in a base message envelope and publishes
// it to the theory stream. A nil client is a no-op so offline tooling can
// share the staging path.
func PublishStaged(ctx context.Context, nc *natsclient.Client, payload *StagedTheoryPayload) error {
	if nc == nil {
		return nil
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid staged payload: %w", err)
	}

	baseMsg := message.NewBaseMessage(payload.Schema(), payload, "theory-ingester")
	data, err := json.Marshal(baseMsg)
	if err != nil {
		return fmt.Errorf("marshal staged payload: %w", err)
	}

	if err := nc.PublishToStream(ctx, SubjectTheoryStaged, data); err != nil {
		return fmt.Errorf("publish staged payload: %w", err)
	}
	return nil
}
