package scenarios

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/schemaworks/theoria/assemble"
	"github.com/schemaworks/theoria/graph"
	"github.com/schemaworks/theoria/staging"
	"github.com/schemaworks/theoria/test/e2e/client"
	"github.com/schemaworks/theoria/test/e2e/config"
)

// PipelineBasicScenario tests the staged-theory to assembled-schema path.
// It publishes a staged bundle to theoria.theory.staged.v1, verifies the
// assembler emits an ok schema on theoria.schema.assembled.v1, then replays
// the same bundle under a new ingest ID and verifies the cached payload is
// republished instead of reassembled.
type PipelineBasicScenario struct {
	name        string
	description string
	config      *config.Config
	nats        *client.NATSClient
	capture     *client.MessageCapture

	theoryID  string
	bundle    staging.TheoryBundle
	firstHash string
	firstAt   time.Time
}

// NewPipelineBasicScenario creates a new basic pipeline scenario.
func NewPipelineBasicScenario(cfg *config.Config) *PipelineBasicScenario {
	theoryID := "e2e-influence-model"
	return &PipelineBasicScenario{
		name:        "pipeline-basic",
		description: "Tests schema-assembler: publishes staged theory to theoria.theory.staged.v1, verifies assembled schema and cache replay on theoria.schema.assembled.v1",
		config:      cfg,
		theoryID:    theoryID,
		bundle: staging.TheoryBundle{
			TheoryID: theoryID,
			Purposes: map[string][]string{
				"descriptive": {"Actor"},
				"explanatory": {"influences"},
			},
			Classified: []staging.ClassifiedTerm{
				{Term: "Actor", Category: "entity"},
				{Term: "influences", Category: "relationship", Domain: []string{"Actor"}, Range: []string{"Actor"}},
			},
		},
	}
}

// Name returns the scenario name.
func (s *PipelineBasicScenario) Name() string {
	return s.name
}

// Description returns the scenario description.
func (s *PipelineBasicScenario) Description() string {
	return s.description
}

// Setup prepares the scenario environment.
func (s *PipelineBasicScenario) Setup(ctx context.Context) error {
	natsClient, err := client.NewNATSClient(ctx, s.config.NATSURL)
	if err != nil {
		return fmt.Errorf("create NATS client: %w", err)
	}
	s.nats = natsClient

	for _, stream := range []string{config.TheoryStream, config.SchemaStream} {
		if err := s.nats.EnsureStream(ctx, stream); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the basic pipeline scenario.
func (s *PipelineBasicScenario) Execute(ctx context.Context) (*Result, error) {
	result := NewResult(s.name)
	defer result.Complete()

	stages := []struct {
		name string
		fn   func(context.Context, *Result) error
	}{
		{"setup-capture", s.stageSetupCapture},
		{"publish-staged", s.stagePublishStaged},
		{"verify-assembled", s.stageVerifyAssembled},
		{"replay-staged", s.stageReplayStaged},
		{"verify-cache-replay", s.stageVerifyCacheReplay},
	}

	for _, stage := range stages {
		stageStart := time.Now()
		stageCtx, cancel := context.WithTimeout(ctx, s.config.StageTimeout)

		err := stage.fn(stageCtx, result)
		cancel()

		stageDuration := time.Since(stageStart)
		result.SetMetric(fmt.Sprintf("%s_duration_ms", stage.name), stageDuration.Milliseconds())

		if err != nil {
			result.AddStage(stage.name, false, stageDuration, err.Error())
			result.AddError(fmt.Sprintf("%s: %v", stage.name, err))
			result.Error = fmt.Sprintf("%s failed: %v", stage.name, err)
			return result, nil
		}

		result.AddStage(stage.name, true, stageDuration, "")
	}

	result.Success = true
	return result, nil
}

// Teardown cleans up after the scenario.
func (s *PipelineBasicScenario) Teardown(ctx context.Context) error {
	var errs []error
	if s.capture != nil {
		if err := s.capture.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop capture: %w", err))
		}
	}
	if s.nats != nil {
		if err := s.nats.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close NATS: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("teardown errors: %v", errs)
	}
	return nil
}

func (s *PipelineBasicScenario) stageSetupCapture(_ context.Context, result *Result) error {
	capture, err := s.nats.CaptureMessages(graph.SubjectSchemaAssembled)
	if err != nil {
		return fmt.Errorf("start message capture: %w", err)
	}
	s.capture = capture
	result.SetDetail("capture_started", true)
	return nil
}

func (s *PipelineBasicScenario) stagePublishStaged(ctx context.Context, result *Result) error {
	if err := s.publishBundle(ctx, fmt.Sprintf("e2e-%d", time.Now().UnixNano())); err != nil {
		return err
	}
	result.SetDetail("theory_id", s.theoryID)
	result.SetDetail("staged_published", true)
	return nil
}

func (s *PipelineBasicScenario) stageVerifyAssembled(ctx context.Context, result *Result) error {
	waitCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := s.capture.WaitForCount(waitCtx, 1); err != nil {
		return fmt.Errorf("no schema received on %s: %w", graph.SubjectSchemaAssembled, err)
	}

	payload, err := decodeSchemaPayload(s.capture.Messages()[0].Data)
	if err != nil {
		return err
	}

	if payload.TheoryID != s.theoryID {
		return fmt.Errorf("schema for wrong theory: got %q, want %q", payload.TheoryID, s.theoryID)
	}
	if payload.Status != assemble.StatusOk {
		return fmt.Errorf("assembly not ok: status %q with %d diagnostics",
			payload.Status, len(payload.Diagnostics))
	}
	if payload.Schema_ == nil || payload.Schema_.InputHash == "" {
		return fmt.Errorf("assembled schema missing input hash")
	}

	s.firstHash = payload.Schema_.InputHash
	s.firstAt = payload.AssembledAt

	result.SetDetail("input_hash", s.firstHash)
	result.SetMetric("schema_terms", payload.Schema_.TermCount())
	return nil
}

func (s *PipelineBasicScenario) stageReplayStaged(ctx context.Context, result *Result) error {
	// Same bundle, new ingest ID. The input hash covers only the bundle,
	// so the assembler must hit its cache.
	if err := s.publishBundle(ctx, fmt.Sprintf("e2e-replay-%d", time.Now().UnixNano())); err != nil {
		return err
	}
	result.SetDetail("replay_published", true)
	return nil
}

func (s *PipelineBasicScenario) stageVerifyCacheReplay(ctx context.Context, result *Result) error {
	waitCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := s.capture.WaitForCount(waitCtx, 2); err != nil {
		return fmt.Errorf("no replayed schema received: %w", err)
	}

	payload, err := decodeSchemaPayload(s.capture.Messages()[1].Data)
	if err != nil {
		return err
	}

	if payload.Schema_ == nil || payload.Schema_.InputHash != s.firstHash {
		return fmt.Errorf("replay produced a different input hash")
	}

	// The cache stores the first payload verbatim, so a replayed bundle
	// comes back with the original assembly timestamp.
	if !payload.AssembledAt.Equal(s.firstAt) {
		return fmt.Errorf("replay was reassembled: assembled_at %s, want cached %s",
			payload.AssembledAt.Format(time.RFC3339Nano), s.firstAt.Format(time.RFC3339Nano))
	}

	result.SetDetail("cache_replay_verified", true)
	return nil
}

func (s *PipelineBasicScenario) publishBundle(ctx context.Context, ingestID string) error {
	payload := &staging.StagedTheoryPayload{
		IngestID: ingestID,
		Source:   fmt.Sprintf("e2e/%s.yaml", s.theoryID),
		StagedAt: time.Now().UTC(),
		Bundle:   s.bundle,
	}

	baseMsg := message.NewBaseMessage(payload.Schema(), payload, config.E2ESource)
	data, err := json.Marshal(baseMsg)
	if err != nil {
		return fmt.Errorf("marshal staged message: %w", err)
	}

	if err := s.nats.PublishToStream(ctx, staging.SubjectTheoryStaged, data); err != nil {
		return fmt.Errorf("publish staged bundle: %w", err)
	}
	return nil
}

func decodeSchemaPayload(data []byte) (*graph.SchemaPayload, error) {
	var baseMsg message.BaseMessage
	if err := json.Unmarshal(data, &baseMsg); err != nil {
		return nil, fmt.Errorf("unmarshal base message: %w", err)
	}
	payload, ok := baseMsg.Payload().(*graph.SchemaPayload)
	if !ok {
		return nil, fmt.Errorf("payload is not an assembled schema (type %v)", baseMsg.Type())
	}
	return payload, nil
}
