package scenarios

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/schemaworks/theoria/staging"
	"github.com/schemaworks/theoria/test/e2e/client"
	"github.com/schemaworks/theoria/test/e2e/config"
)

// rdfOutputSubject is where the schema-exporter publishes serialized RDF.
const rdfOutputSubject = "theoria.schema.rdf"

// RDFExportScenario tests the schema-exporter output component.
// It publishes a staged theory to theoria.theory.staged.v1 and verifies
// that the exporter produces serialized RDF on theoria.schema.rdf.
type RDFExportScenario struct {
	name        string
	description string
	config      *config.Config
	nats        *client.NATSClient
	capture     *client.MessageCapture

	theoryID string
	bundle   staging.TheoryBundle
}

// NewRDFExportScenario creates a new RDF export scenario.
func NewRDFExportScenario(cfg *config.Config) *RDFExportScenario {
	theoryID := "e2e-diffusion-model"
	return &RDFExportScenario{
		name:        "rdf-export",
		description: "Tests schema-exporter: publishes staged theory, verifies Turtle output on theoria.schema.rdf",
		config:      cfg,
		theoryID:    theoryID,
		bundle: staging.TheoryBundle{
			TheoryID: theoryID,
			Purposes: map[string][]string{
				"descriptive": {"Adopter", "Innovation"},
				"explanatory": {"adopts"},
			},
			Classified: []staging.ClassifiedTerm{
				{Term: "Adopter", Category: "entity"},
				{Term: "Innovation", Category: "entity"},
				{Term: "adopts", Category: "relationship", Domain: []string{"Adopter"}, Range: []string{"Innovation"}},
			},
		},
	}
}

// Name returns the scenario name.
func (s *RDFExportScenario) Name() string {
	return s.name
}

// Description returns the scenario description.
func (s *RDFExportScenario) Description() string {
	return s.description
}

// Setup prepares the scenario environment.
func (s *RDFExportScenario) Setup(ctx context.Context) error {
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

// Execute runs the RDF export scenario.
func (s *RDFExportScenario) Execute(ctx context.Context) (*Result, error) {
	result := NewResult(s.name)
	defer result.Complete()

	stages := []struct {
		name string
		fn   func(context.Context, *Result) error
	}{
		{"setup-capture", s.stageSetupCapture},
		{"publish-staged", s.stagePublishStaged},
		{"verify-rdf-output", s.stageVerifyRDFOutput},
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
func (s *RDFExportScenario) Teardown(ctx context.Context) error {
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

func (s *RDFExportScenario) stageSetupCapture(_ context.Context, result *Result) error {
	capture, err := s.nats.CaptureMessages(rdfOutputSubject)
	if err != nil {
		return fmt.Errorf("start message capture: %w", err)
	}
	s.capture = capture
	result.SetDetail("capture_started", true)
	return nil
}

func (s *RDFExportScenario) stagePublishStaged(ctx context.Context, result *Result) error {
	payload := &staging.StagedTheoryPayload{
		IngestID: fmt.Sprintf("e2e-%d", time.Now().UnixNano()),
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

	result.SetDetail("theory_id", s.theoryID)
	result.SetDetail("staged_published", true)
	return nil
}

func (s *RDFExportScenario) stageVerifyRDFOutput(ctx context.Context, result *Result) error {
	waitCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := s.capture.WaitForCount(waitCtx, 1); err != nil {
		return fmt.Errorf("no RDF output received on %s: %w", rdfOutputSubject, err)
	}

	msgs := s.capture.Messages()
	if len(msgs) == 0 {
		return fmt.Errorf("no messages in capture")
	}

	output := string(msgs[0].Data)
	result.SetDetail("rdf_output", output)
	result.SetMetric("rdf_output_bytes", len(output))

	// Verify Turtle format markers (default format in the exporter config)
	checks := []struct {
		pattern string
		desc    string
	}{
		{"@prefix", "Turtle prefix declaration"},
		{"theoria.dev", "Base IRI"},
	}

	for _, check := range checks {
		if !strings.Contains(output, check.pattern) {
			return fmt.Errorf("missing %s: expected '%s' in output (got: %s)",
				check.desc, check.pattern, rdfTruncate(output, 500))
		}
	}

	// Verify schema data is present
	if !strings.Contains(output, s.theoryID) {
		return fmt.Errorf("RDF output does not contain schema data for %s (got: %s)",
			s.theoryID, rdfTruncate(output, 500))
	}

	result.SetDetail("rdf_verified", true)
	return nil
}

func rdfTruncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
