// Package schemaassembler provides the JetStream processor that turns staged
// theory bundles into assembled knowledge schemas. It consumes staged theory
// messages, runs the assembly engine against the universal term set, and
// publishes the resulting schema payload with its verdict.
package schemaassembler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/schemaworks/theoria/assemble"
	"github.com/schemaworks/theoria/graph"
	"github.com/schemaworks/theoria/staging"
	"github.com/schemaworks/theoria/storage"
	"github.com/schemaworks/theoria/universal"
)

// Component implements the schema-assembler processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger
	assembler  *assemble.Assembler
	store      *storage.Store

	// JetStream consumer state.
	consumer jetstream.Consumer

	// Lifecycle.
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics.
	theoriesAssembled atomic.Int64
	rejections        atomic.Int64
	cacheHits         atomic.Int64
	errorsCount       atomic.Int64
	lastActivityMu    sync.RWMutex
	lastActivity      time.Time
}

// NewComponent constructs a schema-assembler Component from raw JSON config
// and semstreams dependencies.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Apply defaults for any unset fields.
	defaults := DefaultConfig()
	if config.StreamName == "" {
		config.StreamName = defaults.StreamName
	}
	if config.ConsumerName == "" {
		config.ConsumerName = defaults.ConsumerName
	}
	if config.MergePolicy == "" {
		config.MergePolicy = defaults.MergePolicy
	}
	if config.UniversalVersion == "" {
		config.UniversalVersion = defaults.UniversalVersion
	}
	if config.RatioThreshold == 0 {
		config.RatioThreshold = defaults.RatioThreshold
	}
	if config.VarianceCeiling == 0 {
		config.VarianceCeiling = defaults.VarianceCeiling
	}
	if config.Ports == nil {
		config.Ports = defaults.Ports
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Component{
		name:       "schema-assembler",
		config:     config,
		natsClient: deps.NATSClient,
		logger:     deps.GetLogger(),
		assembler:  assemble.New(nil, config.GetOptions()),
	}, nil
}

// Initialize prepares the component for startup. It refuses to run against
// a universal set other than the pinned version: assembled schemas record
// the set version in their provenance, so a silent swap would poison the
// hash-keyed cache.
func (c *Component) Initialize() error {
	if c.config.UniversalVersion != "" && c.config.UniversalVersion != universal.DefaultVersion {
		return fmt.Errorf("universal set version mismatch: pinned %s, built-in set is %s",
			c.config.UniversalVersion, universal.DefaultVersion)
	}
	c.logger.Debug("Initialized schema-assembler",
		"stream", c.config.StreamName,
		"consumer", c.config.ConsumerName,
		"merge_policy", c.config.MergePolicy)
	return nil
}

// Start begins consuming staged theory messages from JetStream.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("component already running")
	}
	if c.natsClient == nil {
		c.mu.Unlock()
		return fmt.Errorf("NATS client required")
	}

	c.running = true
	c.startTime = time.Now()

	subCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	js, err := c.natsClient.JetStream()
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("get jetstream: %w", err)
	}

	c.store = storage.NewStore(js)

	stream, err := js.Stream(subCtx, c.config.StreamName)
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("get stream %s: %w", c.config.StreamName, err)
	}

	filterSubject := staging.SubjectTheoryStaged
	if c.config.Ports != nil && len(c.config.Ports.Inputs) > 0 {
		filterSubject = c.config.Ports.Inputs[0].Subject
	}

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		FilterSubject: filterSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       30 * time.Second,
		MaxDeliver:    3,
	}

	consumer, err := stream.CreateOrUpdateConsumer(subCtx, consumerConfig)
	if err != nil {
		c.rollbackStart(cancel)
		return fmt.Errorf("create consumer: %w", err)
	}
	c.consumer = consumer

	go c.consumeLoop(subCtx)

	c.logger.Info("schema-assembler started",
		"stream", c.config.StreamName,
		"consumer", c.config.ConsumerName,
		"subject", filterSubject)

	return nil
}

func (c *Component) rollbackStart(cancel context.CancelFunc) {
	c.mu.Lock()
	c.running = false
	c.cancel = nil
	c.mu.Unlock()
	cancel()
}

// consumeLoop fetches messages from the JetStream consumer in a tight loop
// until the context is cancelled.
func (c *Component) consumeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := c.consumer.Fetch(1, jetstream.FetchMaxWait(5*time.Second))
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Debug("Fetch timeout or error", "error", err)
			continue
		}

		for msg := range msgs.Messages() {
			c.handleMessage(ctx, msg)
		}

		if msgs.Error() != nil && msgs.Error() != context.DeadlineExceeded {
			c.logger.Warn("Message fetch error", "error", msgs.Error())
		}
	}
}

// handleMessage processes one staged theory bundle.
//
// Malformed payloads and transient failures are NAKed so JetStream retries
// up to MaxDeliver. A rejected assembly is data, not a consumer failure:
// its verdict is stored, published, and the message ACKed like any other.
func (c *Component) handleMessage(ctx context.Context, msg jetstream.Msg) {
	c.updateLastActivity()

	var baseMsg message.BaseMessage
	if err := json.Unmarshal(msg.Data(), &baseMsg); err != nil {
		c.errorsCount.Add(1)
		c.logger.Error("Failed to unmarshal staged message", "error", err, "subject", msg.Subject())
		if nakErr := msg.Nak(); nakErr != nil {
			c.logger.Warn("Failed to NAK message", "error", nakErr)
		}
		return
	}

	staged, ok := baseMsg.Payload().(*staging.StagedTheoryPayload)
	if !ok {
		c.errorsCount.Add(1)
		c.logger.Error("Unexpected payload type",
			"type", baseMsg.Type(),
			"subject", msg.Subject())
		if nakErr := msg.Nak(); nakErr != nil {
			c.logger.Warn("Failed to NAK message", "error", nakErr)
		}
		return
	}

	if err := staged.Validate(); err != nil {
		c.errorsCount.Add(1)
		c.logger.Error("Invalid staged payload", "error", err, "source", staged.Source)
		if nakErr := msg.Nak(); nakErr != nil {
			c.logger.Warn("Failed to NAK message", "error", nakErr)
		}
		return
	}

	hash := c.assembler.InputHash(staged.Bundle)

	// Cache check: identical inputs produce byte-identical schemas, so a
	// replay republishes the stored payload instead of assembling again.
	stored, err := c.store.GetResult(ctx, hash)
	if err == nil {
		if pubErr := graph.PublishSchema(ctx, c.natsClient, stored); pubErr != nil {
			c.errorsCount.Add(1)
			c.logger.Error("Failed to publish cached schema",
				"theory_id", stored.TheoryID,
				"error", pubErr)
			if nakErr := msg.Nak(); nakErr != nil {
				c.logger.Warn("Failed to NAK message", "error", nakErr)
			}
			return
		}
		c.cacheHits.Add(1)
		if ackErr := msg.Ack(); ackErr != nil {
			c.logger.Warn("Failed to ACK message", "error", ackErr)
		}
		c.logger.Debug("Republished cached schema",
			"theory_id", stored.TheoryID,
			"input_hash", hash)
		return
	}
	if !errors.Is(err, storage.ErrNotFound) {
		c.errorsCount.Add(1)
		c.logger.Error("Cache lookup failed", "error", err, "input_hash", hash)
		if nakErr := msg.Nak(); nakErr != nil {
			c.logger.Warn("Failed to NAK message", "error", nakErr)
		}
		return
	}

	result := c.assembler.Assemble(staged.Bundle)
	payload := graph.NewSchemaPayload(result, time.Now().UTC())

	// Store before publish: if the publish fails and the message redelivers,
	// the cache path above republishes this exact payload.
	entity, err := c.store.SaveResult(ctx, hash, payload)
	if err != nil {
		c.errorsCount.Add(1)
		c.logger.Error("Failed to store schema payload",
			"theory_id", result.TheoryID,
			"error", err)
		if nakErr := msg.Nak(); nakErr != nil {
			c.logger.Warn("Failed to NAK message", "error", nakErr)
		}
		return
	}

	if err := graph.PublishSchema(ctx, c.natsClient, payload); err != nil {
		c.errorsCount.Add(1)
		c.logger.Error("Failed to publish schema",
			"theory_id", result.TheoryID,
			"error", err)
		if nakErr := msg.Nak(); nakErr != nil {
			c.logger.Warn("Failed to NAK message", "error", nakErr)
		}
		return
	}

	if result.Ok() {
		c.theoriesAssembled.Add(1)
	} else {
		c.rejections.Add(1)
	}

	if ackErr := msg.Ack(); ackErr != nil {
		c.logger.Warn("Failed to ACK message", "error", ackErr)
	}

	c.logger.Info("Theory assembly completed",
		"theory_id", result.TheoryID,
		"status", result.Status,
		"diagnostics", len(result.Diagnostics),
		"source", staged.Source,
		"entity", entity.String())
}

// Stop gracefully stops the component.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}

	// Copy cancel function and clear state before releasing lock
	cancel := c.cancel
	c.running = false
	c.cancel = nil
	c.mu.Unlock()

	// Cancel context after releasing lock to avoid potential deadlock
	if cancel != nil {
		cancel()
	}

	c.logger.Info("schema-assembler stopped",
		"theories_assembled", c.theoriesAssembled.Load(),
		"rejections", c.rejections.Load(),
		"cache_hits", c.cacheHits.Load(),
		"errors", c.errorsCount.Load())

	return nil
}

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "schema-assembler",
		Type:        "processor",
		Description: "Assembles staged theory bundles into knowledge schemas",
		Version:     "0.1.0",
	}
}

// InputPorts returns the configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, portDef := range c.config.Ports.Inputs {
		ports[i] = buildPort(portDef, component.DirectionInput)
	}
	return ports
}

// OutputPorts returns the configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, portDef := range c.config.Ports.Outputs {
		ports[i] = buildPort(portDef, component.DirectionOutput)
	}
	return ports
}

// buildPort creates a component.Port from a PortDefinition, using JetStreamPort
// for jetstream-type ports and NATSPort for core NATS ports.
func buildPort(portDef component.PortDefinition, direction component.Direction) component.Port {
	port := component.Port{
		Name:        portDef.Name,
		Direction:   direction,
		Required:    portDef.Required,
		Description: portDef.Description,
	}
	if portDef.Type == "jetstream" {
		port.Config = component.JetStreamPort{
			StreamName: portDef.StreamName,
			Subjects:   []string{portDef.Subject},
		}
	} else {
		port.Config = component.NATSPort{
			Subject: portDef.Subject,
		}
	}
	return port
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return schemaAssemblerSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	status := "stopped"
	if running {
		status = "running"
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.errorsCount.Load()),
		Uptime:     time.Since(startTime),
		Status:     status,
	}
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{
		MessagesPerSecond: 0,
		BytesPerSecond:    0,
		ErrorRate:         0,
		LastActivity:      c.getLastActivity(),
	}
}

func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}
