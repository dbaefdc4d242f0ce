// Package theoryingester provides the input component that stages theory
// bundle files from the corpus for schema assembly.
package theoryingester

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/google/uuid"
	"github.com/schemaworks/theoria/staging"
)

// Component implements the theory-ingester input component.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger
	corpus     *Corpus
	watcher    *CorpusWatcher

	// Lifecycle management
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics
	bundlesStaged  atomic.Int64
	errors         atomic.Int64
	lastActivityMu sync.RWMutex
	lastActivity   time.Time
}

// NewComponent creates a new theory-ingester input component.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Use default config if ports not set
	if config.Ports == nil {
		config = DefaultConfig()
		// Re-unmarshal to get user-provided values
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Component{
		name:       "theory-ingester",
		config:     config,
		natsClient: deps.NATSClient,
		logger:     deps.GetLogger(),
		corpus:     NewCorpus(resolveCorpusRoot(config.CorpusRoot), config.Include, config.Exclude),
	}

	return c, nil
}

// resolveCorpusRoot resolves the corpus root directory. Priority: explicit
// config value, THEORIA_CORPUS_ROOT environment variable, working directory.
func resolveCorpusRoot(configured string) string {
	if configured != "" && configured != "." {
		return configured
	}
	if env := os.Getenv("THEORIA_CORPUS_ROOT"); env != "" {
		return env
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return configured
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	return nil
}

// Start begins staging theory bundles.
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
	// Mark as starting immediately to prevent concurrent starts
	c.running = true
	c.startTime = time.Now()
	c.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	// Start the file watcher before the scan so the scan can prime its
	// hash cache and suppress duplicate events for files it already staged.
	if c.config.WatchConfig.Enabled {
		watcher, err := NewCorpusWatcher(c.config.WatchConfig, c.corpus, c.logger)
		if err != nil {
			c.logger.Error("Failed to create corpus watcher", "error", err)
		} else {
			c.watcher = watcher
			if err := watcher.Start(runCtx); err != nil {
				c.logger.Error("Failed to start corpus watcher", "error", err)
			} else {
				go c.processWatchEvents(runCtx)
			}
		}
	}

	// Stage the existing corpus in the background
	if c.config.ScanOnStart {
		go c.scanCorpus(runCtx)
	}

	c.logger.Info("Theory ingester started",
		"corpus_root", c.corpus.Root(),
		"scan_on_start", c.config.ScanOnStart,
		"watching", c.config.WatchConfig.Enabled)

	return nil
}

// scanCorpus stages every bundle file currently in the corpus.
func (c *Component) scanCorpus(ctx context.Context) {
	paths, err := c.corpus.Resolve()
	if err != nil {
		c.logger.Error("Corpus scan failed", "error", err)
		c.errors.Add(1)
		return
	}

	if len(paths) == 0 {
		c.logger.Info("No theory bundles found in corpus", "root", c.corpus.Root())
		return
	}

	staged := 0
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := c.ingestBundle(ctx, path); err != nil {
			c.logger.Error("Failed to stage bundle",
				"path", c.corpus.Rel(path),
				"error", err)
			c.errors.Add(1)
			continue
		}
		staged++
	}

	c.logger.Info("Corpus scan complete",
		"found", len(paths),
		"staged", staged)
}

// ingestBundle reads, parses, and publishes one bundle file.
func (c *Component) ingestBundle(ctx context.Context, absPath string) error {
	c.updateLastActivity()

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read bundle: %w", err)
	}

	relPath := c.corpus.Rel(absPath)

	if c.watcher != nil {
		c.watcher.SetHash(relPath, contentHash(data))
	}

	bundle, err := staging.ParseBundle(data)
	if err != nil {
		return fmt.Errorf("parse bundle: %w", err)
	}

	payload := &staging.StagedTheoryPayload{
		IngestID: uuid.New().String(),
		Source:   relPath,
		StagedAt: time.Now().UTC(),
		Bundle:   *bundle,
	}

	if err := staging.PublishStaged(ctx, c.natsClient, payload); err != nil {
		return fmt.Errorf("publish staged bundle: %w", err)
	}

	c.bundlesStaged.Add(1)
	c.logger.Info("Theory bundle staged",
		"theory_id", bundle.TheoryID,
		"source", relPath,
		"ingest_id", payload.IngestID)

	return nil
}

// processWatchEvents handles corpus watch events and re-stages bundles.
func (c *Component) processWatchEvents(ctx context.Context) {
	if c.watcher == nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-c.watcher.Events():
			if !ok {
				return
			}
			c.handleWatchEvent(ctx, event)
		}
	}
}

// handleWatchEvent processes a single corpus watch event.
func (c *Component) handleWatchEvent(ctx context.Context, event WatchEvent) {
	c.updateLastActivity()

	switch event.Operation {
	case WatchOpCreate, WatchOpModify:
		c.logger.Info("Bundle file changed, staging",
			"path", event.Path,
			"operation", event.Operation)

		if err := c.ingestBundle(ctx, event.AbsPath); err != nil {
			c.logger.Error("Failed to stage watched bundle",
				"path", event.Path,
				"error", err)
			c.errors.Add(1)
		}

	case WatchOpDelete:
		// A removed bundle does not retract its published schema.
		c.logger.Info("Bundle file deleted", "path", event.Path)
	}
}

// updateLastActivity safely updates the last activity timestamp.
func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

// getLastActivity safely retrieves the last activity timestamp.
func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}

// Stop gracefully stops the component within the given timeout.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	// Stop watcher if running
	if c.watcher != nil {
		if err := c.watcher.Stop(); err != nil {
			c.logger.Error("Failed to stop corpus watcher", "error", err)
		}
	}

	c.running = false
	c.logger.Info("Theory ingester stopped",
		"bundles_staged", c.bundlesStaged.Load(),
		"errors", c.errors.Load())

	return nil
}

// Discoverable interface implementation

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "theory-ingester",
		Type:        "processor",
		Description: "Watches the theory corpus and stages bundle files for schema assembly",
		Version:     "0.1.0",
	}
}

// InputPorts returns configured input port definitions.
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

// OutputPorts returns configured output port definitions.
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

// buildPort creates a component.Port from a PortDefinition.
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
	return theoryIngesterSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.errors.Load()),
		Uptime:     time.Since(startTime),
		Status:     c.getStatusString(running),
	}
}

// getStatusString returns a status string based on running state.
func (c *Component) getStatusString(running bool) string {
	if running {
		return "running"
	}
	return "stopped"
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
