// Package main provides the theoria binary entry point.
// Theoria assembles social theory bundles into structured knowledge
// schemas and runs the pipeline as semstreams components over NATS.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	// Register schema vocabulary via init()
	_ "github.com/schemaworks/theoria/vocabulary/schema"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/componentregistry"
	ssconfig "github.com/c360studio/semstreams/config"
	"github.com/c360studio/semstreams/metric"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/c360studio/semstreams/service"
	"github.com/c360studio/semstreams/types"
	"github.com/spf13/cobra"

	"github.com/schemaworks/theoria/config"
	schemaassembler "github.com/schemaworks/theoria/processor/schema-assembler"
	schemaexporter "github.com/schemaworks/theoria/processor/schema-exporter"
	theoryingester "github.com/schemaworks/theoria/processor/theory-ingester"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "theoria"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		corpusPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "theoria",
		Short: "Theory-to-schema assembly platform",
		Long: `Theoria assembles social theory bundles into structured knowledge
schemas and serves the pipeline as streaming components.

It provides:
- Corpus ingestion that stages theory bundle files
- Schema assembly with universal-definition injection and balance scoring
- RDF export of assembled schemas (Turtle, N-Triples, JSON-LD)

All components communicate via NATS using the semstreams framework.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, corpusPath, logLevel)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Theory corpus root (defaults to config or git root)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(assembleCmd())

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func run(configPath, corpusPath, logLevel string) error {
	// Print banner
	printBanner()

	// Load configuration
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flag overrides take precedence over config files
	if corpusPath != "" {
		cfg.Corpus.Root = corpusPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if cfg.Corpus.Root == "" {
		cfg.Corpus.Root = "."
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Configure logging
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Resolve corpus root
	absCorpusRoot, err := filepath.Abs(cfg.Corpus.Root)
	if err != nil {
		return fmt.Errorf("resolve corpus root: %w", err)
	}

	// Verify corpus root exists
	info, err := os.Stat(absCorpusRoot)
	if err != nil {
		return fmt.Errorf("stat corpus root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", absCorpusRoot)
	}

	// Build the platform configuration the component manager consumes
	platformCfg, err := buildPlatformConfig(cfg, absCorpusRoot)
	if err != nil {
		return fmt.Errorf("build platform config: %w", err)
	}
	if err := platformCfg.Validate(); err != nil {
		return fmt.Errorf("invalid platform configuration: %w", err)
	}

	// Connect to NATS
	ctx := context.Background()
	natsClient, err := connectToNATS(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer natsClient.Close(ctx)

	// Ensure JetStream streams exist
	if err := ensureStreams(ctx, platformCfg, natsClient, logger); err != nil {
		return err
	}

	slog.Info("Theoria ready",
		"version", Version,
		"corpus_root", absCorpusRoot)

	// Create remaining infrastructure
	metricsRegistry := metric.NewMetricsRegistry()
	platform := extractPlatformMeta(platformCfg)

	// Create and start config manager (required for component-manager to access component configs)
	configManager, err := ssconfig.NewConfigManager(platformCfg, natsClient, logger)
	if err != nil {
		return fmt.Errorf("create config manager: %w", err)
	}
	if err := configManager.Start(ctx); err != nil {
		return fmt.Errorf("start config manager: %w", err)
	}
	defer configManager.Stop(5 * time.Second)

	slog.Info("Platform identity configured",
		"org", platform.Org,
		"platform", platform.Platform)

	// Create and populate component registry
	componentRegistry := component.NewRegistry()

	// Register all semstreams components
	slog.Debug("Registering semstreams component factories")
	if err := componentregistry.Register(componentRegistry); err != nil {
		return fmt.Errorf("register semstreams components: %w", err)
	}

	// Register theoria pipeline components
	slog.Debug("Registering theoria component factories")
	if err := theoryingester.Register(componentRegistry); err != nil {
		return fmt.Errorf("register theory-ingester: %w", err)
	}

	if err := schemaassembler.Register(componentRegistry); err != nil {
		return fmt.Errorf("register schema-assembler: %w", err)
	}

	if err := schemaexporter.Register(componentRegistry); err != nil {
		return fmt.Errorf("register schema-exporter: %w", err)
	}

	factories := componentRegistry.ListFactories()
	slog.Info("Component factories registered", "count", len(factories))

	// Create service registry and manager (semstreams pattern)
	serviceRegistry := service.NewServiceRegistry()
	if err := service.RegisterAll(serviceRegistry); err != nil {
		return fmt.Errorf("register services: %w", err)
	}

	manager := service.NewServiceManager(serviceRegistry)
	ensureServiceManagerConfig(platformCfg)

	// Create service dependencies
	svcDeps := &service.Dependencies{
		NATSClient:        natsClient,
		MetricsRegistry:   metricsRegistry,
		Logger:            logger,
		Platform:          platform,
		Manager:           configManager,
		ComponentRegistry: componentRegistry,
	}

	// Configure and create services
	if err := configureAndCreateServices(platformCfg, manager, svcDeps); err != nil {
		return err
	}

	slog.Info("All services configured")

	// Setup signal handling
	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	// Start all services (includes HTTP server with health endpoints)
	slog.Info("Starting all services")
	if err := manager.StartAll(signalCtx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	slog.Info("All services started successfully")

	// Block until shutdown signal
	<-signalCtx.Done()
	slog.Info("Received shutdown signal")

	// Stop all services
	shutdownTimeout := 30 * time.Second
	if err := manager.StopAll(shutdownTimeout); err != nil {
		slog.Error("Error stopping services", "error", err)
	}

	slog.Info("Theoria shutdown complete")
	return nil
}

func printBanner() {
	fmt.Println("╔═══════════════════════════════════════════════╗")
	fmt.Println("║             Theoria v" + Version + "                     ║")
	fmt.Println("║      Theory-to-Schema Assembly                ║")
	fmt.Println("╚═══════════════════════════════════════════════╝")
}

// loadConfig loads the theoria configuration, either from an explicit file
// or through the layered loader (defaults, user config, project config).
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}

	return config.NewLoader(nil).Load()
}

// buildPlatformConfig maps the theoria configuration onto the semstreams
// platform config: one component entry per pipeline stage and the two
// streams the stages communicate over.
func buildPlatformConfig(cfg *config.Config, corpusRoot string) (*ssconfig.Config, error) {
	ingesterConfig := map[string]any{
		"corpus_root":   corpusRoot,
		"include":       cfg.Corpus.Include,
		"exclude":       cfg.Corpus.Exclude,
		"scan_on_start": true,
		"watch_config": map[string]any{
			"enabled": true,
		},
	}
	ingesterJSON, err := json.Marshal(ingesterConfig)
	if err != nil {
		return nil, fmt.Errorf("marshal theory-ingester config: %w", err)
	}

	assemblerConfig := map[string]any{
		"merge_policy":      cfg.Assembly.MergePolicy,
		"open_primitives":   cfg.Assembly.OpenPrimitives,
		"universal_version": cfg.Assembly.UniversalVersion,
		"ratio_threshold":   cfg.Balance.RatioThreshold,
		"variance_ceiling":  cfg.Balance.VarianceCeiling,
	}
	assemblerJSON, err := json.Marshal(assemblerConfig)
	if err != nil {
		return nil, fmt.Errorf("marshal schema-assembler config: %w", err)
	}

	exporterConfig := map[string]any{
		"format":   cfg.Export.Format,
		"profile":  cfg.Export.Profile,
		"base_iri": cfg.Export.BaseIRI,
	}
	exporterJSON, err := json.Marshal(exporterConfig)
	if err != nil {
		return nil, fmt.Errorf("marshal schema-exporter config: %w", err)
	}

	return &ssconfig.Config{
		Version: "1.0.0",
		Platform: ssconfig.PlatformConfig{
			Org:         "theoria",
			ID:          "theoria-local",
			Environment: "dev",
		},
		NATS: ssconfig.NATSConfig{
			URLs:          []string{cfg.NATS.URL},
			MaxReconnects: -1,
			ReconnectWait: 2 * time.Second,
			JetStream: ssconfig.JetStreamConfig{
				Enabled: true,
			},
		},
		Services: types.ServiceConfigs{},
		Components: ssconfig.ComponentConfigs{
			"theory-ingester": types.ComponentConfig{
				Name:    "theory-ingester",
				Type:    types.ComponentTypeProcessor,
				Enabled: true,
				Config:  ingesterJSON,
			},
			"schema-assembler": types.ComponentConfig{
				Name:    "schema-assembler",
				Type:    types.ComponentTypeProcessor,
				Enabled: true,
				Config:  assemblerJSON,
			},
			"schema-exporter": types.ComponentConfig{
				Name:    "schema-exporter",
				Type:    "output",
				Enabled: true,
				Config:  exporterJSON,
			},
		},
		Streams: ssconfig.StreamConfigs{
			"THEORY": ssconfig.StreamConfig{
				Subjects: []string{
					"theoria.theory.>",
				},
				MaxAge:   "168h",
				Storage:  "file",
				Replicas: 1,
			},
			"SCHEMA": ssconfig.StreamConfig{
				Subjects: []string{
					"theoria.schema.>",
				},
				MaxAge:   "168h",
				Storage:  "file",
				Replicas: 1,
			},
		},
	}, nil
}

func connectToNATS(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*natsclient.Client, error) {
	natsURL := "nats://localhost:4222"

	// Environment variable override takes precedence
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		natsURL = envURL
	} else if envURL := os.Getenv("THEORIA_NATS_URL"); envURL != "" {
		natsURL = envURL
	} else if cfg.NATS.URL != "" {
		natsURL = cfg.NATS.URL
	}

	logger.Info("Connecting to NATS", "url", natsURL)

	client, err := natsclient.NewClient(natsURL,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithCircuitBreakerThreshold(20), // Higher threshold for startup bursts
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, wrapNATSError(err, natsURL)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, wrapNATSError(err, natsURL)
	}

	logger.Info("Connected to NATS", "url", natsURL)
	return client, nil
}

// wrapNATSError provides helpful guidance when NATS connection fails.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	// Check for common connection errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

To start NATS:
  docker compose up -d nats

Or set NATS_URL environment variable to point to your NATS server.`, err, url)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}

func ensureStreams(ctx context.Context, cfg *ssconfig.Config, natsClient *natsclient.Client, logger *slog.Logger) error {
	logger.Debug("Creating JetStream streams")
	streamsManager := ssconfig.NewStreamsManager(natsClient, logger)

	if err := streamsManager.EnsureStreams(ctx, cfg); err != nil {
		return fmt.Errorf("ensure streams: %w", err)
	}

	logger.Debug("JetStream streams ready")
	return nil
}

func extractPlatformMeta(cfg *ssconfig.Config) types.PlatformMeta {
	platformID := cfg.Platform.InstanceID
	if platformID == "" {
		platformID = cfg.Platform.ID
	}

	return types.PlatformMeta{
		Org:      cfg.Platform.Org,
		Platform: platformID,
	}
}

// ensureServiceManagerConfig ensures service-manager config exists with defaults
func ensureServiceManagerConfig(cfg *ssconfig.Config) {
	if cfg.Services == nil {
		cfg.Services = make(types.ServiceConfigs)
	}

	if _, exists := cfg.Services["service-manager"]; !exists {
		slog.Debug("Adding default service-manager config")
		defaultConfig := map[string]any{
			"http_port":  8080,
			"swagger_ui": false,
			"server_info": map[string]string{
				"title":       "Theoria API",
				"description": "theory-to-schema assembly - corpus ingestion, assembly, RDF export",
				"version":     Version,
			},
		}
		defaultConfigJSON, _ := json.Marshal(defaultConfig)
		cfg.Services["service-manager"] = types.ServiceConfig{
			Name:    "service-manager",
			Enabled: true,
			Config:  defaultConfigJSON,
		}
		slog.Debug("Service-manager config added", "enabled", true)
	}
}

// configureAndCreateServices configures the manager and creates all services
func configureAndCreateServices(
	cfg *ssconfig.Config,
	manager *service.Manager,
	svcDeps *service.Dependencies,
) error {
	slog.Debug("Configuring Manager")
	if err := manager.ConfigureFromServices(cfg.Services, svcDeps); err != nil {
		return fmt.Errorf("configure service manager: %w", err)
	}

	slog.Debug("Creating services from config", "count", len(cfg.Services))
	for name, svcConfig := range cfg.Services {
		if name == "service-manager" {
			slog.Debug("Skipping service-manager (configured directly)")
			continue
		}

		if err := createServiceIfEnabled(manager, name, svcConfig, svcDeps); err != nil {
			return err
		}
	}

	return nil
}

// createServiceIfEnabled creates a service if it's enabled and registered
func createServiceIfEnabled(
	manager *service.Manager,
	name string,
	svcConfig types.ServiceConfig,
	svcDeps *service.Dependencies,
) error {
	slog.Debug("Processing service config", "key", name, "name", svcConfig.Name, "enabled", svcConfig.Enabled)

	if !svcConfig.Enabled {
		slog.Info("Service disabled in config", "name", name)
		return nil
	}

	if !manager.HasConstructor(name) {
		slog.Warn("Service configured but not registered", "key", name, "available_constructors", manager.ListConstructors())
		return nil
	}

	slog.Debug("Creating service", "name", name, "has_constructor", true)
	if _, err := manager.CreateService(name, svcConfig.Config, svcDeps); err != nil {
		return fmt.Errorf("create service %s: %w", name, err)
	}

	slog.Info("Created service", "name", name, "config_name", svcConfig.Name)
	return nil
}
