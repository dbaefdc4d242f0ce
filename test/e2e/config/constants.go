// Package config provides configuration constants for e2e tests.
package config

import "time"

// DefaultNATSURL is the NATS server the running theoria instance is
// expected on.
const DefaultNATSURL = "nats://localhost:4222"

// Default timeouts.
const (
	DefaultSetupTimeout = 60 * time.Second
	DefaultStageTimeout = 30 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
)

// E2ESource identifies messages published by the test runner.
const E2ESource = "e2e-runner"

// Pipeline streams the scenarios depend on. Their presence is the
// readiness probe: a missing stream means no theoria instance is running.
const (
	TheoryStream = "THEORY"
	SchemaStream = "SCHEMA"
)

// Config holds the e2e test configuration.
type Config struct {
	NATSURL      string        `json:"nats_url"`
	SetupTimeout time.Duration `json:"setup_timeout"`
	StageTimeout time.Duration `json:"stage_timeout"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		NATSURL:      DefaultNATSURL,
		SetupTimeout: DefaultSetupTimeout,
		StageTimeout: DefaultStageTimeout,
	}
}
