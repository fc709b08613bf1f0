// Package testsupport provides shared helpers for pipet tests: temp-dir
// configs, seeded dataset trees, and bucket handles.
package testsupport

import (
	"path/filepath"
	"testing"

	"pipet/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DatasetDir = filepath.Join(base, "datasets")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Workflow.Workers = 2
	cfg.Workflow.ProgressPollInterval = 10

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithWorkers overrides the worker count on the test config.
func WithWorkers(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Workflow.Workers = n
	}
}

// WithVerbose enables the verbose echo on the test config.
func WithVerbose() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Logging.Verbose = true
	}
}
