package testsupport

import (
	"path/filepath"
	"testing"

	"sift/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WatchDir = filepath.Join(base, "inbox")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Watch.DebounceWindowMS = 50
	cfg.Readiness.Attempts = 3
	cfg.Readiness.DelayMS = 5
	cfg.Retry.DelaySeconds = 1
	cfg.Retry.MaxAttempts = 3

	WriteDir(t, cfg.Paths.WatchDir)

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithExtensions overrides the watch-set on the test config.
func WithExtensions(exts ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Watch.Extensions = exts
	}
}

// WithStaticMap overrides the static routing map on the test config.
func WithStaticMap(m map[string]string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Routing.StaticMap = m
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WatchDir)
}
