package testsupport

import (
	"path/filepath"
	"testing"

	"diarbench/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test
// and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReportDir = filepath.Join(base, "reports")
	cfg.Manifest.Path = filepath.Join(base, "data.csv")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithSidecarURL points both sidecar clients at the given base URL.
func WithSidecarURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Diarization.BaseURL = url
		cfg.Scoring.BaseURL = url
	}
}

// WithAudioQuality enables the audio-quality diagnostic step.
func WithAudioQuality() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Diagnostics.AudioQuality = true
	}
}
