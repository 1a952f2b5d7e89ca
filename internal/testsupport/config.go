package testsupport

import (
	"path/filepath"
	"testing"

	"speakersplit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithDialect selects a built-in annotation dialect.
func WithDialect(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Annotation.Dialect = name
	}
}

// WithFade overrides the fade length.
func WithFade(seconds float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Reconstruction.FadeSeconds = seconds
	}
}

// WithoutHistory disables the run ledger.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
