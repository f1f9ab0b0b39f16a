package testsupport

import (
	"path/filepath"
	"testing"

	"reelid/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.TMDB.APIKey = "test"
	cfg.LLM.APIKey = "test"
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.History.Path = filepath.Join(base, "history.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithYouTubeKey sets the YouTube Data API key on the test config.
func WithYouTubeKey(key string) ConfigOption {
	return func(c *config.Config) {
		c.YouTube.APIKey = key
	}
}

// WithHistoryEnabled enables the history store on the test config.
func WithHistoryEnabled() ConfigOption {
	return func(c *config.Config) {
		c.History.Enabled = true
	}
}
