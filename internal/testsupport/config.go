package testsupport

import (
	"testing"

	"seekbar/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with a unique temp log directory per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.Paths.LogDir = t.TempDir()
	cfgVal.Paths.APIBind = "127.0.0.1:0"

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIToken sets the HTTP API bearer token on the test config.
func WithAPIToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.APIToken = token
	}
}

// WithoutAPI clears the bind address so the daemon skips the HTTP API.
func WithoutAPI() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.APIBind = ""
	}
}

// WithBridgeEnabled toggles the page bridge endpoint on the test config.
func WithBridgeEnabled(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Bridge.Enabled = enabled
	}
}

// WithPlayerSteps overrides the seek and volume step sizes.
func WithPlayerSteps(seekSeconds, volumeStep float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Player.SeekStepSeconds = seekSeconds
		b.cfg.Player.VolumeStep = volumeStep
	}
}
