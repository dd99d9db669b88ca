package testsupport

import (
	"path/filepath"
	"testing"

	"keygrip/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config wired for hermetic tests: short probe timeouts,
// quiet logging, and a companion binary name that never resolves on a real
// host. Options customize it further.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.FFmpeg.CompanionBinary = "keygrip-test-no-such-tool"
	cfgVal.Probe.TimeoutSeconds = 5
	cfgVal.Probe.VerifyTimeoutSeconds = 5
	cfgVal.Logging.Level = "error"
	cfgVal.Logging.Format = "json"

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

// WithToolchainBinary points the config at an explicit toolchain path.
func WithToolchainBinary(path string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.FFmpeg.Binary = path
	}
}

// WithScriptedToolchain writes a fake toolchain that reports the given
// encoder listing and points the config's binary at it, so locate resolves
// without consulting PATH or the well-known directories.
func WithScriptedToolchain(listing string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.FFmpeg.Binary = WriteToolchain(b.t, filepath.Join(b.baseDir, "bin"), listing)
	}
}
