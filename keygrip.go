package keygrip

import (
	"context"
	"log/slog"

	"keygrip/internal/capability"
	"keygrip/internal/catalog"
	"keygrip/internal/config"
	"keygrip/internal/hwinfo"
	"keygrip/internal/logging"
	"keygrip/internal/selection"
	"keygrip/internal/toolchain"
)

// Service is the entry point for capability queries: cached hardware
// detection, encoder selection, and render-profile building. One Service per
// process is the expected shape; its snapshot cache is safe for concurrent
// use.
type Service struct {
	cfg       *config.Config
	logger    *slog.Logger
	hardware  *hwinfo.Prober
	toolchain *toolchain.Probe
	cache     *capability.Cache
}

// Option adjusts service construction.
type Option func(*settings)

type settings struct {
	detector  capability.SnapshotDetector
	cacheOpts []capability.CacheOption
}

// WithDetector replaces the detection pass, primarily for tests.
func WithDetector(detector capability.SnapshotDetector) Option {
	return func(s *settings) {
		if detector != nil {
			s.detector = detector
		}
	}
}

// WithPlatform overrides the operating system the platform gate evaluates.
func WithPlatform(goos string) Option {
	return func(s *settings) {
		s.cacheOpts = append(s.cacheOpts, capability.WithPlatform(goos))
	}
}

// New wires a service from configuration. A nil config uses the defaults; a
// nil logger discards log output.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Service {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	svc := &Service{
		cfg:      cfg,
		logger:   logger,
		hardware: hwinfo.NewProber(logger, cfg.ProbeTimeout(), cfg.Probe.PreferredGPUVendor),
		toolchain: toolchain.New(logger, toolchain.Options{
			Binary:          cfg.FFmpeg.Binary,
			CompanionBinary: cfg.FFmpeg.CompanionBinary,
			ExtraSearchDirs: cfg.FFmpeg.ExtraSearchDirs,
			Timeout:         cfg.ProbeTimeout(),
			VerifyTimeout:   cfg.VerifyTimeout(),
		}),
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	detector := s.detector
	if detector == nil {
		detector = capability.NewDetector(logger, svc.hardware, svc.toolchain)
	}
	svc.cache = capability.NewCache(logger, detector, s.cacheOpts...)
	return svc
}

// GetCapabilities returns the host capability snapshot, running detection on
// first use. The only error is the platform gate; on supported platforms a
// snapshot always comes back, possibly degraded.
func (s *Service) GetCapabilities(ctx context.Context) (*capability.Snapshot, error) {
	return s.cache.Get(ctx)
}

// GetBestEncoder returns the highest-priority available encoder for a codec
// family. The boolean is false when nothing in the family is available;
// callers fall back to software encoding in that case.
func (s *Service) GetBestEncoder(ctx context.Context, family string) (catalog.Descriptor, bool, error) {
	snapshot, err := s.cache.Get(ctx)
	if err != nil {
		return catalog.Descriptor{}, false, err
	}
	desc, ok := selection.Best(snapshot, family)
	return desc, ok, nil
}

// GetProfile maps a tier onto concrete render settings for this host. It
// never fails: when capabilities cannot be resolved the software defaults
// apply.
func (s *Service) GetProfile(ctx context.Context, tier selection.Tier, frameRate int) selection.RenderSettings {
	snapshot, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("capabilities unavailable, building software profile", logging.Error(err))
		snapshot = nil
	}
	return selection.Build(snapshot, tier, frameRate)
}

// Invalidate discards the cached snapshot so the next query re-detects.
// Useful after driver upgrades or adapter hotplug.
func (s *Service) Invalidate() {
	s.cache.Invalidate()
}

// Toolchain exposes the toolchain probe for diagnostics commands.
func (s *Service) Toolchain() *toolchain.Probe {
	return s.toolchain
}

// Config returns the effective configuration the service was built with.
func (s *Service) Config() *config.Config {
	return s.cfg
}
