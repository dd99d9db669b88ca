package toolchain

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"keygrip/internal/catalog"
	"keygrip/internal/logging"
	"keygrip/internal/services"
)

const (
	defaultProbeTimeout  = 10 * time.Second
	defaultVerifyTimeout = 30 * time.Second
)

// Options carries the configuration the toolchain probe needs.
type Options struct {
	// Binary is the configured toolchain binary, either a bare name or a path.
	Binary string
	// CompanionBinary is the encode tool whose sidecar toolchain copy takes
	// precedence over everything else during location.
	CompanionBinary string
	// ExtraSearchDirs lists additional directories to scan for the binary.
	ExtraSearchDirs []string
	// Timeout bounds each probe invocation (version and encoder listing).
	Timeout time.Duration
	// VerifyTimeout bounds functional verification encodes.
	VerifyTimeout time.Duration
}

// Option adjusts probe construction.
type Option func(*Probe)

// WithRunner replaces the process runner, primarily for tests.
func WithRunner(runner Runner) Option {
	return func(p *Probe) {
		if runner != nil {
			p.runner = runner
		}
	}
}

// Probe locates the media toolchain and interrogates its encoder support.
type Probe struct {
	logger *slog.Logger
	runner Runner
	opts   Options
}

// New constructs a toolchain probe.
func New(logger *slog.Logger, opts Options, optFns ...Option) *Probe {
	if opts.Binary == "" {
		opts.Binary = "ffmpeg"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultProbeTimeout
	}
	if opts.VerifyTimeout <= 0 {
		opts.VerifyTimeout = defaultVerifyTimeout
	}
	probe := &Probe{
		logger: logging.NewComponentLogger(logger, "toolchain"),
		runner: NewRunner(),
		opts:   opts,
	}
	for _, fn := range optFns {
		fn(probe)
	}
	return probe
}

// ListEncoders captures the toolchain's encoder listing as raw text.
func (p *Probe) ListEncoders(ctx context.Context, binary string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	output, err := p.runner.Run(ctx, binary, "-hide_banner", "-encoders")
	if err != nil {
		detail := summarizeOutput(output)
		return "", services.Wrap(services.ErrExternalTool, "toolchain", "list-encoders", detail, err)
	}
	return string(output), nil
}

// DetectEncoders stamps availability onto the supplied catalog based on one
// encoder listing. Presence is a substring match against the listing text.
// Intel encoders additionally require the host CPU to be Intel, because the
// toolchain advertises them even on machines that cannot drive Quick Sync.
//
// A missing toolchain or a failed listing is not an error: every entry keeps
// its zero availability and the caller degrades to software encoding.
func (p *Probe) DetectEncoders(ctx context.Context, binary string, cat map[string]*catalog.Descriptor, isIntelCPU bool) map[string]*catalog.Descriptor {
	if strings.TrimSpace(binary) == "" {
		p.logger.Warn("toolchain unavailable, marking all encoders unavailable")
		return cat
	}

	listing, err := p.ListEncoders(ctx, binary)
	if err != nil {
		p.logger.Warn("encoder listing failed, marking all encoders unavailable", logging.Error(err))
		return cat
	}

	available := 0
	for _, desc := range cat {
		present := strings.Contains(listing, desc.Key)
		if desc.Vendor == catalog.VendorIntel {
			desc.Available = present && isIntelCPU
		} else {
			desc.Available = present
		}
		if desc.Available {
			available++
		}
	}
	p.logger.Debug("encoder detection complete",
		logging.String("binary", binary),
		logging.Int("available", available),
		logging.Int("total", len(cat)))
	return cat
}

// HardwareEncodeFunctional reports whether at least one of the vendor's
// baseline codecs appears in a fresh encoder listing. This is deliberately
// narrower than DetectEncoders: a single coarse flag for the primary
// accelerator, checked independently of the full catalog sweep.
func (p *Probe) HardwareEncodeFunctional(ctx context.Context, binary string, vendor catalog.Vendor) bool {
	if strings.TrimSpace(binary) == "" {
		return false
	}
	keys := catalog.BaselineKeys(vendor)
	if len(keys) == 0 {
		return false
	}

	listing, err := p.ListEncoders(ctx, binary)
	if err != nil {
		p.logger.Debug("functional check listing failed", logging.Error(err))
		return false
	}
	for _, key := range keys {
		if strings.Contains(listing, key) {
			return true
		}
	}
	return false
}

// summarizeOutput trims command output down to a single loggable line.
func summarizeOutput(output []byte) string {
	text := strings.TrimSpace(string(output))
	if text == "" {
		return "command failed"
	}
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
	}
	const limit = 200
	if len(text) > limit {
		text = text[:limit]
	}
	return text
}
