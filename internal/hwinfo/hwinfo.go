package hwinfo

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"keygrip/internal/logging"
)

const (
	unknownCPU = "Unknown CPU"
	unknownGPU = "Unknown GPU"
)

// Identity is the host hardware identity resolved by one probe pass. Every
// field carries a usable value even when the underlying inventory sources
// fail; Degraded names the sources that fell back to defaults.
type Identity struct {
	CPUName      string
	CPUCores     int
	IsIntelCPU   bool
	GPUs         []string
	PrimaryGPU   string
	HasNVIDIAGPU bool
	Degraded     []string
}

// CPUInfo is a processor inventory record.
type CPUInfo struct {
	VendorID  string
	ModelName string
}

// RenderNode describes a DRM render device and whether this process may use it.
type RenderNode struct {
	Path       string
	Accessible bool
}

// Runner abstracts command execution for testability.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Option configures the prober.
type Option func(*Prober)

// WithRunner injects a custom runner (primarily for tests).
func WithRunner(runner Runner) Option {
	return func(p *Prober) {
		if runner != nil {
			p.runner = runner
		}
	}
}

// WithCPUInventory replaces the OS processor inventory source.
func WithCPUInventory(fn func(context.Context) (CPUInfo, error)) Option {
	return func(p *Prober) {
		if fn != nil {
			p.cpuInventory = fn
		}
	}
}

// WithGPUInventory replaces the OS display-adapter inventory source.
func WithGPUInventory(fn func(context.Context) ([]string, error)) Option {
	return func(p *Prober) {
		if fn != nil {
			p.gpuInventory = fn
		}
	}
}

// Prober resolves CPU and GPU identity from the OS hardware inventory with a
// vendor CLI fallback for accelerator names.
type Prober struct {
	logger       *slog.Logger
	runner       Runner
	timeout      time.Duration
	preferVendor string
	cpuInventory func(context.Context) (CPUInfo, error)
	gpuInventory func(context.Context) ([]string, error)
}

// NewProber constructs a Prober. preferVendor is the adapter vendor substring
// preferred when several GPUs are installed.
func NewProber(logger *slog.Logger, timeout time.Duration, preferVendor string, opts ...Option) *Prober {
	p := &Prober{
		logger:       logging.NewComponentLogger(logger, "hwinfo"),
		runner:       execRunner{},
		timeout:      timeout,
		preferVendor: preferVendor,
		cpuInventory: cpuInventory,
		gpuInventory: gpuInventory,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Identify resolves host identity. It never returns an error: inventory
// failures degrade the affected fields to their documented defaults.
func (p *Prober) Identify(ctx context.Context) Identity {
	ident := Identity{
		CPUName:    unknownCPU,
		CPUCores:   runtime.NumCPU(),
		PrimaryGPU: unknownGPU,
	}

	cpuCtx, cancel := context.WithTimeout(ctx, p.timeout)
	info, err := p.cpuInventory(cpuCtx)
	cancel()
	switch {
	case err != nil:
		p.logger.Debug("cpu inventory failed", logging.Error(err))
		ident.Degraded = append(ident.Degraded, "cpu-inventory")
	case strings.TrimSpace(info.ModelName) == "" && strings.TrimSpace(info.VendorID) == "":
		p.logger.Debug("cpu inventory returned no identity")
		ident.Degraded = append(ident.Degraded, "cpu-inventory")
	default:
		if name := strings.TrimSpace(info.ModelName); name != "" {
			ident.CPUName = name
		}
		ident.IsIntelCPU = matchesIntel(info.VendorID, info.ModelName)
	}

	gpus := p.enumerateGPUs(ctx, &ident)
	if len(gpus) == 0 {
		gpus = []string{unknownGPU}
	}
	ident.GPUs = gpus
	ident.PrimaryGPU = selectPrimary(gpus, p.preferVendor)
	ident.HasNVIDIAGPU = containsVendor(gpus, "nvidia")

	return ident
}

func (p *Prober) enumerateGPUs(ctx context.Context, ident *Identity) []string {
	gpuCtx, cancel := context.WithTimeout(ctx, p.timeout)
	gpus, err := p.gpuInventory(gpuCtx)
	cancel()
	if err == nil && len(gpus) > 0 {
		return gpus
	}
	if err != nil {
		p.logger.Debug("gpu inventory failed", logging.Error(err))
	} else {
		p.logger.Debug("gpu inventory returned no adapters")
	}
	ident.Degraded = append(ident.Degraded, "gpu-inventory")

	names, smiErr := p.acceleratorNamesFromSMI(ctx)
	if smiErr != nil {
		p.logger.Debug("nvidia-smi fallback failed", logging.Error(smiErr))
		ident.Degraded = append(ident.Degraded, "nvidia-smi")
		return nil
	}
	return names
}

// matchesIntel checks the CPU manufacturer field first and the model string
// as a secondary signal, both case-insensitively.
func matchesIntel(vendorID, model string) bool {
	if strings.Contains(strings.ToLower(vendorID), "intel") {
		return true
	}
	return strings.Contains(strings.ToLower(model), "intel")
}

func selectPrimary(gpus []string, prefer string) string {
	prefer = strings.ToLower(strings.TrimSpace(prefer))
	if prefer != "" {
		for _, name := range gpus {
			if strings.Contains(strings.ToLower(name), prefer) {
				return name
			}
		}
	}
	if len(gpus) > 0 {
		return gpus[0]
	}
	return unknownGPU
}

func containsVendor(gpus []string, vendor string) bool {
	for _, name := range gpus {
		if strings.Contains(strings.ToLower(name), vendor) {
			return true
		}
	}
	return false
}
