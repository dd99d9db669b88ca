package capability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"keygrip/internal/catalog"
	"keygrip/internal/hwinfo"
	"keygrip/internal/logging"
)

// HardwareProber resolves host CPU and display-adapter identity.
type HardwareProber interface {
	Identify(ctx context.Context) hwinfo.Identity
}

// ToolchainProber locates the media toolchain and reports encoder support.
type ToolchainProber interface {
	Locate(ctx context.Context) (string, error)
	DetectEncoders(ctx context.Context, binary string, cat map[string]*catalog.Descriptor, isIntelCPU bool) map[string]*catalog.Descriptor
	HardwareEncodeFunctional(ctx context.Context, binary string, vendor catalog.Vendor) bool
}

// Detector runs one full detection pass: host identity, toolchain location,
// encoder availability, and the coarse hardware-encode flag.
type Detector struct {
	logger   *slog.Logger
	hardware HardwareProber
	tool     ToolchainProber
}

// NewDetector wires the detection pass from its two probes.
func NewDetector(logger *slog.Logger, hardware HardwareProber, tool ToolchainProber) *Detector {
	return &Detector{
		logger:   logging.NewComponentLogger(logger, "capability"),
		hardware: hardware,
		tool:     tool,
	}
}

// Detect builds a snapshot of everything this host can encode. It never
// fails: every sub-probe degrades to conservative defaults and records
// itself in the snapshot's Degraded list instead of surfacing an error.
func (d *Detector) Detect(ctx context.Context) *Snapshot {
	started := time.Now()

	identity := d.hardware.Identify(ctx)
	degraded := append([]string(nil), identity.Degraded...)

	binary, err := d.tool.Locate(ctx)
	if err != nil {
		d.logger.Warn("toolchain not located, encoders will be unavailable", logging.Error(err))
		degraded = append(degraded, "toolchain")
		binary = ""
	}

	detected := d.tool.DetectEncoders(ctx, binary, catalog.Catalog(), identity.IsIntelCPU)
	encoders := make(map[string]catalog.Descriptor, len(detected))
	for key, desc := range detected {
		encoders[key] = *desc
	}

	hardwareEncode := false
	if vendor, ok := catalog.VendorFromAdapterName(identity.PrimaryGPU); ok {
		hardwareEncode = d.tool.HardwareEncodeFunctional(ctx, binary, vendor)
	}

	snapshot := &Snapshot{
		ProbeID:        uuid.NewString(),
		DetectedAt:     time.Now().UTC(),
		CPUName:        identity.CPUName,
		CPUCoreCount:   identity.CPUCores,
		IsIntelCPU:     identity.IsIntelCPU,
		GPUs:           identity.GPUs,
		PrimaryGPU:     identity.PrimaryGPU,
		HasNVIDIAGPU:   identity.HasNVIDIAGPU,
		HardwareEncode: hardwareEncode,
		ToolchainPath:  binary,
		Encoders:       encoders,
		Degraded:       degraded,
	}

	d.logger.Info("capability detection complete",
		logging.String(logging.FieldProbeID, snapshot.ProbeID),
		logging.String("cpu", snapshot.CPUName),
		logging.Int("cores", snapshot.CPUCoreCount),
		logging.String("primary_gpu", snapshot.PrimaryGPU),
		logging.Bool("hardware_encode", snapshot.HardwareEncode),
		logging.Int("encoders_available", snapshot.AvailableCount()),
		logging.Int("degraded_sources", len(snapshot.Degraded)),
		logging.Duration("elapsed", time.Since(started)))
	return snapshot
}
