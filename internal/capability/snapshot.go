package capability

import (
	"time"

	"keygrip/internal/catalog"
)

// Snapshot is the immutable result of one full detection pass. Once a
// snapshot is published it is shared across goroutines and must never be
// mutated; a refresh builds a brand-new value.
type Snapshot struct {
	// ProbeID uniquely identifies the detection pass that built this
	// snapshot, for correlating log lines and diagnostics.
	ProbeID    string
	DetectedAt time.Time

	CPUName      string
	CPUCoreCount int
	// IsIntelCPU gates Quick Sync eligibility.
	IsIntelCPU bool

	GPUs         []string
	PrimaryGPU   string
	HasNVIDIAGPU bool

	// HardwareEncode is the coarse flag: at least one baseline codec of the
	// primary accelerator vendor shows up in the toolchain's encoder listing.
	HardwareEncode bool
	// ToolchainPath is the resolved toolchain binary, empty when none was
	// found.
	ToolchainPath string

	// Encoders maps encoder key to its descriptor with availability stamped.
	Encoders map[string]catalog.Descriptor

	// Degraded names the sub-probes that fell back to defaults during
	// detection. Empty means every source answered.
	Degraded []string
}

// Encoder looks up one descriptor by encoder key.
func (s *Snapshot) Encoder(key string) (catalog.Descriptor, bool) {
	desc, ok := s.Encoders[key]
	return desc, ok
}

// AvailableCount reports how many catalog encoders the toolchain supports on
// this host.
func (s *Snapshot) AvailableCount() int {
	count := 0
	for _, desc := range s.Encoders {
		if desc.Available {
			count++
		}
	}
	return count
}

// IsDegraded reports whether any detection source fell back to defaults.
func (s *Snapshot) IsDegraded() bool {
	return len(s.Degraded) > 0
}
