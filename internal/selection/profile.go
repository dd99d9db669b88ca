package selection

import (
	"strings"

	"keygrip/internal/capability"
	"keygrip/internal/catalog"
)

// Tier names one point on the speed/fidelity trade-off.
type Tier string

const (
	TierFast        Tier = "fast"
	TierBalanced    Tier = "balanced"
	TierHighQuality Tier = "high-quality"
)

// Tiers lists the known tiers from fastest to highest fidelity.
func Tiers() []Tier {
	return []Tier{TierFast, TierBalanced, TierHighQuality}
}

// ParseTier resolves a tier name case-insensitively.
func ParseTier(value string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "fast":
		return TierFast, true
	case "balanced":
		return TierBalanced, true
	case "high-quality", "highquality", "hq":
		return TierHighQuality, true
	default:
		return "", false
	}
}

func normalizeTier(tier Tier) Tier {
	switch tier {
	case TierFast, TierBalanced, TierHighQuality:
		return tier
	default:
		return TierBalanced
	}
}

// RenderSettings is one concrete encode configuration. Optional string
// fields are empty when they do not apply to the chosen backend.
type RenderSettings struct {
	FrameRate           int    `json:"frame_rate"`
	HardwareAccelerated bool   `json:"hardware_accelerated"`
	VideoCodec          string `json:"video_codec"`
	HardwarePreset      string `json:"hardware_preset,omitempty"`
	SoftwarePreset      string `json:"software_preset,omitempty"`
	RateControlMode     string `json:"rate_control_mode,omitempty"`
	QualityLevel        int    `json:"quality_level"`
}

// softwareFallbackCodec is the encoder used whenever hardware encoding is
// off the table. libx265 ships in every toolchain build this project
// targets.
const softwareFallbackCodec = "libx265"

// Preset names differ per vendor; quality values are the shared constant
// currency. Lower quality values mean higher fidelity, so high-quality
// tiers use the smallest numbers.
var (
	hardwarePresets = map[catalog.Vendor]map[Tier]string{
		catalog.VendorNVIDIA: {TierFast: "p1", TierBalanced: "p4", TierHighQuality: "p7"},
		catalog.VendorIntel:  {TierFast: "veryfast", TierBalanced: "medium", TierHighQuality: "veryslow"},
		catalog.VendorAMD:    {TierFast: "speed", TierBalanced: "balanced", TierHighQuality: "quality"},
	}
	hardwareQuality = map[Tier]int{TierFast: 28, TierBalanced: 23, TierHighQuality: 19}

	softwarePresets = map[Tier]string{TierFast: "fast", TierBalanced: "medium", TierHighQuality: "slow"}
	softwareQuality = map[Tier]int{TierFast: 28, TierBalanced: 23, TierHighQuality: 20}
)

// Build maps a tier onto concrete render settings for this host. Hardware
// settings are produced only when the snapshot's coarse hardware-encode flag
// is on and an accelerated HEVC encoder is actually available; everything
// else falls back to software HEVC. Build is a pure function of its inputs
// with no failure path: a nil snapshot or unknown tier degrades to the
// software/balanced defaults.
func Build(snapshot *capability.Snapshot, tier Tier, frameRate int) RenderSettings {
	tier = normalizeTier(tier)
	if snapshot != nil && snapshot.HardwareEncode {
		if desc, ok := bestHardware(snapshot, "hevc"); ok {
			return hardwareSettings(desc, tier, frameRate)
		}
	}
	return softwareSettings(tier, frameRate)
}

func hardwareSettings(desc catalog.Descriptor, tier Tier, frameRate int) RenderSettings {
	settings := RenderSettings{
		FrameRate:           frameRate,
		HardwareAccelerated: true,
		VideoCodec:          desc.Key,
		HardwarePreset:      hardwarePresets[desc.Vendor][tier],
		QualityLevel:        hardwareQuality[tier],
	}
	// Variable bitrate buys fidelity on the slower tiers; the fast tier
	// keeps the encoder default to protect throughput.
	if tier != TierFast {
		settings.RateControlMode = "vbr"
	}
	return settings
}

func softwareSettings(tier Tier, frameRate int) RenderSettings {
	return RenderSettings{
		FrameRate:      frameRate,
		VideoCodec:     softwareFallbackCodec,
		SoftwarePreset: softwarePresets[tier],
		QualityLevel:   softwareQuality[tier],
	}
}
