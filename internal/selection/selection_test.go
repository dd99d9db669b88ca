package selection_test

import (
	"slices"
	"testing"

	"keygrip/internal/capability"
	"keygrip/internal/catalog"
	"keygrip/internal/selection"
)

// snapshotWith builds a snapshot whose listed encoder keys are available.
func snapshotWith(hardwareEncode bool, available ...string) *capability.Snapshot {
	encoders := make(map[string]catalog.Descriptor)
	for key, desc := range catalog.Catalog() {
		copied := *desc
		copied.Available = slices.Contains(available, key)
		encoders[key] = copied
	}
	return &capability.Snapshot{
		HardwareEncode: hardwareEncode,
		Encoders:       encoders,
	}
}

func TestBestPrefersNVIDIA(t *testing.T) {
	snapshot := snapshotWith(true, "hevc_nvenc", "hevc_qsv", "hevc_amf", "libx265")

	best, ok := selection.Best(snapshot, "hevc")
	if !ok || best.Key != "hevc_nvenc" {
		t.Fatalf("Best = %q, %v; want hevc_nvenc", best.Key, ok)
	}
}

func TestBestResolvesTieByDeclarationOrder(t *testing.T) {
	snapshot := snapshotWith(true, "hevc_qsv", "hevc_amf", "libx265")
	best, ok := selection.Best(snapshot, "hevc")
	if !ok || best.Key != "hevc_qsv" {
		t.Fatalf("Best = %q, %v; want hevc_qsv ahead of hevc_amf", best.Key, ok)
	}

	snapshot = snapshotWith(true, "hevc_amf", "libx265")
	best, ok = selection.Best(snapshot, "hevc")
	if !ok || best.Key != "hevc_amf" {
		t.Fatalf("Best = %q, %v; want hevc_amf", best.Key, ok)
	}
}

func TestBestFallsToSoftware(t *testing.T) {
	snapshot := snapshotWith(false, "libx265")
	best, ok := selection.Best(snapshot, "hevc")
	if !ok || best.Key != "libx265" {
		t.Fatalf("Best = %q, %v; want libx265", best.Key, ok)
	}
}

func TestBestReportsNoMatch(t *testing.T) {
	snapshot := snapshotWith(false)
	if _, ok := selection.Best(snapshot, "hevc"); ok {
		t.Fatal("no encoder is available, want no match")
	}
	if _, ok := selection.Best(snapshot, "vp9"); ok {
		t.Fatal("unknown family, want no match")
	}
	if _, ok := selection.Best(nil, "hevc"); ok {
		t.Fatal("nil snapshot, want no match")
	}
}

func TestBuildHardwareTiers(t *testing.T) {
	snapshot := snapshotWith(true, "hevc_nvenc", "libx265")

	cases := []struct {
		tier        selection.Tier
		preset      string
		quality     int
		rateControl string
	}{
		{selection.TierFast, "p1", 28, ""},
		{selection.TierBalanced, "p4", 23, "vbr"},
		{selection.TierHighQuality, "p7", 19, "vbr"},
	}
	for _, tc := range cases {
		settings := selection.Build(snapshot, tc.tier, 60)
		if !settings.HardwareAccelerated {
			t.Fatalf("%s: expected hardware acceleration", tc.tier)
		}
		if settings.VideoCodec != "hevc_nvenc" {
			t.Fatalf("%s: codec = %q, want hevc_nvenc", tc.tier, settings.VideoCodec)
		}
		if settings.HardwarePreset != tc.preset {
			t.Errorf("%s: preset = %q, want %q", tc.tier, settings.HardwarePreset, tc.preset)
		}
		if settings.QualityLevel != tc.quality {
			t.Errorf("%s: quality = %d, want %d", tc.tier, settings.QualityLevel, tc.quality)
		}
		if settings.RateControlMode != tc.rateControl {
			t.Errorf("%s: rate control = %q, want %q", tc.tier, settings.RateControlMode, tc.rateControl)
		}
		if settings.SoftwarePreset != "" {
			t.Errorf("%s: software preset set on a hardware profile", tc.tier)
		}
		if settings.FrameRate != 60 {
			t.Errorf("%s: frame rate = %d, want passthrough 60", tc.tier, settings.FrameRate)
		}
	}
}

func TestBuildVendorPresetNames(t *testing.T) {
	cases := []struct {
		key     string
		presets [3]string
	}{
		{"hevc_qsv", [3]string{"veryfast", "medium", "veryslow"}},
		{"hevc_amf", [3]string{"speed", "balanced", "quality"}},
	}
	tiers := []selection.Tier{selection.TierFast, selection.TierBalanced, selection.TierHighQuality}
	for _, tc := range cases {
		snapshot := snapshotWith(true, tc.key, "libx265")
		for i, tier := range tiers {
			settings := selection.Build(snapshot, tier, 30)
			if settings.VideoCodec != tc.key {
				t.Fatalf("%s/%s: codec = %q", tc.key, tier, settings.VideoCodec)
			}
			if settings.HardwarePreset != tc.presets[i] {
				t.Errorf("%s/%s: preset = %q, want %q", tc.key, tier, settings.HardwarePreset, tc.presets[i])
			}
		}
	}
}

func TestBuildSoftwareFallback(t *testing.T) {
	snapshot := snapshotWith(false, "libx265")

	cases := []struct {
		tier    selection.Tier
		preset  string
		quality int
	}{
		{selection.TierFast, "fast", 28},
		{selection.TierBalanced, "medium", 23},
		{selection.TierHighQuality, "slow", 20},
	}
	for _, tc := range cases {
		settings := selection.Build(snapshot, tc.tier, 24)
		if settings.HardwareAccelerated {
			t.Fatalf("%s: hardware acceleration without hardware", tc.tier)
		}
		if settings.VideoCodec != "libx265" {
			t.Fatalf("%s: codec = %q, want libx265", tc.tier, settings.VideoCodec)
		}
		if settings.SoftwarePreset != tc.preset {
			t.Errorf("%s: preset = %q, want %q", tc.tier, settings.SoftwarePreset, tc.preset)
		}
		if settings.QualityLevel != tc.quality {
			t.Errorf("%s: quality = %d, want %d", tc.tier, settings.QualityLevel, tc.quality)
		}
		if settings.HardwarePreset != "" || settings.RateControlMode != "" {
			t.Errorf("%s: hardware-only fields set on software profile", tc.tier)
		}
	}
}

func TestBuildIgnoresHardwareFlagWithoutHEVCHardware(t *testing.T) {
	// The coarse flag can be on while only H.264 hardware exists; HEVC
	// profiles must still fall back to software.
	snapshot := snapshotWith(true, "h264_nvenc", "libx265")

	settings := selection.Build(snapshot, selection.TierBalanced, 30)
	if settings.HardwareAccelerated || settings.VideoCodec != "libx265" {
		t.Fatalf("settings = %+v, want software fallback", settings)
	}
}

func TestBuildNeverFails(t *testing.T) {
	settings := selection.Build(nil, selection.TierHighQuality, 25)
	if settings.VideoCodec != "libx265" || settings.HardwareAccelerated {
		t.Fatalf("nil snapshot settings = %+v, want software fallback", settings)
	}

	settings = selection.Build(snapshotWith(false), selection.Tier("turbo"), 25)
	if settings.SoftwarePreset != "medium" {
		t.Fatalf("unknown tier preset = %q, want balanced behaviour", settings.SoftwarePreset)
	}
}

func TestBuildQualityImprovesWithSlowerTiers(t *testing.T) {
	snapshots := map[string]*capability.Snapshot{
		"hardware": snapshotWith(true, "hevc_nvenc", "libx265"),
		"software": snapshotWith(false, "libx265"),
	}
	for name, snapshot := range snapshots {
		fast := selection.Build(snapshot, selection.TierFast, 30).QualityLevel
		balanced := selection.Build(snapshot, selection.TierBalanced, 30).QualityLevel
		high := selection.Build(snapshot, selection.TierHighQuality, 30).QualityLevel
		if !(high <= balanced && balanced <= fast) {
			t.Errorf("%s: quality levels not monotonic: high=%d balanced=%d fast=%d", name, high, balanced, fast)
		}
	}
}

func TestParseTier(t *testing.T) {
	cases := []struct {
		in   string
		want selection.Tier
		ok   bool
	}{
		{"fast", selection.TierFast, true},
		{"Balanced", selection.TierBalanced, true},
		{" high-quality ", selection.TierHighQuality, true},
		{"HQ", selection.TierHighQuality, true},
		{"highquality", selection.TierHighQuality, true},
		{"ludicrous", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := selection.ParseTier(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseTier(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
