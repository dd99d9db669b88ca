package catalog

import "strings"

// Vendor identifies the hardware or software backend family implementing an
// encoder.
type Vendor string

const (
	VendorNVIDIA   Vendor = "nvidia"
	VendorIntel    Vendor = "intel"
	VendorAMD      Vendor = "amd"
	VendorSoftware Vendor = "software"
)

// Label returns the human-readable vendor name.
func (v Vendor) Label() string {
	switch v {
	case VendorNVIDIA:
		return "NVIDIA"
	case VendorIntel:
		return "Intel"
	case VendorAMD:
		return "AMD"
	case VendorSoftware:
		return "Software"
	default:
		return string(v)
	}
}

func (v Vendor) String() string { return string(v) }

// Hardware reports whether the vendor is a GPU-accelerated backend.
func (v Vendor) Hardware() bool { return v != VendorSoftware && v != "" }

// ParseVendor resolves a vendor name case-insensitively.
func ParseVendor(value string) (Vendor, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "nvidia":
		return VendorNVIDIA, true
	case "intel":
		return VendorIntel, true
	case "amd":
		return VendorAMD, true
	case "software":
		return VendorSoftware, true
	default:
		return "", false
	}
}

// VendorFromAdapterName guesses the encode backend vendor from a display
// adapter's marketing or inventory name.
func VendorFromAdapterName(name string) (Vendor, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "nvidia"), strings.Contains(lower, "geforce"), strings.Contains(lower, "quadro"):
		return VendorNVIDIA, true
	case strings.Contains(lower, "intel"):
		return VendorIntel, true
	case strings.Contains(lower, "amd"), strings.Contains(lower, "radeon"):
		return VendorAMD, true
	default:
		return "", false
	}
}

// Descriptor describes one encoder backend: an ffmpeg encoder name plus the
// static reference data used for selection. Available is computed once per
// detection pass and never mutated after the owning snapshot is published.
type Descriptor struct {
	Key           string
	Family        string
	DisplayName   string
	Vendor        Vendor
	SpeedupFactor float64
	Description   string
	Available     bool
}

// entries is the fixed reference table. Declaration order within a family is
// the tie-break order used when two vendors share a priority rank.
var entries = []Descriptor{
	{Key: "hevc_nvenc", Family: "hevc", DisplayName: "NVENC HEVC", Vendor: VendorNVIDIA, SpeedupFactor: 9.0, Description: "NVIDIA GPU hardware encoding"},
	{Key: "hevc_qsv", Family: "hevc", DisplayName: "Quick Sync HEVC", Vendor: VendorIntel, SpeedupFactor: 6.0, Description: "Intel Quick Sync hardware encoding"},
	{Key: "hevc_amf", Family: "hevc", DisplayName: "AMF HEVC", Vendor: VendorAMD, SpeedupFactor: 5.5, Description: "AMD AMF hardware encoding"},
	{Key: "libx265", Family: "hevc", DisplayName: "x265", Vendor: VendorSoftware, SpeedupFactor: 1.0, Description: "CPU-based encoding (slower but always available)"},

	{Key: "h264_nvenc", Family: "h264", DisplayName: "NVENC H.264", Vendor: VendorNVIDIA, SpeedupFactor: 8.0, Description: "NVIDIA GPU hardware encoding"},
	{Key: "h264_qsv", Family: "h264", DisplayName: "Quick Sync H.264", Vendor: VendorIntel, SpeedupFactor: 5.5, Description: "Intel Quick Sync hardware encoding"},
	{Key: "h264_amf", Family: "h264", DisplayName: "AMF H.264", Vendor: VendorAMD, SpeedupFactor: 5.0, Description: "AMD AMF hardware encoding"},
	{Key: "libx264", Family: "h264", DisplayName: "x264", Vendor: VendorSoftware, SpeedupFactor: 1.0, Description: "CPU-based encoding (slower but always available)"},

	{Key: "av1_nvenc", Family: "av1", DisplayName: "NVENC AV1", Vendor: VendorNVIDIA, SpeedupFactor: 7.0, Description: "NVIDIA GPU hardware encoding (Ada or newer)"},
	{Key: "av1_qsv", Family: "av1", DisplayName: "Quick Sync AV1", Vendor: VendorIntel, SpeedupFactor: 5.0, Description: "Intel Quick Sync hardware encoding (Arc or newer)"},
	{Key: "av1_amf", Family: "av1", DisplayName: "AMF AV1", Vendor: VendorAMD, SpeedupFactor: 4.5, Description: "AMD AMF hardware encoding (RDNA3 or newer)"},
	{Key: "libsvtav1", Family: "av1", DisplayName: "SVT-AV1", Vendor: VendorSoftware, SpeedupFactor: 1.0, Description: "CPU-based encoding (slower but always available)"},
}

// Catalog returns a fresh descriptor map keyed by encoder name. Each call
// produces independent copies so a detection pass can mark availability
// without mutating shared state.
func Catalog() map[string]*Descriptor {
	result := make(map[string]*Descriptor, len(entries))
	for _, entry := range entries {
		desc := entry
		result[desc.Key] = &desc
	}
	return result
}

// Families lists the codec families in the reference table.
func Families() []string {
	return []string{"hevc", "h264", "av1"}
}

// FamilyOrder returns the encoder keys of one codec family in declaration
// order.
func FamilyOrder(family string) []string {
	family = strings.ToLower(strings.TrimSpace(family))
	keys := make([]string, 0, 4)
	for _, entry := range entries {
		if entry.Family == family {
			keys = append(keys, entry.Key)
		}
	}
	return keys
}

// BaselineKeys returns the encoder keys whose toolchain presence marks a
// vendor's hardware encode path as functional. H.264 and HEVC ship on every
// generation of each vendor's encode silicon; AV1 support is newer and is
// deliberately excluded.
func BaselineKeys(vendor Vendor) []string {
	switch vendor {
	case VendorNVIDIA:
		return []string{"h264_nvenc", "hevc_nvenc"}
	case VendorIntel:
		return []string{"h264_qsv", "hevc_qsv"}
	case VendorAMD:
		return []string{"h264_amf", "hevc_amf"}
	default:
		return nil
	}
}
