package catalog_test

import (
	"strings"
	"testing"

	"keygrip/internal/catalog"
)

func TestCatalogReturnsIndependentCopies(t *testing.T) {
	first := catalog.Catalog()
	first["hevc_nvenc"].Available = true

	second := catalog.Catalog()
	if second["hevc_nvenc"].Available {
		t.Fatal("mutating one catalog copy must not leak into another")
	}
}

func TestCatalogKeysMatchFamilyPrefixes(t *testing.T) {
	for key, desc := range catalog.Catalog() {
		if key != desc.Key {
			t.Fatalf("map key %q does not match descriptor key %q", key, desc.Key)
		}
		if desc.Vendor == catalog.VendorSoftware {
			continue
		}
		if !strings.HasPrefix(key, desc.Family+"_") {
			t.Fatalf("hardware key %q should start with family %q", key, desc.Family)
		}
	}
}

func TestFamilyOrderPutsNVIDIAFirstAndSoftwareLast(t *testing.T) {
	for _, family := range catalog.Families() {
		order := catalog.FamilyOrder(family)
		if len(order) < 2 {
			t.Fatalf("family %q has too few entries: %v", family, order)
		}
		cat := catalog.Catalog()
		if cat[order[0]].Vendor != catalog.VendorNVIDIA {
			t.Fatalf("family %q: expected NVIDIA first, got %q", family, order[0])
		}
		if cat[order[len(order)-1]].Vendor != catalog.VendorSoftware {
			t.Fatalf("family %q: expected software last, got %q", family, order[len(order)-1])
		}
	}
}

func TestBaselineKeysCoverH264AndHEVC(t *testing.T) {
	for _, vendor := range []catalog.Vendor{catalog.VendorNVIDIA, catalog.VendorIntel, catalog.VendorAMD} {
		keys := catalog.BaselineKeys(vendor)
		if len(keys) != 2 {
			t.Fatalf("vendor %s: expected two baseline keys, got %v", vendor, keys)
		}
		cat := catalog.Catalog()
		for _, key := range keys {
			desc, ok := cat[key]
			if !ok {
				t.Fatalf("baseline key %q missing from catalog", key)
			}
			if desc.Vendor != vendor {
				t.Fatalf("baseline key %q belongs to %s, not %s", key, desc.Vendor, vendor)
			}
			if desc.Family != "h264" && desc.Family != "hevc" {
				t.Fatalf("baseline key %q has unexpected family %q", key, desc.Family)
			}
		}
	}
	if keys := catalog.BaselineKeys(catalog.VendorSoftware); keys != nil {
		t.Fatalf("software vendor must have no baseline keys, got %v", keys)
	}
}

func TestParseVendor(t *testing.T) {
	cases := []struct {
		in   string
		want catalog.Vendor
		ok   bool
	}{
		{"NVIDIA", catalog.VendorNVIDIA, true},
		{"intel", catalog.VendorIntel, true},
		{" Amd ", catalog.VendorAMD, true},
		{"software", catalog.VendorSoftware, true},
		{"matrox", "", false},
	}
	for _, tc := range cases {
		got, ok := catalog.ParseVendor(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseVendor(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestVendorFromAdapterName(t *testing.T) {
	cases := []struct {
		in   string
		want catalog.Vendor
		ok   bool
	}{
		{"NVIDIA GeForce RTX 3080", catalog.VendorNVIDIA, true},
		{"Quadro P2000", catalog.VendorNVIDIA, true},
		{"Intel(R) UHD Graphics 770", catalog.VendorIntel, true},
		{"AMD Radeon RX 7900 XTX", catalog.VendorAMD, true},
		{"Radeon Pro W6800", catalog.VendorAMD, true},
		{"Unknown GPU", "", false},
		{"Matrox G200eW", "", false},
	}
	for _, tc := range cases {
		got, ok := catalog.VendorFromAdapterName(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("VendorFromAdapterName(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSpeedupFactorsFavorHardware(t *testing.T) {
	cat := catalog.Catalog()
	for _, family := range catalog.Families() {
		for _, key := range catalog.FamilyOrder(family) {
			desc := cat[key]
			if desc.Vendor == catalog.VendorSoftware {
				if desc.SpeedupFactor != 1.0 {
					t.Fatalf("software %q should have unit speedup, got %v", key, desc.SpeedupFactor)
				}
				continue
			}
			if desc.SpeedupFactor <= 1.0 {
				t.Fatalf("hardware %q should advertise speedup above 1.0, got %v", key, desc.SpeedupFactor)
			}
		}
	}
}
