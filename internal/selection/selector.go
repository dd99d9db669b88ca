package selection

import (
	"keygrip/internal/capability"
	"keygrip/internal/catalog"
)

// Best returns the highest-priority available encoder for a codec family.
// Priority is fixed: NVIDIA first, then Intel and AMD in catalog declaration
// order, then software. The boolean is false when nothing in the family is
// available on this host; that absence is an expected state, not an error,
// and callers respond by falling back to software encoding.
func Best(snapshot *capability.Snapshot, family string) (catalog.Descriptor, bool) {
	if snapshot == nil {
		return catalog.Descriptor{}, false
	}
	for _, key := range catalog.FamilyOrder(family) {
		if desc, ok := snapshot.Encoder(key); ok && desc.Available {
			return desc, true
		}
	}
	return catalog.Descriptor{}, false
}

// bestHardware is Best restricted to GPU-accelerated backends.
func bestHardware(snapshot *capability.Snapshot, family string) (catalog.Descriptor, bool) {
	if snapshot == nil {
		return catalog.Descriptor{}, false
	}
	for _, key := range catalog.FamilyOrder(family) {
		if desc, ok := snapshot.Encoder(key); ok && desc.Available && desc.Vendor.Hardware() {
			return desc, true
		}
	}
	return catalog.Descriptor{}, false
}
