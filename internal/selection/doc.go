// Package selection turns a capability snapshot into encode decisions: the
// best encoder for a codec family and tiered render settings.
//
// Everything here is pure computation over the snapshot. Detection cost and
// failure handling live in the capability package; selection never performs
// I/O and never fails.
package selection
