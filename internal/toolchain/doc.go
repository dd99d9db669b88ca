// Package toolchain locates the media toolchain binary and interrogates it
// for encoder support.
//
// It resolves the binary through a fixed candidate chain (companion sidecar,
// configured path, process search path, well-known install directories),
// parses the encoder listing for catalog availability, and can run a
// one-frame null encode to prove an encoder initializes end to end.
//
// Prefer this package over ad-hoc exec.Command usage when interacting with
// the toolchain so timeout handling and failure degradation stay consistent.
package toolchain
