// Package keygrip answers one question for video transcoding pipelines:
// what can this host encode with, and how should it be configured?
//
// It probes the CPU, display adapters, and the installed media toolchain
// exactly once per process, caches the resulting capability snapshot, and
// derives encoder selections and tiered render settings from it. Detection
// degrades instead of failing: a host with no GPU, no driver, or no
// toolchain still gets a usable software-encoding answer.
//
// The keygrip CLI under cmd/keygrip surfaces the same service for shell
// pipelines and diagnostics.
package keygrip
