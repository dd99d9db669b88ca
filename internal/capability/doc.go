// Package capability owns the host capability snapshot: what the CPU and
// GPUs are, which encoders the installed toolchain supports, and whether
// hardware encoding actually works.
//
// Detection is expensive (it shells out to inventory tools and the media
// toolchain), so the package caches one immutable snapshot per process
// behind a double-checked lock. Detection never fails on a supported
// platform; sources that cannot answer degrade to conservative defaults
// recorded in the snapshot.
package capability
