// Package hwinfo resolves host CPU and GPU identity.
//
// The primary source is the OS hardware inventory: processor records via
// gopsutil and display adapters via sysfs DRM entries on Linux or WMI on
// Windows. When the primary source errors or enumerates nothing, accelerator
// names fall back to `nvidia-smi -L`; CPU identity has no fallback and
// degrades to "Unknown CPU". Identify never fails — every inventory problem
// is recovered locally and recorded in the Degraded list.
package hwinfo
