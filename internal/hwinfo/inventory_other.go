//go:build !linux && !windows

package hwinfo

import (
	"context"
	"errors"
)

// The capability layer rejects unsupported platforms before probing; these
// stubs exist so the package builds everywhere.

func cpuInventory(context.Context) (CPUInfo, error) {
	return CPUInfo{}, errors.New("hardware inventory not supported on this platform")
}

func gpuInventory(context.Context) ([]string, error) {
	return nil, errors.New("hardware inventory not supported on this platform")
}

// RenderNodes reports nothing on platforms without DRM.
func RenderNodes() []RenderNode { return nil }
