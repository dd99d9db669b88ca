//go:build windows

package hwinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/yusufpapurcu/wmi"
)

type win32VideoController struct {
	Name string
}

// cpuInventory reads processor identity via the OS management interface.
func cpuInventory(ctx context.Context) (CPUInfo, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return CPUInfo{}, fmt.Errorf("cpu info: %w", err)
	}
	if len(infos) == 0 {
		return CPUInfo{}, errors.New("cpu info: no processor records")
	}
	return CPUInfo{
		VendorID:  strings.TrimSpace(infos[0].VendorID),
		ModelName: strings.TrimSpace(infos[0].ModelName),
	}, nil
}

// gpuInventory enumerates display adapters from WMI.
func gpuInventory(_ context.Context) ([]string, error) {
	var controllers []win32VideoController
	if err := wmi.Query("SELECT Name FROM Win32_VideoController", &controllers); err != nil {
		return nil, fmt.Errorf("query video controllers: %w", err)
	}
	names := make([]string, 0, len(controllers))
	for _, controller := range controllers {
		if name := strings.TrimSpace(controller.Name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// RenderNodes reports nothing on Windows; DRM render devices are Linux-only
// and adapter access is implied by the WMI enumeration.
func RenderNodes() []RenderNode { return nil }
