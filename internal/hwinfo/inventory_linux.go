//go:build linux

package hwinfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"golang.org/x/sys/unix"
)

// pciVendorNames maps display-adapter PCI vendor IDs to marketing names.
var pciVendorNames = map[string]string{
	"0x10de": "NVIDIA",
	"0x8086": "Intel",
	"0x1002": "AMD",
}

var cardPattern = regexp.MustCompile(`^card(\d+)$`)

// cpuInventory reads processor identity from the kernel.
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

// gpuInventory enumerates DRM display adapters from sysfs in card-index order.
func gpuInventory(_ context.Context) ([]string, error) {
	return drmAdapterNames("/sys/class/drm")
}

func drmAdapterNames(drmRoot string) ([]string, error) {
	entries, err := os.ReadDir(drmRoot)
	if err != nil {
		return nil, fmt.Errorf("read drm class: %w", err)
	}

	type card struct {
		index int
		name  string
	}
	cards := make([]card, 0, len(entries))
	for _, entry := range entries {
		match := cardPattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		index, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		name, ok := adapterName(filepath.Join(drmRoot, entry.Name()))
		if !ok {
			continue
		}
		cards = append(cards, card{index: index, name: name})
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].index < cards[j].index })

	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.name)
	}
	return names, nil
}

func adapterName(cardPath string) (string, bool) {
	vendorRaw, err := os.ReadFile(filepath.Join(cardPath, "device", "vendor"))
	if err != nil {
		return "", false
	}
	vendorID := strings.ToLower(strings.TrimSpace(string(vendorRaw)))

	deviceID := ""
	if deviceRaw, err := os.ReadFile(filepath.Join(cardPath, "device", "device")); err == nil {
		deviceID = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(string(deviceRaw))), "0x")
	}

	vendor, known := pciVendorNames[vendorID]
	if !known {
		vendor = "Display adapter"
	}
	if deviceID != "" {
		return fmt.Sprintf("%s GPU [%s:%s]", vendor, strings.TrimPrefix(vendorID, "0x"), deviceID), true
	}
	return vendor + " GPU", true
}

// RenderNodes lists DRM render devices and whether this process may open
// them. Hardware encoding through VAAPI/QSV/AMF needs read-write access to a
// render node, so this feeds the doctor diagnostics.
func RenderNodes() []RenderNode {
	matches, err := filepath.Glob("/dev/dri/renderD*")
	if err != nil || len(matches) == 0 {
		return nil
	}
	sort.Strings(matches)
	nodes := make([]RenderNode, 0, len(matches))
	for _, path := range matches {
		node := RenderNode{Path: path}
		if err := unix.Access(path, unix.R_OK|unix.W_OK); err == nil {
			node.Accessible = true
		}
		nodes = append(nodes, node)
	}
	return nodes
}
