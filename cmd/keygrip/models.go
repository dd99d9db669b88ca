package main

import (
	"fmt"
	"time"

	"keygrip/internal/capability"
	"keygrip/internal/catalog"
)

// snapshotView is the JSON shape of a capability snapshot. The internal type
// stays free of serialization concerns; this view pins the wire names.
type snapshotView struct {
	ProbeID        string        `json:"probe_id"`
	DetectedAt     time.Time     `json:"detected_at"`
	CPUName        string        `json:"cpu_name"`
	CPUCoreCount   int           `json:"cpu_core_count"`
	IsIntelCPU     bool          `json:"is_intel_cpu"`
	GPUs           []string      `json:"gpus"`
	PrimaryGPU     string        `json:"primary_gpu"`
	HasNVIDIAGPU   bool          `json:"has_nvidia_gpu"`
	HardwareEncode bool          `json:"hardware_encode"`
	ToolchainPath  string        `json:"toolchain_path,omitempty"`
	Encoders       []encoderView `json:"encoders"`
	Degraded       []string      `json:"degraded,omitempty"`
}

type encoderView struct {
	Key           string  `json:"key"`
	Family        string  `json:"family"`
	DisplayName   string  `json:"display_name"`
	Vendor        string  `json:"vendor"`
	SpeedupFactor float64 `json:"speedup_factor"`
	Available     bool    `json:"available"`
	Description   string  `json:"description,omitempty"`
}

func newSnapshotView(snapshot *capability.Snapshot) snapshotView {
	return snapshotView{
		ProbeID:        snapshot.ProbeID,
		DetectedAt:     snapshot.DetectedAt,
		CPUName:        snapshot.CPUName,
		CPUCoreCount:   snapshot.CPUCoreCount,
		IsIntelCPU:     snapshot.IsIntelCPU,
		GPUs:           snapshot.GPUs,
		PrimaryGPU:     snapshot.PrimaryGPU,
		HasNVIDIAGPU:   snapshot.HasNVIDIAGPU,
		HardwareEncode: snapshot.HardwareEncode,
		ToolchainPath:  snapshot.ToolchainPath,
		Encoders:       newEncoderViews(snapshot, "", false),
		Degraded:       snapshot.Degraded,
	}
}

// newEncoderViews lists encoders in catalog order, optionally filtered to a
// family or to available entries.
func newEncoderViews(snapshot *capability.Snapshot, family string, availableOnly bool) []encoderView {
	views := make([]encoderView, 0, len(snapshot.Encoders))
	for _, fam := range catalog.Families() {
		if family != "" && fam != family {
			continue
		}
		for _, key := range catalog.FamilyOrder(fam) {
			desc, ok := snapshot.Encoder(key)
			if !ok {
				continue
			}
			if availableOnly && !desc.Available {
				continue
			}
			views = append(views, encoderView{
				Key:           desc.Key,
				Family:        desc.Family,
				DisplayName:   desc.DisplayName,
				Vendor:        desc.Vendor.Label(),
				SpeedupFactor: desc.SpeedupFactor,
				Available:     desc.Available,
				Description:   desc.Description,
			})
		}
	}
	return views
}

func encoderRows(views []encoderView) [][]string {
	rows := make([][]string, 0, len(views))
	for _, view := range views {
		rows = append(rows, []string{
			view.Key,
			view.Family,
			view.DisplayName,
			view.Vendor,
			formatSpeedup(view.SpeedupFactor),
			yesNo(view.Available),
		})
	}
	return rows
}

func formatSpeedup(factor float64) string {
	if factor == float64(int64(factor)) {
		return fmt.Sprintf("%dx", int64(factor))
	}
	return fmt.Sprintf("%.1fx", factor)
}

// doctorReport aggregates every doctor check for JSON output.
type doctorReport struct {
	ConfigPath    string           `json:"config_path"`
	ConfigExists  bool             `json:"config_exists"`
	Toolchain     toolchainReport  `json:"toolchain"`
	Tools         []toolReport     `json:"tools"`
	RenderNodes   []renderNodeView `json:"render_nodes,omitempty"`
	Snapshot      snapshotView     `json:"snapshot"`
	Verifications []verifyReport   `json:"verifications,omitempty"`
	Healthy       bool             `json:"healthy"`
}

type toolchainReport struct {
	Binary string `json:"binary,omitempty"`
	Error  string `json:"error,omitempty"`
}

type toolReport struct {
	Name      string `json:"name"`
	Command   string `json:"command"`
	Optional  bool   `json:"optional"`
	Available bool   `json:"available"`
	Detail    string `json:"detail,omitempty"`
}

type renderNodeView struct {
	Path       string `json:"path"`
	Accessible bool   `json:"accessible"`
}

type verifyReport struct {
	Encoder string `json:"encoder"`
	OK      bool   `json:"ok"`
	Detail  string `json:"detail,omitempty"`
}
