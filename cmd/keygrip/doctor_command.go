package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"keygrip/internal/capability"
	"keygrip/internal/catalog"
	"keygrip/internal/deps"
	"keygrip/internal/hwinfo"
	"keygrip/internal/toolchain"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the host's encode readiness",
		Long: "Doctor checks the pieces hardware-accelerated encoding depends on: the\n" +
			"configuration file, the media toolchain, helper binaries, GPU render nodes,\n" +
			"and the detected encoder set. With --verify it also runs a test encode\n" +
			"through every available hardware encoder.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}

			report := doctorReport{
				ConfigPath:   ctx.configPath,
				ConfigExists: ctx.configExists,
			}

			binary, locateErr := svc.Toolchain().Locate(cmd.Context())
			if locateErr != nil {
				report.Toolchain.Error = locateErr.Error()
			} else {
				report.Toolchain.Binary = binary
			}

			for _, status := range deps.CheckBinaries(deps.Defaults(cfg.FFmpeg.CompanionBinary)) {
				report.Tools = append(report.Tools, toolReport{
					Name:      status.Name,
					Command:   status.Command,
					Optional:  status.Optional,
					Available: status.Available,
					Detail:    status.Detail,
				})
			}

			for _, node := range hwinfo.RenderNodes() {
				report.RenderNodes = append(report.RenderNodes, renderNodeView{
					Path:       node.Path,
					Accessible: node.Accessible,
				})
			}

			snapshot, err := svc.GetCapabilities(cmd.Context())
			if err != nil {
				return err
			}
			report.Snapshot = newSnapshotView(snapshot)

			if verify && binary != "" {
				report.Verifications = runVerifications(cmd, svc.Toolchain(), snapshot, binary)
			}

			report.Healthy = locateErr == nil
			for _, verification := range report.Verifications {
				if !verification.OK {
					report.Healthy = false
				}
			}

			if ctx.JSONMode() {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				renderDoctorReport(cmd, report)
			}
			if !report.Healthy {
				return errors.New("doctor found problems; see report above")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Run a test encode through every available hardware encoder")
	return cmd
}

func runVerifications(cmd *cobra.Command, probe *toolchain.Probe, snapshot *capability.Snapshot, binary string) []verifyReport {
	reports := make([]verifyReport, 0, 4)
	for _, family := range catalog.Families() {
		for _, key := range catalog.FamilyOrder(family) {
			desc, ok := snapshot.Encoder(key)
			if !ok || !desc.Available || !desc.Vendor.Hardware() {
				continue
			}
			result := verifyReport{Encoder: key}
			if err := probe.VerifyEncoder(cmd.Context(), binary, key); err != nil {
				result.Detail = err.Error()
			} else {
				result.OK = true
			}
			reports = append(reports, result)
		}
	}
	return reports
}

func renderDoctorReport(cmd *cobra.Command, report doctorReport) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	lines := make([]string, 0, 32)

	lines = append(lines, renderSectionHeader("Configuration", colorize)...)
	if report.ConfigExists {
		lines = append(lines, renderStatusLine("Config file", statusOK, report.ConfigPath, colorize))
	} else {
		lines = append(lines, renderStatusLine("Config file", statusInfo,
			fmt.Sprintf("using defaults (no file at %s)", report.ConfigPath), colorize))
	}

	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Toolchain", colorize)...)
	if report.Toolchain.Binary != "" {
		lines = append(lines, renderStatusLine("Binary", statusOK, report.Toolchain.Binary, colorize))
	} else {
		lines = append(lines, renderStatusLine("Binary", statusError, report.Toolchain.Error, colorize))
	}

	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("External tools", colorize)...)
	for _, tool := range report.Tools {
		if tool.Available {
			lines = append(lines, renderStatusLine(tool.Name, statusOK, tool.Command, colorize))
			continue
		}
		kind := statusError
		detail := tool.Detail
		if tool.Optional {
			kind = statusWarn
			detail += " (optional)"
		}
		lines = append(lines, renderStatusLine(tool.Name, kind, detail, colorize))
	}

	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Hardware", colorize)...)
	lines = append(lines, renderStatusLine("CPU", statusInfo,
		fmt.Sprintf("%s (%d logical cores)", report.Snapshot.CPUName, report.Snapshot.CPUCoreCount), colorize))
	lines = append(lines, renderStatusLine("Primary GPU", statusInfo, report.Snapshot.PrimaryGPU, colorize))
	hardwareKind := statusWarn
	if report.Snapshot.HardwareEncode {
		hardwareKind = statusOK
	}
	lines = append(lines, renderStatusLine("Hardware encode", hardwareKind, yesNo(report.Snapshot.HardwareEncode), colorize))
	for _, node := range report.RenderNodes {
		kind := statusWarn
		detail := node.Path + " (not accessible)"
		if node.Accessible {
			kind = statusOK
			detail = node.Path
		}
		lines = append(lines, renderStatusLine("Render node", kind, detail, colorize))
	}

	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Encoders", colorize)...)
	available := 0
	for _, encoder := range report.Snapshot.Encoders {
		if encoder.Available {
			available++
		}
	}
	lines = append(lines, renderStatusLine("Available", statusInfo,
		fmt.Sprintf("%d of %d known encoders", available, len(report.Snapshot.Encoders)), colorize))

	if len(report.Verifications) > 0 {
		lines = append(lines, "")
		lines = append(lines, renderSectionHeader("Verification", colorize)...)
		for _, verification := range report.Verifications {
			if verification.OK {
				lines = append(lines, renderStatusLine(verification.Encoder, statusOK, "test encode succeeded", colorize))
			} else {
				lines = append(lines, renderStatusLine(verification.Encoder, statusError, verification.Detail, colorize))
			}
		}
	}

	lines = append(lines, "")
	if report.Healthy {
		lines = append(lines, renderStatusLine("Overall", statusOK, "ready to encode", colorize))
	} else {
		lines = append(lines, renderStatusLine("Overall", statusError, "problems found", colorize))
	}

	fmt.Fprintln(out, strings.Join(lines, "\n"))
}
