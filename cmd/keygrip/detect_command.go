package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"keygrip/internal/capability"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect host hardware and toolchain encoder support",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			if refresh {
				svc.Invalidate()
			}
			snapshot, err := svc.GetCapabilities(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, newSnapshotView(snapshot))
			}
			renderSnapshot(cmd.OutOrStdout(), snapshot)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Discard any cached snapshot before detecting")
	return cmd
}

func renderSnapshot(out io.Writer, snapshot *capability.Snapshot) {
	fmt.Fprintf(out, "CPU: %s (%d logical cores)\n", snapshot.CPUName, snapshot.CPUCoreCount)
	fmt.Fprintf(out, "Intel CPU: %s\n", yesNo(snapshot.IsIntelCPU))
	fmt.Fprintf(out, "GPUs: %s\n", strings.Join(snapshot.GPUs, ", "))
	fmt.Fprintf(out, "Primary GPU: %s\n", snapshot.PrimaryGPU)
	if snapshot.ToolchainPath != "" {
		fmt.Fprintf(out, "Toolchain: %s\n", snapshot.ToolchainPath)
	} else {
		fmt.Fprintln(out, "Toolchain: not found")
	}
	fmt.Fprintf(out, "Hardware encode: %s\n", yesNo(snapshot.HardwareEncode))
	fmt.Fprintln(out)

	views := newEncoderViews(snapshot, "", false)
	fmt.Fprintln(out, renderTable(
		[]string{"Encoder", "Family", "Name", "Vendor", "Speedup", "Available"},
		encoderRows(views),
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	))

	if snapshot.IsDegraded() {
		fmt.Fprintf(out, "\nDegraded sources: %s\n", strings.Join(snapshot.Degraded, ", "))
	}
	fmt.Fprintf(out, "\nProbe %s completed %s\n",
		snapshot.ProbeID, snapshot.DetectedAt.Format(time.RFC3339))
}
