package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"keygrip/internal/capability"
	"keygrip/internal/hotplug"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch for display adapter changes and re-detect capabilities",
		Long: "Watch subscribes to kernel device events and re-runs capability detection\n" +
			"whenever a display adapter is added or removed. Each fresh snapshot is\n" +
			"printed as it lands. Stop with Ctrl-C.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			changes := make(chan struct{}, 1)
			watcher := hotplug.NewWatcher(ctx.loggerValue(), func() {
				svc.Invalidate()
				select {
				case changes <- struct{}{}:
				default:
				}
			}, hotplug.WithDebounce(debounce))
			if err := watcher.Start(runCtx); err != nil {
				return err
			}
			defer watcher.Stop()

			out := cmd.OutOrStdout()
			snapshot, err := svc.GetCapabilities(runCtx)
			if err != nil {
				return err
			}
			if err := printWatchSnapshot(cmd, ctx, snapshot); err != nil {
				return err
			}
			if !watcher.Running() {
				fmt.Fprintln(out, "Device events unavailable; showing the initial snapshot only.")
			}

			for {
				select {
				case <-runCtx.Done():
					return nil
				case <-changes:
					snapshot, err := svc.GetCapabilities(runCtx)
					if err != nil {
						return err
					}
					if !ctx.JSONMode() {
						fmt.Fprintf(out, "\n%s display adapter change detected\n",
							time.Now().Format("15:04:05"))
					}
					if err := printWatchSnapshot(cmd, ctx, snapshot); err != nil {
						return err
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "Delay before re-detecting after a burst of device events")
	return cmd
}

func printWatchSnapshot(cmd *cobra.Command, ctx *commandContext, snapshot *capability.Snapshot) error {
	if ctx.JSONMode() {
		return writeJSON(cmd, newSnapshotView(snapshot))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Probe %s: hardware encode %s, %d/%d encoders, primary GPU %s\n",
		snapshot.ProbeID, yesNo(snapshot.HardwareEncode),
		snapshot.AvailableCount(), len(snapshot.Encoders), snapshot.PrimaryGPU)
	return nil
}
