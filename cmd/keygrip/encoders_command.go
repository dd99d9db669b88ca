package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"keygrip/internal/catalog"
)

func newEncodersCommand(ctx *commandContext) *cobra.Command {
	var (
		family        string
		availableOnly bool
	)

	cmd := &cobra.Command{
		Use:   "encoders",
		Short: "List known encoders and their availability on this host",
		RunE: func(cmd *cobra.Command, args []string) error {
			if family != "" && !slices.Contains(catalog.Families(), family) {
				return fmt.Errorf("unknown codec family %q (choose hevc, h264, or av1)", family)
			}
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			snapshot, err := svc.GetCapabilities(cmd.Context())
			if err != nil {
				return err
			}
			views := newEncoderViews(snapshot, family, availableOnly)
			if ctx.JSONMode() {
				return writeJSON(cmd, views)
			}
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No encoders matched the filter.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Encoder", "Family", "Name", "Vendor", "Speedup", "Available"},
				encoderRows(views),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "Only list encoders for one codec family (hevc, h264, av1)")
	cmd.Flags().BoolVar(&availableOnly, "available", false, "Only list encoders usable on this host")
	return cmd
}
