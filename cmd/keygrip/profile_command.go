package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"keygrip/internal/selection"
)

func newProfileCommand(ctx *commandContext) *cobra.Command {
	var (
		tier string
		fps  int
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Build encode settings for a quality tier on this host",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, ok := selection.ParseTier(tier)
			if !ok {
				return fmt.Errorf("unknown tier %q (choose fast, balanced, or high-quality)", tier)
			}
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			settings := svc.GetProfile(cmd.Context(), parsed, fps)
			if ctx.JSONMode() {
				return writeJSON(cmd, settings)
			}
			renderSettings(cmd, parsed, settings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tier, "tier", "t", string(selection.TierBalanced), "Quality tier (fast, balanced, high-quality)")
	cmd.Flags().IntVar(&fps, "fps", 30, "Source frame rate to carry into the settings")
	return cmd
}

func renderSettings(cmd *cobra.Command, tier selection.Tier, settings selection.RenderSettings) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Profile: %s\n", tierLabel(tier))
	fmt.Fprintf(out, "Codec: %s\n", settings.VideoCodec)
	fmt.Fprintf(out, "Hardware accelerated: %s\n", yesNo(settings.HardwareAccelerated))
	if settings.HardwarePreset != "" {
		fmt.Fprintf(out, "Preset: %s\n", settings.HardwarePreset)
	}
	if settings.SoftwarePreset != "" {
		fmt.Fprintf(out, "Preset: %s\n", settings.SoftwarePreset)
	}
	if settings.RateControlMode != "" {
		fmt.Fprintf(out, "Rate control: %s\n", settings.RateControlMode)
	}
	fmt.Fprintf(out, "Quality level: %d\n", settings.QualityLevel)
	fmt.Fprintf(out, "Frame rate: %d\n", settings.FrameRate)
}

func tierLabel(tier selection.Tier) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(string(tier), "-", " "))
}
