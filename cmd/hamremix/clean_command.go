package main

import (
	"github.com/spf13/cobra"

	"hamremix/internal/outputs"
	"hamremix/internal/services"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete everything in the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			removed, err := outputs.Clean(cfg.Paths.OutputDir)
			if err != nil {
				return services.Wrap(services.ErrIO, "outputs", "clean", cfg.Paths.OutputDir, err)
			}
			printf(cmd, "Removed %d entries from %s\n", removed, cfg.Paths.OutputDir)
			return nil
		},
	}
}
