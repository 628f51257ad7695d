package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hamremix/internal/deps"
	"hamremix/internal/preflight"
	"hamremix/internal/services"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, source files, and external tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			dirs := []preflight.Result{
				preflight.CheckWritableDir("Output directory", cfg.Paths.OutputDir),
				preflight.CheckWritableDir("State directory", cfg.Paths.StateDir),
			}
			if cfg.Paths.WorkDir != "" {
				dirs = append(dirs, preflight.CheckWritableDir("Work directory", cfg.Paths.WorkDir))
			}
			inputs := []preflight.Result{
				preflight.CheckReadableFile("Source video", cfg.Source.Video),
				preflight.CheckReadableFile("Dialogue", cfg.Source.Dialogue),
			}
			tools := preflight.CheckSystemDeps(cmd.Context(), cfg, true)

			sections := []struct {
				title string
				lines []string
			}{
				{"Directories", checkLines(dirs, nil, colorize)},
				{"Inputs", checkLines(inputs, nil, colorize)},
				{"Tools", dependencyLines(tools, colorize)},
			}
			for i, section := range sections {
				if i > 0 {
					fmt.Fprintln(out)
				}
				for _, line := range renderSectionHeader(section.title, colorize) {
					fmt.Fprintln(out, line)
				}
				for _, line := range section.lines {
					fmt.Fprintln(out, line)
				}
			}

			var problems []string
			for _, res := range append(dirs, inputs...) {
				if !res.Passed {
					problems = append(problems, res.Name)
				}
			}
			problems = append(problems, deps.MissingRequired(tools)...)
			if len(problems) > 0 {
				return services.Wrap(services.ErrConfiguration, "doctor", "check", strings.Join(problems, ", "), errors.New("environment not ready"))
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Ready to remix")
			return nil
		},
	}
}
