package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hamremix/internal/config"
	"hamremix/internal/logging"
	"hamremix/internal/pipeline"
	"hamremix/internal/transcript"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var opts pipeline.TranscriptOptions

	cmd := &cobra.Command{
		Use:   "transcribe",
		Short: "Transcribe the clip, tag speakers, and save the transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRunner(func(runner *pipeline.Runner) error {
				res, err := runner.Transcribe(cmd.Context(), opts)
				if err != nil {
					return err
				}
				printTranscriptSummary(cmd, res.Path, res.Utterances)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Video, "video", "", "Source clip (defaults to source.video)")
	cmd.Flags().StringVar(&opts.Dialogue, "dialogue", "", "Dialogue file used to tag speakers (defaults to source.dialogue)")
	return cmd
}

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var dialoguePath string

	cmd := &cobra.Command{
		Use:   "align <transcript.csv>",
		Short: "Re-tag the speakers of a saved transcript and save it under a new name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			return ctx.withRunner(func(runner *pipeline.Runner) error {
				utterances, err := transcript.Load(source)
				if err != nil {
					return err
				}
				target := dialoguePath
				if target == "" {
					target = runner.Config.Source.Dialogue
				}
				aligned, err := runner.Align(cmd.Context(), utterances, target)
				if err != nil {
					return err
				}
				path, err := transcript.Save(runner.Config.Paths.OutputDir, runner.Config.Shuffle.TranscriptBase, aligned)
				if err != nil {
					return err
				}
				logging.NewComponentLogger(runner.Logger, "cli").Info("transcript realigned",
					logging.String("source", source),
					logging.String("path", path),
				)
				printTranscriptSummary(cmd, path, aligned)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dialoguePath, "dialogue", "", "Dialogue file used to tag speakers (defaults to source.dialogue)")
	return cmd
}

func printTranscriptSummary(cmd *cobra.Command, path string, utterances []transcript.Utterance) {
	counts := make(map[string]int)
	for _, u := range utterances {
		counts[u.Speaker]++
	}
	speakers := transcript.Speakers(utterances)
	rows := make([][]string, 0, len(speakers))
	for _, name := range speakers {
		rows = append(rows, []string{name, fmt.Sprintf("%d", counts[name])})
	}
	printf(cmd, "Transcript: %s\n", path)
	printf(cmd, "Utterances: %d\n", len(utterances))
	if len(rows) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Speaker", "Lines"}, rows, []columnAlignment{alignLeft, alignRight}))
	}
}
