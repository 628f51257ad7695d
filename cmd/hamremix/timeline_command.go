package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hamremix/internal/pipeline"
	"hamremix/internal/shuffle"
	"hamremix/internal/timeline"
)

type timelineRow struct {
	Index    int     `json:"index"`
	Kind     string  `json:"kind"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
	Speaker  string  `json:"speaker,omitempty"`
	Text     string  `json:"text,omitempty"`
}

func newTimelineCommand(ctx *commandContext) *cobra.Command {
	var opts pipeline.TranscriptOptions
	var speakers []string
	var seed uint64
	var total float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Print the remixed timeline without rendering it",
		Long: "Plan the remix from a saved transcript and print it. A transcript without\n" +
			"speakers is aligned against the dialogue file in memory; nothing is written.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolvedSeed := resolveSeed(cmd, seed)
			opts.Discard = true
			return ctx.withRunner(func(runner *pipeline.Runner) error {
				validated, err := shuffle.ValidateSpeakers(speakers, runner.Config.Shuffle.AllowedSpeakers)
				if err != nil {
					return err
				}
				tr, err := runner.Transcript(cmd.Context(), opts)
				if err != nil {
					return err
				}
				if total <= 0 {
					video := opts.Video
					if video == "" {
						video = runner.Config.Source.Video
					}
					total, err = runner.Prober.Duration(cmd.Context(), video)
					if err != nil {
						return err
					}
				}
				tl, err := runner.Plan(cmd.Context(), tr.Utterances, total, validated, resolvedSeed)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, timelineRows(tl))
				}
				printTimeline(cmd, tl, resolvedSeed)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.TranscriptPath, "transcript", "t", "", "Saved transcript to plan from")
	flags.StringVar(&opts.Video, "video", "", "Source clip used for the total duration (defaults to source.video)")
	flags.StringVar(&opts.Dialogue, "dialogue", "", "Dialogue file used when the transcript has no speakers")
	flags.StringSliceVarP(&speakers, "speaker", "s", nil, "Speaker whose lines are shuffled (repeatable)")
	flags.Uint64Var(&seed, "seed", 0, "Random seed (random when omitted)")
	flags.Float64Var(&total, "duration", 0, "Clip duration in seconds (probed when omitted)")
	flags.BoolVar(&asJSON, "json", false, "Print the timeline as JSON")
	_ = cmd.MarkFlagRequired("transcript")
	return cmd
}

func timelineRows(tl timeline.Timeline) []timelineRow {
	rows := make([]timelineRow, 0, len(tl))
	for i, iv := range tl {
		rows = append(rows, timelineRow{
			Index:    i + 1,
			Kind:     iv.Kind.String(),
			Start:    iv.Start,
			End:      iv.End,
			Duration: iv.Duration(),
			Speaker:  iv.Speaker,
			Text:     iv.Text,
		})
	}
	return rows
}

func printTimeline(cmd *cobra.Command, tl timeline.Timeline, seed uint64) {
	rows := make([][]string, 0, len(tl))
	for _, row := range timelineRows(tl) {
		rows = append(rows, []string{
			strconv.Itoa(row.Index),
			row.Kind,
			formatSeconds(row.Start),
			formatSeconds(row.End),
			formatSeconds(row.Duration),
			row.Speaker,
			truncate(row.Text, 48),
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Kind", "Start", "End", "Length", "Speaker", "Text"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft},
	))
	fmt.Fprintf(out, "Seed: %d  Playable: %d  Length: %s\n", seed, len(tl.Playable()), formatSeconds(tl.Duration()))
}
