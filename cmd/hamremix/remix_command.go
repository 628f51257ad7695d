package main

import (
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"hamremix/internal/pipeline"
)

func newRemixCommand(ctx *commandContext) *cobra.Command {
	var opts pipeline.RemixOptions
	var seed uint64

	cmd := &cobra.Command{
		Use:   "remix",
		Short: "Shuffle the lines of the chosen speakers and render the result",
		Long: "Transcribe the clip (or load a saved transcript), tag each utterance with its\n" +
			"speaker, shuffle the utterances of every --speaker among themselves, and render\n" +
			"the new cut with captions. Quiet stretches between utterances stay in place.\n" +
			"Without --speaker the clip is re-cut in its original order with captions only.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Seed = resolveSeed(cmd, seed)
			if err := ctx.applyPlaybackDefault(cmd, &opts.OutputOptions); err != nil {
				return err
			}
			return ctx.withRunner(func(runner *pipeline.Runner) error {
				res, err := runner.Remix(cmd.Context(), opts)
				if err != nil {
					return err
				}
				printRunResult(cmd, res)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Video, "video", "", "Source clip (defaults to source.video)")
	flags.StringVar(&opts.Dialogue, "dialogue", "", "Dialogue file used to tag speakers (defaults to source.dialogue)")
	flags.StringVarP(&opts.TranscriptPath, "transcript", "t", "", "Use a saved transcript instead of transcribing")
	flags.StringSliceVarP(&opts.Speakers, "speaker", "s", nil, "Speaker whose lines are shuffled (repeatable)")
	flags.Uint64Var(&seed, "seed", 0, "Random seed (random when omitted)")
	addOutputFlags(cmd, &opts.OutputOptions)
	return cmd
}

func newChopCommand(ctx *commandContext) *cobra.Command {
	var opts pipeline.ChopOptions
	var seed uint64

	cmd := &cobra.Command{
		Use:   "chop",
		Short: "Cut the clip into equal segments and shuffle all of them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Seed = resolveSeed(cmd, seed)
			if err := ctx.applyPlaybackDefault(cmd, &opts.OutputOptions); err != nil {
				return err
			}
			return ctx.withRunner(func(runner *pipeline.Runner) error {
				res, err := runner.Chop(cmd.Context(), opts)
				if err != nil {
					return err
				}
				printRunResult(cmd, res)
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Video, "video", "", "Source clip (defaults to source.video)")
	flags.Float64Var(&opts.SegmentSeconds, "segment", 0, "Segment length in seconds (defaults to shuffle.segment_seconds)")
	flags.Uint64Var(&seed, "seed", 0, "Random seed (random when omitted)")
	addOutputFlags(cmd, &opts.OutputOptions)
	return cmd
}

func addOutputFlags(cmd *cobra.Command, opts *pipeline.OutputOptions) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.OutputPath, "output", "o", "", "Write the clip here instead of the next numbered output name")
	flags.BoolVar(&opts.Play, "play", false, "Play the clip once rendered (defaults to playback.enabled)")
	flags.BoolVar(&opts.NoSave, "no-save", false, "Play the clip and discard it")
	cmd.MarkFlagsMutuallyExclusive("output", "no-save")
}

// applyPlaybackDefault turns on playback from config unless --play was given.
func (c *commandContext) applyPlaybackDefault(cmd *cobra.Command, opts *pipeline.OutputOptions) error {
	if cmd.Flags().Changed("play") {
		return nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	opts.Play = cfg.Playback.Enabled
	return nil
}

func resolveSeed(cmd *cobra.Command, seed uint64) uint64 {
	if cmd.Flags().Changed("seed") {
		return seed
	}
	return rand.Uint64()
}

func printRunResult(cmd *cobra.Command, res pipeline.Result) {
	if res.TranscriptPath != "" {
		printf(cmd, "Transcript: %s\n", res.TranscriptPath)
	}
	if len(res.Speakers) > 0 {
		printf(cmd, "Shuffled:   %s\n", strings.Join(res.Speakers, ", "))
	}
	printf(cmd, "Seed:       %d\n", res.Seed)
	printf(cmd, "Segments:   %d (%s)\n", len(res.Timeline.Playable()), formatSeconds(res.Timeline.Duration()))
	if res.OutputPath != "" {
		printf(cmd, "Output:     %s\n", res.OutputPath)
	} else {
		printf(cmd, "Output:     not saved\n")
	}
}
