package pipeline

import (
	"context"

	"hamremix/internal/history"
	"hamremix/internal/logging"
	"hamremix/internal/preflight"
	"hamremix/internal/services"
	"hamremix/internal/shuffle"
	"hamremix/internal/timeline"
)

// RemixOptions configures a remix run.
type RemixOptions struct {
	TranscriptOptions
	OutputOptions
	// Speakers whose utterances are shuffled; names are case-insensitive and
	// must be in the configured allow-list.
	Speakers []string
	Seed     uint64
}

// Result summarizes a finished run.
type Result struct {
	RunID          string
	TranscriptPath string
	OutputPath     string
	Speakers       []string
	Seed           uint64
	Timeline       timeline.Timeline
}

// Remix runs the speech-driven remix flow.
func (r *Runner) Remix(ctx context.Context, opts RemixOptions) (res Result, err error) {
	speakers, err := shuffle.ValidateSpeakers(opts.Speakers, r.Config.Shuffle.AllowedSpeakers)
	if err != nil {
		return Result{}, err
	}
	source := r.video(opts.Video)

	run := history.NewRun(history.ModeRemix, source, opts.Seed)
	run.Speakers = speakers
	ctx = services.WithRunID(ctx, run.ID)
	defer func() {
		run.TranscriptPath = res.TranscriptPath
		run.OutputPath = res.OutputPath
		r.record(ctx, run, err)
	}()
	res = Result{RunID: run.ID, Speakers: speakers, Seed: opts.Seed}

	logger := logging.WithContext(ctx, logging.NewComponentLogger(r.Logger, component))
	logger.Info("remix started",
		logging.String("source", source),
		logging.Strings("speakers", speakers),
		logging.Seed(opts.Seed),
	)

	in := preflight.Inputs{
		Video:      source,
		Transcript: opts.TranscriptPath,
		Transcribe: opts.TranscriptPath == "",
	}
	if in.Transcribe {
		in.Dialogue = r.dialoguePath(opts.Dialogue)
	}
	if err = r.preflight(ctx, in); err != nil {
		return res, err
	}

	tr, err := r.Transcript(ctx, opts.TranscriptOptions)
	if err != nil {
		return res, err
	}
	res.TranscriptPath = tr.Path

	total, err := r.duration(ctx, source)
	if err != nil {
		return res, err
	}
	tl, err := r.Plan(ctx, tr.Utterances, total, speakers, opts.Seed)
	if err != nil {
		return res, err
	}
	res.Timeline = tl
	run.Segments = len(tl.Playable())
	run.DurationSeconds = tl.Duration()

	res.OutputPath, err = r.deliver(ctx, source, tl, opts.OutputOptions)
	if err != nil {
		return res, err
	}
	logger.Info("remix finished", logging.String("output", res.OutputPath))
	return res, nil
}

func (r *Runner) duration(ctx context.Context, source string) (float64, error) {
	if r.Prober == nil {
		return 0, services.Wrap(services.ErrConfiguration, component, "probe", "no prober configured", nil)
	}
	stepCtx, logger := r.step(ctx, "probe")
	total, err := r.Prober.Duration(stepCtx, source)
	if err != nil {
		return 0, err
	}
	logger.Debug("clip duration", logging.Seconds("seconds", total))
	return total, nil
}
