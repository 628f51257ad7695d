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

// ChopOptions configures a fixed-segment shuffle run.
type ChopOptions struct {
	OutputOptions
	// Video overrides the configured source clip.
	Video string
	// SegmentSeconds overrides the configured segment length when positive.
	SegmentSeconds float64
	Seed           uint64
}

// Chop splits the clip into equal segments, shuffles all of them, and renders
// the result.
func (r *Runner) Chop(ctx context.Context, opts ChopOptions) (res Result, err error) {
	size := opts.SegmentSeconds
	if size <= 0 {
		size = r.Config.Shuffle.SegmentSeconds
	}
	source := r.video(opts.Video)

	run := history.NewRun(history.ModeChop, source, opts.Seed)
	ctx = services.WithRunID(ctx, run.ID)
	defer func() {
		run.OutputPath = res.OutputPath
		r.record(ctx, run, err)
	}()
	res = Result{RunID: run.ID, Seed: opts.Seed}

	logger := logging.WithContext(ctx, logging.NewComponentLogger(r.Logger, component))
	logger.Info("chop started",
		logging.String("source", source),
		logging.Seconds("segment_seconds", size),
		logging.Seed(opts.Seed),
	)

	if err = r.preflight(ctx, preflight.Inputs{Video: source}); err != nil {
		return res, err
	}
	total, err := r.duration(ctx, source)
	if err != nil {
		return res, err
	}
	segments, err := timeline.Chop(total, size)
	if err != nil {
		return res, err
	}
	tl := timeline.Timeline(shuffle.Intervals(segments, shuffle.NewRand(opts.Seed)))
	res.Timeline = tl
	run.Segments = len(tl)
	run.DurationSeconds = tl.Duration()

	res.OutputPath, err = r.deliver(ctx, source, tl, opts.OutputOptions)
	if err != nil {
		return res, err
	}
	logger.Info("chop finished", logging.String("output", res.OutputPath), logging.Int("segments", len(tl)))
	return res, nil
}
