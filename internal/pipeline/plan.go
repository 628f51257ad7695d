package pipeline

import (
	"context"

	"hamremix/internal/logging"
	"hamremix/internal/shuffle"
	"hamremix/internal/timeline"
	"hamremix/internal/transcript"
)

// Plan builds the remixed timeline: quiet gaps are derived from the
// unshuffled utterances, then the requested speakers are shuffled and the two
// are interleaved. speakers must already be validated.
func (r *Runner) Plan(ctx context.Context, utterances []transcript.Utterance, total float64, speakers []string, seed uint64) (timeline.Timeline, error) {
	_, logger := r.step(ctx, "plan")
	if err := timeline.ValidateOrder(utterances, total); err != nil {
		return nil, err
	}
	quiet, err := timeline.Partition(utterances, total)
	if err != nil {
		return nil, err
	}
	shuffled := shuffle.Speakers(utterances, speakers, shuffle.NewRand(seed))
	tl, err := timeline.Interleave(shuffled, quiet)
	if err != nil {
		return nil, err
	}
	logger.Info("timeline planned",
		logging.Int("intervals", len(tl)),
		logging.Int("playable", len(tl.Playable())),
		logging.Strings("shuffled_speakers", speakers),
		logging.Seconds("duration_seconds", tl.Duration()),
	)
	return tl, nil
}
