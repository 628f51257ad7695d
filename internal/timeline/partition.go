package timeline

import (
	"fmt"
	"math"

	"hamremix/internal/services"
	"hamremix/internal/transcript"
)

const component = "timeline"

// Partition returns the quiet intervals around utterances: the gap before the
// first, one between every consecutive pair, and the gap from the last
// utterance to total. The result always has len(utterances)+1 entries.
func Partition(utterances []transcript.Utterance, total float64) ([]Interval, error) {
	if len(utterances) == 0 {
		return nil, services.Wrap(services.ErrValidation, component, "partition", "no utterances", nil)
	}
	quiet := make([]Interval, 0, len(utterances)+1)
	quiet = append(quiet, QuietInterval(0, utterances[0].Start))
	for i := 1; i < len(utterances); i++ {
		quiet = append(quiet, QuietInterval(utterances[i-1].End, utterances[i].Start))
	}
	quiet = append(quiet, QuietInterval(utterances[len(utterances)-1].End, total))
	return quiet, nil
}

// ValidateOrder checks that utterances have positive length, are sorted and
// non-overlapping, and fit inside [0, total]. A total of zero or less skips the upper bound check.
func ValidateOrder(utterances []transcript.Utterance, total float64) error {
	for i, u := range utterances {
		if math.IsNaN(u.Start) || math.IsNaN(u.End) {
			return orderingError(i, "timestamps must be numbers")
		}
		if u.Start < 0 {
			return orderingError(i, fmt.Sprintf("start %g is negative", u.Start))
		}
		if u.End <= u.Start {
			return orderingError(i, fmt.Sprintf("end %g does not follow start %g", u.End, u.Start))
		}
		if i == 0 {
			continue
		}
		prev := utterances[i-1]
		if u.Start < prev.Start {
			return orderingError(i, fmt.Sprintf("start %g precedes previous start %g", u.Start, prev.Start))
		}
		if u.Start < prev.End {
			return orderingError(i, fmt.Sprintf("start %g overlaps previous end %g", u.Start, prev.End))
		}
	}
	if total > 0 && len(utterances) > 0 {
		last := utterances[len(utterances)-1]
		if last.End > total {
			return orderingError(len(utterances)-1, fmt.Sprintf("end %g exceeds clip duration %g", last.End, total))
		}
	}
	return nil
}

func orderingError(index int, msg string) error {
	return services.Wrap(services.ErrOrdering, component, "validate", fmt.Sprintf("utterance %d: %s", index, msg), nil)
}
