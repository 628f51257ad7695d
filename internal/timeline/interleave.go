package timeline

import (
	"fmt"
	"math"

	"hamremix/internal/services"
	"hamremix/internal/transcript"
)

// Interleave merges quiet intervals with utterances as
// quiet[0], u[0], quiet[1], u[1], ..., u[n-1], quiet[n].
// quiet must hold n or n+1 entries; with n the timeline ends on the last
// utterance.
func Interleave(utterances []transcript.Utterance, quiet []Interval) (Timeline, error) {
	n := len(utterances)
	if len(quiet) != n && len(quiet) != n+1 {
		return nil, services.Wrap(services.ErrValidation, component, "interleave",
			fmt.Sprintf("expected %d or %d quiet intervals, got %d", n, n+1, len(quiet)), nil)
	}
	out := make(Timeline, 0, n+len(quiet))
	for i, u := range utterances {
		out = append(out, quiet[i], SpeakingInterval(u))
	}
	if len(quiet) == n+1 {
		out = append(out, quiet[n])
	}
	return out, nil
}

// Chop splits [0, total) into consecutive intervals of size seconds. A final
// remainder shorter than size is dropped.
func Chop(total, size float64) ([]Interval, error) {
	if size <= 0 || math.IsNaN(size) {
		return nil, services.Wrap(services.ErrValidation, component, "chop",
			fmt.Sprintf("segment size must be positive, got %g", size), nil)
	}
	if total <= 0 || math.IsNaN(total) {
		return nil, services.Wrap(services.ErrValidation, component, "chop",
			fmt.Sprintf("clip duration must be positive, got %g", total), nil)
	}
	count := int(math.Floor(total / size))
	out := make([]Interval, 0, count)
	for i := range count {
		out = append(out, QuietInterval(float64(i)*size, float64(i+1)*size))
	}
	return out, nil
}
