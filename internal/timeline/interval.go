package timeline

import (
	"fmt"

	"hamremix/internal/transcript"
)

// Kind distinguishes quiet gaps from spoken utterances.
type Kind int

const (
	Quiet Kind = iota
	Speaking
)

func (k Kind) String() string {
	switch k {
	case Quiet:
		return "quiet"
	case Speaking:
		return "speaking"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Interval is one contiguous span of the source clip.
type Interval struct {
	Kind    Kind
	Start   float64
	End     float64
	Text    string
	Speaker string
}

// QuietInterval builds a quiet span.
func QuietInterval(start, end float64) Interval {
	return Interval{Kind: Quiet, Start: start, End: end}
}

// SpeakingInterval converts an utterance into a speaking span.
func SpeakingInterval(u transcript.Utterance) Interval {
	return Interval{Kind: Speaking, Start: u.Start, End: u.End, Text: u.Text, Speaker: u.Speaker}
}

// Duration returns End-Start.
func (i Interval) Duration() float64 {
	return i.End - i.Start
}

// Degenerate reports whether the interval has no positive length.
func (i Interval) Degenerate() bool {
	return i.End <= i.Start
}

// Caption returns the overlay text for a speaking interval, "" otherwise.
func (i Interval) Caption() string {
	if i.Kind != Speaking {
		return ""
	}
	if i.Speaker == "" {
		return i.Text
	}
	return i.Speaker + ": " + i.Text
}

// Timeline is an ordered sequence of intervals.
type Timeline []Interval

// Duration sums the lengths of all non-degenerate intervals.
func (t Timeline) Duration() float64 {
	var total float64
	for _, iv := range t {
		if !iv.Degenerate() {
			total += iv.Duration()
		}
	}
	return total
}

// Playable drops degenerate intervals.
func (t Timeline) Playable() Timeline {
	out := make(Timeline, 0, len(t))
	for _, iv := range t {
		if !iv.Degenerate() {
			out = append(out, iv)
		}
	}
	return out
}
