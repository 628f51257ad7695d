package transcript

// Utterance is a transcribed or scripted unit of speech. Speaker is empty
// until the aligner assigns one.
type Utterance struct {
	Start   float64
	End     float64
	Text    string
	Speaker string
}

// Duration returns End - Start.
func (u Utterance) Duration() float64 {
	return u.End - u.Start
}

// Clone returns a copy of utterances that shares no backing array.
func Clone(utterances []Utterance) []Utterance {
	if utterances == nil {
		return nil
	}
	out := make([]Utterance, len(utterances))
	copy(out, utterances)
	return out
}

// HasSpeakers reports whether every utterance carries a speaker.
func HasSpeakers(utterances []Utterance) bool {
	for _, u := range utterances {
		if u.Speaker == "" {
			return false
		}
	}
	return len(utterances) > 0
}

// Speakers returns the distinct speakers in first-appearance order.
func Speakers(utterances []Utterance) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, u := range utterances {
		if u.Speaker == "" {
			continue
		}
		if _, ok := seen[u.Speaker]; ok {
			continue
		}
		seen[u.Speaker] = struct{}{}
		out = append(out, u.Speaker)
	}
	return out
}
