// Package shuffle permutes the utterances of selected speakers while leaving
// every other utterance in place.
package shuffle

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"hamremix/internal/services"
	"hamremix/internal/timeline"
	"hamremix/internal/transcript"
)

const component = "shuffle"

// Source supplies the permutation. *rand.Rand satisfies it.
type Source interface {
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a deterministic PCG-backed source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Speaker returns a copy of utterances in which the records spoken by target
// are permuted among the positions that target occupied. Records move whole,
// timestamps included. Speaker names match case-insensitively.
func Speaker(utterances []transcript.Utterance, target string, rng Source) []transcript.Utterance {
	out := slices.Clone(utterances)
	target = normalize(target)
	var positions []int
	for i, u := range out {
		if normalize(u.Speaker) == target {
			positions = append(positions, i)
		}
	}
	if len(positions) < 2 || rng == nil {
		return out
	}
	picked := make([]transcript.Utterance, len(positions))
	for k, idx := range positions {
		picked[k] = out[idx]
	}
	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	for k, idx := range positions {
		out[idx] = picked[k]
	}
	return out
}

// Speakers applies Speaker for each target in order.
func Speakers(utterances []transcript.Utterance, targets []string, rng Source) []transcript.Utterance {
	out := slices.Clone(utterances)
	for _, target := range targets {
		out = Speaker(out, target, rng)
	}
	return out
}

// Intervals returns a shuffled copy of intervals.
func Intervals(intervals []timeline.Interval, rng Source) []timeline.Interval {
	out := slices.Clone(intervals)
	if rng == nil {
		return out
	}
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// ValidateSpeakers upper-cases and de-duplicates requested names and fails
// if any is not in allowed.
func ValidateSpeakers(requested, allowed []string) ([]string, error) {
	known := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		known[normalize(name)] = struct{}{}
	}
	out := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	var unknown []string
	for _, name := range requested {
		name = normalize(name)
		if name == "" {
			continue
		}
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(unknown) > 0 {
		return nil, services.Wrap(services.ErrConfiguration, component, "validate speakers",
			fmt.Sprintf("unknown speaker(s) %s; allowed: %s", strings.Join(unknown, ", "), strings.Join(allowed, ", ")), nil)
	}
	return out, nil
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
