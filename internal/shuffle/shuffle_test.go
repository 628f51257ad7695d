package shuffle_test

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"hamremix/internal/services"
	"hamremix/internal/shuffle"
	"hamremix/internal/timeline"
	"hamremix/internal/transcript"
)

// reverse is a deterministic source that reverses the slice.
type reverse struct{}

func (reverse) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func utterances() []transcript.Utterance {
	return []transcript.Utterance{
		{Start: 0, End: 1, Text: "one", Speaker: "SKINNER"},
		{Start: 1, End: 2, Text: "two", Speaker: "CHALMERS"},
		{Start: 2, End: 3, Text: "three", Speaker: "SKINNER"},
		{Start: 3, End: 4, Text: "four", Speaker: "AGNES"},
		{Start: 4, End: 5, Text: "five", Speaker: "SKINNER"},
	}
}

func TestSpeakerPermutesOnlyTarget(t *testing.T) {
	in := utterances()
	got := shuffle.Speaker(in, "SKINNER", reverse{})

	if got[0].Text != "five" || got[2].Text != "three" || got[4].Text != "one" {
		t.Fatalf("unexpected SKINNER order: %q %q %q", got[0].Text, got[2].Text, got[4].Text)
	}
	if got[0].Start != 4 {
		t.Fatalf("expected record to move whole, got %#v", got[0])
	}
	if got[1] != in[1] || got[3] != in[3] {
		t.Fatal("non-target utterances moved")
	}
	if !reflect.DeepEqual(in, utterances()) {
		t.Fatal("Speaker mutated its input")
	}
}

func TestSpeakerInvariants(t *testing.T) {
	in := utterances()
	for seed := uint64(0); seed < 20; seed++ {
		got := shuffle.Speaker(in, "SKINNER", shuffle.NewRand(seed))
		if len(got) != len(in) {
			t.Fatalf("seed %d: length changed", seed)
		}
		var before, after []string
		for i := range in {
			if in[i].Speaker != "SKINNER" {
				if got[i] != in[i] {
					t.Fatalf("seed %d: non-target at %d changed", seed, i)
				}
				continue
			}
			if got[i].Speaker != "SKINNER" {
				t.Fatalf("seed %d: position %d lost its speaker", seed, i)
			}
			before = append(before, in[i].Text)
			after = append(after, got[i].Text)
		}
		slices.Sort(before)
		slices.Sort(after)
		if !slices.Equal(before, after) {
			t.Fatalf("seed %d: multiset changed: %v vs %v", seed, before, after)
		}
	}
}

func TestSpeakerDeterministicForSeed(t *testing.T) {
	a := shuffle.Speaker(utterances(), "SKINNER", shuffle.NewRand(42))
	b := shuffle.Speaker(utterances(), "SKINNER", shuffle.NewRand(42))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different permutations")
	}
}

func TestSpeakerNoMatch(t *testing.T) {
	in := utterances()
	got := shuffle.Speaker(in, "NARRATOR", reverse{})
	if !reflect.DeepEqual(got, in) {
		t.Fatal("expected unchanged copy when speaker is absent")
	}
	got[0].Text = "changed"
	if in[0].Text == "changed" {
		t.Fatal("expected a copy, got aliasing slice")
	}
}

func TestSpeakerMatchesMixedCase(t *testing.T) {
	in := utterances()
	for i := range in {
		if in[i].Speaker == "SKINNER" {
			in[i].Speaker = "Skinner"
		}
	}
	targets, err := shuffle.ValidateSpeakers([]string{"skinner"}, []string{"SKINNER", "CHALMERS"})
	if err != nil {
		t.Fatalf("ValidateSpeakers returned error: %v", err)
	}
	got := shuffle.Speakers(in, targets, reverse{})
	if got[0].Text != "five" || got[4].Text != "one" {
		t.Fatalf("mixed-case speaker not shuffled: %#v", got)
	}
	if got[0].Speaker != "Skinner" {
		t.Fatalf("speaker label rewritten: %q", got[0].Speaker)
	}
	if got[1] != in[1] || got[3] != in[3] {
		t.Fatal("non-target utterances moved")
	}
}

func TestSpeakersAppliesEachTarget(t *testing.T) {
	in := utterances()
	in[3].Speaker = "CHALMERS"
	got := shuffle.Speakers(in, []string{"SKINNER", "CHALMERS"}, reverse{})
	if got[1].Text != "four" || got[3].Text != "two" {
		t.Fatalf("CHALMERS not shuffled: %#v", got)
	}
	if got[0].Text != "five" {
		t.Fatalf("SKINNER not shuffled: %#v", got)
	}
}

func TestIntervals(t *testing.T) {
	segments, err := timeline.Chop(4, 1)
	if err != nil {
		t.Fatalf("Chop returned error: %v", err)
	}
	got := shuffle.Intervals(segments, reverse{})
	if got[0].Start != 3 || got[3].Start != 0 {
		t.Fatalf("unexpected order %#v", got)
	}
	if segments[0].Start != 0 {
		t.Fatal("Intervals mutated its input")
	}
}

func TestValidateSpeakers(t *testing.T) {
	allowed := []string{"SKINNER", "CHALMERS", "AGNES", "NARRATOR"}

	got, err := shuffle.ValidateSpeakers([]string{" skinner", "Chalmers", "SKINNER", ""}, allowed)
	if err != nil {
		t.Fatalf("ValidateSpeakers returned error: %v", err)
	}
	if !slices.Equal(got, []string{"SKINNER", "CHALMERS"}) {
		t.Fatalf("ValidateSpeakers() = %v", got)
	}

	_, err = shuffle.ValidateSpeakers([]string{"skinner", "krusty"}, allowed)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
