package align_test

import (
	"errors"
	"testing"

	"hamremix/internal/align"
	"hamremix/internal/config"
	"hamremix/internal/dialogue"
	"hamremix/internal/services"
	"hamremix/internal/transcript"
)

func script() []dialogue.Line {
	return []dialogue.Line{
		{Speaker: "SKINNER", Text: "Superintendent Chalmers, welcome!"},
		{Speaker: "CHALMERS", Text: "Well, Seymour, I made it, despite your directions."},
		{Speaker: "SKINNER", Text: "I hope you're prepared for an unforgettable luncheon!"},
	}
}

func TestAlignAssignsSpeakers(t *testing.T) {
	utterances := []transcript.Utterance{
		{Start: 0, End: 1.5, Text: "Superintendent Chalmers welcome"},
		{Start: 2, End: 4, Text: "well seymour I made it despite your directions"},
		{Start: 4.5, End: 6, Text: "I hope you're prepared for an unforgettable luncheon"},
	}
	aligner := &align.Aligner{Metric: config.MetricTokenSort}

	got, err := aligner.Align(utterances, script())
	if err != nil {
		t.Fatalf("Align returned error: %v", err)
	}
	want := []string{"SKINNER", "CHALMERS", "SKINNER"}
	for i, u := range got {
		if u.Speaker != want[i] {
			t.Fatalf("utterance %d speaker = %q, want %q", i, u.Speaker, want[i])
		}
		if u.Start != utterances[i].Start || u.End != utterances[i].End || u.Text != utterances[i].Text {
			t.Fatalf("utterance %d changed beyond speaker: %#v", i, u)
		}
	}
	if utterances[0].Speaker != "" {
		t.Fatal("Align mutated its input")
	}
}

func TestAlignPrefersExactLine(t *testing.T) {
	lines := []dialogue.Line{
		{Speaker: "SKINNER", Text: "Hello"},
		{Speaker: "CHALMERS", Text: "Goodbye"},
	}
	for _, metric := range []string{config.MetricTokenSort, config.MetricCosine} {
		t.Run(metric, func(t *testing.T) {
			aligner := &align.Aligner{Metric: metric}
			got, err := aligner.Align([]transcript.Utterance{{Start: 0, End: 1, Text: "Goodbye"}}, lines)
			if err != nil {
				t.Fatalf("Align returned error: %v", err)
			}
			if got[0].Speaker != "CHALMERS" {
				t.Fatalf("speaker = %q, want CHALMERS", got[0].Speaker)
			}
		})
	}
}

func TestMatchTieKeepsFirstLine(t *testing.T) {
	lines := []dialogue.Line{
		{Speaker: "SKINNER", Text: "Yes."},
		{Speaker: "CHALMERS", Text: "Yes."},
	}
	aligner := &align.Aligner{}
	m, err := aligner.Match("yes", lines)
	if err != nil {
		t.Fatalf("Match returned error: %v", err)
	}
	if m.Index != 0 || m.Line.Speaker != "SKINNER" {
		t.Fatalf("expected first line on tie, got %#v", m)
	}
	if m.Score != 100 {
		t.Fatalf("score = %v, want 100", m.Score)
	}
}

func TestAlignEmptyTextStillMatches(t *testing.T) {
	aligner := &align.Aligner{MinScore: 50}
	got, err := aligner.Align([]transcript.Utterance{{Start: 0, End: 1}}, script())
	if err != nil {
		t.Fatalf("Align returned error: %v", err)
	}
	if got[0].Speaker == "" {
		t.Fatal("expected empty utterance to receive a speaker")
	}
}

func TestAlignErrors(t *testing.T) {
	tests := []struct {
		name   string
		metric string
		lines  []dialogue.Line
	}{
		{name: "empty dialogue", lines: nil},
		{name: "unknown metric", metric: "jaro", lines: script()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aligner := &align.Aligner{Metric: tt.metric}
			_, err := aligner.Align([]transcript.Utterance{{Text: "hi"}}, tt.lines)
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestAlignEmptyUtterances(t *testing.T) {
	got, err := (&align.Aligner{}).Align(nil, script())
	if err != nil {
		t.Fatalf("Align returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no utterances, got %d", len(got))
	}
}
