package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"hamremix/internal/services"
	"hamremix/internal/timeline"
)

func sampleTimeline() timeline.Timeline {
	return timeline.Timeline{
		timeline.QuietInterval(0, 0),
		{Kind: timeline.Speaking, Start: 0, End: 1.5, Text: "Steamed hams", Speaker: "SKINNER"},
		timeline.QuietInterval(1.5, 2.25),
		{Kind: timeline.Speaking, Start: 2.25, End: 4, Text: "Steamed hams?", Speaker: "CHALMERS"},
		timeline.QuietInterval(4, 4),
	}
}

func TestBuildFilterGraphSkipsDegenerateIntervals(t *testing.T) {
	graph, segments := BuildFilterGraph(sampleTimeline(), CaptionStyle{})
	if segments != 3 {
		t.Fatalf("expected 3 segments, got %d", segments)
	}
	for _, want := range []string{
		"[0:v]trim=start=0:end=1.5,setpts=PTS-STARTPTS[v0];",
		"[0:a]atrim=start=1.5:end=2.25,asetpts=PTS-STARTPTS[a1];",
		"[v0][a0][v1][a1][v2][a2]concat=n=3:v=1:a=1[outv][outa]",
	} {
		if !strings.Contains(graph, want) {
			t.Fatalf("graph missing %q:\n%s", want, graph)
		}
	}
	if strings.Contains(graph, "drawtext") {
		t.Fatalf("captions disabled but drawtext present:\n%s", graph)
	}
}

func TestBuildFilterGraphCaptions(t *testing.T) {
	graph, _ := BuildFilterGraph(sampleTimeline(), CaptionStyle{Enabled: true, FontSize: 32, Color: "yellow", Box: true})
	if got := strings.Count(graph, "drawtext="); got != 2 {
		t.Fatalf("expected 2 captions, got %d:\n%s", got, graph)
	}
	for _, want := range []string{
		`text=SKINNER\\: Steamed hams`,
		"fontsize=32",
		"fontcolor=yellow",
		"box=1",
	} {
		if !strings.Contains(graph, want) {
			t.Fatalf("graph missing %q:\n%s", want, graph)
		}
	}
}

func TestEscapeFilterValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a:b", `a\\:b`},
		{"it's", `it\\\'s`},
		{"one, two; [three]", `one\, two\; \[three\]`},
		{`back\slash`, `back\\\\slash`},
		{"two\nlines", "two lines"},
	}
	for _, tt := range tests {
		if got := EscapeFilterValue(tt.in); got != tt.want {
			t.Fatalf("EscapeFilterValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderRunsFFmpegWithScript(t *testing.T) {
	workDir := t.TempDir()
	r := &Renderer{FFmpeg: "ffmpeg-test", VideoCodec: "libx264", AudioCodec: "aac", WorkDir: workDir}

	var gotArgs []string
	var script string
	r.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		if name != "ffmpeg-test" {
			t.Fatalf("unexpected binary %q", name)
		}
		gotArgs = args
		data, err := os.ReadFile(args[slices.Index(args, "-filter_complex_script")+1])
		if err != nil {
			t.Fatalf("read filter script: %v", err)
		}
		script = string(data)
		return nil
	})

	dest := filepath.Join(t.TempDir(), "out.mp4")
	if err := r.Render(context.Background(), "steamed_hams.mp4", sampleTimeline(), dest); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if gotArgs[len(gotArgs)-1] != dest {
		t.Fatalf("expected dest as last arg, got %v", gotArgs)
	}
	if !strings.Contains(script, "concat=n=3") {
		t.Fatalf("unexpected script:\n%s", script)
	}
	entries, _ := os.ReadDir(workDir)
	if len(entries) != 0 {
		t.Fatalf("expected filter script removed, found %d entries", len(entries))
	}
}

func TestRenderEmptyTimeline(t *testing.T) {
	r := &Renderer{WorkDir: t.TempDir()}
	r.WithCommandRunner(func(context.Context, string, ...string) error {
		t.Fatal("ffmpeg should not run")
		return nil
	})
	err := r.Render(context.Background(), "in.mp4", timeline.Timeline{timeline.QuietInterval(1, 1)}, "out.mp4")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRenderFailureRemovesPartialOutput(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.mp4")
	r := &Renderer{WorkDir: t.TempDir()}
	r.WithCommandRunner(func(context.Context, string, ...string) error {
		_ = os.WriteFile(dest, []byte("partial"), 0o644)
		return errors.New("encoder exploded")
	})
	err := r.Render(context.Background(), "in.mp4", sampleTimeline(), dest)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Fatalf("expected partial output removed, stat err=%v", statErr)
	}
}
