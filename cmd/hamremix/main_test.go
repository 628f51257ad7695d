package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hamremix/internal/deps"
	"hamremix/internal/history"
	"hamremix/internal/preflight"
	"hamremix/internal/services"
	"hamremix/internal/testsupport"
)

func TestConfigInitWritesSample(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "conf", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample config at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithSpeakers("SKINNER", "CHALMERS"))

	out, err := env.run(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "SKINNER, CHALMERS")
	requireContains(t, out, "Configuration valid")
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := env.run(t, "config", "validate")
	if err == nil {
		t.Fatal("expected invalid config to fail")
	}
	if services.ExitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %d (%v)", services.ExitCode(err), err)
	}
}

func TestInvalidLogFormatFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	_, err := env.run(t, "--log-format", "xml", "history")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRemixRejectsUnknownSpeaker(t *testing.T) {
	env := setupCLITestEnv(t)
	_, err := env.run(t, "remix", "--speaker", "HOMER", "--seed", "1")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if services.ExitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %d", services.ExitCode(err))
	}
	requireContains(t, err.Error(), "HOMER")
}

func TestRemixWithoutSpeakersKeepsOrder(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithStubScript("ffprobe", "echo '{\"format\":{\"duration\":\"10\"},\"streams\":[]}'\n"),
		testsupport.WithStubScript("ffmpeg", captureGraphScript),
	)
	testsupport.WriteFile(t, env.cfg.Source.Video, 16)
	transcriptPath := filepath.Join(env.baseDir, "transcript_001.csv")
	writeTranscript(t, transcriptPath,
		"1.000,2.000,SKINNER,Well Seymour I made it",
		"3.000,4.000,CHALMERS,Despite your directions",
		"5.000,6.000,SKINNER,Superintendent Chalmers",
	)
	outputPath := filepath.Join(env.cfg.Paths.OutputDir, "caption_only.mp4")

	out, err := env.run(t, "remix", "--transcript", transcriptPath, "--seed", "3", "--output", outputPath)
	if err != nil {
		t.Fatalf("remix without --speaker: %v", err)
	}
	requireContains(t, out, "Output:     "+outputPath)
	if strings.Contains(out, "Shuffled:") {
		t.Fatalf("expected no shuffled speakers, got:\n%s", out)
	}

	graph, err := os.ReadFile(filepath.Join(env.baseDir, "bin", "graph.txt"))
	if err != nil {
		t.Fatalf("read captured filter graph: %v", err)
	}
	last := -1
	for _, cut := range []string{"trim=start=0:end=1,", "trim=start=1:end=2,", "trim=start=3:end=4,", "trim=start=5:end=6,", "trim=start=6:end=10,"} {
		idx := strings.Index(string(graph), "[0:v]"+cut)
		if idx < 0 {
			t.Fatalf("filter graph missing %q:\n%s", cut, graph)
		}
		if idx < last {
			t.Fatalf("cut %q out of source order:\n%s", cut, graph)
		}
		last = idx
	}
}

// captureGraphScript copies the filter script ffmpeg is handed next to the stub.
const captureGraphScript = `prev=""
for arg in "$@"; do
  if [ "$prev" = "-filter_complex_script" ]; then cp "$arg" "$(dirname "$0")/graph.txt"; fi
  prev="$arg"
done
exit 0
`

func TestTimelineTableAndJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	transcriptPath := filepath.Join(env.baseDir, "transcript_001.csv")
	writeTranscript(t, transcriptPath,
		"1.000,2.000,SKINNER,Well Seymour I made it",
		"3.000,4.000,CHALMERS,Despite your directions",
		"5.000,6.000,SKINNER,Superintendent Chalmers",
	)

	out, err := env.run(t, "timeline", "--transcript", transcriptPath, "--speaker", "skinner", "--seed", "7", "--duration", "10")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	requireContains(t, out, "CHALMERS")
	requireContains(t, out, "Seed: 7")
	requireContains(t, out, "Playable: 7")

	out, err = env.run(t, "timeline", "--transcript", transcriptPath, "--speaker", "SKINNER", "--seed", "7", "--duration", "10", "--json")
	if err != nil {
		t.Fatalf("timeline --json: %v", err)
	}
	var rows []timelineRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode timeline json: %v\n%s", err, out)
	}
	if len(rows) != 7 {
		t.Fatalf("expected 7 intervals, got %d", len(rows))
	}
	wantKinds := []string{"quiet", "speaking", "quiet", "speaking", "quiet", "speaking", "quiet"}
	for i, row := range rows {
		if row.Kind != wantKinds[i] {
			t.Fatalf("row %d kind = %q, want %q", i, row.Kind, wantKinds[i])
		}
	}
	if rows[3].Speaker != "CHALMERS" || rows[3].Start != 3 {
		t.Fatalf("unshuffled speaker moved: %+v", rows[3])
	}
	if rows[1].Speaker != "SKINNER" || rows[5].Speaker != "SKINNER" {
		t.Fatalf("shuffled slots should hold SKINNER lines: %+v %+v", rows[1], rows[5])
	}
	if rows[6].Start != 6 || rows[6].End != 10 {
		t.Fatalf("expected trailing quiet 6-10, got %+v", rows[6])
	}
}

func TestTimelineAlignsWithoutSaving(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteDialogue(t, env.cfg.Source.Dialogue,
		[2]string{"SKINNER", "Well Seymour I made it"},
		[2]string{"CHALMERS", "Despite your directions"},
	)
	transcriptPath := filepath.Join(env.baseDir, "untagged.csv")
	writeTranscript(t, transcriptPath,
		"1.000,2.000,,Well Seymour I made it",
		"3.000,4.000,,Despite your directions",
	)

	out, err := env.run(t, "timeline", "--transcript", transcriptPath, "--seed", "1", "--duration", "5", "--json")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	var rows []timelineRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode timeline json: %v", err)
	}
	if len(rows) != 5 || rows[1].Speaker != "SKINNER" || rows[3].Speaker != "CHALMERS" {
		t.Fatalf("expected aligned speakers, got %+v", rows)
	}
	entries, err := os.ReadDir(env.cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("timeline wrote %d entries to the output dir", len(entries))
	}
}

func TestTimelineRejectsOverlap(t *testing.T) {
	env := setupCLITestEnv(t)
	transcriptPath := filepath.Join(env.baseDir, "transcript_001.csv")
	writeTranscript(t, transcriptPath,
		"1.000,3.000,SKINNER,Well Seymour",
		"2.000,4.000,CHALMERS,I made it",
	)
	_, err := env.run(t, "timeline", "--transcript", transcriptPath, "--speaker", "SKINNER", "--duration", "10")
	if !errors.Is(err, services.ErrOrdering) {
		t.Fatalf("expected ordering error, got %v", err)
	}
}

func TestHistoryEmptyAndListed(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")

	store := testsupport.MustOpenHistory(t, env.cfg)
	run := history.NewRun(history.ModeRemix, env.cfg.Source.Video, 42)
	run.Speakers = []string{"SKINNER"}
	run.OutputPath = filepath.Join(env.cfg.Paths.OutputDir, "steamed_hams_001.mp4")
	run.Finish(nil)
	if err := store.Record(t.Context(), run); err != nil {
		t.Fatalf("record run: %v", err)
	}

	out, err = env.run(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "steamed_hams_001.mp4")
	requireContains(t, out, "SKINNER")

	out, err = env.run(t, "history", "--json")
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}
	var rows []historyRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode history json: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != run.ID || rows[0].Seed != 42 {
		t.Fatalf("unexpected history rows: %+v", rows)
	}
}

func TestCleanEmptiesOutputDir(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.OutputDir, "steamed_hams_001.mp4"), 8)
	testsupport.WriteFile(t, filepath.Join(env.cfg.Paths.OutputDir, "transcript_001.csv"), 8)

	out, err := env.run(t, "clean")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	requireContains(t, out, "Removed 2 entries")
	entries, err := os.ReadDir(env.cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty output dir, found %d entries", len(entries))
	}
}

func TestDoctorReady(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())
	testsupport.WriteFile(t, env.cfg.Source.Video, 16)
	testsupport.WriteDialogue(t, env.cfg.Source.Dialogue, [2]string{"SKINNER", "Well Seymour"})

	out, err := env.run(t, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "== Tools ==")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "Ready to remix")
}

func TestDoctorReportsMissingInputs(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())

	out, err := env.run(t, "doctor")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, out, "[ERROR]")
	requireContains(t, err.Error(), "Source video")
}

func TestRenderStatusLine(t *testing.T) {
	got := renderStatusLine("FFmpeg", statusError, "missing", false)
	if !strings.HasPrefix(got, statusIndent+"FFmpeg:") || !strings.HasSuffix(got, "[ERROR] missing") {
		t.Fatalf("unexpected status line %q", got)
	}
	colored := renderStatusLine("FFmpeg", statusOK, "Ready", true)
	if !strings.HasPrefix(colored, ansiGreen) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected colored line, got %q", colored)
	}
	if shouldColorize(io.Discard) {
		t.Fatal("expected non-file writer to disable color")
	}
}

func TestDependencyLines(t *testing.T) {
	lines := dependencyLines([]deps.Status{
		{Requirement: deps.Requirement{Name: "FFmpeg"}, Available: true, Path: "/usr/bin/ffmpeg"},
		{Requirement: deps.Requirement{Name: "uvx"}, Detail: `binary "uvx" not found`},
		{Requirement: deps.Requirement{Name: "ffplay", Optional: true}, Detail: `binary "ffplay" not found`},
	}, false)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), lines)
	}
	requireContains(t, lines[0], "[OK] Ready (/usr/bin/ffmpeg)")
	requireContains(t, lines[1], "[ERROR]")
	requireContains(t, lines[2], "[WARN]")
	requireContains(t, lines[2], "(optional)")
	requireContains(t, lines[3], "Missing:")
	requireContains(t, lines[3], "uvx")
}

func TestCheckLinesOptional(t *testing.T) {
	lines := checkLines([]preflight.Result{
		{Name: "Dialogue", Detail: "missing"},
		{Name: "Source video", Passed: true, Detail: "clip.mp4"},
	}, map[string]bool{"Dialogue": true}, false)
	requireContains(t, lines[0], "[WARN] missing")
	requireContains(t, lines[1], "[OK] clip.mp4")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"Superintendent Chalmers", 10, "Superin..."},
		{"  padded  ", 0, "padded"},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestTimelineProbesDuration(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubScript("ffprobe",
		"echo '{\"format\":{\"duration\":\"8.5\"},\"streams\":[]}'\n"))
	testsupport.WriteFile(t, env.cfg.Source.Video, 16)
	transcriptPath := filepath.Join(env.baseDir, "transcript_001.csv")
	writeTranscript(t, transcriptPath,
		"1.000,2.000,SKINNER,Well Seymour",
		"3.000,4.000,AGNES,Seymour the house is on fire",
	)

	out, err := env.run(t, "timeline", "--transcript", transcriptPath, "--speaker", "AGNES", "--seed", "1", "--json")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	var rows []timelineRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode timeline json: %v", err)
	}
	last := rows[len(rows)-1]
	if last.Kind != "quiet" || last.Start != 4 || last.End != 8.5 {
		t.Fatalf("expected trailing quiet to end at the probed duration, got %+v", last)
	}
}
