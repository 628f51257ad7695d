package whisperx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"hamremix/internal/services"
)

func argValue(args []string, flag string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

func TestTranscribeParsesSegmentsAndCleansUp(t *testing.T) {
	workDir := t.TempDir()
	svc := NewService(Config{Model: "small", Language: "en-US"}, "ffmpeg-test", nil)

	var calls []string
	var whisperArgs []string
	svc.WithCommandRunner(func(_ context.Context, name string, args ...string) error {
		calls = append(calls, name)
		switch name {
		case "ffmpeg-test":
			return os.WriteFile(args[len(args)-1], []byte("RIFF"), 0o644)
		case UVXCommand:
			whisperArgs = args
			source := args[slices.Index(args, "whisperx")+1]
			base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
			payload := `{"segments":[{"text":" Superintendent Chalmers! ","start":0.5,"end":1.25},{"text":"Seymour!","start":1.5,"end":2}]}`
			return os.WriteFile(filepath.Join(argValue(args, "--output_dir"), base+".json"), []byte(payload), 0o644)
		}
		return errors.New("unexpected command " + name)
	})

	utterances, err := svc.Transcribe(context.Background(), "/clips/steamed_hams.mp4", workDir)
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if !slices.Equal(calls, []string{"ffmpeg-test", UVXCommand}) {
		t.Fatalf("unexpected command sequence %v", calls)
	}
	if len(utterances) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(utterances))
	}
	if utterances[0].Text != "Superintendent Chalmers!" || utterances[0].Start != 0.5 || utterances[0].End != 1.25 {
		t.Fatalf("unexpected first utterance %#v", utterances[0])
	}
	if utterances[0].Speaker != "" {
		t.Fatalf("expected no speaker, got %q", utterances[0].Speaker)
	}
	if got := argValue(whisperArgs, "--model"); got != "small" {
		t.Fatalf("model = %q", got)
	}
	if got := argValue(whisperArgs, "--language"); got != "en" {
		t.Fatalf("language = %q", got)
	}
	if got := argValue(whisperArgs, "--output_format"); got != "json" {
		t.Fatalf("output format = %q", got)
	}
	entries, err := os.ReadDir(workDir)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected scratch files removed, found %d entries", len(entries))
	}
}

func TestTranscribeExtractFailure(t *testing.T) {
	workDir := t.TempDir()
	svc := NewService(Config{}, "", nil)
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		return errors.New("no audio stream")
	})
	_, err := svc.Transcribe(context.Background(), "clip.mp4", workDir)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	entries, _ := os.ReadDir(workDir)
	if len(entries) != 0 {
		t.Fatalf("expected scratch audio removed, found %d entries", len(entries))
	}
}

func TestTranscribeMissingOutput(t *testing.T) {
	svc := NewService(Config{}, "", nil)
	svc.WithCommandRunner(func(context.Context, string, ...string) error { return nil })
	_, err := svc.Transcribe(context.Background(), "clip.mp4", t.TempDir())
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestBuildArgsDevices(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    []string
		missing []string
	}{
		{
			name:    "cpu silero",
			cfg:     Config{},
			want:    []string{"--device", CPUDevice, "--compute_type", CPUComputeType, "--vad_method", VADMethodSilero},
			missing: []string{"--hf_token", "--extra-index-url", "--language"},
		},
		{
			name: "cuda pyannote",
			cfg:  Config{CUDAEnabled: true, VADMethod: VADMethodPyannote, HFToken: "hf_abc"},
			want: []string{"--device", CUDADevice, "--hf_token", "hf_abc", "--extra-index-url"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := NewService(tt.cfg, "", nil).buildArgs("in.wav", "out")
			for _, w := range tt.want {
				if !slices.Contains(args, w) {
					t.Fatalf("expected %q in %v", w, args)
				}
			}
			for _, m := range tt.missing {
				if slices.Contains(args, m) {
					t.Fatalf("did not expect %q in %v", m, args)
				}
			}
		})
	}
}

func TestLanguageCode(t *testing.T) {
	tests := map[string]string{
		"en":      "en",
		" DE ":    "de",
		"pt_BR":   "pt",
		"english": "",
		"":        "",
		"e1":      "",
	}
	for in, want := range tests {
		if got := languageCode(in); got != want {
			t.Fatalf("languageCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUtterancesCleansSegments(t *testing.T) {
	got := Utterances([]Segment{
		{Text: " Well\r\nSeymour\rI made it ", Start: 1, End: 2},
		{Text: "blip", Start: 2, End: 2},
	})
	if len(got) != 1 || got[0].Text != "Well\nSeymour\nI made it" {
		t.Fatalf("unexpected utterances %#v", got)
	}
}
