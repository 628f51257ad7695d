package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"hamremix/internal/logging"
	"hamremix/internal/outputs"
	"hamremix/internal/services"
	"hamremix/internal/transcript"
)

const component = "whisperx"

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Service provides WhisperX transcription capabilities.
type Service struct {
	cfg           Config
	ffmpegBinary  string
	logger        *slog.Logger
	commandRunner CommandRunner
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config, ffmpegBinary string, logger *slog.Logger) *Service {
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		cfg:          cfg,
		ffmpegBinary: ffmpegBinary,
		logger:       logging.NewComponentLogger(logger, component),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner CommandRunner) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.model()
}

// Transcribe extracts the audio of source and returns the WhisperX segments as
// utterances in playback order. Scratch files are created under workDir and
// removed on every return path.
func (s *Service) Transcribe(ctx context.Context, source, workDir string) ([]transcript.Utterance, error) {
	if strings.TrimSpace(source) == "" {
		return nil, services.Wrap(services.ErrValidation, component, "transcribe", "source path required", nil)
	}
	if workDir == "" {
		workDir = os.TempDir()
	}

	wavPath, cleanupWav, err := outputs.TempFile(workDir, "hamremix-audio-*.wav")
	if err != nil {
		return nil, services.Wrap(services.ErrIO, component, "transcribe", "create scratch audio", err)
	}
	defer cleanupWav()

	s.logger.Info("extracting audio", logging.String("source", source))
	if err := s.extract(ctx, source, wavPath); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, component, "extract audio", source, err)
	}

	outputDir, err := os.MkdirTemp(workDir, "hamremix-whisperx-*")
	if err != nil {
		return nil, services.Wrap(services.ErrIO, component, "transcribe", "create scratch output dir", err)
	}
	defer os.RemoveAll(outputDir)

	s.logger.Info("running whisperx",
		logging.String("model", s.Model()),
		logging.Bool("cuda", s.cfg.CUDAEnabled),
	)
	if err := s.run(ctx, UVXCommand, s.buildArgs(wavPath, outputDir)...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, component, "transcribe", "whisperx", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(wavPath), filepath.Ext(wavPath))
	segments, err := LoadSegments(filepath.Join(outputDir, baseName+".json"))
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, component, "transcribe", "read whisperx output", err)
	}
	utterances := Utterances(segments)
	s.logger.Info("transcription complete", logging.Int("utterances", len(utterances)))
	return utterances, nil
}

func (s *Service) extract(ctx context.Context, source, dest string) error {
	return ExtractAudio(ctx, s.commandRunner, s.ffmpegBinary, source, dest)
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	return execRunner(ctx, name, args...)
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir string) []string {
	args := append([]string{}, s.cfg.indexArgs()...)
	args = append(args,
		"whisperx",
		source,
		"--model", s.cfg.model(),
		"--batch_size", BatchSize,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
		"--chunk_size", ChunkSize,
		"--vad_onset", VADOnset,
		"--vad_offset", VADOffset,
		"--beam_size", BeamSize,
		"--temperature", Temperature,
	)
	args = append(args, s.cfg.vadArgs()...)
	if lang := languageCode(s.cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	return append(args, s.cfg.deviceArgs()...)
}

// languageCode accepts "en" or regional forms like "en-US" and returns the
// two-letter code, or "" when the value is not usable.
func languageCode(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if i := strings.IndexAny(value, "-_"); i >= 0 {
		value = value[:i]
	}
	if len(value) != 2 {
		return ""
	}
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return ""
		}
	}
	return value
}

// Word represents a single word with timing from WhisperX output.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment represents a transcribed segment from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words"`
}

// whisperXPayload is the JSON structure from WhisperX output.
type whisperXPayload struct {
	Segments []Segment `json:"segments"`
}

// LoadSegments loads segments from a WhisperX JSON file.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var payload whisperXPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse whisperx json: %w", err)
	}
	return payload.Segments, nil
}

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Utterances converts segments into speaker-less utterances with trimmed text.
// Carriage returns become plain newlines so the text survives a CSV save.
// Segments without positive length are dropped.
func Utterances(segments []Segment) []transcript.Utterance {
	out := make([]transcript.Utterance, 0, len(segments))
	for _, seg := range segments {
		if seg.End <= seg.Start {
			continue
		}
		out = append(out, transcript.Utterance{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(lineBreaks.Replace(seg.Text)),
		})
	}
	return out
}
