package pipeline

import (
	"context"
	"log/slog"

	"hamremix/internal/config"
	"hamremix/internal/history"
	"hamremix/internal/logging"
	"hamremix/internal/media/ffprobe"
	"hamremix/internal/media/playback"
	"hamremix/internal/media/render"
	"hamremix/internal/services"
	"hamremix/internal/services/whisperx"
	"hamremix/internal/timeline"
	"hamremix/internal/transcript"
)

const component = "pipeline"

// Transcriber turns the audio of a clip into utterances.
type Transcriber interface {
	Transcribe(ctx context.Context, source, workDir string) ([]transcript.Utterance, error)
}

// Prober reports the duration of a clip in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// Renderer writes a timeline cut from source to dest.
type Renderer interface {
	Render(ctx context.Context, source string, tl timeline.Timeline, dest string) error
}

// Player shows a finished clip.
type Player interface {
	Play(ctx context.Context, path string) error
}

// History records finished runs.
type History interface {
	Record(ctx context.Context, run *history.Run) error
}

// Runner wires configuration and collaborators for pipeline runs.
type Runner struct {
	Config      *config.Config
	Logger      *slog.Logger
	Transcriber Transcriber
	Prober      Prober
	Renderer    Renderer
	Player      Player
	History     History

	// SkipPreflight disables environment checks.
	SkipPreflight bool
}

// New returns a runner backed by the real external tools. History is left
// unset; callers that want runs recorded assign an opened store.
func New(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		Config: cfg,
		Logger: logger,
		Transcriber: whisperx.NewService(whisperx.Config{
			Model:       cfg.Transcription.WhisperXModel,
			CUDAEnabled: cfg.Transcription.CUDAEnabled,
			VADMethod:   cfg.Transcription.VADMethod,
			HFToken:     cfg.Transcription.HFToken,
			Language:    cfg.Transcription.Language,
		}, cfg.Render.FFmpegBinary, logger),
		Prober:   ffprobe.Prober{Binary: cfg.Render.FFprobeBinary},
		Renderer: render.New(cfg, logger),
		Player:   playback.New(cfg.Playback, logger),
	}
}

// step annotates ctx with a step name and returns a matching logger.
func (r *Runner) step(ctx context.Context, name string) (context.Context, *slog.Logger) {
	ctx = services.WithStep(ctx, name)
	return ctx, logging.WithContext(ctx, logging.NewComponentLogger(r.Logger, component))
}

func (r *Runner) record(ctx context.Context, run *history.Run, err error) {
	run.Finish(err)
	if r.History == nil {
		return
	}
	if recErr := r.History.Record(context.WithoutCancel(ctx), run); recErr != nil {
		_, logger := r.step(ctx, "history")
		logger.Warn("failed to record run", logging.Error(recErr))
	}
}
