package render

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"hamremix/internal/config"
	"hamremix/internal/logging"
	"hamremix/internal/outputs"
	"hamremix/internal/services"
	"hamremix/internal/timeline"
)

const component = "render"

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Renderer cuts and concatenates source intervals through ffmpeg.
type Renderer struct {
	FFmpeg     string
	VideoCodec string
	AudioCodec string
	Captions   CaptionStyle
	WorkDir    string
	Logger     *slog.Logger

	runner CommandRunner
}

// New builds a renderer from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Renderer {
	return &Renderer{
		FFmpeg:     cfg.Render.FFmpegBinary,
		VideoCodec: cfg.Render.VideoCodec,
		AudioCodec: cfg.Render.AudioCodec,
		Captions: CaptionStyle{
			Enabled:  cfg.Render.Captions,
			FontSize: cfg.Render.FontSize,
			Color:    cfg.Render.FontColor,
			FontFile: cfg.Render.FontFile,
			Box:      cfg.Render.Box,
		},
		WorkDir: cfg.Paths.WorkDir,
		Logger:  logger,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (r *Renderer) WithCommandRunner(runner CommandRunner) {
	r.runner = runner
}

// Render writes the playable intervals of tl, cut from source, to dest.
// Zero-length intervals are skipped.
func (r *Renderer) Render(ctx context.Context, source string, tl timeline.Timeline, dest string) error {
	graph, segments := BuildFilterGraph(tl, r.Captions)
	if segments == 0 {
		return services.Wrap(services.ErrValidation, component, "render", "timeline has no playable intervals", nil)
	}

	scriptPath, cleanup, err := outputs.TempFile(r.WorkDir, "hamremix-filter-*.txt")
	if err != nil {
		return services.Wrap(services.ErrIO, component, "render", "create filter script", err)
	}
	defer cleanup()
	if err := os.WriteFile(scriptPath, []byte(graph), 0o644); err != nil {
		return services.Wrap(services.ErrIO, component, "render", "write filter script", err)
	}

	logger := r.logger()
	logger.Info("rendering clip",
		logging.String("source", source),
		logging.String("dest", dest),
		logging.Int("segments", segments),
		logging.Seconds("duration_seconds", tl.Duration()),
	)
	logger.Debug("filter graph", logging.String("script", graph))

	if err := r.run(ctx, r.binary(), r.buildArgs(source, scriptPath, dest)...); err != nil {
		_ = os.Remove(dest)
		return services.Wrap(services.ErrExternalTool, component, "render", dest, err)
	}
	return nil
}

func (r *Renderer) buildArgs(source, scriptPath, dest string) []string {
	videoCodec := r.VideoCodec
	if videoCodec == "" {
		videoCodec = "libx264"
	}
	audioCodec := r.AudioCodec
	if audioCodec == "" {
		audioCodec = "aac"
	}
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-filter_complex_script", scriptPath,
		"-map", "[outv]",
		"-map", "[outa]",
		"-c:v", videoCodec,
		"-c:a", audioCodec,
		"-movflags", "+faststart",
		dest,
	}
}

func (r *Renderer) binary() string {
	if strings.TrimSpace(r.FFmpeg) == "" {
		return "ffmpeg"
	}
	return r.FFmpeg
}

func (r *Renderer) run(ctx context.Context, name string, args ...string) error {
	if r.runner != nil {
		return r.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (r *Renderer) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.NewNop()
	}
	return logging.NewComponentLogger(r.Logger, component)
}
