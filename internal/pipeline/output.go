package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"hamremix/internal/logging"
	"hamremix/internal/outputs"
	"hamremix/internal/services"
	"hamremix/internal/timeline"
)

// OutputOptions controls where a rendered clip goes and whether it is shown.
type OutputOptions struct {
	// OutputPath is used verbatim when set; otherwise the next free
	// <output_base>_NNN.mp4 in the output directory is reserved.
	OutputPath string
	// Play opens the clip once rendered.
	Play bool
	// NoSave renders to a scratch file, plays it, and deletes it.
	NoSave bool
}

// deliver renders tl from source and plays it when asked. It returns the saved
// path, or "" for NoSave runs.
func (r *Runner) deliver(ctx context.Context, source string, tl timeline.Timeline, opts OutputOptions) (string, error) {
	if r.Renderer == nil {
		return "", services.Wrap(services.ErrConfiguration, component, "render", "no renderer configured", nil)
	}
	stepCtx, logger := r.step(ctx, "render")

	dest, cleanup, err := r.destination(opts)
	if err != nil {
		return "", err
	}
	defer cleanup()

	if err := r.Renderer.Render(stepCtx, source, tl, dest); err != nil {
		return "", err
	}
	if !opts.NoSave {
		logger.Info("clip saved", logging.String("path", dest))
	}

	if opts.Play || opts.NoSave {
		if r.Player == nil {
			return "", services.Wrap(services.ErrConfiguration, component, "play", "no player configured", nil)
		}
		playCtx, _ := r.step(ctx, "play")
		if err := r.Player.Play(playCtx, dest); err != nil {
			return "", err
		}
	}
	if opts.NoSave {
		return "", nil
	}
	return dest, nil
}

func (r *Runner) destination(opts OutputOptions) (string, func(), error) {
	noop := func() {}
	switch {
	case opts.NoSave:
		path, cleanup, err := outputs.TempFile(r.Config.Paths.WorkDir, "hamremix-preview-*.mp4")
		if err != nil {
			return "", noop, services.Wrap(services.ErrIO, component, "render", "create preview file", err)
		}
		return path, cleanup, nil
	case opts.OutputPath != "":
		if err := os.MkdirAll(filepath.Dir(opts.OutputPath), 0o755); err != nil {
			return "", noop, services.Wrap(services.ErrIO, component, "render", "create output directory", err)
		}
		return opts.OutputPath, noop, nil
	default:
		alloc := outputs.Allocator{Dir: r.Config.Paths.OutputDir}
		path, err := alloc.Reserve(r.Config.Shuffle.OutputBase, ".mp4")
		if err != nil {
			return "", noop, services.Wrap(services.ErrIO, component, "render", "reserve output name", err)
		}
		return path, noop, nil
	}
}
