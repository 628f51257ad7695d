// Package playback shows a rendered clip in an ffplay window.
package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"hamremix/internal/config"
	"hamremix/internal/logging"
	"hamremix/internal/services"
)

// DefaultWindowTitle is shown when no title is configured.
const DefaultWindowTitle = "You call hamburgers steamed hams?"

const component = "playback"

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// Player launches ffplay and blocks until the window closes or the clip ends.
type Player struct {
	Binary      string
	WindowTitle string
	Logger      *slog.Logger

	runner CommandRunner
}

// New builds a player from configuration.
func New(cfg config.Playback, logger *slog.Logger) *Player {
	return &Player{Binary: cfg.Player, WindowTitle: cfg.WindowTitle, Logger: logger}
}

// WithCommandRunner sets a custom command runner (for testing).
func (p *Player) WithCommandRunner(runner CommandRunner) {
	p.runner = runner
}

// Play opens path in a window and waits for playback to finish.
func (p *Player) Play(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		return services.Wrap(services.ErrIO, component, "play", path, err)
	}
	binary := strings.TrimSpace(p.Binary)
	if binary == "" {
		binary = "ffplay"
	}
	title := p.WindowTitle
	if strings.TrimSpace(title) == "" {
		title = DefaultWindowTitle
	}
	args := []string{"-hide_banner", "-loglevel", "error", "-autoexit", "-window_title", title, path}

	if p.Logger != nil {
		logging.NewComponentLogger(p.Logger, component).Info("playing clip", logging.String("path", path))
	}
	if err := p.run(ctx, binary, args...); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return ctx.Err()
		}
		return services.Wrap(services.ErrExternalTool, component, "play", path, err)
	}
	return nil
}

func (p *Player) run(ctx context.Context, name string, args ...string) error {
	if p.runner != nil {
		return p.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
