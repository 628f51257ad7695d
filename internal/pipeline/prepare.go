package pipeline

import (
	"context"
	"strings"

	"hamremix/internal/align"
	"hamremix/internal/dialogue"
	"hamremix/internal/logging"
	"hamremix/internal/preflight"
	"hamremix/internal/services"
	"hamremix/internal/transcript"
)

// TranscriptOptions selects where utterances come from.
type TranscriptOptions struct {
	// Video overrides the configured source clip.
	Video string
	// Dialogue overrides the configured dialogue file.
	Dialogue string
	// TranscriptPath loads a saved transcript instead of transcribing.
	TranscriptPath string
	// Discard keeps a freshly aligned transcript in memory instead of saving
	// it to the output directory.
	Discard bool
}

// TranscriptResult describes the speaker-tagged transcript of a run.
type TranscriptResult struct {
	Utterances []transcript.Utterance
	// Path is the transcript file the utterances were loaded from or saved to.
	Path string
	// Saved reports whether Path was written by this run.
	Saved bool
}

func (r *Runner) video(override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return r.Config.Source.Video
}

func (r *Runner) dialoguePath(override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return r.Config.Source.Dialogue
}

func (r *Runner) preflight(ctx context.Context, in preflight.Inputs) error {
	if err := r.Config.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrIO, component, "preflight", "create directories", err)
	}
	if r.SkipPreflight {
		return nil
	}
	_, logger := r.step(ctx, "preflight")
	results := preflight.RunAll(ctx, r.Config, in)
	for _, res := range results {
		if !res.Passed {
			logger.Error("preflight check failed", logging.String("check", res.Name), logging.String("detail", res.Detail))
		}
	}
	return preflight.Err(results)
}

// Transcript returns speaker-tagged utterances. A saved transcript that
// already carries speakers is used as-is; otherwise the utterances are aligned
// against the dialogue and saved under a new numbered name unless
// opts.Discard is set.
func (r *Runner) Transcript(ctx context.Context, opts TranscriptOptions) (TranscriptResult, error) {
	var (
		utterances []transcript.Utterance
		err        error
	)
	if opts.TranscriptPath != "" {
		_, logger := r.step(ctx, "load transcript")
		utterances, err = transcript.Load(opts.TranscriptPath)
		if err != nil {
			return TranscriptResult{}, err
		}
		logger.Info("transcript loaded",
			logging.String("path", opts.TranscriptPath),
			logging.Int("utterances", len(utterances)),
		)
		if transcript.HasSpeakers(utterances) {
			return TranscriptResult{Utterances: utterances, Path: opts.TranscriptPath}, nil
		}
	} else {
		if r.Transcriber == nil {
			return TranscriptResult{}, services.Wrap(services.ErrConfiguration, component, "transcribe", "no transcriber configured", nil)
		}
		stepCtx, _ := r.step(ctx, "transcribe")
		utterances, err = r.Transcriber.Transcribe(stepCtx, r.video(opts.Video), r.Config.Paths.WorkDir)
		if err != nil {
			return TranscriptResult{}, err
		}
	}
	if len(utterances) == 0 {
		return TranscriptResult{}, services.Wrap(services.ErrValidation, component, "transcript", "no utterances found", nil)
	}

	aligned, err := r.Align(ctx, utterances, r.dialoguePath(opts.Dialogue))
	if err != nil {
		return TranscriptResult{}, err
	}
	if opts.Discard {
		return TranscriptResult{Utterances: aligned, Path: opts.TranscriptPath}, nil
	}

	_, logger := r.step(ctx, "save transcript")
	path, err := transcript.Save(r.Config.Paths.OutputDir, r.Config.Shuffle.TranscriptBase, aligned)
	if err != nil {
		return TranscriptResult{}, err
	}
	logger.Info("transcript saved", logging.String("path", path))
	return TranscriptResult{Utterances: aligned, Path: path, Saved: true}, nil
}

// Align tags utterances with speakers from the dialogue file at path.
func (r *Runner) Align(ctx context.Context, utterances []transcript.Utterance, dialoguePath string) ([]transcript.Utterance, error) {
	stepCtx := services.WithStep(ctx, "align")
	lines, err := dialogue.Load(dialoguePath, r.Config.DialogueDelimiter())
	if err != nil {
		return nil, err
	}
	aligner := align.New(r.Config.Alignment, logging.WithContext(stepCtx, r.Logger))
	return aligner.Align(utterances, lines)
}

// Transcribe checks the environment and produces a speaker-tagged transcript
// without rendering anything.
func (r *Runner) Transcribe(ctx context.Context, opts TranscriptOptions) (TranscriptResult, error) {
	in := preflight.Inputs{
		Video:      r.video(opts.Video),
		Dialogue:   r.dialoguePath(opts.Dialogue),
		Transcript: opts.TranscriptPath,
		Transcribe: opts.TranscriptPath == "",
	}
	if err := r.preflight(ctx, in); err != nil {
		return TranscriptResult{}, err
	}
	return r.Transcript(ctx, opts)
}
