package preflight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hamremix/internal/config"
	"hamremix/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Inputs names the files a run will read. Empty entries are skipped.
type Inputs struct {
	Video      string
	Dialogue   string
	Transcript string
	// Transcribe marks WhisperX as required.
	Transcribe bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, in Inputs) []Result {
	if cfg == nil {
		return nil
	}
	var results []Result

	results = append(results, CheckWritableDir("Output directory", cfg.Paths.OutputDir))
	results = append(results, CheckWritableDir("State directory", cfg.Paths.StateDir))
	if cfg.Paths.WorkDir != "" {
		results = append(results, CheckWritableDir("Work directory", cfg.Paths.WorkDir))
	}
	if in.Video != "" {
		results = append(results, CheckReadableFile("Source video", in.Video))
	}
	if in.Dialogue != "" {
		results = append(results, CheckReadableFile("Dialogue", in.Dialogue))
	}
	if in.Transcript != "" {
		results = append(results, CheckReadableFile("Transcript", in.Transcript))
	}
	for _, status := range CheckSystemDeps(ctx, cfg, in.Transcribe) {
		if status.Optional {
			continue
		}
		detail := status.Path
		if !status.Available {
			detail = status.Detail
		}
		results = append(results, Result{Name: status.Name, Passed: status.Available, Detail: detail})
	}
	return results
}

// Err joins the failed checks into one error, or returns nil.
func Err(results []Result) error {
	var failures []string
	for _, r := range results {
		if !r.Passed {
			failures = append(failures, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "check", strings.Join(failures, "; "), errors.New("environment not ready"))
}
