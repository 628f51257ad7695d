package logging

import (
	"context"
	"log/slog"

	"hamremix/internal/services"
)

// Structured field keys shared by every handler.
const (
	FieldComponent = "component"
	// FieldRunID carries the uuid of the remix or chop run.
	FieldRunID = "run_id"
	// FieldStep names the pipeline step: transcribe, align, plan, render, play.
	FieldStep = "step"
)

// ContextFields returns the run and step recorded on ctx.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if step, ok := services.StepFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStep, step))
	}
	return fields
}

// WithContext binds the run and step on ctx to logger, so records keep them
// even when logged without the context. A nil logger yields a no-op logger.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if fields := ContextFields(ctx); len(fields) > 0 {
		return logger.With(attrsToArgs(fields)...)
	}
	return logger
}
