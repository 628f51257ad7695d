package services_test

import (
	"errors"
	"strings"
	"testing"

	"hamremix/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "render", "ffmpeg", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"render", "ffmpeg", "failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestFormatErrorIsConfigurationError(t *testing.T) {
	err := services.Wrap(services.ErrFormat, "dialogue", "load", "missing Speaker column", nil)
	if !errors.Is(err, services.ErrFormat) {
		t.Fatalf("expected format marker, got %v", err)
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected format error to classify as configuration error, got %v", err)
	}
	if errors.Is(err, services.ErrOrdering) {
		t.Fatal("format error must not match ordering marker")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"configuration", services.Wrap(services.ErrConfiguration, "shuffle", "", "unknown speaker", nil), 2},
		{"validation", services.Wrap(services.ErrValidation, "timeline", "", "empty", nil), 2},
		{"ordering", services.Wrap(services.ErrOrdering, "timeline", "", "overlap", nil), 1},
		{"io", services.Wrap(services.ErrIO, "transcript", "save", "", errors.New("disk full")), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
