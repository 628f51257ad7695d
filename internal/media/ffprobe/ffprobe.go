package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"hamremix/internal/services"
)

// DefaultBinary is used when no ffprobe path is configured.
const DefaultBinary = "ffprobe"

// probeArgs limits ffprobe to the container and stream sections.
var probeArgs = []string{"-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json"}

// Result is the subset of ffprobe JSON the remixer reads.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream is one elementary stream of the probed clip.
type Stream struct {
	Index     int    `json:"index"`
	CodecType string `json:"codec_type"`
	Duration  string `json:"duration"`
}

// Format is the container section of the probe output.
type Format struct {
	Filename string `json:"filename"`
	Duration string `json:"duration"`
}

// Inspect runs ffprobe against path and decodes its JSON report.
func Inspect(ctx context.Context, binary, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, fmt.Errorf("ffprobe inspect: empty path")
	}

	args := append(append([]string{}, probeArgs...), "--", path)
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, msg)
		}
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}
	return Decode(stdout.Bytes())
}

// Decode parses ffprobe JSON output.
func Decode(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// HasStream reports whether a stream of the given codec type is present.
func (r Result) HasStream(kind string) bool {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, kind) {
			return true
		}
	}
	return false
}

// DurationSeconds prefers the container duration and falls back to the
// longest stream. Zero means nothing was reported; NaN means the container
// value could not be parsed.
func (r Result) DurationSeconds() float64 {
	if d := seconds(r.Format.Duration); d != 0 {
		return d
	}
	longest := 0.0
	for _, stream := range r.Streams {
		d := seconds(stream.Duration)
		if !math.IsNaN(d) {
			longest = math.Max(longest, d)
		}
	}
	return longest
}

// ValidDuration returns DurationSeconds, rejecting values that are not finite
// and positive.
func (r Result) ValidDuration(path string) (float64, error) {
	d := r.DurationSeconds()
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
		return 0, services.Wrap(services.ErrExternalTool, "ffprobe", "duration",
			fmt.Sprintf("%s: no usable duration (%q)", path, r.Format.Duration), nil)
	}
	return d, nil
}

// Prober reports clip durations for the timeline planner.
type Prober struct {
	Binary string
}

// Duration returns the playable length of path in seconds.
func (p Prober) Duration(ctx context.Context, path string) (float64, error) {
	result, err := Inspect(ctx, p.Binary, path)
	if err != nil {
		return 0, services.Wrap(services.ErrExternalTool, "ffprobe", "duration", path, err)
	}
	return result.ValidDuration(path)
}

func seconds(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return parsed
}
