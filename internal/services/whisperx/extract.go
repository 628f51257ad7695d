package whisperx

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExtractAudio writes the first audio stream of source to dest as mono 16 kHz
// PCM, the input WhisperX expects. A nil run executes ffmpeg directly.
func ExtractAudio(ctx context.Context, run CommandRunner, ffmpegBinary, source, dest string) error {
	if run == nil {
		run = execRunner
	}
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	return run(ctx, ffmpegBinary, buildFFmpegExtractArgs(source, dest)...)
}

func buildFFmpegExtractArgs(source, dest string) []string {
	return []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", source,
		"-map", "0:a:0",
		"-vn", "-sn", "-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}

// execRunner runs name and folds its combined output into the error.
func execRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	// WhisperX checkpoints need torch's pre-2.6 load behavior.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
