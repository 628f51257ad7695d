package deps

import "hamremix/internal/config"

// Requirements lists the external tools used by the configured pipeline.
// Transcription tools are optional when transcribe is false, since a saved
// transcript can stand in for them.
func Requirements(cfg *config.Config, transcribe bool) []Requirement {
	reqs := []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Render.FFmpegBinary,
			Description: "Required for audio extraction and rendering",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Render.FFprobeBinary,
			Description: "Required for clip duration",
		},
		{
			Name:        "uvx",
			Command:     "uvx",
			Description: "Runs WhisperX for transcription",
			Optional:    !transcribe,
		},
		{
			Name:        "ffplay",
			Command:     cfg.Playback.Player,
			Description: "Plays the finished clip",
			Optional:    true,
		},
	}
	return reqs
}
