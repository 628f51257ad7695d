package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSource(); err != nil {
		return err
	}
	c.normalizeTranscription()
	c.normalizeAlignment()
	c.normalizeShuffle()
	if err := c.normalizeRender(); err != nil {
		return err
	}
	c.normalizePlayback()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSource() error {
	if value, ok := os.LookupEnv("HAMREMIX_VIDEO"); ok && strings.TrimSpace(value) != "" {
		c.Source.Video = value
	}
	if value, ok := os.LookupEnv("HAMREMIX_DIALOGUE"); ok && strings.TrimSpace(value) != "" {
		c.Source.Dialogue = value
	}
	var err error
	if c.Source.Video, err = expandPath(strings.TrimSpace(c.Source.Video)); err != nil {
		return fmt.Errorf("source.video: %w", err)
	}
	if c.Source.Dialogue, err = expandPath(strings.TrimSpace(c.Source.Dialogue)); err != nil {
		return fmt.Errorf("source.dialogue: %w", err)
	}
	if c.Source.DialogueDelimiter == "" {
		c.Source.DialogueDelimiter = defaultDialogueDelimiter
	}
	return nil
}

func (c *Config) normalizeTranscription() {
	c.Transcription.WhisperXModel = strings.TrimSpace(c.Transcription.WhisperXModel)
	if c.Transcription.WhisperXModel == "" {
		c.Transcription.WhisperXModel = defaultWhisperXModel
	}
	c.Transcription.VADMethod = strings.ToLower(strings.TrimSpace(c.Transcription.VADMethod))
	if c.Transcription.VADMethod == "" {
		c.Transcription.VADMethod = defaultVADMethod
	}
	if c.Transcription.HFToken == "" {
		if value, ok := os.LookupEnv("HF_TOKEN"); ok {
			c.Transcription.HFToken = strings.TrimSpace(value)
		}
	}
	c.Transcription.Language = strings.ToLower(strings.TrimSpace(c.Transcription.Language))
}

func (c *Config) normalizeAlignment() {
	c.Alignment.Metric = strings.ToLower(strings.TrimSpace(c.Alignment.Metric))
	if c.Alignment.Metric == "" {
		c.Alignment.Metric = defaultMetric
	}
}

func (c *Config) normalizeShuffle() {
	speakers := make([]string, 0, len(c.Shuffle.AllowedSpeakers))
	seen := make(map[string]struct{}, len(c.Shuffle.AllowedSpeakers))
	for _, name := range c.Shuffle.AllowedSpeakers {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		speakers = append(speakers, name)
	}
	c.Shuffle.AllowedSpeakers = speakers
	if c.Shuffle.SegmentSeconds == 0 {
		c.Shuffle.SegmentSeconds = defaultSegmentSeconds
	}
	c.Shuffle.OutputBase = strings.TrimSpace(c.Shuffle.OutputBase)
	if c.Shuffle.OutputBase == "" {
		c.Shuffle.OutputBase = defaultOutputBase
	}
	c.Shuffle.TranscriptBase = strings.TrimSpace(c.Shuffle.TranscriptBase)
	if c.Shuffle.TranscriptBase == "" {
		c.Shuffle.TranscriptBase = defaultTranscriptBase
	}
}

func (c *Config) normalizeRender() error {
	if c.Render.FontSize <= 0 {
		c.Render.FontSize = defaultFontSize
	}
	c.Render.FontColor = strings.TrimSpace(c.Render.FontColor)
	if c.Render.FontColor == "" {
		c.Render.FontColor = defaultFontColor
	}
	c.Render.VideoCodec = strings.TrimSpace(c.Render.VideoCodec)
	if c.Render.VideoCodec == "" {
		c.Render.VideoCodec = defaultVideoCodec
	}
	c.Render.AudioCodec = strings.TrimSpace(c.Render.AudioCodec)
	if c.Render.AudioCodec == "" {
		c.Render.AudioCodec = defaultAudioCodec
	}
	c.Render.FFmpegBinary = strings.TrimSpace(c.Render.FFmpegBinary)
	if c.Render.FFmpegBinary == "" {
		c.Render.FFmpegBinary = defaultFFmpegBinary
	}
	c.Render.FFprobeBinary = strings.TrimSpace(c.Render.FFprobeBinary)
	if c.Render.FFprobeBinary == "" {
		c.Render.FFprobeBinary = defaultFFprobeBinary
	}
	var err error
	if c.Render.FontFile, err = expandPath(strings.TrimSpace(c.Render.FontFile)); err != nil {
		return fmt.Errorf("render.font_file: %w", err)
	}
	return nil
}

func (c *Config) normalizePlayback() {
	c.Playback.Player = strings.TrimSpace(c.Playback.Player)
	if c.Playback.Player == "" {
		c.Playback.Player = defaultPlayer
	}
	if strings.TrimSpace(c.Playback.WindowTitle) == "" {
		c.Playback.WindowTitle = defaultWindowTitle
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
