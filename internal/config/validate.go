package config

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateAlignment(); err != nil {
		return err
	}
	if err := c.validateShuffle(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSource() error {
	if utf8.RuneCountInString(c.Source.DialogueDelimiter) != 1 {
		return fmt.Errorf("source.dialogue_delimiter must be a single character, got %q", c.Source.DialogueDelimiter)
	}
	switch c.Source.DialogueDelimiter {
	case "\r", "\n", "\"":
		return fmt.Errorf("source.dialogue_delimiter %q is not allowed", c.Source.DialogueDelimiter)
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.VADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("transcription.vad_method must be silero or pyannote, got %q", c.Transcription.VADMethod)
	}
	return nil
}

func (c *Config) validateAlignment() error {
	switch c.Alignment.Metric {
	case MetricTokenSort, MetricCosine:
	default:
		return fmt.Errorf("alignment.metric must be %s or %s, got %q", MetricTokenSort, MetricCosine, c.Alignment.Metric)
	}
	if c.Alignment.MinScore < 0 || c.Alignment.MinScore > 100 {
		return errors.New("alignment.min_score must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateShuffle() error {
	if len(c.Shuffle.AllowedSpeakers) == 0 {
		return errors.New("shuffle.allowed_speakers must list at least one speaker")
	}
	if c.Shuffle.SegmentSeconds <= 0 {
		return errors.New("shuffle.segment_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
