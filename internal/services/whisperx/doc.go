// Package whisperx turns the audio track of a clip into timestamped
// utterances using WhisperX.
//
// This package handles:
//   - Mono 16 kHz audio extraction through ffmpeg
//   - WhisperX invocation through uvx
//   - Parsing the JSON segments into transcript utterances
//
// Intermediate audio and WhisperX output live in scratch files under the
// work directory and are removed before Transcribe returns.
package whisperx
