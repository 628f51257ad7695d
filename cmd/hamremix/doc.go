// Command hamremix remixes a short clip by shuffling who says what.
//
// The remix command transcribes the clip with WhisperX, matches every
// utterance to the known dialogue to learn its speaker, shuffles the lines of
// the requested speakers, and renders the result with captions. The chop
// command shuffles fixed-size segments instead. Supporting commands inspect
// transcripts and timelines, list previous runs, and check the environment.
package main
