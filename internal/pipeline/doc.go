// Package pipeline orchestrates a remix or chop run end to end.
//
// A remix run validates the requested speakers, checks the environment,
// obtains a speaker-tagged transcript (loading a saved one or transcribing and
// aligning the clip), computes the quiet gaps on the unshuffled transcript,
// shuffles the requested speakers, interleaves the result, renders it, and
// records the run in history. A chop run skips the transcript entirely and
// shuffles fixed-size segments.
//
// External collaborators sit behind small interfaces so tests can replace
// ffmpeg, ffprobe, WhisperX, and ffplay with fakes.
package pipeline
