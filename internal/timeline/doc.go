// Package timeline derives the quiet gaps between utterances and merges them
// with speaking intervals into the ordered timeline that gets rendered.
//
// A timeline always alternates quiet, speaking, quiet, ... and ends with the
// quiet interval after the last utterance. Degenerate intervals (start equal
// to end) are kept so the alternation holds; renderers skip them.
package timeline
