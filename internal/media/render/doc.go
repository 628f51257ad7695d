// Package render reassembles a timeline of source intervals into a new clip
// with a single ffmpeg invocation.
//
// BuildFilterGraph produces the filter_complex script: every playable
// interval becomes a trim/atrim pair (optionally captioned with drawtext) and
// the pairs are joined with concat. Renderer writes that script to a scratch
// file and runs ffmpeg against it.
package render
