// Package ffprobe reads clip durations from ffprobe's JSON report.
//
// Prober is what the pipeline holds; Inspect and Decode are exposed for
// callers that already have a binary path or captured output.
package ffprobe
