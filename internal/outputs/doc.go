// Package outputs manages the files a remix run leaves behind.
//
// It allocates auto-incrementing names (<base>_001.mp4, <base>_002.mp4, ...)
// under an advisory file lock, empties the output directory on request, and
// hands out scratch files whose cleanup is safe to defer on every exit path.
package outputs
