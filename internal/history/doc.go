// Package history records every remix and chop run in a small SQLite database
// so earlier outputs can be traced back to their seed, speakers, and
// transcript.
//
// The schema is managed by embedded, ordered SQL migrations that are applied
// when the store is opened.
package history
