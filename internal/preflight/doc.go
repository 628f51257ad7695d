// Package preflight provides readiness checks for the files, directories,
// and external tools a remix run depends on.
//
// The pipeline calls RunAll before touching the source clip so a run fails
// fast instead of after a long transcription. The CLI "doctor" command uses
// the same checks to display environment health.
package preflight
