package history

import (
	"time"

	"github.com/google/uuid"
)

// Mode identifies which pipeline produced a run.
type Mode string

const (
	ModeRemix Mode = "remix"
	ModeChop  Mode = "chop"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID              string
	Mode            Mode
	SourcePath      string
	TranscriptPath  string
	OutputPath      string
	Speakers        []string
	Seed            uint64
	Segments        int
	DurationSeconds float64
	ErrorMessage    string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// NewRun starts a run with a fresh identifier.
func NewRun(mode Mode, source string, seed uint64) *Run {
	return &Run{
		ID:         uuid.NewString(),
		Mode:       mode,
		SourcePath: source,
		Seed:       seed,
		StartedAt:  time.Now().UTC(),
	}
}

// Succeeded reports whether the run finished without error.
func (r *Run) Succeeded() bool {
	return r != nil && !r.FinishedAt.IsZero() && r.ErrorMessage == ""
}

// Finish stamps the completion time and the error, if any.
func (r *Run) Finish(err error) {
	r.FinishedAt = time.Now().UTC()
	if err != nil {
		r.ErrorMessage = err.Error()
	}
}
