package sitemirror

import (
	"context"
	"time"
)

// Run represents one mirroring run recorded in a manifest.
type Run struct {
	ID         string    `json:"id"`
	StartURL   string    `json:"startUrl"`
	OutputRoot string    `json:"outputRoot"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Pages      int       `json:"pages"`
	Assets     int       `json:"assets"`
	Failed     int       `json:"failed"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.StartURL == "" {
		return Errorf(EINVALID, "run start URL required")
	}
	return nil
}

// Manifest records what a run stored and where.
type Manifest interface {
	// BeginRun creates a run, assigning its ID and StartedAt.
	BeginRun(ctx context.Context, run *Run) error

	// RecordArtifact appends a stored artifact to a run.
	// Returns ENOTFOUND if the run does not exist.
	RecordArtifact(ctx context.Context, runID string, artifact *Artifact) error

	// FinishRun stores the run's final counters and FinishedAt.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindArtifacts returns a run's artifacts in the order they were recorded.
	FindArtifacts(ctx context.Context, runID string) ([]*Artifact, error)
}
