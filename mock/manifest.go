package mock

import (
	"context"

	"github.com/fwojciec/sitemirror"
)

var _ sitemirror.Manifest = (*Manifest)(nil)

// Manifest is a mock implementation of sitemirror.Manifest.
type Manifest struct {
	BeginRunFn       func(ctx context.Context, run *sitemirror.Run) error
	RecordArtifactFn func(ctx context.Context, runID string, artifact *sitemirror.Artifact) error
	FinishRunFn      func(ctx context.Context, run *sitemirror.Run) error
	FindRunByIDFn    func(ctx context.Context, id string) (*sitemirror.Run, error)
	FindArtifactsFn  func(ctx context.Context, runID string) ([]*sitemirror.Artifact, error)
}

func (m *Manifest) BeginRun(ctx context.Context, run *sitemirror.Run) error {
	return m.BeginRunFn(ctx, run)
}

func (m *Manifest) RecordArtifact(ctx context.Context, runID string, artifact *sitemirror.Artifact) error {
	return m.RecordArtifactFn(ctx, runID, artifact)
}

func (m *Manifest) FinishRun(ctx context.Context, run *sitemirror.Run) error {
	return m.FinishRunFn(ctx, run)
}

func (m *Manifest) FindRunByID(ctx context.Context, id string) (*sitemirror.Run, error) {
	return m.FindRunByIDFn(ctx, id)
}

func (m *Manifest) FindArtifacts(ctx context.Context, runID string) ([]*sitemirror.Artifact, error) {
	return m.FindArtifactsFn(ctx, runID)
}
