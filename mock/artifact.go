package mock

import (
	"context"

	"github.com/fwojciec/sitemirror"
)

var _ sitemirror.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of sitemirror.ArtifactStore.
type ArtifactStore struct {
	SaveFn func(ctx context.Context, artifact *sitemirror.Artifact, body []byte) error
}

func (s *ArtifactStore) Save(ctx context.Context, artifact *sitemirror.Artifact, body []byte) error {
	return s.SaveFn(ctx, artifact, body)
}
