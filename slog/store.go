package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitemirror"
)

// Ensure LoggingStore implements sitemirror.ArtifactStore.
var _ sitemirror.ArtifactStore = (*LoggingStore)(nil)

// LoggingStore wraps an ArtifactStore with logging.
type LoggingStore struct {
	next   sitemirror.ArtifactStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next sitemirror.ArtifactStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs where the artifact landed.
func (s *LoggingStore) Save(ctx context.Context, artifact *sitemirror.Artifact, body []byte) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save",
			"url", artifact.URL,
			"kind", artifact.Kind,
			"path", artifact.Path,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, artifact, body)
}
