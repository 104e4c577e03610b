package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/sitemirror"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitemirror.Manifest = (*ManifestService)(nil)

// ManifestService implements sitemirror.Manifest using SQLite.
type ManifestService struct {
	db *DB
}

// NewManifestService creates a new ManifestService.
func NewManifestService(db *DB) *ManifestService {
	return &ManifestService{db: db}
}

// BeginRun creates a new run.
func (s *ManifestService) BeginRun(ctx context.Context, run *sitemirror.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, start_url, output_root, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.StartURL, run.OutputRoot, formatTime(run.StartedAt))

	return err
}

// RecordArtifact appends an artifact to a run.
func (s *ManifestService) RecordArtifact(ctx context.Context, runID string, artifact *sitemirror.Artifact) error {
	if err := artifact.Validate(); err != nil {
		return err
	}
	if err := s.requireRun(ctx, runID); err != nil {
		return err
	}

	fetchedAt := artifact.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (run_id, url, path, kind, content_type, html, bytes, hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, artifact.URL, artifact.Path, string(artifact.Kind), artifact.ContentType,
		artifact.HTML, artifact.Bytes, artifact.Hash, formatTime(fetchedAt))

	return err
}

// FinishRun stores the run's counters and marks it finished.
func (s *ManifestService) FinishRun(ctx context.Context, run *sitemirror.Run) error {
	run.FinishedAt = time.Now().UTC().Truncate(time.Second)

	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, pages = ?, assets = ?, failed = ?
		WHERE id = ?
	`, formatTime(run.FinishedAt), run.Pages, run.Assets, run.Failed, run.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sitemirror.Errorf(sitemirror.ENOTFOUND, "run not found")
	}

	return nil
}

// FindRunByID retrieves a run by ID.
func (s *ManifestService) FindRunByID(ctx context.Context, id string) (*sitemirror.Run, error) {
	var run sitemirror.Run
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, start_url, output_root, started_at, finished_at, pages, assets, failed
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.StartURL, &run.OutputRoot, &startedAt, &finishedAt,
		&run.Pages, &run.Assets, &run.Failed)

	if err == sql.ErrNoRows {
		return nil, sitemirror.Errorf(sitemirror.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseOptionalRFC3339(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &run, nil
}

// FindArtifacts returns a run's artifacts in the order they were recorded.
func (s *ManifestService) FindArtifacts(ctx context.Context, runID string) ([]*sitemirror.Artifact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, path, kind, content_type, html, bytes, hash, fetched_at
		FROM artifacts
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []*sitemirror.Artifact
	for rows.Next() {
		var a sitemirror.Artifact
		var kind, fetchedAt string

		if err := rows.Scan(&a.URL, &a.Path, &kind, &a.ContentType, &a.HTML,
			&a.Bytes, &a.Hash, &fetchedAt); err != nil {
			return nil, err
		}
		a.Kind = sitemirror.Kind(kind)
		if a.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		artifacts = append(artifacts, &a)
	}

	return artifacts, rows.Err()
}

func (s *ManifestService) requireRun(ctx context.Context, runID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err == sql.ErrNoRows {
		return sitemirror.Errorf(sitemirror.ENOTFOUND, "run not found")
	}
	return err
}
