// Package fs provides a filesystem implementation of sitemirror.ArtifactStore.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitemirror"
)

// Ensure Store implements sitemirror.ArtifactStore at compile time.
var _ sitemirror.ArtifactStore = (*Store)(nil)

// Store writes artifacts below a scope's output root. Local paths come from
// Scope.LocalPath, so the same URL always lands in the same file and
// nothing is written outside the output root.
type Store struct {
	scope *sitemirror.Scope

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewStore creates a Store for the given scope.
func NewStore(scope *sitemirror.Scope) *Store {
	return &Store{
		scope: scope,
		Now:   time.Now,
	}
}

// Init creates the output root.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.scope.OutputRoot, 0755); err != nil {
		return sitemirror.Errorf(sitemirror.EFILESYSTEM, "creating output root: %v", err)
	}
	return nil
}

// Save writes body to the artifact's local path, replacing any previous
// content. The write is atomic: readers see either the old file or the
// complete new one.
func (s *Store) Save(ctx context.Context, artifact *sitemirror.Artifact, body []byte) error {
	if err := artifact.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.scope.LocalPath(artifact.URL, artifact.HTML)
	if err := writeFileAtomic(path, body); err != nil {
		return sitemirror.Errorf(sitemirror.EFILESYSTEM, "saving %s: %v", artifact.URL, err)
	}

	artifact.Path = path
	artifact.Bytes = len(body)
	artifact.Hash = HashContent(body)
	artifact.FetchedAt = s.Now().UTC()
	return nil
}

// HashContent returns the xxhash64 digest of content as a hex string.
func HashContent(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
