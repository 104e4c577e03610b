package sitemirror

import (
	"context"
	"time"
)

// Kind distinguishes pages from assets.
type Kind string

// Artifact kinds.
const (
	KindPage  Kind = "page"
	KindAsset Kind = "asset"
)

// Artifact represents one URL's bytes persisted to disk.
type Artifact struct {
	URL         string    `json:"url"`
	Kind        Kind      `json:"kind"`
	ContentType string    `json:"contentType"`
	HTML        bool      `json:"html"`
	Path        string    `json:"path"`
	Bytes       int       `json:"bytes"`
	Hash        string    `json:"hash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the artifact contains invalid fields.
func (a *Artifact) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "artifact URL required")
	}
	if a.Kind != KindPage && a.Kind != KindAsset {
		return Errorf(EINVALID, "artifact kind %q invalid", a.Kind)
	}
	return nil
}

// ArtifactStore persists fetched bytes.
type ArtifactStore interface {
	// Save writes body at the local path mapped from artifact.URL and fills
	// in Path, Bytes, Hash and FetchedAt. When artifact.HTML is set,
	// extensionless URLs are stored as .html files.
	// Returns EFILESYSTEM if directories or the file cannot be written.
	Save(ctx context.Context, artifact *Artifact, body []byte) error
}
