package crawl

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/sitemirror"
)

// Fetched is the outcome of a successful FetchAndStore.
type Fetched struct {
	Artifact *sitemirror.Artifact
	Body     []byte
	IsHTML   bool
	IsCSS    bool
}

// Pipeline fetches a URL and persists its bytes. It never parses content;
// callers inspect IsHTML and IsCSS to decide what to extract.
type Pipeline struct {
	Fetcher     sitemirror.Fetcher
	Store       sitemirror.ArtifactStore
	RetryDelays []time.Duration
	Logger      LogFunc
}

// FetchAndStore fetches target and saves the response body.
// Pages with an HTML content type are stored with HTML path inference;
// assets always keep their URL path.
// Returns ETRANSPORT or ESTATUS from the fetch and EFILESYSTEM from the store.
func (p *Pipeline) FetchAndStore(ctx context.Context, target string, kind sitemirror.Kind) (*Fetched, error) {
	resp, err := FetchWithRetryDelays(ctx, target, p.Fetcher.Fetch, p.Logger, p.RetryDelays)
	if err != nil {
		return nil, err
	}

	contentType := strings.ToLower(resp.ContentType)
	isHTML := strings.Contains(contentType, "text/html")
	isCSS := strings.Contains(contentType, "text/css")

	artifact := &sitemirror.Artifact{
		URL:         target,
		Kind:        kind,
		ContentType: resp.ContentType,
		HTML:        kind == sitemirror.KindPage && isHTML,
	}
	if err := p.Store.Save(ctx, artifact, resp.Body); err != nil {
		return nil, err
	}

	return &Fetched{
		Artifact: artifact,
		Body:     resp.Body,
		IsHTML:   isHTML,
		IsCSS:    isCSS,
	}, nil
}
