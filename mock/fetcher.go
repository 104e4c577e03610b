package mock

import (
	"context"

	"github.com/fwojciec/sitemirror"
)

var _ sitemirror.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitemirror.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*sitemirror.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*sitemirror.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
