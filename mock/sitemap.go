package mock

import (
	"context"

	"github.com/fwojciec/sitemirror"
)

var _ sitemirror.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of sitemirror.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, scope *sitemirror.Scope) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, scope *sitemirror.Scope) ([]string, error) {
	return s.DiscoverURLsFn(ctx, scope)
}
