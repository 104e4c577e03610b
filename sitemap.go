package sitemirror

import "context"

// SitemapService discovers page URLs from a site's sitemap.
type SitemapService interface {
	// DiscoverURLs reads the sitemap at the scope's base path, following
	// sitemap indexes, and returns the normalized in-scope page URLs.
	// Returns an empty slice if the site has no sitemap.
	DiscoverURLs(ctx context.Context, scope *Scope) ([]string, error)
}
