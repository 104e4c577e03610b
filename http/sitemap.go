package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/sitemirror"
)

// Ensure SitemapService implements sitemirror.SitemapService.
var _ sitemirror.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from the sitemap.xml at a scope's
// base path.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs reads <scheme>://<host><BasePath>sitemap.xml, following
// nested sitemap indexes, and returns the normalized in-scope URLs in
// the order they appear.
// Returns an empty slice (not nil) if no sitemap is found.
func (s *SitemapService) DiscoverURLs(ctx context.Context, scope *sitemirror.Scope) ([]string, error) {
	// Check for context cancellation early
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sitemapURL := scope.SitemapURL()
	if sitemapURL == "" {
		return []string{}, nil
	}

	seenSitemaps := make(map[string]bool)
	locs, err := s.processSitemap(ctx, sitemapURL, seenSitemaps)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if sitemirror.ErrorCode(err) == sitemirror.ESTATUS {
			return []string{}, nil
		}
		return nil, err
	}

	urls := []string{}
	seenURLs := make(map[string]bool)
	for _, loc := range locs {
		u := scope.Normalize(loc, sitemapURL)
		if u == "" || seenURLs[u] || !scope.InScope(u) {
			continue
		}
		seenURLs[u] = true
		urls = append(urls, u)
	}
	return urls, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Avoid processing the same sitemap twice
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, sitemirror.Errorf(sitemirror.EINVALID, "parsing sitemap XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, sitemirror.Errorf(sitemirror.EINVALID, "empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, sitemapURL, seen)
	}

	// Otherwise treat as urlset
	return locs(root, "url"), nil
}

// processSitemapIndex processes a <sitemapindex> element recursively.
// Nested sitemaps that fail to load are skipped.
func (s *SitemapService) processSitemapIndex(ctx context.Context, root *etree.Element, indexURL string, seen map[string]bool) ([]string, error) {
	var allURLs []string

	for _, loc := range locs(root, "sitemap") {
		nested := sitemirror.Normalize(loc, indexURL)
		if nested == "" {
			continue
		}
		urls, err := s.processSitemap(ctx, nested, seen)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		allURLs = append(allURLs, urls...)
	}

	return allURLs, nil
}

// locs returns the trimmed <loc> text of every child element named tag.
func locs(root *etree.Element, tag string) []string {
	var values []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, sitemirror.Errorf(sitemirror.ETRANSPORT, "%v", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, sitemirror.Errorf(sitemirror.ESTATUS, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}
