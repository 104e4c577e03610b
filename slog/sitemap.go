package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitemirror"
)

var _ sitemirror.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs each sitemap lookup made for a mirror scope.
type LoggingSitemapService struct {
	next   sitemirror.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService wraps next so every lookup is logged to logger.
func NewLoggingSitemapService(next sitemirror.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs logs the sitemap location that was requested, how many
// in-scope pages it contributed, and any error.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, scope *sitemirror.Scope) (urls []string, err error) {
	begin := time.Now()
	urls, err = s.next.DiscoverURLs(ctx, scope)

	attrs := []any{
		"sitemap", scope.SitemapURL(),
		"base_path", scope.BasePath,
		"pages", len(urls),
		"duration", time.Since(begin),
	}
	if err != nil {
		s.logger.Warn("sitemap discovery", append(attrs, "err", err)...)
		return urls, err
	}
	if len(urls) == 0 {
		s.logger.Info("sitemap discovery: no in-scope pages", attrs...)
		return urls, nil
	}
	s.logger.Info("sitemap discovery", attrs...)
	return urls, nil
}
