package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/sitemirror"
	"github.com/fwojciec/sitemirror/mock"
	mirrorslog "github.com/fwojciec/sitemirror/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	scope, err := sitemirror.NewScope("https://example.com/site/index.html", "out")
	require.NoError(t, err)

	t.Run("logs the sitemap location that was requested", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, scope *sitemirror.Scope) ([]string, error) {
				return []string{"https://example.com/site/a", "https://example.com/site/b"}, nil
			},
		}

		svc := mirrorslog.NewLoggingSitemapService(inner, logger)
		urls, err := svc.DiscoverURLs(context.Background(), scope)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "sitemap=https://example.com/site/sitemap.xml")
		assert.Contains(t, output, "base_path=/site/")
		assert.Contains(t, output, "pages=2")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "index.html")
	})

	t.Run("notes a sitemap without in-scope pages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, scope *sitemirror.Scope) ([]string, error) {
				return []string{}, nil
			},
		}

		svc := mirrorslog.NewLoggingSitemapService(inner, logger)
		urls, err := svc.DiscoverURLs(context.Background(), scope)

		require.NoError(t, err)
		assert.Empty(t, urls)
		assert.Contains(t, buf.String(), "no in-scope pages")
		assert.Contains(t, buf.String(), "pages=0")
	})

	t.Run("logs errors at warn level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SitemapService{
			DiscoverURLsFn: func(ctx context.Context, scope *sitemirror.Scope) ([]string, error) {
				return nil, errors.New("connection failed")
			},
		}

		svc := mirrorslog.NewLoggingSitemapService(inner, logger)
		_, err := svc.DiscoverURLs(context.Background(), scope)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "sitemap=https://example.com/site/sitemap.xml")
		assert.Contains(t, output, "err=\"connection failed\"")
	})
}
