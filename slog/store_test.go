package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/sitemirror"
	"github.com/fwojciec/sitemirror/mock"
	mirrorslog "github.com/fwojciec/sitemirror/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("logs the stored path", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArtifactStore{
			SaveFn: func(ctx context.Context, a *sitemirror.Artifact, body []byte) error {
				a.Path = "templates/demo/logo.png"
				return nil
			},
		}

		store := mirrorslog.NewLoggingStore(inner, logger)
		err := store.Save(context.Background(), &sitemirror.Artifact{
			URL:  "https://example.com/site/logo.png",
			Kind: sitemirror.KindAsset,
		}, []byte("png"))

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "save")
		assert.Contains(t, output, "url=https://example.com/site/logo.png")
		assert.Contains(t, output, "kind=asset")
		assert.Contains(t, output, "path=templates/demo/logo.png")
		assert.Contains(t, output, "bytes=3")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ArtifactStore{
			SaveFn: func(context.Context, *sitemirror.Artifact, []byte) error {
				return sitemirror.Errorf(sitemirror.EFILESYSTEM, "disk full")
			},
		}

		store := mirrorslog.NewLoggingStore(inner, logger)
		err := store.Save(context.Background(), &sitemirror.Artifact{
			URL:  "https://example.com/site/",
			Kind: sitemirror.KindPage,
		}, nil)

		assert.Equal(t, sitemirror.EFILESYSTEM, sitemirror.ErrorCode(err))
		assert.Contains(t, buf.String(), "err=\"disk full\"")
	})
}
