package goquery_test

import (
	"testing"

	"github.com/fwojciec/sitemirror/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Hyperlinks(t *testing.T) {
	t.Parallel()

	t.Run("returns every anchor href in document order", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<nav>
	<a href="about/">About</a>
	<a href="/site/contact">Contact</a>
</nav>
<main>
	<a name="anchor-only">No href</a>
	<a href="https://other.com/">External</a>
	<a href="about/">About again</a>
</main>
</body>
</html>`

		doc, err := goquery.NewParser().Parse([]byte(html))
		require.NoError(t, err)

		assert.Equal(t, []string{"about/", "/site/contact", "https://other.com/", "about/"}, doc.Hyperlinks())
	})

	t.Run("returns nothing for a page without anchors", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewParser().Parse([]byte(`<html><body><p>Hi</p></body></html>`))
		require.NoError(t, err)

		assert.Empty(t, doc.Hyperlinks())
	})
}

func TestParser_AssetRefs(t *testing.T) {
	t.Parallel()

	t.Run("returns asset references in document order", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<meta property="og:image" content="img/og.png">
	<link rel="stylesheet" href="css/main.css">
	<script src="js/app.js"></script>
</head>
<body>
	<img src="img/logo.png" alt="">
	<video src="media/intro.mp4">
		<source src="media/intro.webm">
	</video>
	<audio src="media/theme.mp3"></audio>
	<embed src="media/doc.pdf">
	<script>inline()</script>
	<a href="page.html">not an asset</a>
</body>
</html>`

		doc, err := goquery.NewParser().Parse([]byte(html))
		require.NoError(t, err)

		assert.Equal(t, []string{
			"img/og.png",
			"css/main.css",
			"js/app.js",
			"img/logo.png",
			"media/intro.mp4",
			"media/intro.webm",
			"media/theme.mp3",
			"media/doc.pdf",
		}, doc.AssetRefs())
	})

	t.Run("keeps values as written", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><link href="  style.css?v=2#x  "></head></html>`

		doc, err := goquery.NewParser().Parse([]byte(html))
		require.NoError(t, err)

		assert.Equal(t, []string{"  style.css?v=2#x  "}, doc.AssetRefs())
	})

	t.Run("tolerates malformed markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div><img src="a.png"><p>unclosed <table><img src="b.png">`

		doc, err := goquery.NewParser().Parse([]byte(html))
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"a.png", "b.png"}, doc.AssetRefs())
	})
}
