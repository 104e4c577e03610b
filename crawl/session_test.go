package crawl_test

import (
	"testing"

	"github.com/fwojciec/sitemirror/crawl"
	"github.com/stretchr/testify/assert"
)

func TestSession(t *testing.T) {
	t.Parallel()

	t.Run("pops seeds and pushed URLs in FIFO order", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewSession("http://example.com/site/")
		s.Push("http://example.com/site/a", "http://example.com/site/b")

		var popped []string
		for {
			u, ok := s.Pop()
			if !ok {
				break
			}
			popped = append(popped, u)
		}

		assert.Equal(t, []string{
			"http://example.com/site/",
			"http://example.com/site/a",
			"http://example.com/site/b",
		}, popped)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("allows duplicate queue entries", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewSession()
		s.Push("http://example.com/site/a", "http://example.com/site/a")

		assert.Equal(t, 2, s.Len())
	})

	t.Run("tracks pages and assets separately", func(t *testing.T) {
		t.Parallel()

		s := crawl.NewSession()
		s.Visited.Add("http://example.com/site/logo.png")

		assert.True(t, s.Assets.Add("http://example.com/site/logo.png"))
	})

	t.Run("pop on empty queue", func(t *testing.T) {
		t.Parallel()

		_, ok := crawl.NewSession().Pop()

		assert.False(t, ok)
	})
}
