// Package crawl provides website mirroring orchestration.
// It coordinates URL scoping, fetching, storage and link/asset extraction
// for a single breadth-first mirroring run.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/sitemirror"
	"golang.org/x/sync/errgroup"
)

// EventType indicates the type of progress event.
type EventType int

const (
	// EventStarted is emitted before a page is fetched.
	EventStarted EventType = iota
	// EventSaved is emitted after a page or asset was stored.
	EventSaved
	// EventFailed is emitted when a page or asset could not be fetched or stored.
	EventFailed
	// EventFinished is emitted once the queue is drained.
	EventFinished
)

// Event reports progress during a mirroring run.
type Event struct {
	Type     EventType
	Kind     sitemirror.Kind
	URL      string
	Artifact *sitemirror.Artifact
	Err      error
}

// EventFunc is a callback for reporting progress.
// Events are always delivered from the goroutine that called Run.
type EventFunc func(event Event)

// Result holds the outcome of a mirroring run.
type Result struct {
	RunID  string
	Pages  int
	Assets int
	Failed int
	Bytes  int
}

// Mirror drives a breadth-first crawl of every page and asset in scope.
type Mirror struct {
	Scope    *sitemirror.Scope
	Fetcher  sitemirror.Fetcher
	Store    sitemirror.ArtifactStore
	Parser   sitemirror.Parser
	Sitemaps sitemirror.SitemapService // optional, seeds the queue
	Manifest sitemirror.Manifest       // optional, records artifacts
	Logger   *slog.Logger

	// Concurrency bounds parallel asset downloads. Pages are always
	// fetched one at a time. Values below 1 mean 1.
	Concurrency int

	// RetryDelays are the backoff delays for transport failures.
	// Nil disables retries.
	RetryDelays []time.Duration
}

// Run mirrors the scope's start URL and everything reachable from it.
//
// A failed page or asset is reported through progress and never stops the
// run. Run returns an error only for invalid configuration or when ctx is
// canceled, in which case the partial result is returned alongside it.
func (m *Mirror) Run(ctx context.Context, progress EventFunc) (*Result, error) {
	if m.Scope == nil {
		return nil, sitemirror.Errorf(sitemirror.EINVALID, "mirror scope required")
	}
	if m.Fetcher == nil || m.Store == nil || m.Parser == nil {
		return nil, sitemirror.Errorf(sitemirror.EINVALID, "mirror fetcher, store and parser required")
	}

	emit := func(e Event) {
		if progress != nil {
			progress(e)
		}
	}

	session := NewSession(m.Scope.StartURL)
	m.seedFromSitemap(ctx, session)

	pipeline := &Pipeline{
		Fetcher:     m.Fetcher,
		Store:       m.Store,
		RetryDelays: m.RetryDelays,
		Logger: func(format string, args ...any) {
			m.logger().Debug(fmt.Sprintf(format, args...))
		},
	}

	var result Result
	run := m.beginRun(ctx)
	if run != nil {
		result.RunID = run.ID
	}

	for {
		if err := ctx.Err(); err != nil {
			m.finishRun(ctx, run, &result)
			return &result, err
		}

		target, ok := session.Pop()
		if !ok {
			break
		}
		if !session.Visited.Add(target) {
			continue
		}

		emit(Event{Type: EventStarted, Kind: sitemirror.KindPage, URL: target})
		fetched, err := pipeline.FetchAndStore(ctx, target, sitemirror.KindPage)
		if err != nil {
			result.Failed++
			emit(Event{Type: EventFailed, Kind: sitemirror.KindPage, URL: target, Err: err})
			continue
		}
		result.Pages++
		result.Bytes += fetched.Artifact.Bytes
		m.recordArtifact(ctx, run, fetched.Artifact)
		emit(Event{Type: EventSaved, Kind: sitemirror.KindPage, URL: target, Artifact: fetched.Artifact})

		if !fetched.IsHTML {
			continue
		}

		doc, err := m.Parser.Parse(fetched.Body)
		if err != nil {
			m.logger().Warn("parse page", "url", target, "err", err)
			continue
		}
		session.Push(ExtractLinks(m.Scope, session, doc, target)...)
		assets := ExtractAssets(m.Scope, session, doc, target)
		m.downloadAssets(ctx, pipeline, session, assets, run, &result, emit)
	}

	emit(Event{Type: EventFinished})
	m.finishRun(ctx, run, &result)
	return &result, nil
}

// assetOutcome is the result of downloading one asset.
type assetOutcome struct {
	url     string
	fetched *Fetched
	err     error
}

// downloadAssets drains an asset work-list in rounds. Each round downloads
// its assets with up to Concurrency workers; stylesheets fetched in a round
// contribute their url() references to the next round.
func (m *Mirror) downloadAssets(
	ctx context.Context,
	pipeline *Pipeline,
	session *Session,
	batch []string,
	run *sitemirror.Run,
	result *Result,
	emit EventFunc,
) {
	for len(batch) > 0 && ctx.Err() == nil {
		outcomes := make([]assetOutcome, len(batch))

		var g errgroup.Group
		g.SetLimit(m.concurrency())
		for i, target := range batch {
			g.Go(func() error {
				fetched, err := pipeline.FetchAndStore(ctx, target, sitemirror.KindAsset)
				outcomes[i] = assetOutcome{url: target, fetched: fetched, err: err}
				return nil
			})
		}
		_ = g.Wait()

		var next []string
		for _, o := range outcomes {
			if o.err != nil {
				result.Failed++
				emit(Event{Type: EventFailed, Kind: sitemirror.KindAsset, URL: o.url, Err: o.err})
				continue
			}
			result.Assets++
			result.Bytes += o.fetched.Artifact.Bytes
			m.recordArtifact(ctx, run, o.fetched.Artifact)
			emit(Event{Type: EventSaved, Kind: sitemirror.KindAsset, URL: o.url, Artifact: o.fetched.Artifact})

			if o.fetched.IsCSS {
				next = append(next, ExtractStylesheetAssets(m.Scope, session, string(o.fetched.Body), o.url)...)
			}
		}
		batch = next
	}
}

// seedFromSitemap appends sitemap URLs to the queue after the start URL.
func (m *Mirror) seedFromSitemap(ctx context.Context, session *Session) {
	if m.Sitemaps == nil {
		return
	}
	urls, err := m.Sitemaps.DiscoverURLs(ctx, m.Scope)
	if err != nil {
		m.logger().Warn("sitemap discovery", "err", err)
		return
	}
	session.Push(urls...)
}

// beginRun starts a manifest run. Manifest failures are logged and disable
// recording for the rest of the run.
func (m *Mirror) beginRun(ctx context.Context) *sitemirror.Run {
	if m.Manifest == nil {
		return nil
	}
	run := &sitemirror.Run{
		StartURL:   m.Scope.StartURL,
		OutputRoot: m.Scope.OutputRoot,
	}
	if err := m.Manifest.BeginRun(ctx, run); err != nil {
		m.logger().Warn("manifest begin run", "err", err)
		return nil
	}
	return run
}

func (m *Mirror) recordArtifact(ctx context.Context, run *sitemirror.Run, artifact *sitemirror.Artifact) {
	if run == nil {
		return
	}
	if err := m.Manifest.RecordArtifact(ctx, run.ID, artifact); err != nil {
		m.logger().Warn("manifest record artifact", "url", artifact.URL, "err", err)
	}
}

func (m *Mirror) finishRun(ctx context.Context, run *sitemirror.Run, result *Result) {
	if run == nil {
		return
	}
	run.Pages = result.Pages
	run.Assets = result.Assets
	run.Failed = result.Failed
	// The run is finished even when ctx was canceled.
	if err := m.Manifest.FinishRun(context.WithoutCancel(ctx), run); err != nil {
		m.logger().Warn("manifest finish run", "err", err)
	}
}

func (m *Mirror) concurrency() int {
	if m.Concurrency < 1 {
		return 1
	}
	return m.Concurrency
}

func (m *Mirror) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.Logger
}
