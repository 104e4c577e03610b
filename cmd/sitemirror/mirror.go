package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fwojciec/sitemirror"
	"github.com/fwojciec/sitemirror/crawl"
)

// MirrorCmd mirrors one site into the scope's output root.
type MirrorCmd struct {
	Concurrency int
	Retries     int
}

// Run executes the mirror command. Individual download failures are
// reported and never fail the command.
func (c *MirrorCmd) Run(deps *Dependencies) error {
	mirror := newMirror(deps, c.Concurrency, c.Retries)

	result, err := mirror.Run(deps.Ctx, printEvent(deps.Stdout))
	if result != nil {
		fmt.Fprintln(deps.Stdout, crawl.FormatSummary(result))
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitemirror.ErrorMessage(err))
		return err
	}

	outputDir, err := filepath.Abs(deps.Scope.OutputRoot)
	if err != nil {
		outputDir = deps.Scope.OutputRoot
	}
	fmt.Fprintf(deps.Stdout, "Download completed! Output directory: %s\n", outputDir)

	return nil
}

// printEvent writes one status line per attempted download.
func printEvent(w io.Writer) crawl.EventFunc {
	return func(e crawl.Event) {
		switch e.Type {
		case crawl.EventStarted:
			fmt.Fprintf(w, "Downloading: %s\n", e.URL)
		case crawl.EventSaved:
			switch {
			case e.Kind == sitemirror.KindAsset:
				fmt.Fprintf(w, "  → Asset downloaded: %s\n", e.Artifact.Path)
			case e.Artifact.HTML:
				fmt.Fprintf(w, "  → HTML saved at: %s\n", e.Artifact.Path)
			default:
				fmt.Fprintf(w, "  → File saved: %s\n", e.Artifact.Path)
			}
		case crawl.EventFailed:
			fmt.Fprintf(w, "Error downloading %s: %s\n", e.URL, sitemirror.ErrorMessage(e.Err))
		}
	}
}
