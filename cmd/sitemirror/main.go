package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/sitemirror"
	"github.com/fwojciec/sitemirror/crawl"
	"github.com/fwojciec/sitemirror/fs"
	mirrorhttp "github.com/fwojciec/sitemirror/http"
	"github.com/fwojciec/sitemirror/goquery"
	mirrorslog "github.com/fwojciec/sitemirror/slog"
	"github.com/fwojciec/sitemirror/sqlite"
	"github.com/fwojciec/sitemirror/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPaths are YAML files consulted for flag defaults, in order.
	// Missing files are ignored.
	ConfigPaths []string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: []string{DefaultConfigPath()},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/sitemirror/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "sitemirror", "config.yaml")
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitemirror"),
		kong.Description("Mirror a website section into templates/<folder>"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(yaml.Loader, m.ConfigPaths...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if err := validateFolder(cli.Folder); err != nil {
		return err
	}

	scope, err := sitemirror.NewScope(cli.URL, filepath.Join(cli.Templates, cli.Folder))
	if err != nil {
		return err
	}

	logger := NewLogger(stderr, cli.Verbose)

	store := fs.NewStore(scope)
	if err := store.Init(); err != nil {
		return err
	}

	httpFetcher := mirrorhttp.NewFetcher(mirrorhttp.WithTimeout(cli.Timeout))
	defer httpFetcher.Close()

	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Scope:   scope,
		Fetcher: httpFetcher,
		Store:   store,
		Logger:  logger,
	}

	if cli.Sitemap {
		deps.Sitemaps = mirrorhttp.NewSitemapService(httpFetcher.Client())
	}

	if cli.Verbose {
		deps.Fetcher = mirrorslog.NewLoggingFetcher(deps.Fetcher, logger)
		deps.Store = mirrorslog.NewLoggingStore(deps.Store, logger)
		if deps.Sitemaps != nil {
			deps.Sitemaps = mirrorslog.NewLoggingSitemapService(deps.Sitemaps, logger)
		}
	}

	if cli.Manifest != "" {
		db := sqlite.NewDB(cli.Manifest)
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open manifest: %w", err)
		}
		defer db.Close()
		deps.Manifest = sqlite.NewManifestService(db)
	}

	cmd := &MirrorCmd{
		Concurrency: cli.Concurrency,
		Retries:     cli.Retries,
	}

	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Folder      string          `arg:"" help:"Name of the output folder under the templates directory"`
	URL         string          `arg:"" help:"Start URL to mirror"`
	Templates   string          `default:"templates" help:"Root directory for mirrored sites"`
	Timeout     time.Duration   `short:"t" default:"10s" help:"Fetch timeout per request"`
	Concurrency int             `short:"c" default:"4" help:"Concurrent asset downloads"`
	Retries     int             `default:"0" help:"Retries for network failures (1s, 2s, 4s, ...)"`
	Sitemap     bool            `help:"Also queue in-scope pages listed in sitemap.xml"`
	Manifest    string          `type:"path" help:"Record the run in a SQLite manifest at this path"`
	Verbose     bool            `short:"v" help:"Log every fetch and save"`
	Config      kong.ConfigFlag `help:"Load flag defaults from a YAML file"`
}

// Dependencies holds the wired services for a mirroring run.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Scope    *sitemirror.Scope
	Fetcher  sitemirror.Fetcher
	Store    sitemirror.ArtifactStore
	Sitemaps sitemirror.SitemapService
	Manifest sitemirror.Manifest
	Logger   *slog.Logger
}

// NewLogger returns a slog logger writing through charmbracelet/log.
// Verbose output enables debug level.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return slog.New(handler)
}

// validateFolder rejects folder names that would escape the templates root.
func validateFolder(folder string) error {
	switch {
	case strings.TrimSpace(folder) == "":
		return sitemirror.Errorf(sitemirror.EINVALID, "folder name required")
	case folder == "." || folder == "..":
		return sitemirror.Errorf(sitemirror.EINVALID, "invalid folder name %q", folder)
	case strings.ContainsAny(folder, `/\`):
		return sitemirror.Errorf(sitemirror.EINVALID, "folder name %q must not contain path separators", folder)
	}
	return nil
}

// newMirror builds the crawler for deps.
func newMirror(deps *Dependencies, concurrency, retries int) *crawl.Mirror {
	return &crawl.Mirror{
		Scope:       deps.Scope,
		Fetcher:     deps.Fetcher,
		Store:       deps.Store,
		Parser:      goquery.NewParser(),
		Sitemaps:    deps.Sitemaps,
		Manifest:    deps.Manifest,
		Logger:      deps.Logger,
		Concurrency: concurrency,
		RetryDelays: crawl.RetryDelays(retries),
	}
}
