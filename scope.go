package sitemirror

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// disallowedExtensions are server-side script endpoints that cannot be
// mirrored as static files.
var disallowedExtensions = []string{".php", ".asp", ".aspx"}

// Scope decides which URLs belong to a mirror and where they live on disk.
// It is derived once from the start URL and never changes during a run.
type Scope struct {
	// StartURL is the normalized start URL and the first page crawled.
	StartURL string

	// Domain is the host (including any port) every in-scope URL must match.
	Domain string

	// BasePath is the directory prefix every in-scope URL path must start with.
	// It always ends with a slash.
	BasePath string

	// OutputRoot is the local directory the mirror is written to.
	OutputRoot string
}

// NewScope creates a Scope for mirroring startURL into outputRoot.
// Returns EINVALID if startURL is not an absolute URL.
func NewScope(startURL, outputRoot string) (*Scope, error) {
	u, err := url.Parse(strings.TrimSpace(startURL))
	if err != nil {
		return nil, Errorf(EINVALID, "invalid start URL: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, Errorf(EINVALID, "start URL must be absolute: %q", startURL)
	}
	stripQueryAndFragment(u)

	return &Scope{
		StartURL:   u.String(),
		Domain:     u.Host,
		BasePath:   BasePath(u.Path),
		OutputRoot: outputRoot,
	}, nil
}

// BasePath derives the crawl root directory from a start URL path.
// A final segment containing a dot is treated as a file, so
// /site/index.html yields /site/. Otherwise the path itself is used,
// so /site and /site/ both yield /site/.
func BasePath(p string) string {
	last := p[strings.LastIndex(p, "/")+1:]
	if strings.Contains(last, ".") {
		p = p[:len(p)-len(last)]
	}
	return strings.TrimRight(p, "/") + "/"
}

// Normalize resolves raw against contextURL and strips the query and
// fragment. Relative, protocol-relative and absolute references are all
// supported. Returns an empty string if either URL cannot be parsed or
// raw is blank.
func Normalize(raw, contextURL string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	base, err := url.Parse(contextURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	u := base.ResolveReference(ref)
	stripQueryAndFragment(u)
	return u.String()
}

// Normalize resolves raw against contextURL. See the package-level Normalize.
func (s *Scope) Normalize(raw, contextURL string) string {
	return Normalize(raw, contextURL)
}

// SitemapURL returns the sitemap.xml location under the scope's base path.
func (s *Scope) SitemapURL() string {
	return Normalize(s.BasePath+"sitemap.xml", s.StartURL)
}

// InScope reports whether target is on the scope's host, under its base
// path, and not a server-side script.
func (s *Scope) InScope(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	if u.Host != s.Domain {
		return false
	}
	if !strings.HasPrefix(u.Path, s.BasePath) {
		return false
	}
	lower := strings.ToLower(u.Path)
	for _, ext := range disallowedExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	return true
}

// LocalPath maps target to a file under OutputRoot.
//
// The path below BasePath is joined to OutputRoot. When html is true and
// the result has no extension, directory-style URLs get index.html and
// other URLs get a .html suffix. Paths that already carry an extension are
// left alone. LocalPath has no side effects.
func (s *Scope) LocalPath(target string, html bool) string {
	var p string
	if u, err := url.Parse(target); err == nil {
		p = u.Path
	}

	var relative string
	if strings.HasPrefix(p, s.BasePath) {
		relative = p[len(s.BasePath):]
	}
	dirStyle := relative == "" || strings.HasSuffix(relative, "/")

	// Clean against a virtual root so dot segments never leave OutputRoot.
	relative = strings.TrimPrefix(path.Clean("/"+relative), "/")
	candidate := filepath.Join(s.OutputRoot, filepath.FromSlash(relative))

	switch {
	case dirStyle && html:
		return filepath.Join(candidate, "index.html")
	case dirStyle:
		return filepath.Join(candidate, "index")
	case html && !strings.HasSuffix(target, ".html") && filepath.Ext(candidate) == "":
		return candidate + ".html"
	}
	return candidate
}

func stripQueryAndFragment(u *url.URL) {
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
}
