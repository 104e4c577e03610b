package crawl

import (
	"regexp"

	"github.com/fwojciec/sitemirror"
)

// stylesheetURLPattern matches url(...) references with optional quotes.
var stylesheetURLPattern = regexp.MustCompile(`(?i)url\(['"]?(.*?)['"]?\)`)

// ExtractLinks returns the in-scope hyperlinks of a page that have not been
// visited yet, in document order. It does not modify the session; a link
// may therefore be returned again by another page before it is visited.
func ExtractLinks(scope *sitemirror.Scope, session *Session, doc sitemirror.Markup, pageURL string) []string {
	var links []string
	for _, href := range doc.Hyperlinks() {
		target := scope.Normalize(href, pageURL)
		if !scope.InScope(target) || session.Visited.Contains(target) {
			continue
		}
		links = append(links, target)
	}
	return links
}

// ExtractAssets returns the in-scope assets referenced by a page that have
// not been scheduled before, in document order. Every returned URL is added
// to the session's asset set.
func ExtractAssets(scope *sitemirror.Scope, session *Session, doc sitemirror.Markup, pageURL string) []string {
	return claimAssets(scope, session, doc.AssetRefs(), pageURL)
}

// ExtractStylesheetAssets returns the in-scope url() references of a
// stylesheet that have not been scheduled before, in text order.
// References resolve against the stylesheet's own URL. Every returned URL
// is added to the session's asset set.
func ExtractStylesheetAssets(scope *sitemirror.Scope, session *Session, css string, cssURL string) []string {
	var refs []string
	for _, m := range stylesheetURLPattern.FindAllStringSubmatch(css, -1) {
		refs = append(refs, m[1])
	}
	return claimAssets(scope, session, refs, cssURL)
}

func claimAssets(scope *sitemirror.Scope, session *Session, refs []string, contextURL string) []string {
	var assets []string
	for _, ref := range refs {
		target := scope.Normalize(ref, contextURL)
		if !scope.InScope(target) {
			continue
		}
		if !session.Assets.Add(target) {
			continue
		}
		assets = append(assets, target)
	}
	return assets
}
