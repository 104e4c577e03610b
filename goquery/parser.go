// Package goquery provides an HTML implementation of sitemirror.Parser
// built on github.com/PuerkitoBio/goquery.
package goquery

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitemirror"
	"golang.org/x/net/html/atom"
)

// Ensure Parser implements sitemirror.Parser.
var _ sitemirror.Parser = (*Parser)(nil)

// Ensure Document implements sitemirror.Markup.
var _ sitemirror.Markup = (*Document)(nil)

// assetSelector matches every element that can reference an asset.
const assetSelector = "link[href], script[src], img[src], source[src], " +
	"audio[src], video[src], embed[src], meta[content]"

// assetAttributes maps asset elements to the attribute holding the reference.
var assetAttributes = map[atom.Atom]string{
	atom.Link:   "href",
	atom.Script: "src",
	atom.Img:    "src",
	atom.Source: "src",
	atom.Audio:  "src",
	atom.Video:  "src",
	atom.Embed:  "src",
	atom.Meta:   "content",
}

// Parser parses HTML documents with goquery.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses body as HTML. Malformed markup is repaired the way a
// browser would; an error is returned only if body cannot be read.
func (p *Parser) Parse(body []byte) (sitemirror.Markup, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, sitemirror.Errorf(sitemirror.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// Document is a parsed HTML document.
type Document struct {
	doc *goquery.Document
}

// Hyperlinks returns the href of every anchor element in document order.
func (d *Document) Hyperlinks() []string {
	var links []string
	d.doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		links = append(links, href)
	})
	return links
}

// AssetRefs returns the raw asset references of the document in document
// order.
func (d *Document) AssetRefs() []string {
	var refs []string
	d.doc.Find(assetSelector).Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		attr, ok := assetAttributes[node.DataAtom]
		if !ok {
			return
		}
		if v, exists := sel.Attr(attr); exists {
			refs = append(refs, v)
		}
	})
	return refs
}
