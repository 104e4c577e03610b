package mock

import "github.com/fwojciec/sitemirror"

var _ sitemirror.Parser = (*Parser)(nil)

// Parser is a mock implementation of sitemirror.Parser.
type Parser struct {
	ParseFn func(body []byte) (sitemirror.Markup, error)
}

func (p *Parser) Parse(body []byte) (sitemirror.Markup, error) {
	return p.ParseFn(body)
}

var _ sitemirror.Markup = (*Markup)(nil)

// Markup is a mock implementation of sitemirror.Markup.
type Markup struct {
	HyperlinksFn func() []string
	AssetRefsFn  func() []string
}

func (m *Markup) Hyperlinks() []string {
	return m.HyperlinksFn()
}

func (m *Markup) AssetRefs() []string {
	return m.AssetRefsFn()
}
