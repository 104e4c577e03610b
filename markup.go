package sitemirror

// Markup exposes the references made by a parsed HTML document.
type Markup interface {
	// Hyperlinks returns the href of every anchor element in document order.
	Hyperlinks() []string

	// AssetRefs returns asset references in document order: link@href,
	// script@src, img@src, source@src, audio@src, video@src, embed@src
	// and meta@content. Values are returned as written in the document.
	AssetRefs() []string
}

// Parser parses HTML into Markup.
type Parser interface {
	Parse(body []byte) (Markup, error)
}
