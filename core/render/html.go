// Package render turns a converted Document into the bytes of a Jekyll
// source file: the front matter header followed by the page body.
package render

import (
	"github.com/gaurav-prasanna/jekyllpipe/core"
	"github.com/gaurav-prasanna/jekyllpipe/core/frontmatter"
)

// HTMLRenderer writes the fragment verbatim after the header.
type HTMLRenderer struct {
	Quote frontmatter.QuoteMode
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer(quote frontmatter.QuoteMode) *HTMLRenderer {
	return &HTMLRenderer{Quote: quote}
}

// Render concatenates the header and the body.
func (r *HTMLRenderer) Render(doc core.Document) ([]byte, error) {
	return []byte(frontmatter.Build(doc.FrontMatter, r.Quote) + doc.Body), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
