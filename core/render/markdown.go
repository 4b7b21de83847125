package render

import (
	"fmt"

	"github.com/gaurav-prasanna/jekyllpipe/core"
	"github.com/gaurav-prasanna/jekyllpipe/core/frontmatter"
)

// MarkdownRenderer converts the fragment to Markdown before writing it
// after the header.
type MarkdownRenderer struct {
	Quote      frontmatter.QuoteMode
	normalizer core.Normalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer backed by normalizer.
func NewMarkdownRenderer(quote frontmatter.QuoteMode, normalizer core.Normalizer) *MarkdownRenderer {
	return &MarkdownRenderer{Quote: quote, normalizer: normalizer}
}

// Render normalizes the body and prepends the header.
func (r *MarkdownRenderer) Render(doc core.Document) ([]byte, error) {
	body, err := r.normalizer.Normalize(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return []byte(frontmatter.Build(doc.FrontMatter, r.Quote) + body + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
