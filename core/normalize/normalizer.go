// Package normalize converts a rewritten HTML fragment into Markdown for
// sites that keep their pages as .md sources.
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts a content fragment into Markdown. Links are expected to
// be rewritten already; their targets are carried over unchanged.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting fragment to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}
