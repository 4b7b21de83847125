// Package extract isolates the pieces of a template page that survive
// conversion: head metadata, the main content fragment, and the
// page-specific publication script.
//
// Content is located with an ordered cascade of structural patterns that
// match the site's known template shapes. No DOM is built.
package extract

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/gaurav-prasanna/jekyllpipe/core"
)

// ErrContentNotFound is returned when no matcher finds a content fragment.
var ErrContentNotFound = errors.New("could not extract content")

// Matcher finds a content fragment in a full page. Match reports false when
// the page does not have the shape the matcher looks for.
type Matcher struct {
	Name  string
	Match func(html string) (string, bool)
}

// patternMatcher builds a Matcher from a regex whose first group holds the
// fragment. Empty captures count as a miss.
func patternMatcher(name, pattern string) Matcher {
	re := regexp.MustCompile(`(?s)` + pattern)
	return Matcher{
		Name: name,
		Match: func(html string) (string, bool) {
			m := re.FindStringSubmatch(html)
			if m == nil {
				return "", false
			}
			frag := strings.TrimSpace(m[1])
			return frag, frag != ""
		},
	}
}

// templateMatchers is the cascade, highest priority first.
var templateMatchers = []Matcher{
	// <main id="main-content"> right after the header section.
	patternMatcher("main-content", `</section>\s*<!-- Main -->.*?<main id="main-content">(.*?)</main>`),
	// <section id="main"> closed before the footer (activities, learn, ...).
	patternMatcher("section-main", `<!-- Main -->\s*<section id="main">(.*?)</section>\s*<!-- Footer -->`),
	// <section id="main"> left open up to the footer (research, publications).
	patternMatcher("section-main-open", `<!-- Main -->\s*<section id="main">(.*?)<!-- Footer -->`),
	// Any <main> element.
	patternMatcher("main-any", `<main[^>]*>(.*?)</main>`),
}

// readabilityMatcher falls back to go-readability's article detection.
func readabilityMatcher() Matcher {
	pageURL := &url.URL{Scheme: "file", Path: "/"}
	return Matcher{
		Name: "readability",
		Match: func(html string) (string, bool) {
			parser := readability.NewParser()
			article, err := parser.Parse(strings.NewReader(html), pageURL)
			if err != nil {
				return "", false
			}
			frag := strings.TrimSpace(article.Content)
			return frag, frag != ""
		},
	}
}

// Option configures a ContentExtractor.
type Option func(*ContentExtractor)

// WithReadabilityFallback appends a readability-based matcher after the
// template cascade.
func WithReadabilityFallback() Option {
	return func(e *ContentExtractor) {
		e.matchers = append(e.matchers, readabilityMatcher())
	}
}

// WithMatchers replaces the cascade.
func WithMatchers(matchers ...Matcher) Option {
	return func(e *ContentExtractor) {
		e.matchers = append([]Matcher(nil), matchers...)
	}
}

// ContentExtractor runs an ordered list of matchers and returns the first hit.
type ContentExtractor struct {
	matchers []Matcher
}

// New creates a ContentExtractor using the template cascade.
func New(opts ...Option) *ContentExtractor {
	e := &ContentExtractor{
		matchers: append([]Matcher(nil), templateMatchers...),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the main content fragment of html.
func (e *ContentExtractor) Extract(html string) (string, error) {
	_, frag, err := e.Match(html)
	return frag, err
}

// Match is Extract that also names the matcher that produced the fragment.
func (e *ContentExtractor) Match(html string) (string, string, error) {
	for _, m := range e.matchers {
		if frag, ok := m.Match(html); ok {
			return m.Name, frag, nil
		}
	}
	return "", "", ErrContentNotFound
}

// Matchers returns the names of the configured matchers in priority order.
func (e *ContentExtractor) Matchers() []string {
	names := make([]string, len(e.matchers))
	for i, m := range e.matchers {
		names[i] = m.Name
	}
	return names
}

var _ core.Extractor = (*ContentExtractor)(nil)
