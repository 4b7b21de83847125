// Package rewrite adapts asset paths and internal links in a content
// fragment to the Jekyll site layout, where pages live under /<lang>/ and
// shared assets at the site root.
package rewrite

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/jekyllpipe/core"
)

// assetReplacer applies the literal asset path fixes, in order.
var assetReplacer = []struct{ old, new string }{
	{`src="../images/`, `src="/images/`},
	{`href="../images/`, `href="/images/`},
	{`srcset="images/`, `srcset="/images/`},
	{`../assets/`, `/assets/`},
}

var hrefRegex = regexp.MustCompile(`href="([^"]*)"`)

// keptPrefixes mark href values that are already absolute or not page links.
var keptPrefixes = []string{"http://", "https://", "/", "#", "mailto:"}

// Rewriter rewrites a fragment for one language.
type Rewriter struct {
	Lang core.Language
}

// New creates a Rewriter for lang.
func New(lang core.Language) *Rewriter {
	return &Rewriter{Lang: lang}
}

// Rewrite fixes asset paths, then points relative .html links at /<lang>/.
func (r *Rewriter) Rewrite(fragment string) string {
	return r.Links(Assets(fragment))
}

// Assets replaces relative image and asset paths with root-absolute ones.
func Assets(fragment string) string {
	for _, rep := range assetReplacer {
		fragment = strings.ReplaceAll(fragment, rep.old, rep.new)
	}
	return fragment
}

// Links rewrites href="page.html" to href="/<lang>/page.html". Absolute,
// anchor, mailto and non-.html values are left alone.
func (r *Rewriter) Links(fragment string) string {
	return hrefRegex.ReplaceAllStringFunc(fragment, func(attr string) string {
		value := hrefRegex.FindStringSubmatch(attr)[1]
		if IsKept(value) || !strings.HasSuffix(value, ".html") {
			return attr
		}
		return `href="/` + string(r.Lang) + `/` + value + `"`
	})
}

// IsKept reports whether an href value is left untouched by link rewriting.
func IsKept(value string) bool {
	for _, p := range keptPrefixes {
		if strings.HasPrefix(value, p) {
			return true
		}
	}
	return false
}
