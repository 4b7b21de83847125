// Package frontmatter builds the Jekyll header for converted pages and
// checks that a generated header reads back as the values that went in.
package frontmatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	fmparser "github.com/adrg/frontmatter"

	"github.com/gaurav-prasanna/jekyllpipe/core"
)

// Delimiter opens and closes the header.
const Delimiter = "---"

// QuoteMode controls how string values are written between double quotes.
type QuoteMode int

const (
	// QuoteEscaped writes YAML double-quoted scalars with quotes,
	// backslashes and control characters escaped.
	QuoteEscaped QuoteMode = iota
	// QuoteRaw inserts values verbatim between quotes. Values containing a
	// double quote produce a header that does not parse.
	QuoteRaw
)

func (m QuoteMode) quote(s string) string {
	if m == QuoteRaw {
		return `"` + s + `"`
	}
	return strconv.Quote(s)
}

// New assembles the header fields for a page. The permalink is derived from
// the input filename, not the output one.
func New(meta core.Metadata, lang core.Language, inputName, customScripts string) core.FrontMatter {
	return core.FrontMatter{
		Layout:        "default",
		Title:         meta.Title,
		Description:   meta.Description,
		Keywords:      meta.Keywords,
		Lang:          string(lang),
		Permalink:     "/" + string(lang) + "/" + inputName,
		CustomScripts: customScripts,
	}
}

// Build renders fm with keys in fixed order, followed by a blank line.
func Build(fm core.FrontMatter, mode QuoteMode) string {
	var b strings.Builder
	b.WriteString(Delimiter + "\n")
	fmt.Fprintf(&b, "layout: %s\n", fm.Layout)
	fmt.Fprintf(&b, "title: %s\n", mode.quote(fm.Title))
	fmt.Fprintf(&b, "description: %s\n", mode.quote(fm.Description))
	fmt.Fprintf(&b, "keywords: %s\n", mode.quote(fm.Keywords))
	fmt.Fprintf(&b, "lang: %s\n", fm.Lang)
	fmt.Fprintf(&b, "permalink: %s\n", fm.Permalink)

	if fm.CustomScripts != "" {
		b.WriteString("custom_scripts: |\n")
		for _, line := range strings.Split(fm.CustomScripts, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString(Delimiter + "\n\n")
	return b.String()
}

// Verify parses the header at the top of data and compares the quoted
// values against want. It returns the body that follows the header.
func Verify(data []byte, want core.FrontMatter) ([]byte, error) {
	var got core.FrontMatter
	body, err := fmparser.Parse(bytes.NewReader(data), &got)
	if err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}

	checks := []struct{ key, got, want string }{
		{"layout", got.Layout, want.Layout},
		{"title", got.Title, want.Title},
		{"description", got.Description, want.Description},
		{"keywords", got.Keywords, want.Keywords},
		{"permalink", got.Permalink, want.Permalink},
	}
	for _, c := range checks {
		if c.got != c.want {
			return nil, fmt.Errorf("front matter %s reads back as %q, want %q", c.key, c.got, c.want)
		}
	}
	return body, nil
}
