package extract

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/jekyllpipe/core"
)

// DefaultTitle is used when a page has no <title>.
const DefaultTitle = "Korol Group"

var (
	titleRegex       = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	descriptionRegex = regexp.MustCompile(`<meta name="description" content="(.*?)"`)
	keywordsRegex    = regexp.MustCompile(`<meta name="keywords" content="(.*?)"`)
)

// Metadata reads the title, description and keywords of a page. A missing
// title becomes defaultTitle (DefaultTitle when empty); missing description
// and keywords become "".
func Metadata(html, defaultTitle string) core.Metadata {
	if defaultTitle == "" {
		defaultTitle = DefaultTitle
	}
	return core.Metadata{
		Title:       firstGroup(titleRegex, html, defaultTitle),
		Description: firstGroup(descriptionRegex, html, ""),
		Keywords:    firstGroup(keywordsRegex, html, ""),
	}
}

func firstGroup(re *regexp.Regexp, html, fallback string) string {
	m := re.FindStringSubmatch(html)
	if m == nil {
		return fallback
	}
	return strings.TrimSpace(m[1])
}
