package extract

import (
	"regexp"
	"strings"
)

// ScriptMarker opens the page-specific script block carried into front matter.
const ScriptMarker = "<!-- Publication unhide functionality -->"

var customScriptRegex = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(ScriptMarker) + `.*?</script>`)

// CustomScripts returns every marker-to-</script> block joined by newlines.
// It reports false when the page has none.
func CustomScripts(html string) (string, bool) {
	matches := customScriptRegex.FindAllString(html, -1)
	if len(matches) == 0 {
		return "", false
	}
	return strings.Join(matches, "\n"), true
}
