package audit

import (
	"net/url"
	"path"
	"strings"
)

// staticExtensions are file extensions treated as site assets.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".pdf": true, ".doc": true, ".docx": true,
}

// IsSiteRelative reports whether ref is an absolute path on this site
// (starts with a single "/", no scheme or host).
func IsSiteRelative(ref string) bool {
	return strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//")
}

// IsStaticAsset checks if a reference points to a static asset (image, CSS, JS, etc.).
func IsStaticAsset(ref string) bool {
	return staticExtensions[strings.ToLower(path.Ext(refPath(ref)))]
}

// refPath strips query and fragment from ref.
func refPath(ref string) string {
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return parsed.Path
}
