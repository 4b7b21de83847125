// Package source loads template pages from the local filesystem.
package source

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gaurav-prasanna/jekyllpipe/core"
)

// FileSource reads pages from disk.
type FileSource struct{}

// New creates a FileSource.
func New() *FileSource {
	return &FileSource{}
}

// Load reads the whole file at path and converts line endings to "\n".
// Content that is not valid UTF-8 is an error, like any other read failure.
func (s *FileSource) Load(path string, lang core.Language) (*core.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("reading %s: content is not valid UTF-8", path)
	}

	return &core.Page{
		Path: path,
		Lang: lang,
		HTML: normalizeNewlines(string(data)),
	}, nil
}

// normalizeNewlines turns CRLF and lone CR line endings into LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
