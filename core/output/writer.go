// Package output derives output filenames and writes converted pages.
// Converted files sit next to their input, named <stem>-jekyll<ext>.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Suffix is inserted between the input stem and the output extension.
const Suffix = "-jekyll"

// Writer writes rendered output to disk.
type Writer struct {
	// DryRun skips the write and only reports the target path.
	DryRun bool
}

// New creates a Writer. With dryRun set, Write only reports the target path.
func New(dryRun bool) *Writer {
	return &Writer{DryRun: dryRun}
}

// OutputPath returns the sibling output path for inputPath.
// Example: en/about.html with ".html" → en/about-jekyll.html
func OutputPath(inputPath, ext string) string {
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+Suffix+ext)
}

// IsOutput reports whether name looks like a file this tool produced.
func IsOutput(name string) bool {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.HasSuffix(stem, Suffix)
}

// Write stores data at path, replacing any existing file.
func (w *Writer) Write(path string, data []byte) error {
	if w.DryRun {
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}
