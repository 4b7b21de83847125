// Package core defines the shared types and stage interfaces for jekyllpipe.
// Each stage of the conversion pipeline is a small, testable interface.
package core

import "fmt"

// Language is the site language a page belongs to.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// Languages lists every supported language, in driver order.
var Languages = []Language{English, French}

// ParseLanguage validates a language tag.
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q (want one of %v)", s, Languages)
}

// Page is a single input file loaded from disk.
type Page struct {
	Path       string
	Lang       Language
	HTML       string
	OutputPath string
}

// Metadata holds the head tags read from a page.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// FrontMatter is the Jekyll header prepended to every generated file.
type FrontMatter struct {
	Layout        string `yaml:"layout"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	Keywords      string `yaml:"keywords"`
	Lang          string `yaml:"lang"`
	Permalink     string `yaml:"permalink"`
	CustomScripts string `yaml:"custom_scripts,omitempty"`
}

// Document is a front matter header plus the body that follows it.
type Document struct {
	FrontMatter FrontMatter
	Body        string
}

// Source loads a page from storage.
type Source interface {
	Load(path string, lang Language) (*Page, error)
}

// Extractor pulls the main content fragment out of a full page.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts an HTML fragment into another body format.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer turns a Document into the bytes written to disk.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".md").
	Extension() string
}
