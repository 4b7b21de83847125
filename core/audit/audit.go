// Package audit checks a rewritten fragment for site-relative references
// that do not resolve to a file: page links under /<lang>/ and assets such
// as /images/ and /assets/.
//
// Unlike extraction, the audit parses the fragment with goquery, since it
// only reads attribute values and never feeds back into the output.
package audit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/jekyllpipe/core"
)

var (
	linkSelector   = cascadia.MustCompile("a[href], link[href]")
	sourceSelector = cascadia.MustCompile("[src]")
)

// Kind classifies a finding.
type Kind string

const (
	MissingPage  Kind = "missing-page"
	MissingAsset Kind = "missing-asset"
)

// Finding is a reference whose target does not exist.
type Finding struct {
	Kind   Kind
	Ref    string
	Target string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %s (expected %s)", f.Kind, f.Ref, f.Target)
}

// Auditor resolves site-relative references against the site root.
type Auditor struct {
	// Root is the site root; assets resolve directly below it.
	Root string
	// LangDirs maps each language to the directory holding its pages.
	LangDirs map[core.Language]string
}

// New creates an Auditor.
func New(root string, langDirs map[core.Language]string) *Auditor {
	return &Auditor{Root: root, LangDirs: langDirs}
}

// Audit returns the unresolved references in fragment: links first, then
// src attributes, each in document order.
func (a *Auditor) Audit(fragment string) ([]Finding, error) {
	refs, err := collectRefs(fragment)
	if err != nil {
		return nil, err
	}

	var findings []Finding
	for _, ref := range refs {
		kind, target, ok := a.resolve(ref)
		if !ok {
			continue
		}
		exists, err := fileExists(target)
		if err != nil {
			return nil, err
		}
		if !exists {
			findings = append(findings, Finding{Kind: kind, Ref: ref, Target: target})
		}
	}
	return findings, nil
}

// resolve maps ref to the file it should point at. It reports false for
// references the audit does not check.
func (a *Auditor) resolve(ref string) (Kind, string, bool) {
	if !IsSiteRelative(ref) {
		return "", "", false
	}
	p := refPath(ref)

	for lang, dir := range a.LangDirs {
		prefix := "/" + string(lang) + "/"
		if strings.HasPrefix(p, prefix) && strings.HasSuffix(p, ".html") {
			return MissingPage, filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(p, prefix))), true
		}
	}

	if IsStaticAsset(p) {
		return MissingAsset, filepath.Join(a.Root, filepath.FromSlash(strings.TrimPrefix(p, "/"))), true
	}
	return "", "", false
}

// collectRefs returns every href and src value in the fragment, once each.
func collectRefs(fragment string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}

	refs := newRefSet()
	doc.FindMatcher(linkSelector).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		refs.Add(strings.TrimSpace(href))
	})
	doc.FindMatcher(sourceSelector).Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		refs.Add(strings.TrimSpace(src))
	})
	return refs.All(), nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}
