// Package pipeline runs the conversion for each page:
// load → metadata → content → scripts → rewrite → front matter → render → write.
//
// Pages are converted one at a time and never share state. A page whose
// content cannot be located is skipped with a warning. An I/O failure stops
// the run.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/gaurav-prasanna/jekyllpipe/core"
	"github.com/gaurav-prasanna/jekyllpipe/core/audit"
	"github.com/gaurav-prasanna/jekyllpipe/core/extract"
	"github.com/gaurav-prasanna/jekyllpipe/core/frontmatter"
	"github.com/gaurav-prasanna/jekyllpipe/core/output"
	"github.com/gaurav-prasanna/jekyllpipe/core/rewrite"
)

// ContentMatcher finds the content fragment and names the rule that found it.
type ContentMatcher interface {
	Match(html string) (matcher string, fragment string, err error)
}

// Result is the outcome for one input page.
type Result struct {
	Input     string
	Output    string
	Lang      core.Language
	Converted bool
	Matcher   string
	Findings  []audit.Finding
	// VerifyErr is set when the written header does not read back cleanly.
	VerifyErr error
}

// Converter converts single pages.
type Converter struct {
	Source       core.Source
	Content      ContentMatcher
	Renderer     core.Renderer
	Writer       *output.Writer
	Auditor      *audit.Auditor // nil disables the audit
	DefaultTitle string

	// Out receives the per-file progress lines.
	Out    io.Writer
	Logger *slog.Logger
}

// Convert runs one page through the pipeline. Extraction failure is reported
// and returned as an unconverted Result with a nil error.
func (c *Converter) Convert(path string, lang core.Language) (Result, error) {
	res := Result{Input: path, Lang: lang}
	fmt.Fprintf(c.Out, "Converting %s...\n", path)

	page, err := c.Source.Load(path, lang)
	if err != nil {
		return res, err
	}

	meta := extract.Metadata(page.HTML, c.DefaultTitle)

	matcher, fragment, err := c.Content.Match(page.HTML)
	if errors.Is(err, extract.ErrContentNotFound) {
		fmt.Fprintf(c.Out, "  WARNING: Could not extract content from %s\n", path)
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("extract %s: %w", path, err)
	}
	res.Matcher = matcher
	c.log().Debug("content located", "path", path, "matcher", matcher, "bytes", len(fragment))

	scripts, _ := extract.CustomScripts(page.HTML)
	body := rewrite.New(lang).Rewrite(fragment)

	doc := core.Document{
		FrontMatter: frontmatter.New(meta, lang, filepath.Base(path), scripts),
		Body:        body,
	}
	data, err := c.Renderer.Render(doc)
	if err != nil {
		return res, fmt.Errorf("render %s: %w", path, err)
	}

	if _, err := frontmatter.Verify(data, doc.FrontMatter); err != nil {
		res.VerifyErr = err
		c.log().Warn("generated front matter is malformed", "path", path, "error", err)
	}

	if c.Auditor != nil {
		findings, err := c.Auditor.Audit(body)
		if err != nil {
			return res, fmt.Errorf("audit %s: %w", path, err)
		}
		for _, f := range findings {
			fmt.Fprintf(c.Out, "  AUDIT: %s\n", f)
		}
		res.Findings = findings
	}

	page.OutputPath = output.OutputPath(path, c.Renderer.Extension())
	if err := c.Writer.Write(page.OutputPath, data); err != nil {
		return res, err
	}
	res.Output = page.OutputPath
	res.Converted = true

	if c.Writer.DryRun {
		fmt.Fprintf(c.Out, "  [DRY RUN] Would create %s\n", page.OutputPath)
	} else {
		fmt.Fprintf(c.Out, "  [OK] Created %s\n", page.OutputPath)
	}
	return res, nil
}

func (c *Converter) log() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
