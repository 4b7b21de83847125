package pipeline

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/jekyllpipe/core"
	"github.com/gaurav-prasanna/jekyllpipe/core/audit"
	"github.com/gaurav-prasanna/jekyllpipe/core/config"
)

const demoPage = `<!DOCTYPE html>
<html lang="en">
<head>
<title>Demo</title>
<meta name="description" content="d">
<meta name="keywords" content="k">
</head>
<body>
<section id="header"></section>
<!-- Main -->
<main id="main-content">
  <p><a href="x.html">x</a> <img src="../images/x.png"></p>
</main>
<!-- Footer -->
</body>
</html>`

const scriptPage = `<html><head><title>Publications</title>
<!-- Publication unhide functionality -->
<script>
  unhide();
</script>
</head><body>
<!-- Main -->
<section id="main">
  <h2>Papers</h2>
<!-- Footer -->
</body></html>`

// setupSite writes files (slash-separated paths) below a temp root.
func setupSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func testConfig(root string) config.Config {
	cfg := config.Default()
	cfg.Root = root
	return cfg
}

func run(t *testing.T, cfg config.Config) (BatchResult, string, error) {
	t.Helper()
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	res, err := Run(context.Background(), cfg, NewConverter(cfg, &out, logger))
	return res, out.String(), err
}

func readFile(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	require.NoError(t, err)
	return string(data)
}

func TestRunEndToEnd(t *testing.T) {
	root := setupSite(t, map[string]string{"en/demo.html": demoPage})

	res, out, err := run(t, testConfig(root))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Converted)

	got := readFile(t, root, "en/demo-jekyll.html")
	assert.True(t, strings.HasPrefix(got, `---
layout: default
title: "Demo"
description: "d"
keywords: "k"
lang: en
permalink: /en/demo.html
---

<p>`))
	assert.Contains(t, got, `<a href="/en/x.html">`)
	assert.Contains(t, got, `<img src="/images/x.png">`)
	assert.NotContains(t, got, "custom_scripts")

	assert.Contains(t, out, "Converting "+filepath.Join(root, "en", "demo.html")+"...")
	assert.Contains(t, out, "  [OK] Created "+filepath.Join(root, "en", "demo-jekyll.html"))

	require.Len(t, res.Results, 1)
	assert.Equal(t, "main-content", res.Results[0].Matcher)
	assert.NoError(t, res.Results[0].VerifyErr)
}

func TestRunExtractionFailureContinues(t *testing.T) {
	root := setupSite(t, map[string]string{
		"en/a-broken.html": `<html><body><div>no markers</div></body></html>`,
		"en/b-good.html":   demoPage,
	})

	res, out, err := run(t, testConfig(root))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Converted)
	assert.Equal(t, 1, res.Skipped)
	assert.Contains(t, out, "  WARNING: Could not extract content from "+filepath.Join(root, "en", "a-broken.html"))
	assert.NoFileExists(t, filepath.Join(root, "en", "a-broken-jekyll.html"))
	assert.FileExists(t, filepath.Join(root, "en", "b-good-jekyll.html"))
}

func TestRunSkipListIsPerLanguage(t *testing.T) {
	root := setupSite(t, map[string]string{
		"en/index-jekyll.html": demoPage,
		"fr/index-jekyll.html": demoPage,
	})

	res, _, err := run(t, testConfig(root))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Excluded)
	assert.Equal(t, 1, res.Converted)
	assert.Equal(t, 2, res.Total())
	assert.NoFileExists(t, filepath.Join(root, "en", "index-jekyll-jekyll.html"))
	assert.FileExists(t, filepath.Join(root, "fr", "index-jekyll-jekyll.html"))
}

func TestRunFrenchLinksAndScripts(t *testing.T) {
	root := setupSite(t, map[string]string{
		"fr/publications.html": scriptPage,
		"fr/contact.html":      strings.Replace(demoPage, "<title>Demo</title>", "<title>Contact</title>", 1),
	})

	_, _, err := run(t, testConfig(root))
	require.NoError(t, err)

	pubs := readFile(t, root, "fr/publications-jekyll.html")
	assert.Contains(t, pubs, "permalink: /fr/publications.html\ncustom_scripts: |\n  <!-- Publication unhide functionality -->\n  <script>\n    unhide();\n  </script>\n---\n\n<h2>Papers</h2>")

	contact := readFile(t, root, "fr/contact-jekyll.html")
	assert.Contains(t, contact, `title: "Contact"`)
	assert.Contains(t, contact, `<a href="/fr/x.html">`)
}

func TestRunMarkdownFormat(t *testing.T) {
	root := setupSite(t, map[string]string{"en/demo.html": demoPage})
	cfg := testConfig(root)
	cfg.Format = config.FormatMarkdown

	_, out, err := run(t, cfg)
	require.NoError(t, err)

	got := readFile(t, root, "en/demo-jekyll.md")
	assert.Contains(t, got, "permalink: /en/demo.html")
	assert.Contains(t, got, "[x](/en/x.html)")
	assert.NotContains(t, got, "<p>")
	assert.NoFileExists(t, filepath.Join(root, "en", "demo-jekyll.html"))

	var summary bytes.Buffer
	PrintSummary(&summary, BatchResult{Converted: 1}, cfg)
	assert.Contains(t, summary.String(), "[page]-jekyll.md")
	assert.Contains(t, out, "[OK] Created")
}

func TestRunAudit(t *testing.T) {
	root := setupSite(t, map[string]string{
		"en/demo.html":    demoPage,
		"images/.keep":    "",
		"en/present.html": strings.Replace(demoPage, `href="x.html"`, `href="demo.html"`, 1),
	})
	cfg := testConfig(root)
	cfg.Audit = true

	res, out, err := run(t, cfg)
	require.NoError(t, err)

	// demo.html links to x.html, which does not exist; both pages miss x.png.
	assert.Equal(t, 3, res.Findings())
	assert.Contains(t, res.Results[0].Findings, audit.Finding{
		Kind:   audit.MissingPage,
		Ref:    "/en/x.html",
		Target: filepath.Join(root, "en", "x.html"),
	})
	assert.Contains(t, out, "  AUDIT: missing-asset /images/x.png")
}

func TestRunRawFrontMatterIsVerified(t *testing.T) {
	page := strings.Replace(demoPage, "<title>Demo</title>", `<title>The "Demo"</title>`, 1)
	root := setupSite(t, map[string]string{"en/demo.html": page})

	cfg := testConfig(root)
	cfg.RawFrontMatter = true
	res, _, err := run(t, cfg)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Error(t, res.Results[0].VerifyErr)
	assert.Contains(t, readFile(t, root, "en/demo-jekyll.html"), `title: "The "Demo""`)

	escapedRoot := setupSite(t, map[string]string{"en/demo.html": page})
	cfg = testConfig(escapedRoot)
	res, _, err = run(t, cfg)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.NoError(t, res.Results[0].VerifyErr)
	assert.Contains(t, readFile(t, escapedRoot, "en/demo-jekyll.html"), `title: "The \"Demo\""`)
}

func TestRunWriteFailureStops(t *testing.T) {
	root := setupSite(t, map[string]string{
		"en/a.html": demoPage,
		"en/b.html": demoPage,
	})
	// A directory where the first output file should go.
	require.NoError(t, os.Mkdir(filepath.Join(root, "en", "a-jekyll.html"), 0o755))

	res, _, err := run(t, testConfig(root))
	require.Error(t, err)
	assert.ErrorContains(t, err, "writing file")
	assert.Equal(t, 0, res.Converted)
	assert.NoFileExists(t, filepath.Join(root, "en", "b-jekyll.html"))
}

func TestRunDryRun(t *testing.T) {
	root := setupSite(t, map[string]string{"en/demo.html": demoPage})
	cfg := testConfig(root)
	cfg.DryRun = true

	res, out, err := run(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Converted)
	assert.NoFileExists(t, filepath.Join(root, "en", "demo-jekyll.html"))
	assert.Contains(t, out, "  [DRY RUN] Would create "+filepath.Join(root, "en", "demo-jekyll.html"))
	assert.NotContains(t, out, "[OK] Created")
}

func TestRunCanceled(t *testing.T) {
	root := setupSite(t, map[string]string{"en/demo.html": demoPage})
	cfg := testConfig(root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, cfg, NewConverter(cfg, io.Discard, nil))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Total())
}

func TestRunMissingDirectory(t *testing.T) {
	res, _, err := run(t, testConfig(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total())
}

func TestConvertDefaultTitle(t *testing.T) {
	root := setupSite(t, map[string]string{
		"en/untitled.html": `<main><p>hi</p></main>`,
	})
	cfg := testConfig(root)

	res, _, err := run(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, "main-any", res.Results[0].Matcher)
	assert.Contains(t, readFile(t, root, "en/untitled-jekyll.html"), `title: "Korol Group"`)
	assert.Equal(t, core.English, res.Results[0].Lang)
}
