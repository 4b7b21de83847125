package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/gaurav-prasanna/jekyllpipe/core"
	"github.com/gaurav-prasanna/jekyllpipe/core/audit"
	"github.com/gaurav-prasanna/jekyllpipe/core/config"
	"github.com/gaurav-prasanna/jekyllpipe/core/extract"
	"github.com/gaurav-prasanna/jekyllpipe/core/normalize"
	"github.com/gaurav-prasanna/jekyllpipe/core/output"
	"github.com/gaurav-prasanna/jekyllpipe/core/render"
	"github.com/gaurav-prasanna/jekyllpipe/core/source"
)

// BatchResult holds the outcome of a conversion run.
type BatchResult struct {
	Converted int
	// Skipped counts pages whose content could not be located.
	Skipped int
	// Excluded counts pages on a skip list.
	Excluded int
	Results  []Result
}

// Total returns the number of pages found.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Excluded
}

// Findings returns every audit finding of the run.
func (r BatchResult) Findings() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.Findings)
	}
	return n
}

// NewConverter wires a Converter from cfg.
func NewConverter(cfg config.Config, out io.Writer, logger *slog.Logger) *Converter {
	var opts []extract.Option
	if cfg.ReadabilityFallback {
		opts = append(opts, extract.WithReadabilityFallback())
	}

	var renderer core.Renderer = render.NewHTMLRenderer(cfg.QuoteMode())
	if cfg.Format == config.FormatMarkdown {
		renderer = render.NewMarkdownRenderer(cfg.QuoteMode(), normalize.New())
	}

	var auditor *audit.Auditor
	if cfg.Audit {
		auditor = audit.New(cfg.Root, cfg.LangDirs())
	}

	return &Converter{
		Source:       source.New(),
		Content:      extract.New(opts...),
		Renderer:     renderer,
		Writer:       output.New(cfg.DryRun),
		Auditor:      auditor,
		DefaultTitle: cfg.DefaultTitle,
		Out:          out,
		Logger:       logger,
	}
}

// Run converts every *.html page in each configured language directory.
// It stops at the first I/O error or when ctx is done.
func Run(ctx context.Context, cfg config.Config, conv *Converter) (BatchResult, error) {
	var batch BatchResult

	for _, l := range cfg.Languages {
		lang, err := core.ParseLanguage(l.Lang)
		if err != nil {
			return batch, err
		}
		dir := cfg.Path(l)

		pages, err := listPages(dir)
		if err != nil {
			return batch, err
		}
		if len(pages) == 0 {
			conv.log().Warn("no pages found", "dir", dir, "lang", lang)
		}

		for _, path := range pages {
			if err := ctx.Err(); err != nil {
				return batch, err
			}

			name := filepath.Base(path)
			if slices.Contains(l.Skip, name) {
				conv.log().Debug("skip list", "path", path)
				batch.Excluded++
				continue
			}
			if output.IsOutput(name) {
				conv.log().Warn("input looks like a converted page", "path", path)
			}

			res, err := conv.Convert(path, lang)
			if err != nil {
				return batch, err
			}
			batch.Results = append(batch.Results, res)
			if res.Converted {
				batch.Converted++
			} else {
				batch.Skipped++
			}
		}
	}
	return batch, nil
}

// listPages returns the *.html files directly inside dir, sorted.
// A missing directory yields no pages.
func listPages(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var pages []string
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && fi.Mode().IsRegular() {
			pages = append(pages, m)
		}
	}
	return pages, nil
}

// PrintSummary writes the closing report and the manual follow-up steps.
func PrintSummary(w io.Writer, r BatchResult, cfg config.Config) {
	fmt.Fprintln(w, "\n[SUCCESS] Conversion complete!")
	fmt.Fprintf(w, "Converted: %d  Skipped: %d  Excluded: %d\n", r.Converted, r.Skipped, r.Excluded)
	if cfg.Audit {
		fmt.Fprintf(w, "Audit findings: %d\n", r.Findings())
	}
	if cfg.DryRun {
		fmt.Fprintln(w, "Dry run: no files were written.")
	}

	ext := ".html"
	if cfg.Format == config.FormatMarkdown {
		ext = ".md"
	}
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "1. Test converted pages: http://localhost:4000/en/[page]%s%s\n", output.Suffix, ext)
	fmt.Fprintln(w, "2. If working, backup originals: rename .html to .html.bak")
	fmt.Fprintf(w, "3. Rename %s%s files to %s\n", output.Suffix, ext, ext)
}
