// Package config holds jekyllpipe settings and loads them through viper from
// flags, JEKYLLPIPE_* environment variables, and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/jekyllpipe/core"
	"github.com/gaurav-prasanna/jekyllpipe/core/extract"
	"github.com/gaurav-prasanna/jekyllpipe/core/frontmatter"
)

// Format selects the body format of generated files.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// LanguageDir is one input directory and the language of its pages.
type LanguageDir struct {
	// Lang is the language tag (en or fr).
	Lang string `mapstructure:"lang" yaml:"lang"`

	// Dir is the page directory, relative to Root unless absolute.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// Skip lists file names in Dir that are never converted.
	Skip []string `mapstructure:"skip" yaml:"skip,omitempty"`
}

// Config is the full set of conversion settings.
type Config struct {
	// Root is the site root holding the language directories.
	Root string `mapstructure:"root" yaml:"root"`

	// Format selects html (fragment verbatim) or markdown output.
	Format Format `mapstructure:"format" yaml:"format"`

	// RawFrontMatter writes header values without escaping.
	RawFrontMatter bool `mapstructure:"raw_front_matter" yaml:"raw_front_matter"`

	// ReadabilityFallback adds a readability matcher after the template cascade.
	ReadabilityFallback bool `mapstructure:"readability_fallback" yaml:"readability_fallback"`

	// Audit reports site-relative links and assets that do not resolve.
	Audit bool `mapstructure:"audit" yaml:"audit"`

	// DryRun converts pages without writing output files.
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`

	// DefaultTitle is used for pages without a <title>.
	DefaultTitle string `mapstructure:"default_title" yaml:"default_title"`

	// Languages lists the input directories, processed in order.
	Languages []LanguageDir `mapstructure:"languages" yaml:"languages"`
}

// DefaultLanguages are the site's two page directories. The English index
// example that was converted by hand is skipped.
func DefaultLanguages() []LanguageDir {
	return []LanguageDir{
		{Lang: string(core.English), Dir: "en", Skip: []string{"index-jekyll.html"}},
		{Lang: string(core.French), Dir: "fr"},
	}
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Root:         ".",
		Format:       FormatHTML,
		DefaultTitle: extract.DefaultTitle,
		Languages:    DefaultLanguages(),
	}
}

// SetDefaults registers scalar defaults on v so environment variables bind.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("root", d.Root)
	v.SetDefault("format", string(d.Format))
	v.SetDefault("raw_front_matter", d.RawFrontMatter)
	v.SetDefault("readability_fallback", d.ReadabilityFallback)
	v.SetDefault("audit", d.Audit)
	v.SetDefault("dry_run", d.DryRun)
	v.SetDefault("default_title", d.DefaultTitle)
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if len(cfg.Languages) == 0 {
		cfg.Languages = DefaultLanguages()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks formats and language tags.
func (c Config) Validate() error {
	var errs []error
	switch c.Format {
	case FormatHTML, FormatMarkdown:
	default:
		errs = append(errs, fmt.Errorf("unknown format %q (want %q or %q)", c.Format, FormatHTML, FormatMarkdown))
	}
	if len(c.Languages) == 0 {
		errs = append(errs, errors.New("no language directories configured"))
	}
	seen := make(map[string]bool)
	for i, l := range c.Languages {
		if _, err := core.ParseLanguage(l.Lang); err != nil {
			errs = append(errs, fmt.Errorf("languages[%d]: %w", i, err))
		}
		if l.Dir == "" {
			errs = append(errs, fmt.Errorf("languages[%d]: dir is required", i))
		}
		if seen[l.Lang] {
			errs = append(errs, fmt.Errorf("languages[%d]: %s listed twice", i, l.Lang))
		}
		seen[l.Lang] = true
	}
	return errors.Join(errs...)
}

// QuoteMode maps RawFrontMatter to the builder's quoting mode.
func (c Config) QuoteMode() frontmatter.QuoteMode {
	if c.RawFrontMatter {
		return frontmatter.QuoteRaw
	}
	return frontmatter.QuoteEscaped
}

// Path resolves a language directory against Root.
func (c Config) Path(l LanguageDir) string {
	if filepath.IsAbs(l.Dir) {
		return l.Dir
	}
	return filepath.Join(c.Root, l.Dir)
}

// LangDirs maps each configured language to its resolved directory.
func (c Config) LangDirs() map[core.Language]string {
	dirs := make(map[core.Language]string, len(c.Languages))
	for _, l := range c.Languages {
		dirs[core.Language(l.Lang)] = c.Path(l)
	}
	return dirs
}
