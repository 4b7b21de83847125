package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/jekyllpipe/core/config"
	"github.com/gaurav-prasanna/jekyllpipe/core/pipeline"
)

// newConvertCmd builds the command that runs the pipeline for every page in
// the configured language directories.
func newConvertCmd(a *app) *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert [site-root]",
		Short: "Convert the en/ and fr/ pages of a site into Jekyll fragments",
		Long: `Convert reads every *.html page in the language directories, extracts the
title, description, keywords and main content block, rewrites asset paths
and internal links, and writes <page>-jekyll.html next to each input.

Pages whose content block cannot be located are skipped with a warning.

Examples:
  jekyllpipe convert
  jekyllpipe convert ./site --audit
  jekyllpipe convert ./site --format markdown
  jekyllpipe convert --raw-front-matter --dry-run`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bindFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.v.Set("root", args[0])
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			conv := pipeline.NewConverter(cfg, out, a.logger)
			res, err := pipeline.Run(cmd.Context(), cfg, conv)
			if err != nil {
				return err
			}
			pipeline.PrintSummary(out, res, cfg)
			return nil
		},
	}

	d := config.Default()
	convertCmd.Flags().String("format", string(d.Format), "Body format: html or markdown")
	convertCmd.Flags().Bool("raw-front-matter", false, "Write header values verbatim, without escaping quotes")
	convertCmd.Flags().Bool("readability-fallback", false, "Use readability when no template pattern matches")
	convertCmd.Flags().Bool("audit", false, "Report site-relative links and assets that do not resolve")
	convertCmd.Flags().Bool("dry-run", false, "Convert pages without writing files")
	convertCmd.Flags().String("default-title", d.DefaultTitle, "Title for pages without a <title>")

	return convertCmd
}
