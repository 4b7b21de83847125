// Package cmd implements the CLI commands for jekyllpipe using Cobra.
// Settings come from flags, JEKYLLPIPE_* environment variables and an
// optional jekyllpipe.yaml, merged by viper.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/jekyllpipe/core/config"
)

const envPrefix = "JEKYLLPIPE"

// app carries the state shared by subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	logger  *slog.Logger
}

// newRootCmd builds the command tree with its own viper instance.
func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "jekyllpipe",
		Short: "jekyllpipe converts static site pages into Jekyll fragments",
		Long: `jekyllpipe reads the HTML pages of a bilingual static site (en/ and fr/),
extracts their metadata and main content block, rewrites asset paths and
internal links, and writes <page>-jekyll.html files with a front matter header.

Usage:
  jekyllpipe convert [site-root] [flags]`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(cmd.ErrOrStderr(), a.verbose)
			return a.initConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./jekyllpipe.yaml or ~/.config/jekyllpipe/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log diagnostics to stderr")

	rootCmd.AddCommand(newConvertCmd(a), newConfigCmd(a))
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) initConfig() error {
	config.SetDefaults(a.v)

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("jekyllpipe")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".config", "jekyllpipe"))
		}
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	a.logger.Info("using config file", "path", a.v.ConfigFileUsed())
	return nil
}

// bindFlags binds every flag in fs to the viper key of the same name with
// dashes replaced by underscores.
func (a *app) bindFlags(fs *pflag.FlagSet) error {
	var errs []error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := a.v.BindPFlag(key, f); err != nil {
			errs = append(errs, fmt.Errorf("binding --%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
