// Package main implements the qff command line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/sjc08/QuickFileFinder/internal/config"
	"github.com/sjc08/QuickFileFinder/internal/pathfilter"
	"github.com/sjc08/QuickFileFinder/internal/search"
	"github.com/sjc08/QuickFileFinder/internal/types"
)

// exitRootMissing is the exit status when the search root does not exist.
const exitRootMissing = 2

var (
	configPath    string
	caseSensitive bool
	format        string
	noProgress    bool
	verbose       bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fang.Execute(
		ctx,
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
	stop()

	if err != nil {
		if errors.Is(err, search.ErrRootNotFound) {
			os.Exit(exitRootMissing)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qff <search-text> [directory]",
		Short: "Search file names, JSON content and SQLite databases",
		Long: `qff walks a directory tree once and reports every place a piece of text
occurs: in file and directory names, in the lines of .json files, and in
the table names, column names and text rows of SQLite databases
(.db, .sqlite, .sqlite3). Target files are only ever opened read-only.`,
		Example: `qff needle
qff user_id ./data --case-sensitive
qff token ~/projects --format json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runSearch,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: user config dir/qff/config.yaml)")
	cmd.Flags().BoolVarP(&caseSensitive, "case-sensitive", "c", false, "match case exactly")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or yaml")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "do not draw the progress bar")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "report files whose content could not be searched")

	cmd.AddCommand(newServeCmd())
	return cmd
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	var cfg types.Config

	path := configPath
	required := cmd.Flags().Changed("config")
	if path == "" {
		// without a per-user config directory only flags apply
		path, _ = config.DefaultPath()
	}
	if path != "" {
		var err error
		if cfg, err = config.Load(path, required); err != nil {
			return types.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Lookup("case-sensitive") != nil && (flags.Changed("case-sensitive") || cfg.CaseSensitive == nil) {
		cfg.CaseSensitive = &caseSensitive
	}
	if flags.Lookup("format") != nil && (flags.Changed("format") || cfg.Format == "") {
		cfg.Format = format
	}
	if flags.Changed("no-progress") || cfg.Progress == nil {
		show := !noProgress
		cfg.Progress = &show
	}
	return cfg, nil
}

// resolveRoot returns the directory argument at index i, or the working directory.
func resolveRoot(args []string, i int) (string, error) {
	if len(args) > i {
		return args[i], nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return wd, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := parseFormat(cfg.Format); err != nil {
		return err
	}

	root, err := resolveRoot(args, 1)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	bar := newProgressBar(stderr, *cfg.Progress)
	svc := search.New(pathfilter.New(&cfg.PathFilter))

	report, err := svc.Run(cmd.Context(), types.SearchRequest{
		Text:          args[0],
		Root:          root,
		CaseSensitive: *cfg.CaseSensitive,
	}, search.Options{
		OnProgress: bar.Update,
		OnWarning: func(err error) {
			bar.Clear()
			warnf(stderr, "%v", err)
		},
	})
	bar.Clear()

	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}

	if verbose {
		printSkips(stderr, report.Skips)
	}
	if err := render(cmd.OutOrStdout(), cfg.Format, report); err != nil {
		return err
	}
	if interrupted {
		warnf(stderr, "search interrupted, results are partial")
	}
	return nil
}
