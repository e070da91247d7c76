package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/groupview/internal/config"
	"github.com/lumipallolabs/groupview/internal/core"
	"github.com/lumipallolabs/groupview/internal/history"
	"github.com/lumipallolabs/groupview/internal/logging"
	"github.com/lumipallolabs/groupview/internal/source"
	"github.com/lumipallolabs/groupview/internal/ui"
)

var (
	configPath   string
	saveConfig   string
	jsonPath     string
	sqlitePath   string
	sqliteQuery  string
	dirPath      string
	groupExprs   []string
	parentExprs  []string
	filterExpr   string
	prefixExpr   string
	widthsFlag   string
	alignsFlag   string
	extendFlag   string
	exprsFlag    string
	showSelected bool
	watch        bool
	printWidth   int
)

var rootCmd = &cobra.Command{
	Use:   "groupview",
	Short: "Browse rows as a grouped, collapsible outline",
	Long: `groupview groups a flat list of rows into a collapsible outline.

Rows come from a JSON array, a SQLite query or a directory listing. Grouping
levels, filters and column text are expressions evaluated per row.`,
	SilenceUsage: true,
	RunE:         runView,
}

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the fully expanded outline as plain text",
	RunE:  runPrint,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	f.StringVar(&saveConfig, "save-config", "", "write the effective configuration to this file")
	f.StringVar(&jsonPath, "json", "", "load rows from a JSON array")
	f.StringVar(&sqlitePath, "sqlite", "", "load rows from a SQLite database")
	f.StringVar(&sqliteQuery, "query", "", "SQL query for --sqlite")
	f.StringVar(&dirPath, "dir", "", "load rows from the files below a directory")
	f.StringArrayVarP(&groupExprs, "group", "g", nil, "group expression, repeat for nested levels")
	f.StringArrayVarP(&parentExprs, "parent", "p", nil, "parent expression paired with the --group at the same position")
	f.StringVarP(&filterExpr, "filter", "f", "", "row filter expression")
	f.StringVar(&prefixExpr, "prefix", "", "expression prefixed to every column")
	f.StringVar(&widthsFlag, "widths", "", "column widths, e.g. 30,10,8")
	f.StringVar(&alignsFlag, "aligns", "", "column alignments as L, C or R letters, e.g. LRR")
	f.StringVar(&extendFlag, "extend", "", "per-column T/F (or 1/0) flags for wrapping into taller rows; unlisted columns wrap")
	f.StringVar(&exprsFlag, "exprs", "", "tab separated column expressions")
	f.BoolVar(&showSelected, "show-selected", true, "highlight selected rows and allow multi-selection")
	f.BoolVarP(&watch, "watch", "w", false, "reload when the source changes on disk")

	printCmd.Flags().IntVar(&printWidth, "width", 80, "output width in cells")
	rootCmd.AddCommand(printCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// sourceEntry describes the source selected by flags, falling back to the
// most recently opened one
func sourceEntry(recent *history.Manager) (history.Entry, error) {
	var entries []history.Entry
	if jsonPath != "" {
		entries = append(entries, history.Entry{Kind: history.KindJSON, Path: jsonPath})
	}
	if sqlitePath != "" {
		entries = append(entries, history.Entry{Kind: history.KindSQLite, Path: sqlitePath, Query: sqliteQuery})
	}
	if dirPath != "" {
		entries = append(entries, history.Entry{Kind: history.KindDir, Path: dirPath})
	}

	switch len(entries) {
	case 1:
		return entries[0], nil
	case 0:
		if last, ok := recent.Last(); ok {
			log.Info().Str("kind", string(last.Kind)).Str("path", last.Path).Msg("reopening last source")
			return last, nil
		}
	}
	return history.Entry{}, fmt.Errorf("exactly one of --json, --sqlite or --dir is required")
}

// sourceLoader returns a loader for e and the directory worth watching
func sourceLoader(e history.Entry) (ui.Loader, string, error) {
	switch e.Kind {
	case history.KindJSON:
		path := e.Path
		return func(context.Context) (source.RowSource, error) {
			return source.LoadJSON(path)
		}, filepath.Dir(path), nil
	case history.KindSQLite:
		if e.Query == "" {
			return nil, "", fmt.Errorf("--sqlite needs --query")
		}
		dsn, query := e.Path, e.Query
		return func(ctx context.Context) (source.RowSource, error) {
			return source.LoadSQLite(ctx, dsn, query)
		}, filepath.Dir(dsn), nil
	case history.KindDir:
		root := e.Path
		return func(ctx context.Context) (source.RowSource, error) {
			return source.LoadFiles(ctx, root)
		}, root, nil
	default:
		return nil, "", fmt.Errorf("unknown source kind %q", e.Kind)
	}
}

// buildConfig loads --config or derives a default from the source columns,
// then applies flag overrides
func buildConfig(cmd *cobra.Command, src source.RowSource, cfgPath string) (*config.Config, error) {
	var cfg *config.Config
	if cfgPath != "" {
		loaded, err := config.LoadConfig(cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfigFor(config.TerminalLimits)
		if n, ok := src.(source.Named); ok && len(n.ColumnNames()) > 0 {
			cfg.ColumnCount = len(n.ColumnNames())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("group") || flags.Changed("parent") {
		cfg.SetLevels(groupExprs, parentExprs)
	}
	if flags.Changed("filter") {
		cfg.Filter = filterExpr
	}
	if flags.Changed("prefix") {
		cfg.Prefix = prefixExpr
	}
	if flags.Changed("show-selected") || cfgPath == "" {
		cfg.ShowSelected = showSelected
	}
	if widths := config.ParseWidths(widthsFlag); len(widths) > 0 {
		cfg.SetWidths(widths)
		cfg.ColumnCount = max(cfg.ColumnCount, len(widths))
	}
	if aligns := config.ParseAligns(alignsFlag); len(aligns) > 0 {
		cfg.SetAligns(aligns)
	}
	if extend := config.ParseExtend(extendFlag); len(extend) > 0 {
		cfg.SetExtend(extend)
	}
	if exprs := config.ParseCalcs(exprsFlag); len(exprs) > 0 {
		cfg.SetExprs(exprs)
		cfg.ColumnCount = max(cfg.ColumnCount, len(exprs))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Normalize(config.TerminalLimits)

	if saveConfig != "" {
		if err := config.SaveConfig(saveConfig, cfg); err != nil {
			return nil, err
		}
		log.Info().Str("path", saveConfig).Msg("configuration saved")
	}
	return cfg, nil
}

// setup loads the source and configuration and builds a controller
func setup(cmd *cobra.Command) (*core.Controller, ui.Options, error) {
	log.Logger = zerolog.New(logging.Sink).With().Timestamp().Logger()

	recent := history.NewManager("")
	if err := recent.Load(); err != nil {
		log.Warn().Err(err).Msg("history unreadable, starting fresh")
	}
	defer func() {
		if err := recent.Close(); err != nil {
			log.Warn().Err(err).Msg("history not saved")
		}
	}()

	entry, err := sourceEntry(recent)
	if err != nil {
		return nil, ui.Options{}, err
	}
	load, watchRoot, err := sourceLoader(entry)
	if err != nil {
		return nil, ui.Options{}, err
	}
	name := entry.Path
	src, err := load(cmd.Context())
	if err != nil {
		return nil, ui.Options{}, fmt.Errorf("load %s: %w", name, err)
	}
	cfgPath := configPath
	if cfgPath == "" {
		cfgPath = entry.Config
	}
	cfg, err := buildConfig(cmd, src, cfgPath)
	if err != nil {
		return nil, ui.Options{}, err
	}
	entry.Config = cfgPath
	if saveConfig != "" {
		entry.Config = saveConfig
	}
	recent.Remember(entry)

	ctrl := core.NewController(cfg, src, core.TerminalOptions)
	for _, e := range ctrl.State().Errors {
		log.Warn().Err(e).Msg("expression")
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}

	opts := ui.Options{
		SourceName: name,
		Load:       load,
		BandColor:  cfg.EvenColor,
	}
	if !cfg.EvenBand {
		opts.BandColor = ""
	}
	if watch {
		opts.WatchRoot = watchRoot
	}
	return ctrl, opts, nil
}

func runView(cmd *cobra.Command, args []string) error {
	ctrl, opts, err := setup(cmd)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		ui.NewApp(ctrl, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func runPrint(cmd *cobra.Command, args []string) error {
	ctrl, _, err := setup(cmd)
	if err != nil {
		return err
	}

	canvas := ui.NewCanvas(ui.DefaultCanvasStyles())
	canvas.Resize(printWidth, 1)
	ctrl.SetClientSize(printWidth, 1)
	ctrl.Paint(canvas)

	_, h := ctrl.Extent()
	h = max(h, 1)
	canvas.Resize(printWidth, h)
	ctrl.SetClientSize(printWidth, h)
	ctrl.SetScroll(0, 0)
	ctrl.Paint(canvas)

	out := canvas.Plain()
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
	return nil
}
