package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/TheApac/stringcheese/pkg/config"
	"github.com/TheApac/stringcheese/pkg/enum"
	"github.com/TheApac/stringcheese/pkg/search"
	"github.com/TheApac/stringcheese/pkg/types"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	scanConfigPath    string
	scanFast          bool
	scanFirst         bool
	scanDedupe        string
	scanClosing       string
	scanMaxFlagLength int
	scanMaxStep       int
	scanWorkers       int
	scanFilter        string
	scanFormat        string
	scanColor         string
	scanYes           bool
	scanMaxInputSize  int
	scanMaxFileSize   int64
	scanIncludeHidden bool
	scanInteractive   bool
)

var (
	// errFirstFound ends a --first scan across all inputs.
	errFirstFound = errors.New("first result found")
	// errDeclined ends a scan the user chose not to run.
	errDeclined = errors.New("scan declined")
)

var scanCmd = &cobra.Command{
	Use:   "scan <pattern> [target...]",
	Short: "Search files or stdin for an encoded flag",
	Long: `Search each target for the pattern under every supported encoding.

A target may be a file, a directory (walked recursively, honouring .gitignore)
or "-" for stdin. With no target, stdin is read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	defaults := config.Default()

	scanCmd.Flags().StringVar(&scanConfigPath, "config", "", "YAML profile with default scan settings")
	scanCmd.Flags().BoolVar(&scanFast, "fast", defaults.Fast, "Only search strides below 8")
	scanCmd.Flags().BoolVar(&scanFirst, "first", defaults.First, "Stop at the first result")
	scanCmd.Flags().StringVar(&scanDedupe, "dedupe", defaults.Dedupe, "Drop repeated results: none, content, flag")
	scanCmd.Flags().StringVar(&scanClosing, "closing", defaults.Closing, "String that ends a flag (empty keeps the whole printable run)")
	scanCmd.Flags().IntVar(&scanMaxFlagLength, "max-flag-length", defaults.MaxFlagLength, "Maximum raw bytes decoded per match")
	scanCmd.Flags().IntVar(&scanMaxStep, "max-step", defaults.MaxStep, "Exclusive stride bound (0 = 33, or 8 with --fast)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", defaults.Workers, "Views scanned concurrently")
	scanCmd.Flags().StringVar(&scanFilter, "filter", defaults.Filter, "Only report flags matching this regular expression")
	scanCmd.Flags().StringVar(&scanFormat, "format", defaults.Format, "Output format: human, json, sarif")
	scanCmd.Flags().StringVar(&scanColor, "color", defaults.Color, "Color output: auto, always, never")
	scanCmd.Flags().BoolVarP(&scanYes, "yes", "y", false, "Do not ask for confirmation")
	scanCmd.Flags().IntVar(&scanMaxInputSize, "max-input-size", defaults.MaxInputSize, "Ask before scanning inputs larger than this many bytes (0 = never)")
	scanCmd.Flags().Int64Var(&scanMaxFileSize, "max-file-size", 0, "Skip directory files larger than this many bytes (0 = no limit)")
	scanCmd.Flags().BoolVar(&scanIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	scanCmd.Flags().BoolVarP(&scanInteractive, "interactive", "i", false, "Browse results in an interactive viewer once the scan ends")
}

func runScan(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	targets := args[1:]
	if len(targets) == 0 {
		targets = []string{"-"}
	}

	cfg, err := loadScanConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr())

	sc, err := cfg.Search()
	if err != nil {
		return err
	}
	sc.Logger = logger
	sc.KeepRaw = verbose || scanInteractive || cfg.Format == config.FormatSARIF

	prog := newProgress(cmd.ErrOrStderr(), !quiet && stderrIsTerminal())
	sc.OnView = prog.update

	engine, err := search.New([]byte(pattern), sc)
	if err != nil {
		return fmt.Errorf("creating search engine: %w", err)
	}

	readsStdin := false
	for _, target := range targets {
		if target == "-" {
			readsStdin = true
		}
	}

	var out resultWriter
	if scanInteractive {
		if readsStdin {
			return fmt.Errorf("--interactive needs stdin for the viewer and cannot scan it")
		}
		out = newExploreWriter(cmd.InOrStdin(), cmd.OutOrStdout())
	} else {
		out, err = newResultWriter(cmd.OutOrStdout(), cfg.Format, colorEnabled(cfg.Color), verbose)
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	session := &scanSession{
		engine: engine,
		cfg:    cfg,
		logger: logger,
		ask:    newConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr(), !scanYes && !readsStdin && stdinIsTerminal()),
		prog:   prog,
		out:    out,
		stdin:  cmd.InOrStdin(),
	}

	for _, target := range targets {
		if err = session.scanTarget(ctx, target); err != nil {
			break
		}
	}
	prog.clear()

	switch {
	case errors.Is(err, errDeclined):
		fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
		return nil
	case errors.Is(err, errFirstFound):
	case errors.Is(err, context.Canceled):
		logger.Warn("scan interrupted", "results", out.count())
		if cerr := out.close(); cerr != nil {
			return cerr
		}
		return err
	case err != nil:
		return err
	}

	return out.close()
}

// scanSession carries one scan command across its targets.
type scanSession struct {
	engine *search.Engine
	cfg    config.Config
	logger *slog.Logger
	ask    *confirmer
	prog   *progress
	out    resultWriter
	stdin  io.Reader
}

func (s *scanSession) scanTarget(ctx context.Context, target string) error {
	if target == "-" {
		s.logger.Info("no file provided, reading from stdin")
	}

	enumerator, err := enum.New(enum.Config{
		Root:          target,
		IncludeHidden: scanIncludeHidden,
		MaxFileSize:   scanMaxFileSize,
		Stdin:         s.stdin,
	})
	if err != nil {
		return fmt.Errorf("creating enumerator: %w", err)
	}
	return enumerator.Enumerate(ctx, s.scanBuffer(ctx))
}

func (s *scanSession) scanBuffer(ctx context.Context) enum.Callback {
	return func(content []byte, prov types.Provenance) error {
		if !s.ask.confirm(s.cfg.Fast, len(content), s.cfg.MaxInputSize) {
			return errDeclined
		}

		s.logger.Debug("scanning input",
			"source", prov.Path(),
			"size", humanize.Bytes(uint64(len(content))),
			"views", s.engine.ViewCount())

		s.prog.start(prov.Path())
		err := s.engine.Run(ctx, content, func(r types.Result) error {
			r.Source = prov.Path()
			s.prog.clear()
			return s.out.write(r)
		})
		s.prog.clear()
		if err != nil {
			return err
		}
		if s.cfg.First && s.out.count() > 0 {
			return errFirstFound
		}
		return nil
	}
}

// loadScanConfig starts from the built-in profile, overlays --config, then
// applies flags. With a profile only explicitly set flags override it.
func loadScanConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if scanConfigPath != "" {
		loaded, err := config.Load(scanConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	set := func(name string) bool {
		return scanConfigPath == "" || cmd.Flags().Changed(name)
	}
	if set("fast") {
		cfg.Fast = scanFast
	}
	if set("first") {
		cfg.First = scanFirst
	}
	if set("dedupe") {
		cfg.Dedupe = scanDedupe
	}
	if set("closing") {
		cfg.Closing = scanClosing
	}
	if set("max-flag-length") {
		cfg.MaxFlagLength = scanMaxFlagLength
	}
	if set("max-step") {
		cfg.MaxStep = scanMaxStep
	}
	if set("workers") {
		cfg.Workers = scanWorkers
	}
	if set("filter") {
		cfg.Filter = scanFilter
	}
	if set("format") {
		cfg.Format = scanFormat
	}
	if set("color") {
		cfg.Color = scanColor
	}
	if set("max-input-size") {
		cfg.MaxInputSize = scanMaxInputSize
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}
