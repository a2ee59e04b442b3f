package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/TheApac/stringcheese/pkg/config"
	"github.com/TheApac/stringcheese/pkg/search"
	"github.com/TheApac/stringcheese/pkg/serve"
	"github.com/spf13/cobra"
)

var (
	serveConfigPath string
	serveFast       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve <pattern>",
	Short: "Run as a streaming scan server",
	Long: `Run stringcheese as a long-lived server that accepts scan requests on stdin
and writes results to stdout, one JSON object per line.

The variants and automaton for the pattern are built once at startup. Requests
are processed until stdin closes, a "close" request arrives or SIGTERM is
received.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "YAML profile with scan settings")
	serveCmd.Flags().BoolVar(&serveFast, "fast", false, "Only search strides below 8")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if serveConfigPath != "" {
		loaded, err := config.Load(serveConfigPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if serveFast {
		cfg.Fast = true
	}

	sc, err := cfg.Search()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr())
	sc.Logger = logger

	engine, err := search.New([]byte(args[0]), sc)
	if err != nil {
		return fmt.Errorf("creating search engine: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := serve.NewServer(engine, cmd.InOrStdin(), cmd.OutOrStdout())
	srv.SetLogger(logger)
	return srv.Run(ctx)
}
