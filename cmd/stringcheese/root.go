package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "stringcheese",
	Short: "Find an encoded flag by its known prefix",
	Long: `stringcheese searches files or stdin for a known flag prefix (such as "FLAG{")
hidden under base64, base32, hex, binary, UTF-16/32, single-byte XOR, rot13 and
rot47, in the raw stream, its stride decimations and its reversal.

Each hit is decoded back into a printable candidate flag.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logs, raw match bytes)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only, no progress)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(encodingsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func logLevel() slog.Level {
	switch {
	case quiet:
		return slog.LevelError
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// newLogger writes text logs at the level chosen by --verbose/--quiet.
func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel()}))
}
