package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/TheApac/stringcheese/pkg/variant"
	"github.com/spf13/cobra"
)

var encodingsFormat string

var encodingsCmd = &cobra.Command{
	Use:   "encodings <pattern>",
	Short: "List the encoded forms searched for a pattern",
	Long:  "Display every encoding label with the exact bytes searched for the given prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncodings,
}

func init() {
	encodingsCmd.Flags().StringVar(&encodingsFormat, "format", "table", "Output format: table, json")
}

type encodingEntry struct {
	Label  string `json:"label"`
	Length int    `json:"length"`
	Search string `json:"search_hex"`
}

func runEncodings(cmd *cobra.Command, args []string) error {
	pattern := []byte(args[0])
	if len(pattern) == 0 {
		return fmt.Errorf("pattern is empty")
	}

	variants := variant.Build(pattern)
	entries := make([]encodingEntry, len(variants))
	for i, v := range variants {
		entries[i] = encodingEntry{
			Label:  v.Label(),
			Length: len(v.Pattern),
			Search: hex.EncodeToString(v.Pattern),
		}
	}

	switch encodingsFormat {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	case "table":
		return outputEncodingsTable(cmd, entries)
	default:
		return fmt.Errorf("unknown output format: %s", encodingsFormat)
	}
}

func outputEncodingsTable(cmd *cobra.Command, entries []encodingEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Encoding\tLength\tSearch bytes (hex)\n")
	fmt.Fprintf(w, "--------\t------\t------------------\n")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\n", e.Label, e.Length, e.Search)
	}

	return nil
}
