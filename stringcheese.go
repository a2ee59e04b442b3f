// Package stringcheese finds a known flag prefix hidden in a buffer under
// common encodings and simple transformations.
//
// Every variant of the prefix (base64, hex, UTF-16, single-byte XOR, rot13 and
// more) is searched at once with an Aho-Corasick automaton over the buffer, its
// stride decimations and its reversal. Each hit is decoded back and trimmed to
// a printable candidate flag.
//
// # Basic Usage
//
//	scanner, err := stringcheese.NewScanner("FLAG{")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := scanner.ScanString("noise RkxBR3t0ZXN0fQ== noise")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, r := range results {
//	    fmt.Printf("%s in %s: %s\n", r.Encoding, r.View, r.Flag)
//	}
//
// # Streaming
//
// Scan delivers results one at a time and honours context cancellation
// between views:
//
//	err := scanner.Scan(ctx, data, func(r stringcheese.Result) error {
//	    fmt.Println(r.Flag)
//	    return stringcheese.ErrStop
//	})
package stringcheese

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/TheApac/stringcheese/pkg/search"
	"github.com/TheApac/stringcheese/pkg/types"
	"github.com/TheApac/stringcheese/pkg/variant"
)

// Re-export commonly used types for convenience.
type (
	// Result is a candidate flag and where it was found.
	Result = types.Result

	// Variant is one encoded form of the searched prefix.
	Variant = variant.Variant

	// DedupeMode selects which repeated results are dropped.
	DedupeMode = search.DedupeMode
)

// Re-export dedupe modes.
const (
	DedupeNone      = search.DedupeNone
	DedupeByContent = search.DedupeByContent
	DedupeByFlag    = search.DedupeByFlag
)

// ErrStop may be returned from a Scan callback to end the scan without error.
var ErrStop = search.ErrStop

// Scanner searches buffers for one flag prefix. It is safe for concurrent use.
type Scanner struct {
	engine *search.Engine
}

// Option configures a Scanner.
type Option func(*search.Config)

// WithFast limits strides to the fast range, trading coverage for speed.
func WithFast() Option {
	return func(c *search.Config) {
		c.Fast = true
	}
}

// WithMaxFlagLength caps the number of raw bytes decoded per match.
// Default is 2000.
func WithMaxFlagLength(n int) Option {
	return func(c *search.Config) {
		c.MaxFlagLength = n
	}
}

// WithClosing sets the string that ends a flag. Default is "}".
// An empty string keeps the whole printable prefix.
func WithClosing(closing string) Option {
	return func(c *search.Config) {
		c.Closing = closing
	}
}

// WithWorkers scans views on n goroutines. Result order does not change.
func WithWorkers(n int) Option {
	return func(c *search.Config) {
		c.Workers = n
	}
}

// WithDedupe drops repeated results.
func WithDedupe(mode DedupeMode) Option {
	return func(c *search.Config) {
		c.Dedupe = mode
	}
}

// WithStopAfterFirst ends each scan at the first result.
func WithStopAfterFirst() Option {
	return func(c *search.Config) {
		c.StopAfterFirst = true
	}
}

// WithFilter keeps only candidates matching expr (regexp2 syntax).
func WithFilter(expr string) Option {
	return func(c *search.Config) {
		c.Filter = expr
	}
}

// WithLogger sends debug output to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *search.Config) {
		c.Logger = logger
	}
}

// NewScanner builds the variants and automaton for pattern.
//
// By default, the scanner:
//   - Searches strides up to 32 and the reversed buffer
//   - Cuts candidates after the first "}"
//   - Reports every result, duplicates included
func NewScanner(pattern string, opts ...Option) (*Scanner, error) {
	cfg := search.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	engine, err := search.New([]byte(pattern), cfg)
	if err != nil {
		return nil, fmt.Errorf("creating scanner: %w", err)
	}
	return &Scanner{engine: engine}, nil
}

// Scan calls fn for each result in buf, in view order.
func (s *Scanner) Scan(ctx context.Context, buf []byte, fn func(Result) error) error {
	return s.engine.Run(ctx, buf, fn)
}

// ScanBytes returns every result in content.
func (s *Scanner) ScanBytes(content []byte) ([]Result, error) {
	return s.engine.Collect(context.Background(), content)
}

// ScanString returns every result in content.
func (s *Scanner) ScanString(content string) ([]Result, error) {
	return s.ScanBytes([]byte(content))
}

// ScanFile reads and scans a file. Results carry the path as their source.
func (s *Scanner) ScanFile(path string) ([]Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	results, err := s.ScanBytes(content)
	for i := range results {
		results[i].Source = path
	}
	return results, err
}

// ScanReader reads r to EOF and scans the data.
func (s *Scanner) ScanReader(r io.Reader) ([]Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return s.ScanBytes(content)
}

// Variants returns the encoded forms of the pattern being searched.
func (s *Scanner) Variants() []Variant {
	return s.engine.Variants()
}

// ViewCount returns the number of haystack views each scan walks.
func (s *Scanner) ViewCount() int {
	return s.engine.ViewCount()
}
