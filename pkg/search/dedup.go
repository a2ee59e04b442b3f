package search

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/TheApac/stringcheese/pkg/types"
)

// DedupeMode controls how repeated results are suppressed.
type DedupeMode int

const (
	// DedupeNone reports every decoded match.
	DedupeNone DedupeMode = iota

	// DedupeByContent drops a result when the same encoding already produced
	// the same flag, e.g. the same hex string reached through several views.
	DedupeByContent

	// DedupeByFlag drops a result when the same flag was already reported
	// under any encoding.
	DedupeByFlag
)

// String returns the mode name used on the command line.
func (m DedupeMode) String() string {
	switch m {
	case DedupeByContent:
		return "content"
	case DedupeByFlag:
		return "flag"
	default:
		return "none"
	}
}

// ParseDedupeMode parses "none", "content" or "flag".
func ParseDedupeMode(s string) (DedupeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return DedupeNone, nil
	case "content":
		return DedupeByContent, nil
	case "flag":
		return DedupeByFlag, nil
	default:
		return DedupeNone, fmt.Errorf("unknown dedupe mode: %s", s)
	}
}

// Deduplicator remembers results it has seen.
type Deduplicator struct {
	seen map[string]bool
	mode DedupeMode
}

// NewDeduplicator creates a deduplicator for mode.
func NewDeduplicator(mode DedupeMode) *Deduplicator {
	return &Deduplicator{
		seen: make(map[string]bool),
		mode: mode,
	}
}

// IsDuplicate returns true if an equivalent result was already added.
func (d *Deduplicator) IsDuplicate(r types.Result) bool {
	if d.mode == DedupeNone {
		return false
	}
	return d.seen[d.computeKey(r)]
}

// Add marks a result as seen.
func (d *Deduplicator) Add(r types.Result) {
	if d.mode == DedupeNone {
		return
	}
	d.seen[d.computeKey(r)] = true
}

// Reset clears the deduplicator for reuse.
func (d *Deduplicator) Reset() {
	clear(d.seen)
}

func (d *Deduplicator) computeKey(r types.Result) string {
	h := sha256.New()
	if d.mode == DedupeByContent {
		h.Write([]byte(r.Encoding))
		h.Write([]byte{0})
	}
	h.Write([]byte(r.Flag))
	return hex.EncodeToString(h.Sum(nil))
}
