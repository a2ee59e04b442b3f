// Package search runs the variant automaton over every haystack view and
// turns raw matches into printable candidate flags.
package search

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/TheApac/stringcheese/pkg/ahocorasick"
	"github.com/TheApac/stringcheese/pkg/haystack"
	"github.com/TheApac/stringcheese/pkg/types"
	"github.com/TheApac/stringcheese/pkg/variant"
	"github.com/dlclark/regexp2"
)

const (
	// DefaultMaxFlagLength caps the raw window handed to a decoder.
	DefaultMaxFlagLength = 2000
	// DefaultClosing ends a candidate flag.
	DefaultClosing = "}"
)

// ErrStop may be returned by a result callback to end a run without error.
var ErrStop = errors.New("stop scan")

// Config controls a search Engine.
type Config struct {
	// MaxFlagLength caps the raw window decoded for each match.
	MaxFlagLength int
	// Closing truncates candidates just after its first occurrence.
	// Empty disables truncation.
	Closing string
	// Fast narrows the stride range to haystack.MaxStepFast.
	Fast bool
	// MaxStep overrides the exclusive stride bound (0 = derive from Fast).
	MaxStep int
	// Workers scanning views concurrently (values below 1 mean 1).
	Workers int
	// StopAfterFirst ends the run after the first emitted result.
	StopAfterFirst bool
	// KeepRaw keeps the undecoded window on each result.
	KeepRaw bool
	// Dedupe suppresses repeated results within a run.
	Dedupe DedupeMode
	// Filter is an optional regular expression candidates must match.
	Filter string
	// OnView is called after each view's results have been emitted.
	OnView func(done, total int)
	// Logger receives debug output (nil = discard).
	Logger *slog.Logger
}

// DefaultConfig returns the configuration of a full, sequential run.
func DefaultConfig() Config {
	return Config{
		MaxFlagLength: DefaultMaxFlagLength,
		Closing:       DefaultClosing,
		Workers:       1,
	}
}

// Engine holds the variants and automaton for one pattern. It is immutable
// and may run any number of scans, concurrently if needed.
type Engine struct {
	cfg       Config
	maxStep   int
	variants  []variant.Variant
	automaton *ahocorasick.Automaton
	filter    *regexp2.Regexp
	logger    *slog.Logger
}

// New builds the variants of pattern and the automaton over them.
func New(pattern []byte, cfg Config) (*Engine, error) {
	if len(pattern) == 0 {
		return nil, errors.New("pattern is empty")
	}
	if cfg.MaxFlagLength <= 0 {
		cfg.MaxFlagLength = DefaultMaxFlagLength
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	maxStep := cfg.MaxStep
	if maxStep == 0 {
		maxStep = haystack.MaxStep(cfg.Fast)
	}
	if maxStep < 2 {
		return nil, fmt.Errorf("max step must be at least 2, got %d", maxStep)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var filter *regexp2.Regexp
	if cfg.Filter != "" {
		re, err := regexp2.Compile(cfg.Filter, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("compiling filter: %w", err)
		}
		re.MatchTimeout = time.Second
		filter = re
	}

	start := time.Now()
	variants := variant.Build(pattern)

	b := ahocorasick.NewBuilder()
	for _, v := range variants {
		if _, err := b.Add(v.Pattern); err != nil {
			return nil, fmt.Errorf("adding %s variant: %w", v.Label(), err)
		}
	}
	automaton := b.Make()

	logger.Debug("automaton built",
		"variants", len(variants),
		"max_step", maxStep,
		"elapsed", time.Since(start))

	return &Engine{
		cfg:       cfg,
		maxStep:   maxStep,
		variants:  variants,
		automaton: automaton,
		filter:    filter,
		logger:    logger,
	}, nil
}

// Variants returns a copy of the variants searched for.
func (e *Engine) Variants() []variant.Variant {
	out := make([]variant.Variant, len(e.variants))
	copy(out, e.variants)
	return out
}

// ViewCount returns the number of views a run scans.
func (e *Engine) ViewCount() int {
	return haystack.Count(e.maxStep)
}

// Decode reverses a raw window under v and postprocesses it. It reports false
// when the window does not decode or leaves nothing printable.
func (e *Engine) Decode(v variant.Variant, window []byte) (string, bool) {
	decoded, err := v.Decode(window)
	if err != nil {
		return "", false
	}
	flag := Postprocess(decoded, e.cfg.Closing)
	return flag, flag != ""
}

// ScanView runs the automaton over one view and calls emit for every match
// that decodes, in end-offset order. It returns false if emit stopped it.
func (e *Engine) ScanView(v haystack.View, emit func(types.Result) bool) bool {
	matches, dropped := 0, 0
	ok := true

	e.automaton.Each(v.Data, func(m ahocorasick.Match) bool {
		matches++
		vr := e.variants[m.Pattern]
		start := m.End - len(vr.Pattern) + 1
		end := min(start+e.cfg.MaxFlagLength, len(v.Data))
		window := v.Data[start:end]

		flag, good := e.Decode(vr, window)
		if !good {
			dropped++
			return true
		}

		r := types.Result{
			View:       v.Label,
			Encoding:   vr.Label(),
			Flag:       flag,
			Offset:     v.Origin(start),
			ViewOffset: start,
		}
		if e.cfg.KeepRaw {
			r.Raw = append([]byte(nil), window...)
		}
		ok = emit(r)
		return ok
	})

	if matches > 0 {
		e.logger.Debug("view scanned", "view", v.Label, "matches", matches, "undecodable", dropped)
	}
	return ok
}

// accept applies the candidate filter.
func (e *Engine) accept(r types.Result) bool {
	if e.filter == nil {
		return true
	}
	ok, err := e.filter.MatchString(r.Flag)
	if err != nil {
		e.logger.Debug("filter failed", "flag", r.Flag, "error", err)
		return false
	}
	return ok
}
