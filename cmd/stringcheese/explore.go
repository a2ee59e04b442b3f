package main

import (
	"fmt"
	"io"

	"github.com/TheApac/stringcheese/pkg/explore"
	"github.com/TheApac/stringcheese/pkg/types"
	tea "github.com/charmbracelet/bubbletea"
)

// runProgram runs a full-screen Bubble Tea program until the user quits.
var runProgram = func(m tea.Model, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running explore TUI: %w", err)
	}
	return nil
}

// exploreWriter collects results and opens the interactive viewer over
// them when the scan ends.
type exploreWriter struct {
	in      io.Reader
	out     io.Writer
	results []types.Result
}

func newExploreWriter(in io.Reader, out io.Writer) *exploreWriter {
	return &exploreWriter{in: in, out: out}
}

func (w *exploreWriter) write(r types.Result) error {
	w.results = append(w.results, r)
	return nil
}

func (w *exploreWriter) close() error {
	if len(w.results) == 0 {
		_, err := fmt.Fprintln(w.out, "No match found.")
		return err
	}
	return runProgram(explore.New(w.results), w.in, w.out)
}

func (w *exploreWriter) count() int { return len(w.results) }
