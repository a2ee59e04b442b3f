package main

import (
	"fmt"
	"io"
	"os"

	bar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// stderrIsTerminal reports whether progress can be drawn.
var stderrIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// progress draws a one-line view counter on stderr. Results are printed to
// stdout, so the line is cleared before each one.
type progress struct {
	w       io.Writer
	enabled bool
	bar     bar.Model
	label   string
	drawn   bool
}

func newProgress(w io.Writer, enabled bool) *progress {
	return &progress{
		w:       w,
		enabled: enabled,
		bar:     bar.New(bar.WithDefaultGradient(), bar.WithWidth(30), bar.WithoutPercentage()),
	}
}

func (p *progress) start(label string) {
	p.label = lipgloss.NewStyle().Bold(true).Render(label)
}

// update is the engine's per-view hook.
func (p *progress) update(done, total int) {
	if !p.enabled || total == 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%s%s %s %d/%d views",
		ansi.EraseEntireLine, p.label, p.bar.ViewAs(float64(done)/float64(total)), done, total)
	p.drawn = true
}

func (p *progress) clear() {
	if !p.drawn {
		return
	}
	fmt.Fprint(p.w, "\r"+ansi.EraseEntireLine)
	p.drawn = false
}
