package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/TheApac/stringcheese/pkg/config"
	"github.com/TheApac/stringcheese/pkg/sarif"
	"github.com/TheApac/stringcheese/pkg/types"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// styles holds color formatters for human output
type styles struct {
	heading  *color.Color
	source   *color.Color
	view     *color.Color
	encoding *color.Color
	flag     *color.Color
	raw      *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		heading:  color.New(color.Bold, color.FgHiGreen),
		source:   color.New(color.Bold, color.FgHiWhite),
		view:     color.New(color.FgHiBlue),
		encoding: color.New(color.Bold, color.FgHiMagenta),
		flag:     color.New(color.Bold, color.FgYellow),
		raw:      color.New(color.FgHiBlack),
	}

	for _, c := range []*color.Color{s.heading, s.source, s.view, s.encoding, s.flag, s.raw} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}

// colorEnabled resolves --color. "auto" colours only a terminal stdout when
// NO_COLOR is unset.
func colorEnabled(mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
	}
}

// resultWriter renders results in one output format.
type resultWriter interface {
	write(r types.Result) error
	// close flushes buffered output and reports an empty run.
	close() error
	count() int
}

func newResultWriter(out io.Writer, format string, colored, showRaw bool) (resultWriter, error) {
	switch format {
	case config.FormatHuman:
		return &humanWriter{out: out, s: newStyles(colored), showRaw: showRaw}, nil
	case config.FormatJSON:
		return &jsonWriter{out: out, results: []types.Result{}}, nil
	case config.FormatSARIF:
		return &sarifWriter{out: out, report: sarif.NewReport(version)}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}

type humanWriter struct {
	out        io.Writer
	s          *styles
	showRaw    bool
	found      int
	lastSource string
}

func (w *humanWriter) write(r types.Result) error {
	if r.Source != "" && r.Source != w.lastSource {
		fmt.Fprintf(w.out, "%s\n", w.s.source.Sprintf("==> %s <==", r.Source))
		w.lastSource = r.Source
	}

	fmt.Fprintf(w.out, "%s In %s, using encoding %s:\n",
		w.s.heading.Sprint("MATCH FOUND!"),
		w.s.view.Sprint(r.View),
		w.s.encoding.Sprint(r.Encoding))
	if w.showRaw && len(r.Raw) > 0 {
		fmt.Fprintln(w.out, w.s.raw.Sprint(hex.EncodeToString(r.Raw)))
	}
	_, err := fmt.Fprintln(w.out, w.s.flag.Sprint(r.Flag))
	w.found++
	return err
}

func (w *humanWriter) close() error {
	if w.found == 0 {
		_, err := fmt.Fprintln(w.out, "No match found.")
		return err
	}
	return nil
}

func (w *humanWriter) count() int { return w.found }

type jsonWriter struct {
	out     io.Writer
	results []types.Result
}

func (w *jsonWriter) write(r types.Result) error {
	w.results = append(w.results, r)
	return nil
}

func (w *jsonWriter) close() error {
	encoder := json.NewEncoder(w.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(w.results)
}

func (w *jsonWriter) count() int { return len(w.results) }

type sarifWriter struct {
	out    io.Writer
	report *sarif.Report
	found  int
}

func (w *sarifWriter) write(r types.Result) error {
	w.report.AddResult(r)
	w.found++
	return nil
}

func (w *sarifWriter) close() error {
	data, err := w.report.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

func (w *sarifWriter) count() int { return w.found }
