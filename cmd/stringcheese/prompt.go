package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// stdinIsTerminal reports whether a user can answer prompts on stdin.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirmer asks before slow or lossy scans. It stays silent unless a user
// sits at a terminal stdin that is not carrying the data.
type confirmer struct {
	in        *bufio.Reader
	out       io.Writer
	enabled   bool
	fastAsked bool
}

func newConfirmer(in io.Reader, out io.Writer, enabled bool) *confirmer {
	return &confirmer{in: bufio.NewReader(in), out: out, enabled: enabled}
}

// confirm returns false when the user declines scanning a buffer of size
// bytes. The fast-mode warning is asked once per run.
func (c *confirmer) confirm(fast bool, size, maxSize int) bool {
	if !c.enabled {
		return true
	}
	if fast && !c.fastAsked {
		c.fastAsked = true
		if !c.ask("Warning, with --fast some strides are skipped and flags may be missed. Do you wish to continue?") {
			return false
		}
	}
	if maxSize > 0 && size > maxSize {
		q := fmt.Sprintf("This input is large (%s) and may take a long time to scan. Do you wish to continue?",
			humanize.Bytes(uint64(size)))
		if !c.ask(q) {
			return false
		}
	}
	return true
}

func (c *confirmer) ask(question string) bool {
	fmt.Fprintf(c.out, "%s (y/N) : ", question)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
