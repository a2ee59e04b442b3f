package explore

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/TheApac/stringcheese/pkg/types"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// sortField defines which column to sort by.
type sortField int

const (
	sortByFound sortField = iota
	sortByFlag
	sortByEncoding
	sortBySource
	sortFieldCount // sentinel
)

var sortFieldNames = [sortFieldCount]string{
	"Found", "Flag", "Encoding", "Source",
}

// resultsPane is the top-right results table.
type resultsPane struct {
	base    []types.Result // filtered, in the order found
	rows    []types.Result // base sorted by sortBy
	total   int
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
	sortBy  sortField
}

func newResultsPane(rows []types.Result) resultsPane {
	rp := resultsPane{total: len(rows)}
	rp.setFilteredRows(rows)
	return rp
}

func (rp *resultsPane) setFilteredRows(rows []types.Result) {
	rp.base = rows
	rp.sort()
	if rp.cursor >= len(rp.rows) {
		rp.cursor = max(0, len(rp.rows)-1)
	}
	rp.ensureVisible()
}

func (rp resultsPane) selected() *types.Result {
	if rp.cursor < 0 || rp.cursor >= len(rp.rows) {
		return nil
	}
	return &rp.rows[rp.cursor]
}

func (rp resultsPane) Update(msg tea.Msg) (resultsPane, tea.Cmd) {
	if !rp.focused {
		return rp, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return rp, nil
	}

	switch {
	case keyMatches(keyMsg, defaultKeys.Up):
		if rp.cursor > 0 {
			rp.cursor--
		}
	case keyMatches(keyMsg, defaultKeys.Down):
		if rp.cursor < len(rp.rows)-1 {
			rp.cursor++
		}
	case keyMatches(keyMsg, defaultKeys.Home):
		rp.cursor = 0
	case keyMatches(keyMsg, defaultKeys.End):
		rp.cursor = max(0, len(rp.rows)-1)
	case keyMatches(keyMsg, defaultKeys.PageDown):
		rp.cursor = max(0, min(rp.cursor+rp.visibleRows(), len(rp.rows)-1))
	case keyMatches(keyMsg, defaultKeys.PageUp):
		rp.cursor = max(rp.cursor-rp.visibleRows(), 0)
	case keyMatches(keyMsg, defaultKeys.SortNext):
		rp.sortBy = (rp.sortBy + 1) % sortFieldCount
		rp.sort()
	}
	rp.ensureVisible()
	return rp, nil
}

// sort rebuilds rows from base. Sorting is stable so equal keys keep the
// order results were found in.
func (rp *resultsPane) sort() {
	rp.rows = slices.Clone(rp.base)

	var key func(types.Result) string
	switch rp.sortBy {
	case sortByFlag:
		key = func(r types.Result) string { return r.Flag }
	case sortByEncoding:
		key = func(r types.Result) string { return r.Encoding }
	case sortBySource:
		key = func(r types.Result) string { return r.Source }
	default:
		return
	}
	slices.SortStableFunc(rp.rows, func(a, b types.Result) int {
		return cmp.Compare(key(a), key(b))
	})
}

func (rp resultsPane) View() string {
	if rp.width <= 0 || rp.height <= 0 {
		return ""
	}

	contentWidth := rp.width - 4
	colEncoding := 10
	colView := 16
	colOffset := 8
	colFlag := max(10, contentWidth-colEncoding-colView-colOffset-4)

	var b strings.Builder
	header := fmt.Sprintf(" %-*s %-*s %-*s %*s",
		colFlag, "Flag", colEncoding, "Encoding", colView, "View", colOffset, "Offset")
	b.WriteString(headerRowStyle.Render(truncateString(header, contentWidth)))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", contentWidth))

	end := min(rp.offset+rp.visibleRows(), len(rp.rows))
	for i := rp.offset; i < end; i++ {
		r := rp.rows[i]
		line := fmt.Sprintf(" %-*s %-*s %-*s %*d",
			colFlag, truncateString(r.Flag, colFlag),
			colEncoding, truncateString(r.Encoding, colEncoding),
			colView, truncateString(r.View, colView),
			colOffset, r.Offset)
		line = truncateString(line, contentWidth)
		if i == rp.cursor && rp.focused {
			line = selectedRowStyle.Render(padRight(line, contentWidth))
		}
		b.WriteString("\n")
		b.WriteString(line)
	}

	title := titleStyle.Render(fmt.Sprintf(" Results (%d/%d) [sort: %s] ", len(rp.rows), rp.total, sortFieldNames[rp.sortBy]))

	borderStyle := inactiveBorderStyle
	if rp.focused {
		borderStyle = activeBorderStyle
	}
	content := borderStyle.
		Width(rp.width - 2).
		Height(rp.height - 3).
		Render(b.String())

	return lipgloss.JoinVertical(lipgloss.Left, title, content)
}

func (rp resultsPane) visibleRows() int {
	return max(1, rp.height-5) // title + border + header + separator
}

func (rp *resultsPane) ensureVisible() {
	if rp.cursor < rp.offset {
		rp.offset = rp.cursor
	}
	if rp.cursor >= rp.offset+rp.visibleRows() {
		rp.offset = rp.cursor - rp.visibleRows() + 1
	}
}

func (rp *resultsPane) setSize(w, h int) {
	rp.width = w
	rp.height = h
}
