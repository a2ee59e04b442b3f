package explore

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// filterPane is the left-side facet list.
type filterPane struct {
	facets  *facetState
	cursor  int          // index into items
	items   []filterItem // headers and values, flattened
	width   int
	height  int
	offset  int
	focused bool
}

type filterItem struct {
	Header  bool
	Label   string
	FacetID facetID
	Value   *facetValue
}

func newFilterPane(facets *facetState) filterPane {
	fp := filterPane{facets: facets}
	for _, def := range facetDefs {
		values := facets.Values[def.ID]
		if len(values) == 0 {
			continue
		}
		fp.items = append(fp.items, filterItem{Header: true, Label: def.Label, FacetID: def.ID})
		for _, v := range values {
			fp.items = append(fp.items, filterItem{Label: v.Value, FacetID: def.ID, Value: v})
		}
	}
	fp.cursor = fp.next(-1, 1)
	return fp
}

// next returns the first value item after from in direction dir, or from
// when there is none.
func (fp filterPane) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(fp.items); i += dir {
		if !fp.items[i].Header {
			return i
		}
	}
	return max(from, 0)
}

// Update moves the cursor or toggles a value. It reports whether the
// selection changed.
func (fp filterPane) Update(msg tea.Msg) (filterPane, bool) {
	if !fp.focused {
		return fp, false
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return fp, false
	}

	switch {
	case keyMatches(keyMsg, defaultKeys.Up):
		fp.cursor = fp.next(fp.cursor, -1)
	case keyMatches(keyMsg, defaultKeys.Down):
		fp.cursor = fp.next(fp.cursor, 1)
	case keyMatches(keyMsg, defaultKeys.Home):
		fp.cursor = fp.next(-1, 1)
	case keyMatches(keyMsg, defaultKeys.End):
		fp.cursor = fp.next(len(fp.items), -1)
	case keyMatches(keyMsg, defaultKeys.ToggleFilter):
		if item := fp.selected(); item != nil {
			item.Value.Selected = !item.Value.Selected
			return fp, true
		}
	case keyMatches(keyMsg, defaultKeys.ResetFilter):
		fp.facets.resetAll()
		return fp, true
	}
	fp.ensureVisible()
	return fp, false
}

func (fp filterPane) selected() *filterItem {
	if fp.cursor < 0 || fp.cursor >= len(fp.items) || fp.items[fp.cursor].Header {
		return nil
	}
	return &fp.items[fp.cursor]
}

func (fp filterPane) View() string {
	if fp.width <= 0 || fp.height <= 0 {
		return ""
	}
	contentWidth := fp.width - 4

	var lines []string
	end := min(fp.offset+fp.visibleRows(), len(fp.items))
	for i := fp.offset; i < end; i++ {
		item := fp.items[i]
		if item.Header {
			lines = append(lines, headerRowStyle.Render(truncateString(item.Label, contentWidth)))
			continue
		}
		mark := "[ ]"
		if item.Value.Selected {
			mark = "[x]"
		}
		line := truncateString(fmt.Sprintf(" %s %s (%d)", mark, item.Label, item.Value.Count), contentWidth)
		if i == fp.cursor && fp.focused {
			line = selectedRowStyle.Render(padRight(line, contentWidth))
		}
		lines = append(lines, line)
	}

	borderStyle := inactiveBorderStyle
	if fp.focused {
		borderStyle = activeBorderStyle
	}
	content := borderStyle.
		Width(fp.width - 2).
		Height(fp.height - 3).
		Render(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(" Filters "), content)
}

func (fp filterPane) visibleRows() int {
	return max(1, fp.height-3)
}

func (fp *filterPane) ensureVisible() {
	if fp.cursor < fp.offset {
		fp.offset = fp.cursor
	}
	if fp.cursor >= fp.offset+fp.visibleRows() {
		fp.offset = fp.cursor - fp.visibleRows() + 1
	}
}

func (fp *filterPane) setSize(w, h int) {
	fp.width = w
	fp.height = h
}
