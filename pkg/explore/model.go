// Package explore is an interactive browser for scan results.
package explore

import (
	"fmt"
	"strings"

	"github.com/TheApac/stringcheese/pkg/types"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focusedPane tracks which pane has keyboard focus.
type focusedPane int

const (
	paneFilters focusedPane = iota
	paneResults
)

// Model is the root Bubble Tea model for the explore TUI.
type Model struct {
	all     []types.Result
	facets  *facetState
	filters filterPane
	results resultsPane

	focus    focusedPane
	showHelp bool

	width  int
	height int
}

// New creates a Model over results, listed in the order given.
func New(results []types.Result) Model {
	facets := buildFacets(results)
	m := Model{
		all:     results,
		facets:  facets,
		filters: newFilterPane(facets),
		results: newResultsPane(results),
	}
	m.setFocus(paneResults)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("stringcheese explore")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			// any key closes help
			m.showHelp = false
			return m, nil
		}

		switch {
		case keyMatches(msg, defaultKeys.ForceQuit), keyMatches(msg, defaultKeys.Quit):
			return m, tea.Quit
		case keyMatches(msg, defaultKeys.ToggleHelp):
			m.showHelp = true
			return m, nil
		case keyMatches(msg, defaultKeys.SwitchFocus):
			if m.focus == paneResults {
				m.setFocus(paneFilters)
			} else {
				m.setFocus(paneResults)
			}
			return m, nil
		}

		switch m.focus {
		case paneFilters:
			var changed bool
			m.filters, changed = m.filters.Update(msg)
			if changed {
				m.applyFilters()
			}
			return m, nil
		case paneResults:
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) setFocus(p focusedPane) {
	m.focus = p
	m.filters.focused = p == paneFilters
	m.results.focused = p == paneResults
}

func (m *Model) applyFilters() {
	m.results.setFilteredRows(m.facets.filter(m.all))
}

// Selected returns the result under the cursor, or nil when no result is
// visible.
func (m Model) Selected() *types.Result {
	return m.results.selected()
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			activeBorderStyle.Padding(1, 2).Render(renderHelp()))
	}

	contentHeight := m.height - 1 // status bar
	filtersWidth := min(m.width*30/100, 40)
	dataWidth := m.width - filtersWidth
	resultsHeight := contentHeight * 50 / 100
	detailsHeight := contentHeight - resultsHeight

	m.filters.setSize(filtersWidth, contentHeight)
	m.results.setSize(dataWidth, resultsHeight)

	dataColumn := lipgloss.JoinVertical(lipgloss.Left,
		m.results.View(),
		renderDetails(m.results.selected(), dataWidth, detailsHeight))
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.filters.View(), dataColumn)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	status := fmt.Sprintf(" %d results", len(m.all))
	if m.facets.hasActiveFilters() {
		status += fmt.Sprintf(" | %d shown", len(m.results.rows))
	}
	left := statusBarStyle.Render(status)

	var hints []string
	for _, k := range []struct{ key, desc string }{
		{"j/k", "nav"}, {"tab", "focus"}, {"x", "filter"}, {"s", "sort"}, {"?", "help"}, {"q", "quit"},
	} {
		hints = append(hints, helpKeyStyle.Render(k.key)+":"+helpDescStyle.Render(k.desc))
	}
	right := strings.Join(hints, "  ")

	gap := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func renderHelp() string {
	return `stringcheese explore

NAVIGATION
  j/k or Up/Down    Move cursor up/down
  Ctrl+f/Ctrl+b     Page down/up
  g/G               Jump to top/bottom
  Tab               Switch between filters and results

FILTERS
  x, Space, Enter   Toggle filter value
  Ctrl+r            Reset all filters

RESULTS
  s                 Cycle sort column

QUIT
  q or Ctrl+c       Quit
`
}
