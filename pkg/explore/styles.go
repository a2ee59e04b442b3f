package explore

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	colorPrimary = lipgloss.Color("#e63948") // red
	colorFlag    = lipgloss.Color("#D4AF37") // gold
	colorMuted   = lipgloss.Color("8")
	colorAccent  = lipgloss.Color("#11C3DB") // cyan
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted)

	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	headerRowStyle   = lipgloss.NewStyle().Bold(true)
	selectedRowStyle = lipgloss.NewStyle().Reverse(true)
	flagStyle        = lipgloss.NewStyle().Foreground(colorFlag).Bold(true)
	labelStyle       = lipgloss.NewStyle().Foreground(colorAccent)
	mutedStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	statusBarStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	helpKeyStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	helpDescStyle    = lipgloss.NewStyle().Foreground(colorMuted)
)

// truncateString cuts s to width cells, marking the cut with "…".
func truncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
