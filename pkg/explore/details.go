package explore

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/TheApac/stringcheese/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// renderDetails shows every field of r, plus a hex dump of the raw window
// when the scan kept it.
func renderDetails(r *types.Result, width, height int) string {
	contentWidth := max(1, width-4)

	var lines []string
	if r == nil {
		lines = append(lines, mutedStyle.Render("No result selected"))
	} else {
		field := func(label, value string) {
			lines = append(lines, truncateString(labelStyle.Render(fmt.Sprintf("%-12s", label))+value, contentWidth))
		}
		lines = append(lines, flagStyle.Render(truncateString(r.Flag, contentWidth)), "")
		source := r.Source
		if source == "" {
			source = "-"
		}
		field("Source", source)
		field("Encoding", r.Encoding)
		field("View", r.View)
		field("Offset", fmt.Sprintf("%d (view offset %d)", r.Offset, r.ViewOffset))
		if len(r.Raw) > 0 {
			lines = append(lines, "", labelStyle.Render("Raw"))
			for _, l := range strings.Split(strings.TrimRight(hex.Dump(r.Raw), "\n"), "\n") {
				lines = append(lines, truncateString(l, contentWidth))
			}
		}
	}

	if max(1, height-3) < len(lines) {
		lines = lines[:max(1, height-3)]
	}
	content := inactiveBorderStyle.
		Width(width - 2).
		Height(height - 3).
		Render(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(" Details "), content)
}
