package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceOverlay draws fg on top of bg with its top-left corner at (x, y).
// When center is true, x and y are ignored and fg is centered on bg.
// Styling in the uncovered parts of bg is preserved.
func PlaceOverlay(x, y int, fg, bg string, center bool) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	fgWidth := lipgloss.Width(fg)
	bgWidth := lipgloss.Width(bg)

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (len(bgLines) - len(fgLines)) / 2
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	for i, fgLine := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLine := bgLines[row]

		left := ansi.Truncate(bgLine, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(fgLine), "")

		bgLines[row] = left + fgLine + "\x1b[0m" + right
	}
	return strings.Join(bgLines, "\n")
}
