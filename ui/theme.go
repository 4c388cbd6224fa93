package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rosé Pine Moon palette
// https://rosepinetheme.com/palette/
var (
	// Base tones
	ColorBase    = lipgloss.Color("#232136")
	ColorSurface = lipgloss.Color("#2a273f")
	ColorOverlay = lipgloss.Color("#393552")
	ColorMuted   = lipgloss.Color("#6e6a86")
	ColorSubtle  = lipgloss.Color("#908caa")
	ColorText    = lipgloss.Color("#e0def4")

	// Semantic colors
	ColorLove = lipgloss.Color("#eb6f92") // error, danger
	ColorGold = lipgloss.Color("#f6c177") // warning
	ColorRose = lipgloss.Color("#ea9a97") // accent, secondary
	ColorPine = lipgloss.Color("#3e8fb0") // link
	ColorFoam = lipgloss.Color("#9ccfd8") // info, expanded
	ColorIris = lipgloss.Color("#c4a7e7") // highlight, primary

	// Gradient endpoints for the app name
	GradientStart = "#9ccfd8" // foam
	GradientEnd   = "#c4a7e7" // iris
)

// GradientText renders s with a per-rune foreground blend from start to end.
// Newlines restart the blend on each line.
func GradientText(s, start, end string) string {
	r1, g1, b1, ok1 := parseHex(start)
	r2, g2, b2, ok2 := parseHex(end)
	if !ok1 || !ok2 {
		return s
	}

	lines := strings.Split(s, "\n")
	for li, line := range lines {
		runes := []rune(line)
		var b strings.Builder
		for i, r := range runes {
			if r == ' ' {
				b.WriteRune(r)
				continue
			}
			t := 0.0
			if len(runes) > 1 {
				t = float64(i) / float64(len(runes)-1)
			}
			c := fmt.Sprintf("#%02x%02x%02x", lerp(r1, r2, t), lerp(g1, g2, t), lerp(b1, b2, t))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true).Render(string(r)))
		}
		lines[li] = b.String()
	}
	return strings.Join(lines, "\n")
}

func parseHex(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func lerp(a, b int, t float64) int {
	return a + int(float64(b-a)*t+0.5)
}
