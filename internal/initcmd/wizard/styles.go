package wizard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/feedr/ui"
)

// Summary card styles.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorIris)
	labelStyle    = lipgloss.NewStyle().Foreground(ui.ColorSubtle)
	valueStyle    = lipgloss.NewStyle().Foreground(ui.ColorText)
	mutedStyle    = lipgloss.NewStyle().Foreground(ui.ColorMuted)
	onStyle       = lipgloss.NewStyle().Foreground(ui.ColorFoam)
	firstTagStyle = lipgloss.NewStyle().Foreground(ui.ColorGold)

	cardStyle = lipgloss.NewStyle().
			Background(ui.ColorSurface).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorOverlay)
)
