package app

import (
	"github.com/kastheco/feedr/ui"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorIris)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorFoam)
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorGold)
	descStyle   = lipgloss.NewStyle().Foreground(ui.ColorText)
)

// helpContent returns the general help screen.
func helpContent() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.GradientText("feedr", ui.GradientStart, ui.GradientEnd),
		"",
		descStyle.Render("a feed reader sidebar. primary views on top, feed groups below,"),
		descStyle.Render("at most one group open at a time."),
		"",
		headerStyle.Render("sidebar:"),
		keyStyle.Render("↑↓/jk")+descStyle.Render("         - move the cursor"),
		keyStyle.Render("home/end")+descStyle.Render("      - jump to first / last row"),
		keyStyle.Render("↵/o")+descStyle.Render("           - select view, toggle group, open feed"),
		keyStyle.Render("space")+descStyle.Render("         - expand/collapse the group"),
		keyStyle.Render("←/h")+descStyle.Render("           - collapse the open group"),
		keyStyle.Render("→/l")+descStyle.Render("           - expand the group"),
		keyStyle.Render("y")+descStyle.Render("             - copy the feed's link"),
		"",
		headerStyle.Render("account:"),
		keyStyle.Render("u")+descStyle.Render("             - open or close the account menu"),
		keyStyle.Render("esc")+descStyle.Render("           - close the account menu"),
		"",
		headerStyle.Render("system:"),
		keyStyle.Render("r")+descStyle.Render("             - reset to the first group"),
		keyStyle.Render("ctrl+r")+descStyle.Render("        - reload sidebar.toml"),
		keyStyle.Render("?")+descStyle.Render("             - this screen"),
		keyStyle.Render("q")+descStyle.Render("             - quit"),
		"",
		titleStyle.Render("press any key to close"),
	)
}
