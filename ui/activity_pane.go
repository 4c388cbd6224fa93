package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ActivityEventDisplay is a pre-formatted event for rendering in the activity pane.
type ActivityEventDisplay struct {
	Time    string         // formatted as "HH:MM"
	Kind    string         // event kind string (e.g. "group_expanded")
	Icon    string         // single-char icon
	Message string         // human-readable message
	Color   lipgloss.Color // icon color
	Level   string         // "info", "warn", "error"
}

// ActivityPane is the main content area: the active view's title, details
// about the row under the sidebar cursor, and a scrollable feed of recent
// sidebar events.
type ActivityPane struct {
	title    string
	detail   []string
	events   []ActivityEventDisplay
	viewport viewport.Model
	width    int
	height   int
}

// NewActivityPane creates a new ActivityPane.
func NewActivityPane() *ActivityPane {
	return &ActivityPane{viewport: viewport.New(0, 0)}
}

// SetSize updates the pane dimensions and rebuilds the viewport content.
func (p *ActivityPane) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.resize()
}

// Height returns the pane height set by SetSize.
func (p *ActivityPane) Height() int { return p.height }

// SetTitle sets the heading, normally the active view's label.
func (p *ActivityPane) SetTitle(title string) { p.title = title }

// SetDetail replaces the detail lines shown under the title.
func (p *ActivityPane) SetDetail(lines ...string) {
	p.detail = append([]string(nil), lines...)
	p.resize()
}

// SetEvents replaces the event list and refreshes the viewport.
func (p *ActivityPane) SetEvents(events []ActivityEventDisplay) {
	p.events = events
	p.viewport.SetContent(p.renderBody())
	p.viewport.GotoTop()
}

// ScrollDown scrolls the viewport down by n lines.
func (p *ActivityPane) ScrollDown(n int) {
	p.viewport.LineDown(n)
}

// ScrollUp scrolls the viewport up by n lines.
func (p *ActivityPane) ScrollUp(n int) {
	p.viewport.LineUp(n)
}

// headerLines is the title, a blank line, the detail lines and a blank line
// before the log divider.
func (p *ActivityPane) headerLines() int {
	return 3 + len(p.detail)
}

func (p *ActivityPane) resize() {
	// Reserve the header block plus 1 line for the log divider.
	bodyH := p.height - p.headerLines() - 1
	if bodyH < 0 {
		bodyH = 0
	}
	p.viewport.Width = p.width
	p.viewport.Height = bodyH
	p.viewport.SetContent(p.renderBody())
}

var (
	activityTitleStyle  = lipgloss.NewStyle().Foreground(ColorIris).Bold(true)
	activityDetailStyle = lipgloss.NewStyle().Foreground(ColorSubtle)
	activityHeaderStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	activityTimeStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	activityMsgStyle    = lipgloss.NewStyle().Foreground(ColorText)
	activityEmptyStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)

// String renders the pane: header block, a 1-line divider and the scrollable log.
func (p *ActivityPane) String() string {
	lines := make([]string, 0, p.headerLines()+2)
	lines = append(lines, activityTitleStyle.Render(p.truncate(p.title)), "")
	for _, d := range p.detail {
		lines = append(lines, activityDetailStyle.Render(p.truncate(d)))
	}
	lines = append(lines, "", p.renderDivider(), p.viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (p *ActivityPane) truncate(s string) string {
	if p.width <= 0 {
		return s
	}
	return ansi.Truncate(s, p.width, "…")
}

func (p *ActivityPane) renderDivider() string {
	label := "── activity "
	fill := p.width - lipgloss.Width(label)
	if fill < 2 {
		fill = 2
	}
	return activityHeaderStyle.Render(label + strings.Repeat("─", fill))
}

func (p *ActivityPane) renderBody() string {
	if len(p.events) == 0 {
		return activityEmptyStyle.Render("· no events")
	}

	lines := make([]string, 0, len(p.events))
	for _, e := range p.events {
		icon := lipgloss.NewStyle().Foreground(e.Color).Render(e.Icon)
		ts := activityTimeStyle.Render(e.Time)
		msg := activityMsgStyle.Render(e.Message)
		lines = append(lines, p.truncate(ts+" "+icon+" "+msg))
	}
	return strings.Join(lines, "\n")
}

// EventKindIcon returns the icon and color for a given event kind string.
// Used by the app layer when building ActivityEventDisplay values.
func EventKindIcon(kind string) (icon string, color lipgloss.Color) {
	switch kind {
	case "group_expanded":
		return "▾", ColorFoam
	case "group_collapsed":
		return "▸", ColorMuted
	case "accordion_reset":
		return "⟲", ColorIris
	case "sidebar_reloaded":
		return "⟳", ColorIris
	case "view_selected":
		return "◆", ColorFoam
	case "entry_opened":
		return "→", ColorFoam
	case "link_copied":
		return "⎘", ColorGold
	case "menu_opened", "menu_closed":
		return "◉", ColorRose
	case "menu_action":
		return "✦", ColorRose
	case "intent_rejected":
		return "!", ColorGold
	case "error":
		return "!", ColorLove
	default:
		return "·", ColorMuted
	}
}
