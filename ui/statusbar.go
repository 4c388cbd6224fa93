package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// StatusBarData holds the contextual information displayed in the status bar.
type StatusBarData struct {
	Source    string // sidebar.toml path; empty = built-in defaults
	Expanded  string // expanded group title; empty = all collapsed
	View      string // active primary view label
	MenuOpen  bool
	GroupsLen int
}

// StatusBar is the top status bar component.
type StatusBar struct {
	width int
	data  StatusBarData
}

// NewStatusBar creates a new StatusBar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetSize sets the terminal width for the status bar.
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetData updates the status bar content.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

var statusBarStyle = lipgloss.NewStyle().
	Background(ColorSurface).
	Foreground(ColorText).
	Padding(0, 1)

var statusBarSepStyle = lipgloss.NewStyle().
	Foreground(ColorOverlay).
	Background(ColorSurface)

var statusBarSourceStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle).
	Background(ColorSurface)

var statusBarExpandedStyle = lipgloss.NewStyle().
	Foreground(ColorFoam).
	Background(ColorSurface)

var statusBarCollapsedStyle = lipgloss.NewStyle().
	Foreground(ColorMuted).
	Background(ColorSurface)

var statusBarViewStyle = lipgloss.NewStyle().
	Foreground(ColorText).
	Background(ColorSurface)

var statusBarMenuStyle = lipgloss.NewStyle().
	Foreground(ColorRose).
	Background(ColorSurface)

const statusBarSep = " │ "

func (s *StatusBar) String() string {
	if s.width < 10 {
		return ""
	}

	parts := make([]string, 0, 5)
	parts = append(parts, GradientText("feedr", GradientStart, GradientEnd))

	source := s.data.Source
	if source == "" {
		source = "built-in sidebar"
	}
	parts = append(parts, statusBarSourceStyle.Render(source))

	switch {
	case s.data.GroupsLen == 0:
		parts = append(parts, statusBarCollapsedStyle.Render("no feed groups"))
	case s.data.Expanded != "":
		parts = append(parts, statusBarExpandedStyle.Render("▾ "+s.data.Expanded))
	default:
		parts = append(parts, statusBarCollapsedStyle.Render("all collapsed"))
	}

	if s.data.View != "" {
		parts = append(parts, statusBarViewStyle.Render(s.data.View))
	}

	if s.data.MenuOpen {
		parts = append(parts, statusBarMenuStyle.Render("account ▴"))
	}

	sep := statusBarSepStyle.Render(statusBarSep)
	content := strings.Join(parts, sep)
	// Padding takes two cells.
	content = truncate.StringWithTail(content, uint(s.width-2), "…")

	return statusBarStyle.Width(s.width).Render(content)
}
