package ui

import (
	"strings"

	"github.com/kastheco/feedr/keys"

	"github.com/charmbracelet/lipgloss"
)

var keyStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

var descStyle = lipgloss.NewStyle().Foreground(ColorMuted)

var sepStyle = lipgloss.NewStyle().Foreground(ColorOverlay)

var actionGroupStyle = lipgloss.NewStyle().Foreground(ColorRose)

var separator = " • "
var verticalSeparator = " │ "

var menuStyle = lipgloss.NewStyle().
	Foreground(ColorFoam)

// MenuState represents different states the menu can be in
type MenuState int

const (
	StateDefault MenuState = iota
	// StateUserMenu is active while the account dropdown is open.
	StateUserMenu
	// StateHelp is active while the help overlay is shown.
	StateHelp
)

// Menu is the bottom key-hint bar.
type Menu struct {
	groups        [][]keys.KeyName
	actionGroup   int // index into groups rendered with the action style; -1 for none
	height, width int
	state         MenuState

	// spaceAction is the label for KeySpace ("expand", "collapse" or "toggle").
	spaceAction string

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

var (
	navigationGroup   = []keys.KeyName{keys.KeyUp, keys.KeyDown}
	sidebarGroup      = []keys.KeyName{keys.KeyEnter, keys.KeySpace, keys.KeyCopy, keys.KeyUserMenu}
	systemGroup       = []keys.KeyName{keys.KeyReset, keys.KeyReload, keys.KeyHelp, keys.KeyQuit}
	userMenuGroup     = []keys.KeyName{keys.KeyUp, keys.KeyDown, keys.KeyEnter, keys.KeyEsc}
	helpOverlayGroups = []keys.KeyName{keys.KeyEsc}
)

func NewMenu() *Menu {
	m := &Menu{
		keyDown:     -1,
		spaceAction: "toggle",
	}
	m.updateOptions()
	return m
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state and options accordingly
func (m *Menu) SetState(state MenuState) {
	m.state = state
	m.updateOptions()
}

func (m *Menu) State() MenuState { return m.state }

// SetSpaceAction sets the label shown for the space key.
func (m *Menu) SetSpaceAction(action string) {
	switch action {
	case "expand", "collapse":
		m.spaceAction = action
	default:
		m.spaceAction = "toggle"
	}
}

func (m *Menu) updateOptions() {
	switch m.state {
	case StateUserMenu:
		m.groups = [][]keys.KeyName{userMenuGroup}
		m.actionGroup = 0
	case StateHelp:
		m.groups = [][]keys.KeyName{helpOverlayGroups}
		m.actionGroup = -1
	default:
		m.groups = [][]keys.KeyName{navigationGroup, sidebarGroup, systemGroup}
		m.actionGroup = 1
	}
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) String() string {
	var s strings.Builder

	for gi, group := range m.groups {
		for i, k := range group {
			help := keys.GlobalkeyBindings[k].Help()
			helpDesc := help.Desc
			if k == keys.KeySpace {
				helpDesc = m.spaceAction
			}

			var (
				localActionStyle = actionGroupStyle
				localKeyStyle    = keyStyle
				localDescStyle   = descStyle
			)
			if m.keyDown == k {
				localActionStyle = localActionStyle.Underline(true)
				localKeyStyle = localKeyStyle.Underline(true)
				localDescStyle = localDescStyle.Underline(true)
			}

			if gi == m.actionGroup {
				s.WriteString(localActionStyle.Render(help.Key + " " + helpDesc))
			} else {
				s.WriteString(localKeyStyle.Render(help.Key))
				s.WriteString(descStyle.Render(" "))
				s.WriteString(localDescStyle.Render(helpDesc))
			}

			if i != len(group)-1 {
				s.WriteString(sepStyle.Render(separator))
			}
		}
		if gi != len(m.groups)-1 {
			s.WriteString(sepStyle.Render(verticalSeparator))
		}
	}

	centeredMenuText := menuStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, centeredMenuText)
}
