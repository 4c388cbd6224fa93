package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyTop    // Jump to the first sidebar row
	KeyBottom // Jump to the last sidebar row
	KeyEnter
	KeySpace      // Toggle the group header under the cursor
	KeyArrowLeft  // Collapse the expanded group
	KeyArrowRight // Expand the group under the cursor
	KeyCopy       // Copy the selected feed entry's link
	KeyUserMenu   // Open or close the account dropdown
	KeyReset      // Restore the initial accordion state
	KeyReload     // Re-read sidebar.toml
	KeyHelp       // Key for showing help screen
	KeyQuit
	KeyEsc // Close the account dropdown or help screen
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"home":   KeyTop,
	"g":      KeyTop,
	"end":    KeyBottom,
	"G":      KeyBottom,
	"enter":  KeyEnter,
	"o":      KeyEnter,
	" ":      KeySpace,
	"left":   KeyArrowLeft,
	"h":      KeyArrowLeft,
	"right":  KeyArrowRight,
	"l":      KeyArrowRight,
	"y":      KeyCopy,
	"u":      KeyUserMenu,
	"r":      KeyReset,
	"ctrl+r": KeyReload,
	"?":      KeyHelp,
	"q":      KeyQuit,
	"ctrl+c": KeyQuit,
	"esc":    KeyEsc,
}

// GlobalkeyBindings is a global, immutable map of KeyName tot keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyTop: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "top"),
	),
	KeyBottom: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "bottom"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter", "o"),
		key.WithHelp("↵/o", "select"),
	),
	KeySpace: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	KeyArrowLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "collapse"),
	),
	KeyArrowRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "expand"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy link"),
	),
	KeyUserMenu: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "account"),
	),
	KeyReset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	KeyReload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
}

// Lookup returns the KeyName bound to the key string s (as produced by
// tea.KeyMsg.String).
func Lookup(s string) (KeyName, bool) {
	name, ok := GlobalKeyStringsMap[s]
	return name, ok
}
