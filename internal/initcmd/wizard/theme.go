package wizard

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/feedr/ui"
)

// Prefixes for the feed group multiselect. They echo the sidebar's group
// chevrons: a kept group is an open one.
const (
	keptGroupPrefix    = "▾ "
	droppedGroupPrefix = "▸ "
	inputPrompt        = "› "
)

// formTheme styles the setup form with the sidebar palette. Text inputs
// (username, metrics address) use foam for the cursor like the sidebar's
// expanded rows; confirms (telemetry, audit log) use iris buttons; dropped
// feed groups are muted.
func formTheme() *huh.Theme {
	t := huh.ThemeBase()

	f := &t.Focused
	f.Base = f.Base.BorderForeground(ui.ColorIris)
	f.Card = f.Base
	f.Title = f.Title.Foreground(ui.ColorIris).Bold(true)
	f.NoteTitle = lipgloss.NewStyle().Foreground(ui.ColorFoam).Bold(true).MarginBottom(1)
	f.Description = f.Description.Foreground(ui.ColorMuted)
	f.ErrorIndicator = f.ErrorIndicator.Foreground(ui.ColorLove)
	f.ErrorMessage = f.ErrorMessage.Foreground(ui.ColorLove)

	f.MultiSelectSelector = f.MultiSelectSelector.Foreground(ui.ColorIris)
	f.SelectedOption = f.SelectedOption.Foreground(ui.ColorFoam)
	f.SelectedPrefix = lipgloss.NewStyle().Foreground(ui.ColorFoam).SetString(keptGroupPrefix)
	f.UnselectedOption = f.UnselectedOption.Foreground(ui.ColorMuted)
	f.UnselectedPrefix = lipgloss.NewStyle().Foreground(ui.ColorMuted).SetString(droppedGroupPrefix)
	f.Option = f.Option.Foreground(ui.ColorText)

	f.FocusedButton = f.FocusedButton.Foreground(ui.ColorBase).Background(ui.ColorIris).Bold(true)
	f.Next = f.FocusedButton
	f.BlurredButton = f.BlurredButton.Foreground(ui.ColorSubtle).Background(ui.ColorOverlay)

	f.TextInput.Cursor = f.TextInput.Cursor.Foreground(ui.ColorFoam)
	f.TextInput.Placeholder = f.TextInput.Placeholder.Foreground(ui.ColorMuted)
	f.TextInput.Prompt = f.TextInput.Prompt.Foreground(ui.ColorIris)
	f.TextInput.Text = f.TextInput.Text.Foreground(ui.ColorText)

	// Blurred fields keep their layout but drop the accent colors.
	t.Blurred = t.Focused
	b := &t.Blurred
	b.Base = b.Base.BorderStyle(lipgloss.HiddenBorder())
	b.Card = b.Base
	b.Title = b.Title.Foreground(ui.ColorSubtle).Bold(false)
	b.TextInput.Prompt = b.TextInput.Prompt.Foreground(ui.ColorMuted)
	b.TextInput.Text = b.TextInput.Text.Foreground(ui.ColorSubtle)
	b.FocusedButton = b.FocusedButton.Background(ui.ColorMuted)
	b.Next = b.FocusedButton

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description
	return t
}
