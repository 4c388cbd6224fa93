package wizard

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/kastheco/feedr/ui"
	"github.com/stretchr/testify/assert"
)

func TestCoreStyles(t *testing.T) {
	assert.Equal(t, ui.ColorIris, titleStyle.GetForeground())
	assert.True(t, titleStyle.GetBold())
	assert.Equal(t, ui.ColorSubtle, labelStyle.GetForeground())
	assert.Equal(t, ui.ColorText, valueStyle.GetForeground())
	assert.Equal(t, ui.ColorMuted, mutedStyle.GetForeground())
	assert.Equal(t, ui.ColorFoam, onStyle.GetForeground())
	assert.Equal(t, ui.ColorGold, firstTagStyle.GetForeground())
	assert.Equal(t, ui.ColorSurface, cardStyle.GetBackground())
}

func TestFormTheme_Focused(t *testing.T) {
	th := formTheme()

	assert.Equal(t, ui.ColorIris, th.Focused.Title.GetForeground())
	assert.Equal(t, ui.ColorFoam, th.Focused.NoteTitle.GetForeground())
	assert.Equal(t, ui.ColorLove, th.Focused.ErrorMessage.GetForeground())
	assert.Equal(t, ui.ColorFoam, th.Focused.TextInput.Cursor.GetForeground())
	assert.Equal(t, ui.ColorIris, th.Focused.FocusedButton.GetBackground())
	assert.Equal(t, ui.ColorBase, th.Focused.FocusedButton.GetForeground())
	assert.Equal(t, ui.ColorOverlay, th.Focused.BlurredButton.GetBackground())

	// Group multiselect prefixes mirror the sidebar chevrons.
	assert.Equal(t, keptGroupPrefix, ansi.Strip(th.Focused.SelectedPrefix.String()))
	assert.Equal(t, ui.ColorFoam, th.Focused.SelectedPrefix.GetForeground())
	assert.Equal(t, droppedGroupPrefix, ansi.Strip(th.Focused.UnselectedPrefix.String()))
	assert.Equal(t, ui.ColorMuted, th.Focused.UnselectedOption.GetForeground())
}

func TestFormTheme_Blurred(t *testing.T) {
	th := formTheme()

	assert.Equal(t, ui.ColorSubtle, th.Blurred.Title.GetForeground())
	assert.False(t, th.Blurred.Title.GetBold())
	assert.Equal(t, ui.ColorSubtle, th.Blurred.TextInput.Text.GetForeground())
	assert.Equal(t, ui.ColorMuted, th.Blurred.FocusedButton.GetBackground())
	// Shared choices stay in the palette.
	assert.Equal(t, ui.ColorFoam, th.Blurred.SelectedOption.GetForeground())
	assert.Equal(t, th.Group.Title.GetForeground(), th.Focused.Title.GetForeground())
}
