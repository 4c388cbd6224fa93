package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/feedr/ui"
	"github.com/muesli/reflow/wordwrap"
)

// TextOverlay is a bordered, dismissable block of text.
type TextOverlay struct {
	content string
	width   int
	// OnDismiss is called once when the overlay is closed.
	OnDismiss func()
}

// NewTextOverlay creates a TextOverlay showing content.
func NewTextOverlay(content string) *TextOverlay {
	return &TextOverlay{content: content}
}

// SetWidth sets the outer width. Long lines are word-wrapped to fit.
func (t *TextOverlay) SetWidth(width int) {
	t.width = width
}

// HandleKeyPress reports whether the key closes the overlay. Any key does.
func (t *TextOverlay) HandleKeyPress(_ tea.KeyMsg) bool {
	if t.OnDismiss != nil {
		t.OnDismiss()
		t.OnDismiss = nil
	}
	return true
}

var textOverlayStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ui.ColorIris).
	Padding(1, 2)

// Render returns the styled overlay.
func (t *TextOverlay) Render() string {
	content := t.content
	if inner := t.width - 6; inner > 10 {
		lines := strings.Split(content, "\n")
		for i, l := range lines {
			lines[i] = wordwrap.String(l, inner)
		}
		content = strings.Join(lines, "\n")
	}
	return textOverlayStyle.Render(content)
}
