package overlay

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kastheco/feedr/ui"
	"github.com/mattn/go-runewidth"
)

// ToastType identifies the kind of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
	ToastError
)

// Display constants.
const (
	InfoDismissAfter    = 3 * time.Second
	SuccessDismissAfter = 3 * time.Second
	ErrorDismissAfter   = 5 * time.Second

	// TickInterval is how often the app sends ToastTickMsg while toasts are
	// on screen.
	TickInterval = 100 * time.Millisecond

	MinToastWidth = 30
	MaxToastWidth = 60
	MaxToasts     = 5
)

// toast is a single notification, e.g. "copied https://...".
type toast struct {
	typ       ToastType
	message   string
	expiresAt time.Time
	// repeats counts identical notifications folded into this one.
	repeats int
	width   int
}

// ToastManager stacks notifications in the top-right corner.
type ToastManager struct {
	toasts []*toast
	width  int
	height int
	now    func() time.Time
}

// NewToastManager creates an empty ToastManager.
func NewToastManager() *ToastManager {
	return &ToastManager{now: time.Now}
}

// SetSize updates the available viewport dimensions for toast positioning.
func (tm *ToastManager) SetSize(width, height int) {
	tm.width = width
	tm.height = height
}

func (tm *ToastManager) Info(msg string)    { tm.add(ToastInfo, msg, InfoDismissAfter) }
func (tm *ToastManager) Success(msg string) { tm.add(ToastSuccess, msg, SuccessDismissAfter) }
func (tm *ToastManager) Error(msg string)   { tm.add(ToastError, msg, ErrorDismissAfter) }

// add appends a toast. An identical toast still on screen is refreshed and
// its repeat count bumped instead, so a held key does not flood the stack.
func (tm *ToastManager) add(typ ToastType, msg string, ttl time.Duration) {
	expires := tm.now().Add(ttl)
	for _, t := range tm.toasts {
		if t.typ == typ && t.message == msg {
			t.expiresAt = expires
			t.repeats++
			t.width = toastWidth(t.text())
			return
		}
	}
	for len(tm.toasts) >= MaxToasts {
		tm.toasts = tm.toasts[1:]
	}
	t := &toast{typ: typ, message: msg, expiresAt: expires}
	t.width = toastWidth(t.text())
	tm.toasts = append(tm.toasts, t)
}

// Tick drops expired toasts.
func (tm *ToastManager) Tick() {
	now := tm.now()
	alive := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Before(t.expiresAt) {
			alive = append(alive, t)
		}
	}
	tm.toasts = alive
}

// HasActiveToasts reports whether anything is still on screen.
func (tm *ToastManager) HasActiveToasts() bool { return len(tm.toasts) > 0 }

// Len returns the number of toasts still on screen.
func (tm *ToastManager) Len() int { return len(tm.toasts) }

// ToastTickMsg is sent by the app every TickInterval while toasts are active.
type ToastTickMsg struct{}

func (t *toast) text() string {
	if t.repeats > 0 {
		return fmt.Sprintf("%s (×%d)", t.message, t.repeats+1)
	}
	return t.message
}

// toastWidth covers icon (up to 2 cells), a space, the text, padding (2) and
// border (2).
func toastWidth(text string) int {
	w := 2 + 1 + runewidth.StringWidth(text) + 4
	return max(MinToastWidth, min(w, MaxToastWidth))
}

func toastColor(typ ToastType) lipgloss.Color {
	switch typ {
	case ToastSuccess:
		return ui.ColorGold
	case ToastError:
		return ui.ColorLove
	default:
		return ui.ColorFoam
	}
}

func toastIcon(typ ToastType) string {
	icon := "▸"
	switch typ {
	case ToastSuccess:
		icon = "✓"
	case ToastError:
		icon = "✗"
	}
	return lipgloss.NewStyle().Foreground(toastColor(typ)).Render(icon)
}

// View renders the active toasts stacked vertically, right-aligned.
func (tm *ToastManager) View() string {
	if len(tm.toasts) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(tm.toasts))
	for _, t := range tm.toasts {
		rendered = append(rendered, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(toastColor(t.typ)).
			Padding(0, 1).
			Width(t.width).
			Render(toastIcon(t.typ)+" "+t.text()))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// GetPosition returns the x, y coordinates for placing the toast overlay:
// right edge of the terminal, just below the status bar.
func (tm *ToastManager) GetPosition() (int, int) {
	widest := MinToastWidth
	for _, t := range tm.toasts {
		widest = max(widest, t.width)
	}
	return max(tm.width-widest-4, 0), 1
}
