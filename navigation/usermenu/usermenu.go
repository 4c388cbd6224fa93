// Package usermenu holds the open/closed state of the sidebar's account
// dropdown. It is independent of the feed accordion.
package usermenu

import "sync/atomic"

// Action is an entry in the account dropdown.
type Action struct {
	ID    string
	Label string
}

const (
	ActionAccount = "account"
	ActionBilling = "billing"
	ActionSignOut = "sign_out"
)

// DefaultActions returns the dropdown entries in display order.
func DefaultActions() []Action {
	return []Action{
		{ID: ActionAccount, Label: "Account"},
		{ID: ActionBilling, Label: "Billing"},
		{ID: ActionSignOut, Label: "Sign out"},
	}
}

// Menu is the dropdown's open state. The zero value is a closed menu.
type Menu struct {
	open atomic.Bool
}

func New() *Menu { return &Menu{} }

func (m *Menu) Open()  { m.open.Store(true) }
func (m *Menu) Close() { m.open.Store(false) }

// Toggle flips the state and returns the new value.
func (m *Menu) Toggle() bool {
	for {
		cur := m.open.Load()
		if m.open.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

func (m *Menu) IsOpen() bool { return m.open.Load() }
