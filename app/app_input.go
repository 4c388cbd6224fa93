package app

import (
	"time"

	"github.com/kastheco/feedr/keys"
	"github.com/kastheco/feedr/log"
	"github.com/kastheco/feedr/ui"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

func (m *home) handleMenuHighlighting(msg tea.KeyMsg) (cmd tea.Cmd, returnEarly bool) {
	// Handle menu highlighting when you press a button. We intercept it here and immediately return to
	// update the ui while re-sending the keypress. Then, on the next call to this, we actually handle the keypress.
	if m.keySent {
		m.keySent = false
		return nil, false
	}
	if m.state == stateHelp {
		return nil, false
	}
	// If it's in the global keymap, we should try to highlight it.
	name, ok := keys.Lookup(msg.String())
	if !ok {
		return nil, false
	}
	// Quitting should not wait for a render.
	if name == keys.KeyQuit {
		return nil, false
	}

	m.keySent = true
	return tea.Batch(
		func() tea.Msg { return msg },
		m.keydownCallback(name)), true
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (mod tea.Model, cmd tea.Cmd) {
	cmd, returnEarly := m.handleMenuHighlighting(msg)
	if returnEarly {
		return m, cmd
	}

	switch m.state {
	case stateHelp:
		return m.handleHelpState(msg)
	case stateUserMenu:
		return m.handleUserMenuState(msg)
	}

	name, ok := keys.Lookup(msg.String())
	if !ok {
		return m, nil
	}

	switch name {
	case keys.KeyUp:
		m.sidebar.Up()
	case keys.KeyDown:
		m.sidebar.Down()
	case keys.KeyTop:
		m.sidebar.Top()
	case keys.KeyBottom:
		m.sidebar.Bottom()
	case keys.KeyEnter:
		cmd = m.activateSelected()
	case keys.KeySpace:
		cmd = m.toggleSelectedGroup()
	case keys.KeyArrowLeft:
		cmd = m.collapseSelected()
	case keys.KeyArrowRight:
		cmd = m.expandSelected()
	case keys.KeyCopy:
		cmd = m.copySelectedLink()
	case keys.KeyUserMenu:
		cmd = m.toggleUserMenu()
	case keys.KeyReset:
		cmd = m.resetAccordion()
	case keys.KeyReload:
		cmd = m.reloadSidebarCmd()
	case keys.KeyHelp:
		return m.showHelpScreen()
	case keys.KeyQuit:
		return m, tea.Quit
	default:
		return m, nil
	}
	m.syncChrome()
	return m, cmd
}

// handleUserMenuState handles key events while the account dropdown is open.
func (m *home) handleUserMenuState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, ok := keys.Lookup(msg.String())
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	switch name {
	case keys.KeyUp:
		m.sidebar.MenuUp()
	case keys.KeyDown:
		m.sidebar.MenuDown()
	case keys.KeyEnter, keys.KeySpace:
		cmd = m.runSelectedMenuAction()
	case keys.KeyEsc, keys.KeyUserMenu:
		cmd = m.toggleUserMenu()
	case keys.KeyQuit:
		return m, tea.Quit
	default:
		return m, nil
	}
	m.syncChrome()
	return m, cmd
}

// handleHelpState handles key events when in help state
func (m *home) handleHelpState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key press will close the help overlay
	if m.textOverlay == nil || m.textOverlay.HandleKeyPress(msg) {
		m.closeHelp()
		return m, tea.WindowSize()
	}
	return m, nil
}

// handleMouse processes mouse events for click and scroll interactions.
func (m *home) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	// The wheel moves the sidebar cursor over the sidebar and scrolls the
	// activity feed everywhere else.
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		up := msg.Button == tea.MouseButtonWheelUp
		switch {
		case msg.X >= m.sidebarWidth:
			if up {
				m.activity.ScrollUp(1)
			} else {
				m.activity.ScrollDown(1)
			}
			return m, nil
		case m.state == stateUserMenu:
			if up {
				m.sidebar.MenuUp()
			} else {
				m.sidebar.MenuDown()
			}
		case m.state == stateDefault:
			if up {
				m.sidebar.Up()
			} else {
				m.sidebar.Down()
			}
		default:
			return m, nil
		}
		m.syncChrome()
		return m, nil
	}

	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.state == stateHelp {
		m.closeHelp()
		return m, nil
	}

	idx := m.rowAt(msg)
	var cmd tea.Cmd
	switch {
	case m.state == stateUserMenu:
		// Clicking an action runs it; clicking anywhere else closes the dropdown.
		rows := m.sidebar.Rows()
		if idx >= 0 && rows[idx].Kind == ui.RowMenuAction && m.sidebar.ClickItem(idx) {
			cmd = m.runSelectedMenuAction()
		} else {
			cmd = m.toggleUserMenu()
		}
	case idx >= 0 && m.sidebar.ClickItem(idx):
		cmd = m.activateSelected()
	default:
		return m, nil
	}
	m.syncChrome()
	return m, cmd
}

// rowAt returns the index of the sidebar row under the mouse, or -1.
func (m *home) rowAt(msg tea.MouseMsg) int {
	for i := range m.sidebar.Rows() {
		if zone.Get(ui.SidebarRowZoneID(i)).InBounds(msg) {
			return i
		}
	}
	return -1
}

func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	m.toastManager.Error(err.Error())
	return m.toastTickCmd()
}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}
