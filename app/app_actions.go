package app

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/kastheco/feedr/config"
	"github.com/kastheco/feedr/config/auditlog"
	"github.com/kastheco/feedr/log"
	"github.com/kastheco/feedr/navigation"
	"github.com/kastheco/feedr/navigation/usermenu"
	"github.com/kastheco/feedr/ui"
	"github.com/kastheco/feedr/ui/overlay"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	errNoLink       = errors.New("no link configured")
	errNotFeedEntry = errors.New("select a feed entry to copy its link")
)

// Swapped out in tests.
var (
	copyToClipboard = clipboard.WriteAll
	loadSidebar     = config.LoadSidebar
)

// activateSelected performs the enter action for the row under the cursor.
func (m *home) activateSelected() tea.Cmd {
	row, ok := m.sidebar.Selected()
	if !ok {
		return nil
	}
	switch row.Kind {
	case ui.RowNav:
		return m.selectView(row)
	case ui.RowGroupHeader:
		return m.selectGroup(row.Label)
	case ui.RowFeedEntry:
		return m.openEntry(row)
	case ui.RowAccount:
		return m.toggleUserMenu()
	case ui.RowMenuAction:
		return m.runSelectedMenuAction()
	}
	return nil
}

// selectGroup forwards a header activation to the accordion.
func (m *home) selectGroup(title string) tea.Cmd {
	st, err := m.accordion.Select(title)
	if err != nil {
		return m.rejectIntent("unknown_group", err, auditlog.WithGroup(title))
	}
	if st.Is(title) {
		m.metrics.GroupToggled("expanded")
		m.audit(auditlog.EventGroupExpanded, "expanded "+title, auditlog.WithGroup(title))
	} else {
		m.metrics.GroupToggled("collapsed")
		m.audit(auditlog.EventGroupCollapsed, "collapsed "+title, auditlog.WithGroup(title))
	}
	m.sidebar.SetExpansion(st)
	return nil
}

// toggleSelectedGroup toggles the group under the cursor. On a feed entry it
// toggles the entry's group, which closes it.
func (m *home) toggleSelectedGroup() tea.Cmd {
	row, ok := m.sidebar.Selected()
	if !ok {
		return nil
	}
	switch row.Kind {
	case ui.RowGroupHeader:
		return m.selectGroup(row.Label)
	case ui.RowFeedEntry:
		return m.selectGroup(row.Group)
	}
	return nil
}

func (m *home) collapseSelected() tea.Cmd {
	row, ok := m.sidebar.Selected()
	if !ok {
		return nil
	}
	switch {
	case row.Kind == ui.RowGroupHeader && row.Expanded:
		return m.selectGroup(row.Label)
	case row.Kind == ui.RowFeedEntry:
		return m.selectGroup(row.Group)
	}
	return nil
}

func (m *home) expandSelected() tea.Cmd {
	row, ok := m.sidebar.Selected()
	if !ok || row.Kind != ui.RowGroupHeader {
		return nil
	}
	if row.Expanded {
		m.sidebar.Down()
		return nil
	}
	return m.selectGroup(row.Label)
}

func (m *home) selectView(row ui.SidebarRow) tea.Cmd {
	m.activeView = row.Label
	m.sidebar.SetActiveView(row.Label)
	m.metrics.ViewSelected(row.Label)
	m.audit(auditlog.EventViewSelected, fmt.Sprintf("view %s (%s)", row.Label, row.Target),
		auditlog.WithEntry(row.Label))
	return nil
}

func (m *home) openEntry(row ui.SidebarRow) tea.Cmd {
	link := linkOrPlaceholder(row.Link)
	m.opened = []string{fmt.Sprintf("opened %s › %s", row.Group, row.Label), link}
	m.audit(auditlog.EventEntryOpened, fmt.Sprintf("opened %s: %s", row.Label, link),
		auditlog.WithGroup(row.Group), auditlog.WithEntry(row.Label))
	m.toastManager.Info(fmt.Sprintf("%s: %s", row.Label, link))
	return m.toastTickCmd()
}

func (m *home) copySelectedLink() tea.Cmd {
	row, ok := m.sidebar.Selected()
	if !ok || row.Kind != ui.RowFeedEntry {
		return m.rejectIntent("not_feed_entry", errNotFeedEntry)
	}
	if row.Link == "" {
		return m.rejectIntent("no_link", fmt.Errorf("%s: %w", row.Label, errNoLink),
			auditlog.WithGroup(row.Group), auditlog.WithEntry(row.Label))
	}
	if err := copyToClipboard(row.Link); err != nil {
		m.audit(auditlog.EventError, "copy link: "+err.Error(), auditlog.WithLevel("error"))
		return m.handleError(fmt.Errorf("copy link: %w", err))
	}
	m.audit(auditlog.EventLinkCopied, "copied "+row.Link,
		auditlog.WithGroup(row.Group), auditlog.WithEntry(row.Label))
	m.toastManager.Success("copied " + row.Link)
	return m.toastTickCmd()
}

// toggleUserMenu opens or closes the account dropdown. The accordion is not
// touched.
func (m *home) toggleUserMenu() tea.Cmd {
	if m.userMenu.Toggle() {
		m.sidebar.SetMenu(true, m.actions)
		m.sidebar.SelectFirstMenuAction()
		m.state = stateUserMenu
		m.menu.SetState(ui.StateUserMenu)
		m.metrics.MenuEvent("opened")
		m.audit(auditlog.EventMenuOpened, "account menu opened")
		return nil
	}
	m.sidebar.SetMenu(false, m.actions)
	m.sidebar.SelectAccount()
	m.state = stateDefault
	m.menu.SetState(ui.StateDefault)
	m.metrics.MenuEvent("closed")
	m.audit(auditlog.EventMenuClosed, "account menu closed")
	return nil
}

// runSelectedMenuAction records the dropdown action under the cursor and
// closes the menu.
func (m *home) runSelectedMenuAction() tea.Cmd {
	row, ok := m.sidebar.Selected()
	if !ok || row.Kind != ui.RowMenuAction {
		return nil
	}
	m.metrics.MenuEvent(row.Action)
	m.audit(auditlog.EventMenuAction, row.Label, auditlog.WithEntry(row.Action))
	msg := row.Label + " is not available offline"
	if row.Action == usermenu.ActionSignOut {
		msg = "signed out of " + m.appConfig.Username
	}
	m.toastManager.Info(msg)
	if m.userMenu.IsOpen() {
		m.toggleUserMenu()
	}
	return m.toastTickCmd()
}

func (m *home) resetAccordion() tea.Cmd {
	st := m.accordion.Reset()
	m.sidebar.SetExpansion(st)
	m.audit(auditlog.EventAccordionReset, "reset to "+st.String(), auditlog.WithGroup(st.Title()))
	return nil
}

func (m *home) reloadSidebarCmd() tea.Cmd {
	path := m.sidebarPath
	return func() tea.Msg {
		sb, err := loadSidebar(path)
		return sidebarLoadedMsg{sidebar: sb, err: err}
	}
}

// applySidebar swaps in a reloaded sidebar. A failed load leaves the current
// catalog, tree and accordion state untouched.
func (m *home) applySidebar(msg sidebarLoadedMsg) tea.Cmd {
	if msg.err != nil {
		reason := "reload"
		if errors.Is(msg.err, navigation.ErrDuplicateGroupIdentity) {
			reason = "duplicate_group"
		}
		m.metrics.IntentRejected(reason)
		m.audit(auditlog.EventError, "reload sidebar: "+msg.err.Error(), auditlog.WithLevel("error"))
		return m.handleError(fmt.Errorf("reload sidebar: %w", msg.err))
	}

	m.catalog = msg.sidebar.Catalog
	m.source = msg.sidebar.Source
	st := m.accordion.Reload(msg.sidebar.Tree)
	if !m.hasView(m.activeView) {
		m.activeView = ""
		if entries := m.catalog.Entries(); len(entries) > 0 {
			m.activeView = entries[0].Label
		}
	}
	m.sidebar.SetData(m.catalog, m.accordion.Tree())
	m.sidebar.SetExpansion(st)
	m.audit(auditlog.EventSidebarReloaded,
		fmt.Sprintf("reloaded %d feed groups", m.accordion.Tree().Len()),
		auditlog.WithGroup(st.Title()))
	m.syncChrome()
	m.toastManager.Success("sidebar reloaded")
	return m.toastTickCmd()
}

func (m *home) hasView(label string) bool {
	for _, e := range m.catalog.Entries() {
		if e.Label == label {
			return true
		}
	}
	return false
}

// rejectIntent surfaces a refused intent without changing any state.
func (m *home) rejectIntent(reason string, err error, opts ...auditlog.EventOption) tea.Cmd {
	log.WarningLog.Printf("intent rejected (%s): %v", reason, err)
	m.metrics.IntentRejected(reason)
	opts = append(opts, auditlog.WithLevel("warn"), auditlog.WithDetail(fmt.Sprintf(`{"reason":%q}`, reason)))
	m.audit(auditlog.EventIntentRejected, err.Error(), opts...)
	m.toastManager.Error(err.Error())
	return m.toastTickCmd()
}

func (m *home) showHelpScreen() (tea.Model, tea.Cmd) {
	m.textOverlay = overlay.NewTextOverlay(helpContent())
	m.textOverlay.SetWidth(int(float32(m.termWidth) * 0.6))
	m.state = stateHelp
	m.menu.SetState(ui.StateHelp)
	return m, nil
}

func (m *home) closeHelp() {
	m.textOverlay = nil
	m.state = stateDefault
	m.menu.SetState(ui.StateDefault)
}
