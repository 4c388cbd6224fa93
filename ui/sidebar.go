package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/kastheco/feedr/navigation"
	"github.com/kastheco/feedr/navigation/accordion"
	"github.com/kastheco/feedr/navigation/usermenu"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
)

// SidebarRowKind identifies what a sidebar row represents.
type SidebarRowKind int

const (
	RowNav SidebarRowKind = iota
	RowFeedsLabel
	RowGroupHeader
	RowFeedEntry
	RowAccount
	RowMenuAction
)

// SidebarRow is one rendered line of the sidebar.
type SidebarRow struct {
	Kind  SidebarRowKind
	ID    string
	Label string

	Icon   string // RowNav
	Target string // RowNav

	Group    string // RowGroupHeader, RowFeedEntry
	Link     string // RowFeedEntry
	Count    int    // RowGroupHeader
	Expanded bool   // RowGroupHeader

	Action string // RowMenuAction
}

// Selectable reports whether the cursor can rest on the row.
func (r SidebarRow) Selectable() bool { return r.Kind != RowFeedsLabel }

const (
	accountRowID = "account"
	feedsLabelID = "feeds"
)

func navRowID(i int, label string) string   { return fmt.Sprintf("nav:%d:%s", i, label) }
func groupRowID(title string) string        { return "group:" + title }
func entryRowID(group string, i int) string { return fmt.Sprintf("entry:%s:%d", group, i) }
func menuRowID(action string) string        { return "menu:" + action }

// Sidebar renders the navigation catalog, the feed accordion and the account
// footer. It holds no accordion or menu state of its own; callers push the
// current state in with SetExpansion and SetMenu.
type Sidebar struct {
	rows         []SidebarRow
	selectedIdx  int
	scrollOffset int

	nav       []navigation.NavigationEntry
	tree      *navigation.Tree
	expansion accordion.State

	menuOpen bool
	actions  []usermenu.Action

	activeView string
	username   string

	width, height int
	focused       bool
}

func NewSidebar() *Sidebar {
	return &Sidebar{focused: true}
}

// SetData replaces the catalog and feed tree. The cursor stays on the same
// row when it still exists; on first load it starts at the top.
func (s *Sidebar) SetData(catalog *navigation.Catalog, tree *navigation.Tree) {
	if len(s.nav) == 0 && s.tree == nil {
		s.selectedIdx = -1
	}
	s.nav = catalog.Entries()
	s.tree = tree
	s.rebuildRows()
}

// SetExpansion updates which feed group is shown expanded.
func (s *Sidebar) SetExpansion(st accordion.State) {
	s.expansion = st
	s.rebuildRows()
}

// SetMenu updates the account dropdown. When open, the actions are listed
// above the account row.
func (s *Sidebar) SetMenu(open bool, actions []usermenu.Action) {
	s.menuOpen = open
	s.actions = append([]usermenu.Action(nil), actions...)
	s.rebuildRows()
}

func (s *Sidebar) SetActiveView(label string) { s.activeView = label }
func (s *Sidebar) ActiveView() string         { return s.activeView }
func (s *Sidebar) SetFocused(focused bool)    { s.focused = focused }
func (s *Sidebar) IsFocused() bool            { return s.focused }

// SetUsername sets the label shown on the account row.
func (s *Sidebar) SetUsername(name string) {
	s.username = name
	s.rebuildRows()
}

func (s *Sidebar) SetSize(width, height int) {
	s.width, s.height = width, height
	s.clampScroll()
}

func (s *Sidebar) rebuildRows() {
	var prev SidebarRow
	hadPrev := false
	if s.selectedIdx >= 0 && s.selectedIdx < len(s.rows) {
		prev = s.rows[s.selectedIdx]
		hadPrev = true
	}

	rows := make([]SidebarRow, 0, len(s.nav)+s.tree.Len()+2)
	for i, e := range s.nav {
		rows = append(rows, SidebarRow{
			Kind:   RowNav,
			ID:     navRowID(i, e.Label),
			Label:  e.Label,
			Icon:   e.Icon,
			Target: e.Target,
		})
	}

	rows = append(rows, SidebarRow{Kind: RowFeedsLabel, ID: feedsLabelID, Label: "FEEDS"})
	for _, g := range s.tree.Groups() {
		expanded := s.expansion.Is(g.Title)
		rows = append(rows, SidebarRow{
			Kind:     RowGroupHeader,
			ID:       groupRowID(g.Title),
			Label:    g.Title,
			Group:    g.Title,
			Count:    g.Len(),
			Expanded: expanded,
		})
		if !expanded {
			continue
		}
		for i, e := range g.Entries {
			rows = append(rows, SidebarRow{
				Kind:  RowFeedEntry,
				ID:    entryRowID(g.Title, i),
				Label: e.Label,
				Group: g.Title,
				Link:  e.Link,
			})
		}
	}

	// The dropdown opens upwards from the account row.
	if s.menuOpen {
		for _, a := range s.actions {
			rows = append(rows, SidebarRow{
				Kind:   RowMenuAction,
				ID:     menuRowID(a.ID),
				Label:  a.Label,
				Action: a.ID,
			})
		}
	}
	rows = append(rows, SidebarRow{Kind: RowAccount, ID: accountRowID, Label: s.username})
	s.rows = rows

	if !hadPrev {
		s.selectedIdx = s.firstSelectable()
		s.clampScroll()
		return
	}
	if s.SelectByID(prev.ID) {
		return
	}
	// The selected row disappeared: fall back to its parent.
	switch prev.Kind {
	case RowFeedEntry:
		if s.SelectByID(groupRowID(prev.Group)) {
			return
		}
	case RowMenuAction:
		if s.SelectByID(accountRowID) {
			return
		}
	}
	if s.selectedIdx >= len(s.rows) {
		s.selectedIdx = len(s.rows) - 1
	}
	if s.selectedIdx < 0 || !s.rows[s.selectedIdx].Selectable() {
		s.selectedIdx = s.firstSelectable()
	}
	s.clampScroll()
}

func (s *Sidebar) firstSelectable() int {
	for i, r := range s.rows {
		if r.Selectable() {
			return i
		}
	}
	return 0
}

func (s *Sidebar) move(step int, allow func(SidebarRow) bool) bool {
	for i := s.selectedIdx + step; i >= 0 && i < len(s.rows); i += step {
		if s.rows[i].Selectable() && allow(s.rows[i]) {
			s.selectedIdx = i
			s.clampScroll()
			return true
		}
	}
	return false
}

func anyRow(SidebarRow) bool { return true }

func isMenuAction(r SidebarRow) bool { return r.Kind == RowMenuAction }

func (s *Sidebar) Up()   { s.move(-1, anyRow) }
func (s *Sidebar) Down() { s.move(1, anyRow) }

// Top moves the cursor to the first selectable row.
func (s *Sidebar) Top() {
	s.selectedIdx = s.firstSelectable()
	s.clampScroll()
}

// Bottom moves the cursor to the last selectable row.
func (s *Sidebar) Bottom() {
	for i := len(s.rows) - 1; i >= 0; i-- {
		if s.rows[i].Selectable() {
			s.selectedIdx = i
			s.clampScroll()
			return
		}
	}
}

// MenuUp and MenuDown move the cursor among the open dropdown's actions only.
func (s *Sidebar) MenuUp()   { s.move(-1, isMenuAction) }
func (s *Sidebar) MenuDown() { s.move(1, isMenuAction) }

// SelectFirstMenuAction puts the cursor on the first dropdown action.
func (s *Sidebar) SelectFirstMenuAction() bool {
	for i, r := range s.rows {
		if r.Kind == RowMenuAction {
			s.selectedIdx = i
			s.clampScroll()
			return true
		}
	}
	return false
}

// Selected returns the row under the cursor.
func (s *Sidebar) Selected() (SidebarRow, bool) {
	if s.selectedIdx < 0 || s.selectedIdx >= len(s.rows) {
		return SidebarRow{}, false
	}
	return s.rows[s.selectedIdx], true
}

// SelectByID moves the cursor to the row with the given ID.
func (s *Sidebar) SelectByID(id string) bool {
	for i, row := range s.rows {
		if row.ID == id && row.Selectable() {
			s.selectedIdx = i
			s.clampScroll()
			return true
		}
	}
	return false
}

// SelectGroup moves the cursor to a group's header row.
func (s *Sidebar) SelectGroup(title string) bool { return s.SelectByID(groupRowID(title)) }

// SelectAccount moves the cursor to the account row.
func (s *Sidebar) SelectAccount() bool { return s.SelectByID(accountRowID) }

// ClickItem selects the row at index idx in the rows slice.
func (s *Sidebar) ClickItem(idx int) bool {
	if idx < 0 || idx >= len(s.rows) || !s.rows[idx].Selectable() {
		return false
	}
	s.selectedIdx = idx
	s.clampScroll()
	return true
}

// Rows returns a copy of the current rows.
func (s *Sidebar) Rows() []SidebarRow { return append([]SidebarRow(nil), s.rows...) }

func (s *Sidebar) GetSelectedIdx() int  { return s.selectedIdx }
func (s *Sidebar) GetScrollOffset() int { return s.scrollOffset }

// SpaceAction returns the hint for the space key given the row under the
// cursor: "expand", "collapse" or "toggle".
func (s *Sidebar) SpaceAction() string {
	row, ok := s.Selected()
	if !ok || row.Kind != RowGroupHeader {
		return "toggle"
	}
	if row.Expanded {
		return "collapse"
	}
	return "expand"
}

// footerStart is the index of the first dropdown action, or of the account
// row when the menu is closed; rows from there on are pinned to the bottom of
// the panel.
func (s *Sidebar) footerStart() int {
	for i, r := range s.rows {
		if r.Kind == RowMenuAction || r.Kind == RowAccount {
			return i
		}
	}
	return len(s.rows)
}

func (s *Sidebar) availRows() int {
	// border (2) + spacer above the footer (1)
	avail := s.height - 3 - (len(s.rows) - s.footerStart())
	if avail < 1 {
		return 1
	}
	return avail
}

func (s *Sidebar) clampScroll() {
	body := s.footerStart()
	if body == 0 {
		s.scrollOffset = 0
		return
	}
	avail := s.availRows()
	if s.selectedIdx < body {
		if s.selectedIdx < s.scrollOffset {
			s.scrollOffset = s.selectedIdx
		}
		if s.selectedIdx >= s.scrollOffset+avail {
			s.scrollOffset = s.selectedIdx - avail + 1
		}
	}
	if limit := body - avail; s.scrollOffset > limit {
		s.scrollOffset = limit
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}

var (
	sidebarCursorStyle   = lipgloss.NewStyle().Foreground(ColorIris).Bold(true)
	sidebarNavStyle      = lipgloss.NewStyle().Foreground(ColorText)
	sidebarActiveStyle   = lipgloss.NewStyle().Foreground(ColorFoam).Bold(true)
	sidebarLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted).Bold(true)
	sidebarHeaderStyle   = lipgloss.NewStyle().Foreground(ColorText)
	sidebarExpandedStyle = lipgloss.NewStyle().Foreground(ColorFoam)
	sidebarEntryStyle    = lipgloss.NewStyle().Foreground(ColorSubtle)
	sidebarCountStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	sidebarAccountStyle  = lipgloss.NewStyle().Foreground(ColorRose)
	sidebarActionStyle   = lipgloss.NewStyle().Foreground(ColorSubtle)
)

// NavIcon maps a navigation icon name to its glyph.
func NavIcon(name string) string {
	switch name {
	case "calendar":
		return "◷"
	case "bookmark":
		return "◆"
	case "star":
		return "★"
	case "inbox":
		return "▤"
	default:
		return "•"
	}
}

func (s *Sidebar) renderRow(i int, row SidebarRow, width int) string {
	selected := i == s.selectedIdx && s.focused
	prefix := "  "
	if selected {
		prefix = sidebarCursorStyle.Render("▸ ")
	}
	avail := width - 2
	if avail < 1 {
		avail = 1
	}

	var line string
	switch row.Kind {
	case RowNav:
		style := sidebarNavStyle
		if row.Label == s.activeView {
			style = sidebarActiveStyle
		}
		line = style.Render(ansi.Truncate(NavIcon(row.Icon)+" "+row.Label, avail, "…"))
	case RowFeedsLabel:
		line = sidebarLabelStyle.Render(ansi.Truncate(row.Label, avail, "…"))
	case RowGroupHeader:
		chevron, style := "▸", sidebarHeaderStyle
		if row.Expanded {
			chevron, style = "▾", sidebarExpandedStyle
		}
		count := fmt.Sprintf("%d", row.Count)
		titleWidth := avail - runewidth.StringWidth(count) - 1
		title := ansi.Truncate(chevron+" "+row.Label, max(titleWidth, 1), "…")
		gap := avail - runewidth.StringWidth(title) - runewidth.StringWidth(count)
		if gap < 1 {
			gap = 1
		}
		line = style.Render(title) + strings.Repeat(" ", gap) + sidebarCountStyle.Render(count)
	case RowFeedEntry:
		line = sidebarEntryStyle.Render(ansi.Truncate("  "+row.Label, avail, "…"))
	case RowAccount:
		chevron := "▾"
		if s.menuOpen {
			chevron = "▴"
		}
		name := row.Label
		if name == "" {
			name = "account"
		}
		line = sidebarAccountStyle.Render(ansi.Truncate("◉ "+name+" "+chevron, avail, "…"))
	case RowMenuAction:
		line = sidebarActionStyle.Render(ansi.Truncate("  "+row.Label, avail, "…"))
	}
	if selected && row.Kind != RowGroupHeader {
		line = lipgloss.NewStyle().Bold(true).Render(line)
	}
	return zone.Mark(SidebarRowZoneID(i), prefix+line)
}

func (s *Sidebar) String() string {
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorOverlay).Padding(0, 1)
	if s.focused {
		border = border.BorderForeground(ColorIris)
	}
	innerWidth := s.width - 4
	if innerWidth < 8 {
		innerWidth = 8
	}
	height := s.height - 2
	if height < 4 {
		height = 4
	}
	// Width includes the horizontal padding.
	textWidth := innerWidth - 2

	footer := s.footerStart()
	start := s.scrollOffset
	if start > footer {
		start = footer
	}
	end := start + s.availRows()
	if end > footer {
		end = footer
	}

	lines := make([]string, 0, len(s.rows)+1)
	for i := start; i < end; i++ {
		lines = append(lines, s.renderRow(i, s.rows[i], textWidth))
	}
	for len(lines) < s.availRows() {
		lines = append(lines, "")
	}
	lines = append(lines, "")
	for i := footer; i < len(s.rows); i++ {
		lines = append(lines, s.renderRow(i, s.rows[i], textWidth))
	}

	content := strings.Join(lines, "\n")
	return lipgloss.Place(s.width, s.height, lipgloss.Left, lipgloss.Top, border.Width(innerWidth).Height(height).Render(content))
}
