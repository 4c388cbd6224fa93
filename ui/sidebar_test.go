package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/kastheco/feedr/navigation"
	"github.com/kastheco/feedr/navigation/accordion"
	"github.com/kastheco/feedr/navigation/usermenu"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func plain(s string) string {
	return ansi.Strip(zone.Scan(s))
}

func testSidebar(t *testing.T) *Sidebar {
	t.Helper()
	catalog := navigation.NewCatalog([]navigation.NavigationEntry{
		{Label: "Today", Target: "#today", Icon: "calendar"},
		{Label: "Favourites", Target: "#favourites", Icon: "star"},
	})
	tree, err := navigation.NewTree([]navigation.FeedGroup{
		{Title: "People", Entries: []navigation.FeedEntry{{Label: "Chamath"}, {Label: "Kapoji"}}},
		{Title: "Technology", Entries: []navigation.FeedEntry{
			{Label: "Hacker News", Link: "https://news.ycombinator.com/rss"},
			{Label: "Wired"},
		}},
		{Title: "Travel"},
	})
	require.NoError(t, err)

	s := NewSidebar()
	s.SetSize(30, 30)
	s.SetUsername("ada")
	s.SetData(catalog, tree)
	s.SetExpansion(accordion.Initial(tree))
	return s
}

func kinds(rows []SidebarRow) []SidebarRowKind {
	out := make([]SidebarRowKind, len(rows))
	for i, r := range rows {
		out[i] = r.Kind
	}
	return out
}

// ---------- rebuildRows ----------

func TestSidebar_RowsShowOnlyExpandedGroupEntries(t *testing.T) {
	s := testSidebar(t)

	assert.Equal(t, []SidebarRowKind{
		RowNav, RowNav,
		RowFeedsLabel,
		RowGroupHeader, RowFeedEntry, RowFeedEntry, // People expanded
		RowGroupHeader, // Technology
		RowGroupHeader, // Travel
		RowAccount,
	}, kinds(s.Rows()))

	s.SetExpansion(accordion.Expanded("Technology"))
	rows := s.Rows()
	require.Len(t, rows, 9)
	assert.False(t, rows[3].Expanded)
	assert.True(t, rows[4].Expanded)
	assert.Equal(t, "Hacker News", rows[5].Label)
	assert.Equal(t, "https://news.ycombinator.com/rss", rows[5].Link)
	assert.Equal(t, "Technology", rows[5].Group)
}

func TestSidebar_AllCollapsed(t *testing.T) {
	s := testSidebar(t)
	s.SetExpansion(accordion.Collapsed())
	for _, r := range s.Rows() {
		assert.NotEqual(t, RowFeedEntry, r.Kind)
		assert.False(t, r.Expanded)
	}
}

func TestSidebar_HeaderCounts(t *testing.T) {
	s := testSidebar(t)
	counts := map[string]int{}
	for _, r := range s.Rows() {
		if r.Kind == RowGroupHeader {
			counts[r.Label] = r.Count
		}
	}
	assert.Equal(t, map[string]int{"People": 2, "Technology": 2, "Travel": 0}, counts)
}

func TestSidebar_MenuRows(t *testing.T) {
	s := testSidebar(t)
	s.SetMenu(true, usermenu.DefaultActions())

	rows := s.Rows()
	tail := rows[len(rows)-4:]
	for i, a := range usermenu.DefaultActions() {
		assert.Equal(t, RowMenuAction, tail[i].Kind)
		assert.Equal(t, a.ID, tail[i].Action)
	}
	assert.Equal(t, RowAccount, tail[3].Kind)
	assert.Equal(t, "ada", tail[3].Label)

	s.SetMenu(false, usermenu.DefaultActions())
	assert.Equal(t, RowAccount, s.Rows()[len(s.Rows())-1].Kind)
}

// ---------- cursor ----------

func TestSidebar_InitialCursorOnFirstNavRow(t *testing.T) {
	s := testSidebar(t)
	row, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, RowNav, row.Kind)
	assert.Equal(t, "Today", row.Label)
}

func TestSidebar_DownSkipsFeedsLabel(t *testing.T) {
	s := testSidebar(t)
	s.Down() // Favourites
	s.Down() // skips FEEDS label
	row, _ := s.Selected()
	assert.Equal(t, RowGroupHeader, row.Kind)
	assert.Equal(t, "People", row.Label)

	s.Up()
	row, _ = s.Selected()
	assert.Equal(t, "Favourites", row.Label)
}

func TestSidebar_TopBottom(t *testing.T) {
	s := testSidebar(t)
	s.Bottom()
	row, _ := s.Selected()
	assert.Equal(t, RowAccount, row.Kind)

	s.Top()
	row, _ = s.Selected()
	assert.Equal(t, "Today", row.Label)
}

func TestSidebar_SelectionFollowsCollapse(t *testing.T) {
	s := testSidebar(t)
	require.True(t, s.SelectByID(entryRowID("People", 1)))

	// Collapsing the group removes the entry; the cursor moves to its header.
	s.SetExpansion(accordion.Collapsed())
	row, _ := s.Selected()
	assert.Equal(t, RowGroupHeader, row.Kind)
	assert.Equal(t, "People", row.Label)
}

func TestSidebar_SelectionPreservedAcrossSwitch(t *testing.T) {
	s := testSidebar(t)
	require.True(t, s.SelectGroup("Travel"))
	s.SetExpansion(accordion.Expanded("Technology"))
	row, _ := s.Selected()
	assert.Equal(t, "Travel", row.Label)
}

func TestSidebar_MenuCursor(t *testing.T) {
	s := testSidebar(t)
	s.SetMenu(true, usermenu.DefaultActions())
	require.True(t, s.SelectFirstMenuAction())

	row, _ := s.Selected()
	assert.Equal(t, usermenu.ActionAccount, row.Action)

	s.MenuDown()
	s.MenuDown()
	s.MenuDown() // stays on last
	row, _ = s.Selected()
	assert.Equal(t, usermenu.ActionSignOut, row.Action)

	s.MenuUp()
	s.MenuUp()
	s.MenuUp() // does not leave the dropdown
	row, _ = s.Selected()
	assert.Equal(t, usermenu.ActionAccount, row.Action)

	s.SetMenu(false, nil)
	row, _ = s.Selected()
	assert.Equal(t, RowAccount, row.Kind)
}

func TestSidebar_ClickItem(t *testing.T) {
	s := testSidebar(t)
	assert.False(t, s.ClickItem(2), "FEEDS label is not selectable")
	assert.False(t, s.ClickItem(99))
	assert.True(t, s.ClickItem(6))
	row, _ := s.Selected()
	assert.Equal(t, "Technology", row.Label)
}

func TestSidebar_SpaceAction(t *testing.T) {
	s := testSidebar(t)
	assert.Equal(t, "toggle", s.SpaceAction())

	s.SelectGroup("People")
	assert.Equal(t, "collapse", s.SpaceAction())

	s.SelectGroup("Travel")
	assert.Equal(t, "expand", s.SpaceAction())
}

func TestSidebar_EmptyTree(t *testing.T) {
	s := NewSidebar()
	s.SetSize(30, 20)
	s.SetData(nil, nil)
	s.SetExpansion(accordion.Collapsed())

	assert.Equal(t, []SidebarRowKind{RowFeedsLabel, RowAccount}, kinds(s.Rows()))
	row, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, RowAccount, row.Kind)
}

// ---------- scrolling ----------

func TestSidebar_ScrollKeepsCursorVisible(t *testing.T) {
	s := testSidebar(t)
	s.SetSize(30, 8) // 8 - 3 - 1 footer row = 4 body rows

	for i := 0; i < 7; i++ {
		s.Down()
	}
	row, _ := s.Selected()
	require.Equal(t, RowAccount, row.Kind)

	s.SelectGroup("Travel") // index 7
	assert.Equal(t, 4, s.GetScrollOffset())

	s.Top()
	assert.Equal(t, 0, s.GetScrollOffset())
}

// ---------- rendering ----------

func TestSidebar_String(t *testing.T) {
	s := testSidebar(t)
	s.SetActiveView("Today")

	out := plain(s.String())
	assert.Contains(t, out, "◷ Today")
	assert.Contains(t, out, "★ Favourites")
	assert.Contains(t, out, "FEEDS")
	assert.Contains(t, out, "▾ People")
	assert.Contains(t, out, "▸ Technology")
	assert.Contains(t, out, "Chamath")
	assert.NotContains(t, out, "Hacker News")
	assert.Contains(t, out, "◉ ada ▾")
	assert.Equal(t, 30, len(strings.Split(out, "\n")))
}

func TestSidebar_StringTruncatesLongLabels(t *testing.T) {
	tree, err := navigation.NewTree([]navigation.FeedGroup{
		{Title: "An extremely long feed group title that cannot fit"},
	})
	require.NoError(t, err)
	s := NewSidebar()
	s.SetSize(24, 10)
	s.SetData(nil, tree)
	s.SetExpansion(accordion.Collapsed())

	out := plain(s.String())
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, "cannot fit")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 24)
	}
}

func TestSidebar_MenuOpenChevron(t *testing.T) {
	s := testSidebar(t)
	s.SetMenu(true, usermenu.DefaultActions())
	out := plain(s.String())
	assert.Contains(t, out, "◉ ada ▴")
	assert.Contains(t, out, "Sign out")
}

func TestSidebar_MenuRendersAboveAccount(t *testing.T) {
	s := testSidebar(t)
	s.SetMenu(true, usermenu.DefaultActions())

	lines := strings.Split(plain(s.String()), "\n")
	find := func(sub string) int {
		for i, l := range lines {
			if strings.Contains(l, sub) {
				return i
			}
		}
		return -1
	}
	account, billing, signOut, travel := find("◉ ada"), find("Billing"), find("Sign out"), find("Travel")
	require.True(t, account > 0 && billing > 0 && signOut > 0 && travel > 0)
	assert.Less(t, billing, signOut)
	assert.Equal(t, account-1, signOut, "dropdown sits directly on the account row")
	assert.Less(t, travel, billing)
	// The footer stays pinned: the account row is the last line inside the border.
	assert.Equal(t, len(lines)-2, account)
}

func TestSidebar_MenuScrollKeepsFooterPinned(t *testing.T) {
	s := testSidebar(t)
	s.SetSize(30, 10) // 10 - 3 - 4 footer rows = 3 body rows
	s.SetMenu(true, usermenu.DefaultActions())
	require.True(t, s.SelectFirstMenuAction())
	assert.Equal(t, 8, s.footerStart())

	s.SelectGroup("Travel")
	assert.Equal(t, 5, s.GetScrollOffset())
}

func TestSidebar_DuplicateNavLabelsKeepCursor(t *testing.T) {
	catalog := navigation.NewCatalog([]navigation.NavigationEntry{
		{Label: "Today", Target: "#a"},
		{Label: "Today", Target: "#b"},
	})
	s := NewSidebar()
	s.SetSize(30, 20)
	s.SetData(catalog, nil)
	s.Down()
	row, _ := s.Selected()
	require.Equal(t, "#b", row.Target)

	s.SetExpansion(accordion.Collapsed())
	row, _ = s.Selected()
	assert.Equal(t, "#b", row.Target)
	assert.Equal(t, 1, s.GetSelectedIdx())
}

func TestNavIcon(t *testing.T) {
	assert.Equal(t, "★", NavIcon("star"))
	assert.Equal(t, "•", NavIcon("unknown"))
}
