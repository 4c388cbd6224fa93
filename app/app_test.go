package app

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/kastheco/feedr/config"
	"github.com/kastheco/feedr/config/auditlog"
	"github.com/kastheco/feedr/internal/metrics"
	"github.com/kastheco/feedr/log"
	"github.com/kastheco/feedr/navigation"
	"github.com/kastheco/feedr/navigation/accordion"
	"github.com/kastheco/feedr/ui"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before all tests to set up the test environment
func TestMain(m *testing.M) {
	// Initialize the logger before any tests run
	log.Initialize(false)
	defer log.Close()

	zone.NewGlobal()

	exitCode := m.Run()
	os.Exit(exitCode)
}

type testEnv struct {
	h     *home
	audit *auditlog.SQLiteLogger
	reg   *prometheus.Registry
}

func testSidebarConfig() *config.SidebarConfig {
	return &config.SidebarConfig{
		Navigation: []config.NavigationConfig{
			{Label: "Today", Target: "#today", Icon: "calendar"},
			{Label: "Favourites", Target: "#favourites", Icon: "star"},
		},
		Feeds: []config.FeedGroupConfig{
			{Title: "People", Entries: []config.FeedEntryConfig{{Label: "Chamath"}, {Label: "Kapoji"}}},
			{Title: "Technology", Entries: []config.FeedEntryConfig{
				{Label: "Hacker News", Link: "https://news.ycombinator.com/rss"},
				{Label: "Wired"},
			}},
			{Title: "Travel", Entries: []config.FeedEntryConfig{{Label: "Skift"}}},
		},
	}
}

func newTestEnv(t *testing.T, expand string) *testEnv {
	t.Helper()
	sb, err := testSidebarConfig().Build("")
	require.NoError(t, err)

	al, err := auditlog.NewSQLiteLogger(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { al.Close() })

	reg := prometheus.NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Username = "ada"

	h, err := newHome(context.Background(), Options{
		Config:      cfg,
		Sidebar:     sb,
		SidebarPath: "sidebar.toml",
		Expand:      expand,
		AuditLogger: al,
		Metrics:     metrics.NewRecorder(reg),
	})
	require.NoError(t, err)
	h.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &testEnv{h: h, audit: al, reg: reg}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press delivers a key the way the program does: the highlighted first pass
// re-sends the key, the second pass handles it.
func press(h *home, s string) tea.Cmd {
	msg := keyMsg(s)
	_, cmd := h.handleKeyPress(msg)
	if h.keySent {
		_, cmd = h.handleKeyPress(msg)
	}
	return cmd
}

func (e *testEnv) events(t *testing.T, kinds ...auditlog.EventKind) []auditlog.Event {
	t.Helper()
	events, err := e.audit.Query(auditlog.QueryFilter{Kinds: kinds, Limit: 100})
	require.NoError(t, err)
	return events
}

func (e *testEnv) counter(t *testing.T, name, label string) float64 {
	t.Helper()
	families, err := e.reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func selected(t *testing.T, h *home) ui.SidebarRow {
	t.Helper()
	row, ok := h.sidebar.Selected()
	require.True(t, ok)
	return row
}

func TestNewHome_DefaultExpandsFirstGroup(t *testing.T) {
	env := newTestEnv(t, "")
	assert.Equal(t, accordion.Expanded("People"), env.h.accordion.Current())
	assert.False(t, env.h.userMenu.IsOpen())
	assert.Equal(t, "Today", env.h.activeView)
	assert.Equal(t, ui.RowNav, selected(t, env.h).Kind)
}

func TestNewHome_ExpandFlag(t *testing.T) {
	t.Run("opens the named group", func(t *testing.T) {
		env := newTestEnv(t, "Travel")
		assert.Equal(t, accordion.Expanded("Travel"), env.h.accordion.Current())
	})

	t.Run("first group stays open", func(t *testing.T) {
		env := newTestEnv(t, "People")
		assert.Equal(t, accordion.Expanded("People"), env.h.accordion.Current())
	})

	t.Run("unknown title fails", func(t *testing.T) {
		sb, err := testSidebarConfig().Build("")
		require.NoError(t, err)
		_, err = newHome(context.Background(), Options{Sidebar: sb, Expand: "Sports"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, navigation.ErrUnknownGroupIdentity))
		var unknown *navigation.UnknownGroupIdentityError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "Sports", unknown.Title)
	})
}

func TestNewHome_NilDependenciesUseDefaults(t *testing.T) {
	h, err := newHome(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, accordion.Expanded("People"), h.accordion.Current())
	assert.Equal(t, 4, h.accordion.Tree().Len())
}

func TestView_RendersSidebarAndStatus(t *testing.T) {
	env := newTestEnv(t, "")
	out := ansi.Strip(env.h.View())
	assert.Contains(t, out, "FEEDS")
	assert.Contains(t, out, "People")
	assert.Contains(t, out, "Chamath")
	assert.Contains(t, out, "▾ People")
	assert.Contains(t, out, "ada")
	assert.NotContains(t, out, "Hacker News")
	assert.GreaterOrEqual(t, len(strings.Split(out, "\n")), 40)
}
