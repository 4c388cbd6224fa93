package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kastheco/feedr/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSidebar(t *testing.T) {
	t.Run("parses navigation and nested feeds", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sidebar.toml")
		content := `
[[navigation]]
label = "Today"
target = "#today"
icon = "calendar"

[[navigation]]
label = "Favourites"
target = "#favourites"
icon = "star"

[[feeds]]
title = "Technology"

  [[feeds.entries]]
  label = "Hacker News"
  link = "https://news.ycombinator.com/rss"

  [[feeds.entries]]
  label = "Wired"

[[feeds]]
title = "Travel"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		sb, err := LoadSidebar(path)
		require.NoError(t, err)
		assert.Equal(t, path, sb.Source)

		entries := sb.Catalog.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "Favourites", entries[1].Label)
		assert.Equal(t, "star", entries[1].Icon)

		assert.Equal(t, []string{"Technology", "Travel"}, sb.Tree.Titles())
		tech, ok := sb.Tree.Group("Technology")
		require.True(t, ok)
		require.Len(t, tech.Entries, 2)
		assert.Equal(t, "https://news.ycombinator.com/rss", tech.Entries[0].Link)
		assert.Empty(t, tech.Entries[1].Link)
	})

	t.Run("missing file uses defaults", func(t *testing.T) {
		sb, err := LoadSidebar(filepath.Join(t.TempDir(), "absent.toml"))
		require.NoError(t, err)
		assert.Empty(t, sb.Source)
		assert.Equal(t, 3, sb.Catalog.Len())
		assert.Equal(t, []string{"People", "Technology", "Health", "Travel"}, sb.Tree.Titles())
	})

	t.Run("duplicate group titles are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sidebar.toml")
		content := "[[feeds]]\ntitle = \"People\"\n\n[[feeds]]\ntitle = \"People\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := LoadSidebar(path)
		require.Error(t, err)
		var dup *navigation.DuplicateGroupIdentityError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "People", dup.Title)
	})

	t.Run("malformed toml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sidebar.toml")
		require.NoError(t, os.WriteFile(path, []byte("[[feeds]\ntitle="), 0o644))
		_, err := LoadSidebar(path)
		assert.Error(t, err)
	})

	t.Run("empty feeds is a valid empty tree", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sidebar.toml")
		require.NoError(t, os.WriteFile(path, []byte("[[navigation]]\nlabel = \"Today\"\n"), 0o644))
		sb, err := LoadSidebar(path)
		require.NoError(t, err)
		assert.True(t, sb.Tree.IsEmpty())
	})
}

func TestSidebarConfig_BuildRejectsEmptyLabels(t *testing.T) {
	cases := map[string]*SidebarConfig{
		"navigation": {Navigation: []NavigationConfig{{Label: " "}}},
		"group":      {Feeds: []FeedGroupConfig{{Title: ""}}},
		"entry":      {Feeds: []FeedGroupConfig{{Title: "People", Entries: []FeedEntryConfig{{Label: ""}}}}},
	}
	for name, sc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := sc.Build("")
			assert.ErrorIs(t, err, ErrEmptyLabel)
		})
	}
}

func TestSaveSidebar_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sidebar.toml")
	require.NoError(t, SaveSidebar(path, DefaultSidebar()))

	sb, err := LoadSidebar(path)
	require.NoError(t, err)
	assert.Equal(t, path, sb.Source)
	assert.Equal(t, []string{"People", "Technology", "Health", "Travel"}, sb.Tree.Titles())
	assert.Equal(t, "Read Later", sb.Catalog.Entries()[1].Label)
}
