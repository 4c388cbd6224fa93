package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kastheco/feedr/log"
	"github.com/kastheco/feedr/navigation"
)

// ErrEmptyLabel is returned when a navigation entry, feed group or feed entry
// has a blank label.
var ErrEmptyLabel = errors.New("empty label")

// NavigationConfig is one [[navigation]] table.
type NavigationConfig struct {
	Label  string `toml:"label"`
	Target string `toml:"target"`
	Icon   string `toml:"icon"`
}

// FeedEntryConfig is one [[feeds.entries]] table.
type FeedEntryConfig struct {
	Label string `toml:"label"`
	Link  string `toml:"link"`
}

// FeedGroupConfig is one [[feeds]] table.
type FeedGroupConfig struct {
	Title   string            `toml:"title"`
	Entries []FeedEntryConfig `toml:"entries"`
}

// SidebarConfig is the on-disk shape of sidebar.toml.
type SidebarConfig struct {
	Navigation []NavigationConfig `toml:"navigation"`
	Feeds      []FeedGroupConfig  `toml:"feeds"`
}

// Sidebar is a validated sidebar configuration ready for rendering.
type Sidebar struct {
	Catalog *navigation.Catalog
	Tree    *navigation.Tree
	// Source is the file the sidebar was read from, or "" for defaults.
	Source string
}

// DefaultSidebar returns the built-in primary views and feed groups used when
// no sidebar.toml exists.
func DefaultSidebar() *SidebarConfig {
	return &SidebarConfig{
		Navigation: []NavigationConfig{
			{Label: "Today", Target: "#today", Icon: "calendar"},
			{Label: "Read Later", Target: "#read-later", Icon: "bookmark"},
			{Label: "Favourites", Target: "#favourites", Icon: "star"},
		},
		Feeds: []FeedGroupConfig{
			{Title: "People", Entries: []FeedEntryConfig{{Label: "Chamath"}, {Label: "Kapoji"}}},
			{Title: "Technology", Entries: []FeedEntryConfig{{Label: "Hacker News"}, {Label: "TechCrunch"}, {Label: "Wired"}}},
			{Title: "Health", Entries: []FeedEntryConfig{{Label: "Nature Medicine"}}},
			{Title: "Travel", Entries: []FeedEntryConfig{{Label: "Skift"}, {Label: "Phocuswright"}}},
		},
	}
}

// LoadSidebarConfigFrom parses a sidebar TOML file without validating it.
func LoadSidebarConfigFrom(path string) (*SidebarConfig, error) {
	var sc SidebarConfig
	md, err := toml.DecodeFile(path, &sc)
	if err != nil {
		return nil, fmt.Errorf("parse sidebar config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		log.WarningLog.Printf("ignoring unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return &sc, nil
}

// LoadSidebar loads and validates the sidebar from path. A missing file falls
// back to DefaultSidebar.
func LoadSidebar(path string) (*Sidebar, error) {
	sc, err := LoadSidebarConfigFrom(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSidebar().Build("")
		}
		return nil, err
	}
	return sc.Build(path)
}

// Build validates the configuration and constructs the catalog and tree.
// Blank labels fail with ErrEmptyLabel; repeated group titles fail with
// navigation's DuplicateGroupIdentity error.
func (sc *SidebarConfig) Build(source string) (*Sidebar, error) {
	entries := make([]navigation.NavigationEntry, 0, len(sc.Navigation))
	for i, n := range sc.Navigation {
		if strings.TrimSpace(n.Label) == "" {
			return nil, fmt.Errorf("navigation entry %d: %w", i+1, ErrEmptyLabel)
		}
		entries = append(entries, navigation.NavigationEntry{Label: n.Label, Target: n.Target, Icon: n.Icon})
	}

	groups := make([]navigation.FeedGroup, 0, len(sc.Feeds))
	for i, g := range sc.Feeds {
		if strings.TrimSpace(g.Title) == "" {
			return nil, fmt.Errorf("feed group %d: %w", i+1, ErrEmptyLabel)
		}
		feeds := make([]navigation.FeedEntry, 0, len(g.Entries))
		for j, e := range g.Entries {
			if strings.TrimSpace(e.Label) == "" {
				return nil, fmt.Errorf("feed group %q entry %d: %w", g.Title, j+1, ErrEmptyLabel)
			}
			feeds = append(feeds, navigation.FeedEntry{Label: e.Label, Link: e.Link})
		}
		groups = append(groups, navigation.FeedGroup{Title: g.Title, Entries: feeds})
	}

	tree, err := navigation.NewTree(groups)
	if err != nil {
		return nil, fmt.Errorf("build feed groups: %w", err)
	}
	return &Sidebar{
		Catalog: navigation.NewCatalog(entries),
		Tree:    tree,
		Source:  source,
	}, nil
}

// SaveSidebar writes sc to path as TOML, creating parent directories.
func SaveSidebar(path string, sc *SidebarConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(sc); err != nil {
		return fmt.Errorf("encode sidebar config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
