// Package navigation holds the sidebar's immutable data model: the primary
// view catalog and the ordered tree of feed groups.
package navigation

// NavigationEntry is a primary view in the sidebar (e.g. "Today").
// Target and Icon are opaque references resolved by the renderer.
type NavigationEntry struct {
	Label  string
	Target string
	Icon   string
}

// Catalog is the ordered, read-only list of primary views.
type Catalog struct {
	entries []NavigationEntry
}

// NewCatalog copies entries into a new catalog.
func NewCatalog(entries []NavigationEntry) *Catalog {
	return &Catalog{entries: append([]NavigationEntry(nil), entries...)}
}

// Entries returns the entries in configured order.
func (c *Catalog) Entries() []NavigationEntry {
	if c == nil {
		return nil
	}
	return append([]NavigationEntry(nil), c.entries...)
}

// Len returns the number of primary views.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
