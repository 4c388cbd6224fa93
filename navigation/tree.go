package navigation

// FeedEntry is a single subscribed feed. Link may be empty when the feed has
// not been configured yet.
type FeedEntry struct {
	Label string
	Link  string
}

// FeedGroup is a titled, ordered collection of feeds. Title is the group's
// identity within a Tree.
type FeedGroup struct {
	Title   string
	Entries []FeedEntry
}

// Len returns the number of feeds in the group.
func (g FeedGroup) Len() int {
	return len(g.Entries)
}

func (g FeedGroup) clone() FeedGroup {
	return FeedGroup{
		Title:   g.Title,
		Entries: append([]FeedEntry(nil), g.Entries...),
	}
}

// Tree is an immutable snapshot of feed groups in display order. The first
// group is the default expansion target.
type Tree struct {
	groups []FeedGroup
	index  map[string]int
}

// NewTree builds a tree from groups. Titles must be unique; the first repeated
// title is reported as a *DuplicateGroupIdentityError. An empty input yields an
// empty tree.
func NewTree(groups []FeedGroup) (*Tree, error) {
	t := &Tree{
		groups: make([]FeedGroup, 0, len(groups)),
		index:  make(map[string]int, len(groups)),
	}
	for _, g := range groups {
		if _, dup := t.index[g.Title]; dup {
			return nil, &DuplicateGroupIdentityError{Title: g.Title}
		}
		t.index[g.Title] = len(t.groups)
		t.groups = append(t.groups, g.clone())
	}
	return t, nil
}

// Groups returns a copy of the groups in display order.
func (t *Tree) Groups() []FeedGroup {
	if t == nil {
		return nil
	}
	out := make([]FeedGroup, len(t.groups))
	for i, g := range t.groups {
		out[i] = g.clone()
	}
	return out
}

// Len returns the number of groups.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.groups)
}

// IsEmpty reports whether the tree has no groups; a nil tree is empty.
func (t *Tree) IsEmpty() bool { return t.Len() == 0 }

// First returns the title of the first group, or false for an empty tree.
func (t *Tree) First() (string, bool) {
	if t.Len() == 0 {
		return "", false
	}
	return t.groups[0].Title, true
}

// Has reports whether title names a group in the tree.
func (t *Tree) Has(title string) bool {
	if t == nil {
		return false
	}
	_, ok := t.index[title]
	return ok
}

// Group looks up a group by title.
func (t *Tree) Group(title string) (FeedGroup, bool) {
	if t == nil {
		return FeedGroup{}, false
	}
	i, ok := t.index[title]
	if !ok {
		return FeedGroup{}, false
	}
	return t.groups[i].clone(), true
}

// Titles returns group titles in display order.
func (t *Tree) Titles() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.groups))
	for i, g := range t.groups {
		out[i] = g.Title
	}
	return out
}
