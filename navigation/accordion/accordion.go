// Package accordion implements the single-expansion state machine that
// decides which feed group is open in the sidebar.
package accordion

import (
	"fmt"

	"github.com/kastheco/feedr/navigation"
)

// State is either Collapsed or Expanded(title). The zero value is Collapsed.
type State struct {
	title    string
	expanded bool
}

// Collapsed returns the "nothing expanded" state.
func Collapsed() State { return State{} }

// Expanded returns the state in which the group titled title is open.
func Expanded(title string) State { return State{title: title, expanded: true} }

func (s State) IsExpanded() bool { return s.expanded }

// Title returns the expanded group's title, or "" when collapsed.
func (s State) Title() string { return s.title }

// Is reports whether the group titled title is the expanded one.
func (s State) Is(title string) bool { return s.expanded && s.title == title }

func (s State) String() string {
	if !s.expanded {
		return "collapsed"
	}
	return fmt.Sprintf("expanded(%s)", s.title)
}

// Next returns the state reached by selecting title from current: selecting
// the open group closes it, anything else opens title.
func Next(current State, title string) State {
	if current.Is(title) {
		return Collapsed()
	}
	return Expanded(title)
}

// Initial returns the default state for tree: its first group expanded, or
// Collapsed when the tree is empty.
func Initial(tree *navigation.Tree) State {
	if first, ok := tree.First(); ok {
		return Expanded(first)
	}
	return Collapsed()
}

// Controller owns the accordion state for one tree snapshot. It is not safe
// for concurrent use; the UI goroutine is its only writer.
type Controller struct {
	tree    *navigation.Tree
	current State
}

// New returns a controller in the initial state for tree. A nil tree is
// treated as empty.
func New(tree *navigation.Tree) *Controller {
	c := &Controller{tree: tree}
	c.current = Initial(tree)
	return c
}

// Select applies a selection intent. Unknown titles fail with
// *navigation.UnknownGroupIdentityError and leave the state untouched.
func (c *Controller) Select(title string) (State, error) {
	if !c.tree.Has(title) {
		return c.current, &navigation.UnknownGroupIdentityError{Title: title}
	}
	c.current = Next(c.current, title)
	return c.current, nil
}

// Current returns the active state.
func (c *Controller) Current() State { return c.current }

// IsExpanded reports whether title is the open group.
func (c *Controller) IsExpanded(title string) bool { return c.current.Is(title) }

// Reset returns to the initial state derived from the current tree.
func (c *Controller) Reset() State {
	c.current = Initial(c.tree)
	return c.current
}

// Tree returns the snapshot the controller operates on.
func (c *Controller) Tree() *navigation.Tree { return c.tree }

// Reload swaps in a new tree snapshot and resets.
func (c *Controller) Reload(tree *navigation.Tree) State {
	c.tree = tree
	return c.Reset()
}
