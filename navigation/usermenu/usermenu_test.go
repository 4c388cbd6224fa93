package usermenu

import (
	"sync"
	"testing"

	"github.com/kastheco/feedr/navigation"
	"github.com/kastheco/feedr/navigation/accordion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenu_Toggle(t *testing.T) {
	m := New()
	assert.False(t, m.IsOpen())

	assert.True(t, m.Toggle())
	assert.True(t, m.IsOpen())

	assert.False(t, m.Toggle())
	assert.False(t, m.IsOpen())
}

func TestMenu_OpenClose(t *testing.T) {
	var m Menu
	m.Open()
	m.Open()
	assert.True(t, m.IsOpen())
	m.Close()
	assert.False(t, m.IsOpen())
}

func TestMenu_IndependentOfAccordion(t *testing.T) {
	tree, err := navigation.NewTree([]navigation.FeedGroup{{Title: "People"}, {Title: "Travel"}})
	require.NoError(t, err)
	c := accordion.New(tree)
	m := New()

	m.Toggle()
	_, err = c.Select("Travel")
	require.NoError(t, err)
	assert.True(t, m.IsOpen())

	c.Reset()
	m.Toggle()
	assert.False(t, m.IsOpen())
	assert.Equal(t, accordion.Expanded("People"), c.Current())
}

func TestMenu_ConcurrentToggle(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Toggle()
		}()
	}
	wg.Wait()
	// An even number of flips returns to closed.
	assert.False(t, m.IsOpen())
}

func TestDefaultActions(t *testing.T) {
	actions := DefaultActions()
	require.Len(t, actions, 3)
	assert.Equal(t, "Account", actions[0].Label)
	assert.Equal(t, ActionSignOut, actions[2].ID)
}
