package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(idx []int) []string {
	items := sampleItems()
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = items[j].Title
	}
	return out
}

func TestSortItemIndices(t *testing.T) {
	items := sampleItems()

	assert.Equal(t, []string{"Dune", "Emma", "Neuromancer"},
		titles(SortItemIndices(items, SortSelection{Field: SortDefault})))
	assert.Equal(t, []string{"Neuromancer", "Emma", "Dune"},
		titles(SortItemIndices(items, SortSelection{Field: SortDefault, Direction: SortDesc})))
	assert.Equal(t, []string{"Neuromancer", "Emma", "Dune"},
		titles(SortItemIndices(items, SortSelection{Field: SortAuthor, Direction: SortDesc})))
	assert.Equal(t, []string{"Neuromancer", "Dune", "Emma"},
		titles(SortItemIndices(items, SortSelection{Field: SortProgress})))
	assert.Equal(t, []string{"Emma", "Neuromancer", "Dune"},
		titles(SortItemIndices(items, SortSelection{Field: SortStatus})))
}

func TestSortModal_SelectAndToggle(t *testing.T) {
	m := NewSortModal()
	handled, sel := m.HandleKey("j")
	assert.False(t, handled, "hidden modal ignores keys")
	assert.Nil(t, sel)

	m.Show(CardSortOptions(), SortSelection{Field: SortDefault})
	require.True(t, m.IsVisible())
	assert.Contains(t, m.View(), "Sort by")

	m.HandleKey("j")
	_, sel = m.HandleKey("enter")
	require.NotNil(t, sel)
	assert.Equal(t, SortTitle, sel.Field)
	assert.Equal(t, SortAsc, sel.Direction)
	assert.False(t, m.IsVisible())

	// Choosing the active field flips the direction
	m.Show(CardSortOptions(), *sel)
	_, sel = m.HandleKey("enter")
	require.NotNil(t, sel)
	assert.Equal(t, SortTitle, sel.Field)
	assert.Equal(t, SortDesc, sel.Direction)
}

func TestSortModal_Escape(t *testing.T) {
	m := NewSortModal()
	m.Show(CardSortOptions(), SortSelection{})
	handled, sel := m.HandleKey("esc")
	assert.True(t, handled)
	assert.Nil(t, sel)
	assert.False(t, m.IsVisible())
}
