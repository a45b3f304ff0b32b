package components

import (
	"errors"
	"testing"

	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProjects() []domain.ReadingProject {
	return []domain.ReadingProject{
		{ID: 5, Name: "Classics"},
		{ID: 7, Name: "Sci-fi"},
		{Name: "No id"},
	}
}

func labels(entries []ProjectEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}

func TestProjectPicker_ShowStartsLoading(t *testing.T) {
	p := NewProjectPicker()
	p.Show("")

	assert.True(t, p.IsVisible())
	assert.True(t, p.Loading())
	assert.Equal(t, []string{AllItemsLabel}, labels(p.Entries()))
	assert.Contains(t, p.View(), "Loading projects...")
}

func TestProjectPicker_Entries(t *testing.T) {
	p := NewProjectPicker()
	p.Show("")
	p.SetProjects(sampleProjects(), nil)

	assert.False(t, p.Loading())
	assert.Equal(t, []string{AllItemsLabel, "Classics (#5)", "Sci-fi (#7)"}, labels(p.Entries()))
	assert.Contains(t, p.View(), "Classics (#5)")
}

func TestProjectPicker_FilterAndSelect(t *testing.T) {
	p := NewProjectPicker()
	p.Show("")
	p.SetProjects(sampleProjects(), nil)

	for _, r := range "sci" {
		p.HandleKey(keyMsg(string(r)))
	}
	require.Equal(t, []string{"Sci-fi (#7)"}, labels(p.Entries()))

	handled, sel, _ := p.HandleKey(keyMsg("enter"))
	assert.True(t, handled)
	require.NotNil(t, sel)
	assert.Equal(t, "7", sel.Scope)
	assert.False(t, p.IsVisible())
}

func TestProjectPicker_CursorStartsOnActiveScope(t *testing.T) {
	p := NewProjectPicker()
	p.Show("7")
	p.SetProjects(sampleProjects(), nil)

	_, sel, _ := p.HandleKey(keyMsg("enter"))
	require.NotNil(t, sel)
	assert.Equal(t, "7", sel.Scope)
}

func TestProjectPicker_Navigation(t *testing.T) {
	p := NewProjectPicker()
	p.Show("")
	p.SetProjects(sampleProjects(), nil)

	p.HandleKey(keyMsg("down"))
	p.HandleKey(keyMsg("down"))
	p.HandleKey(keyMsg("down")) // clamped at the end
	p.HandleKey(keyMsg("up"))

	_, sel, _ := p.HandleKey(keyMsg("enter"))
	require.NotNil(t, sel)
	assert.Equal(t, "5", sel.Scope)
}

func TestProjectPicker_AllItems(t *testing.T) {
	p := NewProjectPicker()
	p.Show("5")
	p.SetProjects(sampleProjects(), nil)
	p.HandleKey(keyMsg("up"))

	_, sel, _ := p.HandleKey(keyMsg("enter"))
	require.NotNil(t, sel)
	assert.Equal(t, "", sel.Scope)
	assert.Equal(t, AllItemsLabel, sel.Label)
}

func TestProjectPicker_Escape(t *testing.T) {
	p := NewProjectPicker()
	p.Show("")
	handled, sel, _ := p.HandleKey(keyMsg("esc"))
	assert.True(t, handled)
	assert.Nil(t, sel)
	assert.False(t, p.IsVisible())

	handled, _, _ = p.HandleKey(keyMsg("x"))
	assert.False(t, handled, "hidden picker ignores keys")
}

func TestProjectPicker_ErrorOnlyWhenNothingToPick(t *testing.T) {
	p := NewProjectPicker()
	p.Show("")
	p.SetProjects(nil, errors.New("offline"))
	assert.Contains(t, p.View(), "Failed to load projects")

	p.Show("")
	p.SetProjects(sampleProjects()[:1], errors.New("offline"))
	assert.NotContains(t, p.View(), "Failed to load projects")
}
