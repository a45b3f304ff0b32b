package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCard_Fields(t *testing.T) {
	card := NewCard(dune())

	assert.Equal(t, "isbn:9780441013593", card.Key())
	assert.Equal(t, 50.0, card.Fill())
	assert.Equal(t, "50% complete", card.Label())
	assert.Equal(t, "status-reading", card.StatusClass())
	assert.Equal(t, []string{
		"Dune",
		"by Frank Herbert",
		"ISBN: 9780441013593",
		"412 pages",
		"50% complete",
		"Reading",
	}, card.Lines())
}

func TestCard_FractionalPercent(t *testing.T) {
	it := dune()
	it.ProgressPercent = 33.3
	assert.Equal(t, "33.3% complete", NewCard(it).Label())
}

func TestCard_StatusClasses(t *testing.T) {
	tests := []struct {
		status domain.ReadingStatus
		want   string
	}{
		{domain.StatusDidNotFinish, "status-did-not-finish"},
		{domain.StatusInProgress, "status-in-progress"},
		{domain.StatusCompleted, "status-completed"},
		{"Something New", "status-something-new"},
	}
	for _, tt := range tests {
		it := dune()
		it.Status = tt.status
		assert.Equal(t, tt.want, NewCard(it).StatusClass(), string(tt.status))
	}
}

func TestCard_View(t *testing.T) {
	view := NewCard(dune()).View(CardWidth, false)

	lines := strings.Split(view, "\n")
	assert.Len(t, lines, CardHeight)
	for _, line := range lines {
		assert.Equal(t, CardWidth, lipgloss.Width(line))
	}
	for _, want := range NewCard(dune()).Lines() {
		assert.Contains(t, view, want)
	}
}

func TestCard_ViewTruncatesLongTitle(t *testing.T) {
	it := dune()
	it.Title = strings.Repeat("Long title ", 10)
	view := NewCard(it).View(CardWidth, true)

	assert.Contains(t, view, "...")
	assert.Len(t, strings.Split(view, "\n"), CardHeight)
}
