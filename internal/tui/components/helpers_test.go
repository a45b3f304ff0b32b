package components

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/readtrack/internal/adapter"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/stretchr/testify/require"
)

func dune() domain.TextualItem {
	return domain.TextualItem{
		Title:           "Dune",
		Author:          "Frank Herbert",
		ISBN:            "9780441013593",
		TotalPages:      412,
		ProgressPercent: 50,
		Status:          domain.StatusReading,
	}
}

func sampleItems() []domain.TextualItem {
	return []domain.TextualItem{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "111", TotalPages: 412, ProgressPercent: 50, Status: domain.StatusReading},
		{ID: 2, Title: "Emma", Author: "Jane Austen", ISBN: "222", TotalPages: 300, ProgressPercent: 100, Status: domain.StatusCompleted},
		{ID: 3, Title: "Neuromancer", Author: "William Gibson", ISBN: "333", TotalPages: 271, ProgressPercent: 10, Status: domain.StatusOnHold},
	}
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
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fakeFetcher records every fetch and answers from a fixed result
type fakeFetcher struct {
	mu     sync.Mutex
	items  []domain.TextualItem
	err    error
	scopes []string
	ctxs   []context.Context
}

func (f *fakeFetcher) Fetch(ctx context.Context, scope string) ([]domain.TextualItem, error) {
	f.mu.Lock()
	f.scopes = append(f.scopes, scope)
	f.ctxs = append(f.ctxs, ctx)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scopes)
}

func newTestList(f *fakeFetcher, scope string) ItemList {
	return NewItemList(f.Fetch, ItemListOptions{Scope: scope, Logger: adapter.NullLogger()})
}

// loadedMsgs runs cmd, expanding batches, and returns the fetch completions.
// Spinner ticks are returned immediately by the spinner so they are cheap to run.
func loadedMsgs(t *testing.T, cmd tea.Cmd) []ItemsLoadedMsg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	var out []ItemsLoadedMsg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, loadedMsgs(t, c)...)
		}
	case ItemsLoadedMsg:
		out = append(out, msg)
	}
	return out
}

// loadedMsg runs cmd and returns its single fetch completion
func loadedMsg(t *testing.T, cmd tea.Cmd) ItemsLoadedMsg {
	t.Helper()
	msgs := loadedMsgs(t, cmd)
	require.Len(t, msgs, 1, "expected exactly one fetch")
	return msgs[0]
}

// loaded returns a list that has completed its first fetch
func loaded(t *testing.T, f *fakeFetcher, width int) ItemList {
	t.Helper()
	l := newTestList(f, "")
	l.SetSize(width, 0)
	l, _ = l.Update(loadedMsg(t, l.Init()))
	return l
}
