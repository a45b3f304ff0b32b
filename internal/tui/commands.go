package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/mmcdole/readtrack/internal/service"
)

// Command factories for async operations

// LoadProjectsCmd loads the reader's projects for the picker
func LoadProjectsCmd(svc *service.ItemService, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		projects, err := svc.ListProjects(ctx)
		return ProjectsLoadedMsg{Projects: projects, Err: err}
	}
}

// LookupMetadataCmd looks up catalog metadata for the card identified by key
func LookupMetadataCmd(svc *service.MetadataService, key string, item domain.TextualItem, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		meta, err := svc.Lookup(ctx, item)
		return MetadataLoadedMsg{Key: key, Meta: meta, Err: err}
	}
}

// SaveProjectCmd persists the chosen scope
func SaveProjectCmd(store domain.Store, scope string) tea.Cmd {
	return func() tea.Msg {
		if err := store.SaveLastProject(scope); err != nil {
			return ErrMsg{Err: err, Context: "saving project"}
		}
		return nil
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
