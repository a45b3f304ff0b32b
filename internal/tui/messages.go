package tui

import (
	"github.com/mmcdole/readtrack/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ProjectsLoadedMsg signals that the project list finished loading
type ProjectsLoadedMsg struct {
	Projects []domain.ReadingProject
	Err      error
}

// MetadataLoadedMsg carries a catalog lookup result for the item with Key
type MetadataLoadedMsg struct {
	Key  string
	Meta *domain.BookMetadata
	Err  error
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
