package domain

import "context"

// ItemRepository lists textual items from the tracker backend
type ItemRepository interface {
	// ListItems returns all items, or only those in the project named by scope
	// when scope is non-empty
	ListItems(ctx context.Context, scope string) ([]TextualItem, error)
}

// ProjectRepository lists reading projects
type ProjectRepository interface {
	// ListProjects returns projects, filtered by reader name when non-empty
	ListProjects(ctx context.Context, reader string) ([]ReadingProject, error)
}

// TrackerSource combines the backend repositories
type TrackerSource interface {
	ItemRepository
	ProjectRepository
}

// MetadataRepository looks up bibliographic data by ISBN or title
type MetadataRepository interface {
	LookupMetadata(ctx context.Context, title, isbn string) (*BookMetadata, error)
}
