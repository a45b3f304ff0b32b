package domain

// Store handles local persistence (BoltDB + memory).
// It never holds item lists; those are always fetched fresh.
type Store interface {
	// === Preferences ===
	GetLastProject() (string, bool)
	SaveLastProject(scope string) error

	// === Metadata cache ===
	GetMetadata(query string) (*BookMetadata, bool)
	SaveMetadata(query string, meta *BookMetadata) error
	InvalidateMetadata()

	Close() error
}
