package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/readtrack/internal/domain"
)

// MetadataService looks up book metadata through the local store
type MetadataService struct {
	repo    domain.MetadataRepository
	store   domain.Store
	enabled bool
	logger  *slog.Logger
}

// NewMetadataService creates a new metadata service. store may be nil.
func NewMetadataService(repo domain.MetadataRepository, store domain.Store, enabled bool, logger *slog.Logger) *MetadataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MetadataService{
		repo:    repo,
		store:   store,
		enabled: enabled && repo != nil,
		logger:  logger,
	}
}

// Enabled reports whether lookups are allowed
func (s *MetadataService) Enabled() bool {
	return s.enabled
}

// Lookup returns metadata for item, from the store when cached
func (s *MetadataService) Lookup(ctx context.Context, item domain.TextualItem) (*domain.BookMetadata, error) {
	if !s.enabled {
		return nil, domain.ErrMetadataDisabled
	}

	query := domain.MetadataQuery(item.Title, item.ISBN)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	if s.store != nil {
		if meta, ok := s.store.GetMetadata(query); ok {
			s.logger.Debug("metadata cache hit", "query", query)
			return meta, nil
		}
	}

	meta, err := s.repo.LookupMetadata(ctx, item.Title, item.ISBN)
	if err != nil {
		s.logger.Warn("metadata lookup failed", "query", query, "error", err)
		return nil, err
	}

	if s.store != nil {
		if err := s.store.SaveMetadata(query, meta); err != nil {
			s.logger.Warn("failed to cache metadata", "query", query, "error", err)
		}
	}

	return meta, nil
}
