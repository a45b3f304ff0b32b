package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/mmcdole/readtrack/internal/tracker"
)

// ItemService loads textual items and projects from the tracker backend.
// It never caches item lists: every call is one request.
type ItemService struct {
	source domain.TrackerSource
	reader string
	logger *slog.Logger
}

// NewItemService creates a new item service. reader filters ListProjects.
func NewItemService(source domain.TrackerSource, reader string, logger *slog.Logger) *ItemService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemService{
		source: source,
		reader: reader,
		logger: logger,
	}
}

// ListItems fetches items for scope ("" = all). Any failure is wrapped in
// domain.ErrFetchFailed with the cause kept for inspection.
func (s *ItemService) ListItems(ctx context.Context, scope string) ([]domain.TextualItem, error) {
	requestID := uuid.NewString()
	ctx = tracker.WithRequestID(ctx, requestID)
	start := time.Now()

	items, err := s.source.ListItems(ctx, scope)
	if err != nil {
		if ctx.Err() != nil {
			s.logger.Debug("item fetch abandoned", "scope", scope, "request_id", requestID, "error", err)
		} else {
			s.logger.Error("item fetch failed", "scope", scope, "request_id", requestID, "error", err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
	}

	s.logger.Info("items loaded",
		"scope", scope,
		"count", len(items),
		"request_id", requestID,
		"elapsed", time.Since(start),
	)
	return items, nil
}

// ListProjects fetches the configured reader's projects
func (s *ItemService) ListProjects(ctx context.Context) ([]domain.ReadingProject, error) {
	ctx = tracker.WithRequestID(ctx, uuid.NewString())

	projects, err := s.source.ListProjects(ctx, s.reader)
	if err != nil {
		s.logger.Error("project fetch failed", "reader", s.reader, "error", err)
		return nil, err
	}

	s.logger.Info("projects loaded", "reader", s.reader, "count", len(projects))
	return projects, nil
}

// DeriveProjects builds pickable projects from the distinct project ids in
// items, for backends whose project listing omits ids. Sorted by id.
func DeriveProjects(items []domain.TextualItem) []domain.ReadingProject {
	seen := make(map[int]bool)
	var projects []domain.ReadingProject

	for _, it := range items {
		if it.Project == 0 || seen[it.Project] {
			continue
		}
		seen[it.Project] = true
		projects = append(projects, domain.ReadingProject{
			ID:   it.Project,
			Name: "Project " + strconv.Itoa(it.Project),
		})
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects
}

// ScopedProjects keeps the projects that can be used as a scope (have an id).
// When none qualify it falls back to DeriveProjects(items).
func ScopedProjects(projects []domain.ReadingProject, items []domain.TextualItem) []domain.ReadingProject {
	var scoped []domain.ReadingProject
	for _, p := range projects {
		if p.Scope() != "" {
			scoped = append(scoped, p)
		}
	}
	if len(scoped) > 0 {
		return scoped
	}
	return DeriveProjects(items)
}
