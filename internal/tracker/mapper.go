package tracker

import "github.com/mmcdole/readtrack/internal/domain"

// MapItems converts API items to domain items, preserving order
func MapItems(dtos []ItemDTO) []domain.TextualItem {
	items := make([]domain.TextualItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, mapItem(d))
	}
	return items
}

func mapItem(d ItemDTO) domain.TextualItem {
	item := domain.TextualItem{
		ID:              d.ID,
		Title:           d.Title,
		Author:          d.Author,
		ISBN:            d.ISBN,
		TotalPages:      d.TotalPages,
		CurrentPage:     d.CurrentPage,
		ProgressPercent: d.ProgressPercent,
		Status:          domain.ReadingStatus(d.Status),
		Rating:          d.Rating,
	}
	if d.Project != nil {
		item.Project = *d.Project
	}
	return item
}

// MapProjects converts API projects to domain projects. A project serialized
// without an id takes the project id carried by its items.
func MapProjects(dtos []ProjectDTO) []domain.ReadingProject {
	projects := make([]domain.ReadingProject, 0, len(dtos))
	for _, d := range dtos {
		items := MapItems(d.Items)
		id := d.ID
		if id == 0 {
			id = projectFromItems(items)
		}
		projects = append(projects, domain.ReadingProject{
			ID:        id,
			Name:      d.Name,
			CreatedAt: d.CreatedAt,
			Items:     items,
		})
	}
	return projects
}

func projectFromItems(items []domain.TextualItem) int {
	for _, it := range items {
		if it.Project != 0 {
			return it.Project
		}
	}
	return 0
}
