package tracker

import (
	"time"

	"github.com/mmcdole/readtrack/internal/domain"
)

// ItemDTO is a textual item as serialized by the tracker API
type ItemDTO struct {
	ID              int             `json:"id,omitempty"`
	Title           string          `json:"title"`
	ISBN            string          `json:"isbn"`
	Author          string          `json:"author"`
	Project         *int            `json:"project,omitempty"` // null when unassigned
	ProgressPercent domain.Percent  `json:"progress_percent"`
	CurrentPage     int             `json:"current_page,omitempty"`
	TotalPages      int             `json:"total_pages"`
	Status          string          `json:"status"`
	Rating          *domain.Percent `json:"rating,omitempty"`
}

// ProjectDTO is a reading project as serialized by the tracker API.
// Older backends omit the id.
type ProjectDTO struct {
	ID        int       `json:"id,omitempty"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Items     []ItemDTO `json:"items,omitempty"`
}
