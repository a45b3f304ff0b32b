package domain

import (
	"strconv"
	"strings"
	"time"
)

// ReadingStatus is the backend's reading state for a textual item
type ReadingStatus string

const (
	StatusNotStarted   ReadingStatus = "Not Started"
	StatusInProgress   ReadingStatus = "In Progress"
	StatusCompleted    ReadingStatus = "Completed"
	StatusDidNotFinish ReadingStatus = "Did Not Finish"
	StatusOnHold       ReadingStatus = "On Hold"
	StatusPlanned      ReadingStatus = "Planned"

	// StatusReading is an older spelling still returned by some backends
	StatusReading ReadingStatus = "Reading"
)

// TextualItem is one entry in a reading project (book, article, paper).
// The client treats it as display-only data.
type TextualItem struct {
	ID              int           `json:"id,omitempty"`
	Title           string        `json:"title"`
	Author          string        `json:"author"`
	ISBN            string        `json:"isbn"`
	Project         int           `json:"project,omitempty"`
	TotalPages      int           `json:"total_pages"`
	CurrentPage     int           `json:"current_page,omitempty"`
	ProgressPercent Percent       `json:"progress_percent"`
	Status          ReadingStatus `json:"status"`
	Rating          *Percent      `json:"rating,omitempty"`
}

// Key returns a stable identifier for rendering and selection.
// Prefers the server id; otherwise ISBN (or title and author) qualified by
// project, since the backend lists the same book once per project.
func (t TextualItem) Key() string {
	if t.ID != 0 {
		return "id:" + strconv.Itoa(t.ID)
	}

	key := "isbn:" + t.ISBN
	if t.ISBN == "" {
		key = "title:" + t.Title
		if t.Author != "" {
			key += "|author:" + t.Author
		}
	}
	if t.Project != 0 {
		key += "@project:" + strconv.Itoa(t.Project)
	}
	return key
}

// UniqueKeys returns one key per item, in order. Items whose Key repeats get
// an occurrence suffix ("#2", "#3") so every record stays addressable.
func UniqueKeys(items []TextualItem) []string {
	keys := make([]string, len(items))
	seen := make(map[string]int, len(items))
	for i, it := range items {
		k := it.Key()
		seen[k]++
		if n := seen[k]; n > 1 {
			k += "#" + strconv.Itoa(n)
		}
		keys[i] = k
	}
	return keys
}

// StatusClass returns the display class for the item's status, e.g. "status-reading"
func (t TextualItem) StatusClass() string {
	return "status-" + StatusSlug(string(t.Status))
}

// ProjectScope returns the project id as a scope identifier ("" when unassigned)
func (t TextualItem) ProjectScope() string {
	if t.Project == 0 {
		return ""
	}
	return strconv.Itoa(t.Project)
}

// ReadingProject groups textual items for a reader
type ReadingProject struct {
	ID        int           `json:"id,omitempty"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	Items     []TextualItem `json:"items,omitempty"`
}

// Scope returns the project id as a scope identifier ("" when the backend omitted it)
func (p ReadingProject) Scope() string {
	if p.ID == 0 {
		return ""
	}
	return strconv.Itoa(p.ID)
}

// Summary aggregates a list of textual items
type Summary struct {
	Items     int
	Books     int // items with a known page count
	Pages     int
	Completed int
}

// Summarize computes totals over items
func Summarize(items []TextualItem) Summary {
	s := Summary{Items: len(items)}
	for _, it := range items {
		if it.TotalPages > 0 {
			s.Books++
		}
		s.Pages += it.TotalPages
		if it.Status == StatusCompleted {
			s.Completed++
		}
	}
	return s
}

// BookMetadata is bibliographic data looked up from an external catalog
type BookMetadata struct {
	Query            string   `json:"query"`
	Title            string   `json:"title"`
	Authors          []string `json:"authors,omitempty"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	Publishers       []string `json:"publishers,omitempty"`
	Subjects         []string `json:"subjects,omitempty"`
	EditionCount     int      `json:"edition_count,omitempty"`
	NumFound         int      `json:"num_found"`
}

// MetadataQuery returns the catalog search term for an item: the ISBN when
// present since it is more precise, otherwise the title.
func MetadataQuery(title, isbn string) string {
	if isbn = strings.TrimSpace(isbn); isbn != "" {
		return isbn
	}
	return strings.TrimSpace(title)
}
