package components

import (
	"sort"
	"strings"

	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/mmcdole/readtrack/internal/tui/styles"
)

// SortField represents a card field to sort by
type SortField int

const (
	SortDefault SortField = iota // server order
	SortTitle
	SortAuthor
	SortProgress
	SortStatus
)

// String returns the display name for the sort field
func (f SortField) String() string {
	switch f {
	case SortDefault:
		return "Default"
	case SortTitle:
		return "Title"
	case SortAuthor:
		return "Author"
	case SortProgress:
		return "Progress"
	case SortStatus:
		return "Status"
	default:
		return "Unknown"
	}
}

// SortDirection represents sort direction
type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

// DefaultDirection returns the default sort direction for a field
func DefaultDirection(field SortField) SortDirection {
	if field == SortProgress {
		return SortDesc // furthest along first
	}
	return SortAsc
}

// CardSortOptions returns the available sort options for cards
func CardSortOptions() []SortField {
	return []SortField{SortDefault, SortTitle, SortAuthor, SortProgress, SortStatus}
}

// SortSelection represents the user's sort choice
type SortSelection struct {
	Field     SortField
	Direction SortDirection
}

// SortItemIndices returns the indices of items ordered by the selection.
// The sort is stable so equal keys keep server order.
func SortItemIndices(items []domain.TextualItem, sel SortSelection) []int {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	if sel.Field == SortDefault {
		if sel.Direction == SortDesc {
			for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
				idx[i], idx[j] = idx[j], idx[i]
			}
		}
		return idx
	}

	less := func(a, b domain.TextualItem) bool {
		switch sel.Field {
		case SortTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortAuthor:
			return strings.ToLower(a.Author) < strings.ToLower(b.Author)
		case SortProgress:
			return a.ProgressPercent < b.ProgressPercent
		case SortStatus:
			return a.StatusClass() < b.StatusClass()
		}
		return false
	}

	sort.SliceStable(idx, func(i, j int) bool {
		a, b := items[idx[i]], items[idx[j]]
		if sel.Direction == SortDesc {
			return less(b, a)
		}
		return less(a, b)
	})
	return idx
}

// SortModal is a small popup for choosing card order
type SortModal struct {
	visible     bool
	options     []SortField
	cursor      int
	activeField SortField
	activeDir   SortDirection
}

// NewSortModal creates a new sort modal
func NewSortModal() SortModal {
	return SortModal{}
}

// Show displays the modal with the given options and current sort state
func (m *SortModal) Show(options []SortField, active SortSelection) {
	m.visible = true
	m.options = options
	m.activeField = active.Field
	m.activeDir = active.Direction
	m.cursor = 0
	for i, opt := range options {
		if opt == active.Field {
			m.cursor = i
			break
		}
	}
}

// Hide dismisses the modal
func (m *SortModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m SortModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press, returns (handled, selection).
// If selection is non-nil, the user confirmed a choice.
func (m *SortModal) HandleKey(key string) (handled bool, selection *SortSelection) {
	if !m.visible {
		return false, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return true, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, nil
	case "enter":
		if len(m.options) == 0 {
			m.visible = false
			return true, nil
		}
		chosen := m.options[m.cursor]
		dir := DefaultDirection(chosen)
		if chosen == m.activeField {
			// Toggle direction
			if m.activeDir == SortAsc {
				dir = SortDesc
			} else {
				dir = SortAsc
			}
		}
		m.visible = false
		return true, &SortSelection{Field: chosen, Direction: dir}
	case "esc", "s":
		m.visible = false
		return true, nil
	}

	return true, nil // consume all keys when visible
}

// View renders the sort modal
func (m SortModal) View() string {
	if !m.visible || len(m.options) == 0 {
		return ""
	}

	var lines []string
	for i, opt := range m.options {
		isActive := opt == m.activeField

		prefix := "  "
		if isActive {
			prefix = "✓ "
		}

		var suffix string
		if isActive {
			if m.activeDir == SortAsc {
				suffix = " ↑"
			} else {
				suffix = " ↓"
			}
		}

		text := styles.Pad(prefix+opt.String()+suffix, 20)

		switch {
		case i == m.cursor:
			lines = append(lines, styles.SelectedRowStyle.Render(text))
		case isActive:
			lines = append(lines, styles.ActiveRowStyle.Render(text))
		default:
			lines = append(lines, styles.NormalRowStyle.Render(text))
		}
	}

	return styles.ModalStyle.Render(styles.ModalTitleStyle.Render("Sort by") + "\n" + strings.Join(lines, "\n"))
}
