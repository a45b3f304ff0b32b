package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/mmcdole/readtrack/internal/tui/styles"
)

// AllItemsLabel is the picker entry that clears the scope
const AllItemsLabel = "All items"

const pickerMaxVisible = 10

// ProjectEntry is one selectable scope in the picker
type ProjectEntry struct {
	Scope string // "" selects all items
	Label string
}

// ProjectPicker is a modal for choosing the project scope
type ProjectPicker struct {
	visible  bool
	loading  bool
	err      error
	entries  []ProjectEntry
	filtered []int // indices into entries, best match first
	cursor   int
	offset   int
	active   string
	input    textinput.Model
	width    int
}

// NewProjectPicker creates a hidden project picker
func NewProjectPicker() ProjectPicker {
	ti := textinput.New()
	ti.Placeholder = "search projects..."
	ti.Prompt = "> "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.CharLimit = 100

	return ProjectPicker{
		input: ti,
		width: 50,
	}
}

// Show opens the picker in the loading state. active is the current scope.
func (p *ProjectPicker) Show(active string) tea.Cmd {
	p.visible = true
	p.loading = true
	p.err = nil
	p.active = active
	p.entries = []ProjectEntry{{Scope: "", Label: AllItemsLabel}}
	p.input.SetValue("")
	p.applyFilter()
	return p.input.Focus()
}

// Hide dismisses the picker
func (p *ProjectPicker) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the picker is shown
func (p ProjectPicker) IsVisible() bool {
	return p.visible
}

// Loading reports whether projects are still being fetched
func (p ProjectPicker) Loading() bool {
	return p.loading
}

// SetWidth sets the modal width
func (p *ProjectPicker) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	p.width = width
}

// SetProjects fills the picker. An error is shown only when there is
// nothing to pick besides "All items".
func (p *ProjectPicker) SetProjects(projects []domain.ReadingProject, err error) {
	p.loading = false
	p.entries = []ProjectEntry{{Scope: "", Label: AllItemsLabel}}
	for _, proj := range projects {
		scope := proj.Scope()
		if scope == "" {
			continue
		}
		p.entries = append(p.entries, ProjectEntry{
			Scope: scope,
			Label: fmt.Sprintf("%s (#%s)", proj.Name, scope),
		})
	}
	if len(p.entries) == 1 {
		p.err = err
	}
	p.applyFilter()

	// Start on the active scope
	for i, idx := range p.filtered {
		if p.entries[idx].Scope == p.active {
			p.cursor = i
			break
		}
	}
	p.ensureVisible()
}

// Entries returns the entries currently shown, best match first
func (p ProjectPicker) Entries() []ProjectEntry {
	out := make([]ProjectEntry, len(p.filtered))
	for i, idx := range p.filtered {
		out[i] = p.entries[idx]
	}
	return out
}

// HandleKey processes a key press. A non-nil selection means the user chose
// an entry; the picker hides itself in that case.
func (p *ProjectPicker) HandleKey(msg tea.KeyMsg) (handled bool, selection *ProjectEntry, cmd tea.Cmd) {
	if !p.visible {
		return false, nil, nil
	}
	keys := ProjectPickerKeys

	switch {
	case key.Matches(msg, keys.Escape):
		p.Hide()
		return true, nil, nil
	case key.Matches(msg, keys.Enter):
		if p.cursor < 0 || p.cursor >= len(p.filtered) {
			return true, nil, nil
		}
		entry := p.entries[p.filtered[p.cursor]]
		p.Hide()
		return true, &entry, nil
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
			p.ensureVisible()
		}
		return true, nil, nil
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
			p.ensureVisible()
		}
		return true, nil, nil
	}

	p.input, cmd = p.input.Update(msg)
	p.applyFilter()
	return true, nil, cmd
}

func (p *ProjectPicker) applyFilter() {
	query := strings.TrimSpace(p.input.Value())
	p.cursor = 0
	p.offset = 0

	if query == "" {
		p.filtered = make([]int, len(p.entries))
		for i := range p.entries {
			p.filtered[i] = i
		}
		return
	}

	labels := make([]string, len(p.entries))
	for i, e := range p.entries {
		labels[i] = e.Label
	}
	ranks := fuzzy.RankFindFold(query, labels)
	sort.Sort(ranks)

	p.filtered = make([]int, len(ranks))
	for i, r := range ranks {
		p.filtered[i] = r.OriginalIndex
	}
}

func (p *ProjectPicker) ensureVisible() {
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+pickerMaxVisible {
		p.offset = p.cursor - pickerMaxVisible + 1
	}
}

// View renders the picker modal
func (p ProjectPicker) View() string {
	if !p.visible {
		return ""
	}
	inner := p.width - 4

	var lines []string
	lines = append(lines, p.input.View(), "")

	switch {
	case p.err != nil:
		lines = append(lines, styles.ErrorStyle.Render("Failed to load projects"))
	case p.loading:
		lines = append(lines, styles.DimStyle.Render("Loading projects..."))
	}

	if len(p.filtered) == 0 {
		lines = append(lines, styles.DimStyle.Render("No matching projects"))
	}

	end := min(p.offset+pickerMaxVisible, len(p.filtered))
	for i := p.offset; i < end; i++ {
		entry := p.entries[p.filtered[i]]
		prefix := "  "
		if entry.Scope == p.active {
			prefix = "✓ "
		}
		text := styles.Pad(styles.Truncate(prefix+entry.Label, inner), inner)

		switch {
		case i == p.cursor:
			lines = append(lines, styles.SelectedRowStyle.Render(text))
		case entry.Scope == p.active:
			lines = append(lines, styles.ActiveRowStyle.Render(text))
		default:
			lines = append(lines, styles.NormalRowStyle.Render(text))
		}
	}

	if len(p.filtered) > pickerMaxVisible {
		lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("%d/%d", p.cursor+1, len(p.filtered))))
	}

	return styles.ModalStyle.Width(p.width - 2).Render(
		styles.ModalTitleStyle.Render("Projects") + "\n" + strings.Join(lines, "\n"),
	)
}
