package components

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/mmcdole/readtrack/internal/tui/styles"
)

// Glamour styles accepted by NewInspector
const (
	GlamourDark  = "dark"
	GlamourNoTTY = "notty"
)

// Layout constants for inspector
const (
	InspectorBorderHeight = 2
	inspectorMinWrap      = 20
	inspectorMaxWrap      = 100
)

// Inspector shows the selected item's fields and its catalog metadata.
// Metadata results are matched to the item by key so a late lookup for a
// previously shown item is dropped.
type Inspector struct {
	visible bool
	item    domain.TextualItem
	key     string

	lookups     bool // metadata lookups enabled
	metaLoading bool
	meta        *domain.BookMetadata
	metaErr     error

	width    int
	height   int
	viewport viewport.Model

	glamourStyle  string
	renderer      *glamour.TermRenderer
	rendererWidth int
}

// NewInspector creates a hidden inspector. glamourStyle is a glamour
// standard style name; empty means GlamourDark.
func NewInspector(glamourStyle string) Inspector {
	if glamourStyle == "" {
		glamourStyle = GlamourDark
	}
	return Inspector{
		glamourStyle: glamourStyle,
		viewport:     viewport.New(0, 0),
	}
}

// Show opens the inspector for item. key identifies the card and fences
// metadata responses; lookup marks metadata as pending.
func (i *Inspector) Show(key string, item domain.TextualItem, lookup bool) {
	i.visible = true
	i.item = item
	i.key = key
	i.lookups = lookup
	i.metaLoading = lookup
	i.meta = nil
	i.metaErr = nil
	i.refresh()
	i.viewport.GotoTop()
}

// Hide closes the inspector
func (i *Inspector) Hide() {
	i.visible = false
}

// IsVisible returns whether the inspector is shown
func (i Inspector) IsVisible() bool {
	return i.visible
}

// Key returns the key of the item being shown
func (i Inspector) Key() string {
	return i.key
}

// Item returns the item being shown
func (i Inspector) Item() domain.TextualItem {
	return i.item
}

// MetadataLoading reports whether a lookup is pending
func (i Inspector) MetadataLoading() bool {
	return i.metaLoading
}

// SetMetadata applies a lookup result. Results for another item are ignored;
// the return value reports whether it was applied.
func (i *Inspector) SetMetadata(key string, meta *domain.BookMetadata, err error) bool {
	if !i.visible || key != i.key {
		return false
	}
	i.metaLoading = false
	i.meta = meta
	i.metaErr = err
	i.refresh()
	return true
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
	frameW, _ := styles.InspectorStyle.GetFrameSize()
	i.viewport.Width = max(width-frameW, 1)
	i.viewport.Height = max(height-InspectorBorderHeight, 1)
	if i.visible {
		i.refresh()
	}
}

// Update scrolls the detail pane
func (i Inspector) Update(msg tea.Msg) (Inspector, tea.Cmd) {
	if !i.visible {
		return i, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, InspectorKeys.Up):
			i.viewport.SetYOffset(i.viewport.YOffset - 1)
			return i, nil
		case key.Matches(msg, InspectorKeys.Down):
			i.viewport.SetYOffset(i.viewport.YOffset + 1)
			return i, nil
		}
	}
	var cmd tea.Cmd
	i.viewport, cmd = i.viewport.Update(msg)
	return i, cmd
}

// Markdown builds the detail document for the current state
func (i Inspector) Markdown() string {
	var b strings.Builder
	it := i.item

	fmt.Fprintf(&b, "# %s\n\n", it.Title)
	fmt.Fprintf(&b, "- **Author:** %s\n", it.Author)
	fmt.Fprintf(&b, "- **ISBN:** %s\n", it.ISBN)
	if it.CurrentPage > 0 {
		fmt.Fprintf(&b, "- **Pages:** %d of %d\n", it.CurrentPage, it.TotalPages)
	} else {
		fmt.Fprintf(&b, "- **Pages:** %d\n", it.TotalPages)
	}
	fmt.Fprintf(&b, "- **Progress:** %s%% complete\n", it.ProgressPercent.String())
	fmt.Fprintf(&b, "- **Status:** %s\n", it.Status)
	if it.Rating != nil {
		fmt.Fprintf(&b, "- **Rating:** %s\n", it.Rating.String())
	}
	if scope := it.ProjectScope(); scope != "" {
		fmt.Fprintf(&b, "- **Project:** #%s\n", scope)
	}

	b.WriteString("\n## OpenLibrary\n\n")
	switch {
	case !i.lookups:
		b.WriteString("_Metadata lookups are disabled._\n")
	case i.metaLoading:
		b.WriteString("_Looking up metadata..._\n")
	case errors.Is(i.metaErr, domain.ErrNoMetadata):
		b.WriteString("_No metadata found._\n")
	case i.metaErr != nil:
		b.WriteString("_Metadata lookup failed._\n")
	case i.meta != nil:
		writeMetadata(&b, *i.meta)
	}

	return b.String()
}

func writeMetadata(b *strings.Builder, m domain.BookMetadata) {
	if m.Title != "" {
		fmt.Fprintf(b, "- **Title:** %s\n", m.Title)
	}
	if len(m.Authors) > 0 {
		fmt.Fprintf(b, "- **Authors:** %s\n", strings.Join(m.Authors, ", "))
	}
	if m.FirstPublishYear > 0 {
		fmt.Fprintf(b, "- **First published:** %d\n", m.FirstPublishYear)
	}
	if len(m.Publishers) > 0 {
		fmt.Fprintf(b, "- **Publishers:** %s\n", strings.Join(m.Publishers, ", "))
	}
	if len(m.Subjects) > 0 {
		fmt.Fprintf(b, "- **Subjects:** %s\n", strings.Join(m.Subjects, ", "))
	}
	if m.EditionCount > 0 {
		fmt.Fprintf(b, "- **Editions:** %d\n", m.EditionCount)
	}
}

// refresh re-renders the markdown into the viewport
func (i *Inspector) refresh() {
	md := i.Markdown()
	r, err := i.getRenderer()
	if err != nil {
		i.viewport.SetContent(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		i.viewport.SetContent(md)
		return
	}
	i.viewport.SetContent(strings.TrimRight(out, "\n"))
}

// getRenderer returns a renderer for the current width, rebuilding it only
// when the wrap width changes
func (i *Inspector) getRenderer() (*glamour.TermRenderer, error) {
	wrap := i.viewport.Width - 2
	if wrap < inspectorMinWrap {
		wrap = inspectorMinWrap
	}
	if wrap > inspectorMaxWrap {
		wrap = inspectorMaxWrap
	}

	if i.renderer == nil || i.rendererWidth != wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(i.glamourStyle),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return nil, err
		}
		i.renderer = r
		i.rendererWidth = wrap
	}
	return i.renderer, nil
}

// View renders the component
func (i Inspector) View() string {
	if !i.visible {
		return ""
	}
	frameW, frameH := styles.InspectorStyle.GetFrameSize()
	style := styles.InspectorStyle
	if i.width > 0 {
		style = style.Width(i.width - frameW + styles.InspectorStyle.GetHorizontalPadding())
	}
	if i.height > 0 {
		style = style.Height(i.height - frameH + styles.InspectorStyle.GetVerticalPadding())
	}

	body := i.viewport.View()
	if i.viewport.Height <= 0 || i.viewport.Width <= 0 {
		body = i.Markdown()
	}
	return style.Render(body)
}
