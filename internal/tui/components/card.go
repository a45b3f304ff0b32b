package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/mmcdole/readtrack/internal/tui/styles"
)

// Card layout constants
const (
	CardWidth  = 36
	CardHeight = 8 // 6 content lines + top/bottom border
	CardGap    = 1
)

// Card is the rendered form of a single textual item
type Card struct {
	Item domain.TextualItem
}

// NewCard creates a card for an item
func NewCard(item domain.TextualItem) Card {
	return Card{Item: item}
}

// Key returns the item's rendering key
func (c Card) Key() string {
	return c.Item.Key()
}

// Fill returns the progress fill as a percentage. The value is not clamped;
// out-of-range values are only clamped when the bar is drawn.
func (c Card) Fill() float64 {
	return c.Item.ProgressPercent.Float()
}

// Label returns the completion caption, e.g. "33.3% complete"
func (c Card) Label() string {
	return c.Item.ProgressPercent.String() + "% complete"
}

// StatusClass returns the badge class for the item's status
func (c Card) StatusClass() string {
	return c.Item.StatusClass()
}

// Lines returns the card's plain content lines, without styling
func (c Card) Lines() []string {
	return []string{
		c.Item.Title,
		"by " + c.Item.Author,
		"ISBN: " + c.Item.ISBN,
		fmt.Sprintf("%d pages", c.Item.TotalPages),
		c.Label(),
		string(c.Item.Status),
	}
}

// View renders the card at the given outer width
func (c Card) View(width int, selected bool) string {
	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	frameW, _ := style.GetFrameSize()
	inner := width - frameW
	if inner < 10 {
		inner = 10
	}

	bar := progress.New(
		progress.WithSolidFill(string(styles.Amber)),
		progress.WithoutPercentage(),
		progress.WithWidth(inner),
	)
	bar.EmptyColor = string(styles.SlateLight)

	badge := styles.StatusBadge(c.StatusClass()).Render(string(c.Item.Status))
	label := styles.CardDetailStyle.Render(c.Label())
	gap := inner - lipgloss.Width(label) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}

	lines := []string{
		styles.CardTitleStyle.Render(styles.Truncate(c.Item.Title, inner)),
		styles.CardAuthorStyle.Render(styles.Truncate("by "+c.Item.Author, inner)),
		styles.CardDetailStyle.Render(styles.Truncate("ISBN: "+c.Item.ISBN, inner)),
		styles.CardDetailStyle.Render(fmt.Sprintf("%d pages", c.Item.TotalPages)),
		bar.ViewAs(c.Fill() / 100),
		label + strings.Repeat(" ", gap) + badge,
	}

	return style.Width(inner + style.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}
