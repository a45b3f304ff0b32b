package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/readtrack/internal/domain"
	"github.com/mmcdole/readtrack/internal/tui/styles"
)

// scopeLabel names a scope for the footer
func scopeLabel(scope string) string {
	if scope == "" {
		return "All items"
	}
	return "Project #" + scope
}

// SummaryLine formats the totals shown under the list
func SummaryLine(s domain.Summary) string {
	return fmt.Sprintf("%d items · %d books · %d pages · %d completed",
		s.Items, s.Books, s.Pages, s.Completed)
}

// renderMain renders the heading, the list with optional inspector, the
// footer and any open modal
func (m Model) renderMain() string {
	header := styles.AppTitleStyle.Render(AppTitle)

	list := styles.BodyStyle.Render(m.List.View())
	content := list
	if m.Inspector.IsVisible() {
		layout := m.calculateLayout(m.Width)
		if m.Width > 0 {
			list = lipgloss.NewStyle().Width(layout.listWidth).Render(list)
		}
		content = lipgloss.JoinHorizontal(lipgloss.Top, list, m.Inspector.View())
	}
	if m.Height > 0 {
		content = lipgloss.NewStyle().Height(max(m.Height-ChromeHeight, 1)).Render(content)
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		m.renderFooter(),
	)

	// Overlay picker if visible
	if m.Picker.IsVisible() {
		view = m.overlay(m.Picker.View())
	}

	// Overlay sort modal if visible
	if m.SortModal.IsVisible() {
		view = m.overlay(m.SortModal.View())
	}

	return view
}

// overlay centers a modal in the window
func (m Model) overlay(modal string) string {
	if m.Width == 0 || m.Height == 0 {
		return modal
	}
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, modal)
}

// renderFooter renders a single-line footer: status or summary on the left,
// key help on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.DimStyle.Render(m.StatusMsg)
	case m.List.Loaded():
		left = styles.AccentStyle.Render(m.ScopeLabel) + styles.DimStyle.Render(" · "+SummaryLine(domain.Summarize(m.List.Items())))
	default:
		left = styles.AccentStyle.Render(m.ScopeLabel)
	}

	right := m.Help.ShortHelpView(Keys.ShortHelp())

	if m.Width == 0 {
		return left + "  " + right
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Not enough space - drop the help
		right = styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")
		gap = max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	h := m.Help
	h.ShowAll = true
	content := styles.ModalTitleStyle.Render("Keys") + "\n" +
		h.View(Keys) + "\n\n" +
		styles.DimStyle.Render("Press ? or esc to return...")

	return m.overlay(styles.ModalStyle.Render(content))
}
