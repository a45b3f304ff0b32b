package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/readtrack/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, even while typing
	if msg.Type == tea.KeyCtrlC {
		cmd := m.quit()
		return m, cmd
	}

	// Handle state-specific keys
	if m.State == StateHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil
	}

	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// Filter typing owns the keyboard
	if m.List.IsFilterTyping() {
		var cmd tea.Cmd
		m.List, cmd = m.List.Update(msg)
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		cmd := m.quit()
		return m, cmd

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		cmd := m.List.Refresh()
		return m, cmd

	case key.Matches(msg, Keys.Projects):
		m.Picker.SetWidth(min(m.Width-4, 60))
		cmd := m.Picker.Show(m.List.Scope())
		return m, tea.Batch(cmd, LoadProjectsCmd(m.ItemSvc, m.opts.Timeout))

	case key.Matches(msg, Keys.AllItems):
		cmd := m.setScope("", "")
		return m, cmd

	case key.Matches(msg, Keys.Details):
		cmd := m.showDetails()
		return m, cmd

	case key.Matches(msg, Keys.Filter):
		if !m.List.Loaded() {
			return m, nil
		}
		cmd := m.List.StartFilter()
		m.updateLayout()
		return m, cmd

	case key.Matches(msg, Keys.Sort):
		if m.List.Loaded() {
			m.SortModal.Show(components.CardSortOptions(), m.List.Sort())
		}
		return m, nil
	}

	// Navigation and filter clearing go to the list
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// routeToModal sends the key to the visible modal. handled is false when no
// modal is open.
func (m Model) routeToModal(msg tea.KeyMsg) (handled bool, model tea.Model, cmd tea.Cmd) {
	switch {
	case m.Picker.IsVisible():
		_, selection, cmd := m.Picker.HandleKey(msg)
		if selection != nil {
			scopeCmd := m.setScope(selection.Scope, selection.Label)
			return true, m, tea.Batch(cmd, scopeCmd)
		}
		return true, m, cmd

	case m.SortModal.IsVisible():
		if _, selection := m.SortModal.HandleKey(msg.String()); selection != nil {
			m.List.SetSort(*selection)
		}
		return true, m, nil

	case m.Inspector.IsVisible():
		if key.Matches(msg, components.InspectorKeys.Close) {
			m.Inspector.Hide()
			m.updateLayout()
			return true, m, nil
		}
		m.Inspector, cmd = m.Inspector.Update(msg)
		return true, m, cmd
	}
	return false, m, nil
}
