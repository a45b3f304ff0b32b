package tui

// Layout proportions
const (
	// List/inspector split when the detail pane is open
	ListColumnPercent = 55

	MinColumnWidth = 20

	// Heading line + footer line
	ChromeHeight = 2
)

// paneLayout holds calculated widths for the View
type paneLayout struct {
	listWidth      int
	inspectorWidth int // 0 if not shown
}

// calculateLayout computes pane widths based on inspector visibility
func (m Model) calculateLayout(availableWidth int) paneLayout {
	if !m.Inspector.IsVisible() {
		return paneLayout{listWidth: availableWidth}
	}
	listWidth := max(availableWidth*ListColumnPercent/100, MinColumnWidth)
	return paneLayout{
		listWidth:      listWidth,
		inspectorWidth: max(availableWidth-listWidth, MinColumnWidth),
	}
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := max(m.Height-ChromeHeight, 1)
	layout := m.calculateLayout(m.Width)

	// BodyStyle pads one column on each side
	m.List.SetSize(max(layout.listWidth-2, 1), contentHeight)
	if layout.inspectorWidth > 0 {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	}
	m.Picker.SetWidth(min(m.Width-4, 60))
	m.Help.Width = m.Width
}
