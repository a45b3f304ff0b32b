package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Amber      = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// SpinnerFrames are the braille frames used for loading indicators
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Text styles
var (
	AppTitleStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Panel styles
var (
	BodyStyle = lipgloss.NewStyle().
			Padding(0, 1)

	InspectorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)
)

// Card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Amber).
				Padding(0, 1)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	CardAuthorStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Italic(true)

	CardDetailStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Amber).
			Padding(0, 1).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Amber)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Amber)
)

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(Amber)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Amber).
				Bold(true)
)

// List row styles (project picker)
var (
	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)

	ActiveRowStyle = lipgloss.NewStyle().
			Foreground(Amber)

	NormalRowStyle = lipgloss.NewStyle().
			Foreground(LightGray)
)

// Status badge styles keyed by status class
var (
	badgeBase = lipgloss.NewStyle().Padding(0, 1)

	statusBadges = map[string]lipgloss.Style{
		"status-completed":      badgeBase.Foreground(SlateDark).Background(Green),
		"status-reading":        badgeBase.Foreground(SlateDark).Background(Amber),
		"status-in-progress":    badgeBase.Foreground(SlateDark).Background(Amber),
		"status-on-hold":        badgeBase.Foreground(White).Background(Blue),
		"status-did-not-finish": badgeBase.Foreground(White).Background(Red),
		"status-not-started":    badgeBase.Foreground(LightGray).Background(SlateLight),
		"status-planned":        badgeBase.Foreground(LightGray).Background(SlateLight),
	}

	neutralBadge = badgeBase.Foreground(White).Background(SlateLight)
)

// StatusBadge returns the badge style for a status class; unknown classes get
// the neutral style
func StatusBadge(class string) lipgloss.Style {
	if s, ok := statusBadges[class]; ok {
		return s
	}
	return neutralBadge
}

// HasStatusBadge reports whether class has a dedicated style
func HasStatusBadge(class string) bool {
	_, ok := statusBadges[class]
	return ok
}

// Helper functions

// Truncate truncates a string to the given display width with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// Pad pads a string with spaces to the given display width
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
