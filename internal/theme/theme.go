package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolists/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps form and overlay content.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// PaneStyle frames a board pane; FocusedPaneStyle frames the active one.
var (
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)
	FocusedPaneStyle = PaneStyle.
				BorderForeground(ColorBlue)
)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// DimmedStyle renders completed and busy rows.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// DoneStyle renders the title of a completed task.
var DoneStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ErrorBannerStyle renders the global error message.
var ErrorBannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(ColorRed).
	Padding(0, 1)

// InputErrorStyle renders validation errors below text inputs.
var InputErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed)

// StatusStyle returns a color-coded style for the given task status.
func StatusStyle(status model.TaskStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case model.TaskStatusNew:
		return base.Foreground(ColorBlue)
	case model.TaskStatusInProgress:
		return base.Foreground(ColorYellow)
	case model.TaskStatusCompleted:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle returns a color-coded style for the given priority.
func PriorityStyle(priority model.TaskPriority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case model.TaskPriorityUrgently:
		return base.Foreground(ColorRed)
	case model.TaskPriorityHi:
		return base.Foreground(ColorOrange)
	case model.TaskPriorityMiddle:
		return base.Foreground(ColorYellow)
	case model.TaskPriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// FilterStyle returns the badge style for a list's filter.
func FilterStyle(filter model.FilterValue) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)

	switch filter {
	case model.FilterActive:
		return base.Foreground(ColorYellow)
	case model.FilterCompleted:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// RequestStatusStyle colors the global request status in the header.
func RequestStatusStyle(status model.RequestStatus) lipgloss.Style {
	base := HeaderStyle

	switch status {
	case model.RequestLoading:
		return base.Foreground(ColorYellow)
	case model.RequestFailed:
		return base.Foreground(ColorRed)
	default:
		return base
	}
}
