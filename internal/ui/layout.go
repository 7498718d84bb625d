package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolists/internal/theme"
)

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return max(l.Height-l.HeaderHeight-l.StatusBarHeight, 0)
}

// SplitWidths divides the content width into a left pane taking roughly
// a third and a right pane taking the rest.
func SplitWidths(width int) (left, right int) {
	left = max(width/3, 24)
	if left > width {
		left = width
	}
	return left, width - left
}

// RenderHeader renders the top header bar with a title and request status.
func (l Layout) RenderHeader(title string, status string, statusStyle lipgloss.Style) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := statusStyle.
		Align(lipgloss.Right).
		Render(status)

	gap := max(l.Width-
		lipgloss.Width(titleRendered)-
		lipgloss.Width(statusRendered), 0)

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.HeaderStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := max(l.Width-lipgloss.Width(rendered), 0)

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.StatusBarStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderErrorBanner renders msg across the full width. An empty message
// renders nothing.
func (l Layout) RenderErrorBanner(msg string) string {
	if msg == "" {
		return ""
	}
	return theme.ErrorBannerStyle.
		Width(l.Width).
		Render("✗ " + msg + "  (esc to dismiss)")
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, an optional banner, the content area, and the status bar.
// The content is clipped so the frame never exceeds the terminal height.
func (l Layout) RenderWithFrame(
	header string,
	banner string,
	content string,
	statusBar string,
) string {
	height := l.ContentHeight()
	parts := []string{header}
	if banner != "" {
		parts = append(parts, banner)
		height -= lipgloss.Height(banner)
	}
	parts = append(parts,
		lipgloss.NewStyle().MaxHeight(max(height, 0)).Render(content),
		statusBar,
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
