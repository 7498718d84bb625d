package board

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/state"
	"github.com/nhle/todolists/internal/theme"
)

// listItem wraps a state.TodolistView so it can be used in a bubbles/list.
type listItem struct {
	view state.TodolistView
}

// FilterValue returns the string used for fuzzy filtering.
func (i listItem) FilterValue() string { return i.view.Title }

// taskItem wraps a state.TaskView so it can be used in a bubbles/list.
type taskItem struct {
	view state.TaskView
}

// FilterValue returns the string used for fuzzy filtering.
func (i taskItem) FilterValue() string { return i.view.Title }

// busy reports whether a request for the row is in flight.
func busy(status model.RequestStatus) bool {
	return status == model.RequestLoading
}

// listDelegate renders todo-list rows.
type listDelegate struct{}

func (listDelegate) Height() int { return 1 }
func (listDelegate) Spacing() int { return 0 }
func (listDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws a single todo-list line.
func (listDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(listItem)
	if !ok {
		return
	}

	line := li.view.Title
	if li.view.Filter != model.FilterAll {
		line += theme.FilterStyle(li.view.Filter).Render(string(li.view.Filter))
	}
	if busy(li.view.EntityStatus) {
		line = theme.DimmedStyle.Render(line + " …")
	}

	fmt.Fprint(w, renderRow(line, index == m.Index(), m.Width()))
}

// taskDelegate renders task rows.
type taskDelegate struct{}

func (taskDelegate) Height() int { return 1 }
func (taskDelegate) Spacing() int { return 0 }
func (taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws a single task line.
func (taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	t := ti.view

	prefix := "○"
	title := t.Title
	if t.Status == model.TaskStatusCompleted {
		prefix = "✓"
		title = theme.DoneStyle.Render(title)
	}

	parts := []string{
		prefix,
		theme.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority)),
		title,
	}
	if t.Status != model.TaskStatusNew && t.Status != model.TaskStatusCompleted {
		parts = append(parts, theme.StatusStyle(t.Status).Render(t.Status.String()))
	}
	if t.Deadline != "" {
		parts = append(parts, theme.DimmedStyle.Render("due "+dateOnly(t.Deadline)))
	}

	line := strings.Join(parts, " ")
	if busy(t.EntityStatus) {
		line = theme.DimmedStyle.Render(line + " …")
	}

	fmt.Fprint(w, renderRow(line, index == m.Index(), m.Width()))
}

func renderRow(line string, selected bool, width int) string {
	style := theme.ListItemStyle
	if selected {
		style = theme.SelectedItemStyle
	}
	return lipgloss.NewStyle().MaxWidth(max(width, 1)).Render(style.Render(line))
}

// priorityLabel returns a short label for the given priority level.
func priorityLabel(p model.TaskPriority) string {
	switch p {
	case model.TaskPriorityUrgently:
		return "P1"
	case model.TaskPriorityHi:
		return "P2"
	case model.TaskPriorityMiddle:
		return "P3"
	case model.TaskPriorityLow:
		return "P4"
	case model.TaskPriorityLater:
		return "P5"
	default:
		return "P?"
	}
}

func dateOnly(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i > 0 {
		return ts[:i]
	}
	return ts
}
