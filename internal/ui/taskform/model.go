package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/theme"
)

// deadlineLayout is the date format accepted by the deadline field.
const deadlineLayout = "2006-01-02"

// TaskEditedMsg is dispatched when the form is submitted. Patch holds
// only the fields the user changed and may be empty.
type TaskEditedMsg struct {
	ListID string
	TaskID string
	Patch  model.TaskPatch
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	status      model.TaskStatus
	priority    model.TaskPriority
	deadline    string
}

// Model is the Bubble Tea model for the task edit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	orig   model.Task
	width  int
	height int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartEdit initializes the form with task's current values.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.orig = task
	m.fb.title = task.Title
	m.fb.description = task.Description
	m.fb.status = task.Status
	m.fb.priority = task.Priority
	m.fb.deadline = dateOnly(task.Deadline)
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Edit Task") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				CharLimit(model.MaxTitleLength).
				Value(&m.fb.title).
				Validate(validateTitle),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewSelect[model.TaskStatus]().
				Title("Status").
				Options(
					huh.NewOption("New", model.TaskStatusNew),
					huh.NewOption("In progress", model.TaskStatusInProgress),
					huh.NewOption("Completed", model.TaskStatusCompleted),
					huh.NewOption("Draft", model.TaskStatusDraft),
				).
				Value(&m.fb.status),
			huh.NewSelect[model.TaskPriority]().
				Title("Priority").
				Options(
					huh.NewOption("Low", model.TaskPriorityLow),
					huh.NewOption("Middle", model.TaskPriorityMiddle),
					huh.NewOption("Hi", model.TaskPriorityHi),
					huh.NewOption("Urgently", model.TaskPriorityUrgently),
					huh.NewOption("Later", model.TaskPriorityLater),
				).
				Value(&m.fb.priority),
			huh.NewInput().
				Title("Deadline").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&m.fb.deadline).
				Validate(validateOptionalDate),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	msg := TaskEditedMsg{
		ListID: m.orig.TodoListID,
		TaskID: m.orig.ID,
		Patch:  diff(m.orig, *m.fb),
	}
	return func() tea.Msg { return msg }
}

// diff builds a patch holding the fields of fb that differ from orig.
func diff(orig model.Task, fb formBindings) model.TaskPatch {
	var p model.TaskPatch

	if title := strings.TrimSpace(fb.title); title != orig.Title {
		p.Title = &title
	}
	if fb.description != orig.Description {
		desc := fb.description
		p.Description = &desc
	}
	if fb.status != orig.Status {
		status := fb.status
		p.Status = &status
	}
	if fb.priority != orig.Priority {
		priority := fb.priority
		p.Priority = &priority
	}
	if deadline := strings.TrimSpace(fb.deadline); deadline != dateOnly(orig.Deadline) {
		if deadline != "" {
			deadline += "T00:00:00"
		}
		p.Deadline = &deadline
	}

	return p
}

// dateOnly strips the time part of a service timestamp.
func dateOnly(ts string) string {
	if len(ts) >= len(deadlineLayout) {
		return ts[:len(deadlineLayout)]
	}
	return ts
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}

func validateTitle(s string) error {
	_, err := model.NormalizeTitle(s)
	return err
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.Parse(deadlineLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
