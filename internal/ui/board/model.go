package board

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolists/internal/keys"
	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/state"
	"github.com/nhle/todolists/internal/theme"
	"github.com/nhle/todolists/internal/ui"
)

// The board never mutates state. Every user action is reported to the
// root model as one of the intent messages below.

// AddListMsg requests a new todo-list.
type AddListMsg struct{ Title string }

// RenameListMsg requests a new title for a todo-list.
type RenameListMsg struct {
	ListID string
	Title  string
}

// RemoveListMsg requests deletion of a todo-list.
type RemoveListMsg struct{ ListID string }

// SetFilterMsg changes the task filter of a todo-list.
type SetFilterMsg struct {
	ListID string
	Filter model.FilterValue
}

// AddTaskMsg requests a new task in a todo-list.
type AddTaskMsg struct {
	ListID string
	Title  string
}

// UpdateTaskMsg requests a partial task update.
type UpdateTaskMsg struct {
	ListID string
	TaskID string
	Patch  model.TaskPatch
}

// RemoveTaskMsg requests deletion of a task.
type RemoveTaskMsg struct {
	ListID string
	TaskID string
}

// EditTaskMsg asks the root model to open the task form.
type EditTaskMsg struct{ Task model.Task }

type pane int

const (
	paneLists pane = iota
	paneTasks
)

type mode int

const (
	modeBrowse mode = iota
	modeInput
	modeConfirm
)

type inputTarget int

const (
	inputAddList inputTarget = iota
	inputRenameList
	inputAddTask
	inputRenameTask
)

// filterCycle is the order in which CycleFilter steps through filters.
var filterCycle = []model.FilterValue{
	model.FilterAll,
	model.FilterActive,
	model.FilterCompleted,
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	confirm bool
}

// Model is the two-pane board: todo-lists on the left, the tasks of the
// selected list on the right.
type Model struct {
	keys  *keys.KeyMap
	lists list.Model
	tasks list.Model
	focus pane
	mode  mode

	input    textinput.Model
	target   inputTarget
	inputErr error

	confirmForm *huh.Form
	fb          *formBindings
	pending     tea.Msg

	snapshot state.State
	width    int
	height   int
}

// New creates a new board model.
func New(k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.CharLimit = model.MaxTitleLength
	ti.Prompt = "> "

	m := Model{
		keys:  k,
		lists: newPane("Todo-lists", listDelegate{}),
		tasks: newPane("Tasks", taskDelegate{}),
		input: ti,
		fb:    &formBindings{},
	}
	m.SetSize(width, height)
	return m
}

func newPane(title string, d list.ItemDelegate) list.Model {
	l := list.New([]list.Item{}, d, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)
	l.Styles.Title = theme.HeaderStyle
	// q and esc belong to the root model.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	return l
}

// Refresh rebuilds both panes from a state snapshot, keeping the current
// selection where the selected row still exists.
func (m *Model) Refresh(st state.State) tea.Cmd {
	m.snapshot = st

	selected := m.SelectedListID()
	items := make([]list.Item, len(st.Todolists))
	for i, l := range st.Todolists {
		items[i] = listItem{view: l}
	}
	cmd := m.lists.SetItems(items)
	selectByID(&m.lists, selected, func(it list.Item) string {
		return it.(listItem).view.ID
	})

	return tea.Batch(cmd, m.refreshTasks())
}

func (m *Model) refreshTasks() tea.Cmd {
	selected := ""
	if t, ok := m.selectedTask(); ok {
		selected = t.ID
	}

	var items []list.Item
	if l, ok := m.selectedList(); ok {
		m.tasks.Title = "Tasks"
		if l.Filter != model.FilterAll {
			m.tasks.Title = fmt.Sprintf("Tasks (%s)", l.Filter)
		}
		for _, t := range state.FilterTaskViews(m.snapshot.Tasks.Buckets[l.ID], l.Filter) {
			items = append(items, taskItem{view: t})
		}
	}
	cmd := m.tasks.SetItems(items)
	selectByID(&m.tasks, selected, func(it list.Item) string {
		return it.(taskItem).view.ID
	})
	return cmd
}

func selectByID(l *list.Model, id string, idOf func(list.Item) string) {
	for i, it := range l.Items() {
		if idOf(it) == id {
			l.Select(i)
			return
		}
	}
	if n := len(l.Items()); n > 0 && l.Index() >= n {
		l.Select(n - 1)
	}
}

// SelectedListID returns the id of the highlighted todo-list.
func (m Model) SelectedListID() string {
	if l, ok := m.selectedList(); ok {
		return l.ID
	}
	return ""
}

func (m Model) selectedList() (state.TodolistView, bool) {
	it, ok := m.lists.SelectedItem().(listItem)
	return it.view, ok
}

func (m Model) selectedTask() (state.TaskView, bool) {
	it, ok := m.tasks.SelectedItem().(taskItem)
	return it.view, ok
}

// Capturing reports whether the board is consuming raw key input, so
// global shortcuts must not be intercepted.
func (m Model) Capturing() bool {
	return m.mode != modeBrowse
}

// Update handles messages for the board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeInput:
		if msg, ok := msg.(tea.KeyMsg); ok {
			return m.handleInputKeys(msg)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	case modeConfirm:
		return m.updateConfirm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleBrowseKeys(msg)
	}
	return m, nil
}

func (m Model) handleBrowseKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == paneLists {
			m.focus = paneTasks
		} else {
			m.focus = paneLists
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		if m.focus == paneLists {
			cmd := m.startInput(inputAddList, "")
			return m, cmd
		}
		if _, ok := m.selectedList(); ok {
			cmd := m.startInput(inputAddTask, "")
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Rename):
		if m.focus == paneLists {
			if l, ok := m.selectedList(); ok && !busy(l.EntityStatus) {
				cmd := m.startInput(inputRenameList, l.Title)
				return m, cmd
			}
			return m, nil
		}
		if t, ok := m.selectedTask(); ok && !busy(t.EntityStatus) {
			cmd := m.startInput(inputRenameTask, t.Title)
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		cmd := m.startConfirm()
		return m, cmd

	case key.Matches(msg, m.keys.CycleFilter):
		l, ok := m.selectedList()
		if !ok {
			return m, nil
		}
		return m, emit(SetFilterMsg{ListID: l.ID, Filter: nextFilter(l.Filter)})
	}

	if m.focus == paneTasks {
		switch {
		case key.Matches(msg, m.keys.Edit):
			if t, ok := m.selectedTask(); ok && !busy(t.EntityStatus) {
				return m, emit(EditTaskMsg{Task: t.Task})
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			t, ok := m.selectedTask()
			if !ok || busy(t.EntityStatus) {
				return m, nil
			}
			status := model.TaskStatusCompleted
			if t.Status == model.TaskStatusCompleted {
				status = model.TaskStatusNew
			}
			return m, emit(UpdateTaskMsg{
				ListID: t.TodoListID,
				TaskID: t.ID,
				Patch:  model.PatchStatus(status),
			})
		}
	}

	// Delegate navigation keys to the focused pane.
	var cmd tea.Cmd
	if m.focus == paneLists {
		before := m.SelectedListID()
		m.lists, cmd = m.lists.Update(msg)
		if m.SelectedListID() != before {
			m.tasks.ResetSelected()
			refresh := m.refreshTasks()
			return m, tea.Batch(cmd, refresh)
		}
		return m, cmd
	}
	m.tasks, cmd = m.tasks.Update(msg)
	return m, cmd
}

func nextFilter(f model.FilterValue) model.FilterValue {
	for i, v := range filterCycle {
		if v == f {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return model.FilterAll
}

func (m *Model) startInput(target inputTarget, value string) tea.Cmd {
	m.mode = modeInput
	m.target = target
	m.inputErr = nil

	switch target {
	case inputAddList:
		m.input.Placeholder = "new todo-list title"
	case inputAddTask:
		m.input.Placeholder = "new task title"
	default:
		m.input.Placeholder = "new title"
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.layoutPanes()
	return m.input.Focus()
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopInput()
		return m, nil

	case tea.KeyEnter:
		title, err := model.NormalizeTitle(m.input.Value())
		if err != nil {
			m.inputErr = err
			return m, nil
		}
		intent := m.inputIntent(title)
		m.stopInput()
		if intent == nil {
			return m, nil
		}
		return m, emit(intent)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.inputErr = nil
	return m, cmd
}

func (m Model) inputIntent(title string) tea.Msg {
	switch m.target {
	case inputAddList:
		return AddListMsg{Title: title}
	case inputRenameList:
		if l, ok := m.selectedList(); ok && l.Title != title {
			return RenameListMsg{ListID: l.ID, Title: title}
		}
	case inputAddTask:
		if l, ok := m.selectedList(); ok {
			return AddTaskMsg{ListID: l.ID, Title: title}
		}
	case inputRenameTask:
		if t, ok := m.selectedTask(); ok && t.Title != title {
			return UpdateTaskMsg{
				ListID: t.TodoListID,
				TaskID: t.ID,
				Patch:  model.PatchTitle(title),
			}
		}
	}
	return nil
}

func (m *Model) stopInput() {
	m.mode = modeBrowse
	m.inputErr = nil
	m.input.Reset()
	m.input.Blur()
	m.layoutPanes()
}

func (m *Model) startConfirm() tea.Cmd {
	var title string
	if m.focus == paneLists {
		l, ok := m.selectedList()
		if !ok || busy(l.EntityStatus) {
			return nil
		}
		title = fmt.Sprintf("Delete todo-list %q?", l.Title)
		m.pending = RemoveListMsg{ListID: l.ID}
	} else {
		t, ok := m.selectedTask()
		if !ok || busy(t.EntityStatus) {
			return nil
		}
		title = fmt.Sprintf("Delete task %q?", t.Title)
		m.pending = RemoveTaskMsg{ListID: t.TodoListID, TaskID: t.ID}
	}

	m.mode = modeConfirm
	m.fb.confirm = false
	m.confirmForm = m.buildDeleteConfirmForm(title)
	m.layoutPanes()
	return m.confirmForm.Init()
}

func (m Model) buildDeleteConfirmForm(title string) *huh.Form {
	desc := "The task is removed on the server."
	if _, ok := m.pending.(RemoveListMsg); ok {
		desc = "All tasks in this list are removed on the server."
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	).WithWidth(min(max(m.width-4, 30), 70))
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		m.mode = modeBrowse
		return m, nil
	}

	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}

	switch m.confirmForm.State {
	case huh.StateCompleted:
		intent := m.pending
		confirmed := m.fb.confirm
		m.closeConfirm()
		if confirmed && intent != nil {
			return m, emit(intent)
		}
		return m, nil
	case huh.StateAborted:
		m.closeConfirm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeConfirm() {
	m.mode = modeBrowse
	m.confirmForm = nil
	m.pending = nil
	m.layoutPanes()
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the board.
func (m Model) View() string {
	leftW, rightW := ui.SplitWidths(m.width)

	left := m.renderPane(m.lists, leftW, m.focus == paneLists, m.emptyListsText())
	right := m.renderPane(m.tasks, rightW, m.focus == paneTasks, m.emptyTasksText())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	switch m.mode {
	case modeInput:
		line := m.input.View()
		if m.inputErr != nil {
			line += "  " + theme.InputErrorStyle.Render(m.inputErr.Error())
		}
		return lipgloss.JoinVertical(lipgloss.Left, body, line)
	case modeConfirm:
		if m.confirmForm != nil {
			return lipgloss.JoinVertical(lipgloss.Left, body, m.confirmForm.View())
		}
	}
	return body
}

func (m Model) renderPane(l list.Model, width int, focused bool, empty string) string {
	style := theme.PaneStyle
	if focused {
		style = theme.FocusedPaneStyle
	}
	// Border takes one column on each side.
	style = style.Width(max(width-2, 0)).Height(max(m.paneHeight()-2, 0))

	if len(l.Items()) == 0 {
		return style.Render(theme.HeaderStyle.Render(l.Title) + "\n\n" +
			theme.HelpStyle.Render(empty))
	}
	return style.Render(l.View())
}

func (m Model) emptyListsText() string {
	return "No todo-lists yet. Press n to add one."
}

func (m Model) emptyTasksText() string {
	l, ok := m.selectedList()
	switch {
	case !ok:
		return "Select a todo-list."
	case !m.snapshot.Tasks.Loaded[l.ID]:
		return "Loading tasks..."
	case l.Filter != model.FilterAll && len(m.snapshot.Tasks.Buckets[l.ID]) > 0:
		return "No matching tasks. Press f to change the filter."
	default:
		return "No tasks. Press n to add one."
	}
}

// paneHeight leaves room below the panes for the input line or the
// delete confirmation.
func (m Model) paneHeight() int {
	reserved := 0
	switch m.mode {
	case modeInput:
		reserved = 1
	case modeConfirm:
		reserved = 5
	}
	return max(m.height-reserved, 3)
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-4, 10)
	m.layoutPanes()
}

func (m *Model) layoutPanes() {
	leftW, rightW := ui.SplitWidths(m.width)
	inner := max(m.paneHeight()-2, 1)
	m.lists.SetSize(max(leftW-2, 1), inner)
	m.tasks.SetSize(max(rightW-2, 1), inner)
}
