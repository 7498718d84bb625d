package board

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todolists/internal/keys"
	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/state"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(runes(string(r)))
	}
	return m
}

func emitted(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func newStore() *state.Store {
	s := state.New()
	s.Dispatch(
		state.ListsLoaded{Lists: []model.TodoList{
			{ID: "L1", Title: "Groceries"},
			{ID: "L2", Title: "Work"},
		}},
		state.TasksLoaded{ListID: "L1", Tasks: []model.Task{
			{ID: "T1", TodoListID: "L1", Title: "Milk"},
			{ID: "T2", TodoListID: "L1", Title: "Bread", Status: model.TaskStatusCompleted},
		}},
	)
	return s
}

func newBoard(s *state.Store) Model {
	m := New(keys.DefaultKeyMap(), 100, 30)
	m.Refresh(s.Snapshot())
	return m
}

func TestRefreshShowsSelectedListTasks(t *testing.T) {
	m := newBoard(newStore())

	assert.Equal(t, "L1", m.SelectedListID())
	view := m.View()
	assert.Contains(t, view, "Groceries")
	assert.Contains(t, view, "Milk")
	assert.Contains(t, view, "Bread")
}

func TestMovingSelectionSwitchesTasks(t *testing.T) {
	m := newBoard(newStore())

	m, _ = m.Update(runes("j"))

	assert.Equal(t, "L2", m.SelectedListID())
	assert.Empty(t, m.tasks.Items())
	assert.Contains(t, m.View(), "Loading tasks...")
}

func TestRefreshKeepsSelection(t *testing.T) {
	s := newStore()
	m := newBoard(s)
	m, _ = m.Update(runes("j"))
	require.Equal(t, "L2", m.SelectedListID())

	s.Dispatch(state.ListAdded{List: model.TodoList{ID: "L0", Title: "New"}})
	m.Refresh(s.Snapshot())

	assert.Equal(t, "L2", m.SelectedListID())
}

func TestRefreshClampsSelectionAfterRemoval(t *testing.T) {
	s := newStore()
	m := newBoard(s)
	m, _ = m.Update(runes("j"))

	s.Dispatch(state.ListRemoved{ID: "L2"})
	m.Refresh(s.Snapshot())

	assert.Equal(t, "L1", m.SelectedListID())
}

func TestAddListValidatesTitle(t *testing.T) {
	m := newBoard(newStore())

	m, _ = m.Update(runes("n"))
	require.True(t, m.Capturing())

	m = typeText(t, m, "   ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.ErrorIs(t, m.inputErr, model.ErrTitleRequired)
	assert.True(t, m.Capturing())

	m.input.SetValue("")
	m = typeText(t, m, " Holiday ")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Capturing())
	assert.Equal(t, AddListMsg{Title: "Holiday"}, emitted(t, cmd))
}

func TestEscCancelsInput(t *testing.T) {
	m := newBoard(newStore())

	m, _ = m.Update(runes("n"))
	m = typeText(t, m, "abc")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, m.Capturing())
	assert.Empty(t, m.input.Value())
}

func TestRenameListUnchangedTitleIsNoop(t *testing.T) {
	m := newBoard(newStore())

	m, _ = m.Update(runes("R"))
	assert.Equal(t, "Groceries", m.input.Value())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestAddTaskTargetsSelectedList(t *testing.T) {
	m := newBoard(newStore())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(runes("n"))
	m = typeText(t, m, "Eggs")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, AddTaskMsg{ListID: "L1", Title: "Eggs"}, emitted(t, cmd))
}

func TestToggleTask(t *testing.T) {
	m := newBoard(newStore())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(runes("x"))

	msg, ok := emitted(t, cmd).(UpdateTaskMsg)
	require.True(t, ok)
	assert.Equal(t, "T1", msg.TaskID)
	require.NotNil(t, msg.Patch.Status)
	assert.Equal(t, model.TaskStatusCompleted, *msg.Patch.Status)
}

func TestBusyTaskIgnoresActions(t *testing.T) {
	s := newStore()
	s.Dispatch(state.TaskEntityStatusChanged{ListID: "L1", TaskID: "T1", Status: model.RequestLoading})
	m := newBoard(s)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(runes("x"))
	assert.Nil(t, cmd)

	m, cmd = m.Update(runes("d"))
	assert.Nil(t, cmd)
	assert.False(t, m.Capturing())
}

func TestEditTaskEmitsTask(t *testing.T) {
	m := newBoard(newStore())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(runes("e"))

	msg, ok := emitted(t, cmd).(EditTaskMsg)
	require.True(t, ok)
	assert.Equal(t, "Milk", msg.Task.Title)
}

func TestCycleFilter(t *testing.T) {
	s := newStore()
	m := newBoard(s)

	_, cmd := m.Update(runes("f"))
	assert.Equal(t, SetFilterMsg{ListID: "L1", Filter: model.FilterActive}, emitted(t, cmd))

	s.Dispatch(state.ListFilterChanged{ID: "L1", Filter: model.FilterActive})
	m.Refresh(s.Snapshot())

	assert.Len(t, m.tasks.Items(), 1)
	assert.Equal(t, "Tasks (active)", m.tasks.Title)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	m := newBoard(newStore())

	m, _ = m.Update(runes("d"))

	assert.True(t, m.Capturing())
	assert.Equal(t, RemoveListMsg{ListID: "L1"}, m.pending)
	assert.Contains(t, m.View(), `Delete todo-list "Groceries"?`)
}

func TestNextFilter(t *testing.T) {
	assert.Equal(t, model.FilterActive, nextFilter(model.FilterAll))
	assert.Equal(t, model.FilterCompleted, nextFilter(model.FilterActive))
	assert.Equal(t, model.FilterAll, nextFilter(model.FilterCompleted))
	assert.Equal(t, model.FilterAll, nextFilter("bogus"))
}
