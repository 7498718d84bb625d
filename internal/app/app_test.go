package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/state"
	appsync "github.com/nhle/todolists/internal/sync"
	"github.com/nhle/todolists/internal/ui/board"
	"github.com/nhle/todolists/internal/ui/command"
	"github.com/nhle/todolists/internal/ui/taskform"
)

// The tests drive the store directly; the remote is never reached.
func newModel(t *testing.T) (Model, *state.Store) {
	t.Helper()
	st := state.New()
	m := New(appsync.New(nil, st))
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, st
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func changed(t *testing.T, m Model, st *state.Store, actions ...state.Action) Model {
	t.Helper()
	st.Dispatch(actions...)
	return update(t, m, stateChangedMsg{})
}

func loggedIn(t *testing.T) (Model, *state.Store) {
	t.Helper()
	m, st := newModel(t)
	m = changed(t, m, st,
		state.SetInitialized{Initialized: true},
		state.SetLoggedIn{LoggedIn: true},
		state.SetUser{User: &model.User{ID: 1, Email: "free@samuraijs.com", Login: "free"}},
		state.ListsLoaded{Lists: []model.TodoList{{ID: "L1", Title: "Groceries"}}},
		state.TasksLoaded{ListID: "L1", Tasks: []model.Task{{ID: "T1", TodoListID: "L1", Title: "Milk"}}},
	)
	require.Equal(t, ViewBoard, m.currentView)
	return m, st
}

func TestStartsOnLoadingScreen(t *testing.T) {
	m, _ := newModel(t)

	assert.Equal(t, ViewLoading, m.currentView)
	assert.Contains(t, m.View(), "Checking session...")
}

func TestUnauthenticatedShowsLogin(t *testing.T) {
	m, st := newModel(t)

	m = changed(t, m, st, state.SetInitialized{Initialized: true})

	assert.Equal(t, ViewLogin, m.currentView)
	assert.Contains(t, m.View(), "signed out")
}

func TestCaptchaRestartsLoginForm(t *testing.T) {
	m, st := newModel(t)
	m = changed(t, m, st, state.SetInitialized{Initialized: true})

	m = changed(t, m, st, state.SetCaptchaURL{URL: "http://x.test/captcha.png"})

	assert.Equal(t, "http://x.test/captcha.png", m.loginView.CaptchaURL())
}

func TestLoggedInShowsBoard(t *testing.T) {
	m, _ := loggedIn(t)

	view := m.View()
	assert.Contains(t, view, "free <free@samuraijs.com>")
	assert.Contains(t, view, "Groceries")
	assert.Contains(t, view, "Milk")
}

func TestLogoutReturnsToLogin(t *testing.T) {
	m, st := loggedIn(t)

	m = changed(t, m, st, state.SetLoggedIn{LoggedIn: false}, state.ListsCleared{})

	assert.Equal(t, ViewLogin, m.currentView)
}

func TestEscDismissesError(t *testing.T) {
	m, st := loggedIn(t)
	m = changed(t, m, st, state.ErrorMessage("Network Error"))
	require.Contains(t, m.View(), "Network Error")

	update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, st.App().Error)
}

func TestHelpToggles(t *testing.T) {
	m, _ := loggedIn(t)
	help := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")}

	m = update(t, m, help)
	assert.Equal(t, ViewHelp, m.currentView)

	m = update(t, m, help)
	assert.Equal(t, ViewBoard, m.currentView)
}

func TestFilterIntentReachesStore(t *testing.T) {
	m, st := loggedIn(t)

	update(t, m, board.SetFilterMsg{ListID: "L1", Filter: model.FilterCompleted})

	l, ok := st.Todolist("L1")
	require.True(t, ok)
	assert.Equal(t, model.FilterCompleted, l.Filter)
}

func TestFilterCommandUsesSelectedList(t *testing.T) {
	m, st := loggedIn(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	require.Equal(t, ViewCommand, m.currentView)

	m = update(t, m, command.CommandMsg{Kind: command.Filter, Filter: model.FilterActive})

	assert.Equal(t, ViewBoard, m.currentView)
	l, _ := st.Todolist("L1")
	assert.Equal(t, model.FilterActive, l.Filter)
}

func TestTaskFormRoundTrip(t *testing.T) {
	m, _ := loggedIn(t)

	m = update(t, m, board.EditTaskMsg{Task: model.Task{ID: "T1", TodoListID: "L1", Title: "Milk"}})
	assert.Equal(t, ViewTaskEdit, m.currentView)
	assert.Contains(t, m.View(), "Edit Task")

	next, cmd := m.Update(taskform.TaskEditedMsg{ListID: "L1", TaskID: "T1"})
	assert.Equal(t, ViewBoard, next.(Model).currentView)
	assert.Nil(t, cmd, "an empty patch sends nothing")
}

func TestQuitEndsSubscription(t *testing.T) {
	m, _ := loggedIn(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)

	for range m.changes {
	}
	assert.Nil(t, waitForChange(m.changes)())
}
