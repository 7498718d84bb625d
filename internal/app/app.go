package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolists/internal/keys"
	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/state"
	appsync "github.com/nhle/todolists/internal/sync"
	"github.com/nhle/todolists/internal/theme"
	"github.com/nhle/todolists/internal/ui"
	"github.com/nhle/todolists/internal/ui/board"
	"github.com/nhle/todolists/internal/ui/command"
	helpview "github.com/nhle/todolists/internal/ui/help"
	"github.com/nhle/todolists/internal/ui/login"
	"github.com/nhle/todolists/internal/ui/taskform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewLogin
	ViewBoard
	ViewTaskEdit
	ViewHelp
	ViewCommand
)

// Option configures the root model.
type Option func(*Model)

// WithRememberedLogin prefills the login form.
func WithRememberedLogin(email, password string) Option {
	return func(m *Model) {
		m.loginView.Prefill(email, password, true)
	}
}

// Model is the root Bubble Tea model. It renders store snapshots and turns
// user intents into effects on the syncer; it never mutates state itself.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	syncer       *appsync.Syncer
	changes      <-chan struct{}
	unsubscribe  func()
	snapshot     state.State
	spinner      spinner.Model
	loginView    login.Model
	boardView    board.Model
	taskFormView taskform.Model
	helpView     helpview.Model
	commandView  command.Model
	ready        bool
}

// New creates the root model over s. The model subscribes to the store
// immediately; the subscription ends when the program quits.
func New(s *appsync.Syncer, opts ...Option) Model {
	k := keys.DefaultKeyMap()
	changes, unsubscribe := s.Store().Subscribe()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorYellow)

	m := Model{
		currentView:  ViewLoading,
		keys:         k,
		syncer:       s,
		changes:      changes,
		unsubscribe:  unsubscribe,
		snapshot:     s.Store().Snapshot(),
		spinner:      sp,
		loginView:    login.New(80, 24),
		boardView:    board.New(k, 80, 24),
		taskFormView: taskform.New(80, 24),
		helpView:     helpview.New(k, 80, 24),
		commandView:  command.New(80, 24),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts listening for store changes and runs the session check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChange(m.changes),
		m.spinner.Tick,
		m.initialize(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stateChangedMsg:
		m.snapshot = m.syncer.Store().Snapshot()
		m.resize()
		refresh := m.boardView.Refresh(m.snapshot)
		viewCmd := m.syncView()
		return m, tea.Batch(waitForChange(m.changes), refresh, viewCmd)

	case effectDoneMsg:
		if msg.op == opLogin && msg.err == nil {
			return m, m.fetchAll()
		}
		return m, nil

	case login.SubmitMsg:
		return m, m.login(msg.Params)

	case board.AddListMsg:
		return m, m.addList(msg.Title)

	case board.RenameListMsg:
		return m, m.renameList(msg.ListID, msg.Title)

	case board.RemoveListMsg:
		return m, m.removeList(msg.ListID)

	case board.SetFilterMsg:
		m.syncer.SetFilter(msg.ListID, msg.Filter)
		return m, nil

	case board.AddTaskMsg:
		return m, m.addTask(msg.ListID, msg.Title)

	case board.UpdateTaskMsg:
		return m, m.updateTask(msg.ListID, msg.TaskID, msg.Patch)

	case board.RemoveTaskMsg:
		return m, m.removeTask(msg.ListID, msg.TaskID)

	case board.EditTaskMsg:
		m.currentView = ViewTaskEdit
		cmd := m.taskFormView.StartEdit(msg.Task)
		return m, cmd

	case taskform.TaskEditedMsg:
		m.currentView = ViewBoard
		if msg.Patch.Empty() {
			return m, nil
		}
		return m, m.updateTask(msg.ListID, msg.TaskID, msg.Patch)

	case taskform.CancelMsg:
		m.currentView = ViewBoard
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(command.Command(msg))

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if next, cmd, handled := m.handleGlobalKeys(msg); handled {
			return next, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work regardless of the active
// view. Views that take free text only see ctrl+c intercepted.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if key.Matches(msg, m.keys.Back) && m.snapshot.App.Error != nil &&
		m.currentView != ViewCommand && !m.boardView.Capturing() {
		m.syncer.DismissError()
		return m, nil, true
	}

	switch m.currentView {
	case ViewLogin:
		return m, nil, false
	case ViewTaskEdit:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = ViewBoard
			return m, nil, true
		}
		return m, nil, false
	case ViewCommand:
		return m, nil, false
	case ViewBoard:
		if m.boardView.Capturing() {
			return m, nil, false
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.currentView == ViewBoard || m.currentView == ViewLoading {
			return m.quit()
		}

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Back):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}

	case key.Matches(msg, m.keys.Command):
		if m.currentView == ViewBoard {
			m.previousView = m.currentView
			m.currentView = ViewCommand
			cmd := m.commandView.Focus()
			return m, cmd, true
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.currentView == ViewBoard {
			return m, m.fetchAll(), true
		}
	}

	return m, nil, false
}

func (m Model) quit() (tea.Model, tea.Cmd, bool) {
	m.unsubscribe()
	return m, tea.Quit, true
}

// executeCommand runs a palette command.
func (m *Model) executeCommand(c command.Command) tea.Cmd {
	switch c.Kind {
	case command.Refresh:
		return m.fetchAll()
	case command.Logout:
		return m.logout()
	case command.Quit:
		m.unsubscribe()
		return tea.Quit
	case command.Filter:
		if id := m.boardView.SelectedListID(); id != "" {
			m.syncer.SetFilter(id, c.Filter)
		}
	}
	return nil
}

// syncView moves between the loading, login and board views as the
// session changes.
func (m *Model) syncView() tea.Cmd {
	app, sess := m.snapshot.App, m.snapshot.Session

	switch {
	case !app.Initialized:
		return nil

	case !sess.LoggedIn:
		if m.currentView == ViewHelp || m.currentView == ViewCommand {
			if m.previousView == ViewLogin {
				return nil
			}
			m.previousView = ViewLogin
			return m.loginView.Start(sess.CaptchaURL)
		}
		if m.currentView != ViewLogin {
			if m.currentView != ViewLoading {
				m.loginView.Prefill("", "", false)
			}
			m.currentView = ViewLogin
			return m.loginView.Start(sess.CaptchaURL)
		}
		if sess.CaptchaURL != m.loginView.CaptchaURL() {
			return m.loginView.Start(sess.CaptchaURL)
		}

	default:
		switch m.currentView {
		case ViewLoading, ViewLogin:
			m.currentView = ViewBoard
		case ViewHelp, ViewCommand:
			if m.previousView == ViewLogin {
				m.previousView = ViewBoard
			}
		}
	}
	return nil
}

// resize recomputes child sizes. The error banner takes content rows.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()
	if b := m.banner(); b != "" {
		h -= lipgloss.Height(b)
	}
	m.loginView.SetSize(w, h)
	m.boardView.SetSize(w, h)
	m.taskFormView.SetSize(w, h)
	m.helpView.SetSize(w, h)
	m.commandView.SetSize(w, h)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewBoard:
		m.boardView, cmd = m.boardView.Update(msg)
	case ViewTaskEdit:
		m.taskFormView, cmd = m.taskFormView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	status, style := m.requestStatus()
	header := m.layout.RenderHeader("Todo-lists", status, style)
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, m.banner(), m.renderContent(), statusBar)
}

func (m Model) banner() string {
	if m.snapshot.App.Error == nil {
		return ""
	}
	return m.layout.RenderErrorBanner(*m.snapshot.App.Error)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLoading:
		return lipgloss.NewStyle().
			Width(m.layout.ContentWidth()).
			Height(m.layout.ContentHeight()).
			Align(lipgloss.Center, lipgloss.Center).
			Render(m.spinner.View() + " Checking session...")
	case ViewLogin:
		return m.loginView.View()
	case ViewBoard:
		return m.boardView.View()
	case ViewTaskEdit:
		return m.taskFormView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// requestStatus describes the global request status and the signed-in
// account for the header.
func (m Model) requestStatus() (string, lipgloss.Style) {
	st := m.snapshot.App.Status
	style := theme.RequestStatusStyle(st)

	switch st {
	case model.RequestLoading:
		return m.spinner.View() + " syncing", style
	case model.RequestFailed:
		return "✗ failed", style
	}
	if u := m.snapshot.Session.User; u != nil {
		return u.Login + " <" + u.Email + ">", style
	}
	return "signed out", style
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewLoading:
		return "q quit"
	case ViewLogin:
		return "enter submit | tab next field | ctrl+c quit"
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewTaskEdit:
		return "enter next/submit | esc cancel"
	}
	if m.boardView.Capturing() {
		return "enter confirm | esc cancel"
	}
	return "tab switch pane | n new | R rename | e edit | x done | d delete | f filter | : command | ? help"
}
