package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todolists/internal/model"
)

// effectOp names an effect whose completion the root model reacts to.
type effectOp int

const (
	opInitialize effectOp = iota
	opLogin
	opLogout
	opFetch
	opMutate
)

// effectDoneMsg is sent when an effect finishes. Failures are already
// recorded in the store; err only drives follow-up effects.
type effectDoneMsg struct {
	op  effectOp
	err error
}

// stateChangedMsg is sent when the store notifies a change.
type stateChangedMsg struct{}

// waitForChange blocks on the store subscription and reports the next
// change. It returns nil once the subscription is closed.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

// run executes fn off the UI goroutine and reports its completion.
func run(op effectOp, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return effectDoneMsg{op: op, err: fn(context.Background())}
	}
}

func (m *Model) initialize() tea.Cmd {
	return run(opInitialize, m.syncer.Initialize)
}

func (m *Model) login(params model.LoginParams) tea.Cmd {
	s := m.syncer
	return run(opLogin, func(ctx context.Context) error {
		return s.Login(ctx, params)
	})
}

func (m *Model) logout() tea.Cmd {
	return run(opLogout, m.syncer.Logout)
}

func (m *Model) fetchAll() tea.Cmd {
	return run(opFetch, m.syncer.FetchAll)
}

func (m *Model) addList(title string) tea.Cmd {
	s := m.syncer
	return run(opMutate, func(ctx context.Context) error {
		return s.AddList(ctx, title)
	})
}

func (m *Model) renameList(listID, title string) tea.Cmd {
	s := m.syncer
	return run(opMutate, func(ctx context.Context) error {
		return s.RenameList(ctx, listID, title)
	})
}

func (m *Model) removeList(listID string) tea.Cmd {
	s := m.syncer
	return run(opMutate, func(ctx context.Context) error {
		return s.RemoveList(ctx, listID)
	})
}

func (m *Model) addTask(listID, title string) tea.Cmd {
	s := m.syncer
	return run(opMutate, func(ctx context.Context) error {
		return s.AddTask(ctx, listID, title)
	})
}

func (m *Model) updateTask(listID, taskID string, patch model.TaskPatch) tea.Cmd {
	s := m.syncer
	return run(opMutate, func(ctx context.Context) error {
		return s.UpdateTask(ctx, listID, taskID, patch)
	})
}

func (m *Model) removeTask(listID, taskID string) tea.Cmd {
	s := m.syncer
	return run(opMutate, func(ctx context.Context) error {
		return s.RemoveTask(ctx, listID, taskID)
	})
}
