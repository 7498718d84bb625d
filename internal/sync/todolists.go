package sync

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/state"
)

// FetchAll replaces the list collection with the server's and then loads
// the tasks of every list concurrently. It returns once every task fetch
// has been applied; the status only becomes succeeded when all of them
// succeeded.
func (s *Syncer) FetchAll(ctx context.Context) error {
	s.begin()

	lists, err := s.remote.ListTodos(ctx)
	if err != nil {
		s.networkError("list todolists", err)
		return err
	}
	s.store.Dispatch(state.ListsLoaded{Lists: lists})

	// Each fetch reports its own failure; siblings keep running.
	var g errgroup.Group
	for _, l := range lists {
		g.Go(func() error {
			return s.fetchBucket(ctx, l.ID)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.succeed()
	return nil
}

// AddList creates a list; on success it becomes the first in the
// collection and gets an empty task bucket.
func (s *Syncer) AddList(ctx context.Context, title string) error {
	s.begin()

	env, err := s.remote.AddTodo(ctx, title)
	if err != nil {
		s.networkError("add todolist", err)
		return err
	}
	if !env.OK() {
		return appError(s, "add todolist", env)
	}

	s.succeed(state.ListAdded{List: env.Data.Item})
	return nil
}

// RenameList changes a list's title in place. The list is marked loading
// while the call is in flight.
func (s *Syncer) RenameList(ctx context.Context, listID, title string) error {
	idle := state.ListEntityStatusChanged{ID: listID, Status: model.RequestIdle}
	s.begin(state.ListEntityStatusChanged{ID: listID, Status: model.RequestLoading})

	env, err := s.remote.RenameTodo(ctx, listID, title)
	if err != nil {
		s.networkError("rename todolist", err, idle)
		return err
	}
	if !env.OK() {
		return appError(s, "rename todolist", env, idle)
	}

	s.succeed(state.ListRenamed{ID: listID, Title: title}, idle)
	return nil
}

// SetFilter changes which tasks of a list are shown. It is local only.
func (s *Syncer) SetFilter(listID string, filter model.FilterValue) {
	s.store.Dispatch(state.ListFilterChanged{ID: listID, Filter: filter})
}

// RemoveList deletes a list together with its task bucket. On any failure
// the list stays and its status returns to idle so the user can retry.
func (s *Syncer) RemoveList(ctx context.Context, listID string) error {
	idle := state.ListEntityStatusChanged{ID: listID, Status: model.RequestIdle}
	s.begin(state.ListEntityStatusChanged{ID: listID, Status: model.RequestLoading})

	env, err := s.remote.DeleteTodo(ctx, listID)
	if err != nil {
		s.networkError("delete todolist", err, idle)
		return err
	}
	if !env.OK() {
		return appError(s, "delete todolist", env, idle)
	}

	s.succeed(state.ListRemoved{ID: listID})
	return nil
}
