package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/state"
)

// ErrUnknownTask is returned by UpdateTask when the task is not in the
// store, so no complete model can be built.
var ErrUnknownTask = errors.New("task not loaded")

// FetchTasks replaces the bucket of a list with the server's tasks.
func (s *Syncer) FetchTasks(ctx context.Context, listID string) error {
	s.begin()
	if err := s.fetchBucket(ctx, listID); err != nil {
		return err
	}
	s.succeed()
	return nil
}

// fetchBucket loads one list's tasks without touching the success status.
func (s *Syncer) fetchBucket(ctx context.Context, listID string) error {
	page, err := s.remote.ListTasks(ctx, listID)
	if err != nil {
		s.networkError("list tasks", err)
		return err
	}
	if page.Error != nil && *page.Error != "" {
		s.log.Warn("request rejected", "op", "list tasks", "err", *page.Error)
		state.HandleTasksPageError(s.store, page)
		return fmt.Errorf("listing tasks of %s: %s", listID, *page.Error)
	}

	s.store.Dispatch(state.TasksLoaded{ListID: listID, Tasks: page.Items})
	return nil
}

// AddTask creates a task; on success it is prepended to its list's bucket.
func (s *Syncer) AddTask(ctx context.Context, listID, title string) error {
	s.begin()

	env, err := s.remote.AddTask(ctx, listID, title)
	if err != nil {
		s.networkError("add task", err)
		return err
	}
	if !env.OK() {
		return appError(s, "add task", env)
	}

	task := env.Data.Item
	if task.TodoListID == "" {
		task.TodoListID = listID
	}
	s.succeed(state.TaskAdded{Task: task})
	return nil
}

// UpdateTask changes the fields present in patch. The remote endpoint
// needs the complete model, so the stored task is merged with the patch
// before sending; on success the same patch is applied locally.
func (s *Syncer) UpdateTask(ctx context.Context, listID, taskID string, patch model.TaskPatch) error {
	current, ok := s.store.Task(listID, taskID)
	if !ok {
		err := fmt.Errorf("updating %s/%s: %w", listID, taskID, ErrUnknownTask)
		s.store.Dispatch(state.ErrorMessage(err.Error()), state.SetStatus{Status: model.RequestFailed})
		return err
	}

	idle := state.TaskEntityStatusChanged{ListID: listID, TaskID: taskID, Status: model.RequestIdle}
	s.begin(state.TaskEntityStatusChanged{ListID: listID, TaskID: taskID, Status: model.RequestLoading})

	env, err := s.remote.UpdateTask(ctx, listID, taskID, patch.ApplyModel(current.UpdateModel()))
	if err != nil {
		s.networkError("update task", err, idle)
		return err
	}
	if !env.OK() {
		return appError(s, "update task", env, idle)
	}

	s.succeed(state.TaskUpdated{ListID: listID, TaskID: taskID, Patch: patch}, idle)
	return nil
}

// RemoveTask deletes a task. On any failure the task stays and its status
// returns to idle.
func (s *Syncer) RemoveTask(ctx context.Context, listID, taskID string) error {
	idle := state.TaskEntityStatusChanged{ListID: listID, TaskID: taskID, Status: model.RequestIdle}
	s.begin(state.TaskEntityStatusChanged{ListID: listID, TaskID: taskID, Status: model.RequestLoading})

	env, err := s.remote.DeleteTask(ctx, listID, taskID)
	if err != nil {
		s.networkError("delete task", err, idle)
		return err
	}
	if !env.OK() {
		return appError(s, "delete task", env, idle)
	}

	s.succeed(state.TaskRemoved{ListID: listID, TaskID: taskID})
	return nil
}
