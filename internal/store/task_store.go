package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/todolists/internal/model"
)

const taskColumns = `id, todolist_id, title, description, status, priority,
	start_date, deadline, sort_order, added_date`

// CreateTask inserts a task at the top of a list owned by userID.
func (s *SQLiteStore) CreateTask(
	ctx context.Context,
	userID int,
	listID, title string,
) (model.Task, error) {
	task := model.Task{
		ID:         uuid.New().String(),
		TodoListID: listID,
		Title:      title,
		Status:     model.TaskStatusNew,
		Priority:   model.TaskPriorityLow,
		AddedDate:  s.addedDate(),
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := ownsList(ctx, tx, userID, listID); err != nil {
			return err
		}

		var minOrder int
		if err := tx.GetContext(ctx, &minOrder,
			"SELECT COALESCE(MIN(sort_order), 0) FROM tasks WHERE todolist_id = ?",
			listID,
		); err != nil {
			return fmt.Errorf("getting min sort_order: %w", err)
		}
		task.Order = minOrder - 1

		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO tasks (`+taskColumns+`)
			VALUES (:id, :todolist_id, :title, :description, :status, :priority,
				:start_date, :deadline, :sort_order, :added_date)`,
			task,
		)
		return err
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("creating task in %s: %w", listID, err)
	}
	return task, nil
}

// GetTasks returns one page of a list's tasks and the list's total task
// count. A zero page or count returns everything.
func (s *SQLiteStore) GetTasks(
	ctx context.Context,
	userID int,
	listID string,
	page TaskPage,
) ([]model.Task, int, error) {
	if err := ownsList(ctx, s.db, userID, listID); err != nil {
		return nil, 0, fmt.Errorf("listing tasks of %s: %w", listID, err)
	}

	var total int
	if err := s.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM tasks WHERE todolist_id = ?", listID); err != nil {
		return nil, 0, fmt.Errorf("counting tasks of %s: %w", listID, err)
	}

	query := "SELECT " + taskColumns + " FROM tasks WHERE todolist_id = ? ORDER BY sort_order, added_date"
	args := []any{listID}
	if page.Count > 0 {
		query += " LIMIT ? OFFSET ?"
		offset := 0
		if page.Page > 1 {
			offset = (page.Page - 1) * page.Count
		}
		args = append(args, page.Count, offset)
	}

	tasks := []model.Task{}
	if err := s.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("querying tasks of %s: %w", listID, err)
	}
	return tasks, total, nil
}

// UpdateTask replaces every updatable field of a task and returns the
// stored result.
func (s *SQLiteStore) UpdateTask(
	ctx context.Context,
	userID int,
	listID, taskID string,
	m model.UpdateTaskModel,
) (model.Task, error) {
	var task model.Task
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := ownsList(ctx, tx, userID, listID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE tasks SET
				title = ?, description = ?, status = ?, priority = ?,
				start_date = ?, deadline = ?
			WHERE id = ? AND todolist_id = ?`,
			m.Title, m.Description, m.Status, m.Priority,
			m.StartDate, m.Deadline,
			taskID, listID,
		)
		if err != nil {
			return err
		}
		if err := affected(result); err != nil {
			return err
		}

		return tx.GetContext(ctx, &task,
			"SELECT "+taskColumns+" FROM tasks WHERE id = ?", taskID)
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("updating task %s: %w", taskID, err)
	}
	return task, nil
}

// DeleteTask removes a task from a list owned by userID.
func (s *SQLiteStore) DeleteTask(ctx context.Context, userID int, listID, taskID string) error {
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := ownsList(ctx, tx, userID, listID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx,
			"DELETE FROM tasks WHERE id = ? AND todolist_id = ?", taskID, listID)
		if err != nil {
			return err
		}
		return affected(result)
	})
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", taskID, err)
	}
	return nil
}
