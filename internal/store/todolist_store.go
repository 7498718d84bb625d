package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/todolists/internal/model"
)

const todolistColumns = "id, title, added_date, sort_order"

// CreateTodoList inserts a list owned by userID. Its order is lower than
// every existing list of that user, so it sorts first.
func (s *SQLiteStore) CreateTodoList(
	ctx context.Context,
	userID int,
	title string,
) (model.TodoList, error) {
	list := model.TodoList{
		ID:        uuid.New().String(),
		Title:     title,
		AddedDate: s.addedDate(),
	}

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var minOrder int
		if err := tx.GetContext(ctx, &minOrder,
			"SELECT COALESCE(MIN(sort_order), 0) FROM todolists WHERE user_id = ?",
			userID,
		); err != nil {
			return fmt.Errorf("getting min sort_order: %w", err)
		}
		list.Order = minOrder - 1

		_, err := tx.ExecContext(ctx, `
			INSERT INTO todolists (id, user_id, title, sort_order, added_date)
			VALUES (?, ?, ?, ?, ?)`,
			list.ID, userID, list.Title, list.Order, list.AddedDate,
		)
		return err
	})
	if err != nil {
		return model.TodoList{}, fmt.Errorf("creating todolist: %w", err)
	}
	return list, nil
}

// GetTodoLists returns every list owned by userID, first in order first.
func (s *SQLiteStore) GetTodoLists(ctx context.Context, userID int) ([]model.TodoList, error) {
	lists := []model.TodoList{}
	err := s.db.SelectContext(ctx, &lists,
		"SELECT "+todolistColumns+" FROM todolists WHERE user_id = ? ORDER BY sort_order, added_date",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying todolists: %w", err)
	}
	return lists, nil
}

// RenameTodoList changes the title of a list owned by userID.
func (s *SQLiteStore) RenameTodoList(ctx context.Context, userID int, id, title string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE todolists SET title = ? WHERE id = ? AND user_id = ?",
		title, id, userID,
	)
	if err != nil {
		return fmt.Errorf("renaming todolist %s: %w", id, err)
	}
	if err := affected(result); err != nil {
		return fmt.Errorf("renaming todolist %s: %w", id, err)
	}
	return nil
}

// DeleteTodoList removes a list owned by userID. Cascades to its tasks.
func (s *SQLiteStore) DeleteTodoList(ctx context.Context, userID int, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM todolists WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting todolist %s: %w", id, err)
	}
	if err := affected(result); err != nil {
		return fmt.Errorf("deleting todolist %s: %w", id, err)
	}
	return nil
}

// ownsList fails with ErrNotFound unless list id belongs to userID.
func ownsList(ctx context.Context, q sqlx.QueryerContext, userID int, id string) error {
	var n int
	if err := sqlx.GetContext(ctx, q, &n,
		"SELECT COUNT(*) FROM todolists WHERE id = ? AND user_id = ?", id, userID,
	); err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
