package store

import (
	"context"
	"errors"

	"github.com/nhle/todolists/internal/model"
)

// ErrNotFound is returned when a row does not exist or is not owned by the
// requesting user.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned by CreateUser for a duplicate address.
var ErrEmailTaken = errors.New("email already registered")

// UserRecord is a user row including its credential hash.
type UserRecord struct {
	model.User
	PasswordHash string `db:"password_hash"`
}

// TaskPage selects a window of a list's tasks. Page is 1-based.
type TaskPage struct {
	Page  int
	Count int
}

// Store defines the persistence interface of the development server:
// accounts, sessions, and the todo-lists and tasks each account owns.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, email, login, passwordHash string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*UserRecord, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)

	// === Login attempts ===

	RecordFailedLogin(ctx context.Context, email string) (int, error)
	FailedLogins(ctx context.Context, email string) (int, error)
	ResetFailedLogins(ctx context.Context, email string) error

	// === Sessions ===

	CreateSession(ctx context.Context, userID int) (string, error)
	GetSessionUser(ctx context.Context, token string) (*model.User, error)
	DeleteSession(ctx context.Context, token string) error

	// === Todo-lists ===

	CreateTodoList(ctx context.Context, userID int, title string) (model.TodoList, error)
	GetTodoLists(ctx context.Context, userID int) ([]model.TodoList, error)
	RenameTodoList(ctx context.Context, userID int, id, title string) error
	DeleteTodoList(ctx context.Context, userID int, id string) error

	// === Tasks ===

	CreateTask(ctx context.Context, userID int, listID, title string) (model.Task, error)
	GetTasks(ctx context.Context, userID int, listID string, page TaskPage) ([]model.Task, int, error)
	UpdateTask(ctx context.Context, userID int, listID, taskID string, m model.UpdateTaskModel) (model.Task, error)
	DeleteTask(ctx context.Context, userID int, listID, taskID string) error
}
