package sync

import (
	"context"
	gosync "sync"

	"github.com/nhle/todolists/internal/api"
	"github.com/nhle/todolists/internal/logger"
	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/state"
)

// Remote is the subset of the todo-list API the syncer drives.
// *api.Client implements it.
type Remote interface {
	Login(ctx context.Context, params model.LoginParams) (api.Envelope[api.LoginData], error)
	Logout(ctx context.Context) (api.Envelope[api.Empty], error)
	Me(ctx context.Context) (api.Envelope[model.User], error)
	CaptchaURL(ctx context.Context) (api.CaptchaURL, error)

	ListTodos(ctx context.Context) ([]model.TodoList, error)
	AddTodo(ctx context.Context, title string) (api.Envelope[api.Item[model.TodoList]], error)
	RenameTodo(ctx context.Context, todoID, title string) (api.Envelope[api.Empty], error)
	DeleteTodo(ctx context.Context, todoID string) (api.Envelope[api.Empty], error)

	ListTasks(ctx context.Context, todoID string) (api.TasksPage, error)
	AddTask(ctx context.Context, todoID, title string) (api.Envelope[api.Item[model.Task]], error)
	UpdateTask(ctx context.Context, todoID, taskID string, m model.UpdateTaskModel) (api.Envelope[api.Item[model.Task]], error)
	DeleteTask(ctx context.Context, todoID, taskID string) (api.Envelope[api.Empty], error)
}

// CredentialStore persists the login of users who ask to be remembered.
type CredentialStore interface {
	SaveLogin(email, password string) error
	ForgetLogin() error
}

// Syncer keeps the state container consistent with the remote service.
// Every method that talks to the network marks the global status loading
// before the call and succeeded or failed after it, and returns nil, a
// *api.ResultError or the transport error.
type Syncer struct {
	remote      Remote
	store       *state.Store
	credentials CredentialStore
	log         logger.Logger

	initOnce gosync.Once
	initErr  error
}

// Option customises a Syncer.
type Option func(*Syncer)

// WithCredentials stores remembered logins in cs.
func WithCredentials(cs CredentialStore) Option {
	return func(s *Syncer) {
		s.credentials = cs
	}
}

// WithLogger sets the logger used to record failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Syncer) {
		s.log = l.With("component", "sync")
	}
}

// New creates a Syncer driving remote and updating store.
func New(remote Remote, store *state.Store, opts ...Option) *Syncer {
	s := &Syncer{
		remote: remote,
		store:  store,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the state container the syncer updates.
func (s *Syncer) Store() *state.Store {
	return s.store
}

// DismissError clears the global error message.
func (s *Syncer) DismissError() {
	s.store.Dispatch(state.SetError{})
}

func (s *Syncer) begin(also ...state.Action) {
	s.store.Dispatch(append(also, state.SetStatus{Status: model.RequestLoading})...)
}

func (s *Syncer) succeed(actions ...state.Action) {
	s.store.Dispatch(append(actions, state.SetStatus{Status: model.RequestSucceeded})...)
}

func (s *Syncer) networkError(op string, err error, also ...state.Action) {
	s.log.Warn("request failed", "op", op, "err", err)
	state.HandleNetworkError(s.store, err, also...)
}

func appError[T any](s *Syncer, op string, env api.Envelope[T], also ...state.Action) error {
	err := env.Err()
	s.log.Warn("request rejected", "op", op, "err", err)
	state.HandleAppError(s.store, env, also...)
	return err
}
