package state

import "github.com/nhle/todolists/internal/model"

// Action is a state transition request. The set of variants is closed:
// only types in this package implement it.
type Action interface {
	action()
}

// App slice.

// SetStatus sets the coarse request-lifecycle flag.
type SetStatus struct{ Status model.RequestStatus }

// SetError sets or clears (nil) the global error message.
type SetError struct{ Error *string }

// SetInitialized marks the initial "who am I" call as resolved.
type SetInitialized struct{ Initialized bool }

// Session slice.

// SetLoggedIn flips the session state.
type SetLoggedIn struct{ LoggedIn bool }

// SetUser records the authenticated account, or clears it (nil).
type SetUser struct{ User *model.User }

// SetCaptchaURL records the captcha the next login must answer. An empty
// URL means no captcha is required.
type SetCaptchaURL struct{ URL string }

// List slice. ListsLoaded, ListAdded, ListRemoved and ListsCleared are
// lifecycle events the task slice also reacts to.

// ListsLoaded replaces the whole collection with the server's lists.
type ListsLoaded struct{ Lists []model.TodoList }

// ListAdded prepends a newly created list.
type ListAdded struct{ List model.TodoList }

// ListRenamed patches the title of a list in place.
type ListRenamed struct {
	ID    string
	Title string
}

// ListFilterChanged sets the client-only task filter of a list.
type ListFilterChanged struct {
	ID     string
	Filter model.FilterValue
}

// ListEntityStatusChanged sets the per-list request status.
type ListEntityStatusChanged struct {
	ID     string
	Status model.RequestStatus
}

// ListRemoved deletes a list and, through the task slice, its bucket.
type ListRemoved struct{ ID string }

// ListsCleared empties the collection and every task bucket.
type ListsCleared struct{}

// Task slice.

// TasksLoaded replaces the bucket of a list with the server's tasks.
type TasksLoaded struct {
	ListID string
	Tasks  []model.Task
}

// TaskAdded prepends a newly created task to its list's bucket.
type TaskAdded struct{ Task model.Task }

// TaskUpdated merges a patch into a stored task.
type TaskUpdated struct {
	ListID string
	TaskID string
	Patch  model.TaskPatch
}

// TaskEntityStatusChanged sets the per-task request status.
type TaskEntityStatusChanged struct {
	ListID string
	TaskID string
	Status model.RequestStatus
}

// TaskRemoved deletes a task from its bucket.
type TaskRemoved struct {
	ListID string
	TaskID string
}

func (SetStatus) action()               {}
func (SetError) action()                {}
func (SetInitialized) action()          {}
func (SetLoggedIn) action()             {}
func (SetUser) action()                 {}
func (SetCaptchaURL) action()           {}
func (ListsLoaded) action()             {}
func (ListAdded) action()               {}
func (ListRenamed) action()             {}
func (ListFilterChanged) action()       {}
func (ListEntityStatusChanged) action() {}
func (ListRemoved) action()             {}
func (ListsCleared) action()            {}
func (TasksLoaded) action()             {}
func (TaskAdded) action()               {}
func (TaskUpdated) action()             {}
func (TaskEntityStatusChanged) action() {}
func (TaskRemoved) action()             {}

// ErrorMessage is a convenience for building a SetError with a message.
func ErrorMessage(msg string) SetError {
	return SetError{Error: &msg}
}
