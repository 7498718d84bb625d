package state

import (
	"errors"

	"github.com/nhle/todolists/internal/api"
	"github.com/nhle/todolists/internal/model"
)

// FallbackErrorMessage is shown when a failure carries no usable text.
const FallbackErrorMessage = "Some error occurred"

// NetworkErrorMessage extracts the user-facing text of a transport error.
func NetworkErrorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return FallbackErrorMessage
}

// AppErrorMessage extracts the user-facing text of an application error.
func AppErrorMessage(messages []string) string {
	if len(messages) > 0 && messages[0] != "" {
		return messages[0]
	}
	return FallbackErrorMessage
}

// HandleNetworkError reports a transport failure: the global error is set
// and the status becomes failed. Extra actions (entity-status reverts)
// are applied in the same dispatch.
func HandleNetworkError(d Dispatcher, err error, also ...Action) {
	fail(d, NetworkErrorMessage(err), also)
}

// HandleAppError reports a nonzero result code the same way, using the
// first server message.
func HandleAppError[T any](d Dispatcher, env api.Envelope[T], also ...Action) {
	fail(d, AppErrorMessage(env.Messages), also)
}

// HandleTasksPageError reports a task listing that carries an error.
func HandleTasksPageError(d Dispatcher, page api.TasksPage, also ...Action) {
	var messages []string
	if page.Error != nil {
		messages = []string{*page.Error}
	}
	fail(d, AppErrorMessage(messages), also)
}

func fail(d Dispatcher, msg string, also []Action) {
	actions := make([]Action, 0, len(also)+2)
	actions = append(actions, also...)
	actions = append(actions, ErrorMessage(msg), SetStatus{Status: model.RequestFailed})
	d.Dispatch(actions...)
}
