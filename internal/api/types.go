package api

import "github.com/nhle/todolists/internal/model"

// ResultCode is the application-level outcome carried by every envelope.
type ResultCode int

const (
	ResultSuccess         ResultCode = 0
	ResultFailed          ResultCode = 1
	ResultCaptchaRequired ResultCode = 10
)

// Envelope is the uniform response wrapper used by the service.
type Envelope[T any] struct {
	Data         T          `json:"data"`
	Messages     []string   `json:"messages"`
	FieldsErrors []string   `json:"fieldsErrors"`
	ResultCode   ResultCode `json:"resultCode"`
}

// OK reports whether the envelope signals success.
func (e Envelope[T]) OK() bool {
	return e.ResultCode == ResultSuccess
}

// Err returns nil for a successful envelope and a *ResultError otherwise.
func (e Envelope[T]) Err() error {
	if e.OK() {
		return nil
	}
	return &ResultError{Code: e.ResultCode, Messages: e.Messages}
}

// Empty is the data payload of envelopes that carry none.
type Empty struct{}

// Item wraps a single created entity.
type Item[T any] struct {
	Item T `json:"item"`
}

// LoginData is returned by a successful login.
type LoginData struct {
	UserID int `json:"userId"`
}

// TasksPage is the (non-enveloped) response of the task listing endpoint.
type TasksPage struct {
	Items      []model.Task `json:"items"`
	TotalCount int          `json:"totalCount"`
	Error      *string      `json:"error"`
}

// CaptchaURL is returned by the captcha endpoint.
type CaptchaURL struct {
	URL string `json:"url"`
}

// errorBody is the shape of non-2xx response bodies.
type errorBody struct {
	Message string `json:"message"`
}

type titleBody struct {
	Title string `json:"title"`
}
