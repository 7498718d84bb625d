package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is a transport-level failure: the server answered with a non-2xx
// status.
type Error struct {
	StatusCode int
	Method     string
	Path       string

	// Message is the server-provided "message" field, when present.
	Message string

	// Body is the raw response body.
	Body string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// IsUnauthorized reports whether err (or any error in its chain) is a 401
// or 403 response.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized ||
		apiErr.StatusCode == http.StatusForbidden
}

// ResultError is an application-level failure: the request succeeded but
// the envelope carries a nonzero result code.
type ResultError struct {
	Code     ResultCode
	Messages []string
}

func (e *ResultError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("result code %d", e.Code)
	}
	return fmt.Sprintf("result code %d: %s", e.Code, strings.Join(e.Messages, "; "))
}

// IsResultError reports whether err (or any error in its chain) is a
// ResultError.
func IsResultError(err error) bool {
	var resErr *ResultError
	return errors.As(err, &resErr)
}

// IsCaptchaRequired reports whether err is a ResultError asking for a
// captcha.
func IsCaptchaRequired(err error) bool {
	var resErr *ResultError
	return errors.As(err, &resErr) && resErr.Code == ResultCaptchaRequired
}
