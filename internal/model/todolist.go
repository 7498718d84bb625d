package model

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the longest title the remote service accepts.
const MaxTitleLength = 100

// ErrTitleRequired is returned by NormalizeTitle for blank input.
var ErrTitleRequired = errors.New("title is required")

// ErrTitleTooLong is returned by NormalizeTitle for overlong input.
var ErrTitleTooLong = errors.New("title must not exceed 100 characters")

// TodoList is a named container of tasks, owned by the remote service.
type TodoList struct {
	ID        string `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	AddedDate string `json:"addedDate" db:"added_date"`
	Order     int    `json:"order" db:"sort_order"`
}

// NormalizeTitle trims title and checks it against the service limits.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}
