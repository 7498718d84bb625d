package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,4}$`)

// MinPasswordLength is the shortest password the login form accepts.
const MinPasswordLength = 6

// User is the account returned by the "who am I" endpoint.
type User struct {
	ID    int    `json:"id" db:"id"`
	Email string `json:"email" db:"email"`
	Login string `json:"login" db:"login"`
}

// LoginParams are the credentials submitted to the login endpoint.
type LoginParams struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
	Captcha    string `json:"captcha,omitempty"`
}

// Validate checks the fields the way the login form does before any
// request is made.
func (p LoginParams) Validate() error {
	var errs []error
	if err := ValidateEmail(p.Email); err != nil {
		errs = append(errs, fmt.Errorf("email: %w", err))
	}
	if err := ValidatePassword(p.Password); err != nil {
		errs = append(errs, fmt.Errorf("password: %w", err))
	}
	return errors.Join(errs...)
}

// ValidateEmail checks a login email address.
func ValidateEmail(email string) error {
	switch email = strings.TrimSpace(email); {
	case email == "":
		return errors.New("required")
	case !emailPattern.MatchString(email):
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePassword checks a login password.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return errors.New("required")
	case len(password) < MinPasswordLength:
		return fmt.Errorf("must be %d characters or more", MinPasswordLength)
	}
	return nil
}
