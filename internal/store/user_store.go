package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/todolists/internal/model"
)

// CreateUser registers an account. The email is stored lower-cased.
func (s *SQLiteStore) CreateUser(
	ctx context.Context,
	email, login, passwordHash string,
) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return model.User{}, fmt.Errorf("user email must not be empty")
	}

	var exists int
	if err := s.db.GetContext(ctx, &exists,
		"SELECT COUNT(*) FROM users WHERE email = ?", email); err != nil {
		return model.User{}, fmt.Errorf("checking email %s: %w", email, err)
	}
	if exists > 0 {
		return model.User{}, ErrEmailTaken
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (email, login, password_hash) VALUES (?, ?, ?)",
		email, login, passwordHash,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("creating user %s: %w", email, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("reading user id: %w", err)
	}

	return model.User{ID: int(id), Email: email, Login: login}, nil
}

// GetUserByEmail returns the account registered under email.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	var u UserRecord
	err := s.db.GetContext(ctx, &u,
		"SELECT id, email, login, password_hash FROM users WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)),
	)
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", email, notFound(err))
	}
	return &u, nil
}

// GetUserByID returns the account with the given id.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u, "SELECT id, email, login FROM users WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, notFound(err))
	}
	return &u, nil
}

// RecordFailedLogin increments the failure counter of email and returns
// the new value. Unknown addresses are counted too.
func (s *SQLiteStore) RecordFailedLogin(ctx context.Context, email string) (int, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var failures int
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO login_attempts (email, failures) VALUES (?, 1)
			ON CONFLICT(email) DO UPDATE SET failures = failures + 1`,
			email,
		); err != nil {
			return err
		}
		return tx.GetContext(ctx, &failures,
			"SELECT failures FROM login_attempts WHERE email = ?", email)
	})
	if err != nil {
		return 0, fmt.Errorf("recording failed login for %s: %w", email, err)
	}
	return failures, nil
}

// FailedLogins returns the number of consecutive failed logins for email.
func (s *SQLiteStore) FailedLogins(ctx context.Context, email string) (int, error) {
	var failures int
	err := s.db.GetContext(ctx, &failures,
		"SELECT COALESCE(MAX(failures), 0) FROM login_attempts WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)),
	)
	if err != nil {
		return 0, fmt.Errorf("reading failed logins for %s: %w", email, err)
	}
	return failures, nil
}

// ResetFailedLogins clears the failure counter of email.
func (s *SQLiteStore) ResetFailedLogins(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM login_attempts WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return fmt.Errorf("resetting failed logins for %s: %w", email, err)
	}
	return nil
}

// CreateSession opens a session for userID and returns its token.
func (s *SQLiteStore) CreateSession(ctx context.Context, userID int) (string, error) {
	token := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id) VALUES (?, ?)", token, userID)
	if err != nil {
		return "", fmt.Errorf("creating session for user %d: %w", userID, err)
	}
	return token, nil
}

// GetSessionUser returns the user a session token belongs to.
func (s *SQLiteStore) GetSessionUser(ctx context.Context, token string) (*model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u, `
		SELECT u.id, u.email, u.login
		FROM sessions s JOIN users u ON u.id = s.user_id
		WHERE s.token = ?`, token)
	if err != nil {
		return nil, fmt.Errorf("getting session: %w", notFound(err))
	}
	return &u, nil
}

// DeleteSession ends a session. Unknown tokens are ignored.
func (s *SQLiteStore) DeleteSession(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
