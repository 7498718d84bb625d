package testutil

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// CreateUser registers an account with a cheaply hashed password.
func CreateUser(t *testing.T, s store.Store, email, login, password string) model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	u, err := s.CreateUser(context.Background(), email, login, string(hash))
	if err != nil {
		t.Fatalf("creating user %s: %v", email, err)
	}
	return u
}
