package testutil

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/nhle/todolists/internal/api"
	"github.com/nhle/todolists/internal/devserver"
	"github.com/nhle/todolists/internal/logger"
	"github.com/nhle/todolists/internal/store"
)

// Test account credentials seeded into every TestServer.
const (
	TestAPIKey   = "test-api-key"
	TestEmail    = "free@samuraijs.com"
	TestLogin    = "free"
	TestPassword = "free-password"
	TestCaptcha  = "1234"
)

// TestServer is a development server over an in-memory store, listening
// on a loopback port for the duration of a test.
type TestServer struct {
	*httptest.Server
	Store *store.SQLiteStore
}

// BaseURL returns the API root clients should be pointed at.
func (ts *TestServer) BaseURL() string {
	return ts.URL + devserver.BasePath
}

// Client returns a fresh API client with its own cookie jar.
func (ts *TestServer) Client(opts ...api.Option) *api.Client {
	return api.NewClient(ts.BaseURL(), TestAPIKey, opts...)
}

// NewTestServer starts a development server with the test account seeded.
// It is shut down when the test completes.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	st := NewTestStore(t)
	srv := devserver.New(devserver.Config{
		APIKey:          TestAPIKey,
		MaxFailedLogins: 3,
		CaptchaAnswer:   TestCaptcha,
		SeedEmail:       TestEmail,
		SeedLogin:       TestLogin,
		SeedPassword:    TestPassword,
	}, st, logger.Discard())

	if err := srv.Seed(context.Background()); err != nil {
		t.Fatalf("seeding test server: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &TestServer{Server: ts, Store: st}
}
