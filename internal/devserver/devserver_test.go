package devserver_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todolists/internal/api"
	"github.com/nhle/todolists/internal/devserver"
	"github.com/nhle/todolists/internal/logger"
	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/tests/testutil"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := devserver.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, 3, cfg.MaxFailedLogins)
	assert.NotEmpty(t, cfg.APIKey)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("DEVSERVER_ADDRESS", ":9999")
	t.Setenv("DEVSERVER_MAX_FAILED_LOGINS", "5")

	cfg, err := devserver.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Address)
	assert.Equal(t, 5, cfg.MaxFailedLogins)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_key: from-file\ncaptcha_answer: abcd\n"), 0o600))

	cfg, err := devserver.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, "abcd", cfg.CaptchaAnswer)
	assert.Equal(t, "devserver.db", cfg.DBPath)
}

func TestSeedIsIdempotent(t *testing.T) {
	st := testutil.NewTestStore(t)
	srv := devserver.New(devserver.Config{
		SeedEmail:    "seed@example.com",
		SeedLogin:    "seed",
		SeedPassword: "secret1",
	}, st, logger.Discard())

	require.NoError(t, srv.Seed(context.Background()))
	require.NoError(t, srv.Seed(context.Background()))

	u, err := st.GetUserByEmail(context.Background(), "seed@example.com")
	require.NoError(t, err)
	assert.Equal(t, "seed", u.Login)
}

func TestListsAreIsolatedPerAccount(t *testing.T) {
	ctx := context.Background()
	ts := testutil.NewTestServer(t)
	testutil.CreateUser(t, ts.Store, "bob@example.com", "bob", "bob-password")

	ann := ts.Client()
	env, err := ann.Login(ctx, model.LoginParams{Email: testutil.TestEmail, Password: testutil.TestPassword})
	require.NoError(t, err)
	require.True(t, env.OK())
	added, err := ann.AddTodo(ctx, "Private")
	require.NoError(t, err)
	require.True(t, added.OK())

	bob := ts.Client()
	env, err = bob.Login(ctx, model.LoginParams{Email: "bob@example.com", Password: "bob-password"})
	require.NoError(t, err)
	require.True(t, env.OK())

	lists, err := bob.ListTodos(ctx)
	require.NoError(t, err)
	assert.Empty(t, lists)

	del, err := bob.DeleteTodo(ctx, added.Data.Item.ID)
	require.NoError(t, err)
	assert.Equal(t, api.ResultFailed, del.ResultCode)

	lists, err = ann.ListTodos(ctx)
	require.NoError(t, err)
	assert.Len(t, lists, 1)
}

func TestCaptchaImageNeedsNoKey(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.BaseURL() + "/security/captcha")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
