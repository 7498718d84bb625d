package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todolists/internal/api"
	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/tests/testutil"
)

func loggedIn(t *testing.T, ts *testutil.TestServer) *api.Client {
	t.Helper()

	c := ts.Client()
	env, err := c.Login(context.Background(), model.LoginParams{
		Email:    testutil.TestEmail,
		Password: testutil.TestPassword,
	})
	require.NoError(t, err)
	require.True(t, env.OK(), "login rejected: %v", env.Messages)
	return c
}

func TestLoginMeLogout(t *testing.T) {
	ctx := context.Background()
	ts := testutil.NewTestServer(t)
	c := ts.Client()

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, api.ResultFailed, me.ResultCode)
	assert.Equal(t, []string{"You are not authorized"}, me.Messages)

	login, err := c.Login(ctx, model.LoginParams{Email: testutil.TestEmail, Password: testutil.TestPassword})
	require.NoError(t, err)
	require.True(t, login.OK())
	assert.NotZero(t, login.Data.UserID)

	me, err = c.Me(ctx)
	require.NoError(t, err)
	require.True(t, me.OK())
	assert.Equal(t, testutil.TestLogin, me.Data.Login)
	assert.Equal(t, login.Data.UserID, me.Data.ID)

	out, err := c.Logout(ctx)
	require.NoError(t, err)
	assert.True(t, out.OK())

	me, err = c.Me(ctx)
	require.NoError(t, err)
	assert.False(t, me.OK())
}

func TestWrongAPIKeyIsTransportError(t *testing.T) {
	ts := testutil.NewTestServer(t)
	c := api.NewClient(ts.BaseURL(), "wrong")

	_, err := c.ListTodos(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "API-KEY is missing or invalid", apiErr.Message)
	assert.True(t, api.IsUnauthorized(err))
}

func TestTodoListsRequireSession(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, err := ts.Client().ListTodos(context.Background())
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
}

func TestTodoListAndTaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	ts := testutil.NewTestServer(t)
	c := loggedIn(t, ts)

	added, err := c.AddTodo(ctx, "Groceries")
	require.NoError(t, err)
	require.True(t, added.OK())
	list := added.Data.Item
	assert.Equal(t, "Groceries", list.Title)
	assert.NotEmpty(t, list.ID)

	renamed, err := c.RenameTodo(ctx, list.ID, "Weekend groceries")
	require.NoError(t, err)
	assert.True(t, renamed.OK())

	lists, err := c.ListTodos(ctx)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Weekend groceries", lists[0].Title)

	task, err := c.AddTask(ctx, list.ID, "Milk")
	require.NoError(t, err)
	require.True(t, task.OK())
	assert.Equal(t, list.ID, task.Data.Item.TodoListID)

	m := task.Data.Item.UpdateModel()
	m.Status = model.TaskStatusCompleted
	updated, err := c.UpdateTask(ctx, list.ID, task.Data.Item.ID, m)
	require.NoError(t, err)
	require.True(t, updated.OK())
	assert.Equal(t, model.TaskStatusCompleted, updated.Data.Item.Status)

	page, err := c.ListTasks(ctx, list.ID)
	require.NoError(t, err)
	assert.Nil(t, page.Error)
	assert.Equal(t, 1, page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Milk", page.Items[0].Title)

	del, err := c.DeleteTask(ctx, list.ID, task.Data.Item.ID)
	require.NoError(t, err)
	assert.True(t, del.OK())

	del, err = c.DeleteTask(ctx, list.ID, task.Data.Item.ID)
	require.NoError(t, err)
	assert.Equal(t, api.ResultFailed, del.ResultCode)
	assert.Equal(t, []string{"task not found"}, del.Messages)
	assert.True(t, api.IsResultError(del.Err()))

	gone, err := c.DeleteTodo(ctx, list.ID)
	require.NoError(t, err)
	assert.True(t, gone.OK())
}

func TestTitleValidation(t *testing.T) {
	ctx := context.Background()
	ts := testutil.NewTestServer(t)
	c := loggedIn(t, ts)

	env, err := c.AddTodo(ctx, "   ")
	require.NoError(t, err)
	assert.Equal(t, api.ResultFailed, env.ResultCode)
	require.Len(t, env.Messages, 1)
	assert.Contains(t, env.Messages[0], "required")

	env, err = c.AddTodo(ctx, strings.Repeat("x", model.MaxTitleLength+1))
	require.NoError(t, err)
	assert.Equal(t, api.ResultFailed, env.ResultCode)
	assert.Contains(t, env.Messages[0], "maximum length")
}

func TestCaptchaAfterRepeatedFailures(t *testing.T) {
	ctx := context.Background()
	ts := testutil.NewTestServer(t)
	c := ts.Client()
	bad := model.LoginParams{Email: testutil.TestEmail, Password: "wrong-password"}

	for i := range 2 {
		env, err := c.Login(ctx, bad)
		require.NoError(t, err)
		assert.Equal(t, api.ResultFailed, env.ResultCode, "attempt %d", i+1)
	}
	env, err := c.Login(ctx, bad)
	require.NoError(t, err)
	assert.Equal(t, api.ResultCaptchaRequired, env.ResultCode)
	assert.True(t, api.IsCaptchaRequired(env.Err()))

	good := model.LoginParams{Email: testutil.TestEmail, Password: testutil.TestPassword}
	env, err = c.Login(ctx, good)
	require.NoError(t, err)
	assert.Equal(t, api.ResultCaptchaRequired, env.ResultCode)

	captcha, err := c.CaptchaURL(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(captcha.URL, "/api/1.1/security/captcha"), captcha.URL)

	good.Captcha = testutil.TestCaptcha
	env, err = c.Login(ctx, good)
	require.NoError(t, err)
	assert.True(t, env.OK())
}

func TestTasksOfUnknownListCarryError(t *testing.T) {
	ts := testutil.NewTestServer(t)
	c := loggedIn(t, ts)

	page, err := c.ListTasks(context.Background(), "no-such-list")
	require.NoError(t, err)
	require.NotNil(t, page.Error)
	assert.Equal(t, "Todolist not found", *page.Error)
}

func TestTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(slow.Close)

	c := api.NewClient(slow.URL, "k", api.WithTimeout(50*time.Millisecond))
	_, err := c.ListTodos(context.Background())
	require.Error(t, err)
	assert.False(t, api.IsUnauthorized(err))
}

func TestNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := api.NewClient(srv.URL, "k").ListTodos(context.Background())

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
	assert.Contains(t, apiErr.Body, "boom")
}

func TestEnvelopeErrCarriesResultCode(t *testing.T) {
	assert.NoError(t, api.Envelope[api.Empty]{ResultCode: api.ResultSuccess}.Err())

	err := api.Envelope[api.Empty]{ResultCode: api.ResultFailed, Messages: []string{"list locked"}}.Err()
	var re *api.ResultError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, api.ResultFailed, re.Code)
	assert.Equal(t, []string{"list locked"}, re.Messages)
	assert.True(t, api.IsResultError(err))
	assert.False(t, api.IsCaptchaRequired(err))

	err = api.Envelope[api.Empty]{ResultCode: api.ResultCaptchaRequired}.Err()
	assert.True(t, api.IsCaptchaRequired(err))
}
