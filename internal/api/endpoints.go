package api

import (
	"context"
	"net/url"

	"github.com/nhle/todolists/internal/model"
)

// Login authenticates with email and password. The session cookie is
// stored in the client's jar on success.
func (c *Client) Login(ctx context.Context, params model.LoginParams) (Envelope[LoginData], error) {
	var env Envelope[LoginData]
	err := c.post(ctx, "/auth/login", params, &env)
	return env, err
}

// Logout ends the current session.
func (c *Client) Logout(ctx context.Context) (Envelope[Empty], error) {
	var env Envelope[Empty]
	err := c.delete(ctx, "/auth/login", &env)
	return env, err
}

// Me returns the user behind the current session.
func (c *Client) Me(ctx context.Context) (Envelope[model.User], error) {
	var env Envelope[model.User]
	err := c.get(ctx, "/auth/me", &env)
	return env, err
}

// CaptchaURL returns the image URL of the captcha the next login must
// answer.
func (c *Client) CaptchaURL(ctx context.Context) (CaptchaURL, error) {
	var res CaptchaURL
	err := c.get(ctx, "/security/get-captcha-url", &res)
	return res, err
}

// ListTodos returns every todo-list of the current user.
func (c *Client) ListTodos(ctx context.Context) ([]model.TodoList, error) {
	var lists []model.TodoList
	if err := c.get(ctx, "/todo-lists", &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// AddTodo creates a todo-list.
func (c *Client) AddTodo(ctx context.Context, title string) (Envelope[Item[model.TodoList]], error) {
	var env Envelope[Item[model.TodoList]]
	err := c.post(ctx, "/todo-lists", titleBody{Title: title}, &env)
	return env, err
}

// RenameTodo changes the title of a todo-list.
func (c *Client) RenameTodo(ctx context.Context, todoID, title string) (Envelope[Empty], error) {
	var env Envelope[Empty]
	err := c.put(ctx, todoPath(todoID), titleBody{Title: title}, &env)
	return env, err
}

// DeleteTodo removes a todo-list and its tasks.
func (c *Client) DeleteTodo(ctx context.Context, todoID string) (Envelope[Empty], error) {
	var env Envelope[Empty]
	err := c.delete(ctx, todoPath(todoID), &env)
	return env, err
}

// ListTasks returns the tasks of a todo-list.
func (c *Client) ListTasks(ctx context.Context, todoID string) (TasksPage, error) {
	var page TasksPage
	err := c.get(ctx, todoPath(todoID)+"/tasks", &page)
	return page, err
}

// AddTask creates a task in a todo-list.
func (c *Client) AddTask(ctx context.Context, todoID, title string) (Envelope[Item[model.Task]], error) {
	var env Envelope[Item[model.Task]]
	err := c.post(ctx, todoPath(todoID)+"/tasks", titleBody{Title: title}, &env)
	return env, err
}

// UpdateTask replaces the updatable fields of a task. The model must be
// complete; the endpoint does not merge.
func (c *Client) UpdateTask(
	ctx context.Context,
	todoID, taskID string,
	m model.UpdateTaskModel,
) (Envelope[Item[model.Task]], error) {
	var env Envelope[Item[model.Task]]
	err := c.put(ctx, taskPath(todoID, taskID), m, &env)
	return env, err
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, todoID, taskID string) (Envelope[Empty], error) {
	var env Envelope[Empty]
	err := c.delete(ctx, taskPath(todoID, taskID), &env)
	return env, err
}

func todoPath(todoID string) string {
	return "/todo-lists/" + url.PathEscape(todoID)
}

func taskPath(todoID, taskID string) string {
	return todoPath(todoID) + "/tasks/" + url.PathEscape(taskID)
}
