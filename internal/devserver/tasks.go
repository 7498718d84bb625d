package devserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nhle/todolists/internal/api"
	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/store"
)

const (
	msgTaskNotFound = "task not found"
	maxPageCount    = 100
)

// listTasks answers with a bare page, not an envelope. Without a count
// parameter every task is returned.
func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	listID := chi.URLParam(r, "listID")

	page, err := parsePage(r)
	if err != nil {
		msg := err.Error()
		writeJSON(w, http.StatusBadRequest, api.TasksPage{Items: []model.Task{}, Error: &msg})
		return
	}

	tasks, total, err := s.store.GetTasks(r.Context(), user.ID, listID, page)
	if errors.Is(err, store.ErrNotFound) {
		msg := msgListNotFound
		writeJSON(w, http.StatusOK, api.TasksPage{Items: []model.Task{}, Error: &msg})
		return
	}
	if err != nil {
		s.internalError(w, "tasks.list", err)
		return
	}
	writeJSON(w, http.StatusOK, api.TasksPage{Items: tasks, TotalCount: total})
}

func parsePage(r *http.Request) (store.TaskPage, error) {
	var page store.TaskPage
	q := r.URL.Query()

	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageCount {
			return page, errors.New("count must be between 1 and 100")
		}
		page.Count = n
	}
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, errors.New("page must be a positive number")
		}
		page.Page = n
	}
	return page, nil
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}

	task, err := s.store.CreateTask(r.Context(), user.ID, chi.URLParam(r, "listID"), title)
	if s.storeFailed(w, "tasks.create", err, msgListNotFound) {
		return
	}
	writeOK(w, item{Item: task})
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var m model.UpdateTaskModel
	if err := decodeJSON(r, &m); err != nil {
		writeResult(w, api.ResultFailed, "invalid request body")
		return
	}
	title, err := model.NormalizeTitle(m.Title)
	if err != nil {
		writeResult(w, api.ResultFailed, titleMessage(err))
		return
	}
	m.Title = title
	if m.Status < model.TaskStatusNew || m.Status > model.TaskStatusDraft {
		writeResult(w, api.ResultFailed, "invalid status")
		return
	}
	if m.Priority < model.TaskPriorityLow || m.Priority > model.TaskPriorityLater {
		writeResult(w, api.ResultFailed, "invalid priority")
		return
	}

	task, err := s.store.UpdateTask(r.Context(), user.ID,
		chi.URLParam(r, "listID"), chi.URLParam(r, "taskID"), m)
	if s.storeFailed(w, "tasks.update", err, msgTaskNotFound) {
		return
	}
	writeOK(w, item{Item: task})
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	err := s.store.DeleteTask(r.Context(), user.ID,
		chi.URLParam(r, "listID"), chi.URLParam(r, "taskID"))
	if s.storeFailed(w, "tasks.delete", err, msgTaskNotFound) {
		return
	}
	writeOK(w, nil)
}
