package devserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nhle/todolists/internal/api"
	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/store"
)

const msgListNotFound = "Todolist not found"

type titleRequest struct {
	Title string `json:"title"`
}

// titleMessage turns a title validation failure into the service's
// message text.
func titleMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrTitleRequired):
		return "The Title field is required. (Title)"
	case errors.Is(err, model.ErrTitleTooLong):
		return "The field Title must be a string or array type with a maximum length of '100'. (Title)"
	default:
		return err.Error()
	}
}

// decodeTitle reads and validates a {"title"} body. On failure it has
// already written the response.
func decodeTitle(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req titleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeResult(w, api.ResultFailed, "invalid request body")
		return "", false
	}
	title, err := model.NormalizeTitle(req.Title)
	if err != nil {
		writeResult(w, api.ResultFailed, titleMessage(err))
		return "", false
	}
	return title, true
}

func (s *Server) listTodoLists(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	lists, err := s.store.GetTodoLists(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, "todolists.list", err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) createTodoList(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}

	list, err := s.store.CreateTodoList(r.Context(), user.ID, title)
	if err != nil {
		s.internalError(w, "todolists.create", err)
		return
	}
	writeOK(w, item{Item: list})
}

func (s *Server) renameTodoList(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}

	err := s.store.RenameTodoList(r.Context(), user.ID, chi.URLParam(r, "listID"), title)
	if s.storeFailed(w, "todolists.rename", err, msgListNotFound) {
		return
	}
	writeOK(w, nil)
}

func (s *Server) deleteTodoList(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	err := s.store.DeleteTodoList(r.Context(), user.ID, chi.URLParam(r, "listID"))
	if s.storeFailed(w, "todolists.delete", err, msgListNotFound) {
		return
	}
	writeOK(w, nil)
}

// storeFailed writes the response for a failed store call and reports
// whether it did. ErrNotFound becomes a resultCode 1 envelope.
func (s *Server) storeFailed(w http.ResponseWriter, op string, err error, notFoundMsg string) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, store.ErrNotFound):
		writeResult(w, api.ResultFailed, notFoundMsg)
	default:
		s.internalError(w, op, err)
	}
	return true
}
