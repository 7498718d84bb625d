package devserver

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/store"
)

const notAuthorized = "You are not authorized"

type contextKey int

const userKey contextKey = iota

func userFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok && u != nil
}

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("API-KEY")
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.APIKey)) != 1 {
			writeMessage(w, http.StatusUnauthorized, "API-KEY is missing or invalid")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loadSession attaches the session user to the request context when the
// token cookie names a live session.
func (s *Server) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		u, err := s.store.GetSessionUser(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				s.log.Error("loading session failed", "err", err)
				writeMessage(w, http.StatusInternalServerError, "internal error")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userFromContext(r.Context()); !ok {
			writeMessage(w, http.StatusUnauthorized, notAuthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
