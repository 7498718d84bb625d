// Package devserver is a local implementation of the remote todo-list
// service, used for development and end-to-end tests.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/todolists/internal/logger"
	"github.com/nhle/todolists/internal/store"
)

// BasePath is the prefix every route is mounted under.
const BasePath = "/api/1.1"

const sessionCookie = "token"

// Server serves the todo-list REST API from a Store.
type Server struct {
	cfg   Config
	store store.Store
	log   logger.Logger
}

// New creates a Server.
func New(cfg Config, s store.Store, log logger.Logger) *Server {
	if cfg.MaxFailedLogins <= 0 {
		cfg.MaxFailedLogins = 3
	}
	return &Server{
		cfg:   cfg,
		store: s,
		log:   log.With("component", "devserver"),
	}
}

// Seed creates the configured seed account unless it already exists.
func (s *Server) Seed(ctx context.Context) error {
	if s.cfg.SeedEmail == "" {
		return nil
	}

	_, err := s.store.GetUserByEmail(ctx, s.cfg.SeedEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("looking up seed user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}
	u, err := s.store.CreateUser(ctx, s.cfg.SeedEmail, s.cfg.SeedLogin, string(hash))
	if err != nil {
		return fmt.Errorf("creating seed user: %w", err)
	}

	s.log.Info("seed user created", "email", u.Email, "id", u.ID)
	return nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(s.requestLog)

	r.Route(BasePath, func(r chi.Router) {
		// The captcha image is fetched by browsers, which never send the key.
		r.Get("/security/captcha", s.captchaImage)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAPIKey)
			r.Use(s.loadSession)

			r.Post("/auth/login", s.login)
			r.Delete("/auth/login", s.logout)
			r.Get("/auth/me", s.me)
			r.Get("/security/get-captcha-url", s.captchaURL)

			r.Group(func(r chi.Router) {
				r.Use(requireUser)

				r.Get("/todo-lists", s.listTodoLists)
				r.Post("/todo-lists", s.createTodoList)
				r.Put("/todo-lists/{listID}", s.renameTodoList)
				r.Delete("/todo-lists/{listID}", s.deleteTodoList)

				r.Get("/todo-lists/{listID}/tasks", s.listTasks)
				r.Post("/todo-lists/{listID}/tasks", s.createTask)
				r.Put("/todo-lists/{listID}/tasks/{taskID}", s.updateTask)
				r.Delete("/todo-lists/{listID}/tasks/{taskID}", s.deleteTask)
			})
		})
	})

	return r
}

// HTTPServer wraps Handler in a server listening on the configured address.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
