package devserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/todolists/internal/api"
	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/store"
)

const (
	msgBadCredentials = "Incorrect Email or Password"
	msgBadCaptcha     = "Incorrect anti-bot symbols"
	rememberFor       = 30 * 24 * time.Hour
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var params model.LoginParams
	if err := decodeJSON(r, &params); err != nil {
		writeResult(w, api.ResultFailed, "invalid request body")
		return
	}
	if params.Email == "" || params.Password == "" {
		writeResult(w, api.ResultFailed, msgBadCredentials)
		return
	}
	ctx := r.Context()

	failures, err := s.store.FailedLogins(ctx, params.Email)
	if err != nil {
		s.internalError(w, "auth.login: reading failures", err)
		return
	}
	if failures >= s.cfg.MaxFailedLogins && params.Captcha != s.cfg.CaptchaAnswer {
		writeResult(w, api.ResultCaptchaRequired, msgBadCaptcha)
		return
	}

	user, err := s.store.GetUserByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.internalError(w, "auth.login: loading user", err)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(params.Password)) != nil {
		n, err := s.store.RecordFailedLogin(ctx, params.Email)
		if err != nil {
			s.internalError(w, "auth.login: recording failure", err)
			return
		}
		s.log.Info("login rejected", "email", params.Email, "failures", n)
		code := api.ResultFailed
		if n >= s.cfg.MaxFailedLogins {
			code = api.ResultCaptchaRequired
		}
		writeResult(w, code, msgBadCredentials)
		return
	}

	if err := s.store.ResetFailedLogins(ctx, params.Email); err != nil {
		s.internalError(w, "auth.login: resetting failures", err)
		return
	}
	token, err := s.store.CreateSession(ctx, user.ID)
	if err != nil {
		s.internalError(w, "auth.login: creating session", err)
		return
	}

	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if params.RememberMe {
		cookie.Expires = time.Now().Add(rememberFor)
	}
	http.SetCookie(w, cookie)

	writeOK(w, api.LoginData{UserID: user.ID})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		if err := s.store.DeleteSession(r.Context(), cookie.Value); err != nil {
			s.internalError(w, "auth.logout: deleting session", err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeOK(w, nil)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeResult(w, api.ResultFailed, notAuthorized)
		return
	}
	writeOK(w, user)
}

func (s *Server) captchaURL(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	writeJSON(w, http.StatusOK, api.CaptchaURL{
		URL: fmt.Sprintf("%s://%s%s/security/captcha", scheme, r.Host, BasePath),
	})
}

// captchaImage stands in for the captcha picture. It tells the reader the
// expected answer.
func (s *Server) captchaImage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "captcha: %s\n", s.cfg.CaptchaAnswer)
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, "err", err)
	writeMessage(w, http.StatusInternalServerError, "internal error")
}
