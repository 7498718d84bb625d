package sync

import (
	"context"

	"github.com/nhle/todolists/internal/api"
	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/state"
)

// Login authenticates the user. When the service asks for a captcha its
// URL is stored in the session state before the failure is reported.
func (s *Syncer) Login(ctx context.Context, params model.LoginParams) error {
	s.begin()

	env, err := s.remote.Login(ctx, params)
	if err != nil {
		s.networkError("login", err)
		return err
	}
	if !env.OK() {
		var also []state.Action
		if env.ResultCode == api.ResultCaptchaRequired {
			if captcha, err := s.remote.CaptchaURL(ctx); err != nil {
				s.log.Warn("loading captcha failed", "err", err)
			} else {
				also = append(also, state.SetCaptchaURL{URL: captcha.URL})
			}
		}
		return appError(s, "login", env, also...)
	}

	if params.RememberMe {
		s.saveLogin(params)
	}
	s.log.Info("logged in", "user_id", env.Data.UserID)
	s.succeed(state.SetLoggedIn{LoggedIn: true})
	return nil
}

// Logout ends the session and clears every list and task so nothing
// leaks into the next session.
func (s *Syncer) Logout(ctx context.Context) error {
	s.begin()

	env, err := s.remote.Logout(ctx)
	if err != nil {
		s.networkError("logout", err)
		return err
	}
	if !env.OK() {
		return appError(s, "logout", env)
	}

	s.forgetLogin()
	s.log.Info("logged out")
	s.succeed(state.SetLoggedIn{LoggedIn: false}, state.ListsCleared{})
	return nil
}

// Me asks the service who the session belongs to. Whatever the outcome,
// the app is marked initialized in the same dispatch that reports it.
func (s *Syncer) Me(ctx context.Context) error {
	initialized := state.SetInitialized{Initialized: true}
	s.begin()

	env, err := s.remote.Me(ctx)
	if err != nil {
		s.networkError("me", err, initialized)
		return err
	}
	if !env.OK() {
		return appError(s, "me", env, initialized)
	}

	user := env.Data
	s.succeed(state.SetLoggedIn{LoggedIn: true}, state.SetUser{User: &user}, initialized)
	return nil
}

// Initialize runs the startup session check exactly once and, when a
// session exists, loads every list with its tasks. Later calls return the
// first call's result without touching the network.
func (s *Syncer) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		if err := s.Me(ctx); err != nil {
			s.initErr = err
			return
		}
		s.initErr = s.FetchAll(ctx)
	})
	return s.initErr
}

func (s *Syncer) saveLogin(params model.LoginParams) {
	if s.credentials == nil {
		return
	}
	if err := s.credentials.SaveLogin(params.Email, params.Password); err != nil {
		s.log.Warn("remembering login failed", "err", err)
	}
}

func (s *Syncer) forgetLogin() {
	if s.credentials == nil {
		return
	}
	if err := s.credentials.ForgetLogin(); err != nil {
		s.log.Debug("forgetting login failed", "err", err)
	}
}
