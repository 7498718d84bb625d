package state

import "github.com/nhle/todolists/internal/model"

// AppState is the process-wide request status.
type AppState struct {
	Status model.RequestStatus
	Error  *string

	// Initialized becomes true once the startup session check resolves.
	Initialized bool
}

func initialAppState() AppState {
	return AppState{Status: model.RequestIdle}
}

// reduceApp is the transition function of the app slice.
func reduceApp(s AppState, a Action) AppState {
	switch a := a.(type) {
	case SetStatus:
		s.Status = a.Status
	case SetError:
		if a.Error == nil {
			s.Error = nil
		} else {
			msg := *a.Error
			s.Error = &msg
		}
	case SetInitialized:
		s.Initialized = a.Initialized
	}
	return s
}

// SessionState is the authentication state.
type SessionState struct {
	LoggedIn   bool
	User       *model.User
	CaptchaURL string
}

// reduceSession is the transition function of the session slice.
func reduceSession(s SessionState, a Action) SessionState {
	switch a := a.(type) {
	case SetLoggedIn:
		s.LoggedIn = a.LoggedIn
		if !a.LoggedIn {
			s.User = nil
		} else {
			s.CaptchaURL = ""
		}
	case SetUser:
		if a.User == nil {
			s.User = nil
		} else {
			u := *a.User
			s.User = &u
		}
	case SetCaptchaURL:
		s.CaptchaURL = a.URL
	}
	return s
}
