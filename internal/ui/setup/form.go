package setup

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nhle/todolists/internal/model"
)

// Result is what the user entered on the first-run form.
type Result struct {
	BaseURL string
	APIKey  string

	// UseKeyring stores the API key in the system keyring instead of the
	// config file.
	UseKeyring bool
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid.
type formBindings struct {
	baseURL    string
	apiKey     string
	useKeyring bool
}

// Form is the first-run setup form shown when no API key is configured.
type Form struct {
	form *huh.Form
	fb   *formBindings
}

// New builds the setup form prefilled from cfg.
func New(cfg *model.AppConfig) *Form {
	fb := &formBindings{
		baseURL:    cfg.API.BaseURL,
		apiKey:     cfg.API.APIKey,
		useKeyring: true,
	}
	if fb.baseURL == "" {
		fb.baseURL = model.DefaultBaseURL
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to todolists").
				Description("The service needs an API key before you can sign in."),
			huh.NewInput().
				Title("Service URL").
				Description("Root of the todo-list API, including the version path").
				Value(&fb.baseURL).
				Validate(validateURL),
			huh.NewInput().
				Title("API key").
				Description("Sent in the API-KEY header of every request").
				EchoMode(huh.EchoModePassword).
				Value(&fb.apiKey).
				Validate(validateRequired("API key")),
			huh.NewConfirm().
				Title("Store the key in the system keyring?").
				Description("Otherwise it is written to the config file.").
				Affirmative("Keyring").
				Negative("Config file").
				Value(&fb.useKeyring),
		),
	)

	return &Form{form: form, fb: fb}
}

// Run shows the form on the terminal and blocks until it is submitted.
func (f *Form) Run() (Result, error) {
	if err := f.form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Result{}, fmt.Errorf("setup cancelled: %w", err)
		}
		return Result{}, fmt.Errorf("running setup form: %w", err)
	}
	return f.Result(), nil
}

// Result returns the current field values, normalized.
func (f *Form) Result() Result {
	return Result{
		BaseURL:    strings.TrimRight(strings.TrimSpace(f.fb.baseURL), "/"),
		APIKey:     strings.TrimSpace(f.fb.apiKey),
		UseKeyring: f.fb.useKeyring,
	}
}

// Apply copies r into cfg. The API key goes into cfg only when it is not
// kept in the keyring.
func (r Result) Apply(cfg *model.AppConfig) {
	cfg.API.BaseURL = r.BaseURL
	if r.UseKeyring {
		cfg.API.APIKey = ""
	} else {
		cfg.API.APIKey = r.APIKey
	}
}

func validateURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("enter an http(s) URL")
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
