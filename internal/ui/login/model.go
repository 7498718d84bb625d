package login

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/theme"
)

// SubmitMsg is dispatched when the user submits valid credentials.
type SubmitMsg struct {
	Params model.LoginParams
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email      string
	password   string
	rememberMe bool
	captcha    string
}

// Model is the login screen.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	captchaURL string
	width      int
	height     int
}

// New creates a login form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Prefill sets the initial credentials, e.g. from a remembered login.
func (m *Model) Prefill(email, password string, remember bool) {
	m.fb.email = email
	m.fb.password = password
	m.fb.rememberMe = remember
}

// Start (re)builds the form. A non-empty captchaURL adds the captcha
// field; email and password survive the rebuild.
func (m *Model) Start(captchaURL string) tea.Cmd {
	m.captchaURL = captchaURL
	m.fb.captcha = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// CaptchaURL returns the captcha the form currently asks for.
func (m Model) CaptchaURL() string {
	return m.captchaURL
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		params := m.params()
		// Rebuild so the form can be submitted again after a rejection.
		restart := m.Start(m.captchaURL)
		return m, tea.Batch(restart, func() tea.Msg {
			return SubmitMsg{Params: params}
		})
	case huh.StateAborted:
		restart := m.Start(m.captchaURL)
		return m, restart
	}

	return m, cmd
}

func (m Model) params() model.LoginParams {
	return model.LoginParams{
		Email:      strings.TrimSpace(m.fb.email),
		Password:   m.fb.password,
		RememberMe: m.fb.rememberMe,
		Captcha:    strings.TrimSpace(m.fb.captcha),
	}
}

// View renders the login form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render("Sign in")}
	if m.captchaURL != "" {
		parts = append(parts, theme.HelpStyle.Render("Captcha: "+m.captchaURL))
	}
	parts = append(parts, m.form.View())

	return theme.PanelStyle.
		Width(m.formWidth() + 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth())
	}
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&m.fb.email).
			Validate(validateEmail),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&m.fb.password).
			Validate(validatePassword),
		huh.NewConfirm().
			Title("Remember me").
			Affirmative("Yes").
			Negative("No").
			Value(&m.fb.rememberMe),
	}
	if m.captchaURL != "" {
		fields = append(fields,
			huh.NewInput().
				Title("Anti-bot symbols").
				Description("Open the captcha link above and type what it shows").
				Value(&m.fb.captcha).
				Validate(validateRequired("Captcha")),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	return min(max(m.width-8, 40), 72)
}

func validateEmail(s string) error {
	if err := model.ValidateEmail(s); err != nil {
		return fmt.Errorf("email: %w", err)
	}
	return nil
}

func validatePassword(s string) error {
	if err := model.ValidatePassword(s); err != nil {
		return fmt.Errorf("password: %w", err)
	}
	return nil
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(fieldName + " is required")
		}
		return nil
	}
}
