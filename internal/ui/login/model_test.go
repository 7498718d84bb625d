package login

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/todolists/internal/model"
)

func TestParamsTrimmed(t *testing.T) {
	m := New(80, 24)
	m.Prefill(" free@samuraijs.com ", "secret123", true)
	m.fb.captcha = " 1234 "

	assert.Equal(t, model.LoginParams{
		Email:      "free@samuraijs.com",
		Password:   "secret123",
		RememberMe: true,
		Captcha:    "1234",
	}, m.params())
}

func TestStartWithCaptchaShowsField(t *testing.T) {
	m := New(80, 24)

	m.Start("")
	assert.NotContains(t, m.View(), "Anti-bot symbols")

	m.fb.captcha = "stale"
	m.Start("http://x.test/captcha.png")
	assert.Equal(t, "http://x.test/captcha.png", m.CaptchaURL())
	assert.Empty(t, m.fb.captcha)
	assert.Contains(t, m.View(), "Anti-bot symbols")
}

func TestValidators(t *testing.T) {
	assert.EqualError(t, validateEmail(""), "email: required")
	assert.EqualError(t, validateEmail("nope"), "email: invalid email address")
	assert.NoError(t, validateEmail("free@samuraijs.com"))

	assert.EqualError(t, validatePassword("123"), "password: must be 6 characters or more")
	assert.NoError(t, validatePassword("123456"))

	assert.EqualError(t, validateRequired("Captcha")(""), "Captcha is required")
}
