package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/todolists/internal/model"
)

func TestNewPrefillsFromConfig(t *testing.T) {
	f := New(&model.AppConfig{API: model.APIConfig{BaseURL: "http://localhost:8080/api/1.1/"}})

	r := f.Result()
	assert.Equal(t, "http://localhost:8080/api/1.1", r.BaseURL)
	assert.Empty(t, r.APIKey)
	assert.True(t, r.UseKeyring)
}

func TestNewDefaultsBaseURL(t *testing.T) {
	f := New(&model.AppConfig{})
	assert.Equal(t, model.DefaultBaseURL, f.Result().BaseURL)
}

func TestApply(t *testing.T) {
	cfg := &model.AppConfig{API: model.APIConfig{APIKey: "old"}}

	Result{BaseURL: "https://x.test/api", APIKey: "k", UseKeyring: true}.Apply(cfg)
	assert.Equal(t, "https://x.test/api", cfg.API.BaseURL)
	assert.Empty(t, cfg.API.APIKey)

	Result{BaseURL: "https://x.test/api", APIKey: "k"}.Apply(cfg)
	assert.Equal(t, "k", cfg.API.APIKey)
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validateURL("https://social-network.samuraijs.com/api/1.1"))
	assert.NoError(t, validateURL("http://localhost:8080/api/1.1"))
	assert.Error(t, validateURL("localhost:8080"))
	assert.Error(t, validateURL("ftp://x.test"))

	assert.EqualError(t, validateRequired("API key")(" "), "API key is required")
	assert.NoError(t, validateRequired("API key")("abc"))
}
