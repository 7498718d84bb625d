package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the public todo-list service.
const DefaultBaseURL = "https://social-network.samuraijs.com/api/1.1"

// APIConfig holds settings for the remote todo-list service.
type APIConfig struct {
	// BaseURL is the service root including the version path.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// APIKey is sent in the API-KEY header. When empty the key is looked
	// up in the system keyring.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// TimeoutSec bounds a single request. Zero disables the limit.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// Timeout returns the per-request timeout as a duration.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`

	// File receives log output. The terminal belongs to the UI, so an
	// empty value discards logs.
	File string `mapstructure:"file" yaml:"file"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigDir returns ~/.config/todolists, falling back to the
// working directory when the home directory is unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "todolists")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/todolists/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			BaseURL:    DefaultBaseURL,
			TimeoutSec: 30,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(DefaultConfigDir(), "todolists.log"),
		},
		Display: DisplayConfig{
			Theme: "default",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration. Values
// may be overridden with TODOLISTS_* environment variables
// (e.g. TODOLISTS_API_API_KEY).
func LoadConfig(path string) (*AppConfig, error) {
	defaults := defaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("todolists")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api.base_url", defaults.API.BaseURL)
	v.SetDefault("api.api_key", "")
	v.SetDefault("api.timeout_sec", defaults.API.TimeoutSec)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("display.theme", defaults.Display.Theme)

	if err := v.ReadInConfig(); err != nil {
		_, missing := err.(*os.PathError)
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			missing = true
		}
		if !missing {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("log", cfg.Log)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
