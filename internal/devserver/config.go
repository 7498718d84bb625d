package devserver

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config configures the development server. Every field can be set from a
// YAML file or from DEVSERVER_* environment variables.
type Config struct {
	Address  string `yaml:"address" env:"DEVSERVER_ADDRESS" env-default:":8080"`
	DBPath   string `yaml:"db_path" env:"DEVSERVER_DB_PATH" env-default:"devserver.db"`
	APIKey   string `yaml:"api_key" env:"DEVSERVER_API_KEY" env-default:"dev-api-key"`
	LogLevel string `yaml:"log_level" env:"DEVSERVER_LOG_LEVEL" env-default:"info"`

	// MaxFailedLogins is the number of consecutive failures after which
	// login requires a captcha.
	MaxFailedLogins int    `yaml:"max_failed_logins" env:"DEVSERVER_MAX_FAILED_LOGINS" env-default:"3"`
	CaptchaAnswer   string `yaml:"captcha_answer" env:"DEVSERVER_CAPTCHA_ANSWER" env-default:"1234"`

	// The seed account is created on startup when it does not exist yet.
	SeedEmail    string `yaml:"seed_email" env:"DEVSERVER_SEED_EMAIL" env-default:"free@samuraijs.com"`
	SeedLogin    string `yaml:"seed_login" env:"DEVSERVER_SEED_LOGIN" env-default:"free"`
	SeedPassword string `yaml:"seed_password" env:"DEVSERVER_SEED_PASSWORD" env-default:"free-password"`
}

// LoadConfig reads path when it exists and falls back to the environment
// otherwise. An empty path reads only the environment.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("reading env: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return Config{}, fmt.Errorf("reading config %q: %w", path, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("reading env: %w", err)
		}
	}

	return cfg, nil
}
