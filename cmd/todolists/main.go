package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todolists/internal/api"
	"github.com/nhle/todolists/internal/app"
	"github.com/nhle/todolists/internal/credential"
	"github.com/nhle/todolists/internal/logger"
	"github.com/nhle/todolists/internal/model"
	"github.com/nhle/todolists/internal/state"
	appsync "github.com/nhle/todolists/internal/sync"
	"github.com/nhle/todolists/internal/ui/setup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the YAML config file")
	forceSetup := flag.Bool("setup", false, "run the first-run setup form again")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	log, logCloser, err := logger.FromConfig(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ring, err := credential.Open(model.DefaultConfigDir())
	if err != nil {
		log.Warn("keyring: unavailable, secrets stay in the config file", "err", err)
	}

	apiKey, err := resolveAPIKey(cfg, *configPath, ring, *forceSetup)
	if err != nil {
		return err
	}

	client := api.NewClient(cfg.API.BaseURL, apiKey,
		api.WithTimeout(cfg.API.Timeout()),
		api.WithLogger(log.With("component", "api")),
	)

	syncOpts := []appsync.Option{appsync.WithLogger(log.With("component", "sync"))}
	var appOpts []app.Option
	if ring != nil {
		syncOpts = append(syncOpts, appsync.WithCredentials(ring))
		if email, password, ok := ring.Remembered(); ok {
			appOpts = append(appOpts, app.WithRememberedLogin(email, password))
		}
	}
	syncer := appsync.New(client, state.New(), syncOpts...)

	log.Info("todolists: starting", "base_url", cfg.API.BaseURL)
	p := tea.NewProgram(app.New(syncer, appOpts...), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	log.Info("todolists: stopped")
	return nil
}

// resolveAPIKey returns the configured API key, looking in the keyring
// when the config file has none and running the setup form as a last
// resort. The form's answers are persisted.
func resolveAPIKey(cfg *model.AppConfig, configPath string, ring *credential.Keyring, force bool) (string, error) {
	if !force {
		if cfg.API.APIKey != "" {
			return cfg.API.APIKey, nil
		}
		if ring != nil {
			key, err := ring.APIKey()
			if err == nil && key != "" {
				return key, nil
			}
			if err != nil && !errors.Is(err, credential.ErrNotFound) {
				return "", err
			}
		}
	}

	res, err := setup.New(cfg).Run()
	if err != nil {
		return "", err
	}
	if ring == nil {
		res.UseKeyring = false
	}
	if res.UseKeyring {
		if err := ring.SetAPIKey(res.APIKey); err != nil {
			return "", err
		}
	}
	res.Apply(cfg)
	if err := model.SaveConfig(configPath, cfg); err != nil {
		return "", err
	}
	return res.APIKey, nil
}
