package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nhle/todolists/internal/devserver"
	"github.com/nhle/todolists/internal/logger"
	"github.com/nhle/todolists/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := devserver.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel), "text")
	log.Info("devserver: starting", "db", cfg.DBPath)

	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Error("devserver: opening store failed", "err", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := devserver.New(cfg, st, log)
	if err := srv.Seed(ctx); err != nil {
		log.Error("devserver: seeding failed", "err", err)
		os.Exit(1)
	}

	httpSrv := srv.HTTPServer()
	log.Info("http: listening", "addr", httpSrv.Addr, "base_path", devserver.BasePath)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("devserver: shutdown signal received")
	case err := <-serverErrCh:
		if err != nil {
			log.Error("http: server failed", "addr", httpSrv.Addr, "err", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http: graceful shutdown failed", "err", err)
		exitCode = 1
	}

	if exitCode != 0 {
		st.Close()
		os.Exit(exitCode)
	}
	log.Info("devserver: stopped")
}
