package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/mixtape/internal/server"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP backend until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	if host := cmd.String("host"); host != "" {
		config.Server.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		config.Server.Port = port
	}

	router := server.NewRouter(config, r.engine, r.logger)
	httpServer := &http.Server{
		Addr:    config.Server.Addr(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("listening on %v", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		r.logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

// loadConfig resolves the effective config for a command invocation. The
// runner's config wins when set; otherwise the named file is loaded with
// environment overrides applied.
func (r *Runner) loadConfig(path string) *shared.Config {
	if r.config != nil {
		return r.config
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(path); err == nil {
		if loaded, err := shared.LoadConfig(path); err == nil {
			config = loaded
		} else {
			r.logger.Warnf("failed to load config, using defaults: %v", err)
		}
	}

	if err := shared.LoadEnv(config); err != nil {
		r.logger.Warnf("failed to apply environment overrides: %v", err)
	}

	return config
}
