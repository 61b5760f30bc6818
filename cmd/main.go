package main

import (
	"context"
	"os"

	"github.com/desertthunder/mixtape/internal/services"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	if err := shared.LoadEnv(config); err != nil {
		logger.Warnf("failed to apply environment overrides: %v", err)
	}

	var spotifyService services.Service
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			spotifyService = svc
		} else {
			logger.Warnf("spotify service unavailable: %v", err)
		}
	}

	var generator services.Generator
	if svc, err := services.NewLLMGenerator(config.Generator, nil); err == nil {
		generator = svc
	}

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Spotify:   spotifyService,
		Generator: generator,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "mixtape",
		Usage:    "Generate Spotify playlists from a prompt",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
