package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a starter configuration file from the embedded template.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%w: config file already exists at %s", shared.ErrInvalidArgument, configPath)
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.writePlain("✓ Config file created at %s\n\n", configPath)
	r.writePlain("Next steps:\n")
	r.writePlain("  1. Set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET (env or config.toml)\n")
	r.writePlain("  2. Set OPENAI_API_KEY for playlist generation\n")
	r.writePlain("  3. Run: mixtape serve\n")

	return nil
}
