package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/desertthunder/mixtape/internal/formatter"
	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/desertthunder/mixtape/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Generate runs a playlist generation from the command line.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	prompt := cmd.StringArg("prompt")
	if prompt == "" {
		return fmt.Errorf("%w: prompt argument is required", shared.ErrMissingArgument)
	}

	if r.engine == nil {
		return fmt.Errorf("%w: generation engine not initialized", shared.ErrServiceUnavailable)
	}

	var trackList []models.Track
	if tracksPath := cmd.String("tracks"); tracksPath != "" {
		data, err := os.ReadFile(tracksPath)
		if err != nil {
			return fmt.Errorf("failed to read tracks file: %w", err)
		}
		if err := json.Unmarshal(data, &trackList); err != nil {
			return fmt.Errorf("%w: tracks file is not a JSON track array: %v", shared.ErrInvalidInput, err)
		}
	}

	accessToken := cmd.String("token")

	progress := make(chan tasks.ProgressUpdate, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Infof("[%d/%d] %s", update.Step, update.Total, update.Message)
		}
	}()

	generated, err := r.engine.Run(ctx, progress, prompt, trackList, accessToken)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if outputFile := cmd.String("output"); outputFile != "" || cmd.String("format") != "" {
		written, err := formatter.WriteExport(prompt, generated, cmd.String("format"), outputFile)
		if err != nil {
			return err
		}
		r.writePlain("✓ Playlist exported to %s\n", written)
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(generated, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Generated Playlist")
	if generated.Description != "" {
		r.writePlain("%s\n\n", generated.Description)
	}

	for i, track := range generated.Tracks {
		r.writePlain("%d. %s - %s\n", i+1, track.Artist, track.Title)
	}

	if generated.PlaylistID != "" {
		r.writePlain("\n✓ Saved to Spotify (playlist %s)\n", generated.PlaylistID)
	}

	return nil
}
