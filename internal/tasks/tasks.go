package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/mixtape/internal/models"
	"github.com/desertthunder/mixtape/internal/services"
	"github.com/desertthunder/mixtape/internal/shared"
)

// GenerateEngine defines the playlist generation operation.
type GenerateEngine interface {
	// Run generates a playlist from the prompt and candidate tracks. When
	// accessToken is non-empty, the selection is also saved to the provider
	// and the result carries the created playlist's ID.
	Run(ctx context.Context, progress chan<- ProgressUpdate, prompt string, tracks []models.Track, accessToken string) (*models.GeneratedPlaylist, error)
}

// Engine implements GenerateEngine over a generator and a provider service.
type Engine struct {
	generator services.Generator
	provider  services.Service
}

// NewEngine creates an Engine with the provided collaborators. The provider
// may be nil, in which case runs never save playlists.
func NewEngine(generator services.Generator, provider services.Service) *Engine {
	return &Engine{
		generator: generator,
		provider:  provider,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Run performs a full generation run.
func (e *Engine) Run(ctx context.Context, progress chan<- ProgressUpdate, prompt string, tracks []models.Track, accessToken string) (*models.GeneratedPlaylist, error) {
	if e.generator == nil {
		return nil, fmt.Errorf("%w: generator not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, generatingUpdate(1, 3))

	generated, err := e.generator.Generate(ctx, prompt, tracks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrGenerationFailed, err)
	}

	if accessToken == "" || e.provider == nil || len(generated.Tracks) == 0 {
		return generated, nil
	}

	e.sendProgress(progress, creatingPlaylistUpdate(2, 3))

	if err := e.provider.Authenticate(ctx, map[string]string{"access_token": accessToken}); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	name := playlistName(prompt)
	playlist, err := e.provider.CreatePlaylist(ctx, name, generated.Description, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	e.sendProgress(progress, addingTracksUpdate(3, 3, playlist))

	uris := make([]string, 0, len(generated.Tracks))
	for _, track := range generated.Tracks {
		if track.URI != "" {
			uris = append(uris, track.URI)
		}
	}

	if err := e.provider.AddTracks(ctx, playlist.ID, uris); err != nil {
		return nil, fmt.Errorf("failed to add tracks: %w", err)
	}

	generated.PlaylistID = playlist.ID
	return generated, nil
}

// playlistName derives a short playlist title from the user prompt.
func playlistName(prompt string) string {
	name := strings.TrimSpace(prompt)
	if len(name) > 60 {
		name = strings.TrimSpace(name[:60]) + "…"
	}
	if name == "" {
		name = "Generated Playlist"
	}
	return name
}
