package services

import (
	"context"

	"github.com/desertthunder/mixtape/internal/models"
	"golang.org/x/oauth2"
)

// Service defines the interface for a music provider that can hold playlists
// on behalf of an authenticated user.
type Service interface {
	// Authenticate performs OAuth or token-based authentication.
	// Expects either an "access_token" or "auth_code" in credentials.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// CreatePlaylist creates a new playlist for the authenticated user.
	CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error)

	// AddTracks appends tracks (by provider URI) to an existing playlist.
	AddTracks(ctx context.Context, playlistID string, uris []string) error

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService extends Service for providers using the OAuth2
// authorization-code flow, used by the CLI loopback login.
type OAuthService interface {
	Service

	// GetAuthURL returns the provider authorization URL for the given state.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying OAuth2 config for code exchange.
	GetOAuthConfig() *oauth2.Config
}

// Generator produces a playlist description and track selection from a user
// prompt and a candidate track list. Implementations are pure glue around an
// LLM API; selection strategy lives entirely on the other side of the wire.
type Generator interface {
	Generate(ctx context.Context, prompt string, tracks []models.Track) (*models.GeneratedPlaylist, error)
}
