package auth

import (
	"fmt"
	"net/url"

	"github.com/desertthunder/mixtape/internal/shared"
)

const (
	// SpotifyAuthURL is the provider's authorization endpoint.
	SpotifyAuthURL = "https://accounts.spotify.com/authorize"
	// SpotifyTokenURL is the provider's token endpoint.
	SpotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// DefaultScopes is the space-delimited scope string requested during login.
const DefaultScopes = "user-top-read playlist-modify-private playlist-modify-public"

// Authorizer builds provider authorization URLs, issuing a fresh state token
// from the store for each request.
type Authorizer struct {
	authURL     string
	clientID    string
	redirectURI string
	scopes      string
	states      *StateStore
}

// NewAuthorizer creates an Authorizer from Spotify credentials. The scope
// string defaults to [DefaultScopes] when unset.
func NewAuthorizer(creds shared.SpotifyConfig, states *StateStore) *Authorizer {
	scopes := creds.Scopes
	if scopes == "" {
		scopes = DefaultScopes
	}

	return &Authorizer{
		authURL:     SpotifyAuthURL,
		clientID:    creds.ClientID,
		redirectURI: creds.RedirectURI,
		scopes:      scopes,
		states:      states,
	}
}

// AuthCodeURL issues a state token and returns the full authorization URL
// along with the state. Fails when the client ID or redirect URI is unset;
// that is an operator configuration error, not a user-flow error.
func (a *Authorizer) AuthCodeURL() (string, string, error) {
	if a.clientID == "" || a.redirectURI == "" {
		return "", "", fmt.Errorf("%w: client_id and redirect_uri must be set", shared.ErrMissingCredentials)
	}

	state, err := a.states.Issue()
	if err != nil {
		return "", "", err
	}

	params := url.Values{}
	params.Set("client_id", a.clientID)
	params.Set("response_type", "code")
	params.Set("redirect_uri", a.redirectURI)
	params.Set("scope", a.scopes)
	params.Set("state", state)

	return a.authURL + "?" + params.Encode(), state, nil
}
