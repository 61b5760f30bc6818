package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/mixtape/internal/shared"
)

// exchangeTimeout bounds each outbound token-endpoint call. Calls that run
// past it are treated as failures and never retried.
const exchangeTimeout = 15 * time.Second

// TokenBundle is the provider's token-endpoint response. It is relayed to the
// frontend and never persisted server-side.
type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// ExchangeResponse carries the provider's raw token-endpoint reply so refresh
// callers can mirror it without translation.
type ExchangeResponse struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the provider returned a 2xx status.
func (r *ExchangeResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Exchanger performs authorization-code and refresh-token grants against the
// provider's token endpoint, authenticated via HTTP Basic client credentials.
type Exchanger struct {
	TokenURL     string
	clientID     string
	clientSecret string
	redirectURI  string
	client       *http.Client
}

// NewExchanger creates an Exchanger for the given Spotify credentials.
func NewExchanger(creds shared.SpotifyConfig) *Exchanger {
	return &Exchanger{
		TokenURL:     SpotifyTokenURL,
		clientID:     creds.ClientID,
		clientSecret: creds.ClientSecret,
		redirectURI:  creds.RedirectURI,
		client:       &http.Client{Timeout: exchangeTimeout},
	}
}

// Configured reports whether client credentials are present.
func (e *Exchanger) Configured() bool {
	return e.clientID != "" && e.clientSecret != "" && e.redirectURI != ""
}

// ExchangeCode exchanges an authorization code for a token bundle.
func (e *Exchanger) ExchangeCode(ctx context.Context, code string) (*TokenBundle, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", e.redirectURI)

	resp, err := e.post(ctx, form)
	if err != nil {
		return nil, err
	}

	if !resp.OK() {
		return nil, fmt.Errorf("%w: token endpoint returned status %d", shared.ErrAuthFailed, resp.StatusCode)
	}

	var bundle TokenBundle
	if err := json.Unmarshal(resp.Body, &bundle); err != nil {
		return nil, fmt.Errorf("%w: failed to decode token response: %v", shared.ErrAuthFailed, err)
	}

	return &bundle, nil
}

// Refresh exchanges a refresh token for a new access token. The provider's
// status and body are returned untouched; only transport failures error.
func (e *Exchanger) Refresh(ctx context.Context, refreshToken string) (*ExchangeResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	return e.post(ctx, form)
}

// post sends a form-encoded grant request to the token endpoint.
func (e *Exchanger) post(ctx context.Context, form url.Values) (*ExchangeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Authorization", "Basic "+BasicAuthHeader(e.clientID, e.clientSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	return &ExchangeResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
