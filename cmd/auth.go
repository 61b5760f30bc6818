package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/mixtape/internal/auth"
	"github.com/desertthunder/mixtape/internal/server"
	"github.com/desertthunder/mixtape/internal/services"
	"github.com/desertthunder/mixtape/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthLogin performs the OAuth2 authorization flow for Spotify.
//
// Starts a local HTTP server, opens the browser for user authorization, and
// exchanges the auth code for tokens. Tokens are printed, never stored.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	if config.Credentials.Spotify.ClientID == "" || config.Credentials.Spotify.ClientSecret == "" {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in config.toml", shared.ErrMissingCredentials)
	}

	oauthSvc, ok := r.spotify.(services.OAuthService)
	if !ok {
		svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map())
		if err != nil {
			return fmt.Errorf("failed to create Spotify service: %w", err)
		}
		oauthSvc = svc
	}

	token, err := r.doOAuth(config, oauthSvc)
	if err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")

	if cmd.Bool("json") {
		return r.writeJSON(map[string]string{
			"access_token":  token.AccessToken,
			"refresh_token": token.RefreshToken,
			"token_type":    token.TokenType,
		}, true)
	}

	r.writePlain("Access token: %s\n", token.AccessToken)
	if token.RefreshToken != "" {
		r.writePlain("Refresh token: %s\n", token.RefreshToken)
	}
	r.writePlain("\nYou can now use: mixtape generate --token <access_token>\n")

	return nil
}

// AuthRefresh exchanges a refresh token for a new access token and prints the
// provider's response.
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	refreshToken := cmd.StringArg("token")
	if refreshToken == "" {
		return fmt.Errorf("%w: refresh token argument is required", shared.ErrMissingArgument)
	}

	config := r.loadConfig("config.toml")
	exchanger := auth.NewExchanger(config.Credentials.Spotify)
	if !exchanger.Configured() {
		return fmt.Errorf("%w: Spotify credentials must be set", shared.ErrMissingCredentials)
	}

	resp, err := exchanger.Refresh(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrRefreshFailed, resp.StatusCode, string(resp.Body))
	}

	return r.writePlain("%s\n", string(resp.Body))
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(config *shared.Config, oauthSvc services.OAuthService) (*oauth2.Token, error) {
	states := auth.NewStateStore()
	state, err := states.Issue()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := oauthSvc.GetAuthURL(state)
	callback := server.NewLoopbackHandler(oauthSvc.GetOAuthConfig(), state)
	router := server.NewBasicRouter()
	router.Handler(callback)

	httpServer := &http.Server{
		Addr:    config.Server.Addr(),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically: %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.LoopbackResult

	select {
	case result = <-callback.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}
