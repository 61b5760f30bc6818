package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixtape/internal/auth"
	"github.com/desertthunder/mixtape/internal/shared"
)

// configErrorDetail is the fixed body returned when OAuth credentials are
// missing. This is an operator error, so it is a 500 JSON body rather than a
// frontend redirect.
const configErrorDetail = "Spotify OAuth is not configured. Check environment variables."

// AuthHandler serves the browser-facing OAuth endpoints: login, callback, and
// refresh. Implements the [Handler] interface.
type AuthHandler struct {
	frontendURL string
	authorizer  *auth.Authorizer
	states      *auth.StateStore
	exchanger   *auth.Exchanger
	logger      *log.Logger
}

// NewAuthHandler creates an AuthHandler wired to the given state store.
func NewAuthHandler(config *shared.Config, states *auth.StateStore, logger *log.Logger) *AuthHandler {
	creds := config.Credentials.Spotify

	return &AuthHandler{
		frontendURL: config.Frontend.URL,
		authorizer:  auth.NewAuthorizer(creds, states),
		states:      states,
		exchanger:   auth.NewExchanger(creds),
		logger:      logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []string {
	return []string{"/auth/login", "/auth/callback", "/auth/refresh"}
}

// ServeHTTP dispatches to the endpoint handlers by path.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth/login":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.login(w, r)
	case "/auth/callback":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.callback(w, r)
	case "/auth/refresh":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.refresh(w, r)
	default:
		http.NotFound(w, r)
	}
}

// login issues a state token and either returns the authorization URL as JSON
// or redirects the browser to it, depending on the redirect query parameter.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	authURL, state, err := h.authorizer.AuthCodeURL()
	if err != nil {
		h.logger.Error("failed to build authorization URL", "error", err)
		writeDetail(w, http.StatusInternalServerError, configErrorDetail)
		return
	}

	if r.URL.Query().Get("redirect") == "true" {
		http.Redirect(w, r, authURL, http.StatusFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"auth_url": authURL,
		"state":    state,
	})
}

// callback handles the provider's returning redirect: validates state,
// exchanges the code, and sends the browser back to the frontend.
func (h *AuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Provider-reported errors short-circuit everything, including state
	// validation, and are passed through verbatim.
	if provErr := query.Get("error"); provErr != "" {
		h.logger.Warn("oauth error from provider", "error", provErr)
		h.redirectError(w, r, provErr)
		return
	}

	if !h.states.Consume(query.Get("state")) {
		// Missing, unknown, replayed, and expired states all look the same
		// to the caller.
		h.logger.Warn("invalid or expired oauth state token")
		h.redirectError(w, r, "invalid_state")
		return
	}

	if !h.exchanger.Configured() {
		writeDetail(w, http.StatusInternalServerError, configErrorDetail)
		return
	}

	bundle, err := h.exchanger.ExchangeCode(r.Context(), query.Get("code"))
	if err != nil {
		h.logger.Error("token exchange failed", "error", err)
		h.redirectError(w, r, "oauth_failed")
		return
	}

	// Tokens ride in the URL fragment so they never reach the frontend's
	// server logs.
	params := url.Values{}
	params.Set("access_token", bundle.AccessToken)
	params.Set("token_type", bundle.TokenType)
	params.Set("expires_in", strconv.Itoa(bundle.ExpiresIn))
	if bundle.RefreshToken != "" {
		params.Set("refresh_token", bundle.RefreshToken)
	}
	if bundle.Scope != "" {
		params.Set("scope", bundle.Scope)
	}

	http.Redirect(w, r, h.frontendURL+"/#"+params.Encode(), http.StatusFound)
}

// refreshRequest is the body of POST /auth/refresh.
type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refresh exchanges a refresh token for a new access token, mirroring the
// provider's response without translation.
func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeDetail(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	if !h.exchanger.Configured() {
		writeDetail(w, http.StatusInternalServerError, configErrorDetail)
		return
	}

	resp, err := h.exchanger.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.logger.Error("token refresh failed", "error", err)
		writeDetail(w, http.StatusBadGateway, "token refresh failed")
		return
	}

	// Status and body come straight from the provider, success or not.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	w.Write(resp.Body)
}

// redirectError sends the browser to the frontend error page with the given
// error marker.
func (h *AuthHandler) redirectError(w http.ResponseWriter, r *http.Request, code string) {
	params := url.Values{}
	params.Set("error", code)
	http.Redirect(w, r, h.frontendURL+"/auth/error?"+params.Encode(), http.StatusFound)
}
