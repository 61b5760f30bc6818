package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// LoopbackResult contains the result of a loopback OAuth authorization flow.
type LoopbackResult struct {
	Token *oauth2.Token
	err   error
}

func (r *LoopbackResult) Error() error {
	return r.err
}

// LoopbackHandler handles the OAuth2 callback for the CLI login flow, where a
// temporary local server receives the provider redirect. Implements the
// [Handler] interface for registration with a Router.
type LoopbackHandler struct {
	config      *oauth2.Config
	state       string
	resultChan  chan LoopbackResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewLoopbackHandler creates a loopback handler with the given OAuth2 config
// and state token. The state token should be cryptographically random.
func NewLoopbackHandler(config *oauth2.Config, state string) *LoopbackHandler {
	return &LoopbackHandler{
		config:     config,
		state:      state,
		resultChan: make(chan LoopbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *LoopbackHandler) Routes() []string {
	return []string{"/auth/callback"}
}

// ServeHTTP handles the OAuth callback request.
//
// Validates the state parameter, exchanges the authorization code for tokens,
// and sends the result through the result channel. Only the first callback is
// processed; replays get a 400.
func (h *LoopbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	query := r.URL.Query()

	if query.Get("state") != h.state {
		h.send(LoopbackResult{err: fmt.Errorf("invalid state parameter")})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		errParam := query.Get("error")
		h.send(LoopbackResult{err: fmt.Errorf("authorization failed: %s", errParam)})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	token, err := h.config.Exchange(context.Background(), code)
	if err != nil {
		h.send(LoopbackResult{err: fmt.Errorf("token exchange failed: %w", err)})
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	h.send(LoopbackResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>Authorization Successful</title></head>
<body>
  <h1>Authorization successful</h1>
  <p>You can close this window and return to the terminal.</p>
</body>
</html>
`)
}

// send delivers the result exactly once and closes the channel.
func (h *LoopbackHandler) send(result LoopbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving OAuth flow completion.
//
// The channel receives exactly one result and is then closed.
func (h *LoopbackHandler) Result() <-chan LoopbackResult {
	return h.resultChan
}
