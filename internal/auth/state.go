package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"
)

// StateTTL is how long an issued state token remains valid.
const StateTTL = 10 * time.Minute

// stateTokenBytes is the entropy of a state token before encoding.
const stateTokenBytes = 16

// StateStore is an in-memory store of in-flight OAuth state tokens.
//
// Tokens are single use: Consume removes the token before checking its age,
// so two concurrent callbacks presenting the same token cannot both succeed.
// Expired entries are swept lazily on each Issue; there is no background
// timer. State is intentionally not persisted, a restart aborts in-flight
// logins and the frontend re-initiates the flow.
type StateStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	ttl     time.Duration
	now     func() time.Time
}

// NewStateStore creates a StateStore with the default [StateTTL].
func NewStateStore() *StateStore {
	return &StateStore{
		entries: make(map[string]time.Time),
		ttl:     StateTTL,
		now:     time.Now,
	}
}

// Issue generates a new unguessable state token, records it with the current
// time, and returns it. Expired entries are swept first.
func (s *StateStore) Issue() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()

	token, err := generateStateToken()
	if err != nil {
		return "", err
	}

	s.entries[token] = s.now()
	return token, nil
}

// Consume validates a state token and removes it. Returns true only when the
// token exists and is within its TTL. Unknown, already-consumed, and expired
// tokens all return false; callers must not distinguish these cases outward.
func (s *StateStore) Consume(token string) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	issuedAt, ok := s.entries[token]
	if !ok {
		return false
	}
	delete(s.entries, token)

	return s.now().Sub(issuedAt) <= s.ttl
}

// Sweep removes all entries strictly older than the TTL.
func (s *StateStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
}

// sweep removes expired entries. Must be called with mu held.
func (s *StateStore) sweep() {
	now := s.now()
	for token, issuedAt := range s.entries {
		if now.Sub(issuedAt) > s.ttl {
			delete(s.entries, token)
		}
	}
}

func generateStateToken() (string, error) {
	b := make([]byte, stateTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
