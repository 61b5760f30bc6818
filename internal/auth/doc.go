// Package auth implements the Spotify authorization-code flow primitives:
// state token issuance and single-use validation, authorization URL
// construction, and the code/refresh token exchanges against the provider's
// token endpoint.
//
// # State tokens
//
// Every login request issues an opaque state token recorded in a [StateStore].
// The provider echoes the token back on the callback redirect, where it is
// consumed: a token validates at most once, and only within its TTL. Expired,
// unknown, and replayed tokens are all reported identically so a caller
// probing the callback cannot distinguish them.
//
// # Token exchange
//
// The [Exchanger] posts form-encoded grants to the token endpoint,
// authenticated with an HTTP Basic header built by [BasicAuthHeader]. The
// refresh grant returns the provider's status and body untouched so API
// callers see exactly what the provider sent.
package auth
