// Package server provides HTTP routing, middleware, and the OAuth, playlist
// generation, and scrape-proxy endpoints.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers so that the first middleware added runs first, following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Endpoints
//
// [AuthHandler] serves the browser-facing authorization-code flow:
//
//	GET  /auth/login    → authorization URL (JSON) or 302, with a fresh state token
//	GET  /auth/callback → state validation, code exchange, redirect to frontend
//	POST /auth/refresh  → refresh grant, provider response mirrored verbatim
//
// The callback places tokens in the redirect URL's fragment so they never
// reach the frontend's server. State tokens are single use with a 10 minute
// TTL; invalid, replayed, and expired states are indistinguishable to the
// caller.
//
// # Application Endpoints
//
//	POST /generate_playlist → LLM-backed playlist generation
//	GET  /scrape            → allowlisted fetch proxy (SSRF guarded, rate limited)
//	GET  /health            → healthcheck
//	GET  /static/, /        → static assets
//
// [NewRouter] assembles all of the above with request logging and CORS.
//
// # Loopback Callback Handler
//
// [LoopbackHandler] implements the OAuth2 callback for the CLI login flow.
// When the user runs the auth command, a temporary HTTP server starts on the
// configured address, handles the callback, and shuts down after delivering
// the token through a channel. It only processes one callback to prevent
// replay.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib
// handler interface and adds routes, allowing handlers to register multiple
// routes and encapsulate route definitions within the implementation.
package server
