// Package services implements the external collaborators of the backend: the
// Spotify Web API client and the LLM playlist generator.
//
// # Service Interface
//
// [Service] abstracts the music provider so handlers and tasks can be tested
// against fakes. [SpotifyService] is the production implementation.
//
// # OAuth Service Extension
//
// The [OAuthService] interface extends Service for OAuth providers.
//
// [SpotifyService] implements this for the loopback login flow used by the CLI.
// The server-side browser flow does not go through this package; it uses the
// internal/auth exchanger directly so provider responses can be relayed
// verbatim.
//
// # Generator
//
// [Generator] is the LLM collaborator. [LLMGenerator] posts a chat-completion
// request to an OpenAI-compatible endpoint and decodes the model's JSON reply
// into a description and track selection. No selection logic lives here.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrMissingCredentials] : required credentials absent
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrGenerationFailed] : generator returned an unusable reply
package services
