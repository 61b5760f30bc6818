// Package tasks orchestrates playlist generation with real-time progress reporting.
//
// # Core Operation
//
// The [GenerateEngine] interface defines a single operation, [Engine.Run]:
//   - Forwards the prompt and candidate tracks to the generator
//   - When an access token is present, creates the playlist on the provider
//     and appends the selected tracks
//   - Returns the generated description, selection, and playlist ID
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and
// optional data for advanced UI rendering. Updates use select with default to
// prevent blocking.
//
// # Implementation
//
// [Engine] implements [GenerateEngine] with dependencies on:
//   - [services.Generator] : the LLM collaborator
//   - [services.Service] : the Spotify API client (optional)
package tasks
