// package models defines the data model for the playlist generation service
package models

// Track represents a music track as exchanged with the frontend and the
// generator. URI is the Spotify track URI used when saving a playlist.
type Track struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	Album    string `json:"album,omitempty"`
	Duration int    `json:"duration,omitempty"` // Duration in seconds
	URI      string `json:"uri,omitempty"`
}

// Playlist represents a playlist created on the provider.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TrackCount  int    `json:"track_count,omitempty"`
	Public      bool   `json:"public"`
}

// GeneratedPlaylist is the result of a generation run: the description and
// track selection produced by the generator, plus the provider playlist ID
// when the run also saved the playlist.
type GeneratedPlaylist struct {
	Description string  `json:"description"`
	Tracks      []Track `json:"tracks"`
	PlaylistID  string  `json:"playlist_id,omitempty"`
}
