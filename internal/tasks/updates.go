package tasks

import (
	"fmt"

	"github.com/desertthunder/mixtape/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Generate Phase = iota
	CreatePlaylist
	AddTracks
)

func (p Phase) String() string {
	switch p {
	case Generate:
		return "generate"
	case CreatePlaylist:
		return "create_playlist"
	case AddTracks:
		return "add_tracks"
	default:
		return ""
	}
}

func generatingUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Generate,
		Step:    step,
		Total:   total,
		Message: "Generating playlist selection...",
	}
}

func creatingPlaylistUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    step,
		Total:   total,
		Message: "Creating playlist on Spotify...",
	}
}

func addingTracksUpdate(step, total int, pl *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Adding tracks to %s (ID: %s)...", pl.Name, pl.ID),
		Data:    pl,
	}
}
