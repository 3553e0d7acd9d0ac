package tasks

import (
	"fmt"

	"github.com/desertthunder/spotx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchUser Phase = iota
	FetchLiked
	FetchAlbums
	FetchPlaylists
	FetchTracks
)

func (p Phase) String() string {
	switch p {
	case FetchUser:
		return "fetch_user"
	case FetchLiked:
		return "fetch_liked"
	case FetchAlbums:
		return "fetch_albums"
	case FetchPlaylists:
		return "fetch_playlists"
	case FetchTracks:
		return "fetch_tracks"
	default:
		return ""
	}
}

func fetchUserUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchUser,
		Step:    1,
		Total:   1,
		Message: "Loading user info...",
	}
}

func fetchLikedUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLiked,
		Step:    1,
		Total:   1,
		Message: "Loading liked songs...",
	}
}

func fetchAlbumsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAlbums,
		Step:    1,
		Total:   1,
		Message: "Loading liked albums...",
	}
}

func fetchPlaylistsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylists,
		Step:    1,
		Total:   1,
		Message: "Loading playlists...",
	}
}

func fetchTracksUpdate(step, total int, playlist models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Loading playlist: %s (%d song(s))", playlist.Name, playlist.TrackCount),
		Data:    playlist,
	}
}
