// package services defines interface Library for fetching a user's music library over HTTP
package services

import (
	"context"

	"github.com/desertthunder/spotx/internal/models"
)

// Library defines the read operations the exporter needs from a music service.
//
// Implemented by [Client] for Spotify.
type Library interface {
	// CurrentUser retrieves the authenticated user's profile.
	CurrentUser(ctx context.Context) (*SpotifyUser, error)

	// Playlists retrieves all of the user's playlists, in server order.
	Playlists(ctx context.Context, userID string) ([]models.Playlist, error)

	// PlaylistItems retrieves the complete track listing for a playlist by
	// following its track-collection cursor.
	PlaylistItems(ctx context.Context, playlist models.Playlist) ([]models.PlaylistItem, error)

	// SavedTracks retrieves the user's liked songs.
	SavedTracks(ctx context.Context) ([]models.PlaylistItem, error)

	// SavedAlbums retrieves the user's liked albums.
	SavedAlbums(ctx context.Context) ([]models.Album, error)
}
