// package models defines the data model for the library exporter
package models

import (
	"strings"
	"time"
)

// Playlist is a lightweight handle to a playlist returned by the listing
// endpoint. TracksHref points at the playlist's paginated track collection
// and is followed verbatim when the full track list is fetched.
type Playlist struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	TracksHref string    `json:"tracks_href"`
	TrackCount int       `json:"track_count"`
}

// Track is a song as it appears inside a playlist or the liked-songs library.
type Track struct {
	URI         string   `json:"uri"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	Album       string   `json:"album"`
	ReleaseDate string   `json:"release_date"`
}

// ArtistList joins the track's artists in their original order.
func (t Track) ArtistList() string {
	return strings.Join(t.Artists, ", ")
}

// PlaylistItem is a playlist entry. Track is nil for tombstoned entries the
// server still reports; those stay in the sequence and are skipped by
// formatting, not here. AddedAt is nil when the server omits the field.
type PlaylistItem struct {
	AddedAt *time.Time `json:"added_at"`
	Track   *Track     `json:"track"`
}

// EffectiveAddedAt returns the item's sort key: AddedAt when present,
// otherwise the playlist creation time plus one second, a deterministic
// tiebreak for legacy entries without an add timestamp.
func (i PlaylistItem) EffectiveAddedAt(playlistCreatedAt time.Time) time.Time {
	if i.AddedAt != nil {
		return *i.AddedAt
	}
	return playlistCreatedAt.Add(time.Second)
}

// Album is a saved album from the user's library.
type Album struct {
	URI         string   `json:"uri"`
	Name        string   `json:"name"`
	Artists     []string `json:"artists"`
	ReleaseDate string   `json:"release_date"`
}

// ArtistList joins the album's artists in their original order.
func (a Album) ArtistList() string {
	return strings.Join(a.Artists, ", ")
}

// PlaylistExport is a playlist with its complete, sorted track listing.
type PlaylistExport struct {
	Playlist Playlist       `json:"playlist"`
	Items    []PlaylistItem `json:"tracks"`
}

// ExportBundle is the assembled result of an export run. It is built once,
// after every fetch has succeeded, and handed whole to the file writer.
type ExportBundle struct {
	Playlists []PlaylistExport `json:"playlists"`
	Albums    []Album          `json:"albums"`
}

// TrackTotal counts the playlist entries across the bundle, tombstones included.
func (b *ExportBundle) TrackTotal() int {
	total := 0
	for _, p := range b.Playlists {
		total += len(p.Items)
	}
	return total
}

// ExportRun records a completed export in the history database.
type ExportRun struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	File      string    `json:"file"`
	Format    string    `json:"format"`
	Playlists int       `json:"playlists"`
	Tracks    int       `json:"tracks"`
	Albums    int       `json:"albums"`
}
