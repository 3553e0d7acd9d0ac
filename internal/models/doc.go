// Package models defines domain entities for the spotx library exporter.
//
// The types fall into two categories:
//
// 1. Library data fetched from Spotify:
//   - [Playlist] : playlist summary handle with its track-collection cursor
//   - [PlaylistItem] : a playlist entry with nullable add timestamp and track
//   - [Track], [Album] : song and saved-album metadata
//
// 2. Export artifacts:
//   - [PlaylistExport] : playlist with complete sorted track listing
//   - [ExportBundle] : the whole export result, assembled once per run
//   - [ExportRun] : history record persisted after a successful export
package models
