// package formatter renders an assembled export bundle as JSON or
// tab-separated text and writes it to disk.
package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
)

const (
	FormatJSON = "json"
	FormatText = "txt"
)

// DetectFormat infers the output format from a file name's extension.
// Anything that isn't .json is treated as text.
func DetectFormat(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return FormatJSON
	}
	return FormatText
}

type jsonDocument struct {
	Playlists []jsonPlaylist `json:"playlists"`
	Albums    []models.Album `json:"albums"`
}

type jsonPlaylist struct {
	Name   string                `json:"name"`
	Tracks []models.PlaylistItem `json:"tracks"`
}

// ExportToJSON marshals the bundle as a single pretty-printed document.
// Unavailable tracks stay in the output as nulls.
func ExportToJSON(bundle *models.ExportBundle) ([]byte, error) {
	doc := jsonDocument{
		Playlists: make([]jsonPlaylist, 0, len(bundle.Playlists)),
		Albums:    bundle.Albums,
	}
	if doc.Albums == nil {
		doc.Albums = []models.Album{}
	}

	for _, p := range bundle.Playlists {
		items := p.Items
		if items == nil {
			items = []models.PlaylistItem{}
		}
		doc.Playlists = append(doc.Playlists, jsonPlaylist{Name: p.Playlist.Name, Tracks: items})
	}

	data, err := shared.MarshalJSON(doc, true)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal export: %w", err)
	}
	return data, nil
}

// ExportToText renders one block per playlist with a tab-separated line
// per track. Lines end with CRLF so the files open cleanly in spreadsheet
// tools on every platform. Tracks that are no longer available are skipped.
func ExportToText(bundle *models.ExportBundle) []byte {
	var b strings.Builder

	b.WriteString("Playlists: \r\n\r\n")
	for _, p := range bundle.Playlists {
		b.WriteString(p.Playlist.Name + "\r\n")
		for _, item := range p.Items {
			if item.Track == nil {
				continue
			}
			t := item.Track
			b.WriteString(fmt.Sprintf("%s\t%s\t%s\t%s\t%s\r\n",
				t.Name, t.ArtistList(), t.Album, t.URI, t.ReleaseDate))
		}
		b.WriteString("\r\n")
	}

	if len(bundle.Albums) > 0 {
		b.WriteString("Liked Albums: \r\n\r\n")
		for _, a := range bundle.Albums {
			b.WriteString(fmt.Sprintf("%s\t%s\t-\t%s\t%s\r\n",
				a.Name, a.ArtistList(), a.URI, a.ReleaseDate))
		}
	}

	return []byte(b.String())
}

// ValidateFormat rejects anything other than the supported output formats.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatText:
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q (expected %s or %s)",
			shared.ErrInvalidArgument, format, FormatJSON, FormatText)
	}
}

// WriteExport renders the bundle in the given format and writes it to
// path in one shot. Nothing touches the filesystem until the whole
// bundle has been rendered.
func WriteExport(bundle *models.ExportBundle, path string, format string) (string, error) {
	var data []byte
	var err error

	switch format {
	case FormatJSON:
		data, err = ExportToJSON(bundle)
		if err != nil {
			return "", err
		}
	case FormatText:
		data = ExportToText(bundle)
	default:
		return "", ValidateFormat(format)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("unable to write %s: %w", path, err)
	}
	return path, nil
}
