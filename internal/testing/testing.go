// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/services"
)

// MockLibrary is a configurable test double for [services.Library].
type MockLibrary struct {
	User        *services.SpotifyUser
	PlaylistSet []models.Playlist
	Items       map[string][]models.PlaylistItem
	Liked       []models.PlaylistItem
	Albums      []models.Album
	Err         error
}

func (m *MockLibrary) CurrentUser(ctx context.Context) (*services.SpotifyUser, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.User == nil {
		return &services.SpotifyUser{ID: "mock", DisplayName: "Mock User"}, nil
	}
	return m.User, nil
}

func (m *MockLibrary) Playlists(ctx context.Context, userID string) ([]models.Playlist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.PlaylistSet, nil
}

func (m *MockLibrary) PlaylistItems(ctx context.Context, playlist models.Playlist) ([]models.PlaylistItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Items[playlist.ID], nil
}

func (m *MockLibrary) SavedTracks(ctx context.Context) ([]models.PlaylistItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Liked, nil
}

func (m *MockLibrary) SavedAlbums(ctx context.Context) ([]models.Album, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Albums, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MustParseTime parses an RFC3339 timestamp or fails the test.
func MustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", value, err)
	}
	return parsed
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
