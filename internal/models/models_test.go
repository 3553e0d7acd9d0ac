package models

import (
	"testing"
	"time"
)

func TestEffectiveAddedAt(t *testing.T) {
	created := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("uses the add timestamp when present", func(t *testing.T) {
		addedAt := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
		item := PlaylistItem{AddedAt: &addedAt}

		if got := item.EffectiveAddedAt(created); !got.Equal(addedAt) {
			t.Errorf("expected %v, got %v", addedAt, got)
		}
	})

	t.Run("falls back to creation time plus one second", func(t *testing.T) {
		item := PlaylistItem{}
		want := created.Add(time.Second)

		if got := item.EffectiveAddedAt(created); !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

func TestArtistList(t *testing.T) {
	track := Track{Artists: []string{"First", "Second"}}
	if got := track.ArtistList(); got != "First, Second" {
		t.Errorf("expected joined artists, got %q", got)
	}

	album := Album{Artists: []string{"Solo"}}
	if got := album.ArtistList(); got != "Solo" {
		t.Errorf("expected single artist, got %q", got)
	}

	if got := (Track{}).ArtistList(); got != "" {
		t.Errorf("expected empty string for no artists, got %q", got)
	}
}

func TestTrackTotal(t *testing.T) {
	bundle := &ExportBundle{
		Playlists: []PlaylistExport{
			{Items: []PlaylistItem{{}, {Track: &Track{Name: "a"}}}},
			{Items: []PlaylistItem{{Track: &Track{Name: "b"}}}},
		},
	}

	if got := bundle.TrackTotal(); got != 3 {
		t.Errorf("expected 3 entries counted, got %d", got)
	}

	if got := (&ExportBundle{}).TrackTotal(); got != 0 {
		t.Errorf("expected 0 for empty bundle, got %d", got)
	}
}
