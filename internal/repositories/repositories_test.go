package repositories

import (
	"testing"
	"time"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
)

func newTestRepo(t *testing.T) *ExportRunRepository {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewExportRunRepository(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return repo
}

func sampleRun(id string, createdAt time.Time) models.ExportRun {
	return models.ExportRun{
		ID:        id,
		CreatedAt: createdAt,
		File:      "playlists.txt",
		Format:    "txt",
		Playlists: 3,
		Tracks:    120,
		Albums:    7,
	}
}

func TestExportRunRepository(t *testing.T) {
	t.Run("migrate is idempotent", func(t *testing.T) {
		repo := newTestRepo(t)
		if err := repo.Migrate(); err != nil {
			t.Errorf("expected second migrate to succeed, got %v", err)
		}
	})

	t.Run("create and list round-trip", func(t *testing.T) {
		repo := newTestRepo(t)
		createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		if err := repo.Create(sampleRun("run-1", createdAt)); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}

		runs, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 1 {
			t.Fatalf("expected 1 run, got %d", len(runs))
		}

		run := runs[0]
		if run.ID != "run-1" || run.File != "playlists.txt" || run.Format != "txt" {
			t.Errorf("unexpected run %+v", run)
		}
		if run.Playlists != 3 || run.Tracks != 120 || run.Albums != 7 {
			t.Errorf("unexpected counts %+v", run)
		}
		if !run.CreatedAt.Equal(createdAt) {
			t.Errorf("expected created_at %v, got %v", createdAt, run.CreatedAt)
		}
	})

	t.Run("list returns newest first", func(t *testing.T) {
		repo := newTestRepo(t)
		base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		for i, id := range []string{"old", "mid", "new"} {
			if err := repo.Create(sampleRun(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
				t.Fatalf("failed to create run %s: %v", id, err)
			}
		}

		runs, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(runs))
		}
		if runs[0].ID != "new" || runs[2].ID != "old" {
			t.Errorf("expected newest first, got %s...%s", runs[0].ID, runs[2].ID)
		}
	})

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		repo := newTestRepo(t)
		createdAt := time.Now().UTC()

		if err := repo.Create(sampleRun("dup", createdAt)); err != nil {
			t.Fatalf("failed to create run: %v", err)
		}
		if err := repo.Create(sampleRun("dup", createdAt)); err == nil {
			t.Error("expected primary key violation")
		}
	})

	t.Run("clear removes everything", func(t *testing.T) {
		repo := newTestRepo(t)
		createdAt := time.Now().UTC()

		for _, id := range []string{"a", "b"} {
			if err := repo.Create(sampleRun(id, createdAt)); err != nil {
				t.Fatalf("failed to create run %s: %v", id, err)
			}
		}

		n, err := repo.Clear()
		if err != nil {
			t.Fatalf("failed to clear: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 rows cleared, got %d", n)
		}

		runs, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected empty history, got %d runs", len(runs))
		}
	})
}
