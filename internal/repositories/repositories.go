// package repositories is the persistence layer for export run history.
package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/spotx/internal/models"
)

const createRunsTable = `CREATE TABLE IF NOT EXISTS export_runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	file TEXT NOT NULL,
	format TEXT NOT NULL,
	playlists INTEGER NOT NULL,
	tracks INTEGER NOT NULL,
	albums INTEGER NOT NULL
);`

// ExportRunRepository records one row per completed export.
type ExportRunRepository struct {
	db *sql.DB
}

func NewExportRunRepository(db *sql.DB) *ExportRunRepository {
	return &ExportRunRepository{db: db}
}

// Migrate creates the export_runs table if it doesn't exist yet.
func (r *ExportRunRepository) Migrate() error {
	if _, err := r.db.Exec(createRunsTable); err != nil {
		return fmt.Errorf("unable to migrate export_runs: %w", err)
	}
	return nil
}

func (r *ExportRunRepository) Create(run models.ExportRun) error {
	_, err := r.db.Exec(
		`INSERT INTO export_runs (id, created_at, file, format, playlists, tracks, albums)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339), run.File, run.Format,
		run.Playlists, run.Tracks, run.Albums,
	)
	if err != nil {
		return fmt.Errorf("unable to record export run: %w", err)
	}
	return nil
}

// List returns recorded runs, newest first.
func (r *ExportRunRepository) List() ([]models.ExportRun, error) {
	rows, err := r.db.Query(
		`SELECT id, created_at, file, format, playlists, tracks, albums
		 FROM export_runs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to list export runs: %w", err)
	}
	defer rows.Close()

	var runs []models.ExportRun
	for rows.Next() {
		var run models.ExportRun
		var createdAt string
		if err := rows.Scan(&run.ID, &createdAt, &run.File, &run.Format,
			&run.Playlists, &run.Tracks, &run.Albums); err != nil {
			return nil, fmt.Errorf("unable to scan export run: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = parsed
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Clear deletes all recorded runs.
func (r *ExportRunRepository) Clear() (int64, error) {
	res, err := r.db.Exec(`DELETE FROM export_runs`)
	if err != nil {
		return 0, fmt.Errorf("unable to clear export runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
