package shared

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultHistoryPath is where export runs get recorded when neither the
// config nor SPOTX_HISTORY_PATH names a file.
const DefaultHistoryPath = "./spotx.db"

// NewDatabase opens the run-history database at path, or at
// DefaultHistoryPath when path is empty. ":memory:" works for tests.
// The busy timeout keeps a second spotx invocation from failing outright
// while another one holds the write lock.
func NewDatabase(path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultHistoryPath
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach history database at %s: %w", path, err)
	}

	return db, nil
}

// ConfigureDatabase applies the history connection pool limits. SQLite
// serializes writers anyway, so zero or negative values fall back to a
// single connection.
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	if maxOpenConns <= 0 {
		maxOpenConns = 1
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 1
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
}
