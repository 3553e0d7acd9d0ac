package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/desertthunder/spotx/internal/repositories"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/urfave/cli/v3"
)

func (r *Runner) openHistory() (*sql.DB, *repositories.ExportRunRepository, error) {
	db, err := shared.NewDatabase(r.config.History.Path)
	if err != nil {
		return nil, nil, err
	}
	shared.ConfigureDatabase(db, r.config.History.MaxOpenConns, r.config.History.MaxIdleConns)

	repo := repositories.NewExportRunRepository(db)
	if err := repo.Migrate(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, repo, nil
}

// HistoryList prints recorded export runs, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd.String("config"))

	db, repo, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := repo.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, true)
	}

	if len(runs) == 0 {
		return r.writePlain("no export runs recorded\n")
	}

	for _, run := range runs {
		if err := r.writePlain("%s  %s (%s): %d playlists, %d songs, %d albums\n",
			run.CreatedAt.Format(time.RFC3339), run.File, run.Format,
			run.Playlists, run.Tracks, run.Albums); err != nil {
			return err
		}
	}
	return nil
}

// HistoryClear deletes all recorded export runs.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd.String("config"))

	db, repo, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := repo.Clear()
	if err != nil {
		return err
	}

	return r.writePlain("cleared %d export runs\n", n)
}
