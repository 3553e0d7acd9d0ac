package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/repositories"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/desertthunder/spotx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export fetches the library and writes it to a file in one shot.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd.String("config"))

	dump := cmd.String("dump")
	if !cmd.IsSet("dump") && r.config.Output.Dump != "" {
		dump = r.config.Output.Dump
	}
	opts, err := tasks.ParseDump(dump)
	if err != nil {
		return err
	}

	file := cmd.StringArg("file")
	if file == "" {
		// They probably just double-clicked the binary.
		if file, err = r.promptFilename(); err != nil {
			return err
		}
	}

	// Flag wins, then the filename extension, then the configured default.
	format := cmd.String("format")
	if format == "" {
		if filepath.Ext(file) == "" && r.config.Output.Format != "" {
			format = r.config.Output.Format
		} else {
			format = formatter.DetectFormat(file)
		}
	}
	if err := formatter.ValidateFormat(format); err != nil {
		return err
	}

	token, err := r.resolveToken(ctx, cmd)
	if err != nil {
		return err
	}

	engine := tasks.NewExportEngine(r.newLibrary(token), r.selector, r.logger)

	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message)
		}
	}()

	bundle, err := engine.Run(ctx, opts, progress)
	close(progress)
	<-done
	if err != nil {
		if errors.Is(err, shared.ErrEmptySelection) {
			r.logger.Error("no playlists were selected")
		}
		return err
	}

	r.logger.Info("writing file...")
	path, err := formatter.WriteExport(bundle, file, format)
	if err != nil {
		return err
	}

	if cmd.Bool("history") || r.config.History.Enabled {
		r.recordRun(bundle, path, format)
	}

	return r.writePlain("wrote %d playlists (%d songs) and %d albums to %s\n",
		len(bundle.Playlists), bundle.TrackTotal(), len(bundle.Albums), path)
}

// resolveToken prefers an explicit token over a fresh login.
func (r *Runner) resolveToken(ctx context.Context, cmd *cli.Command) (string, error) {
	if token := cmd.String("token"); token != "" {
		return token, nil
	}
	if token := os.Getenv("SPOTX_TOKEN"); token != "" {
		return token, nil
	}
	return r.authorize(ctx)
}

func (r *Runner) promptFilename() (string, error) {
	if err := r.writePlain("Enter a file name (e.g. playlists.txt): "); err != nil {
		return "", err
	}
	scanner := bufio.NewScanner(r.input)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("%w: failed to read filename: %v", shared.ErrMissingArgument, err)
		}
		return "", fmt.Errorf("%w: no filename given", shared.ErrMissingArgument)
	}
	file := strings.TrimSpace(scanner.Text())
	if file == "" {
		return "", fmt.Errorf("%w: no filename given", shared.ErrMissingArgument)
	}
	return file, nil
}

// recordRun persists a summary row. History is best effort and never
// fails the export.
func (r *Runner) recordRun(bundle *models.ExportBundle, path, format string) {
	db, err := shared.NewDatabase(r.config.History.Path)
	if err != nil {
		r.logger.Warnf("failed to open history database: %v", err)
		return
	}
	defer db.Close()
	shared.ConfigureDatabase(db, r.config.History.MaxOpenConns, r.config.History.MaxIdleConns)

	repo := repositories.NewExportRunRepository(db)
	if err := repo.Migrate(); err != nil {
		r.logger.Warnf("failed to migrate history database: %v", err)
		return
	}

	run := models.ExportRun{
		ID:        shared.GenerateID(),
		CreatedAt: time.Now().UTC(),
		File:      path,
		Format:    format,
		Playlists: len(bundle.Playlists),
		Tracks:    bundle.TrackTotal(),
		Albums:    len(bundle.Albums),
	}
	if err := repo.Create(run); err != nil {
		r.logger.Warnf("failed to record export run: %v", err)
	}
}
