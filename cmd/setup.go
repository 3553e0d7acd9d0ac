package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/spotx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup writes a starter configuration file at the given path.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s already exists", shared.ErrInvalidArgument, path)
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Infof("created %s", path)
	return r.writePlain("edit %s to set your Spotify client_id\n", path)
}
