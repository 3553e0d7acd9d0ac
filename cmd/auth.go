package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotx/internal/server"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/urfave/cli/v3"
)

// authorize opens the Spotify consent page and waits for the redirect
// to deliver an access token.
func (r *Runner) authorize(ctx context.Context) (string, error) {
	spotify := r.config.Credentials.Spotify
	if spotify.ClientID == "" {
		return "", fmt.Errorf("%w: client_id is not configured", shared.ErrMissingArgument)
	}

	authURL := services.AuthURL(spotify.ClientID, server.RedirectURI(), spotify.Scopes)
	shared.OpenBrowser(r.logger, authURL)

	return r.capture(ctx, r.logger)
}

// AuthLogin runs the login flow and prints the captured token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd.String("config"))

	token, err := r.authorize(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("authentication successful")
	return r.writePlain("%s\n", token)
}
