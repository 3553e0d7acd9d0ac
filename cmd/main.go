package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	shared.LoadDotenv()

	// The selection TUI owns the terminal while it runs; SPOTX_LOG_FILE
	// redirects log lines so they don't corrupt the rendering.
	logger := shared.NewLogger(nil)
	if path := os.Getenv("SPOTX_LOG_FILE"); path != "" {
		if fileLogger, err := shared.NewFileLogger(path); err == nil {
			logger = fileLogger
		}
	}
	if os.Getenv("SPOTX_DEBUG") != "" {
		shared.SetLogLevel(logger, log.DebugLevel)
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "spotx",
		Usage:    "Export your Spotify playlists and liked songs to a file",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
