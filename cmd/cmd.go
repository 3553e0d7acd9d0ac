// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// exportCommand dumps the library to a file
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "export",
		Aliases: []string{"dump"},
		Usage:   "Export playlists and liked songs to a file",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "Use an existing OAuth access token instead of logging in",
			},
			&cli.StringFlag{
				Name:    "dump",
				Aliases: []string{"d"},
				Usage:   "Sections to dump: playlists, liked, or both (comma-separated)",
				Value:   "playlists",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (txt or json), inferred from the filename when omitted",
			},
			&cli.BoolFlag{
				Name:  "history",
				Usage: "Record this run in the local history database",
			},
		},
		Action: r.Export,
	}
}

// authCommand handles the OAuth login flow on its own
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authentication operations",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in with Spotify and print the access token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.AuthLogin,
			},
		},
	}
}

// historyCommand inspects past export runs
func historyCommand(r *Runner) *cli.Command {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
	return &cli.Command{
		Name:  "history",
		Usage: "Export run history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded export runs",
				Flags: []cli.Flag{
					configFlag,
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Delete all recorded export runs",
				Flags:  []cli.Flag{configFlag},
				Action: r.HistoryClear,
			},
		},
	}
}

// setupCommand writes a starter configuration file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Write a starter config.toml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}
