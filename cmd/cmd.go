// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// serveCommand runs the HTTP backend
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the playlist generation backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with Spotify using OAuth2",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print tokens as JSON",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "refresh",
				Usage: "Exchange a refresh token for a new access token",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "token"},
				},
				Action: r.AuthRefresh,
			},
		},
	}
}

// generateCommand produces a playlist from a prompt
func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate a playlist from a prompt",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "prompt"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "tracks",
				Aliases: []string{"t"},
				Usage:   "Path to a JSON file with candidate tracks",
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "Spotify access token; when set the playlist is saved",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Export format: txt, md, or csv",
			},
		},
		Action: r.Generate,
	}
}

// setupCommand writes a starter configuration file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a starter config.toml",
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
