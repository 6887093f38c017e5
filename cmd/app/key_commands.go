package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/anonymizer/cmd/app/commands"
	"github.com/allisson/anonymizer/internal/app"
	"github.com/allisson/anonymizer/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "obtain-secret",
			Usage: "Obtain the anonymization secret, creating it on first use",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "mode",
					Aliases: []string{"m"},
					Usage:   "Key mode: 'local' or 'remote' (defaults to KEY_MODE)",
				},
				&cli.StringFlag{
					Name:    "data-dir",
					Aliases: []string{"d"},
					Usage:   "Directory holding the key file (defaults to DATA_DIR)",
				},
				&cli.BoolFlag{
					Name:  "show",
					Value: false,
					Usage: "Print the secret as hex",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				provider, err := container.KeyProvider()
				if err != nil {
					return err
				}

				mode := cmd.String("mode")
				if mode == "" {
					mode = cfg.KeyMode
				}
				dataDir := cmd.String("data-dir")
				if dataDir == "" {
					dataDir = cfg.DataDir
				}

				return commands.RunObtainSecret(
					ctx,
					provider,
					container.Logger(),
					commands.DefaultIO().Writer,
					mode,
					dataDir,
					cmd.Bool("show"),
				)
			},
		},
	}
}
