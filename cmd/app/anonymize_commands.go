package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/anonymizer/cmd/app/commands"
	anonymizationDomain "github.com/allisson/anonymizer/internal/anonymization/domain"
	"github.com/allisson/anonymizer/internal/app"
	"github.com/allisson/anonymizer/internal/config"
)

func getAnonymizeCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "anonymize",
			Usage: "Anonymize columns of a CSV or JSON Lines record file",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "input",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Input record file (.csv or .jsonl)",
				},
				&cli.StringFlag{
					Name:     "output",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Output record file",
				},
				&cli.StringFlag{
					Name:  "mapping",
					Usage: "Write original to anonymized mappings to this JSON file",
				},
				&cli.StringFlag{
					Name:     "columns",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Comma-separated list of columns to anonymize",
				},
				&cli.StringFlag{
					Name:    "mode",
					Aliases: []string{"m"},
					Usage:   "Anonymization mode: 'hash' or 'format-preserving' (defaults to ANONYMIZE_MODE)",
				},
				&cli.BoolFlag{
					Name:  "in-place-ok",
					Value: false,
					Usage: "Allow the output to overwrite the input",
				},
				&cli.BoolFlag{
					Name:  "preserve-domain",
					Usage: "Keep email domains readable (defaults to EMAIL_PRESERVE_DOMAIN)",
				},
				&cli.IntFlag{
					Name:  "token-len",
					Usage: "Hash token length for generic columns (defaults to HMAC_TOKEN_LEN)",
				},
				&cli.IntFlag{
					Name:  "email-len",
					Usage: "Hash token length for email parts (defaults to HMAC_EMAIL_LEN)",
				},
				&cli.IntFlag{
					Name:    "workers",
					Aliases: []string{"w"},
					Usage:   "Number of parallel record workers (defaults to ANONYMIZE_WORKERS)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Usage:   "Record format 'csv' or 'jsonl' (inferred from extensions when omitted)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				opts := cfg.DefaultAnonymizationOptions(commands.ParseColumns(cmd.String("columns"))...)
				if cmd.IsSet("mode") {
					mode, err := anonymizationDomain.ParseMode(cmd.String("mode"))
					if err != nil {
						return fmt.Errorf("invalid --mode: %w", err)
					}
					opts.Mode = mode
				}
				if cmd.IsSet("preserve-domain") {
					opts.EmailPreserveDomain = cmd.Bool("preserve-domain")
				}
				if cmd.IsSet("token-len") {
					opts.HMACTokenLength = int(cmd.Int("token-len"))
				}
				if cmd.IsSet("email-len") {
					opts.HMACEmailLength = int(cmd.Int("email-len"))
				}
				if cmd.IsSet("workers") {
					opts.Workers = int(cmd.Int("workers"))
				}

				useCase, err := container.AnonymizationUseCase()
				if err != nil {
					return err
				}
				secret, err := container.Secret()
				if err != nil {
					return err
				}

				return commands.RunAnonymize(
					ctx,
					useCase,
					secret,
					container.Logger(),
					commands.DefaultIO().Writer,
					commands.AnonymizeFiles{
						InputPath:   cmd.String("input"),
						OutputPath:  cmd.String("output"),
						MappingPath: cmd.String("mapping"),
						Format:      cmd.String("format"),
						InPlaceOK:   cmd.Bool("in-place-ok"),
					},
					opts,
				)
			},
		},
	}
}
