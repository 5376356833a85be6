package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/Synnly/gestion-projet-m2-sub003/cmd/app/commands"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/app"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-token",
			Usage: "Sign a bearer token with JWT_SECRET",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "sub",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Subject (user id) carried by the token",
				},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Value:   "user",
					Usage:   "Role: 'user' or 'admin'",
				},
				&cli.DurationFlag{
					Name:  "ttl",
					Value: 0,
					Usage: "Token lifetime (defaults to JWT_TOKEN_TTL_SECONDS)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenService, err := container.TokenService()
				if err != nil {
					return err
				}

				ttl := cmd.Duration("ttl")
				if ttl == 0 {
					ttl = cfg.JWTTokenTTL
				}

				return commands.RunIssueToken(
					tokenService,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("sub"),
					cmd.String("role"),
					ttl,
					cmd.String("format"),
				)
			},
		},
	}
}
