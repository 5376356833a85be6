// Package main is the storage-gateway entry point.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:     "storage-gateway",
		Usage:    "Presigned object storage gateway with ownership checks and envelope encryption",
		Version:  version,
		Commands: getCommands(version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func getCommands(version string) []*cli.Command {
	groups := []struct {
		category string
		commands []*cli.Command
	}{
		{"system", getSystemCommands(version)},
		{"keys", getKeyCommands()},
		{"auth", getAuthCommands()},
	}

	var cmds []*cli.Command
	for _, g := range groups {
		for _, c := range g.commands {
			c.Category = g.category
			cmds = append(cmds, c)
		}
	}
	return cmds
}
