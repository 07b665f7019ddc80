// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/f107110126/rpc-cap/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Object-capability permission engine for JSON-RPC methods",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "grant-permission",
				Usage: "Grant a root permission to a domain on behalf of the user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "domain",
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "Domain identifier receiving the permission",
					},
					&cli.StringFlag{
						Name:     "method",
						Aliases:  []string{"m"},
						Required: true,
						Usage:    "Restricted method name to authorize",
					},
					&cli.StringFlag{
						Name:    "caveats",
						Aliases: []string{"c"},
						Usage:   "JSON array of caveats (e.g., '[{\"type\":\"static\",\"value\":42}]')",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithContainer(ctx, func(deps commands.Dependencies) error {
						return commands.RunGrantPermission(
							ctx,
							deps.PermissionUseCase,
							deps.Logger,
							cmd.String("domain"),
							cmd.String("method"),
							cmd.String("caveats"),
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "revoke-permission",
				Usage: "Revoke a domain's root permission on behalf of the user",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "domain",
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "Domain identifier losing the permission",
					},
					&cli.StringFlag{
						Name:     "method",
						Aliases:  []string{"m"},
						Required: true,
						Usage:    "Restricted method name to revoke",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithContainer(ctx, func(deps commands.Dependencies) error {
						return commands.RunRevokePermission(
							ctx,
							deps.PermissionUseCase,
							deps.Logger,
							cmd.String("domain"),
							cmd.String("method"),
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "list-permissions",
				Usage: "List a domain's permissions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "domain",
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "Domain identifier to inspect",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithContainer(ctx, func(deps commands.Dependencies) error {
						return commands.RunListPermissions(
							ctx,
							deps.PermissionUseCase,
							deps.Logger,
							cmd.String("domain"),
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "list-approvals",
				Usage: "List pending permission requests",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.WithContainer(ctx, func(deps commands.Dependencies) error {
						return commands.RunListApprovals(
							ctx,
							deps.ApprovalUseCase,
							deps.Logger,
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
