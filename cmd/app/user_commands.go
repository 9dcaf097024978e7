package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/librarian/cmd/app/commands"
	"github.com/allisson/librarian/internal/app"
	catalogUseCase "github.com/allisson/librarian/internal/catalog/usecase"
)

func getUserCommands() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage library members",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Register a member",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "first-name",
						Required: true,
						Usage:    "First name",
					},
					&cli.StringFlag{
						Name:     "last-name",
						Required: true,
						Usage:    "Last name",
					},
					&cli.StringFlag{
						Name:  "id",
						Usage: "Custom user ID (generated when omitted)",
					},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(container *app.Container) error {
						catalogUC, err := container.CatalogUseCase()
						if err != nil {
							return err
						}

						return commands.RunAddUser(
							ctx,
							catalogUC,
							container.Logger(),
							catalogUseCase.CreateUserInput{
								ID:        cmd.String("id"),
								FirstName: cmd.String("first-name"),
								LastName:  cmd.String("last-name"),
							},
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "update",
				Usage: "Update fields of an existing member",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "User ID",
					},
					&cli.StringFlag{Name: "new-id", Usage: "Rename the user"},
					&cli.StringFlag{Name: "first-name", Usage: "New first name"},
					&cli.StringFlag{Name: "last-name", Usage: "New last name"},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(container *app.Container) error {
						catalogUC, err := container.CatalogUseCase()
						if err != nil {
							return err
						}

						return commands.RunUpdateUser(
							ctx,
							catalogUC,
							container.Logger(),
							catalogUseCase.UpdateUserInput{
								ID:        cmd.String("id"),
								NewID:     optionalString(cmd, "new-id"),
								FirstName: optionalString(cmd, "first-name"),
								LastName:  optionalString(cmd, "last-name"),
							},
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "remove",
				Usage: "Remove a member with no borrowed items",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "User ID",
					},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(container *app.Container) error {
						catalogUC, err := container.CatalogUseCase()
						if err != nil {
							return err
						}

						return commands.RunRemoveUser(
							ctx,
							catalogUC,
							container.Logger(),
							cmd.String("id"),
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "get",
				Usage: "Show one member",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "User ID",
					},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(container *app.Container) error {
						catalogUC, err := container.CatalogUseCase()
						if err != nil {
							return err
						}

						return commands.RunGetUser(
							ctx,
							catalogUC,
							container.Logger(),
							cmd.String("id"),
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "list",
				Usage: "List members, optionally filtered by first or last name",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first-name", Usage: "Exact first name, case-insensitive"},
					&cli.StringFlag{Name: "last-name", Usage: "Exact last name, case-insensitive"},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(container *app.Container) error {
						catalogUC, err := container.CatalogUseCase()
						if err != nil {
							return err
						}

						return commands.RunListUsers(
							ctx,
							catalogUC,
							container.Logger(),
							catalogUseCase.UserFilter{
								FirstName: cmd.String("first-name"),
								LastName:  cmd.String("last-name"),
							},
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
		},
	}
}
