package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/librarian/cmd/app/commands"
	"github.com/allisson/librarian/internal/app"
)

func userItemFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "user",
			Aliases:  []string{"u"},
			Required: true,
			Usage:    "User ID",
		},
		&cli.StringFlag{
			Name:     "item",
			Aliases:  []string{"i"},
			Required: true,
			Usage:    "Item ID",
		},
		formatFlag(),
	}
}

func getLendingCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "borrow",
			Usage: "Lend an available item to a member",
			Flags: userItemFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					catalogUC, err := container.CatalogUseCase()
					if err != nil {
						return err
					}
					lendingUC, err := container.LendingUseCase()
					if err != nil {
						return err
					}

					return commands.RunBorrow(
						ctx,
						catalogUC,
						lendingUC,
						container.Logger(),
						cmd.String("user"),
						cmd.String("item"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "return",
			Usage: "Take an item back from a member",
			Flags: userItemFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					catalogUC, err := container.CatalogUseCase()
					if err != nil {
						return err
					}
					lendingUC, err := container.LendingUseCase()
					if err != nil {
						return err
					}

					return commands.RunReturn(
						ctx,
						catalogUC,
						lendingUC,
						container.Logger(),
						cmd.String("user"),
						cmd.String("item"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "reserve",
			Usage: "Reserve a book or DVD for a member",
			Flags: userItemFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					catalogUC, err := container.CatalogUseCase()
					if err != nil {
						return err
					}
					lendingUC, err := container.LendingUseCase()
					if err != nil {
						return err
					}

					return commands.RunReserve(
						ctx,
						catalogUC,
						lendingUC,
						container.Logger(),
						cmd.String("user"),
						cmd.String("item"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "cancel-reservation",
			Usage: "Clear the reservation on an item",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "item",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Item ID",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					catalogUC, err := container.CatalogUseCase()
					if err != nil {
						return err
					}
					lendingUC, err := container.LendingUseCase()
					if err != nil {
						return err
					}

					return commands.RunCancelReservation(
						ctx,
						catalogUC,
						lendingUC,
						container.Logger(),
						cmd.String("item"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "summary",
			Usage: "Show item counts per type, member count and lent items",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					catalogUC, err := container.CatalogUseCase()
					if err != nil {
						return err
					}

					return commands.RunSummary(
						ctx,
						catalogUC,
						container.Logger(),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
	}
}
