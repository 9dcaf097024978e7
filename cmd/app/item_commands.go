package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/librarian/cmd/app/commands"
	"github.com/allisson/librarian/internal/app"
	catalogUseCase "github.com/allisson/librarian/internal/catalog/usecase"
)

func getItemCommands() *cli.Command {
	return &cli.Command{
		Name:  "item",
		Usage: "Manage catalog items",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a book, DVD or magazine",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "type",
						Aliases:  []string{"t"},
						Required: true,
						Usage:    "Item type: Book, DVD or Magazine",
					},
					&cli.StringFlag{
						Name:     "title",
						Required: true,
						Usage:    "Item title",
					},
					&cli.StringFlag{
						Name:     "author",
						Aliases:  []string{"a"},
						Required: true,
						Usage:    "Author, director or publisher",
					},
					&cli.IntFlag{
						Name:     "year",
						Aliases:  []string{"y"},
						Required: true,
						Usage:    "Publication or release year",
					},
					&cli.StringFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Genre (books and magazines)",
					},
					&cli.IntFlag{
						Name:    "duration",
						Aliases: []string{"d"},
						Usage:   "Running time in minutes (DVDs)",
					},
					&cli.StringFlag{
						Name:  "id",
						Usage: "Custom item ID (generated when omitted)",
					},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(container *app.Container) error {
						catalogUC, err := container.CatalogUseCase()
						if err != nil {
							return err
						}

						return commands.RunAddItem(
							ctx,
							catalogUC,
							container.Logger(),
							catalogUseCase.CreateItemInput{
								ID:       cmd.String("id"),
								Type:     cmd.String("type"),
								Title:    cmd.String("title"),
								Author:   cmd.String("author"),
								Year:     int(cmd.Int("year")),
								Genre:    cmd.String("genre"),
								Duration: int(cmd.Int("duration")),
							},
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "update",
				Usage: "Update fields of an existing item",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "Item ID",
					},
					&cli.StringFlag{Name: "new-id", Usage: "Rename the item"},
					&cli.StringFlag{Name: "title", Usage: "New title"},
					&cli.StringFlag{Name: "author", Usage: "New author"},
					&cli.IntFlag{Name: "year", Usage: "New year"},
					&cli.StringFlag{Name: "genre", Usage: "New genre (books and magazines)"},
					&cli.IntFlag{Name: "duration", Usage: "New running time in minutes (DVDs)"},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(container *app.Container) error {
						catalogUC, err := container.CatalogUseCase()
						if err != nil {
							return err
						}

						return commands.RunUpdateItem(
							ctx,
							catalogUC,
							container.Logger(),
							catalogUseCase.UpdateItemInput{
								ID:       cmd.String("id"),
								NewID:    optionalString(cmd, "new-id"),
								Title:    optionalString(cmd, "title"),
								Author:   optionalString(cmd, "author"),
								Year:     optionalInt(cmd, "year"),
								Genre:    optionalString(cmd, "genre"),
								Duration: optionalInt(cmd, "duration"),
							},
							cmd.String("format"),
							commands.DefaultIO(),
						)
					})
				},
			},
			{
				Name:  "remove",
				Usage: "Remove an item that is not lent out",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
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

						return commands.RunRemoveItem(
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
				Usage: "Show one item",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
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

						return commands.RunGetItem(
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
				Usage: "List items, optionally filtered by type, title or author",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Only this item type"},
					&cli.StringFlag{Name: "title", Usage: "Exact title, case-insensitive"},
					&cli.StringFlag{Name: "author", Aliases: []string{"a"}, Usage: "Exact author, case-insensitive"},
					formatFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withContainer(ctx, func(container *app.Container) error {
						catalogUC, err := container.CatalogUseCase()
						if err != nil {
							return err
						}

						return commands.RunListItems(
							ctx,
							catalogUC,
							container.Logger(),
							catalogUseCase.ItemFilter{
								Type:   cmd.String("type"),
								Title:  cmd.String("title"),
								Author: cmd.String("author"),
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
