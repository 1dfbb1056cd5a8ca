package main

import (
	"context"
	"fmt"

	"petcare15/internal/db"
	"petcare15/internal/seed"
	"petcare15/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with sample data",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the sample data without writing it",
		},
	},
	Action: func(c *cli.Context) error {
		data := seed.Sample()

		if c.Bool("dry-run") {
			_, err := pp.Println(data)
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()
		logger := newLogger()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logger.Info("connected to database")

		repos := seed.Repositories{
			Updates:      store.NewUpdateRepository(pool),
			Contact:      store.NewContactRepository(pool),
			Profiles:     store.NewProfileRepository(pool),
			Applications: store.NewApplicationRepository(pool),
			Customers:    store.NewCustomerRepository(pool),
		}

		if err := seed.Run(ctx, logger, repos, data); err != nil {
			return err
		}

		logger.Info("seed complete")
		return nil
	},
}

var unseedCommand = &cli.Command{
	Name:  "unseed",
	Usage: "Remove every record from every collection",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		if err := store.Truncate(ctx, pool); err != nil {
			return err
		}

		newLogger().Info("collections cleared")
		return nil
	},
}
