package main

import (
	"petcare15/internal/db"

	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Apply database migrations",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "down",
			Usage: "Roll back every migration instead",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return db.Migrate(cfg.DatabaseURL, c.Bool("down"), newLogger())
	},
}
