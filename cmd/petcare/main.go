package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "petcare",
		Usage: "Pet sitting site API and admin back office",
		Commands: []*cli.Command{
			serveCommand,
			migrateCommand,
			seedCommand,
			unseedCommand,
			hashPasswordCommand,
			cookieKeysCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger
}
