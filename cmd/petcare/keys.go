package main

import (
	"encoding/base64"
	"fmt"

	"github.com/gorilla/securecookie"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

var hashPasswordCommand = &cli.Command{
	Name:      "hash-password",
	Usage:     "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
	ArgsUsage: "<password>",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "cost",
			Usage: "bcrypt cost",
			Value: bcrypt.DefaultCost,
		},
	},
	Action: func(c *cli.Context) error {
		password := c.Args().First()
		if password == "" {
			return fmt.Errorf("password argument is required")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), c.Int("cost"))
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		fmt.Println(string(hash))
		return nil
	},
}

var cookieKeysCommand = &cli.Command{
	Name:  "cookie-keys",
	Usage: "Generate COOKIE_HASH_KEY and COOKIE_BLOCK_KEY values",
	Action: func(c *cli.Context) error {
		fmt.Printf("COOKIE_HASH_KEY=%s\n", base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(64)))
		fmt.Printf("COOKIE_BLOCK_KEY=%s\n", base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)))
		return nil
	},
}
