package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"petcare15/internal/admin"
	"petcare15/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/kelseyhightower/envconfig"
)

func loadConfig() (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	if c.ServerPort == 0 {
		c.ServerPort = 5002
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 30
	}

	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 20
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}

// guardOptions maps the login settings onto admin.Options. The cookie keys
// come as a pair; with neither set the guard generates per-process keys.
func guardOptions(c *types.Config) (admin.Options, error) {
	if c.AdminPasswordHash == "" {
		return admin.Options{}, fmt.Errorf("set ADMIN_PASSWORD_HASH (petcare hash-password)")
	}

	hashKey, err := decodeKey(c.CookieHashKey)
	if err != nil {
		return admin.Options{}, fmt.Errorf("invalid COOKIE_HASH_KEY: %w", err)
	}

	blockKey, err := decodeKey(c.CookieBlockKey)
	if err != nil {
		return admin.Options{}, fmt.Errorf("invalid COOKIE_BLOCK_KEY: %w", err)
	}

	if (len(hashKey) == 0) != (len(blockKey) == 0) {
		return admin.Options{}, fmt.Errorf("set both COOKIE_HASH_KEY and COOKIE_BLOCK_KEY, or neither (petcare cookie-keys)")
	}

	return admin.Options{
		PasswordHash:    c.AdminPasswordHash,
		MaxAttempts:     c.LoginMaxAttempts,
		LockoutDuration: time.Duration(c.LoginLockoutMin) * time.Minute,
		CookieName:      c.CookieName,
		SessionMaxAge:   time.Duration(c.SessionMaxAgeSec) * time.Second,
		SecureCookie:    c.SecureCookies,
		HashKey:         hashKey,
		BlockKey:        blockKey,
	}, nil
}

func decodeKey(v string) ([]byte, error) {
	if v == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(v)
}
