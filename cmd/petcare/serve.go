package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petcare15/internal/admin"
	"petcare15/internal/applications"
	"petcare15/internal/customers"
	"petcare15/internal/db"
	"petcare15/internal/media"
	"petcare15/internal/server"
	"petcare15/internal/store"
	"petcare15/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Start the HTTP server",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "migrate",
			Usage: "Apply pending migrations before serving",
			Value: true,
		},
	},
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	config, err := loadConfig()
	if err != nil {
		return err
	}

	if cCtx.Bool("migrate") {
		if err := db.Migrate(config.DatabaseURL, false, logger); err != nil {
			return err
		}
	}

	opts, err := guardOptions(config)
	if err != nil {
		return err
	}

	guard, err := admin.NewGuard(opts)
	if err != nil {
		return err
	}

	if len(opts.HashKey) == 0 || len(opts.BlockKey) == 0 {
		logger.Warn("cookie keys not set, admin sessions will not survive a restart")
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	updatesRepo := store.NewUpdateRepository(pool)
	contactRepo := store.NewContactRepository(pool)
	profilesRepo := store.NewProfileRepository(pool)
	applicationsRepo := store.NewApplicationRepository(pool)
	customersRepo := store.NewCustomerRepository(pool)

	mediaStore, fileStore, err := newMediaStore(ctx, config)
	if err != nil {
		return err
	}

	srv, err := server.New(
		config,
		logger,
		guard,
		updatesRepo,
		contactRepo,
		profilesRepo,
		applications.NewService(logger, applicationsRepo),
		customers.NewService(logger, customersRepo),
		media.NewService(logger, mediaStore),
		fileStore,
		pool,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":          config.ServerPort,
			"media_backend": config.MediaBackend,
		}).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

// newMediaStore builds the configured image backend. The file store is also
// returned when media lives on local disk so the server can serve it.
func newMediaStore(ctx context.Context, config *types.Config) (media.Store, *media.FileStore, error) {
	switch config.MediaBackend {
	case "", "filesystem":
		fs := media.NewFileStore(config.MediaRoot, config.MediaURLPath)
		return fs, fs, nil
	case "s3":
		if config.S3BucketName == "" {
			return nil, nil, fmt.Errorf("set S3_BUCKET_NAME for the s3 media backend")
		}

		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return nil, nil, err
		}

		return media.NewS3Store(s3.NewFromConfig(awsConfig), config.S3BucketName, config.S3KeyPrefix), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown MEDIA_BACKEND %q", config.MediaBackend)
	}
}
