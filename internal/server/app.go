// Package server wires the portfolio API together: storage backends, the
// token revocation list, the media store, the REST router and the gRPC
// health service, and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/AllanOcung/Group-BSE25-1/internal/logging"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/config"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/httpapi"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/media"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/repositories/repomanager"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/revocation"
	"github.com/AllanOcung/Group-BSE25-1/internal/server/services"

	gs "github.com/AllanOcung/Group-BSE25-1/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	revoker revocation.Revoker
	svc     *httpapi.Services
	sync    func() error
}

// NewLogger builds the logger selected by the configuration.
func NewLogger(c *config.Config) (logging.Logger, func() error, error) {
	switch c.LogBackend {
	case config.LogZap:
		z, err := logging.NewProductionZapLogger(c.LogLevel)
		if err != nil {
			return nil, nil, err
		}
		return z, z.Sync, nil
	case config.LogSlog, "":
		return logging.NewJSONSlogLogger(os.Stdout, c.LogLevel), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown log backend %q", c.LogBackend)
}

// NewApp connects every backend named by c. A failure closes whatever was
// already opened.
func NewApp(ctx context.Context, c *config.Config) (app *App, err error) {
	logger, sync, err := NewLogger(c)
	if err != nil {
		return nil, err
	}
	app = &App{config: c, logger: logger, sync: sync}
	defer func() {
		if err != nil {
			app.Close()
		}
	}()

	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database configured, using in-memory storage")
		app.repos = repomanager.NewMemoryRepositoryManager()
	} else {
		pg, err := repomanager.OpenPostgres(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		app.repos = pg
		if err := pg.RunMigrations(ctx); err != nil {
			return nil, fmt.Errorf("db migration error: %w", err)
		}
	}

	if c.RedisAddr == "" {
		app.revoker = revocation.NewMemoryRevoker()
	} else {
		rv, err := revocation.NewRedisRevoker(ctx, c.RedisAddr, c.RedisPassword)
		if err != nil {
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		app.revoker = rv
	}

	var store media.Store
	switch c.MediaBackend {
	case config.MediaS3:
		s3, err := media.NewS3Store(ctx, media.S3Config{
			Region:    c.S3Region,
			AccessKey: c.S3RootUser,
			SecretKey: c.S3RootPassword,
			Bucket:    c.S3Bucket,
			Endpoint:  c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		store = s3
	case config.MediaMemory, "":
		store = media.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown media backend %q", c.MediaBackend)
	}

	app.svc = &httpapi.Services{
		Auth:     services.NewAuthService(app.repos, app.revoker, c, logger),
		Users:    services.NewUserService(app.repos, store, logger),
		Projects: services.NewProjectService(app.repos, store, logger),
		Posts:    services.NewPostService(app.repos, store, logger),
		Stats:    services.NewStatsService(app.repos),
		Media:    store,
	}
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP and gRPC until ctx is cancelled, a signal arrives or one
// of the servers fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	router := httpapi.NewRouter(*app.svc, app.config.CORSAllowedOrigins, app.logger)
	httpServer := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, router, app.logger, app.config.ShutdownTimeout)
	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.repos.Ping)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpServer.Run(gctx) })
	g.Go(func() error { return grpcServer.Run(gctx) })

	err := g.Wait()
	app.logger.Info(context.Background(), "App stopped")
	return err
}

// Close releases the storage and revocation backends and flushes the log.
func (app *App) Close() error {
	var errs []error
	if app.revoker != nil {
		errs = append(errs, app.revoker.Close())
	}
	if app.repos != nil {
		errs = append(errs, app.repos.Close())
	}
	if app.sync != nil {
		// Sync on a console descriptor returns EINVAL
		_ = app.sync()
	}
	return errors.Join(errs...)
}
