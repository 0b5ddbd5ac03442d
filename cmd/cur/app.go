// Package main is the entry point for the cur currency converter.
package main

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"curconv/internal/cache"
	"curconv/internal/cli"
	"curconv/internal/config"
	"curconv/internal/freshness"
	"curconv/internal/provider"
	"curconv/internal/service"
)

var _ cli.Converter = (*service.ConversionService)(nil)

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg        *config.Config
	logger     *zap.SugaredLogger
	rdb        *redis.Client
	store      cache.Store
	source     provider.RateSource
	conversion *service.ConversionService
}

// NewApp wires the dependency graph. It performs no I/O: the Redis client
// connects lazily, so a usage error never touches the network.
func NewApp(cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initStorage(); err != nil {
		_ = app.close()
		return nil, err
	}

	app.initServices()
	return app, nil
}

func (app *App) initStorage() error {
	switch app.cfg.Cache.Backend {
	case config.BackendFile:
		app.store = cache.NewFileStore(app.cfg.Cache.Path)
		app.logger.Debugw("Using file cache", "path", app.cfg.Cache.Path)
	case config.BackendRedis:
		app.rdb = redis.NewClient(&redis.Options{
			Addr: app.cfg.Cache.RedisAddr,
		})
		app.store = cache.NewRedisStore(app.rdb, app.cfg.Cache.RedisKey)
		app.logger.Debugw("Using Redis cache", "addr", app.cfg.Cache.RedisAddr, "key", app.cfg.Cache.RedisKey)
	default:
		return fmt.Errorf("unknown cache backend %q", app.cfg.Cache.Backend)
	}
	return nil
}

func (app *App) initServices() {
	app.source = provider.NewECBSource(app.cfg.Source.URL, app.cfg.Source.UserAgent, app.cfg.Source.TimeoutSec)
	policy := freshness.NewPolicy(app.cfg.Freshness.PublishHourUTC, app.cfg.Freshness.Grace())

	app.conversion = service.NewConversionService(app.store, app.source, policy, app.logger)
}

// close releases the Redis connection, if any.
func (app *App) close() error {
	var errs []error
	if app.rdb != nil {
		if err := app.rdb.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	return errors.Join(errs...)
}
