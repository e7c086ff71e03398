// Package repository selects the plan store configured for the process.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/simaogato/retireplan-backend/internal/adapter/repository/memory"
	"github.com/simaogato/retireplan-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/retireplan-backend/internal/adapter/repository/redis"
	"github.com/simaogato/retireplan-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/retireplan-backend/internal/config"
	"github.com/simaogato/retireplan-backend/internal/domain"
)

// Backend is an opened store
type Backend struct {
	Driver       string
	Repositories domain.Repositories

	health func(ctx context.Context) error
	close  func() error
}

// Health reports whether the store is reachable
func (b *Backend) Health(ctx context.Context) error {
	if b.health == nil {
		return nil
	}
	return b.health(ctx)
}

// Close releases the store's connections
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects to the store named by cfg.Driver. Postgres schemas are
// applied when cfg.Migrate is set; the other drivers manage their own layout.
func Open(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		if cfg.Migrate {
			if err := db.Migrate(ctx); err != nil {
				_ = db.Close()
				return nil, err
			}
			logger.InfoContext(ctx, "postgres schema applied")
		}
		return &Backend{Driver: cfg.Driver, Repositories: db.Repositories(), health: db.Health, close: db.Close}, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "sqlite store opened", "path", cfg.SQLitePath)
		return &Backend{Driver: cfg.Driver, Repositories: store.Repositories(), health: store.Health, close: store.Close}, nil

	case config.DriverRedis:
		store, err := redis.Connect(ctx, cfg.RedisURL, redis.Options{})
		if err != nil {
			return nil, err
		}
		return &Backend{Driver: cfg.Driver, Repositories: store.Repositories(), health: store.Health, close: store.Close}, nil

	case config.DriverMemory:
		logger.WarnContext(ctx, "memory store selected; plans are lost on exit")
		return &Backend{Driver: cfg.Driver, Repositories: memory.New().Repositories()}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
