package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketapp/internal/config"
)

// Open builds the backend selected by cfg.Store.Driver, applies the namespace and returns a
// cleanup func releasing its connections.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (Store, func(), error) {
	var (
		store   Store
		cleanup = func() {}
	)

	switch cfg.Store.Driver {
	case config.DriverMemory:
		store = NewMemoryStore(cfg.Store.MemoryQuotaBytes)
	case config.DriverRedis:
		rs := NewRedis(cfg.Redis, logger)
		store, cleanup = rs, rs.Close
	case config.DriverPostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		store, cleanup = NewPostgresStore(pg.PoolHandle()), pg.Close
	case config.DriverSQLite:
		ss, err := OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		store, cleanup = ss, func() { _ = ss.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	logger.Info("store ready", zap.String("driver", cfg.Store.Driver), zap.String("namespace", cfg.Store.Namespace))
	return WithNamespace(store, cfg.Store.Namespace), cleanup, nil
}
