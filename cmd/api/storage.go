package main

import (
	"context"
	"fmt"

	mem "vet-clinic-records/internal/adapters/storage/memory"
	pg "vet-clinic-records/internal/adapters/storage/postgres"
	"vet-clinic-records/internal/adapters/storage/sqlite"
	"vet-clinic-records/internal/config"
	"vet-clinic-records/internal/domain/animals"
	"vet-clinic-records/internal/platform/logger"
)

// openRepository arma el repositorio según DB_DRIVER. El closer libera la conexión.
func openRepository(ctx context.Context, cfg config.Config, log logger.Logger) (animals.Repository, func() error, error) {
	noop := func() error { return nil }

	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := pg.Open(cfg.DBDSN, pg.Pool{MaxOpenConns: cfg.DBMaxOpenConns})
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres: %w", err)
		}
		log.Info("using postgres repository", map[string]any{"max_open_conns": cfg.DBMaxOpenConns})
		return pg.NewAnimalsRepo(db, log), db.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		if err := sqlite.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		log.Info("using sqlite repository", map[string]any{"path": cfg.SQLitePath})
		return sqlite.NewAnimalsRepo(db, log), db.Close, nil

	default:
		log.Warn("no database configured, using seeded in-memory repository", nil)
		return mem.NewSeededAnimalsRepo(), noop, nil
	}
}
