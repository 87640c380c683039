// Selection of the entity store by configuration.
package DB

import (
	"context"
	"errors"
	"warehouse/packages/common/config"
	"warehouse/packages/common/logger"
	"warehouse/packages/core/store"
	"warehouse/packages/infrastructure/DB/memory"
	"warehouse/packages/infrastructure/DB/postgres"
)

var dbLogger = logger.NewSource("DB", logger.Default)

const (
	PostgresDriver = "postgres"
	MemoryDriver   = "memory"
)

// Opens store selected by cfg.DB.Driver.
func Open(ctx context.Context, cfg *config.Config) (store.Store, error) {
	dbLogger.Info("Opening store (driver: "+cfg.DB.Driver+")...", nil)

	var s store.Store

	switch cfg.DB.Driver {
	case PostgresDriver:
		db, err := postgres.Open(ctx, postgres.Config{
			URL:          cfg.Secret.DatabaseURL(),
			MinConns:     cfg.DB.MinConns,
			MaxConns:     cfg.DB.MaxConns,
			QueryTimeout: cfg.DB.QueryTimeout(),
			LogQueries:   cfg.Debug.LogDbQueries,
		})
		if err != nil {
			return nil, err
		}
		s = db
	case MemoryDriver:
		dbLogger.Warning("In-memory store is used, all data will be lost on shutdown", nil)
		s = memory.New()
	default:
		err := errors.New("unknown DB driver: " + cfg.DB.Driver)
		dbLogger.Error("Failed to open store", err.Error(), nil)
		return nil, err
	}

	dbLogger.Info("Opening store (driver: "+cfg.DB.Driver+"): OK", nil)

	return s, nil
}

// Returns migrator for the postgres database.
func NewMigrator(cfg *config.Config) *postgres.Migrator {
	return &postgres.Migrator{
		URL:  cfg.Secret.DatabaseURL(),
		Path: cfg.DB.MigrationsPath,
	}
}
