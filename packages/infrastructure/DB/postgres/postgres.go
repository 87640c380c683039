// Postgres adapter of the entity store.
package postgres

import (
	"context"
	"time"
	Error "warehouse/packages/common/errors"
	"warehouse/packages/core/entity"
	"warehouse/packages/core/store"
	"warehouse/packages/infrastructure/DB/postgres/connection"
	"warehouse/packages/infrastructure/DB/postgres/executor"
	log "warehouse/packages/infrastructure/DB/postgres/logger"
	"warehouse/packages/infrastructure/DB/postgres/table"
	"warehouse/packages/infrastructure/DB/postgres/transaction"

	"github.com/jackc/pgx/v5"
)

type Config struct {
	URL          string
	MinConns     int32
	MaxConns     int32
	QueryTimeout time.Duration
	LogQueries   bool
}

// Satisfies store.Store interface.
type DB struct {
	manager *connection.Manager
	exec    *executor.Executor
	// Set for the view of DB passed into Atomic()
	tx pgx.Tx
}

var _ store.Store = (*DB)(nil)

// Connects to postgres and verifies that all tables exist.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	log.DB.Info("Connecting to postgres...", nil)

	manager := connection.New(connection.Config{
		URL:      cfg.URL,
		MinConns: cfg.MinConns,
		MaxConns: cfg.MaxConns,
		Tables:   table.Names(),
	})

	if err := manager.Connect(ctx); err != nil {
		log.DB.Error("Failed to connect to postgres", err.Error(), nil)
		return nil, err
	}

	log.DB.Info("Connecting to postgres: OK", nil)

	return &DB{
		manager: manager,
		exec:    executor.New(manager.Pool, cfg.QueryTimeout, cfg.LogQueries),
	}, nil
}

func (db *DB) Warehouses() store.Repository[entity.Warehouse] {
	return &repository[entity.Warehouse]{db.exec, table.Warehouses}
}

func (db *DB) Categories() store.Repository[entity.Category] {
	return &repository[entity.Category]{db.exec, table.Categories}
}

func (db *DB) Products() store.Repository[entity.Product] {
	return &repository[entity.Product]{db.exec, table.Products}
}

func (db *DB) Attributes() store.Repository[entity.Attribute] {
	return &repository[entity.Attribute]{db.exec, table.Attributes}
}

func (db *DB) Users() store.UserRepository {
	return &userRepository{repository[entity.User]{db.exec, table.Users}}
}

// Nested calls are executed in the transaction of the outer one.
func (db *DB) Atomic(ctx context.Context, fn func(tx store.Store) *Error.Status) *Error.Status {
	if db.tx != nil {
		return fn(db)
	}

	// Each query inside of transaction has its own timeout
	return transaction.Run(ctx, db.manager.Pool, 0, func(tx pgx.Tx) *Error.Status {
		return fn(&DB{
			manager: db.manager,
			exec:    db.exec.WithQuerier(tx),
			tx:      tx,
		})
	})
}

func (db *DB) Close() error {
	log.DB.Info("Disconnecting from postgres...", nil)

	if err := db.manager.Disconnect(); err != nil {
		log.DB.Error("Failed to disconnect from postgres", err.Error(), nil)
		return err
	}

	log.DB.Info("Disconnecting from postgres: OK", nil)

	return nil
}
