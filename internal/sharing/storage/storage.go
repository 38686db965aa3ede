// Package storage открывает хранилище, выбранное в конфигурации.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sharednotes/internal/sharing/adapters/postgres"
	"sharednotes/internal/sharing/adapters/sqlite"
	"sharednotes/internal/sharing/config"
	"sharednotes/internal/sharing/db"
	"sharednotes/internal/sharing/ports/repositories"
	"sharednotes/pkg/logger"
)

// Open возвращает хранилище для cfg.Storage.Driver. Закрывает его вызывающий.
func Open(ctx context.Context, cfg *config.Config) (repositories.Store, error) {
	logger.Log(ctx).Info(ctx, "opening storage", zap.String("driver", cfg.Storage.Driver))

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		database, err := db.New(ctx, &cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return postgres.NewRepositoryFactory(database.Pool()), nil
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Storage.Driver)
	}
}

// Migrate готовит схему. SQLite создает ее при открытии.
func Migrate(ctx context.Context, cfg *config.Config) error {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		return db.Migrate(ctx, &cfg.Postgres)
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return err
		}
		return store.Close()
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Storage.Driver)
	}
}
