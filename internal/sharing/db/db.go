// Package db подключает сервис к Postgres и применяет миграции схемы.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"sharednotes/internal/sharing/config"
	"sharednotes/pkg/db/postgres"
	"sharednotes/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing sharing database"
	LogDBInitialized     = "sharing database initialized successfully"
	LogMigrationStarting = "starting database migrations for sharing service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply sharing database migrations"
	ErrDBConnection = "failed to connect to sharing database"
	ErrGetPath      = "failed to get path"
)

const filePrefix = "file://"

// MigrationsURL переводит каталог миграций в URL источника golang-migrate.
func MigrationsURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filePrefix + dir, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return filePrefix + abs, nil
}

// Migrate применяет миграции из cfg.MigrationsDir.
func Migrate(ctx context.Context, cfg *config.PostgresConfig) error {
	source, err := MigrationsURL(cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	logger.Log(ctx).Info(ctx, LogMigrationStarting, zap.String("migrations_path", source))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), source); err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}
	return nil
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*postgres.Database, error) {
	logger.Log(ctx).Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	if err := Migrate(ctx, cfg); err != nil {
		return nil, err
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), postgres.PoolOptions{
		MinConn:      cfg.MinConn,
		MaxConn:      cfg.MaxConn,
		PingAttempts: cfg.PingAttempts,
		PingDelay:    cfg.PingDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	logger.Log(ctx).Info(ctx, LogDBInitialized)
	return database, nil
}
