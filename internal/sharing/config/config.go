// Package config содержит конфигурацию сервиса общих заметок.
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	pkgconfig "sharednotes/pkg/config"
	"sharednotes/pkg/logger"
)

// ServiceName - имя сервиса в логах.
const ServiceName = "sharing"

// Ошибки проверки конфигурации.
var (
	ErrUnknownDriver       = errors.New("unknown storage driver")
	ErrNonPositiveDuration = errors.New("duration must be positive")
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
	Sharing  SharingConfig  `yaml:"sharing"`
}

// Load загружает конфигурацию из окружения и необязательного .env файла.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName)
	if err != nil {
		return nil, fmt.Errorf("load %s config: %w", ServiceName, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Log(ctx).Debug(ctx, "sharing configuration",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("grpc_address", cfg.GRPC.GetAddress()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level))

	return cfg, nil
}

// Validate проверяет значения, которые нельзя выразить тегами.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver)
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"SHARING_GRPC_HEALTH_INTERVAL", c.GRPC.HealthCheckInterval},
		{"SHARING_REDIS_NOTE_TTL", c.Redis.NoteTTL},
		{"SHARING_GRACEFUL_SHUTDOWN_TIMEOUT", c.Shutdown.GetTimeout()},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%w: %s=%s", ErrNonPositiveDuration, d.name, d.value)
		}
	}
	return nil
}
