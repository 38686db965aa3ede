package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sharednotes/pkg/logger"
)

// Константы для сообщений.
const (
	LogConnecting = "connecting to Redis"
	LogConnected  = "successfully connected to Redis"

	ErrConnect = "failed to connect to redis"
)

// NewClient создает клиент и проверяет соединение командой PING.
func NewClient(ctx context.Context, cfg *Config) (*redis.Client, error) {
	log := logger.Log(ctx).With(zap.String("address", cfg.Address()))
	log.Info(ctx, LogConnecting)

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdle,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Error(ctx, ErrConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	log.Info(ctx, LogConnected)
	return client, nil
}
