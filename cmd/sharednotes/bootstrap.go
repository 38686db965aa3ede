package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	notecache "sharednotes/internal/sharing/adapters/cache"
	"sharednotes/internal/sharing/adapters/services"
	"sharednotes/internal/sharing/app"
	"sharednotes/internal/sharing/config"
	cacheport "sharednotes/internal/sharing/ports/cache"
	"sharednotes/internal/sharing/ports/repositories"
	"sharednotes/internal/sharing/resilience"
	"sharednotes/internal/sharing/storage"
	redisdb "sharednotes/pkg/db/redis"
	"sharednotes/pkg/logger"
)

// Константы сообщений запуска.
const (
	LogInitStorage  = "initializing storage"
	LogInitCache    = "initializing note cache"
	LogCacheOff     = "note cache disabled"
	LogInitServices = "initializing services"

	ErrOpenStorage = "failed to open storage"
	ErrOpenCache   = "failed to create Redis client"
)

// cacheRetry - не больше одного повтора: кэш не должен задерживать запросы.
var cacheRetry = resilience.RetryConfig{
	MaxAttempts:    2,
	InitialBackoff: 20 * time.Millisecond,
	MaxBackoff:     100 * time.Millisecond,
	BackoffFactor:  2,
}

type deps struct {
	store   repositories.Store
	cache   cacheport.NoteCache
	service *app.Service
}

func openRuntime(ctx context.Context, cfg *config.Config) (*deps, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogInitStorage, zap.String("driver", cfg.Storage.Driver))
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrOpenStorage, err)
	}

	noteCache, err := openCache(ctx, &cfg.Redis)
	if err != nil {
		if closeErr := store.Close(); closeErr != nil {
			log.Error(ctx, "failed to close storage", zap.Error(closeErr))
		}
		return nil, err
	}

	log.Info(ctx, LogInitServices)
	service := app.NewService(store, noteCache, services.NewUUIDGenerator(), services.SystemClock{})

	return &deps{store: store, cache: noteCache, service: service}, nil
}

// openCache возвращает nil, если кэш выключен.
func openCache(ctx context.Context, cfg *config.RedisConfig) (cacheport.NoteCache, error) {
	log := logger.Log(ctx)
	if !cfg.Enabled {
		log.Debug(ctx, LogCacheOff)
		return nil, nil
	}

	log.Info(ctx, LogInitCache)
	client, err := redisdb.NewClient(ctx, cfg.ClientConfig())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrOpenCache, err)
	}

	res := resilience.NewServiceResilienceWithConfig("note-cache", resilience.DefaultCircuitBreakerConfig(), cacheRetry)
	return notecache.NewResilientNoteCache(notecache.NewRedisNoteCache(client, cfg.NoteTTL), res), nil
}

func (d *deps) Close() error {
	var errs []error
	if d.cache != nil {
		if err := d.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if err := d.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	return errors.Join(errs...)
}
