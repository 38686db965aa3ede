// Package cache содержит кэш снимков заметок на Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sharednotes/internal/sharing/domain/entities"
	"sharednotes/internal/sharing/ports/cache"
	"sharednotes/pkg/logger"
)

// KeyPrefix - префикс ключей заметок.
const KeyPrefix = "sharing:note:"

// maxWatchRetries ограничивает число повторов оптимистичной транзакции.
const maxWatchRetries = 5

// Константы для логирования.
const (
	LogMethodGet        = "get"
	LogMethodPutIfNewer = "put_if_newer"
	LogMethodDelete     = "delete"

	ErrorFailedToGet    = "failed to get note from redis"
	ErrorFailedToPut    = "failed to put note to redis"
	ErrorFailedToDelete = "failed to delete note from redis"
	ErrorFailedToClose  = "failed to close redis connection"
	LogCorruptedEntry   = "corrupted cache entry ignored"
)

// ErrWatchConflict - не удалось записать заметку из-за постоянных конкурентных изменений ключа.
var ErrWatchConflict = errors.New("note cache key keeps changing")

type entry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	UpdatedAt int64  `json:"updated_at"`
}

func toEntry(n *entities.Note) entry {
	return entry{ID: n.ID, Title: n.Title, Content: n.Content, UpdatedAt: n.UpdatedAt.UnixNano()}
}

func (e entry) note() *entities.Note {
	return entities.NewNote(e.ID, e.Title, e.Content, time.Unix(0, e.UpdatedAt).UTC())
}

// RedisNoteCache реализует cache.NoteCache.
type RedisNoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ cache.NoteCache = (*RedisNoteCache)(nil)

// NewRedisNoteCache создает кэш поверх готового клиента. Записи живут ttl.
func NewRedisNoteCache(client *redis.Client, ttl time.Duration) *RedisNoteCache {
	return &RedisNoteCache{client: client, ttl: ttl}
}

// Key возвращает ключ заметки.
func Key(noteID string) string {
	return KeyPrefix + noteID
}

// Get возвращает заметку из кэша или nil при промахе.
func (c *RedisNoteCache) Get(ctx context.Context, noteID string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("noteID", noteID))

	raw, err := c.client.Get(ctx, Key(noteID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Warn(ctx, LogCorruptedEntry, zap.Error(err))
		return nil, nil
	}
	return e.note(), nil
}

// PutIfNewer записывает заметку, если в кэше нет версии с большим updated_at.
func (c *RedisNoteCache) PutIfNewer(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodPutIfNewer), zap.String("noteID", note.ID))

	key := Key(note.ID)
	data, err := json.Marshal(toEntry(note))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToPut, err)
	}
	updated := note.UpdatedAt.UnixNano()

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			var cur entry
			if json.Unmarshal(raw, &cur) == nil && cur.UpdatedAt > updated {
				log.Debug(ctx, "cached note is newer, skipping")
				return nil
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}

	for range maxWatchRetries {
		err := c.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		log.Error(ctx, ErrorFailedToPut, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToPut, err)
	}

	log.Warn(ctx, ErrorFailedToPut, zap.Error(ErrWatchConflict))
	return ErrWatchConflict
}

// Delete удаляет заметку из кэша.
func (c *RedisNoteCache) Delete(ctx context.Context, noteID string) error {
	if err := c.client.Del(ctx, Key(noteID)).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrorFailedToDelete,
			zap.String("method", LogMethodDelete), zap.String("noteID", noteID), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisNoteCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
